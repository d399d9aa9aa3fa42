package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/psknn17/kingsportal/core"
	"github.com/psknn17/kingsportal/core/account"
	"github.com/psknn17/kingsportal/core/cart"
	"github.com/psknn17/kingsportal/core/catalog"
	"github.com/psknn17/kingsportal/core/checkout"
	emailsvc "github.com/psknn17/kingsportal/services/email"
	inmemdb "github.com/psknn17/kingsportal/storage/inmem"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testLogger struct{}

func (testLogger) Enable(bool)                  {}
func (testLogger) Debug(string, ...interface{}) {}
func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}
func (testLogger) Fatal(string, ...interface{}) {}

type testServer struct {
	Server
	conf       *core.Config
	accountSvc *account.Service
	catalogSvc *catalog.Service
	cartSvc    *cart.Service
}

func setup(t *testing.T) *testServer {
	t.Helper()

	conf := core.NewTestConfig()
	conf.Debug = false
	conf.Cart.TickInterval = time.Hour // deterministic remaining seconds
	conf.Payment.ProcessingTicks = 2
	conf.Payment.TickInterval = time.Millisecond

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	if err = inmemdb.Seed(db); err != nil {
		t.Fatalf("seeding store: %v", err)
	}

	logger := testLogger{}
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	accountSvc := account.NewService(inmemdb.NewParentRepository(db))
	catalogSvc := catalog.NewService(inmemdb.NewCatalogRepository(db), inmemdb.NewReceiptRepository(db))
	cartSvc := cart.NewService(conf, logger, inmemdb.NewCartRepository(db))
	checkoutSvc := checkout.NewService(conf, logger, cartSvc, catalogSvc, accountSvc, mailSvc)

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)

	server := NewServer(
		ServerDeps{
			Conf:           conf,
			Logger:         logger,
			AccountSvc:     accountSvc,
			CatalogSvc:     catalogSvc,
			CartSvc:        cartSvc,
			CheckoutSvc:    checkoutSvc,
			Validate:       validate,
			Translator:     translator,
			DisableReqLogs: true,
		},
	)
	return &testServer{
		Server:     server,
		conf:       conf,
		accountSvc: accountSvc,
		catalogSvc: catalogSvc,
		cartSvc:    cartSvc,
	}
}

func (s *testServer) parent(t *testing.T) account.Parent {
	t.Helper()
	prt, err := s.accountSvc.GetByID("prt-001") // seeded demo parent
	if err != nil {
		t.Fatalf("finding seeded parent: %v", err)
	}
	return prt
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, prt account.Parent) string {
	claims := GetParentClaims(prt)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
