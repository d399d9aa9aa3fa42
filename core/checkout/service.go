package checkout

import (
	"errors"
	"fmt"
	"net/mail"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/psknn17/kingsportal/core"
	"github.com/psknn17/kingsportal/core/account"
	"github.com/psknn17/kingsportal/core/cart"
	"github.com/psknn17/kingsportal/core/catalog"
)

var (
	// errors
	ErrNoCheckout          = errors.New("no checkout in progress")
	ErrItemNotInCart       = errors.New("selected item not found in cart")
	ErrSessionNotFound     = errors.New("payment session not found")
	ErrInvalidPaymentState = errors.New("invalid payment session state")
	errInvalidCheckoutType = errors.New("unknown checkout type")
)

type Service struct {
	conf       *core.Config
	logger     core.Logger
	cartSvc    *cart.Service
	catalogSvc *catalog.Service
	accountSvc *account.Service
	mailSvc    core.EmailService

	mu        sync.Mutex
	checkouts map[string]*Data           // parentID -> checkout in progress
	sessions  map[string]*PaymentSession // session id -> session
}

func NewService(
	conf *core.Config,
	logger core.Logger,
	cartSvc *cart.Service,
	catalogSvc *catalog.Service,
	accountSvc *account.Service,
	mailSvc core.EmailService,
) *Service {
	return &Service{
		conf:       conf,
		logger:     logger,
		cartSvc:    cartSvc,
		catalogSvc: catalogSvc,
		accountSvc: accountSvc,
		mailSvc:    mailSvc,
		checkouts:  make(map[string]*Data),
		sessions:   make(map[string]*PaymentSession),
	}
}

// ItemRef identifies one cart entry in a checkout selection.
type ItemRef struct {
	ID        string `json:"id" validate:"required"`
	StudentID string `json:"student_id"`
}

// BeginCheckout is the cart view's checkout handoff: the selected items, and
// for the activities cart the credit-note sub-selection gated by use_credit.
type BeginCheckout struct {
	Type          string    `json:"type" validate:"required"`
	Items         []ItemRef `json:"items" validate:"required,min=1,dive"`
	UseCredit     bool      `json:"use_credit"`
	CreditNoteIDs []int     `json:"credit_note_ids"`
	InvoiceID     string    `json:"invoice_id"`
}

func (bc *BeginCheckout) Validate(validate *validator.Validate) error {
	bc.Type = core.CleanString(bc.Type, true /* lower */)
	if err := validate.Struct(bc); err != nil {
		return err
	}
	if !IsValidType(bc.Type) {
		return core.NewValidationError(errInvalidCheckoutType, core.FieldError{Field: "type", Error: errInvalidCheckoutType.Error()})
	}
	return nil
}

// Begin builds the checkout Data from the parent's cart and stores it as the
// checkout in progress. The cart itself is left untouched until settlement.
func (svc *Service) Begin(parentID string, bc BeginCheckout) (*Data, error) {
	data := &Data{Type: bc.Type, CreatedAt: NowFunc().UTC()}

	if bc.Type == TypeTrips {
		tripItems, err := svc.cartSvc.TripItems(parentID)
		if err != nil {
			return nil, err
		}
		for _, ref := range bc.Items {
			it, ok := findTripItem(tripItems, ref)
			if !ok {
				return nil, ErrItemNotInCart
			}
			data.TripItems = append(data.TripItems, it)
			data.Subtotal += it.Price
		}
	} else {
		items, err := svc.cartSvc.Items(parentID)
		if err != nil {
			return nil, err
		}
		for _, ref := range bc.Items {
			it, ok := findItem(items, ref)
			if !ok {
				return nil, ErrItemNotInCart
			}
			data.Items = append(data.Items, it)
			data.Subtotal += it.Price
		}
	}

	// credit notes offset the total; disabling use_credit drops any prior
	// selection entirely
	if bc.UseCredit {
		for _, id := range bc.CreditNoteIDs {
			note, err := svc.catalogSvc.GetCreditNote(id)
			if err != nil {
				return nil, err
			}
			data.CreditNotes = append(data.CreditNotes, note)
			data.CreditApplied += note.Balance
		}
	}

	if bc.InvoiceID != "" {
		inv, err := svc.catalogSvc.GetInvoice(bc.InvoiceID)
		if err != nil {
			return nil, err
		}
		data.Invoice = &inv
	}

	data.Subtotal = core.Round2(data.Subtotal)
	data.AmountAfterCredit = core.Round2(data.Subtotal - data.CreditApplied)
	if data.AmountAfterCredit < 0 {
		data.AmountAfterCredit = 0 // never negative
	}

	svc.mu.Lock()
	svc.checkouts[parentID] = data
	svc.mu.Unlock()
	return data, nil
}

// Current returns the checkout in progress for a parent.
func (svc *Service) Current(parentID string) (*Data, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	data, ok := svc.checkouts[parentID]
	if !ok {
		return nil, ErrNoCheckout
	}
	return data, nil
}

// Cancel discards the checkout in progress; the cart is untouched.
func (svc *Service) Cancel(parentID string) {
	svc.mu.Lock()
	delete(svc.checkouts, parentID)
	svc.mu.Unlock()
}

// StartPayment opens a payment session in the confirm state for the checkout
// in progress. Fees are computed here, synchronously, off the fixed table.
func (svc *Service) StartPayment(parentID, methodID string) (*PaymentSession, error) {
	data, err := svc.Current(parentID)
	if err != nil {
		return nil, err
	}
	method, err := GetMethod(methodID)
	if err != nil {
		return nil, core.NewValidationError(err, core.FieldError{Field: "method", Error: err.Error()})
	}

	fee := method.Fee(data.AmountAfterCredit)
	session := &PaymentSession{
		ID:           uuid.New().String(),
		ParentID:     parentID,
		Method:       method,
		Amount:       data.AmountAfterCredit,
		Fee:          fee,
		Total:        core.Round2(data.AmountAfterCredit + fee),
		status:       PaymentConfirm,
		ticks:        svc.conf.Payment.ProcessingTicks,
		tickInterval: svc.conf.Payment.TickInterval,
		failOnce:     svc.conf.Payment.SimulateFailure,
		onSettle:     svc.settle,
	}

	svc.mu.Lock()
	svc.sessions[session.ID] = session
	svc.mu.Unlock()
	return session, nil
}

func (svc *Service) GetSession(parentID, sessionID string) (*PaymentSession, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	session, ok := svc.sessions[sessionID]
	if !ok || session.ParentID != parentID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// settle runs once when a processing countdown reaches zero on the success
// path: it fabricates the receipt, stores it, clears the paid cart, discards
// the checkout data and emails a confirmation.
func (svc *Service) settle(session *PaymentSession) {
	svc.mu.Lock()
	data, ok := svc.checkouts[session.ParentID]
	if ok {
		delete(svc.checkouts, session.ParentID)
	}
	svc.mu.Unlock()
	if !ok {
		return
	}

	items, studentName := receiptItems(data)
	session.mu.Lock()
	session.success.Items, session.success.StudentName = items, studentName
	success := *session.success
	session.mu.Unlock()

	receipt := catalog.Receipt{
		ID:            success.ReceiptID,
		ParentID:      session.ParentID,
		Amount:        success.Amount,
		Fee:           success.Fee,
		PaymentDate:   success.PaymentDate,
		PaymentMethod: success.PaymentMethod,
		Items:         success.Items,
		StudentName:   success.StudentName,
	}
	if _, err := svc.catalogSvc.CreateReceipt(receipt); err != nil {
		svc.logger.Error(fmt.Sprintf("storing receipt %s: %v", receipt.ID, err), err)
	}

	var err error
	if data.Type == TypeTrips {
		err = svc.cartSvc.ClearTrips(session.ParentID, data.TripItems...)
	} else {
		err = svc.cartSvc.Clear(session.ParentID, data.Items...)
	}
	if err != nil {
		svc.logger.Error(fmt.Sprintf("clearing cart after payment %s: %v", receipt.ID, err), err)
	}

	svc.sendReceiptEmail(session.ParentID, receipt)
}

func (svc *Service) sendReceiptEmail(parentID string, receipt catalog.Receipt) {
	parent, err := svc.accountSvc.GetByID(parentID)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("finding parent for receipt %s: %v", receipt.ID, err), err)
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: parent.Name, Address: parent.Email}},
		Subject:      "Payment received: receipt " + receipt.ID,
		TemplateName: "receipt-confirmation",
		TemplateData: receipt,
	})
}

// receiptItems flattens the checkout data into receipt lines; the student
// name is echoed only when every line belongs to the same student.
func receiptItems(data *Data) ([]catalog.ReceiptItem, string) {
	var items []catalog.ReceiptItem
	if data.Type == TypeTrips {
		for _, it := range data.TripItems {
			items = append(items, catalog.ReceiptItem{
				ID: it.ID, Name: it.Name, Price: it.Price,
				StudentID: it.StudentID, StudentName: it.StudentName,
			})
		}
	} else {
		for _, it := range data.Items {
			items = append(items, catalog.ReceiptItem{
				ID: it.ID, Name: it.Name, Price: it.Price,
				StudentID: it.StudentID, StudentName: it.StudentName,
			})
		}
	}

	var name string
	for i, it := range items {
		if i == 0 {
			name = it.StudentName
		} else if it.StudentName != name {
			name = ""
			break
		}
	}
	return items, name
}

func findItem(items []cart.Item, ref ItemRef) (cart.Item, bool) {
	for _, it := range items {
		if it.ID == ref.ID && (ref.StudentID == "" || it.StudentID == ref.StudentID) {
			return it, true
		}
	}
	return cart.Item{}, false
}

func findTripItem(items []cart.TripItem, ref ItemRef) (cart.TripItem, bool) {
	for _, it := range items {
		if it.ID == ref.ID && (ref.StudentID == "" || it.StudentID == ref.StudentID) {
			return it, true
		}
	}
	return cart.TripItem{}, false
}
