package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/psknn17/kingsportal/core/catalog"
)

func TestCatalogAPI(t *testing.T) {
	srv := setup(t)
	token := getToken(t, srv.parent(t))

	tests := []httpTest{
		{
			name: "auth required", method: http.MethodGet, path: "/v1/catalog/students",
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "invoices of unknown type", method: http.MethodGet, path: "/v1/catalog/invoices?type=groceries",
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: catalog.ErrInvalidInvoiceType.Error()}),
		},
		{
			name: "groups of unknown type", method: http.MethodGet, path: "/v1/catalog/invoice-groups?type=groceries",
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: catalog.ErrInvalidInvoiceType.Error()}),
		},
		{
			name: "unknown receipt", method: http.MethodGet, path: "/v1/receipts/RCP-0",
			token:    token,
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			srv.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	// students are scoped to the logged-in parent
	req, rec := newAuthRequest(http.MethodGet, "/v1/catalog/students", token)
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}
	var students []catalog.Student
	if err := json.Unmarshal(rec.Body.Bytes(), &students); err != nil {
		t.Fatalf("unmarshalling students: %v", err)
	}
	if len(students) != 3 {
		t.Errorf("len(students) = %v, want 3", len(students))
	}

	// invoices filter by type and status
	req, rec = newAuthRequest(http.MethodGet, "/v1/catalog/invoices?type=eca&status=pending", token)
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}
	var invoices []catalog.Invoice
	if err := json.Unmarshal(rec.Body.Bytes(), &invoices); err != nil {
		t.Fatalf("unmarshalling invoices: %v", err)
	}
	if len(invoices) != 2 {
		t.Errorf("len(invoices) = %v, want 2", len(invoices))
	}
	for _, inv := range invoices {
		if inv.Type != catalog.InvoiceECA || inv.Status != catalog.StatusPending {
			t.Errorf("invoice %s = %s/%s, want eca/pending", inv.ID, inv.Type, inv.Status)
		}
	}

	// invoice groups come back per student
	req, rec = newAuthRequest(http.MethodGet, "/v1/catalog/invoice-groups?type=tuition", token)
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}
	var groups []catalog.InvoiceGroup
	if err := json.Unmarshal(rec.Body.Bytes(), &groups); err != nil {
		t.Fatalf("unmarshalling groups: %v", err)
	}
	if len(groups) != 3 {
		t.Errorf("len(groups) = %v, want 3", len(groups))
	}

	// credit notes and trips are parent-scoped
	req, rec = newAuthRequest(http.MethodGet, "/v1/catalog/credit-notes", token)
	srv.ServeHTTP(rec, req)
	var notes []catalog.CreditNote
	if err := json.Unmarshal(rec.Body.Bytes(), &notes); err != nil {
		t.Fatalf("unmarshalling credit notes: %v", err)
	}
	if len(notes) != 2 {
		t.Errorf("len(notes) = %v, want 2", len(notes))
	}

	req, rec = newAuthRequest(http.MethodGet, "/v1/catalog/trips", token)
	srv.ServeHTTP(rec, req)
	var trips []catalog.Trip
	if err := json.Unmarshal(rec.Body.Bytes(), &trips); err != nil {
		t.Fatalf("unmarshalling trips: %v", err)
	}
	if len(trips) != 3 {
		t.Errorf("len(trips) = %v, want 3", len(trips))
	}
}
