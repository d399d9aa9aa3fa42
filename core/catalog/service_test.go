package catalog_test

import (
	"testing"

	"github.com/psknn17/kingsportal/core/catalog"
	inmemdb "github.com/psknn17/kingsportal/storage/inmem"
)

var seededStudents = []string{"std-001", "std-002", "std-003"}

func setup(t *testing.T) *catalog.Service {
	t.Helper()
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	if err = inmemdb.Seed(db); err != nil {
		t.Fatalf("seeding store: %v", err)
	}
	return catalog.NewService(inmemdb.NewCatalogRepository(db), inmemdb.NewReceiptRepository(db))
}

func TestService_FilterInvoices(t *testing.T) {
	svc := setup(t)

	tests := []struct {
		name    string
		filter  catalog.InvoiceFilter
		wantIDs []string
		wantErr error
	}{
		{
			name:    "by type",
			filter:  catalog.InvoiceFilter{Type: catalog.InvoiceECA},
			wantIDs: []string{"inv-eca-001", "inv-eca-002", "inv-eca-003"},
		},
		{
			name:    "by type and status",
			filter:  catalog.InvoiceFilter{Type: catalog.InvoiceECA, Status: catalog.StatusPaid},
			wantIDs: []string{"inv-eca-003"},
		},
		{
			name:    "by student",
			filter:  catalog.InvoiceFilter{Type: catalog.InvoiceTuition, StudentIDs: []string{"std-002"}},
			wantIDs: []string{"inv-tui-002"},
		},
		{
			name:    "unknown type",
			filter:  catalog.InvoiceFilter{Type: "groceries"},
			wantErr: catalog.ErrInvalidInvoiceType,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invoices, err := svc.FilterInvoices(tt.filter)
			if err != tt.wantErr {
				t.Fatalf("FilterInvoices() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if len(invoices) != len(tt.wantIDs) {
				t.Fatalf("len(FilterInvoices()) = %v, want %v", len(invoices), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if invoices[i].ID != id {
					t.Errorf("FilterInvoices()[%d].ID = %v, want %v", i, invoices[i].ID, id)
				}
			}
		})
	}
}

func TestService_InvoiceGroups(t *testing.T) {
	svc := setup(t)

	groups, err := svc.InvoiceGroups(catalog.InvoiceECA, seededStudents)
	if err != nil {
		t.Fatalf("InvoiceGroups() error = %v", err)
	}
	if len(groups) != len(seededStudents) {
		t.Fatalf("len(InvoiceGroups()) = %v, want %v", len(groups), len(seededStudents))
	}

	byStudent := make(map[string]catalog.InvoiceGroup, len(groups))
	for _, g := range groups {
		byStudent[g.Student.ID] = g
	}

	// std-001 has one unpaid and one paid ECA invoice, plus a credit note
	g := byStudent["std-001"]
	if len(g.Unpaid) != 1 || g.Unpaid[0].ID != "inv-eca-001" {
		t.Errorf("Unpaid = %v, want [inv-eca-001]", g.Unpaid)
	}
	if len(g.Paid) != 1 || g.Paid[0].ID != "inv-eca-003" {
		t.Errorf("Paid = %v, want [inv-eca-003]", g.Paid)
	}
	if g.TotalDue != 8500 {
		t.Errorf("TotalDue = %v, want 8500", g.TotalDue)
	}
	if g.CreditNote == nil || g.CreditNote.ID != 1 {
		t.Errorf("CreditNote = %v, want note 1", g.CreditNote)
	}

	// std-003 has no ECA invoices and no credit note: empty group, not absent
	g = byStudent["std-003"]
	if len(g.Unpaid) != 0 || len(g.Paid) != 0 || g.TotalDue != 0 {
		t.Errorf("std-003 group = %+v, want empty", g)
	}
	if g.CreditNote != nil {
		t.Errorf("CreditNote = %v, want nil", g.CreditNote)
	}

	// unknown students are skipped, not an error
	groups, err = svc.InvoiceGroups(catalog.InvoiceECA, []string{"std-001", "std-404"})
	if err != nil {
		t.Fatalf("InvoiceGroups() error = %v", err)
	}
	if len(groups) != 1 {
		t.Errorf("len(InvoiceGroups()) = %v, want 1", len(groups))
	}

	if _, err = svc.InvoiceGroups("groceries", seededStudents); err != catalog.ErrInvalidInvoiceType {
		t.Errorf("InvoiceGroups() error = %v, want %v", err, catalog.ErrInvalidInvoiceType)
	}
}

func TestService_receipts(t *testing.T) {
	svc := setup(t)

	receipts, err := svc.QueryReceipts("prt-001")
	if err != nil {
		t.Fatalf("QueryReceipts() error = %v", err)
	}
	if len(receipts) != 1 {
		t.Fatalf("len(QueryReceipts()) = %v, want 1", len(receipts))
	}

	rcp, err := svc.GetReceipt(receipts[0].ID)
	if err != nil {
		t.Fatalf("GetReceipt() error = %v", err)
	}
	if rcp.ParentID != "prt-001" {
		t.Errorf("ParentID = %v, want prt-001", rcp.ParentID)
	}

	if _, err = svc.GetReceipt("RCP-0"); err != catalog.ErrReceiptNotFound {
		t.Errorf("GetReceipt() error = %v, want %v", err, catalog.ErrReceiptNotFound)
	}
}
