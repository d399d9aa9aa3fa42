package inmemdb

import (
	"time"

	"github.com/psknn17/kingsportal/core/account"
	"github.com/psknn17/kingsportal/core/catalog"
)

// Seed loads the demo catalog and the demo parent account into db. The portal
// ships with mock data only; Seed is called once at startup.
func Seed(db *DB) error {
	now := time.Now().UTC()
	term := "Term 1 2026/27"

	students := []catalog.Student{
		{ID: "std-001", Name: "Emma Smith", Class: "Year 4A", Campus: "Pracha Uthit", Avatar: "ES", Color: "#7C3AED", IsSISB: true},
		{ID: "std-002", Name: "Liam Smith", Class: "Year 7C", Campus: "Pracha Uthit", Avatar: "LS", Color: "#0EA5E9", IsSISB: true},
		{ID: "std-003", Name: "Olivia Smith", Class: "Year 2B", Campus: "Thonburi", Avatar: "OS", Color: "#F59E0B", IsSISB: false},
	}

	invoices := []catalog.Invoice{
		{ID: "inv-tui-001", StudentID: "std-001", Type: catalog.InvoiceTuition, AmountDue: 185000, DueDate: now.AddDate(0, 0, 14), Status: catalog.StatusPending, Description: "Tuition fee", Term: term},
		{ID: "inv-tui-002", StudentID: "std-002", Type: catalog.InvoiceTuition, AmountDue: 210000, DueDate: now.AddDate(0, 0, -7), Status: catalog.StatusOverdue, Description: "Tuition fee", Term: term},
		{ID: "inv-tui-003", StudentID: "std-003", Type: catalog.InvoiceTuition, AmountDue: 165000, DueDate: now.AddDate(0, -2, 0), Status: catalog.StatusPaid, Description: "Tuition fee", Term: "Term 3 2025/26"},
		{ID: "inv-eca-001", StudentID: "std-001", Type: catalog.InvoiceECA, AmountDue: 8500, DueDate: now.AddDate(0, 0, 10), Status: catalog.StatusPending, Description: "Swimming Squad (Mon/Wed)", Term: term},
		{ID: "inv-eca-002", StudentID: "std-002", Type: catalog.InvoiceECA, AmountDue: 7200, DueDate: now.AddDate(0, 0, 10), Status: catalog.StatusPending, Description: "Robotics Club (Tue/Thu)", Term: term},
		{ID: "inv-eca-003", StudentID: "std-001", Type: catalog.InvoiceECA, AmountDue: 6400, DueDate: now.AddDate(0, -1, 0), Status: catalog.StatusPaid, Description: "Art & Craft (Fri)", Term: "Term 3 2025/26"},
		{ID: "inv-trp-001", StudentID: "std-001", Type: catalog.InvoiceTrip, AmountDue: 3500, DueDate: now.AddDate(0, 0, 21), Status: catalog.StatusPending, Description: "Science Centre day trip", Term: term},
		{ID: "inv-trp-002", StudentID: "std-002", Type: catalog.InvoiceTrip, AmountDue: 12800, DueDate: now.AddDate(0, 0, 30), Status: catalog.StatusPending, Description: "Chiang Mai residential trip", Term: term},
		{ID: "inv-exm-001", StudentID: "std-002", Type: catalog.InvoiceExam, AmountDue: 4800, DueDate: now.AddDate(0, 0, 18), Status: catalog.StatusPending, Description: "Cambridge Checkpoint exam", Term: term},
		{ID: "inv-exm-002", StudentID: "std-001", Type: catalog.InvoiceExam, AmountDue: 2600, DueDate: now.AddDate(0, 0, 18), Status: catalog.StatusPartial, Description: "CAT4 assessment", Term: term},
		{ID: "inv-bus-001", StudentID: "std-001", Type: catalog.InvoiceSchoolBus, AmountDue: 15000, DueDate: now.AddDate(0, 0, 7), Status: catalog.StatusPending, Description: "School bus - Sukhumvit route", Term: term},
		{ID: "inv-bus-002", StudentID: "std-003", Type: catalog.InvoiceSchoolBus, AmountDue: 13500, DueDate: now.AddDate(0, 0, 7), Status: catalog.StatusPending, Description: "School bus - Thonburi route", Term: term},
	}

	creditNotes := []catalog.CreditNote{
		{ID: 1, StudentID: "std-001", Balance: 2500, Items: []catalog.CreditNoteItem{
			{Title: "Cancelled ECA refund", Amount: 1800},
			{Title: "Overpayment carried forward", Amount: 700},
		}},
		{ID: 2, StudentID: "std-002", Balance: 5000, Items: []catalog.CreditNoteItem{
			{Title: "Trip cancellation refund", Amount: 5000},
		}},
	}

	trips := []catalog.Trip{
		{ID: "trip-001", Name: "Science Centre day trip", Price: 3500, Date: now.AddDate(0, 1, 0), Location: "Bangkok", StudentID: "std-001"},
		{ID: "trip-002", Name: "Chiang Mai residential trip", Price: 12800, Date: now.AddDate(0, 2, 0), Location: "Chiang Mai", StudentID: "std-002"},
		{ID: "trip-003", Name: "Khao Yai nature camp", Price: 6900, Date: now.AddDate(0, 1, 15), Location: "Khao Yai", StudentID: "std-003"},
	}

	parent := account.Parent{
		ID:         "prt-001",
		Name:       "John Smith",
		Email:      "john.smith@example.com",
		Phone:      "+66 81 234 5678",
		StudentIDs: []string{"std-001", "std-002", "std-003"},
		CreatedAt:  now.AddDate(-1, 0, 0),
		UpdatedAt:  now.AddDate(-1, 0, 0),
	}
	if err := parent.SetPIN("123456"); err != nil {
		return err
	}

	receipt := catalog.Receipt{
		ID:            "RCP-1751356800",
		ParentID:      parent.ID,
		Amount:        6400,
		Fee:           0,
		PaymentDate:   now.AddDate(0, -1, 0),
		PaymentMethod: "promptpay",
		Items: []catalog.ReceiptItem{
			{ID: "inv-eca-003", Name: "Art & Craft (Fri)", Price: 6400, StudentID: "std-001", StudentName: "Emma Smith"},
		},
		StudentName: "Emma Smith",
	}

	db.catalog.Lock()
	for i := range students {
		db.catalog.students[students[i].ID] = &students[i]
	}
	for i := range invoices {
		db.catalog.invoices[invoices[i].ID] = &invoices[i]
	}
	for i := range creditNotes {
		db.catalog.creditNotes[creditNotes[i].ID] = &creditNotes[i]
	}
	for i := range trips {
		db.catalog.trips[trips[i].ID] = &trips[i]
	}
	db.catalog.Unlock()

	db.parent.Lock()
	db.parent.table[parent.ID] = &parent
	db.parent.seq = 1
	db.parent.Unlock()

	db.receipt.Lock()
	db.receipt.table[receipt.ID] = &receipt
	db.receipt.Unlock()

	return nil
}
