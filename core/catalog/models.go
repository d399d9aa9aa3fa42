package catalog

import "time"

// Invoice types
const (
	InvoiceTuition   = "tuition"
	InvoiceECA       = "eca"
	InvoiceTrip      = "trip"
	InvoiceExam      = "exam"
	InvoiceSchoolBus = "schoolbus"
)

// Invoice statuses
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusOverdue = "overdue"
	StatusPartial = "partial"
)

var InvoiceTypes = []string{InvoiceTuition, InvoiceECA, InvoiceTrip, InvoiceExam, InvoiceSchoolBus}

func IsValidInvoiceType(t string) bool {
	for _, it := range InvoiceTypes {
		if it == t {
			return true
		}
	}
	return false
}

type Student struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Class  string `json:"class"`
	Campus string `json:"campus"`
	Avatar string `json:"avatar"`
	Color  string `json:"color"`
	IsSISB bool   `json:"is_sisb"`
}

type Invoice struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"student_id"`
	Type        string    `json:"type"`
	AmountDue   float64   `json:"amount_due"`
	DueDate     time.Time `json:"due_date"` // UTC
	Status      string    `json:"status"`
	Description string    `json:"description"`
	Term        string    `json:"term"`
}

// Unpaid reports whether the invoice still needs (some) payment.
func (inv Invoice) Unpaid() bool { return inv.Status != StatusPaid }

type CreditNoteItem struct {
	Title  string  `json:"title"`
	Amount float64 `json:"amount"`
}

// CreditNote is a pre-existing balance that can offset a cart total at checkout.
// Catalog entries are read-only; selection is checkout-local state.
type CreditNote struct {
	ID        int              `json:"id"`
	StudentID string           `json:"student_id"`
	Balance   float64          `json:"balance"`
	Items     []CreditNoteItem `json:"items"`
}

type Trip struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Date      time.Time `json:"date"` // UTC
	Location  string    `json:"location"`
	StudentID string    `json:"student_id"`
}

type ReceiptItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	StudentID   string  `json:"student_id,omitempty"`
	StudentName string  `json:"student_name,omitempty"`
}

type Receipt struct {
	ID            string        `json:"id"`
	ParentID      string        `json:"parent_id"`
	Amount        float64       `json:"amount"`
	Fee           float64       `json:"fee"`
	PaymentDate   time.Time     `json:"payment_date"` // UTC
	PaymentMethod string        `json:"payment_method"`
	Items         []ReceiptItem `json:"items"`
	StudentName   string        `json:"student_name,omitempty"`
}

// InvoiceGroup is the per-student view of one invoice category: unpaid and
// paid invoices plus the student's credit note when one exists. It replaces
// the per-category filtering previously duplicated across every portal tab.
type InvoiceGroup struct {
	Student    Student     `json:"student"`
	Unpaid     []Invoice   `json:"unpaid"`
	Paid       []Invoice   `json:"paid"`
	TotalDue   float64     `json:"total_due"`
	CreditNote *CreditNote `json:"credit_note,omitempty"`
}

type InvoiceFilter struct {
	Type       string
	StudentIDs []string
	Status     string
}

// Matches is used by repositories to apply an InvoiceFilter.
func (f InvoiceFilter) Matches(inv Invoice) bool {
	if f.Type != "" && inv.Type != f.Type {
		return false
	}
	if f.Status != "" && inv.Status != f.Status {
		return false
	}
	if len(f.StudentIDs) > 0 {
		var found bool
		for _, id := range f.StudentIDs {
			if inv.StudentID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
