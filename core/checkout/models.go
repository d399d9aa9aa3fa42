package checkout

import (
	"time"

	"github.com/psknn17/kingsportal/core/cart"
	"github.com/psknn17/kingsportal/core/catalog"
)

// Checkout types
const (
	TypeTuition    = "tuition"
	TypeActivities = "activities"
	TypeTrips      = "trips"
)

func IsValidType(t string) bool {
	return t == TypeTuition || t == TypeActivities || t == TypeTrips
}

// Data is the transient checkout handoff built when a cart view navigates to
// the checkout view. It is discarded after payment success or cancel; the
// owning cart is not touched until then.
type Data struct {
	Type              string               `json:"type"`
	Items             []cart.Item          `json:"items,omitempty"`
	TripItems         []cart.TripItem      `json:"trip_items,omitempty"`
	CreditNotes       []catalog.CreditNote `json:"selected_credit_notes,omitempty"`
	Invoice           *catalog.Invoice     `json:"invoice,omitempty"`
	Subtotal          float64              `json:"subtotal"`
	CreditApplied     float64              `json:"total_credit_applied"`
	AmountAfterCredit float64              `json:"amount_after_credit"`
	CreatedAt         time.Time            `json:"created_at"` // UTC
}

// Quote is the fee breakdown for one payment method over a checkout's
// amount-after-credit. Selecting a method is purely a client-side/local
// recomputation; quotes carry no server-side state.
type Quote struct {
	Method string  `json:"method"`
	Name   string  `json:"name"`
	Fee    float64 `json:"payment_fee"`
	Total  float64 `json:"total_amount"`
}

// SuccessData is produced by the simulated payment step and consumed once by
// the success screen.
type SuccessData struct {
	ReceiptID     string                `json:"receipt_id"`
	Amount        float64               `json:"amount"`
	Fee           float64               `json:"payment_fee"`
	PaymentDate   time.Time             `json:"payment_date"` // UTC
	PaymentMethod string                `json:"payment_method"`
	Items         []catalog.ReceiptItem `json:"items"`
	StudentName   string                `json:"student_name,omitempty"`
}
