package checkout

import (
	"strconv"
	"sync"
	"time"
)

// Payment session statuses
const (
	PaymentConfirm    = "confirm"
	PaymentProcessing = "processing"
	PaymentSuccess    = "success"
	PaymentFailed     = "failed"
	PaymentCancelled  = "cancelled"
)

var NowFunc = time.Now // mockable

// PaymentSession is the simulated payment state machine:
//
//	confirm -> processing -> success
//	confirm|processing -> cancelled  (no side effects)
//	processing -> failed             (only when failure simulation is on)
//	failed -> processing             (retry)
//
// Processing runs a fixed per-second countdown; there is no network call and
// no partial-failure semantics: reaching zero settles the payment.
type PaymentSession struct {
	ID       string
	ParentID string
	Method   Method
	Amount   float64 // amount after credit
	Fee      float64
	Total    float64

	mu          sync.Mutex
	status      string
	secondsLeft int
	stop        chan struct{}
	stopped     bool
	success     *SuccessData

	ticks        int
	tickInterval time.Duration
	failOnce     bool // simulate one failure before succeeding
	onSettle     func(s *PaymentSession)
}

// Snapshot is the client view of a payment session.
type Snapshot struct {
	ID          string       `json:"id"`
	Status      string       `json:"status"`
	Method      string       `json:"payment_method"`
	Amount      float64      `json:"amount"`
	Fee         float64      `json:"payment_fee"`
	Total       float64      `json:"total_amount"`
	SecondsLeft int          `json:"seconds_left"`
	Success     *SuccessData `json:"success,omitempty"`
}

func (s *PaymentSession) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:          s.ID,
		Status:      s.status,
		Method:      s.Method.ID,
		Amount:      s.Amount,
		Fee:         s.Fee,
		Total:       s.Total,
		SecondsLeft: s.secondsLeft,
		Success:     s.success,
	}
}

func (s *PaymentSession) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Confirm transitions confirm -> processing and starts the countdown.
func (s *PaymentSession) Confirm() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != PaymentConfirm {
		return ErrInvalidPaymentState
	}
	s.startProcessing()
	return nil
}

// Retry transitions failed -> processing. The failed state is only reachable
// when failure simulation is enabled.
func (s *PaymentSession) Retry() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != PaymentFailed {
		return ErrInvalidPaymentState
	}
	s.failOnce = false
	s.startProcessing()
	return nil
}

// Cancel aborts from confirm or processing with no side effects; the caller
// returns to the previous view with the cart and checkout data intact.
func (s *PaymentSession) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != PaymentConfirm && s.status != PaymentProcessing {
		return ErrInvalidPaymentState
	}
	s.status = PaymentCancelled
	s.halt()
	return nil
}

// startProcessing arms the processing countdown. Callers hold s.mu.
func (s *PaymentSession) startProcessing() {
	s.status = PaymentProcessing
	s.secondsLeft = s.ticks
	s.stop = make(chan struct{})
	s.stopped = false
	go s.run(s.stop)
}

func (s *PaymentSession) run(stop chan struct{}) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if s.tick() {
				return
			}
		case <-stop:
			return
		}
	}
}

// tick counts one second down; at zero it settles the session. It reports
// whether the run loop should exit.
func (s *PaymentSession) tick() bool {
	s.mu.Lock()
	if s.status != PaymentProcessing {
		s.mu.Unlock()
		return true
	}
	s.secondsLeft--
	if s.secondsLeft > 0 {
		s.mu.Unlock()
		return false
	}
	s.secondsLeft = 0
	s.halt()

	if s.failOnce {
		s.status = PaymentFailed
		s.mu.Unlock()
		return true
	}

	now := NowFunc().UTC()
	s.status = PaymentSuccess
	s.success = &SuccessData{
		ReceiptID:     "RCP-" + strconv.FormatInt(now.Unix(), 10),
		Amount:        s.Total,
		Fee:           s.Fee,
		PaymentDate:   now,
		PaymentMethod: s.Method.ID,
	}
	s.mu.Unlock()

	if s.onSettle != nil {
		s.onSettle(s)
	}
	return true
}

func (s *PaymentSession) halt() {
	if !s.stopped && s.stop != nil {
		s.stopped = true
		close(s.stop)
	}
}
