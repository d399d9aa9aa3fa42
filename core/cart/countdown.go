package cart

import (
	"sync"
	"time"
)

// Countdown statuses
const (
	CountdownArmed     = "armed"
	CountdownExpired   = "expired"
	CountdownCancelled = "cancelled"
)

// Countdown is the seat-hold timer armed when a time-sensitive item enters a
// cart. It decrements once per tick (one tick = one countdown second; the
// tick interval itself is configurable so tests can run sub-second) and never
// resyncs against the wall clock, mirroring the portal's original behavior.
//
// armed -> expired   when the remaining seconds reach zero (onExpire fires once)
// armed -> cancelled when the parent gives the seats up explicitly
type Countdown struct {
	mu        sync.Mutex
	remaining int // seconds
	status    string
	stop      chan struct{}
	stopped   bool
	onExpire  func()
}

// newCountdown arms a countdown for `seconds` and starts ticking immediately.
// onExpire is invoked from the ticker goroutine with no Countdown locks held.
func newCountdown(seconds int, tick time.Duration, onExpire func()) *Countdown {
	cd := &Countdown{
		remaining: seconds,
		status:    CountdownArmed,
		stop:      make(chan struct{}),
		onExpire:  onExpire,
	}
	go cd.run(tick)
	return cd
}

func (cd *Countdown) run(tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if cd.decrement() {
				if cd.onExpire != nil {
					cd.onExpire()
				}
				return
			}
		case <-cd.stop:
			return
		}
	}
}

// decrement ticks one second off; it reports whether the countdown expired.
func (cd *Countdown) decrement() bool {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	if cd.status != CountdownArmed {
		return false
	}
	cd.remaining--
	if cd.remaining <= 0 {
		cd.remaining = 0
		cd.status = CountdownExpired
		cd.halt()
		return true
	}
	return false
}

// Extend adds seconds to the remaining time (does not reset the window).
func (cd *Countdown) Extend(seconds int) {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	if cd.status == CountdownArmed {
		cd.remaining += seconds
	}
}

// Cancel transitions armed -> cancelled. The caller is responsible for the
// eviction side effect, which is the same as on expiry.
func (cd *Countdown) Cancel() {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	if cd.status == CountdownArmed {
		cd.status = CountdownCancelled
		cd.halt()
	}
}

// Disarm stops the countdown without marking it expired or cancelled; used
// when the last time-sensitive item leaves the cart and no eviction is due.
func (cd *Countdown) Disarm() {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	cd.halt()
}

func (cd *Countdown) halt() {
	if !cd.stopped {
		cd.stopped = true
		close(cd.stop)
	}
}

func (cd *Countdown) Remaining() int {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	return cd.remaining
}

func (cd *Countdown) Status() string {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	return cd.status
}

func (cd *Countdown) Armed() bool { return cd.Status() == CountdownArmed }
