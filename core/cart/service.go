package cart

import (
	"errors"
	"sync"

	"github.com/psknn17/kingsportal/core"
)

var (
	// errors
	ErrItemNotFound = errors.New("item not found in cart")
)

type (
	// Repository persists cart contents per parent. Implementations only
	// store; all invariants live in the Service, which serializes every
	// mutation so carts behave like the single-threaded original.
	Repository interface {
		CartItems(parentID string) ([]Item, error)
		SaveCartItems(parentID string, items []Item) error
		TripItems(parentID string) ([]TripItem, error)
		SaveTripItems(parentID string, items []TripItem) error
	}

	Service struct {
		conf   *core.Config
		logger core.Logger
		repo   Repository

		mu         sync.Mutex
		countdowns map[string]*Countdown // parentID -> armed countdown
	}
)

func NewService(conf *core.Config, logger core.Logger, repo Repository) *Service {
	return &Service{
		conf:       conf,
		logger:     logger,
		repo:       repo,
		countdowns: make(map[string]*Countdown),
	}
}

// Add appends an item to the parent's cart. It reports false when an item
// with the same (id, student id) is already present; the cart is unchanged in
// that case. Adding a time-sensitive item arms the seat-hold countdown, or
// extends an armed one by the per-course increment.
func (svc *Service) Add(parentID string, item Item) (bool, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	items, err := svc.repo.CartItems(parentID)
	if err != nil {
		return false, err
	}
	for _, it := range items {
		if it.Key() == item.Key() {
			return false, nil
		}
	}

	items = append(items, item)
	if err := svc.repo.SaveCartItems(parentID, items); err != nil {
		return false, err
	}

	if item.TimeSensitive() {
		if cd, ok := svc.countdowns[parentID]; ok && cd.Armed() {
			cd.Extend(int(svc.conf.Cart.CountdownPerCourse.Seconds()))
		} else {
			svc.arm(parentID, countTimeSensitive(items))
		}
	}
	return true, nil
}

// arm starts the countdown at base + n*perCourse seconds, n being the
// time-sensitive item count at arm time. Callers hold svc.mu.
func (svc *Service) arm(parentID string, n int) {
	seconds := int(svc.conf.Cart.CountdownBase.Seconds()) + n*int(svc.conf.Cart.CountdownPerCourse.Seconds())
	svc.countdowns[parentID] = newCountdown(seconds, svc.conf.Cart.TickInterval, func() {
		if err := svc.evictTimeSensitive(parentID); err != nil && svc.logger != nil {
			svc.logger.Error("evicting expired cart items: "+err.Error(), err)
		}
	})
}

// Remove filters out matching entries; studentID "" matches on itemID alone.
// When no time-sensitive item remains the countdown is disarmed (without the
// eviction side effect).
func (svc *Service) Remove(parentID, itemID, studentID string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	items, err := svc.repo.CartItems(parentID)
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, it := range items {
		if it.ID == itemID && (studentID == "" || it.StudentID == studentID) {
			continue
		}
		kept = append(kept, it)
	}
	if len(kept) == len(items) {
		return ErrItemNotFound
	}
	if err := svc.repo.SaveCartItems(parentID, kept); err != nil {
		return err
	}
	svc.disarmIfIdle(parentID, kept)
	return nil
}

// Contains reports whether an item is in the cart; studentID "" matches on
// itemID alone (simple invoice types hold at most one instance per id).
func (svc *Service) Contains(parentID, itemID, studentID string) (bool, error) {
	items, err := svc.repo.CartItems(parentID)
	if err != nil {
		return false, err
	}
	for _, it := range items {
		if it.ID == itemID && (studentID == "" || it.StudentID == studentID) {
			return true, nil
		}
	}
	return false, nil
}

func (svc *Service) Items(parentID string) ([]Item, error) {
	return svc.repo.CartItems(parentID)
}

// Clear drops the selected (paid) items from the parent's cart, or the whole
// cart when no selection is given, and disarms the countdown when no
// time-sensitive item survives.
func (svc *Service) Clear(parentID string, selected ...Item) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	var kept []Item
	if len(selected) > 0 {
		items, err := svc.repo.CartItems(parentID)
		if err != nil {
			return err
		}
		kept = items[:0]
		for _, it := range items {
			if !containsKey(selected, it.Key()) {
				kept = append(kept, it)
			}
		}
	}
	if err := svc.repo.SaveCartItems(parentID, kept); err != nil {
		return err
	}
	svc.disarmIfIdle(parentID, kept)
	return nil
}

func containsKey(items []Item, key string) bool {
	for _, it := range items {
		if it.Key() == key {
			return true
		}
	}
	return false
}

// Countdown returns the remaining seconds and whether a countdown is armed.
func (svc *Service) Countdown(parentID string) (int, bool) {
	svc.mu.Lock()
	cd, ok := svc.countdowns[parentID]
	svc.mu.Unlock()
	if !ok || !cd.Armed() {
		return 0, false
	}
	return cd.Remaining(), true
}

// CancelCountdown gives the held seats up: same eviction side effect as
// expiry, triggered synchronously by the parent.
func (svc *Service) CancelCountdown(parentID string) error {
	svc.mu.Lock()
	cd, ok := svc.countdowns[parentID]
	if ok {
		cd.Cancel()
	}
	svc.mu.Unlock()
	if !ok {
		return nil
	}
	return svc.evictTimeSensitive(parentID)
}

// evictTimeSensitive drops every time-sensitive item and drops the countdown.
func (svc *Service) evictTimeSensitive(parentID string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	delete(svc.countdowns, parentID)

	items, err := svc.repo.CartItems(parentID)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, it := range items {
		if !it.TimeSensitive() {
			kept = append(kept, it)
		}
	}
	return svc.repo.SaveCartItems(parentID, kept)
}

// disarmIfIdle drops the countdown when no time-sensitive item remains.
// Callers hold svc.mu.
func (svc *Service) disarmIfIdle(parentID string, items []Item) {
	if countTimeSensitive(items) > 0 {
		return
	}
	if cd, ok := svc.countdowns[parentID]; ok {
		cd.Disarm()
		delete(svc.countdowns, parentID)
	}
}

// Trip cart: parallel, independently-keyed operations; no countdown.

func (svc *Service) AddTrip(parentID string, item TripItem) (bool, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	items, err := svc.repo.TripItems(parentID)
	if err != nil {
		return false, err
	}
	for _, it := range items {
		if it.Key() == item.Key() {
			return false, nil
		}
	}
	return true, svc.repo.SaveTripItems(parentID, append(items, item))
}

func (svc *Service) RemoveTrip(parentID, itemID, studentID string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	items, err := svc.repo.TripItems(parentID)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, it := range items {
		if it.ID == itemID && (studentID == "" || it.StudentID == studentID) {
			continue
		}
		kept = append(kept, it)
	}
	if len(kept) == len(items) {
		return ErrItemNotFound
	}
	return svc.repo.SaveTripItems(parentID, kept)
}

func (svc *Service) ContainsTrip(parentID, itemID, studentID string) (bool, error) {
	items, err := svc.repo.TripItems(parentID)
	if err != nil {
		return false, err
	}
	for _, it := range items {
		if it.ID == itemID && (studentID == "" || it.StudentID == studentID) {
			return true, nil
		}
	}
	return false, nil
}

func (svc *Service) TripItems(parentID string) ([]TripItem, error) {
	return svc.repo.TripItems(parentID)
}

// ClearTrips mirrors Clear for the trip cart (no countdown to disarm).
func (svc *Service) ClearTrips(parentID string, selected ...TripItem) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	var kept []TripItem
	if len(selected) > 0 {
		items, err := svc.repo.TripItems(parentID)
		if err != nil {
			return err
		}
		kept = items[:0]
		for _, it := range items {
			var paid bool
			for _, sel := range selected {
				if sel.Key() == it.Key() {
					paid = true
					break
				}
			}
			if !paid {
				kept = append(kept, it)
			}
		}
	}
	return svc.repo.SaveTripItems(parentID, kept)
}
