package inmemdb

import (
	"github.com/psknn17/kingsportal/core/cart"
)

type cartRepository struct {
	db *cartTable
}

func NewCartRepository(db *DB) cart.Repository {
	return &cartRepository{db: db.cart}
}

func (repo *cartRepository) CartItems(parentID string) ([]cart.Item, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	items := make([]cart.Item, len(repo.db.items[parentID]))
	copy(items, repo.db.items[parentID])
	return items, nil
}

func (repo *cartRepository) SaveCartItems(parentID string, items []cart.Item) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	saved := make([]cart.Item, len(items))
	copy(saved, items)
	repo.db.items[parentID] = saved
	return nil
}

func (repo *cartRepository) TripItems(parentID string) ([]cart.TripItem, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	items := make([]cart.TripItem, len(repo.db.trips[parentID]))
	copy(items, repo.db.trips[parentID])
	return items, nil
}

func (repo *cartRepository) SaveTripItems(parentID string, items []cart.TripItem) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	saved := make([]cart.TripItem, len(items))
	copy(saved, items)
	repo.db.trips[parentID] = saved
	return nil
}
