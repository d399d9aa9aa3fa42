package inmemdb

import (
	"sort"

	"github.com/psknn17/kingsportal/core/catalog"
)

type receiptRepository struct {
	db *receiptTable
}

func NewReceiptRepository(db *DB) catalog.ReceiptRepository {
	return &receiptRepository{db: db.receipt}
}

func (repo *receiptRepository) CreateReceipt(rcp catalog.Receipt) (catalog.Receipt, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[rcp.ID] = &rcp
	return rcp, nil
}

func (repo *receiptRepository) QueryReceipts(parentID string) ([]catalog.Receipt, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	receipts := make([]catalog.Receipt, 0, len(repo.db.table))
	for _, rcp := range repo.db.table {
		if rcp.ParentID == parentID {
			receipts = append(receipts, *rcp)
		}
	}
	// newest first
	sort.Slice(receipts, func(i, j int) bool { return receipts[i].PaymentDate.After(receipts[j].PaymentDate) })
	return receipts, nil
}

func (repo *receiptRepository) GetReceiptByID(id string) (catalog.Receipt, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if rcp, ok := repo.db.table[id]; ok {
		return *rcp, nil
	}
	return catalog.Receipt{}, catalog.ErrReceiptNotFound
}
