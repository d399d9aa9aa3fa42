package inmemdb

import (
	"sync"

	"github.com/psknn17/kingsportal/core/account"
	"github.com/psknn17/kingsportal/core/cart"
	"github.com/psknn17/kingsportal/core/catalog"
)

// DB is the portal's in-memory store. Everything lives in process memory and
// resets on restart, matching the mock-data nature of the portal.
type (
	DB struct {
		parent  *parentTable
		catalog *catalogTable
		cart    *cartTable
		receipt *receiptTable
	}

	parentTable struct {
		sync.RWMutex
		table map[string]*account.Parent
		seq   int
	}

	catalogTable struct {
		sync.RWMutex
		students    map[string]*catalog.Student
		invoices    map[string]*catalog.Invoice
		creditNotes map[int]*catalog.CreditNote
		trips       map[string]*catalog.Trip
	}

	cartTable struct {
		sync.RWMutex
		items map[string][]cart.Item     // parentID -> items
		trips map[string][]cart.TripItem // parentID -> trip items
	}

	receiptTable struct {
		sync.RWMutex
		table map[string]*catalog.Receipt
	}
)

func Open() (*DB, error) {
	db := &DB{
		parent: &parentTable{table: make(map[string]*account.Parent)},
		catalog: &catalogTable{
			students:    make(map[string]*catalog.Student),
			invoices:    make(map[string]*catalog.Invoice),
			creditNotes: make(map[int]*catalog.CreditNote),
			trips:       make(map[string]*catalog.Trip),
		},
		cart:    &cartTable{items: make(map[string][]cart.Item), trips: make(map[string][]cart.TripItem)},
		receipt: &receiptTable{table: make(map[string]*catalog.Receipt)},
	}
	return db, nil
}
