package inmemdb

import (
	"fmt"
	"strings"

	"github.com/psknn17/kingsportal/core/account"
)

type parentRepository struct {
	db *parentTable
}

func NewParentRepository(db *DB) account.Repository {
	return &parentRepository{db: db.parent}
}

func (repo *parentRepository) CreateParent(p account.Parent) (account.Parent, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, other := range repo.db.table {
		if strings.EqualFold(other.Email, p.Email) {
			return account.Parent{}, account.ErrEmailExists
		}
	}

	if p.ID == "" {
		repo.db.seq++
		p.ID = fmt.Sprintf("prt-%03d", repo.db.seq)
	}
	repo.db.table[p.ID] = &p
	return p, nil
}

func (repo *parentRepository) GetParentByID(id string) (account.Parent, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if p, ok := repo.db.table[id]; ok {
		return *p, nil
	}
	return account.Parent{}, account.ErrNotFound
}

func (repo *parentRepository) GetParentByEmail(email string) (account.Parent, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, p := range repo.db.table {
		if strings.EqualFold(p.Email, email) {
			return *p, nil
		}
	}
	return account.Parent{}, account.ErrNotFound
}

func (repo *parentRepository) QueryAllParents() ([]account.Parent, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	parents := make([]account.Parent, 0, len(repo.db.table))
	for _, p := range repo.db.table {
		parents = append(parents, *p)
	}
	return parents, nil
}

func (repo *parentRepository) UpdateParent(p account.Parent) (account.Parent, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[p.ID]; !ok {
		return account.Parent{}, account.ErrNotFound
	}
	repo.db.table[p.ID] = &p
	return p, nil
}
