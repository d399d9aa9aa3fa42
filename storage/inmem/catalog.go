package inmemdb

import (
	"sort"

	"github.com/psknn17/kingsportal/core/catalog"
)

type catalogRepository struct {
	db *catalogTable
}

func NewCatalogRepository(db *DB) catalog.Repository {
	return &catalogRepository{db: db.catalog}
}

func (repo *catalogRepository) QueryAllStudents() ([]catalog.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	students := make([]catalog.Student, 0, len(repo.db.students))
	for _, s := range repo.db.students {
		students = append(students, *s)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students, nil
}

func (repo *catalogRepository) GetStudentByID(id string) (catalog.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if s, ok := repo.db.students[id]; ok {
		return *s, nil
	}
	return catalog.Student{}, catalog.ErrStudentNotFound
}

func (repo *catalogRepository) FilterInvoices(filter catalog.InvoiceFilter) ([]catalog.Invoice, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	invoices := make([]catalog.Invoice, 0, len(repo.db.invoices))
	for _, inv := range repo.db.invoices {
		if filter.Matches(*inv) {
			invoices = append(invoices, *inv)
		}
	}
	sort.Slice(invoices, func(i, j int) bool { return invoices[i].ID < invoices[j].ID })
	return invoices, nil
}

func (repo *catalogRepository) GetInvoiceByID(id string) (catalog.Invoice, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if inv, ok := repo.db.invoices[id]; ok {
		return *inv, nil
	}
	return catalog.Invoice{}, catalog.ErrInvoiceNotFound
}

func (repo *catalogRepository) QueryCreditNotes(studentIDs ...string) ([]catalog.CreditNote, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	notes := make([]catalog.CreditNote, 0, len(repo.db.creditNotes))
	for _, note := range repo.db.creditNotes {
		if len(studentIDs) > 0 && !containsString(studentIDs, note.StudentID) {
			continue
		}
		notes = append(notes, *note)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })
	return notes, nil
}

func (repo *catalogRepository) GetCreditNoteByID(id int) (catalog.CreditNote, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if note, ok := repo.db.creditNotes[id]; ok {
		return *note, nil
	}
	return catalog.CreditNote{}, catalog.ErrCreditNoteNotFound
}

func (repo *catalogRepository) QueryTrips(studentIDs ...string) ([]catalog.Trip, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	trips := make([]catalog.Trip, 0, len(repo.db.trips))
	for _, t := range repo.db.trips {
		if len(studentIDs) > 0 && !containsString(studentIDs, t.StudentID) {
			continue
		}
		trips = append(trips, *t)
	}
	sort.Slice(trips, func(i, j int) bool { return trips[i].ID < trips[j].ID })
	return trips, nil
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
