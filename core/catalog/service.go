package catalog

import (
	"errors"
)

var (
	// errors
	ErrStudentNotFound    = errors.New("student not found")
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrCreditNoteNotFound = errors.New("credit note not found")
	ErrReceiptNotFound    = errors.New("receipt not found")
	ErrInvalidInvoiceType = errors.New("unknown invoice type")
)

type (
	Repository interface {
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id string) (Student, error)
		// FilterInvoices applies AND operation on available InvoiceFilter fields.
		FilterInvoices(filter InvoiceFilter) ([]Invoice, error)
		GetInvoiceByID(id string) (Invoice, error)
		QueryCreditNotes(studentIDs ...string) ([]CreditNote, error)
		GetCreditNoteByID(id int) (CreditNote, error)
		QueryTrips(studentIDs ...string) ([]Trip, error)
	}

	ReceiptRepository interface {
		CreateReceipt(rcp Receipt) (Receipt, error)
		QueryReceipts(parentID string) ([]Receipt, error)
		GetReceiptByID(id string) (Receipt, error)
	}

	Service struct {
		repo    Repository
		rcpRepo ReceiptRepository
	}
)

func NewService(repo Repository, rcpRepo ReceiptRepository) *Service {
	return &Service{repo: repo, rcpRepo: rcpRepo}
}

func (svc *Service) QueryStudents() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) GetStudent(id string) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

func (svc *Service) FilterInvoices(filter InvoiceFilter) ([]Invoice, error) {
	if filter.Type != "" && !IsValidInvoiceType(filter.Type) {
		return nil, ErrInvalidInvoiceType
	}
	return svc.repo.FilterInvoices(filter)
}

func (svc *Service) GetInvoice(id string) (Invoice, error) {
	return svc.repo.GetInvoiceByID(id)
}

func (svc *Service) QueryCreditNotes(studentIDs ...string) ([]CreditNote, error) {
	return svc.repo.QueryCreditNotes(studentIDs...)
}

func (svc *Service) GetCreditNote(id int) (CreditNote, error) {
	return svc.repo.GetCreditNoteByID(id)
}

func (svc *Service) QueryTrips(studentIDs ...string) ([]Trip, error) {
	return svc.repo.QueryTrips(studentIDs...)
}

// InvoiceGroups computes the per-student invoice groups for one invoice type,
// restricted to the given students (a parent's children).
func (svc *Service) InvoiceGroups(invType string, studentIDs []string) ([]InvoiceGroup, error) {
	if !IsValidInvoiceType(invType) {
		return nil, ErrInvalidInvoiceType
	}

	invoices, err := svc.repo.FilterInvoices(InvoiceFilter{Type: invType, StudentIDs: studentIDs})
	if err != nil {
		return nil, err
	}
	notes, err := svc.repo.QueryCreditNotes(studentIDs...)
	if err != nil {
		return nil, err
	}

	groups := make([]InvoiceGroup, 0, len(studentIDs))
	for _, sid := range studentIDs {
		student, err := svc.repo.GetStudentByID(sid)
		if err != nil {
			if err == ErrStudentNotFound {
				continue
			}
			return nil, err
		}

		group := InvoiceGroup{Student: student, Unpaid: []Invoice{}, Paid: []Invoice{}}
		for _, inv := range invoices {
			if inv.StudentID != sid {
				continue
			}
			if inv.Unpaid() {
				group.Unpaid = append(group.Unpaid, inv)
				group.TotalDue += inv.AmountDue
			} else {
				group.Paid = append(group.Paid, inv)
			}
		}
		for i := range notes {
			if notes[i].StudentID == sid {
				note := notes[i]
				group.CreditNote = &note
				break
			}
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func (svc *Service) CreateReceipt(rcp Receipt) (Receipt, error) {
	return svc.rcpRepo.CreateReceipt(rcp)
}

func (svc *Service) QueryReceipts(parentID string) ([]Receipt, error) {
	return svc.rcpRepo.QueryReceipts(parentID)
}

func (svc *Service) GetReceipt(id string) (Receipt, error) {
	return svc.rcpRepo.GetReceiptByID(id)
}
