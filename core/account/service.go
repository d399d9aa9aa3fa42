package account

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/psknn17/kingsportal/core"
)

var (
	// errors
	ErrNotFound    = errors.New("parent account not found")
	ErrEmailExists = errors.New("an account with this email already exists")
)

type (
	Repository interface {
		CreateParent(p Parent) (Parent, error)
		GetParentByID(id string) (Parent, error)
		GetParentByEmail(email string) (Parent, error)
		QueryAllParents() ([]Parent, error)
		UpdateParent(p Parent) (Parent, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(np NewParent) (Parent, error) {
	if _, err := svc.repo.GetParentByEmail(np.Email); err == nil {
		return Parent{}, core.NewValidationError(ErrEmailExists, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
	} else if err != ErrNotFound {
		return Parent{}, err
	}

	now := time.Now().UTC()
	p := Parent{
		Name:       np.Name,
		Email:      np.Email,
		Phone:      np.Phone,
		StudentIDs: np.StudentIDs,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := p.SetPIN(np.PIN); err != nil {
		return Parent{}, err
	}
	return svc.repo.CreateParent(p)
}

func (svc *Service) GetByID(id string) (Parent, error) {
	return svc.repo.GetParentByID(id)
}

func (svc *Service) GetByEmail(email string) (Parent, error) {
	return svc.repo.GetParentByEmail(core.CleanString(email, true /* lower */))
}

func (svc *Service) QueryAll() ([]Parent, error) {
	return svc.repo.QueryAllParents()
}

// Authenticate checks the parent's PIN; it returns ErrNotFound both for an
// unknown email and a wrong PIN so callers cannot probe accounts.
func (svc *Service) Authenticate(email, pin string) (Parent, error) {
	p, err := svc.GetByEmail(email)
	if err != nil {
		return Parent{}, err
	}
	if err := p.CheckPIN(pin); err != nil {
		return Parent{}, ErrNotFound
	}
	return svc.SetLastLogin(p)
}

func (svc *Service) SetLastLogin(p Parent) (Parent, error) {
	p.LastLogin = time.Now().UTC()
	return svc.repo.UpdateParent(p)
}

func (svc *Service) ResetPIN(email, pin string) (Parent, error) {
	p, err := svc.GetByEmail(email)
	if err != nil {
		return Parent{}, err
	}
	if err := p.SetPIN(pin); err != nil {
		return Parent{}, err
	}
	p.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateParent(p)
}

// NewParent contains information needed to create a new Parent account.
type NewParent struct {
	Name       string   `json:"name" validate:"required"`
	Email      string   `json:"email" validate:"required,email"`
	Phone      string   `json:"phone"`
	PIN        string   `json:"pin" validate:"required,min=6"`
	StudentIDs []string `json:"student_ids"`
}

func (np *NewParent) Validate(validate *validator.Validate) error {
	np.Name = core.CleanString(np.Name)
	np.Email = core.CleanString(np.Email, true /* lower */)
	return validate.Struct(np)
}
