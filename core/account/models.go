package account

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Parent is the portal session owner: the logged-in parent and the students
// they may pay for. It replaces the hardcoded current-user strings the portal
// views used to carry around.
type Parent struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	StudentIDs []string  `json:"student_ids"`
	PINHash    []byte    `json:"-"`
	CreatedAt  time.Time `json:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at"` // UTC
	LastLogin  time.Time `json:"last_login"` // UTC
}

func (p *Parent) SetPIN(pin string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.PINHash = hash
	return nil
}

func (p *Parent) CheckPIN(pin string) error {
	return bcrypt.CompareHashAndPassword(p.PINHash, []byte(pin))
}

func (p *Parent) HasStudent(studentID string) bool {
	for _, id := range p.StudentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}
