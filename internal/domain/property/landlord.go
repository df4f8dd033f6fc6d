package property

import (
	"regexp"
	"strings"

	"github.com/rentledger/backend/internal/domain/shared"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Landlord owns properties
type Landlord struct {
	shared.BaseEntity
	Name  string
	Email string
}

// NewLandlord creates a landlord account
func NewLandlord(name, email string) (*Landlord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Name is required")
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	return &Landlord{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Email:      email,
	}, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(email) > 200 {
		return "", shared.NewValidationError("Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return "", shared.NewValidationError("Invalid email address")
	}
	return email, nil
}
