package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator"
	"github.com/msomdec/employee-pass/internal/domain"
)

const msgFieldsRequired = "All fields are required."

// RegistrationInput is what the registration form submits. Photo is the raw
// uploaded file, possibly empty.
type RegistrationInput struct {
	Name       string
	EmployeeID string
	Photo      []byte
}

// registrationForm is the input checked by the validator. Values are kept
// exactly as entered; only the empty string counts as missing.
type registrationForm struct {
	Name       string `validate:"required"`
	EmployeeID string `validate:"required"`
	Photo      string `validate:"required"`
}

// editForm is the admin edit draft.
type editForm struct {
	Name       string `validate:"required"`
	EmployeeID string `validate:"required"`
}

// RegistrationService validates input and adds records to the store.
type RegistrationService struct {
	store    *EmployeeStore
	validate *validator.Validate
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(store *EmployeeStore) *RegistrationService {
	return &RegistrationService{store: store, validate: validator.New()}
}

// Register converts the photo, checks that every field is present and appends
// the new record. On any validation failure the collection is unchanged.
func (s *RegistrationService) Register(ctx context.Context, in RegistrationInput) (*domain.Employee, error) {
	photo, err := EncodePhoto(in.Photo)
	if err != nil {
		return nil, err
	}

	form := registrationForm{
		Name:       in.Name,
		EmployeeID: in.EmployeeID,
		Photo:      photo,
	}
	if err := s.validate.Struct(form); err != nil {
		return nil, domain.Invalid(msgFieldsRequired)
	}

	e, err := s.store.Create(ctx, form.Name, form.EmployeeID, form.Photo)
	if err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}
	return e, nil
}

// Edit applies an admin edit to the record with the given id.
func (s *RegistrationService) Edit(ctx context.Context, id, name, employeeID string) (*domain.Employee, error) {
	form := editForm{
		Name:       name,
		EmployeeID: employeeID,
	}
	if err := s.validate.Struct(form); err != nil {
		return nil, domain.Invalid("Name and employee ID are required.")
	}

	e, err := s.store.Update(ctx, id, form.Name, form.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("update employee: %w", err)
	}
	return e, nil
}
