// Package contactservice implements the directory service's domain layer:
// request validation and storage coordination, with change notification.
package contactservice

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/phonebook/internal/apperr"
	"github.com/starford/phonebook/internal/models"
	"github.com/starford/phonebook/internal/storage"
)

// Input carries the writable fields of a contact.
type Input struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

// Validate checks that both fields are present.
func (in Input) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Number, validation.Required),
	)
}

// Service coordinates storage operations and reports mutations.
type Service struct {
	store    storage.Provider
	onChange storage.ChangeFunc
}

// NewService creates a new contact service. onChange may be nil.
func NewService(store storage.Provider, onChange storage.ChangeFunc) *Service {
	return &Service{store: store, onChange: onChange}
}

// List returns the whole directory.
func (s *Service) List(ctx context.Context) ([]models.Contact, error) {
	return s.store.List(ctx)
}

// Get returns a single contact.
func (s *Service) Get(ctx context.Context, id string) (models.Contact, error) {
	return s.store.Get(ctx, id)
}

// Create validates in and stores it as a new contact. Names are not
// required to be unique; the client reconciles duplicates.
func (s *Service) Create(ctx context.Context, in Input) (models.Contact, error) {
	in = in.normalized()
	if err := in.Validate(); err != nil {
		return models.Contact{}, fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}
	c, err := s.store.Create(ctx, models.Contact{Name: in.Name, Number: in.Number})
	if err != nil {
		return models.Contact{}, err
	}
	s.changed(storage.KindCreated, c.ID)
	return c, nil
}

// Update replaces name and number of the contact with the given id.
func (s *Service) Update(ctx context.Context, id string, in Input) (models.Contact, error) {
	in = in.normalized()
	if err := in.Validate(); err != nil {
		return models.Contact{}, fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}
	c, err := s.store.Update(ctx, models.Contact{ID: id, Name: in.Name, Number: in.Number})
	if err != nil {
		return models.Contact{}, err
	}
	s.changed(storage.KindUpdated, c.ID)
	return c, nil
}

// Delete removes a contact.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.changed(storage.KindDeleted, id)
	return nil
}

func (s *Service) changed(kind, id string) {
	if s.onChange != nil {
		s.onChange(kind, id)
	}
}

func (in Input) normalized() Input {
	return Input{Name: strings.TrimSpace(in.Name), Number: strings.TrimSpace(in.Number)}
}
