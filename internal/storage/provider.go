// Package storage defines the contact directory persistence abstraction
// and its SQLite and json-server compatible file drivers.
package storage

import (
	"context"
	"fmt"

	"github.com/starford/phonebook/internal/models"
)

// Change kinds reported through a ChangeFunc.
const (
	KindCreated = "created"
	KindUpdated = "updated"
	KindDeleted = "deleted"
)

// ChangeFunc is called after a directory mutation. kind is one of
// KindCreated, KindUpdated, KindDeleted.
type ChangeFunc func(kind, id string)

// Provider is the interface for directory persistence. Missing ids are
// reported as apperr.ErrNotFound.
type Provider interface {
	// List returns every contact in insertion order.
	List(ctx context.Context) ([]models.Contact, error)
	// Get returns the contact with the given id.
	Get(ctx context.Context, id string) (models.Contact, error)
	// Create stores c under a newly assigned id and returns the stored record.
	Create(ctx context.Context, c models.Contact) (models.Contact, error)
	// Update replaces the record identified by c.ID.
	Update(ctx context.Context, c models.Contact) (models.Contact, error)
	// Delete removes the record with the given id.
	Delete(ctx context.Context, id string) error
	// Close releases the underlying resources.
	Close() error
}

// Drivers accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverJSONFile = "jsonfile"
)

// Open returns the provider for driver, stored at path.
func Open(driver, path string) (Provider, error) {
	switch driver {
	case DriverSQLite:
		return OpenSQLite(path)
	case DriverJSONFile:
		return OpenJSONFile(path)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", driver)
	}
}
