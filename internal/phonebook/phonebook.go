// Package phonebook is the client-side core of the phonebook: the
// directory held for the session, the filtered view of it, the
// create-or-update reconciliation run when a name is submitted, and the
// transient notification shown after each remote operation.
//
// All state lives in one State value owned by an App. Remote calls are
// made through the Remote interface and user decisions through the
// Prompter interface, so front ends (terminal UI, command line, MCP) only
// differ in how they render State and answer prompts.
package phonebook

import (
	"context"
	"errors"

	"github.com/starford/phonebook/internal/models"
)

// Contact is a directory entry.
type Contact = models.Contact

var (
	// ErrStaleRecord reports that a contact no longer exists on the
	// directory service.
	ErrStaleRecord = errors.New("phonebook: record no longer exists on server")

	// ErrMissingField reports a submit without a name or a number.
	ErrMissingField = errors.New("phonebook: name and number are required")
)

// Remote is the directory service collaborator.
type Remote interface {
	List(ctx context.Context) ([]Contact, error)
	Create(ctx context.Context, c Contact) (Contact, error)
	// Update replaces the record with the given id. A record that no
	// longer exists is reported as ErrStaleRecord.
	Update(ctx context.Context, id string, c Contact) (Contact, error)
	Delete(ctx context.Context, id string) error
}

// Prompter asks the user for decisions. Both methods block until the user
// has answered.
type Prompter interface {
	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, text string) bool
	// Alert shows a message that must be acknowledged.
	Alert(ctx context.Context, text string)
}
