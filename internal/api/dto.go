package api

import (
	"encoding/json"

	"github.com/starford/phonebook/internal/contactservice"
	"github.com/starford/phonebook/internal/models"
)

// ContactRequest is the request body for POST /persons and PUT /persons/{id}.
// An id in a PUT body is accepted and ignored; the path id wins.
type ContactRequest struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Name   string          `json:"name" example:"Arto Hellas"`
	Number string          `json:"number" example:"040-123456"`
}

func (r ContactRequest) input() contactservice.Input {
	return contactservice.Input{Name: r.Name, Number: r.Number}
}

// Contact is the response representation of a directory entry.
type Contact = models.Contact
