// Package models defines the domain types for the phonebook.
package models

import (
	"bytes"
	"encoding/json"
)

// Contact is a single phonebook entry. ID is assigned by the directory
// service and stays empty until the contact has been persisted.
type Contact struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Number string `json:"number"`
}

// UnmarshalJSON accepts numeric ids as well as strings; json-server and
// hand-written db.json files commonly use numbers.
func (c *Contact) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID     json.RawMessage `json:"id"`
		Name   string          `json:"name"`
		Number string          `json:"number"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*c = Contact{ID: decodeID(wire.ID), Name: wire.Name, Number: wire.Number}
	return nil
}

func decodeID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// IndexOf returns the position of the contact with the given id, or -1.
func IndexOf(contacts []Contact, id string) int {
	for i, c := range contacts {
		if c.ID == id {
			return i
		}
	}
	return -1
}
