package phonebook

import (
	"slices"

	"github.com/starford/phonebook/internal/models"
)

// Notification is the transient status message. An empty Text means no
// message is shown. Generation identifies the message so that a clear
// scheduled for an older message cannot erase a newer one.
type Notification struct {
	Text       string
	IsError    bool
	Generation uint64
}

// Visible reports whether there is a message to show.
func (n Notification) Visible() bool {
	return n.Text != ""
}

// State is the whole client state. Transitions are pure: each With*
// method returns a new State and never modifies the receiver's slices.
type State struct {
	Contacts []Contact
	Filter   string
	Name     string
	Number   string
	Notice   Notification

	generation uint64
}

// Visible derives the filtered view from the directory and the current
// fragment.
func (s State) Visible() []Contact {
	return ApplyFilter(s.Filter, s.Contacts)
}

// WithContacts replaces the whole directory.
func (s State) WithContacts(contacts []Contact) State {
	s.Contacts = slices.Clone(contacts)
	return s
}

// WithAdded appends c to the directory.
func (s State) WithAdded(c Contact) State {
	s.Contacts = append(slices.Clone(s.Contacts), c)
	return s
}

// WithReplaced swaps the contact with c.ID for c, keeping its position.
// Unknown ids leave the directory unchanged.
func (s State) WithReplaced(c Contact) State {
	i := models.IndexOf(s.Contacts, c.ID)
	if i < 0 {
		return s
	}
	s.Contacts = slices.Clone(s.Contacts)
	s.Contacts[i] = c
	return s
}

// WithRemoved drops the contact with the given id.
func (s State) WithRemoved(id string) State {
	s.Contacts = slices.DeleteFunc(slices.Clone(s.Contacts), func(c Contact) bool {
		return c.ID == id
	})
	return s
}

// WithFilter sets the filter fragment.
func (s State) WithFilter(fragment string) State {
	s.Filter = fragment
	return s
}

// WithInputs sets the name and number form fields.
func (s State) WithInputs(name, number string) State {
	s.Name, s.Number = name, number
	return s
}

// WithNotice shows a new message under a fresh generation.
func (s State) WithNotice(text string, isError bool) State {
	s.generation++
	s.Notice = Notification{Text: text, IsError: isError, Generation: s.generation}
	return s
}

// WithoutNotice clears the message if it still carries generation gen.
func (s State) WithoutNotice(gen uint64) State {
	if s.Notice.Generation != gen {
		return s
	}
	s.Notice = Notification{Generation: gen}
	return s
}
