package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/starford/phonebook/internal/apperr"
	"github.com/starford/phonebook/internal/checksum"
	"github.com/starford/phonebook/internal/models"
)

// personsKey is the collection json-server serves at /persons.
const personsKey = "persons"

// JSONFile implements Provider on a json-server compatible database file
// such as:
//
//	{"persons": [{"id": "1", "name": "Arto Hellas", "number": "040-123456"}]}
//
// Other top-level collections in the file are preserved untouched.
type JSONFile struct {
	path string

	mu      sync.Mutex
	persons []models.Contact
	rest    map[string]json.RawMessage
	sum     string // checksum of the file content last read or written
}

var _ Provider = (*JSONFile)(nil)

// OpenJSONFile loads the database at path, creating an empty one if the
// file does not exist.
func OpenJSONFile(path string) (*JSONFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve path: %w", err)
	}
	f := &JSONFile{path: abs, persons: []models.Contact{}, rest: map[string]json.RawMessage{}}

	data, err := os.ReadFile(abs)
	if errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return nil, fmt.Errorf("storage: mkdir: %w", err)
		}
		if err := f.flush(); err != nil {
			return nil, err
		}
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", abs, err)
	}
	persons, rest, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	f.persons, f.rest, f.sum = persons, rest, checksum.Sum(data)
	return f, nil
}

// Path returns the absolute path of the database file.
func (f *JSONFile) Path() string {
	return f.path
}

// Close is a no-op; every mutation is flushed immediately.
func (f *JSONFile) Close() error {
	return nil
}

// List returns a copy of all contacts in file order.
func (f *JSONFile) List(_ context.Context) ([]models.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.persons), nil
}

// Get returns a single contact.
func (f *JSONFile) Get(_ context.Context, id string) (models.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := models.IndexOf(f.persons, id)
	if i < 0 {
		return models.Contact{}, apperr.ErrNotFound
	}
	return f.persons[i], nil
}

// Create appends a contact under a fresh id.
func (f *JSONFile) Create(_ context.Context, c models.Contact) (models.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for {
		c.ID = uuid.NewString()
		if models.IndexOf(f.persons, c.ID) < 0 {
			break
		}
	}
	prev := f.persons
	f.persons = append(slices.Clone(prev), c)
	if err := f.flush(); err != nil {
		f.persons = prev
		return models.Contact{}, err
	}
	return c, nil
}

// Update replaces the contact with c.ID in place.
func (f *JSONFile) Update(_ context.Context, c models.Contact) (models.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := models.IndexOf(f.persons, c.ID)
	if i < 0 {
		return models.Contact{}, apperr.ErrNotFound
	}
	prev := f.persons
	f.persons = slices.Clone(prev)
	f.persons[i] = c
	if err := f.flush(); err != nil {
		f.persons = prev
		return models.Contact{}, err
	}
	return c, nil
}

// Delete removes the contact with the given id.
func (f *JSONFile) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := models.IndexOf(f.persons, id)
	if i < 0 {
		return apperr.ErrNotFound
	}
	prev := f.persons
	f.persons = slices.Delete(slices.Clone(prev), i, i+1)
	if err := f.flush(); err != nil {
		f.persons = prev
		return err
	}
	return nil
}

// Change describes one record difference found by Reload.
type Change struct {
	Kind string
	ID   string
}

// Reload re-reads the file from disk and returns the per-id differences
// against the in-memory directory. Content identical to what was last
// read or written yields no changes.
func (f *JSONFile) Reload() ([]Change, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", f.path, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	sum := checksum.Sum(data)
	if sum == f.sum {
		return nil, nil
	}
	persons, rest, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	changes := diff(f.persons, persons)
	f.persons, f.rest, f.sum = persons, rest, sum
	return changes, nil
}

func diff(old, cur []models.Contact) []Change {
	var out []Change
	for _, c := range cur {
		i := models.IndexOf(old, c.ID)
		switch {
		case i < 0:
			out = append(out, Change{Kind: KindCreated, ID: c.ID})
		case old[i] != c:
			out = append(out, Change{Kind: KindUpdated, ID: c.ID})
		}
	}
	for _, c := range old {
		if models.IndexOf(cur, c.ID) < 0 {
			out = append(out, Change{Kind: KindDeleted, ID: c.ID})
		}
	}
	return out
}

func decodeDocument(data []byte) ([]models.Contact, map[string]json.RawMessage, error) {
	rest := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &rest); err != nil {
			return nil, nil, fmt.Errorf("storage: decode database: %w", err)
		}
	}

	persons := []models.Contact{}
	if raw, ok := rest[personsKey]; ok {
		if err := json.Unmarshal(raw, &persons); err != nil {
			return nil, nil, fmt.Errorf("storage: decode %s: %w", personsKey, err)
		}
		if persons == nil {
			persons = []models.Contact{}
		}
		delete(rest, personsKey)
	}
	return persons, rest, nil
}

// flush writes the whole document atomically: tmp file → fsync → rename.
// Callers hold f.mu.
func (f *JSONFile) flush() error {
	doc := make(map[string]any, len(f.rest)+1)
	for k, v := range f.rest {
		doc[k] = v
	}
	doc[personsKey] = f.persons
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode database: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".phonebook-tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("storage: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("storage: rename: %w", err)
	}
	success = true
	f.sum = checksum.Sum(data)
	return nil
}
