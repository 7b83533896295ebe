package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/starford/phonebook/internal/models"
)

const courseDB = `{
  "persons": [
    {"name": "Arto Hellas", "number": "040-123456", "id": 1},
    {"name": "Ada Lovelace", "number": "39-44-5323523", "id": 2}
  ],
  "notes": [{"id": "1", "content": "HTML is easy"}]
}
`

func TestJSONFile_NumericIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	if err := os.WriteFile(path, []byte(courseDB), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := OpenJSONFile(path)
	if err != nil {
		t.Fatalf("OpenJSONFile: %v", err)
	}

	got, _ := f.List(context.Background())
	want := []models.Contact{
		{ID: "1", Name: "Arto Hellas", Number: "040-123456"},
		{ID: "2", Name: "Ada Lovelace", Number: "39-44-5323523"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}
	if _, err := f.Get(context.Background(), "2"); err != nil {
		t.Errorf("Get numeric id: %v", err)
	}
}

func TestJSONFile_PreservesOtherCollections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	if err := os.WriteFile(path, []byte(courseDB), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := OpenJSONFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Delete(context.Background(), "1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	data, _ := os.ReadFile(path)
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("rewritten file is not JSON: %v", err)
	}
	if _, ok := doc["notes"]; !ok {
		t.Error("notes collection was dropped")
	}
}

func TestJSONFile_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "db.json")
	if _, err := OpenJSONFile(path); err != nil {
		t.Fatalf("OpenJSONFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("file not created: %v", err)
	}
	var doc struct {
		Persons []models.Contact `json:"persons"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Persons == nil {
		t.Error(`expected "persons": [] in new file`)
	}
}

func TestJSONFile_ReloadDiff(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	if err := os.WriteFile(path, []byte(courseDB), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := OpenJSONFile(path)
	if err != nil {
		t.Fatal(err)
	}

	changes, err := f.Reload()
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if len(changes) != 0 {
		t.Errorf("unchanged file produced %v", changes)
	}

	edited := `{"persons": [
		{"id": 2, "name": "Ada Lovelace", "number": "000"},
		{"id": 3, "name": "Mary Poppendieck", "number": "39-23-6423122"}
	]}`
	if err := os.WriteFile(path, []byte(edited), 0o644); err != nil {
		t.Fatal(err)
	}
	changes, err = f.Reload()
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	want := []Change{
		{Kind: KindUpdated, ID: "2"},
		{Kind: KindCreated, ID: "3"},
		{Kind: KindDeleted, ID: "1"},
	}
	if diff := cmp.Diff(want, changes); diff != "" {
		t.Errorf("Reload changes (-want +got):\n%s", diff)
	}
}

func TestJSONFile_OwnWritesAreNotChanges(t *testing.T) {
	f := testJSONFile(t).(*JSONFile)
	if _, err := f.Create(context.Background(), models.Contact{Name: "A", Number: "1"}); err != nil {
		t.Fatal(err)
	}
	changes, err := f.Reload()
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 0 {
		t.Errorf("own write produced %v", changes)
	}
}

func TestJSONFile_InvalidDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenJSONFile(path); err == nil {
		t.Fatal("expected decode error")
	}
}
