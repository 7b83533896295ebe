package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/starford/phonebook/internal/api"
	"github.com/starford/phonebook/internal/contactservice"
	"github.com/starford/phonebook/internal/models"
	"github.com/starford/phonebook/internal/phonebook"
	"github.com/starford/phonebook/internal/testutil"
)

// newTestClient runs the directory service on a temp SQLite database.
func newTestClient(t *testing.T, token string) *Client {
	t.Helper()
	svc := contactservice.NewService(testutil.TestSQLite(t), nil)
	srv := httptest.NewServer(api.NewRouter(svc, token != "", token, nil))
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL + "/", Token: token})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	for _, u := range []string{"", "/api", "localhost:3001", "ftp://host"} {
		if _, err := New(Config{BaseURL: u}); err == nil {
			t.Errorf("New(%q) succeeded", u)
		}
	}
}

func TestClient_CRUD(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, "")

	list, err := c.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("empty list = %#v", list)
	}

	ada, err := c.Create(ctx, models.Contact{Name: "Ada", Number: "111"})
	if err != nil {
		t.Fatal(err)
	}
	if ada.ID == "" {
		t.Fatal("created contact has no id")
	}

	upd, err := c.Update(ctx, ada.ID, models.Contact{Name: "Ada", Number: "222"})
	if err != nil {
		t.Fatal(err)
	}
	if want := (models.Contact{ID: ada.ID, Name: "Ada", Number: "222"}); upd != want {
		t.Errorf("update = %+v, want %+v", upd, want)
	}

	bob, _ := c.Create(ctx, models.Contact{Name: "Bob", Number: "333"})
	list, _ = c.List(ctx)
	if diff := cmp.Diff([]models.Contact{upd, bob}, list); diff != "" {
		t.Errorf("list (-want +got):\n%s", diff)
	}

	if err := c.Delete(ctx, ada.ID); err != nil {
		t.Fatal(err)
	}
	list, _ = c.List(ctx)
	if diff := cmp.Diff([]models.Contact{bob}, list); diff != "" {
		t.Errorf("list after delete (-want +got):\n%s", diff)
	}
}

func TestClient_StaleRecord(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, "")

	if _, err := c.Update(ctx, "42", models.Contact{Name: "Ada", Number: "1"}); !errors.Is(err, phonebook.ErrStaleRecord) {
		t.Errorf("Update missing = %v, want ErrStaleRecord", err)
	}
	if err := c.Delete(ctx, "42"); !errors.Is(err, phonebook.ErrStaleRecord) {
		t.Errorf("Delete missing = %v, want ErrStaleRecord", err)
	}
}

func TestClient_StatusError(t *testing.T) {
	c := newTestClient(t, "")

	_, err := c.Create(context.Background(), models.Contact{Name: "Ada"})
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if se.Code != http.StatusBadRequest || se.Message == "" {
		t.Errorf("status error = %+v", se)
	}
	if errors.Is(err, phonebook.ErrStaleRecord) {
		t.Error("400 must not be reported as stale")
	}
}

func TestClient_BearerToken(t *testing.T) {
	c := newTestClient(t, "secret")
	if _, err := c.List(context.Background()); err != nil {
		t.Fatalf("List with token: %v", err)
	}

	c.token = "wrong"
	_, err := c.List(context.Background())
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusUnauthorized {
		t.Errorf("List with wrong token = %v, want 401", err)
	}
}

func TestClient_JSONServerNumericIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/persons" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"Arto Hellas","number":"040-123456"},{"id":"b2","name":"Ada Lovelace","number":"39-44-5323523"}]`))
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	list, err := c.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []models.Contact{
		{ID: "1", Name: "Arto Hellas", Number: "040-123456"},
		{ID: "b2", Name: "Ada Lovelace", Number: "39-44-5323523"},
	}
	if diff := cmp.Diff(want, list); diff != "" {
		t.Errorf("list (-want +got):\n%s", diff)
	}
}

// TestClient_DrivesApp runs the reconciliation scenario against a live
// directory service.
func TestClient_DrivesApp(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, "")
	ada, _ := c.Create(ctx, models.Contact{Name: "Ada", Number: "111"})

	app := phonebook.New(c, phonebook.WithPrompter(phonebook.StaticPrompter{Answer: true}),
		phonebook.WithScheduler(func(_ time.Duration, _ func()) {}))
	if err := app.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if err := app.Submit(ctx, "Ada", "222"); err != nil {
		t.Fatal(err)
	}

	list, _ := c.List(ctx)
	want := []models.Contact{{ID: ada.ID, Name: "Ada", Number: "222"}}
	if diff := cmp.Diff(want, list); diff != "" {
		t.Errorf("server directory (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, app.State().Contacts); diff != "" {
		t.Errorf("app directory (-want +got):\n%s", diff)
	}
}

// TestClient_NamesStayUnique submits a name with trailing whitespace
// against a directory service that stores trimmed names.
func TestClient_NamesStayUnique(t *testing.T) {
	ctx := context.Background()
	svc := contactservice.NewService(testutil.TestJSONFile(t), nil)
	srv := httptest.NewServer(api.NewRouter(svc, false, "", nil))
	defer srv.Close()
	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}

	app := phonebook.New(c, phonebook.WithPrompter(phonebook.StaticPrompter{Answer: true}),
		phonebook.WithScheduler(func(time.Duration, func()) {}))
	if err := app.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if err := app.Submit(ctx, "Ada", "111"); err != nil {
		t.Fatal(err)
	}
	if err := app.Submit(ctx, "Ada ", "222"); err != nil {
		t.Fatal(err)
	}

	list, _ := c.List(ctx)
	if len(list) != 1 || list[0].Name != "Ada" || list[0].Number != "222" {
		t.Errorf("server directory = %+v, want one Ada with 222", list)
	}
	if got := app.State().Contacts; len(got) != 1 || got[0].Number != "222" {
		t.Errorf("app directory = %+v", got)
	}
}
