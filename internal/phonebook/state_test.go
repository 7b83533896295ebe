package phonebook

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestState_TransitionsDoNotMutateReceiver(t *testing.T) {
	base := State{}.WithContacts([]Contact{
		{ID: "1", Name: "Ada", Number: "111"},
		{ID: "2", Name: "Bob", Number: "222"},
	})
	before := base.WithContacts(base.Contacts)

	_ = base.WithAdded(Contact{ID: "3", Name: "Cy"})
	_ = base.WithReplaced(Contact{ID: "1", Name: "Ada", Number: "999"})
	_ = base.WithRemoved("2")

	if diff := cmp.Diff(before.Contacts, base.Contacts); diff != "" {
		t.Errorf("receiver mutated (-want +got):\n%s", diff)
	}
}

func TestState_ReplaceKeepsPosition(t *testing.T) {
	s := State{}.WithContacts([]Contact{
		{ID: "1", Name: "Ada", Number: "111"},
		{ID: "2", Name: "Bob", Number: "222"},
		{ID: "3", Name: "Cy", Number: "333"},
	}).WithReplaced(Contact{ID: "2", Name: "Bob", Number: "999"})

	want := []Contact{
		{ID: "1", Name: "Ada", Number: "111"},
		{ID: "2", Name: "Bob", Number: "999"},
		{ID: "3", Name: "Cy", Number: "333"},
	}
	if diff := cmp.Diff(want, s.Contacts); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	same := s.WithReplaced(Contact{ID: "42", Name: "Nobody"})
	if diff := cmp.Diff(want, same.Contacts); diff != "" {
		t.Errorf("unknown id changed directory (-want +got):\n%s", diff)
	}
}

func TestState_VisibleFollowsDirectoryAfterRemove(t *testing.T) {
	s := State{}.WithContacts([]Contact{
		{ID: "1", Name: "Arto Hellas"},
		{ID: "2", Name: "Ada Lovelace"},
		{ID: "3", Name: "Dan Abramov"},
	}).WithFilter("a")

	s = s.WithRemoved("2")

	want := []Contact{{ID: "1", Name: "Arto Hellas"}, {ID: "3", Name: "Dan Abramov"}}
	if diff := cmp.Diff(want, s.Visible()); diff != "" {
		t.Errorf("visible after remove (-want +got):\n%s", diff)
	}

	s = s.WithFilter("dan")
	if diff := cmp.Diff([]Contact{{ID: "3", Name: "Dan Abramov"}}, s.Visible()); diff != "" {
		t.Errorf("visible after refilter (-want +got):\n%s", diff)
	}
}

func TestState_NoticeGenerations(t *testing.T) {
	s := State{}.WithNotice("first", false)
	first := s.Notice.Generation
	s = s.WithNotice("second", true)
	second := s.Notice.Generation

	if second <= first {
		t.Fatalf("generation did not advance: %d then %d", first, second)
	}

	s = s.WithoutNotice(first)
	if s.Notice.Text != "second" || !s.Notice.IsError {
		t.Errorf("stale clear erased newer notice: %+v", s.Notice)
	}

	s = s.WithoutNotice(second)
	if s.Notice.Visible() {
		t.Errorf("notice not cleared: %+v", s.Notice)
	}

	s = s.WithNotice("third", false)
	if s.Notice.Generation <= second {
		t.Errorf("generation reused after clear: %d", s.Notice.Generation)
	}
}

func TestState_WithInputs(t *testing.T) {
	s := State{}.WithInputs("Ada", "111")
	want := State{Name: "Ada", Number: "111"}
	if diff := cmp.Diff(want, s, cmpopts.IgnoreUnexported(State{})); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
