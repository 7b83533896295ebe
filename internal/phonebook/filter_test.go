package phonebook

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func names(contacts []Contact) []string {
	out := make([]string, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, c.Name)
	}
	return out
}

func TestApplyFilter(t *testing.T) {
	directory := []Contact{
		{ID: "1", Name: "Arto Hellas", Number: "040-123456"},
		{ID: "2", Name: "Ada Lovelace", Number: "39-44-5323523"},
		{ID: "3", Name: "Dan Abramov", Number: "12-43-234345"},
		{ID: "4", Name: "Mary Poppendieck", Number: "39-23-6423122"},
	}

	tests := []struct {
		fragment string
		want     []string
	}{
		{"", []string{"Arto Hellas", "Ada Lovelace", "Dan Abramov", "Mary Poppendieck"}},
		{"llas", []string{"Arto Hellas"}},
		{"xyz", []string{}},
		{"A", []string{"Arto Hellas", "Ada Lovelace", "Dan Abramov", "Mary Poppendieck"}},
		{"ada", []string{"Ada Lovelace"}},
		{"DAN", []string{"Dan Abramov"}},
		{"o", []string{"Arto Hellas", "Ada Lovelace", "Dan Abramov", "Mary Poppendieck"}},
		{"ck", []string{"Mary Poppendieck"}},
		{"arto hellas", []string{"Arto Hellas"}},
		{"arto hellas!", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.fragment, func(t *testing.T) {
			got := names(ApplyFilter(tt.fragment, directory))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ApplyFilter(%q) (-want +got):\n%s", tt.fragment, diff)
			}
		})
	}
}

func TestApplyFilter_MatchesContainsWhenFragmentFits(t *testing.T) {
	names := []string{"Arto Hellas", "", "Åsa Öberg", "x", "ΣΊΣΥΦΟΣ"}
	fragments := []string{"", "a", "ö", "hell", "σίσ", "x", "xx", "åsa öberg", "ς"}
	for _, n := range names {
		for _, f := range fragments {
			got := len(ApplyFilter(f, []Contact{{Name: n}})) == 1
			want := len([]rune(f)) <= len([]rune(n)) &&
				strings.Contains(strings.ToLower(n), strings.ToLower(f))
			if got != want {
				t.Errorf("ApplyFilter(%q, %q) included = %v, want %v", f, n, got, want)
			}
		}
	}
}

func TestApplyFilter_FragmentLongerThanName(t *testing.T) {
	got := ApplyFilter("Adam", []Contact{{Name: "Ada"}})
	if len(got) != 0 {
		t.Errorf("fragment longer than name matched: %v", got)
	}
}

func TestApplyFilter_EmptyNameEmptyFragment(t *testing.T) {
	got := ApplyFilter("", []Contact{{ID: "1", Name: ""}})
	if len(got) != 1 {
		t.Errorf("empty fragment must match empty name, got %v", got)
	}
}

func TestApplyFilter_DoesNotAliasInput(t *testing.T) {
	in := []Contact{{ID: "1", Name: "Ada"}}
	out := ApplyFilter("", in)
	out[0].Name = "changed"
	if in[0].Name != "Ada" {
		t.Error("ApplyFilter result aliases its input")
	}
}
