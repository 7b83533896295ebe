package phonebook

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPlan(t *testing.T) {
	ada := Contact{ID: "1", Name: "Ada", Number: "111"}
	bob := Contact{ID: "2", Name: "Bob", Number: "222"}
	adaAgain := Contact{ID: "3", Name: "Ada", Number: "333"}

	tests := []struct {
		name     string
		contacts []Contact
		subName  string
		subNum   string
		want     []Decision
	}{
		{
			name:     "new name",
			contacts: []Contact{ada, bob},
			subName:  "Cy",
			subNum:   "444",
			want:     []Decision{{Kind: DecisionCreate, Contact: Contact{Name: "Cy", Number: "444"}}},
		},
		{
			name:     "empty directory",
			subName:  "Cy",
			subNum:   "444",
			want:     []Decision{{Kind: DecisionCreate, Contact: Contact{Name: "Cy", Number: "444"}}},
		},
		{
			name:     "changed number",
			contacts: []Contact{ada, bob},
			subName:  "Ada",
			subNum:   "999",
			want:     []Decision{{Kind: DecisionReplace, Contact: ada}},
		},
		{
			name:     "same number",
			contacts: []Contact{ada, bob},
			subName:  "Bob",
			subNum:   "222",
			want:     []Decision{{Kind: DecisionDuplicate, Contact: bob}},
		},
		{
			name:     "match is case-sensitive",
			contacts: []Contact{ada},
			subName:  "ada",
			subNum:   "111",
			want:     []Decision{{Kind: DecisionCreate, Contact: Contact{Name: "ada", Number: "111"}}},
		},
		{
			name:     "every matching record decides independently",
			contacts: []Contact{ada, bob, adaAgain},
			subName:  "Ada",
			subNum:   "333",
			want:     []Decision{
				{Kind: DecisionReplace, Contact: ada},
				{Kind: DecisionDuplicate, Contact: adaAgain},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Plan(tt.subName, tt.subNum, tt.contacts)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Plan (-want +got):\n%s", diff)
			}
		})
	}
}
