package phonebook

import "strings"

// ApplyFilter returns the contacts whose name contains fragment, compared
// case-insensitively, in their original order. Every start offset of a
// fragment-sized window over the name is compared against the lower-cased
// fragment; a fragment longer than the name therefore never matches, and
// the empty fragment matches every contact. Lengths are counted in runes.
func ApplyFilter(fragment string, contacts []Contact) []Contact {
	want := strings.ToLower(fragment)
	width := len([]rune(want))

	out := make([]Contact, 0, len(contacts))
	for _, c := range contacts {
		name := []rune(c.Name)
		boundary := len(name) + 1 - width
		for i := 0; i < boundary; i++ {
			if strings.ToLower(string(name[i:i+width])) == want {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
