package phonebook

// DecisionKind is the outcome of reconciling a submitted entry with one
// directory record.
type DecisionKind int

const (
	// DecisionCreate adds a new record; emitted once when no name matched.
	DecisionCreate DecisionKind = iota
	// DecisionReplace offers to replace the number of a matching record.
	DecisionReplace
	// DecisionDuplicate reports a record with the same name and number.
	DecisionDuplicate
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionCreate:
		return "create"
	case DecisionReplace:
		return "replace"
	case DecisionDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// Decision pairs a DecisionKind with the record it concerns. For
// DecisionCreate, Contact is the proposed record without an id.
type Decision struct {
	Kind    DecisionKind
	Contact Contact
}

// Plan reconciles a submitted (name, number) pair with the directory.
// Every record whose name equals name exactly yields its own decision, so
// a directory that somehow holds the name twice is handled record by
// record. When nothing matched, the single decision is DecisionCreate.
func Plan(name, number string, contacts []Contact) []Decision {
	var out []Decision
	for _, c := range contacts {
		if c.Name != name {
			continue
		}
		if c.Number != number {
			out = append(out, Decision{Kind: DecisionReplace, Contact: c})
		} else {
			out = append(out, Decision{Kind: DecisionDuplicate, Contact: c})
		}
	}
	if len(out) == 0 {
		out = append(out, Decision{Kind: DecisionCreate, Contact: Contact{Name: name, Number: number}})
	}
	return out
}
