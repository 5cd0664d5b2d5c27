package materialize

import "fmt"

// EventKind classifies a progress event.
type EventKind uint8

const (
	DirCreated EventKind = iota
	FileCreated
	FileSkipped
)

var eventVerbs = [...]string{
	DirCreated:  "created directory",
	FileCreated: "created file",
	FileSkipped: "skipped existing file",
}

func (k EventKind) String() string {
	if int(k) < len(eventVerbs) {
		return eventVerbs[k]
	}
	return fmt.Sprintf("EventKind(%d)", k)
}

// Event reports one created or skipped entry.
type Event struct {
	Kind EventKind
	// Path is the base-relative, slash separated path of the entry.
	Path string
	// Done counts the entries visited so far, this one included. Existing
	// directories are visited without an event, so Done may jump.
	Done int
	// Total is the number of entries in the structure.
	Total int
}

// String renders the human-readable progress message, e.g.
// "created file: app/page.tsx".
func (e Event) String() string {
	return e.Kind.String() + ": " + e.Path
}

// Fraction returns Done/Total in [0, 1].
func (e Event) Fraction() float64 {
	if e.Total <= 0 {
		return 1
	}
	return float64(e.Done) / float64(e.Total)
}
