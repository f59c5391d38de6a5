// Package dashboard implements the two-pane contacts TUI: a searchable list
// on the left and the selected contact's detail on the right. One Model
// serves the three variants (read-only viewer, profile card, editor).
package dashboard

// Variant selects which contact widget the Model renders.
type Variant int

const (
	VariantViewer  Variant = iota // Read-only contacts keyed by name.
	VariantProfile                // Profile card and social links.
	VariantEditor                 // Editable, persisted contact list.
)

// String returns the variant name used in config and on the command line.
func (v Variant) String() string {
	switch v {
	case VariantProfile:
		return "profile"
	case VariantEditor:
		return "editor"
	default:
		return "viewer"
	}
}

// Focus represents which pane has keyboard focus.
type Focus int

const (
	PaneLeft  Focus = iota // List pane has focus.
	PaneRight              // Detail pane has focus.
)

// Entry is one row of the list pane.
type Entry struct {
	Key     string
	Name    string
	Initial string
	Color   string
	Primary bool
}
