// Package contact defines the contact records shown by the list and detail
// panes, the case-insensitive search over them, and Book, the editable list
// with single selection.
package contact

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Contact is an addressable person shown by the viewer and editor variants.
// The viewer's records carry no ID and are keyed by name.
type Contact struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

// Key returns the identity used for selection: the ID, or the name when the
// record has no ID.
func (c Contact) Key() string {
	if c.ID != "" {
		return c.ID
	}
	return c.Name
}

// Initial returns the upper-cased first rune of the name, or "?" for an
// empty name.
func (c Contact) Initial() string {
	return initial(c.Name)
}

// Field names an editable contact field.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldCompany Field = "company"
)

// Fields lists the editable fields in detail-pane order.
var Fields = []Field{FieldName, FieldEmail, FieldPhone, FieldCompany}

// ErrUnknownField indicates a field name outside Fields.
var ErrUnknownField = errors.New("contact: unknown field")

// ParseField converts a case-insensitive field name into a Field.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Fields {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Label returns the upper-case caption shown above the field value.
func (f Field) Label() string {
	return strings.ToUpper(string(f))
}

// Get returns the value of field f.
func (c Contact) Get(f Field) string {
	switch f {
	case FieldName:
		return c.Name
	case FieldEmail:
		return c.Email
	case FieldPhone:
		return c.Phone
	case FieldCompany:
		return c.Company
	}
	return ""
}

// With returns a copy of c with field f set to value. Unknown fields leave
// the copy unchanged.
func (c Contact) With(f Field, value string) Contact {
	switch f {
	case FieldName:
		c.Name = value
	case FieldEmail:
		c.Email = value
	case FieldPhone:
		c.Phone = value
	case FieldCompany:
		c.Company = value
	}
	return c
}

// Identity errors reported by ValidateIDs.
var (
	ErrMissingID   = errors.New("contact: id cannot be empty")
	ErrDuplicateID = errors.New("contact: duplicate id")
)

// ValidateIDs checks that every contact has a non-empty ID unique within
// list. Name-keyed viewer lists do not carry IDs and are not checked.
func ValidateIDs(list []Contact) error {
	seen := make(map[string]bool, len(list))
	for i, c := range list {
		if c.ID == "" {
			return fmt.Errorf("%w (contact %d, %q)", ErrMissingID, i, c.Name)
		}
		if seen[c.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateID, c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}

// ReadList decodes a JSON contact list from name in fsys.
func ReadList(fsys fs.FS, name string) ([]Contact, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("contact: reading %s: %w", name, err)
	}
	var list []Contact
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("contact: parsing %s: %w", name, err)
	}
	return list, nil
}

func initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "?"
	}
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return "?"
}
