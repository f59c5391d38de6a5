package contact

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Placeholder values for a freshly added contact.
const (
	PlaceholderName    = "New Contact"
	PlaceholderEmail   = ""
	PlaceholderPhone   = ""
	PlaceholderCompany = ""
)

// ErrNotFound indicates no contact has the requested key.
var ErrNotFound = errors.New("contact: not found")

// Saver persists the full contact list after each mutation.
type Saver interface {
	Save(list []Contact) error
}

// Book is an ordered contact list with at most one selected entry.
// Mutations are applied in memory first and then handed to the Saver; a save
// failure is returned but the in-memory change stands.
//
// It is not safe for concurrent use; confine it to the Bubble Tea update loop
// or a single command.
type Book struct {
	contacts []Contact
	selected string
	saver    Saver
	now      func() time.Time
}

// BookOption configures a Book.
type BookOption func(*Book)

// WithSaver persists the list through s on every mutation.
func WithSaver(s Saver) BookOption {
	return func(b *Book) { b.saver = s }
}

// WithClock overrides the time source used to mint new IDs.
func WithClock(now func() time.Time) BookOption {
	return func(b *Book) { b.now = now }
}

// NewBook creates a Book over a copy of contacts with nothing selected.
func NewBook(contacts []Contact, opts ...BookOption) *Book {
	b := &Book{
		contacts: append([]Contact(nil), contacts...),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Contacts returns a copy of the list in display order.
func (b *Book) Contacts() []Contact {
	return append([]Contact(nil), b.contacts...)
}

// Len returns the number of contacts.
func (b *Book) Len() int {
	return len(b.contacts)
}

// Get returns the contact with the given key.
func (b *Book) Get(key string) (Contact, bool) {
	i := b.index(key)
	if i < 0 {
		return Contact{}, false
	}
	return b.contacts[i], true
}

// SelectedID returns the selected key, or "" when nothing is selected.
func (b *Book) SelectedID() string {
	return b.selected
}

// Selected returns the selected contact with its current field values.
func (b *Book) Selected() (Contact, bool) {
	if b.selected == "" {
		return Contact{}, false
	}
	return b.Get(b.selected)
}

// Select makes key the selected contact.
func (b *Book) Select(key string) error {
	if b.index(key) < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	b.selected = key
	return nil
}

// ClearSelection deselects any contact.
func (b *Book) ClearSelection() {
	b.selected = ""
}

// Add appends a placeholder contact with a timestamp ID, selects it and
// returns it.
func (b *Book) Add() (Contact, error) {
	return b.AddContact(Contact{
		Name:    PlaceholderName,
		Email:   PlaceholderEmail,
		Phone:   PlaceholderPhone,
		Company: PlaceholderCompany,
	})
}

// AddContact appends c under a fresh timestamp ID, selects it and saves
// once. Any ID already on c is replaced.
func (b *Book) AddContact(c Contact) (Contact, error) {
	c.ID = b.nextID()
	b.contacts = append(b.contacts, c)
	b.selected = c.ID
	return c, b.save()
}

// Delete removes the contact with the given key. The selection is cleared
// only if it pointed at the removed contact.
func (b *Book) Delete(key string) error {
	i := b.index(key)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	b.contacts = append(b.contacts[:i:i], b.contacts[i+1:]...)
	if b.selected == key {
		b.selected = ""
	}
	return b.save()
}

// Update sets one field on the contact with the given key. Values are
// stored as given.
func (b *Book) Update(key string, f Field, value string) error {
	if _, err := ParseField(string(f)); err != nil {
		return err
	}
	i := b.index(key)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	updated := b.contacts[i].With(f, value)
	if updated == b.contacts[i] {
		return nil
	}
	// Editing the name of a name-keyed contact moves its key.
	if b.contacts[i].ID == "" && f == FieldName && b.selected == key {
		b.selected = value
	}
	b.contacts[i] = updated
	return b.save()
}

// Search returns the contacts matching query under the given field set.
func (b *Book) Search(query string, fields func(Contact) []string) []Contact {
	return Filter(b.Contacts(), query, fields)
}

func (b *Book) index(key string) int {
	if key == "" {
		return -1
	}
	for i, c := range b.contacts {
		if c.Key() == key {
			return i
		}
	}
	return -1
}

// nextID returns the current Unix-millisecond timestamp as a string,
// advanced past any ID already in the list.
func (b *Book) nextID() string {
	n := b.now().UnixMilli()
	for {
		id := strconv.FormatInt(n, 10)
		if b.index(id) < 0 {
			return id
		}
		n++
	}
}

func (b *Book) save() error {
	if b.saver == nil {
		return nil
	}
	if err := b.saver.Save(b.Contacts()); err != nil {
		return fmt.Errorf("contact: saving: %w", err)
	}
	return nil
}
