package store

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/smileynet/contacts/internal/contact"
)

// DefaultKey is the key the editor's list is stored under.
const DefaultKey = "contacts"

// Compile-time check: ContactList satisfies contact.Saver.
var _ contact.Saver = (*ContactList)(nil)

// ContactList persists a contact list as JSON under a single key.
type ContactList struct {
	kv       KV
	key      string
	defaults []contact.Contact
	logger   *zap.Logger
}

// ContactListOption configures a ContactList.
type ContactListOption func(*ContactList)

// WithDefaults sets the list Load falls back to when nothing usable is stored.
func WithDefaults(list []contact.Contact) ContactListOption {
	return func(c *ContactList) { c.defaults = append([]contact.Contact(nil), list...) }
}

// WithLogger sets the logger used for fallback warnings.
func WithLogger(l *zap.Logger) ContactListOption {
	return func(c *ContactList) { c.logger = l }
}

// NewContactList creates a ContactList over kv at key.
func NewContactList(kv KV, key string, opts ...ContactListOption) *ContactList {
	c := &ContactList{kv: kv, key: key, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load returns the stored list. A missing key, a value that does not
// decode as a contact list, or a list with missing or duplicate IDs yields a
// copy of the defaults; only storage errors are returned.
func (c *ContactList) Load() ([]contact.Contact, error) {
	data, found, err := c.kv.Get(c.key)
	if err != nil {
		return nil, err
	}
	if !found {
		c.logger.Debug("no stored contacts, using defaults", zap.String("key", c.key))
		return c.fallback(), nil
	}
	var list []contact.Contact
	if err := json.Unmarshal(data, &list); err != nil {
		c.logger.Warn("stored contacts unreadable, using defaults",
			zap.String("key", c.key), zap.Error(err))
		return c.fallback(), nil
	}
	if err := contact.ValidateIDs(list); err != nil {
		c.logger.Warn("stored contacts invalid, using defaults",
			zap.String("key", c.key), zap.Error(err))
		return c.fallback(), nil
	}
	if list == nil {
		list = []contact.Contact{}
	}
	c.logger.Debug("loaded contacts", zap.String("key", c.key), zap.Int("count", len(list)))
	return list, nil
}

// Save replaces the stored list.
func (c *ContactList) Save(list []contact.Contact) error {
	if list == nil {
		list = []contact.Contact{}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshaling contacts: %w", err)
	}
	if err := c.kv.Set(c.key, data); err != nil {
		c.logger.Error("saving contacts failed", zap.String("key", c.key), zap.Error(err))
		return err
	}
	c.logger.Debug("saved contacts", zap.String("key", c.key), zap.Int("count", len(list)))
	return nil
}

// Reset removes the stored list so the next Load returns the defaults.
func (c *ContactList) Reset() error {
	return c.kv.Delete(c.key)
}

func (c *ContactList) fallback() []contact.Contact {
	return append([]contact.Contact{}, c.defaults...)
}
