package contact

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// recordingSaver captures every saved list.
type recordingSaver struct {
	saves [][]Contact
	err   error
}

func (r *recordingSaver) Save(list []Contact) error {
	r.saves = append(r.saves, list)
	return r.err
}

func (r *recordingSaver) last() []Contact {
	if len(r.saves) == 0 {
		return nil
	}
	return r.saves[len(r.saves)-1]
}

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestNewBook_CopiesInput(t *testing.T) {
	in := sampleContacts()
	b := NewBook(in)

	in[0].Name = "mutated"

	if got, _ := b.Get("1"); got.Name != "Alice Johnson" {
		t.Errorf("Book shares caller slice: name = %q", got.Name)
	}
	if b.SelectedID() != "" {
		t.Errorf("new book selected = %q, want none", b.SelectedID())
	}
}

func TestBook_Select(t *testing.T) {
	b := NewBook(sampleContacts())

	// When: selecting an existing contact
	if err := b.Select("2"); err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	// Then: the selected contact carries its current fields
	got, ok := b.Selected()
	if !ok {
		t.Fatal("Selected() ok = false")
	}
	if diff := cmp.Diff(sampleContacts()[1], got); diff != "" {
		t.Errorf("Selected() mismatch (-want +got):\n%s", diff)
	}

	// When: selecting an unknown key
	err := b.Select("nope")

	// Then: ErrNotFound and the selection is unchanged
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Select(nope) error = %v, want ErrNotFound", err)
	}
	if b.SelectedID() != "2" {
		t.Errorf("selection changed to %q", b.SelectedID())
	}
}

func TestBook_SelectedReflectsEdits(t *testing.T) {
	b := NewBook(sampleContacts())
	_ = b.Select("3")

	if err := b.Update("3", FieldPhone, "+1 555 0000"); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, _ := b.Selected()
	if got.Phone != "+1 555 0000" {
		t.Errorf("selected phone = %q, want edited value", got.Phone)
	}
}

func TestBook_Add(t *testing.T) {
	// Given: a book with a saver and a fixed clock
	saver := &recordingSaver{}
	b := NewBook(sampleContacts(), WithSaver(saver), WithClock(fixedClock(1700000000000)))

	// When: a contact is added
	c, err := b.Add()
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	// Then: length grows by one, the entry has placeholders and is selected
	if b.Len() != 5 {
		t.Errorf("Len() = %d, want 5", b.Len())
	}
	want := Contact{ID: "1700000000000", Name: PlaceholderName}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("added contact mismatch (-want +got):\n%s", diff)
	}
	if last := b.Contacts()[4]; last != c {
		t.Errorf("new contact not appended last: %+v", last)
	}
	if b.SelectedID() != c.ID {
		t.Errorf("selected = %q, want %q", b.SelectedID(), c.ID)
	}
	if len(saver.saves) != 1 || len(saver.last()) != 5 {
		t.Errorf("saves = %d (last len %d), want one save of 5", len(saver.saves), len(saver.last()))
	}
}

func TestBook_AddContactSavesOnce(t *testing.T) {
	// Given: a saver that fails
	saver := &recordingSaver{err: errors.New("disk full")}
	b := NewBook(sampleContacts(), WithSaver(saver), WithClock(fixedClock(7)))

	// When: a filled-in contact is added
	c, err := b.AddContact(Contact{ID: "ignored", Name: "Erin", Email: "erin@example.com"})

	// Then: it gets a fresh ID and the only save carries every field
	if err == nil {
		t.Fatal("AddContact() should return the save error")
	}
	want := Contact{ID: "7", Name: "Erin", Email: "erin@example.com"}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("added contact mismatch (-want +got):\n%s", diff)
	}
	if len(saver.saves) != 1 {
		t.Fatalf("saves = %d, want 1", len(saver.saves))
	}
	if last := saver.last(); last[len(last)-1] != want {
		t.Errorf("saved contact = %+v, want %+v", last[len(last)-1], want)
	}
}

func TestBook_AddSameMillisecondKeepsIDsUnique(t *testing.T) {
	b := NewBook(nil, WithClock(fixedClock(42)))

	first, _ := b.Add()
	second, _ := b.Add()

	if first.ID == second.ID {
		t.Fatalf("duplicate ids %q", first.ID)
	}
	if second.ID != "43" {
		t.Errorf("second id = %q, want %q", second.ID, "43")
	}
}

func TestBook_Delete(t *testing.T) {
	tests := []struct {
		name         string
		selected     string
		deleteID     string
		wantSelected string
	}{
		{"deleting selected clears selection", "2", "2", ""},
		{"deleting other keeps selection", "2", "3", "2"},
		{"deleting with nothing selected", "", "1", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saver := &recordingSaver{}
			b := NewBook(sampleContacts(), WithSaver(saver))
			if tt.selected != "" {
				_ = b.Select(tt.selected)
			}

			if err := b.Delete(tt.deleteID); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}

			if b.Len() != 3 {
				t.Errorf("Len() = %d, want 3", b.Len())
			}
			if _, ok := b.Get(tt.deleteID); ok {
				t.Errorf("contact %q still present", tt.deleteID)
			}
			if b.SelectedID() != tt.wantSelected {
				t.Errorf("selected = %q, want %q", b.SelectedID(), tt.wantSelected)
			}
			var want []string
			for _, c := range sampleContacts() {
				if c.ID != tt.deleteID {
					want = append(want, c.ID)
				}
			}
			if diff := cmp.Diff(want, ids(b.Contacts())); diff != "" {
				t.Errorf("remaining ids mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(b.Contacts(), saver.last()); diff != "" {
				t.Errorf("saved list mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBook_DeleteUnknown(t *testing.T) {
	saver := &recordingSaver{}
	b := NewBook(sampleContacts(), WithSaver(saver))

	if err := b.Delete("404"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(404) error = %v, want ErrNotFound", err)
	}
	if b.Len() != 4 || len(saver.saves) != 0 {
		t.Errorf("failed delete mutated state: len=%d saves=%d", b.Len(), len(saver.saves))
	}
}

func TestBook_UpdateTouchesOnlyOneField(t *testing.T) {
	for _, f := range Fields {
		t.Run(string(f), func(t *testing.T) {
			b := NewBook(sampleContacts())

			if err := b.Update("2", f, "changed"); err != nil {
				t.Fatalf("Update() error = %v", err)
			}

			want := sampleContacts()
			want[1] = want[1].With(f, "changed")
			if diff := cmp.Diff(want, b.Contacts()); diff != "" {
				t.Errorf("contacts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBook_UpdateAcceptsAnyString(t *testing.T) {
	b := NewBook(sampleContacts())

	for _, v := range []string{"", "not-an-email", "☎ call me"} {
		if err := b.Update("1", FieldEmail, v); err != nil {
			t.Errorf("Update(%q) error = %v", v, err)
		}
		if got, _ := b.Get("1"); got.Email != v {
			t.Errorf("email = %q, want %q", got.Email, v)
		}
	}
}

func TestBook_UpdateErrors(t *testing.T) {
	b := NewBook(sampleContacts())

	if err := b.Update("404", FieldName, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id error = %v, want ErrNotFound", err)
	}
	if err := b.Update("1", Field("birthday"), "x"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("unknown field error = %v, want ErrUnknownField", err)
	}
}

func TestBook_UpdateUnchangedSkipsSave(t *testing.T) {
	saver := &recordingSaver{}
	b := NewBook(sampleContacts(), WithSaver(saver))

	_ = b.Update("1", FieldName, "Alice Johnson")

	if len(saver.saves) != 0 {
		t.Errorf("saves = %d, want 0 for a no-op edit", len(saver.saves))
	}
}

func TestBook_SaveErrorKeepsChange(t *testing.T) {
	saver := &recordingSaver{err: errors.New("disk full")}
	b := NewBook(sampleContacts(), WithSaver(saver))

	err := b.Update("1", FieldCompany, "Globex")

	if err == nil {
		t.Fatal("Update() should surface the save error")
	}
	if got, _ := b.Get("1"); got.Company != "Globex" {
		t.Errorf("company = %q, want in-memory change kept", got.Company)
	}
}

func TestBook_NameKeyedContacts(t *testing.T) {
	// Given: viewer-style contacts without IDs
	b := NewBook([]Contact{{Name: "Alice"}, {Name: "Bob"}})

	// When: selecting by name and renaming the selected entry
	if err := b.Select("Bob"); err != nil {
		t.Fatalf("Select(Bob) error = %v", err)
	}
	if err := b.Update("Bob", FieldName, "Robert"); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	// Then: the selection follows the new key
	got, ok := b.Selected()
	if !ok || got.Name != "Robert" {
		t.Errorf("Selected() = %+v, %v; want Robert", got, ok)
	}
}

func TestBook_Search(t *testing.T) {
	b := NewBook(sampleContacts())

	got := b.Search("acme", EditorFields)

	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("Search(acme) = %+v, want Alice", got)
	}
}
