package dashboard

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/contacts/internal/contact"
	"github.com/smileynet/contacts/internal/profile"
)

// stripANSI removes ANSI escape sequences from a string.
func stripANSI(s string) string {
	var out []byte
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < 'A' || s[j] > 'Z') && (s[j] < 'a' || s[j] > 'z') {
				j++
			}
			if j < len(s) {
				j++
			}
			i = j
		} else {
			out = append(out, s[i])
			i++
		}
	}
	return string(out)
}

// containsPlainText checks if s contains sub after stripping ANSI escapes.
func containsPlainText(s, sub string) bool {
	return strings.Contains(stripANSI(s), sub)
}

// runes builds a key message for typed text.
func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends each message to m in order and returns the resulting model.
func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

// typeText sends s one rune at a time.
func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = press(t, m, runes(string(r)))
	}
	return m
}

func sized(t *testing.T, m Model) Model {
	t.Helper()
	return press(t, m, tea.WindowSizeMsg{Width: 90, Height: 30})
}

func viewerContacts() []contact.Contact {
	return []contact.Contact{
		{Name: "Alice Johnson", Email: "alice@example.com", Phone: "(555) 123-4567", Company: "Acme Inc"},
		{Name: "Bob Smith", Email: "bob@example.com", Phone: "(555) 234-5678", Company: "TechCorp"},
		{Name: "Carol Williams", Email: "carol@example.com", Phone: "(555) 345-6789", Company: "StartupXYZ"},
		{Name: "David Brown", Email: "david@example.com", Phone: "(555) 456-7890", Company: "BigCo"},
	}
}

func editorContacts() []contact.Contact {
	list := viewerContacts()
	for i := range list {
		list[i].ID = string(rune('1' + i))
	}
	return list
}

func newViewerModel(t *testing.T) Model {
	t.Helper()
	return sized(t, NewViewer(viewerContacts()))
}

func newProfileModel(t *testing.T) Model {
	t.Helper()
	doc, err := profile.Defaults()
	if err != nil {
		t.Fatalf("profile.Defaults: %v", err)
	}
	return sized(t, NewProfile(doc))
}

// recordingSaver captures every saved list.
type recordingSaver struct {
	saves [][]contact.Contact
	err   error
}

func (s *recordingSaver) Save(list []contact.Contact) error {
	s.saves = append(s.saves, append([]contact.Contact(nil), list...))
	return s.err
}

func (s *recordingSaver) last() []contact.Contact {
	if len(s.saves) == 0 {
		return nil
	}
	return s.saves[len(s.saves)-1]
}

var errDiskFull = errors.New("disk full")

func fixedClock() time.Time {
	return time.UnixMilli(1700000000000)
}

func newEditorModel(t *testing.T, saver *recordingSaver) (Model, *contact.Book) {
	t.Helper()
	book := contact.NewBook(editorContacts(), contact.WithSaver(saver), contact.WithClock(fixedClock))
	return sized(t, NewEditor(book)), book
}
