package dashboard

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/smileynet/contacts/internal/contact"
)

// TestEditor_Teatest_AddEditQuit drives the editor through a real program:
// add a contact, rename it, then close.
func TestEditor_Teatest_AddEditQuit(t *testing.T) {
	saver := &recordingSaver{}
	book := contact.NewBook(editorContacts(), contact.WithSaver(saver), contact.WithClock(fixedClock))
	closed := make(chan struct{})
	m := NewEditor(book, WithTitle("Contacts"), WithOnClose(func() { close(closed) }))

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	for i := 0; i < len(contact.PlaceholderName); i++ {
		tm.Send(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	tm.Type("Erin Davis")
	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	select {
	case <-closed:
	default:
		t.Error("OnClose was not called")
	}

	final := tm.FinalModel(t).(Model)
	if final.SelectedKey() != "1700000000000" {
		t.Errorf("SelectedKey() = %q, want the added contact", final.SelectedKey())
	}
	got, ok := book.Get("1700000000000")
	if !ok || got.Name != "Erin Davis" {
		t.Errorf("added contact = %+v, want name Erin Davis", got)
	}
	last := saver.last()
	if len(last) != 5 || last[4].Name != "Erin Davis" {
		t.Errorf("last save = %+v, want five contacts ending with Erin Davis", last)
	}
}

// TestViewer_Teatest_SearchSelect filters, selects and closes via ctrl+c.
func TestViewer_Teatest_SearchSelect(t *testing.T) {
	m := NewViewer(viewerContacts())
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	tm.Type("david")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final := tm.FinalModel(t).(Model)
	if final.SelectedKey() != "David Brown" {
		t.Errorf("SelectedKey() = %q, want David Brown", final.SelectedKey())
	}
	if !containsPlainText(final.View(), "david@example.com") {
		t.Error("final view should show the selected contact")
	}
}
