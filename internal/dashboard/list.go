package dashboard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/smileynet/contacts/internal/contact"
)

// CursorMarker is the prefix shown on the row under the cursor.
const CursorMarker = "▸ "

// Entries returns the list rows matching the current query, in display order.
func (m Model) Entries() []Entry {
	switch m.variant {
	case VariantProfile:
		cards := contact.Filter(m.cards, m.query, contact.CardFields)
		out := make([]Entry, 0, len(cards))
		for _, c := range cards {
			out = append(out, Entry{Key: c.ID, Name: c.Name, Initial: c.Initial(), Color: c.Color, Primary: c.Primary()})
		}
		return out
	default:
		fields := contact.NameField
		if m.variant == VariantEditor {
			fields = contact.EditorFields
		}
		list := m.book.Search(m.query, fields)
		out := make([]Entry, 0, len(list))
		for _, c := range list {
			out = append(out, Entry{Key: c.Key(), Name: c.Name, Initial: c.Initial()})
		}
		return out
	}
}

// SelectedKey returns the key of the contact shown in the detail pane, or ""
// when nothing is selected.
func (m Model) SelectedKey() string {
	if m.variant == VariantProfile {
		return m.selectedCard
	}
	return m.book.SelectedID()
}

// Query returns the current search query.
func (m Model) Query() string {
	return m.query
}

// handleListKey processes keys while the list pane has focus.
func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	entries := m.Entries()
	m.status = ""

	switch msg.String() {
	case "q":
		return m.close()

	case "up", "k":
		if len(entries) > 0 {
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(entries) - 1
			}
		}
		return m, nil

	case "down", "j":
		if len(entries) > 0 {
			m.cursor++
			if m.cursor >= len(entries) {
				m.cursor = 0
			}
		}
		return m, nil

	case "enter", " ":
		if m.cursor < len(entries) {
			m = m.selectKey(entries[m.cursor].Key)
		}
		return m, nil

	case "/":
		m.searching = true
		m.search.SetValue(m.query)
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd

	case "tab":
		if m.variant == VariantEditor {
			if _, ok := m.book.Selected(); !ok {
				return m, nil
			}
			m.editor = m.editor.focusField(0)
		}
		m.focus = PaneRight
		return m, nil

	case "a":
		if m.variant != VariantEditor {
			return m, nil
		}
		c, err := m.book.Add()
		m = m.noteErr("add", err)
		// Clear the query so the new contact is visible under the cursor.
		m.query = ""
		m.search.SetValue("")
		m.cursor = m.indexOf(c.Key())
		return m, nil

	case "d", "delete":
		if m.variant != VariantEditor || m.cursor >= len(entries) {
			return m, nil
		}
		err := m.book.Delete(entries[m.cursor].Key)
		m = m.noteErr("delete", err)
		m.cursor = clampCursor(m.cursor, len(m.Entries()))
		return m, nil
	}

	return m, nil
}

// handleSearchKey routes keys to the search box while it has focus. The
// query is applied on every keystroke.
func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.query = ""
		m.cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if q := m.search.Value(); q != m.query {
		m.query = q
		m.cursor = 0
	}
	return m, cmd
}

// selectKey makes key the selected contact or card.
func (m Model) selectKey(key string) Model {
	if m.variant == VariantProfile {
		m.selectedCard = key
		m.viewport.GotoTop()
		return m
	}
	if err := m.book.Select(key); err != nil {
		m.logger.Warn("select failed", zap.String("key", key), zap.Error(err))
		return m
	}
	m.viewport.GotoTop()
	return m
}

// indexOf returns the row index of key in the current entries, or 0.
func (m Model) indexOf(key string) int {
	for i, e := range m.Entries() {
		if e.Key == key {
			return i
		}
	}
	return 0
}

// noteErr records a mutation failure in the status line and the log.
func (m Model) noteErr(op string, err error) Model {
	if err == nil {
		return m
	}
	m.logger.Error("contact "+op+" failed", zap.Error(err))
	m.status = fmt.Sprintf("%s failed: %v", op, err)
	return m
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

// visibleRange returns the [start, end) window of n rows that keeps cursor
// on screen within height rows.
func visibleRange(cursor, n, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	cursor = clampCursor(cursor, n)
	start := cursor - height + 1
	if start < 0 {
		start = 0
	}
	return start, min(start+height, n)
}

// viewList renders the list pane: the search box then one row per entry.
func (m Model) viewList(width, height int) string {
	var b strings.Builder
	if m.searching {
		b.WriteString(m.search.View())
	} else if m.query != "" {
		b.WriteString(m.search.Prompt + m.query)
	} else {
		b.WriteString(mutedText.Render(m.search.Prompt + m.search.Placeholder))
	}
	b.WriteString("\n\n")

	entries := m.Entries()
	if len(entries) == 0 {
		b.WriteString(m.viewEmptyList())
		return b.String()
	}

	selected := m.SelectedKey()
	start, end := visibleRange(m.cursor, len(entries), height-listChrome)
	for i := start; i < end; i++ {
		e := entries[i]
		if i > start {
			b.WriteByte('\n')
		}
		if i == m.cursor {
			b.WriteString(CursorMarker)
		} else {
			b.WriteString("  ")
		}
		name := e.Name
		if name == "" {
			name = "(no name)"
		}
		// Badge plus two spaces of padding and the marker take 6 columns.
		name = truncate(name, width-lipgloss.Width(e.Initial)-6)
		if e.Key == selected {
			name = selectedText.Render(name)
		}
		b.WriteString(AvatarBadge(e.Initial, e.Color) + " " + name)
	}
	return b.String()
}

// viewEmptyList explains an empty list, suggesting a close name when a query
// matched nothing.
func (m Model) viewEmptyList() string {
	if m.query == "" {
		if m.variant == VariantEditor {
			return "No contacts. Press a to add one."
		}
		return "No contacts"
	}
	msg := fmt.Sprintf("No matches for %q", m.query)
	if s := contact.Suggest(m.query, m.allNames()); s != "" {
		msg += "\n\nDid you mean " + s + "?"
	}
	return mutedText.Render(msg)
}

func (m Model) allNames() []string {
	if m.variant == VariantProfile {
		names := make([]string, len(m.cards))
		for i, c := range m.cards {
			names[i] = c.Name
		}
		return names
	}
	list := m.book.Contacts()
	names := make([]string, len(list))
	for i, c := range list {
		names[i] = c.Name
	}
	return names
}

// truncate shortens s to at most width cells, marking the cut with "…".
func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
