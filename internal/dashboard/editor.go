package dashboard

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/smileynet/contacts/internal/contact"
)

// editorState holds one text input per editable field of the selected
// contact. key is the contact the inputs were loaded from.
type editorState struct {
	inputs []textinput.Model
	field  int
	key    string
}

func newEditorState() editorState {
	inputs := make([]textinput.Model, len(contact.Fields))
	for i, f := range contact.Fields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = string(f)
		in.CharLimit = 256
		inputs[i] = in
	}
	return editorState{inputs: inputs}
}

// setWidth resizes every input to fit the detail pane.
func (e editorState) setWidth(w int) editorState {
	e.inputs = append([]textinput.Model(nil), e.inputs...)
	for i := range e.inputs {
		e.inputs[i].Width = max(w-1, 1)
	}
	return e
}

// load fills the inputs from c.
func (e editorState) load(c contact.Contact) editorState {
	e.inputs = append([]textinput.Model(nil), e.inputs...)
	for i, f := range contact.Fields {
		e.inputs[i].SetValue(c.Get(f))
		e.inputs[i].CursorEnd()
	}
	e.key = c.Key()
	return e
}

// clear empties the inputs and drops focus.
func (e editorState) clear() editorState {
	e = e.blur()
	for i := range e.inputs {
		e.inputs[i].SetValue("")
	}
	e.key = ""
	e.field = 0
	return e
}

// focusField moves keyboard focus to field i.
func (e editorState) focusField(i int) editorState {
	e = e.blur()
	e.field = i
	e.inputs[i].Focus()
	return e
}

func (e editorState) blur() editorState {
	e.inputs = append([]textinput.Model(nil), e.inputs...)
	for i := range e.inputs {
		e.inputs[i].Blur()
	}
	return e
}

// handleEditKey processes keys while a field input has focus. Each keystroke
// that changes the input is written straight back to the book.
func (m Model) handleEditKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	n := len(m.editor.inputs)
	switch msg.String() {
	case "tab", "esc":
		m.editor = m.editor.blur()
		m.focus = PaneLeft
		return m, nil
	case "up", "shift+tab":
		m.editor = m.editor.focusField((m.editor.field + n - 1) % n)
		return m, nil
	case "down", "enter":
		m.editor = m.editor.focusField((m.editor.field + 1) % n)
		return m, nil
	}

	m.status = ""
	i := m.editor.field
	m.editor.inputs = append([]textinput.Model(nil), m.editor.inputs...)
	before := m.editor.inputs[i].Value()
	var cmd tea.Cmd
	m.editor.inputs[i], cmd = m.editor.inputs[i].Update(msg)
	after := m.editor.inputs[i].Value()
	if after == before {
		return m, cmd
	}

	f := contact.Fields[i]
	if err := m.book.Update(m.editor.key, f, after); err != nil {
		m.logger.Error("contact update failed",
			zap.String("id", m.editor.key), zap.String("field", string(f)), zap.Error(err))
		m.status = "save failed: " + err.Error()
	}
	return m, cmd
}

// viewEditor renders the editable detail pane.
func (m Model) viewEditor() string {
	c, ok := m.book.Selected()
	if !ok {
		return mutedText.Render("Select a contact to edit")
	}

	var b strings.Builder
	b.WriteString(AvatarBadge(c.Initial(), "") + " " + headingText.Render(c.Name))
	for i, f := range contact.Fields {
		b.WriteString("\n\n")
		label := f.Label()
		if m.focus == PaneRight && i == m.editor.field {
			b.WriteString(selectedText.Render(label))
		} else {
			b.WriteString(labelText.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(m.editor.inputs[i].View())
	}
	return b.String()
}
