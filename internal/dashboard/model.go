package dashboard

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/smileynet/contacts/internal/contact"
	"github.com/smileynet/contacts/internal/profile"
)

// helpBarHeight is the number of lines reserved for the help bar at the bottom.
const helpBarHeight = 1

// borderChrome is the number of lines consumed by top + bottom borders.
const borderChrome = 2

// listChrome is the number of list pane lines used by the search box and
// the blank line under it.
const listChrome = 2

// Model is the root Bubble Tea model for the contacts widget.
// It manages a two-pane layout with variant-based rendering and focus
// management. All state is owned by the update loop.
type Model struct {
	variant   Variant
	focus     Focus
	width     int
	height    int
	search    textinput.Model
	query     string
	searching bool
	cursor    int
	viewport  viewport.Model
	help      help.Model
	editor    editorState

	// Viewer and editor data. The viewer's book has no saver.
	book *contact.Book

	// Profile data.
	cards        []contact.Card
	profile      contact.Profile
	selectedCard string

	title   string
	status  string
	onClose func()
	logger  *zap.Logger
}

// Option configures a Model.
type Option func(*Model)

// WithTitle sets the label shown in the help bar.
func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// WithOnClose registers a callback run when the widget closes.
func WithOnClose(fn func()) Option {
	return func(m *Model) { m.onClose = fn }
}

// WithLogger sets the logger for edit and save failures.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// NewViewer creates a read-only model over contacts keyed by name.
func NewViewer(contacts []contact.Contact, opts ...Option) Model {
	m := newModel(VariantViewer, opts)
	m.book = contact.NewBook(contacts)
	return m.refresh()
}

// NewProfile creates a model over a profile document.
func NewProfile(doc profile.Document, opts ...Option) Model {
	m := newModel(VariantProfile, opts)
	m.cards = append([]contact.Card(nil), doc.Cards...)
	m.profile = doc.Profile
	return m.refresh()
}

// NewEditor creates an editable model over book. Persistence is the book's
// concern; the model calls it on every mutation.
func NewEditor(book *contact.Book, opts ...Option) Model {
	m := newModel(VariantEditor, opts)
	m.book = book
	return m.refresh()
}

func newModel(v Variant, opts []Option) Model {
	search := textinput.New()
	search.Placeholder = "Search"
	search.Prompt = "/ "
	search.CharLimit = 64

	m := Model{
		variant:  v,
		focus:    PaneLeft,
		search:   search,
		viewport: viewport.New(0, 0),
		help:     help.New(),
		editor:   newEditorState(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		leftWidth, rightWidth := PaneWidths(msg.Width)
		m.search.Width = max(leftWidth-borderChrome-len(m.search.Prompt)-1, 1)
		vpWidth := rightWidth - borderChrome
		if vpWidth < 0 {
			vpWidth = 0
		}
		m.viewport.Width = vpWidth
		m.viewport.Height = m.contentHeight()
		m.editor = m.editor.setWidth(vpWidth)
		return m.refresh(), nil

	case tea.KeyMsg:
		updated, cmd := m.handleKey(msg)
		return updated.refresh(), cmd
	}

	return m, nil
}

// handleKey processes key messages with global and focus-specific routing.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.close()
	}
	switch {
	case m.searching:
		return m.handleSearchKey(msg)
	case m.focus == PaneRight && m.variant == VariantEditor:
		return m.handleEditKey(msg)
	case m.focus == PaneRight:
		return m.handleDetailKey(msg)
	}
	return m.handleListKey(msg)
}

// close runs the host callback and quits.
func (m Model) close() (Model, tea.Cmd) {
	if m.onClose != nil {
		m.onClose()
	}
	return m, tea.Quit
}

// handleDetailKey scrolls the read-only detail pane.
func (m Model) handleDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.close()
	case "tab", "esc":
		m.focus = PaneLeft
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// contentHeight returns the usable height for pane content,
// accounting for border chrome and the help bar.
func (m Model) contentHeight() int {
	h := m.height - borderChrome - helpBarHeight
	if h < 1 {
		return 1
	}
	return h
}

// refresh keeps the cursor on a visible row, re-renders the detail viewport
// and keeps the editor inputs in step with the current selection.
func (m Model) refresh() Model {
	// Edits can drop rows out of the active filter under the cursor.
	m.cursor = clampCursor(m.cursor, len(m.Entries()))
	if m.variant == VariantEditor {
		sel, ok := m.book.Selected()
		if !ok {
			m.editor = m.editor.clear()
			if m.focus == PaneRight {
				m.focus = PaneLeft
			}
		} else if m.editor.key != sel.Key() {
			m.editor = m.editor.load(sel)
		}
		return m
	}
	m.viewport.SetContent(m.viewDetail())
	return m
}

// View renders the two-pane layout with help bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	leftWidth, rightWidth := PaneWidths(m.width)
	contentHeight := m.contentHeight()

	var leftStyle, rightStyle lipgloss.Style
	if m.focus == PaneLeft {
		leftStyle = FocusedBorder()
		rightStyle = UnfocusedBorder()
	} else {
		leftStyle = UnfocusedBorder()
		rightStyle = FocusedBorder()
	}

	leftStyle = leftStyle.
		Width(leftWidth - borderChrome).
		Height(contentHeight)
	rightStyle = rightStyle.
		Width(rightWidth - borderChrome).
		Height(contentHeight)

	leftPane := leftStyle.Render(m.viewList(leftWidth-borderChrome, contentHeight))
	rightPane := rightStyle.Render(m.viewRight())
	panes := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)

	return lipgloss.JoinVertical(lipgloss.Left, panes, m.viewFooter())
}

// viewRight renders the right pane content for the variant.
func (m Model) viewRight() string {
	if m.variant == VariantEditor {
		return m.viewEditor()
	}
	return m.viewport.View()
}

// viewFooter renders the title and either the status message or the help bar.
func (m Model) viewFooter() string {
	var prefix string
	if m.title != "" {
		prefix = titleText.Render(m.title) + "  "
	}
	if m.status != "" {
		return prefix + errorText.Render(m.status)
	}
	return prefix + m.help.View(HelpBindings(m.variant, m.focus, m.searching))
}
