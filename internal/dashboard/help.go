package dashboard

import "github.com/charmbracelet/bubbles/help"

// HelpBindings returns the help.KeyMap for the current variant, focus and
// search state, providing context-aware help bar content.
func HelpBindings(v Variant, focus Focus, searching bool) help.KeyMap {
	switch {
	case searching:
		return SearchKeyMap()
	case focus == PaneRight && v == VariantEditor:
		return EditKeyMap()
	case focus == PaneRight:
		return DetailKeyMap()
	default:
		return ListKeyMap(v)
	}
}
