package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap defines every bound key. Help renders from the same bindings,
// so the overlay can never drift from what Update actually handles.
type keyMap struct {
	Quit        key.Binding
	Help        key.Binding
	FocusNext   key.Binding
	Filter      key.Binding
	Ask         key.Binding
	Jump        key.Binding
	Reload      key.Binding
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Open        key.Binding
	Collapse    key.Binding
	Mode        key.Binding
	GalleryPrev key.Binding
	GalleryNext key.Binding
	ViewImage   key.Binding
	OpenSystem  key.Binding
	Copy        key.Binding
	Back        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter tree"),
		),
		Ask: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "ask the collection"),
		),
		Jump: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "jump to document"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload tree"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "l"),
			key.WithHelp("enter", "open"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "collapse"),
		),
		Mode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "pdf text/raw"),
		),
		GalleryPrev: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous image"),
		),
		GalleryNext: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next image"),
		),
		ViewImage: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "view image"),
		),
		OpenSystem: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in system app"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

// intent pairs a binding with its handler. Update resolves a key press
// by walking the table for the focused pane and running the first
// match, so every user action is declared in one place.
type intent struct {
	binding key.Binding
	run     func(*Model) tea.Cmd
}

func (m *Model) intents() []intent {
	common := []intent{
		{m.keys.Quit, func(*Model) tea.Cmd { return tea.Quit }},
		{m.keys.Help, (*Model).toggleHelp},
		{m.keys.FocusNext, (*Model).cycleFocus},
		{m.keys.Jump, (*Model).openJump},
		{m.keys.Ask, (*Model).focusChatPane},
		{m.keys.Reload, (*Model).reloadTree},
	}

	switch m.focus {
	case focusTree:
		return append(common,
			intent{m.keys.Down, stepCursor(1)},
			intent{m.keys.Up, stepCursor(-1)},
			intent{m.keys.PageDown, (*Model).pageCursorDown},
			intent{m.keys.PageUp, (*Model).pageCursorUp},
			intent{m.keys.Top, (*Model).cursorToTop},
			intent{m.keys.Bottom, (*Model).cursorToBottom},
			intent{m.keys.Open, (*Model).openCursor},
			intent{m.keys.Collapse, (*Model).collapseCursor},
			intent{m.keys.Filter, (*Model).focusFilter},
			intent{m.keys.Copy, (*Model).copyCursorPath},
			intent{m.keys.Back, (*Model).clearFilter},
		)
	case focusPreview:
		return append(common,
			intent{m.keys.Down, scrollPreview(1)},
			intent{m.keys.Up, scrollPreview(-1)},
			intent{m.keys.PageDown, (*Model).previewPageDown},
			intent{m.keys.PageUp, (*Model).previewPageUp},
			intent{m.keys.Top, (*Model).previewToTop},
			intent{m.keys.Bottom, (*Model).previewToBottom},
			intent{m.keys.Open, (*Model).reopenSelection},
			intent{m.keys.Mode, (*Model).switchPreviewMode},
			intent{m.keys.GalleryNext, galleryStep(1)},
			intent{m.keys.GalleryPrev, galleryStep(-1)},
			intent{m.keys.ViewImage, (*Model).openGalleryImage},
			intent{m.keys.OpenSystem, (*Model).openExternal},
			intent{m.keys.Copy, (*Model).copyPreviewText},
		)
	case focusChat:
		return append(common,
			intent{m.keys.Down, scrollChat(1)},
			intent{m.keys.Up, scrollChat(-1)},
			intent{m.keys.PageDown, (*Model).chatPageDown},
			intent{m.keys.PageUp, (*Model).chatPageUp},
			intent{m.keys.Open, (*Model).focusChatPane},
		)
	}
	return common
}

// helpRows feeds the help overlay, grouped the way the panes are.
func (m *Model) helpRows() [][2]string {
	k := m.keys
	rows := make([][2]string, 0, 24)
	for _, b := range []key.Binding{
		k.FocusNext, k.Filter, k.Ask, k.Jump, k.Reload,
		k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom,
		k.Open, k.Collapse, k.Mode, k.GalleryPrev, k.GalleryNext,
		k.ViewImage, k.OpenSystem, k.Copy, k.Back, k.Help, k.Quit,
	} {
		h := b.Help()
		rows = append(rows, [2]string{h.Key, h.Desc})
	}
	return rows
}

func stepCursor(delta int) func(*Model) tea.Cmd {
	return func(m *Model) tea.Cmd {
		m.moveCursor(delta)
		return nil
	}
}

func scrollPreview(delta int) func(*Model) tea.Cmd {
	return func(m *Model) tea.Cmd {
		if delta > 0 {
			m.previewView.LineDown(delta)
		} else {
			m.previewView.LineUp(-delta)
		}
		return nil
	}
}

func scrollChat(delta int) func(*Model) tea.Cmd {
	return func(m *Model) tea.Cmd {
		if delta > 0 {
			m.chatView.LineDown(delta)
		} else {
			m.chatView.LineUp(-delta)
		}
		return nil
	}
}

func galleryStep(delta int) func(*Model) tea.Cmd {
	return func(m *Model) tea.Cmd {
		m.stepGallery(delta)
		return nil
	}
}
