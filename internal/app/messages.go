package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"docpane/internal/api"
	"docpane/internal/config"
	"docpane/internal/tree"
)

// Async completion messages. Every message tied to a pane carries the
// generation its request started under; Update discards it when the
// pane has moved on.

type treeLoadedMsg struct {
	nodes []tree.Node
	err   error
}

type detailLoadedMsg struct {
	gen    int
	detail *api.DocumentDetail
	err    error
}

type pdfTextMsg struct {
	gen  int
	data *api.PDFText
	err  error
}

type wordMsg struct {
	gen int
	doc *api.WordDoc
	err error
}

type excelMsg struct {
	gen  int
	book *api.Workbook
	err  error
}

type imageMsg struct {
	gen    int
	render *imageRender
	err    error
}

type galleryImageMsg struct {
	gen    int
	render *imageRender
	err    error
}

type searchDoneMsg struct {
	gen       int
	pendingID string
	results   []api.SearchResult
	err       error
}

type clearFlagsMsg struct{ gen int }

type statusNoticeMsg struct {
	text    string
	isError bool
}

type clearStatusMsg struct{}

type configChangedMsg struct{}

type configReloadedMsg struct {
	cfg config.Config
	err error
}

// clearStatusAfter schedules the status bar wipe.
func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
