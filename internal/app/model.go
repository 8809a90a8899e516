package app

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"

	"docpane/internal/api"
	"docpane/internal/chat"
	"docpane/internal/config"
	"docpane/internal/preview"
	"docpane/internal/tree"
	"docpane/internal/ui/styles"
)

// Service is everything the UI needs from the document service. The
// api.Client satisfies it; tests swap in a stub.
type Service interface {
	Tree(ctx context.Context) ([]tree.Node, error)
	Search(ctx context.Context, query string, topK int, documentID *int) ([]api.SearchResult, error)
	Detail(ctx context.Context, id int) (*api.DocumentDetail, error)
	PDFText(ctx context.Context, id int) (*api.PDFText, error)
	Word(ctx context.Context, id int) (*api.WordDoc, error)
	Excel(ctx context.Context, id int) (*api.Workbook, error)
	Media(ctx context.Context, url string) ([]byte, error)
	RawURL(format string, id int) string
	MediaURL(format string, id int) string
	Resolve(ref string) string
}

type focusArea int

const (
	focusTree focusArea = iota
	focusPreview
	focusChat
)

type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayHelp
	overlayJump
	overlayImage
)

const (
	statusWindow = 3 * time.Second
	flagWindow   = 3 * time.Second
)

// selection records which document the preview pane is bound to. It is
// set synchronously when a preview starts and survives content
// failures.
type selection struct {
	id       int
	nodeType tree.NodeType
	fileType string
}

// previewState is everything the preview pane shows for the current
// selection. Starting a new preview replaces the whole struct, so
// per-document caches cannot leak across selections.
type previewState struct {
	status    preview.Status
	sel       *selection
	detail    *api.DocumentDetail
	kind      preview.Kind
	warning   string
	highlight string

	pdfMode     preview.PDFMode
	pdfText     *api.PDFText
	pdfPages    []preview.Page
	pdfFetching bool

	word    *api.WordDoc
	gallery int

	book *api.Workbook

	img       *imageRender
	imgFailed bool
}

type treeRow struct {
	node  tree.Node
	depth int
}

type jumpMatch struct {
	node    tree.Node
	indexes []int
}

type Model struct {
	svc        Service
	cfg        config.Config
	configPath string
	watcher    *fsnotify.Watcher

	width  int
	height int
	ready  bool

	focus   focusArea
	overlay overlayKind
	keys    keyMap

	// tree pane
	tree        *tree.Model
	treeErr     string
	treeRows    []treeRow
	cursor      int
	treeOffset  int
	filterInput textinput.Model
	query       string
	flagged     map[int]struct{}
	flagGen     int

	// preview pane
	pv             previewState
	previewGen     int
	previewView    viewport.Model
	previewContent string
	breadcrumb     []tree.Node

	// chat pane
	chatLog   *chat.Log
	chatInput textinput.Model
	chatView  viewport.Model
	chatGen   int
	searching bool
	spin      spinner.Model

	// quick-jump overlay
	jumpInput   textinput.Model
	jumpMatches []jumpMatch
	jumpCursor  int

	// gallery image overlay
	overlayImg    *imageRender
	overlayImgErr string

	markdown *glamour.TermRenderer

	statusText string
	statusErr  bool
}

func NewModel(svc Service, cfg config.Config, configPath string) Model {
	filter := textinput.New()
	filter.Placeholder = "filter documents"
	filter.Prompt = "/ "
	filter.CharLimit = 128

	chatIn := textinput.New()
	chatIn.Placeholder = "ask about the collection"
	chatIn.Prompt = "> "
	chatIn.CharLimit = 512

	jump := textinput.New()
	jump.Placeholder = "jump to document"
	jump.Prompt = "> "
	jump.CharLimit = 128

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Accent)

	// A nil watcher just disables hot reload.
	var watcher *fsnotify.Watcher
	if configPath != "" {
		w, err := config.Watch(configPath)
		if err != nil {
			logDebug("config watch unavailable: %v", err)
		} else {
			watcher = w
		}
	}

	return Model{
		svc:         svc,
		cfg:         cfg,
		configPath:  configPath,
		watcher:     watcher,
		keys:        newKeyMap(),
		tree:        tree.New(),
		filterInput: filter,
		flagged:     map[int]struct{}{},
		chatLog:     &chat.Log{},
		chatInput:   chatIn,
		jumpInput:   jump,
		spin:        sp,
		focus:       focusTree,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadTree(), m.waitForConfigChange(), textinput.Blink)
}

// setStatus puts a transient notice in the status bar. Callers pair it
// with clearStatusAfter.
func (m *Model) setStatus(text string, isError bool) {
	m.statusText = text
	m.statusErr = isError
}

// resetForReload drops all selection-dependent state after a fresh
// hierarchy replaces the old one.
func (m *Model) resetForReload() {
	m.pv = previewState{}
	m.previewGen++
	m.breadcrumb = nil
	m.previewContent = ""
	m.cursor = 0
	m.treeOffset = 0
	m.flagged = map[int]struct{}{}
	m.flagGen++
	m.query = ""
	m.filterInput.Reset()
}

// rebuildTreeRows flattens the tree into the list the cursor moves
// over, honoring fold state and the active filter. Visibility and the
// walk both read the frozen snapshot.
func (m *Model) rebuildTreeRows() {
	vis := tree.VisibleSet(m.tree.Frozen(), m.query)
	var rows []treeRow
	var walk func(nodes []tree.Node, depth int)
	walk = func(nodes []tree.Node, depth int) {
		for _, n := range nodes {
			if vis != nil && !vis[n.ID] {
				continue
			}
			rows = append(rows, treeRow{node: n, depth: depth})
			if n.Type == tree.Folder && !m.tree.Collapsed(n.ID) {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(m.tree.Frozen(), 0)
	m.treeRows = rows
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampTreeOffset()
}

func (m *Model) cursorRow() (treeRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.treeRows) {
		return treeRow{}, false
	}
	return m.treeRows[m.cursor], true
}

// moveCursor shifts the tree cursor and keeps it inside the visible
// window.
func (m *Model) moveCursor(delta int) {
	if len(m.treeRows) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.treeRows) {
		m.cursor = len(m.treeRows) - 1
	}
	m.clampTreeOffset()
}

func (m *Model) clampTreeOffset() {
	visible := m.treeBodyHeight()
	if visible <= 0 {
		return
	}
	if m.cursor < m.treeOffset {
		m.treeOffset = m.cursor
	}
	if m.cursor >= m.treeOffset+visible {
		m.treeOffset = m.cursor - visible + 1
	}
	if m.treeOffset < 0 {
		m.treeOffset = 0
	}
}

// Pane geometry. Widths are content widths: each pane's border takes
// two more cells, the header and status bar one row each.

func (m Model) paneHeight() int {
	h := m.height - 4
	if h < 4 {
		h = 4
	}
	return h
}

func (m Model) usableWidth() int {
	w := m.width - 6
	if w < 60 {
		w = 60
	}
	return w
}

func (m Model) treePaneWidth() int {
	w := m.usableWidth() / 4
	if w < 22 {
		w = 22
	}
	if w > 42 {
		w = 42
	}
	return w
}

func (m Model) chatPaneWidth() int {
	w := m.usableWidth() / 3
	if w < 28 {
		w = 28
	}
	return w
}

func (m Model) previewPaneWidth() int {
	w := m.usableWidth() - m.treePaneWidth() - m.chatPaneWidth()
	if w < 20 {
		w = 20
	}
	return w
}

// treeBodyHeight is the number of tree rows that fit under the pane
// title and filter line.
func (m Model) treeBodyHeight() int {
	return m.paneHeight() - 3
}

func (m *Model) resize(w, h int) {
	m.width = w
	m.height = h
	m.ready = true

	previewW := m.previewPaneWidth() - 2
	previewH := m.paneHeight() - 1
	if previewH < 1 {
		previewH = 1
	}
	m.previewView.Width = previewW
	m.previewView.Height = previewH

	chatW := m.chatPaneWidth() - 2
	chatH := m.paneHeight() - 2
	if chatH < 1 {
		chatH = 1
	}
	m.chatView.Width = chatW
	m.chatView.Height = chatH

	m.filterInput.Width = m.treePaneWidth() - 6
	m.chatInput.Width = chatW - 3

	m.markdown = newMarkdownRenderer(chatW)
	m.clampTreeOffset()
	m.refreshPreviewContent()
	m.refreshChatContent()
	m.chatView.GotoBottom()
}

func newMarkdownRenderer(width int) *glamour.TermRenderer {
	if width < 10 {
		width = 10
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

func logDebug(format string, args ...any) {
	if os.Getenv("DOCPANE_DEBUG") == "" {
		return
	}
	log.Printf(format, args...)
}
