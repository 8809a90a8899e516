package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"docpane/internal/chat"
	"docpane/internal/clipboard"
	"docpane/internal/preview"
	"docpane/internal/tree"
)

// previewDocument is the single entry point for showing a document.
// Selection, breadcrumb, and the Loading state are set synchronously;
// the detail fetch and per-format content loads follow as commands
// sequenced by the preview generation. Selection sticks even when the
// content later fails.
func (m *Model) previewDocument(id int, highlight string) tea.Cmd {
	node, ok := m.tree.FindNode(id)
	if !ok || node.Type != tree.File {
		m.setStatus("document is not in the current tree", true)
		return clearStatusAfter(statusWindow)
	}
	m.previewGen++
	m.pv = previewState{
		status:    preview.Loading,
		sel:       &selection{id: id, nodeType: node.Type, fileType: node.FileType},
		highlight: highlight,
	}
	m.breadcrumb = m.tree.FindPath(id)
	m.previewView.GotoTop()
	m.refreshPreviewContent()
	return m.loadDetail(id, m.previewGen)
}

// dispatchPreview picks the rendering strategy once the detail has
// settled. Video and unknown need no further fetch.
func (m *Model) dispatchPreview() tea.Cmd {
	gen := m.previewGen
	id := m.pv.sel.id
	switch m.pv.kind {
	case preview.KindPDF:
		m.pv.pdfMode = preview.PDFText
		m.pv.pdfFetching = true
		return m.loadPDFText(id, gen)
	case preview.KindWord:
		return m.loadWord(id, gen)
	case preview.KindExcel:
		return m.loadExcel(id, gen)
	case preview.KindImage:
		return m.loadImage(id, gen)
	case preview.KindVideo:
		m.pv.status = preview.Loaded
		m.refreshPreviewContent()
		return nil
	default:
		m.pv.status = preview.Loaded
		m.refreshPreviewContent()
		return nil
	}
}

// reopenSelection re-runs the preview for the breadcrumb leaf.
func (m *Model) reopenSelection() tea.Cmd {
	if m.pv.sel == nil {
		return nil
	}
	return m.previewDocument(m.pv.sel.id, "")
}

// switchPreviewMode flips a PDF between extracted text and the raw
// embed card. The text extraction is fetched once per selection and
// cached for later switches.
func (m *Model) switchPreviewMode() tea.Cmd {
	if m.pv.sel == nil || m.pv.kind != preview.KindPDF {
		return nil
	}
	m.pv.pdfMode = m.pv.pdfMode.Toggle()
	var cmd tea.Cmd
	if m.pv.pdfMode == preview.PDFText && m.pv.pdfText == nil && !m.pv.pdfFetching {
		m.pv.status = preview.Loading
		m.pv.pdfFetching = true
		cmd = m.loadPDFText(m.pv.sel.id, m.previewGen)
	}
	m.refreshPreviewContent()
	return cmd
}

func (m *Model) stepGallery(delta int) {
	if m.pv.word == nil || len(m.pv.word.Images) == 0 {
		return
	}
	n := len(m.pv.word.Images)
	m.pv.gallery = (m.pv.gallery + delta + n) % n
	m.refreshPreviewContent()
}

// openGalleryImage shows the current embedded image in an overlay.
func (m *Model) openGalleryImage() tea.Cmd {
	if m.pv.word == nil || len(m.pv.word.Images) == 0 {
		return nil
	}
	img := m.pv.word.Images[m.pv.gallery]
	m.overlay = overlayImage
	m.overlayImg = nil
	m.overlayImgErr = ""
	return m.fetchGalleryImage(img.URL, m.previewGen)
}

// openExternal hands the selected document to the OS default handler.
// Video formats without a supported player get a notice instead.
func (m *Model) openExternal() tea.Cmd {
	if m.pv.sel == nil {
		return nil
	}
	id := m.pv.sel.id
	var url string
	switch m.pv.kind {
	case preview.KindPDF:
		url = m.svc.RawURL("pdf", id)
	case preview.KindWord:
		url = m.svc.RawURL("word", id)
	case preview.KindExcel:
		url = m.svc.RawURL("excel", id)
	case preview.KindImage:
		url = m.svc.MediaURL("image", id)
	case preview.KindVideo:
		if !preview.Playable(m.pv.sel.fileType) {
			m.setStatus("no supported player for ."+m.pv.sel.fileType, true)
			return clearStatusAfter(statusWindow)
		}
		url = m.svc.MediaURL("video", id)
	default:
		return nil
	}
	return openInSystem(url)
}

// submitQuery runs the chat search flow: user message, loading
// placeholder, then a single resolution when the search settles.
func (m *Model) submitQuery() tea.Cmd {
	text := strings.TrimSpace(m.chatInput.Value())
	if text == "" {
		return nil
	}
	m.chatInput.Reset()
	m.chatLog.Append(chat.SenderUser, text)
	pendingID := m.chatLog.AppendPending()
	m.chatGen++
	m.searching = true
	m.refreshChatContent()
	m.chatView.GotoBottom()
	return tea.Batch(m.spin.Tick, m.runSearch(text, m.chatGen, pendingID))
}

// Tree pane intents.

func (m *Model) openCursor() tea.Cmd {
	row, ok := m.cursorRow()
	if !ok {
		return nil
	}
	if row.node.Type == tree.Folder {
		m.tree.Toggle(row.node.ID)
		m.rebuildTreeRows()
		return nil
	}
	return m.previewDocument(row.node.ID, "")
}

// collapseCursor folds the folder under the cursor, or jumps to the
// parent when there is nothing to fold.
func (m *Model) collapseCursor() tea.Cmd {
	row, ok := m.cursorRow()
	if !ok {
		return nil
	}
	if row.node.Type == tree.Folder && !m.tree.Collapsed(row.node.ID) {
		m.tree.Toggle(row.node.ID)
		m.rebuildTreeRows()
		return nil
	}
	for i := m.cursor - 1; i >= 0; i-- {
		if m.treeRows[i].depth < row.depth {
			m.cursor = i
			m.clampTreeOffset()
			break
		}
	}
	return nil
}

func (m *Model) pageCursorDown() tea.Cmd {
	m.moveCursor(m.treeBodyHeight())
	return nil
}

func (m *Model) pageCursorUp() tea.Cmd {
	m.moveCursor(-m.treeBodyHeight())
	return nil
}

func (m *Model) cursorToTop() tea.Cmd {
	m.cursor = 0
	m.clampTreeOffset()
	return nil
}

func (m *Model) cursorToBottom() tea.Cmd {
	if len(m.treeRows) > 0 {
		m.cursor = len(m.treeRows) - 1
	}
	m.clampTreeOffset()
	return nil
}

func (m *Model) focusFilter() tea.Cmd {
	m.filterInput.Focus()
	return textinput.Blink
}

// clearFilter drops the active filter. Fold state keeps whatever
// expandMatchingPaths opened.
func (m *Model) clearFilter() tea.Cmd {
	if m.query == "" && m.filterInput.Value() == "" {
		return nil
	}
	m.filterInput.Reset()
	m.query = ""
	m.rebuildTreeRows()
	return nil
}

// applyFilter recomputes visibility from the filter input and forces
// open every path to a match.
func (m *Model) applyFilter() {
	q := tree.Normalize(m.filterInput.Value())
	if q == m.query {
		return
	}
	m.query = q
	if q != "" {
		m.tree.ExpandMatchingPaths(q)
	}
	m.rebuildTreeRows()
}

func (m *Model) copyCursorPath() tea.Cmd {
	row, ok := m.cursorRow()
	if !ok {
		return nil
	}
	path := m.tree.FindPath(row.node.ID)
	segments := make([]string, len(path))
	for i, n := range path {
		segments[i] = n.Name
	}
	if err := clipboard.CopyPath(segments); err != nil {
		m.setStatus("clipboard unavailable", true)
	} else {
		m.setStatus("path copied", false)
	}
	return clearStatusAfter(statusWindow)
}

func (m *Model) copyPreviewText() tea.Cmd {
	if m.previewContent == "" {
		return nil
	}
	if err := clipboard.CopyText(m.previewContent); err != nil {
		m.setStatus("clipboard unavailable", true)
	} else {
		m.setStatus("preview copied", false)
	}
	return clearStatusAfter(statusWindow)
}

// Preview and chat scrolling.

func (m *Model) previewPageDown() tea.Cmd { m.previewView.HalfViewDown(); return nil }
func (m *Model) previewPageUp() tea.Cmd   { m.previewView.HalfViewUp(); return nil }
func (m *Model) previewToTop() tea.Cmd    { m.previewView.GotoTop(); return nil }
func (m *Model) previewToBottom() tea.Cmd { m.previewView.GotoBottom(); return nil }
func (m *Model) chatPageDown() tea.Cmd    { m.chatView.HalfViewDown(); return nil }
func (m *Model) chatPageUp() tea.Cmd      { m.chatView.HalfViewUp(); return nil }

// Focus and overlays.

func (m *Model) cycleFocus() tea.Cmd {
	m.chatInput.Blur()
	m.filterInput.Blur()
	m.focus = (m.focus + 1) % 3
	if m.focus == focusChat {
		m.chatInput.Focus()
		return textinput.Blink
	}
	return nil
}

func (m *Model) focusChatPane() tea.Cmd {
	m.filterInput.Blur()
	m.focus = focusChat
	m.chatInput.Focus()
	return textinput.Blink
}

func (m *Model) toggleHelp() tea.Cmd {
	if m.overlay == overlayHelp {
		m.overlay = overlayNone
	} else {
		m.overlay = overlayHelp
	}
	return nil
}

func (m *Model) reloadTree() tea.Cmd {
	m.setStatus("reloading documents…", false)
	return tea.Batch(m.loadTree(), clearStatusAfter(statusWindow))
}

// Quick-jump overlay.

type fileSource []tree.Node

func (s fileSource) String(i int) string { return s[i].Name }
func (s fileSource) Len() int            { return len(s) }

func (m *Model) openJump() tea.Cmd {
	if m.tree.Empty() {
		return nil
	}
	m.overlay = overlayJump
	m.jumpInput.Reset()
	m.jumpCursor = 0
	m.updateJumpMatches()
	m.jumpInput.Focus()
	return textinput.Blink
}

func (m *Model) updateJumpMatches() {
	files := m.tree.Files()
	q := strings.TrimSpace(m.jumpInput.Value())
	if q == "" {
		matches := make([]jumpMatch, 0, len(files))
		for _, f := range files {
			matches = append(matches, jumpMatch{node: f})
		}
		m.jumpMatches = matches
	} else {
		found := fuzzy.FindFrom(q, fileSource(files))
		matches := make([]jumpMatch, 0, len(found))
		for _, f := range found {
			matches = append(matches, jumpMatch{node: files[f.Index], indexes: f.MatchedIndexes})
		}
		m.jumpMatches = matches
	}
	if m.jumpCursor >= len(m.jumpMatches) {
		m.jumpCursor = len(m.jumpMatches) - 1
	}
	if m.jumpCursor < 0 {
		m.jumpCursor = 0
	}
}

func (m *Model) jumpConfirm() tea.Cmd {
	m.overlay = overlayNone
	m.jumpInput.Blur()
	if len(m.jumpMatches) == 0 {
		return nil
	}
	target := m.jumpMatches[m.jumpCursor].node
	m.revealInTree(target.ID)
	return m.previewDocument(target.ID, "")
}

// revealInTree expands every ancestor of id and parks the cursor on
// its row.
func (m *Model) revealInTree(id int) {
	path := m.tree.FindPath(id)
	if len(path) == 0 {
		return
	}
	for _, n := range path[:len(path)-1] {
		m.tree.Expand(n.ID)
	}
	m.rebuildTreeRows()
	for i, row := range m.treeRows {
		if row.node.ID == id {
			m.cursor = i
			break
		}
	}
	m.clampTreeOffset()
}
