package app

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"docpane/internal/api"
	"docpane/internal/chat"
	"docpane/internal/preview"
	"docpane/internal/ui/styles"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		switch m.focus {
		case focusPreview:
			m.previewView, cmd = m.previewView.Update(msg)
		case focusChat:
			m.chatView, cmd = m.chatView.Update(msg)
		}
		return m, cmd

	case treeLoadedMsg:
		cmd := m.handleTreeLoaded(msg)
		return m, cmd

	case detailLoadedMsg:
		cmd := m.handleDetailLoaded(msg)
		return m, cmd

	case pdfTextMsg:
		cmd := m.handlePDFText(msg)
		return m, cmd

	case wordMsg:
		cmd := m.handleWord(msg)
		return m, cmd

	case excelMsg:
		cmd := m.handleExcel(msg)
		return m, cmd

	case imageMsg:
		cmd := m.handleImage(msg)
		return m, cmd

	case galleryImageMsg:
		cmd := m.handleGalleryImage(msg)
		return m, cmd

	case searchDoneMsg:
		cmd := m.handleSearchDone(msg)
		return m, cmd

	case clearFlagsMsg:
		if msg.gen == m.flagGen {
			m.flagged = map[int]struct{}{}
		}
		return m, nil

	case statusNoticeMsg:
		m.setStatus(msg.text, msg.isError)
		return m, clearStatusAfter(statusWindow)

	case clearStatusMsg:
		m.statusText = ""
		return m, nil

	case configChangedMsg:
		return m, m.reloadConfigCmd()

	case configReloadedMsg:
		cmd := m.handleConfigReloaded(msg)
		return m, cmd

	case spinner.TickMsg:
		if !m.searching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		m.refreshChatContent()
		return m, cmd
	}

	// Cursor blink and other component messages reach whichever input
	// is focused.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if m.filterInput.Focused() {
		m.filterInput, cmd = m.filterInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.chatInput.Focused() {
		m.chatInput, cmd = m.chatInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.jumpInput.Focused() {
		m.jumpInput, cmd = m.jumpInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// handleKey routes a key press: overlays swallow input first, then
// focused text inputs, then the intent table for the focused pane.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.overlay {
	case overlayHelp:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc", "?", "q", "enter":
			m.overlay = overlayNone
		}
		return m, nil
	case overlayJump:
		return m.handleJumpKey(msg)
	case overlayImage:
		return m.handleImageOverlayKey(msg)
	}

	if m.filterInput.Focused() {
		return m.handleFilterKey(msg)
	}
	if m.chatInput.Focused() {
		return m.handleChatKey(msg)
	}

	for _, it := range m.intents() {
		if key.Matches(msg, it.binding) {
			cmd := it.run(&m)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.filterInput.Blur()
		cmd := m.clearFilter()
		return m, cmd
	case "enter":
		m.filterInput.Blur()
		return m, nil
	case "tab":
		m.filterInput.Blur()
		cmd := m.cycleFocus()
		return m, cmd
	case "down":
		m.moveCursor(1)
		return m, nil
	case "up":
		m.moveCursor(-1)
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.chatInput.Blur()
		return m, nil
	case "enter":
		cmd := m.submitQuery()
		return m, cmd
	case "tab":
		m.chatInput.Blur()
		cmd := m.cycleFocus()
		return m, cmd
	case "pgup":
		m.chatView.HalfViewUp()
		return m, nil
	case "pgdown":
		m.chatView.HalfViewDown()
		return m, nil
	}
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

func (m Model) handleJumpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "ctrl+p":
		m.overlay = overlayNone
		m.jumpInput.Blur()
		return m, nil
	case "enter":
		cmd := m.jumpConfirm()
		return m, cmd
	case "down", "ctrl+n":
		if m.jumpCursor < len(m.jumpMatches)-1 {
			m.jumpCursor++
		}
		return m, nil
	case "up", "ctrl+k":
		if m.jumpCursor > 0 {
			m.jumpCursor--
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.jumpInput, cmd = m.jumpInput.Update(msg)
	m.updateJumpMatches()
	return m, cmd
}

func (m Model) handleImageOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "v", "q":
		m.overlay = overlayNone
		m.overlayImg = nil
		m.overlayImgErr = ""
		return m, nil
	case "]":
		m.stepGallery(1)
		cmd := m.openGalleryImage()
		return m, cmd
	case "[":
		m.stepGallery(-1)
		cmd := m.openGalleryImage()
		return m, cmd
	case "o":
		if m.pv.word != nil && len(m.pv.word.Images) > 0 {
			ref := m.pv.word.Images[m.pv.gallery].URL
			return m, openInSystem(m.svc.Resolve(ref))
		}
		return m, nil
	}
	return m, nil
}

// Message handlers. Every preview handler checks the generation first;
// stale completions leave the model untouched.

func (m *Model) handleTreeLoaded(msg treeLoadedMsg) tea.Cmd {
	if msg.err != nil {
		// Keep the previous hierarchy. The failure also lands in the
		// chat area so it is visible without a status-bar glance.
		m.treeErr = noticeFor(msg.err)
		m.chatLog.Append(chat.SenderAssistant,
			"I could not load the document tree: "+noticeFor(msg.err)+".")
		m.refreshChatContent()
		m.chatView.GotoBottom()
		m.setStatus("document tree load failed", true)
		return clearStatusAfter(statusWindow)
	}
	m.treeErr = ""
	m.tree.Replace(msg.nodes)
	m.resetForReload()
	m.rebuildTreeRows()
	m.refreshPreviewContent()
	return nil
}

func (m *Model) handleDetailLoaded(msg detailLoadedMsg) tea.Cmd {
	if msg.gen != m.previewGen {
		logDebug("dropping stale detail (gen %d, want %d)", msg.gen, m.previewGen)
		return nil
	}
	if msg.err != nil {
		m.pv.status = preview.Failed
		m.pv.warning = "Could not load document details."
		m.refreshPreviewContent()
		m.setStatus(noticeFor(msg.err), true)
		return clearStatusAfter(statusWindow)
	}
	m.pv.detail = msg.detail
	m.pv.kind = preview.KindOf(msg.detail.FileType)
	return m.dispatchPreview()
}

func (m *Model) handlePDFText(msg pdfTextMsg) tea.Cmd {
	if msg.gen != m.previewGen {
		return nil
	}
	m.pv.pdfFetching = false
	if msg.err != nil {
		m.pv.status = preview.Failed
		m.pv.warning = "Text extraction failed for this document."
		m.refreshPreviewContent()
		m.setStatus(noticeFor(msg.err), true)
		return clearStatusAfter(statusWindow)
	}
	m.pv.pdfText = msg.data
	m.pv.pdfPages = preview.SplitPages(msg.data.Content)
	m.pv.status = preview.Loaded
	m.refreshPreviewContent()
	return nil
}

func (m *Model) handleWord(msg wordMsg) tea.Cmd {
	if msg.gen != m.previewGen {
		return nil
	}
	if msg.err != nil {
		m.pv.status = preview.Failed
		m.pv.warning = "Could not extract document content."
		m.refreshPreviewContent()
		m.setStatus(noticeFor(msg.err), true)
		return clearStatusAfter(statusWindow)
	}
	m.pv.word = msg.doc
	m.pv.gallery = 0
	m.pv.status = preview.Loaded
	m.refreshPreviewContent()
	return nil
}

func (m *Model) handleExcel(msg excelMsg) tea.Cmd {
	if msg.gen != m.previewGen {
		return nil
	}
	if msg.err != nil {
		m.pv.status = preview.Failed
		m.pv.warning = "Could not read workbook data."
		m.refreshPreviewContent()
		m.setStatus(noticeFor(msg.err), true)
		return clearStatusAfter(statusWindow)
	}
	m.pv.book = msg.book
	m.pv.status = preview.Loaded
	m.refreshPreviewContent()
	return nil
}

func (m *Model) handleImage(msg imageMsg) tea.Cmd {
	if msg.gen != m.previewGen {
		return nil
	}
	// Image failures keep the pane alive with a placeholder instead of
	// a warning banner.
	if msg.err != nil {
		m.pv.imgFailed = true
	} else {
		m.pv.img = msg.render
	}
	m.pv.status = preview.Loaded
	m.refreshPreviewContent()
	return nil
}

func (m *Model) handleGalleryImage(msg galleryImageMsg) tea.Cmd {
	if m.overlay != overlayImage || msg.gen != m.previewGen {
		return nil
	}
	if msg.err != nil {
		m.overlayImgErr = noticeFor(msg.err)
		return nil
	}
	m.overlayImg = msg.render
	return nil
}

// handleSearchDone resolves the loading placeholder exactly once (the
// placeholder id outlives generation changes), then applies flags and
// auto-preview only when the completion is still current.
func (m *Model) handleSearchDone(msg searchDoneMsg) tea.Cmd {
	current := msg.gen == m.chatGen
	if current {
		m.searching = false
	}

	var cmds []tea.Cmd
	switch {
	case errors.Is(msg.err, api.ErrEmptyResult):
		m.chatLog.Resolve(msg.pendingID, chat.NoResultsMessage)

	case msg.err != nil:
		var srvErr *api.ServerError
		if errors.As(msg.err, &srvErr) {
			m.chatLog.Resolve(msg.pendingID, chat.NoResultsMessage)
		} else {
			m.chatLog.Resolve(msg.pendingID,
				"Search failed: the document service is unreachable.")
			m.setStatus(noticeFor(msg.err), true)
			cmds = append(cmds, clearStatusAfter(statusWindow))
		}

	default:
		groups := chat.Group(msg.results)
		m.chatLog.Resolve(msg.pendingID, chat.Summary(groups))
		if current {
			m.flagGen++
			m.flagged = map[int]struct{}{}
			for _, g := range groups {
				m.flagged[g.Document.ID] = struct{}{}
			}
			cmds = append(cmds, m.clearFlagsAfter(m.flagGen))
			if len(groups) == 1 {
				cmds = append(cmds,
					m.previewDocument(groups[0].Document.ID, groups[0].Chunks[0].Text))
			}
		}
	}

	m.refreshChatContent()
	m.chatView.GotoBottom()
	return tea.Batch(cmds...)
}

func (m *Model) handleConfigReloaded(msg configReloadedMsg) tea.Cmd {
	rearm := m.waitForConfigChange()
	if msg.err != nil {
		m.setStatus("config reload failed: "+msg.err.Error(), true)
		return tea.Batch(rearm, clearStatusAfter(statusWindow))
	}
	restart := msg.cfg.ServiceURL != m.cfg.ServiceURL
	m.cfg = msg.cfg
	styles.Apply(msg.cfg.Theme)
	m.refreshPreviewContent()
	m.refreshChatContent()
	if restart {
		m.setStatus("config reloaded (service_url change needs a restart)", false)
	} else {
		m.setStatus("config reloaded", false)
	}
	return tea.Batch(rearm, clearStatusAfter(statusWindow))
}
