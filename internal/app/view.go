package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"docpane/internal/chat"
	"docpane/internal/preview"
	"docpane/internal/ui/styles"
)

// View implements tea.Model
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := styles.Header.Padding(0, 1).Render("docpane") +
		styles.Faint.Render(" "+m.cfg.ServiceURL)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderTreePane(),
		m.renderPreviewPane(),
		m.renderChatPane(),
	)

	mainView := header + "\n" + body + "\n" + m.renderStatusBar()

	switch m.overlay {
	case overlayHelp:
		return m.renderHelpOverlay()
	case overlayJump:
		return m.renderJumpOverlay()
	case overlayImage:
		return m.renderImageOverlay()
	}
	return mainView
}

func (m Model) paneStyle(area focusArea) lipgloss.Style {
	if m.focus == area {
		return styles.ActiveBorder()
	}
	return styles.InactiveBorder()
}

func (m Model) renderTreePane() string {
	width := m.treePaneWidth()

	var b strings.Builder
	b.WriteString(m.renderTreeTitle())
	b.WriteString("\n")
	if m.filterInput.Focused() || m.filterInput.Value() != "" {
		b.WriteString(m.filterInput.View())
	} else {
		b.WriteString(styles.Faint.Render("/ filter"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderTreeRows(width - 2))

	return m.paneStyle(focusTree).
		Width(width).
		Height(m.paneHeight()).
		Padding(0, 1).
		Render(b.String())
}

func (m Model) renderPreviewPane() string {
	width := m.previewPaneWidth()

	var b strings.Builder
	b.WriteString(m.renderBreadcrumb(width - 2))
	b.WriteString("\n")
	b.WriteString(m.previewView.View())

	return m.paneStyle(focusPreview).
		Width(width).
		Height(m.paneHeight()).
		Padding(0, 1).
		Render(b.String())
}

func (m Model) renderChatPane() string {
	width := m.chatPaneWidth()

	var b strings.Builder
	b.WriteString(styles.Title.Render("Ask"))
	b.WriteString("\n")
	b.WriteString(m.chatView.View())
	b.WriteString("\n")
	b.WriteString(m.chatInput.View())

	return m.paneStyle(focusChat).
		Width(width).
		Height(m.paneHeight()).
		Padding(0, 1).
		Render(b.String())
}

func (m Model) renderStatusBar() string {
	hints := styles.Faint.Render("tab panes  / filter  i ask  ctrl+p jump  r reload  ? help  q quit")
	if m.statusText == "" {
		return hints
	}
	style := styles.StatusSuccess
	if m.statusErr {
		style = styles.StatusError
	}
	return style.Render(m.statusText) + "  " + hints
}

// refreshChatContent rebuilds the conversation body for the chat
// viewport.
func (m *Model) refreshChatContent() {
	width := m.chatView.Width
	if width <= 0 {
		width = 40
	}

	var b strings.Builder
	if m.chatLog.Len() == 0 {
		b.WriteString(styles.Placeholder.Render("Ask a question about your documents."))
		b.WriteString("\n\n")
		b.WriteString(styles.Faint.Render(wordwrap.String(
			"Answers cite the source documents and flag them in the tree.", width)))
	} else {
		for i, msg := range m.chatLog.Messages() {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(m.renderChatMessage(msg, width))
			b.WriteString("\n")
		}
	}
	m.chatView.SetContent(b.String())
}

func (m Model) renderChatMessage(msg chat.Message, width int) string {
	ts := styles.Faint.Render(msg.Timestamp.Format("15:04"))
	switch {
	case msg.Pending:
		return styles.ChatPending.Render(m.spin.View() + " " + msg.Content)
	case msg.Sender == chat.SenderUser:
		return styles.ChatUser.Render("You") + " " + ts + "\n" +
			wordwrap.String(msg.Content, width)
	default:
		return styles.ChatAssistant.Render("Assistant") + " " + ts + "\n" +
			m.renderMarkdown(msg.Content, width)
	}
}

func (m Model) renderMarkdown(content string, width int) string {
	if m.markdown != nil {
		if out, err := m.markdown.Render(content); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return wordwrap.String(content, width)
}

func (m Model) renderHelpOverlay() string {
	boxWidth := m.width * 60 / 100
	if boxWidth > 64 {
		boxWidth = 64
	}
	if boxWidth < 40 {
		boxWidth = 40
	}

	var content strings.Builder
	content.WriteString(styles.Title.Render("Keyboard Shortcuts"))
	content.WriteString("\n\n")
	for _, row := range m.helpRows() {
		key := fmt.Sprintf("%-8s", row[0])
		content.WriteString("  " + styles.Key.Render(key) + " " + styles.Faint.Render(row[1]))
		content.WriteString("\n")
	}
	content.WriteString("\n")
	content.WriteString(styles.Faint.Render("esc closes"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderActive).
		Padding(1, 3).
		Width(boxWidth).
		Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderJumpOverlay() string {
	boxWidth := m.width * 60 / 100
	if boxWidth > 70 {
		boxWidth = 70
	}
	if boxWidth < 40 {
		boxWidth = 40
	}
	maxVisible := m.height - 14
	if maxVisible < 3 {
		maxVisible = 3
	}
	if maxVisible > 15 {
		maxVisible = 15
	}

	var content strings.Builder
	content.WriteString(m.jumpInput.View())
	content.WriteString("\n\n")

	total := len(m.jumpMatches)
	if total == 0 {
		content.WriteString(styles.Faint.Render("No matches"))
	} else {
		// Keep the cursor inside the visible window.
		offset := 0
		if m.jumpCursor >= maxVisible {
			offset = m.jumpCursor - maxVisible + 1
		}
		if offset > 0 {
			content.WriteString(styles.Faint.Render("  ▲ more above"))
			content.WriteString("\n")
		}
		end := offset + maxVisible
		if end > total {
			end = total
		}
		for i := offset; i < end; i++ {
			content.WriteString(m.renderJumpLine(m.jumpMatches[i], i == m.jumpCursor))
			content.WriteString("\n")
		}
		if end < total {
			content.WriteString(styles.Faint.Render("  ▼ more below"))
			content.WriteString("\n")
		}
		content.WriteString("\n")
		content.WriteString(styles.Faint.Render(fmt.Sprintf("%d documents", total)))
	}

	box := styles.ActiveBorder().
		Padding(1, 2).
		Width(boxWidth).
		Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderJumpLine(match jumpMatch, selected bool) string {
	if selected {
		return styles.Selected.Render(match.node.Name)
	}
	if len(match.indexes) == 0 {
		return styles.Faint.Render(match.node.Name)
	}
	set := make(map[int]struct{}, len(match.indexes))
	for _, i := range match.indexes {
		set[i] = struct{}{}
	}
	var b strings.Builder
	for i, r := range match.node.Name {
		if _, ok := set[i]; ok {
			b.WriteString(styles.Match.Render(string(r)))
		} else {
			b.WriteString(styles.Faint.Render(string(r)))
		}
	}
	return b.String()
}

func (m Model) renderImageOverlay() string {
	label := ""
	if m.pv.word != nil && len(m.pv.word.Images) > 0 {
		cur := m.pv.word.Images[m.pv.gallery]
		label = fmt.Sprintf("%s · %d/%d",
			preview.GalleryLabel(cur), m.pv.gallery+1, len(m.pv.word.Images))
	}

	var content strings.Builder
	if label != "" {
		content.WriteString(styles.Title.Render(label))
		content.WriteString("\n\n")
	}
	switch {
	case m.overlayImgErr != "":
		content.WriteString(styles.StatusError.Render(m.overlayImgErr))
	case m.overlayImg == nil:
		content.WriteString(styles.Faint.Render("Loading image…"))
	default:
		content.WriteString(m.overlayImg.cells)
	}
	content.WriteString("\n\n")
	content.WriteString(styles.Faint.Render("[ and ] browse · o open · esc close"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderActive).
		Padding(1, 2).
		Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
