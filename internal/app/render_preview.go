package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/reflow/wordwrap"

	"docpane/internal/preview"
	"docpane/internal/tree"
	"docpane/internal/ui/styles"
)

// refreshPreviewContent rebuilds the preview pane body and hands it to
// the viewport. Called after every preview state change and on resize.
func (m *Model) refreshPreviewContent() {
	width := m.previewView.Width
	if width <= 0 {
		width = 60
	}
	m.previewContent = m.buildPreviewContent(width)
	m.previewView.SetContent(m.previewContent)
}

func (m Model) buildPreviewContent(width int) string {
	if m.pv.sel == nil {
		return styles.Placeholder.Render("Select a document to preview")
	}

	// The raw embed card needs no fetched content, so it renders even
	// while the text extraction is loading or has failed.
	if m.pv.kind == preview.KindPDF && m.pv.pdfMode == preview.PDFRaw && m.pv.detail != nil {
		return m.renderPDFRawCard()
	}

	switch m.pv.status {
	case preview.Loading:
		return styles.Faint.Render("Loading preview…")
	case preview.Failed:
		return m.renderPreviewFailure()
	}

	switch m.pv.kind {
	case preview.KindPDF:
		return m.renderPDF(width)
	case preview.KindWord:
		return m.renderWord(width)
	case preview.KindExcel:
		return m.renderExcel(width)
	case preview.KindImage:
		return m.renderImagePane()
	case preview.KindVideo:
		return m.renderVideo()
	default:
		return m.renderUnknown()
	}
}

func (m Model) renderPreviewFailure() string {
	warning := m.pv.warning
	if warning == "" {
		warning = "Preview unavailable."
	}
	return styles.StatusWarning.Render("⚠ "+warning) + "\n\n" +
		styles.Faint.Render("enter retries · o opens the original")
}

func (m Model) renderPDF(width int) string {
	var b strings.Builder

	hint := "text view · m raw"
	if m.pv.pdfText != nil && m.pv.pdfText.Pages > 0 {
		hint = fmt.Sprintf("%d pages · %s", m.pv.pdfText.Pages, hint)
	}
	b.WriteString(styles.Faint.Render(hint))
	b.WriteString("\n")
	if m.pv.highlight != "" {
		b.WriteString(styles.Faint.Render("highlighting "))
		b.WriteString(styles.Match.Render(m.pv.highlight))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.pv.pdfPages) == 0 {
		b.WriteString(styles.Placeholder.Render("no text content extracted"))
		return b.String()
	}

	for i, page := range m.pv.pdfPages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styles.SectionHeader.Render(fmt.Sprintf("Page %d", page.Number)))
		b.WriteString("\n")
		if len(page.Paragraphs) == 0 {
			b.WriteString(styles.Faint.Render("(blank page)"))
			b.WriteString("\n")
			continue
		}
		for _, para := range page.Paragraphs {
			b.WriteString(wordwrap.String(highlightTerm(para, m.pv.highlight), width))
			b.WriteString("\n\n")
		}
	}

	b.WriteString(m.detailFooter())
	return strings.TrimRight(b.String(), "\n")
}

// renderPDFRawCard is the no-fetch embed view of the original file.
func (m Model) renderPDFRawCard() string {
	d := m.pv.detail
	lines := []string{
		styles.Faint.Render("raw view · m text"),
		"",
		styles.SectionHeader.Render("Original document"),
		styles.Normal.Render(d.Name),
	}
	if d.Size > 0 {
		lines = append(lines, styles.Faint.Render(humanSize(d.Size)))
	}
	lines = append(lines,
		"",
		styles.Muted.Render(m.svc.RawURL("pdf", d.ID)),
		"",
		styles.Faint.Render("o opens in your PDF viewer · y copies this card"),
	)
	return strings.Join(lines, "\n")
}

func (m Model) renderWord(width int) string {
	if m.pv.word == nil {
		return styles.Placeholder.Render("no content")
	}

	var b strings.Builder
	paras := preview.Paragraphs(m.pv.word.Content)
	if len(paras) == 0 {
		b.WriteString(styles.Placeholder.Render("document has no extractable text"))
		b.WriteString("\n")
	} else {
		for _, para := range paras {
			b.WriteString(wordwrap.String(highlightTerm(para, m.pv.highlight), width))
			b.WriteString("\n\n")
		}
	}

	if n := len(m.pv.word.Images); n > 0 {
		cur := m.pv.word.Images[m.pv.gallery]
		b.WriteString(styles.SectionHeader.Render(fmt.Sprintf("Embedded images (%d)", n)))
		b.WriteString("\n")
		b.WriteString(styles.Key.Render(fmt.Sprintf("[%d/%d]", m.pv.gallery+1, n)))
		b.WriteString(" " + preview.GalleryLabel(cur) + "\n")
		b.WriteString(styles.Faint.Render("[ and ] browse · v views the image"))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.Faint.Render("o downloads the original document"))
	b.WriteString(m.detailFooter())
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderExcel(width int) string {
	if m.pv.book == nil || len(m.pv.book.Sheets) == 0 {
		return styles.Placeholder.Render("workbook has no sheets")
	}

	var b strings.Builder
	for i, sheet := range m.pv.book.Sheets {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(styles.SectionHeader.Render(sheet.Name))
		b.WriteString("\n")

		rows, truncated := preview.SheetRows(sheet.Data)
		if len(rows) == 0 {
			b.WriteString(styles.Placeholder.Render("empty sheet"))
			continue
		}
		noticeAt := -1
		if truncated {
			noticeAt = len(rows) - 1
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(styles.BorderInactive)).
			Width(width).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == noticeAt {
					return styles.TruncationNotice
				}
				return styles.Normal
			}).
			Rows(rows...)
		b.WriteString(t.Render())
	}

	b.WriteString(m.detailFooter())
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderImagePane() string {
	if m.pv.imgFailed {
		return styles.Placeholder.Render("image could not be loaded") + "\n\n" +
			styles.Faint.Render("o opens it in your system viewer")
	}
	if m.pv.img == nil {
		return styles.Faint.Render("Rendering image…")
	}
	info := fmt.Sprintf("%d×%d", m.pv.img.srcW, m.pv.img.srcH)
	if m.pv.detail != nil && m.pv.detail.Size > 0 {
		info += " · " + humanSize(m.pv.detail.Size)
	}
	return styles.Faint.Render(info) + "\n\n" + m.pv.img.cells
}

func (m Model) renderVideo() string {
	var b strings.Builder
	b.WriteString(styles.SectionHeader.Render("Video"))
	b.WriteString("\n\n")
	if d := m.pv.detail; d != nil {
		b.WriteString(styles.Normal.Render(d.Name))
		b.WriteString("\n")
		if d.Size > 0 {
			b.WriteString(styles.Faint.Render(humanSize(d.Size)))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	if preview.Playable(m.pv.sel.fileType) {
		b.WriteString(styles.Key.Render("o"))
		b.WriteString(styles.Faint.Render(" plays in your system player"))
	} else {
		b.WriteString(styles.StatusWarning.Render(
			fmt.Sprintf("playback is not supported for .%s files", preview.NormalizeType(m.pv.sel.fileType))))
	}
	b.WriteString(m.detailFooter())
	return b.String()
}

func (m Model) renderUnknown() string {
	err := &preview.UnsupportedFormatError{FileType: m.pv.sel.fileType}
	return styles.Placeholder.Render(err.Error())
}

// detailFooter lists size and extractor metadata under the content.
func (m Model) detailFooter() string {
	d := m.pv.detail
	if d == nil {
		return ""
	}
	lines := preview.MetadataLines(d.Metadata)
	if len(lines) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(styles.SectionHeader.Render("Details"))
	b.WriteString("\n")
	for _, l := range lines {
		b.WriteString(styles.Faint.Render(l))
		b.WriteString("\n")
	}
	return b.String()
}

func highlightTerm(text, term string) string {
	q := tree.Normalize(term)
	if q == "" {
		return text
	}
	return tree.Highlight(text, q, func(s string) string {
		return styles.Match.Render(s)
	})
}

// humanSize formats bytes into a human-readable size string
func humanSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
