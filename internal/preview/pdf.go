package preview

import "strings"

// PageDelimiter is the form-feed marker the extraction service emits
// between pages of PDF text.
const PageDelimiter = "\f"

// PDFMode selects between the extracted-text view and the embedded
// original.
type PDFMode int

const (
	PDFText PDFMode = iota
	PDFRaw
)

func (m PDFMode) String() string {
	if m == PDFRaw {
		return "raw"
	}
	return "text"
}

// Toggle returns the other mode.
func (m PDFMode) Toggle() PDFMode {
	if m == PDFRaw {
		return PDFText
	}
	return PDFRaw
}

// Page is one page of extracted text, split into paragraphs.
// Paragraphs keep their interior newlines; those render as forced
// breaks, not as paragraph boundaries.
type Page struct {
	Number     int
	Paragraphs []string
}

// SplitPages splits extractor content on the page delimiter and each
// page into paragraphs. Page numbers are 1-based. Highlighting, when
// requested, is applied by the renderer after this shaping.
func SplitPages(content string) []Page {
	segments := strings.Split(content, PageDelimiter)
	pages := make([]Page, 0, len(segments))
	for i, seg := range segments {
		pages = append(pages, Page{Number: i + 1, Paragraphs: Paragraphs(seg)})
	}
	return pages
}

// Paragraphs splits text on blank-line boundaries. Runs of blank lines
// collapse; whitespace-only blocks are dropped.
func Paragraphs(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	var paras []string
	for _, block := range strings.Split(normalized, "\n\n") {
		block = strings.Trim(block, "\n")
		if strings.TrimSpace(block) == "" {
			continue
		}
		paras = append(paras, block)
	}
	return paras
}
