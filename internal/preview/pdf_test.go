package preview_test

import (
	"strings"
	"testing"

	"docpane/internal/preview"
)

func TestSplitPagesOnFormFeed(t *testing.T) {
	content := "intro line\n\nsecond paragraph\fpage two text"

	pages := preview.SplitPages(content)
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	if pages[0].Number != 1 || pages[1].Number != 2 {
		t.Errorf("page numbers = %d, %d", pages[0].Number, pages[1].Number)
	}
	if len(pages[0].Paragraphs) != 2 {
		t.Errorf("page 1 paragraphs = %v", pages[0].Paragraphs)
	}
	if len(pages[1].Paragraphs) != 1 || pages[1].Paragraphs[0] != "page two text" {
		t.Errorf("page 2 paragraphs = %v", pages[1].Paragraphs)
	}
}

func TestSplitPagesSinglePage(t *testing.T) {
	pages := preview.SplitPages("no delimiters here")
	if len(pages) != 1 || pages[0].Number != 1 {
		t.Fatalf("pages = %+v", pages)
	}
}

func TestParagraphsKeepForcedBreaks(t *testing.T) {
	paras := preview.Paragraphs("line one\nline two\n\nsecond para")
	if len(paras) != 2 {
		t.Fatalf("paragraphs = %v", paras)
	}
	if !strings.Contains(paras[0], "\n") {
		t.Error("interior newline must survive as a forced break")
	}
	if paras[1] != "second para" {
		t.Errorf("second paragraph = %q", paras[1])
	}
}

func TestParagraphsCollapseBlankRuns(t *testing.T) {
	paras := preview.Paragraphs("\n\n\nalpha\n\n\n\nbeta\n\n")
	want := []string{"alpha", "beta"}
	if len(paras) != len(want) {
		t.Fatalf("paragraphs = %v", paras)
	}
	for i := range want {
		if paras[i] != want[i] {
			t.Errorf("paragraph[%d] = %q, want %q", i, paras[i], want[i])
		}
	}
}

func TestParagraphsDropWhitespaceOnlyBlocks(t *testing.T) {
	if paras := preview.Paragraphs("a\n\n   \n\nb"); len(paras) != 2 {
		t.Fatalf("paragraphs = %v", paras)
	}
}

func TestPDFModeToggle(t *testing.T) {
	if preview.PDFText.Toggle() != preview.PDFRaw || preview.PDFRaw.Toggle() != preview.PDFText {
		t.Fatal("Toggle must flip between modes")
	}
	if preview.PDFText.String() != "text" || preview.PDFRaw.String() != "raw" {
		t.Fatal("mode names changed")
	}
}
