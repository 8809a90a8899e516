package chat

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"docpane/internal/api"
)

// DocumentGroup aggregates the chunks of one source document,
// preserving backend rank order within the group.
type DocumentGroup struct {
	Document api.DocumentRef
	Chunks   []api.SearchResult
}

// Group buckets ranked results by document id. Group order is
// first-seen; chunk order within a group is the backend's.
func Group(results []api.SearchResult) []DocumentGroup {
	var groups []DocumentGroup
	index := map[int]int{}
	for _, r := range results {
		if at, ok := index[r.Document.ID]; ok {
			groups[at].Chunks = append(groups[at].Chunks, r)
			continue
		}
		index[r.Document.ID] = len(groups)
		groups = append(groups, DocumentGroup{
			Document: r.Document,
			Chunks:   []api.SearchResult{r},
		})
	}
	return groups
}

const (
	summaryChunks = 3
	excerptRunes  = 150
)

// Summary builds the assistant markdown for grouped results: one
// section per document, up to the first three chunks each, annotated
// with their scores.
func Summary(groups []DocumentGroup) string {
	var b strings.Builder
	noun := "documents"
	if len(groups) == 1 {
		noun = "document"
	}
	fmt.Fprintf(&b, "Found relevant content in %d %s:\n", len(groups), noun)
	for _, g := range groups {
		fmt.Fprintf(&b, "\n**%s**\n", g.Document.Name)
		chunks := g.Chunks
		if len(chunks) > summaryChunks {
			chunks = chunks[:summaryChunks]
		}
		for _, c := range chunks {
			fmt.Fprintf(&b, "- `%s` %s\n", FormatScore(c.Score), Excerpt(c.Text))
		}
	}
	return b.String()
}

// FormatScore renders a [0,1] relevance score as a one-decimal
// percentage.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}

// Excerpt truncates chunk text for the summary, appending an ellipsis
// when something was cut. The limit counts characters, not bytes.
func Excerpt(text string) string {
	if utf8.RuneCountInString(text) <= excerptRunes {
		return text
	}
	return string([]rune(text)[:excerptRunes]) + "…"
}
