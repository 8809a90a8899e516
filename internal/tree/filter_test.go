package tree_test

import (
	"maps"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"docpane/internal/tree"
)

func TestVisibleSetEmptyQueryIsNil(t *testing.T) {
	if vis := tree.VisibleSet(sampleTree(), ""); vis != nil {
		t.Fatalf("empty query must disable filtering, got %v", vis)
	}
}

func TestVisibleSet(t *testing.T) {
	tests := []struct {
		query string
		want  []int
	}{
		{"report", []int{1, 2}},
		{"budget", []int{1, 3, 4}},
		{"q3", []int{1, 3}},
		{"media", []int{5}},
		{"NOTES", []int{7}},
		{".pdf", []int{1, 2}},
		{"zzz", nil},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			vis := tree.VisibleSet(sampleTree(), tree.Normalize(tc.query))
			if len(vis) != len(tc.want) {
				t.Fatalf("query %q: visible %v, want ids %v", tc.query, vis, tc.want)
			}
			for _, id := range tc.want {
				if !vis[id] {
					t.Errorf("query %q: id %d should be visible", tc.query, id)
				}
			}
		})
	}
}

// drawTree builds a small random tree with unique ids.
func drawTree(t *rapid.T) []tree.Node {
	names := []string{"", "a", "b", "ab", "ba", "report", "Report.pdf"}
	nextID := 0
	var gen func(depth int) tree.Node
	gen = func(depth int) tree.Node {
		nextID++
		n := tree.Node{
			ID:   nextID,
			Name: rapid.SampledFrom(names).Draw(t, "name"),
			Type: tree.File,
		}
		if depth < 3 && rapid.Bool().Draw(t, "folder") {
			n.Type = tree.Folder
			kids := rapid.IntRange(0, 3).Draw(t, "kids")
			for i := 0; i < kids; i++ {
				n.Children = append(n.Children, gen(depth+1))
			}
		}
		return n
	}
	count := rapid.IntRange(1, 3).Draw(t, "roots")
	roots := make([]tree.Node, 0, count)
	for i := 0; i < count; i++ {
		roots = append(roots, gen(0))
	}
	return roots
}

func naiveVisible(n tree.Node, q string) bool {
	if strings.Contains(strings.ToLower(n.Name), q) {
		return true
	}
	for _, c := range n.Children {
		if naiveVisible(c, q) {
			return true
		}
	}
	return false
}

func TestVisibleSetMatchesNaiveRecursion(t *testing.T) {
	queries := []string{"a", "b", "ab", "report", "z"}
	rapid.Check(t, func(t *rapid.T) {
		roots := drawTree(t)
		q := rapid.SampledFrom(queries).Draw(t, "query")
		vis := tree.VisibleSet(roots, q)

		var walk func(nodes []tree.Node)
		walk = func(nodes []tree.Node) {
			for _, n := range nodes {
				if got, want := vis[n.ID], naiveVisible(n, q); got != want {
					t.Fatalf("query %q node %d (%q): visible=%v, want %v", q, n.ID, n.Name, got, want)
				}
				walk(n.Children)
			}
		}
		walk(roots)
	})
}

func TestHighlightSpansAreLiteral(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  []tree.Span
	}{
		{"plain", "Report report", "report", []tree.Span{{Start: 0, End: 6}, {Start: 7, End: 13}}},
		{"dot is not a wildcard", "a.c abc a.c", "a.c", []tree.Span{{Start: 0, End: 3}, {Start: 8, End: 11}}},
		{"star is literal", "2*3 213", "2*3", []tree.Span{{Start: 0, End: 3}}},
		{"bracket is literal", "[x] x", "[x]", []tree.Span{{Start: 0, End: 3}}},
		{"no match", "abc", "zzz", nil},
		{"empty query", "abc", "", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tree.HighlightSpans(tc.text, tc.query)
			if len(got) != len(tc.want) {
				t.Fatalf("spans = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("span[%d] = %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestHighlightWrapsMatchesOnly(t *testing.T) {
	wrap := func(s string) string { return "«" + s + "»" }

	got := tree.Highlight("Report report REPORT", "report", wrap)
	want := "«Report» «report» «REPORT»"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestHighlightLeavesUnmatchedTextUntouched(t *testing.T) {
	wrap := func(s string) string { return "«" + s + "»" }
	text := "nothing to see here"

	once := tree.Highlight(text, "zzz", wrap)
	if once != text {
		t.Fatalf("unmatched text changed: %q", once)
	}
	if twice := tree.Highlight(once, "zzz", wrap); twice != once {
		t.Fatalf("highlight is not idempotent on unmatched text: %q", twice)
	}
}

func TestExpandMatchingPathsForcesAncestorsOpen(t *testing.T) {
	m := tree.New()
	m.Replace([]tree.Node{
		{ID: 1, Type: tree.Folder, Name: "docs", Children: []tree.Node{
			{ID: 2, Type: tree.File, Name: "Report.pdf", FileType: "pdf"},
		}},
	})
	m.Toggle(1)

	m.ExpandMatchingPaths(tree.Normalize("report"))

	if m.Collapsed(1) {
		t.Fatal("folder 1 must be forced open by the matching descendant")
	}
	vis := tree.VisibleSet(m.Frozen(), "report")
	if !vis[1] || !vis[2] {
		t.Fatalf("both nodes must be visible, got %v", vis)
	}
}

func TestExpandMatchingPathsKeepsUnrelatedFoldsCollapsed(t *testing.T) {
	m := tree.New()
	m.Replace(sampleTree())
	m.Toggle(1)
	m.Toggle(3)
	m.Toggle(5)

	m.ExpandMatchingPaths("budget")

	if m.Collapsed(1) || m.Collapsed(3) {
		t.Error("ancestors of the match must be expanded")
	}
	if !m.Collapsed(5) {
		t.Error("folder 5 is off the matching path and must stay collapsed")
	}
}

func TestExpandMatchingPathsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		roots := drawTree(t)
		m := tree.New()
		m.Replace(roots)

		var folderIDs []int
		var walk func(nodes []tree.Node)
		walk = func(nodes []tree.Node) {
			for _, n := range nodes {
				if n.IsFolder() {
					folderIDs = append(folderIDs, n.ID)
				}
				walk(n.Children)
			}
		}
		walk(roots)
		for _, id := range folderIDs {
			if rapid.Bool().Draw(t, "collapse") {
				m.Toggle(id)
			}
		}

		q := rapid.SampledFrom([]string{"a", "b", "report", "z"}).Draw(t, "query")
		m.ExpandMatchingPaths(q)
		first := maps.Clone(m.Fold())
		m.ExpandMatchingPaths(q)

		if !maps.Equal(first, m.Fold()) {
			t.Fatalf("fold state changed on second run: %v then %v", first, m.Fold())
		}
	})
}
