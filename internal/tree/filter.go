package tree

import "strings"

// Span marks a half-open [Start, End) byte range of a match.
type Span struct {
	Start int
	End   int
}

// Normalize lowercases and trims a raw filter query. An empty result
// means no filter.
func Normalize(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// VisibleSet computes the ids visible under a normalized query: a node
// is visible when its own name contains the query case-insensitively
// or any descendant's does. A nil result means no filter is active and
// everything is visible. The set is recomputed per render pass so the
// descendant scan runs once per node, not once per ancestor.
func VisibleSet(roots []Node, q string) map[int]bool {
	if q == "" {
		return nil
	}
	vis := make(map[int]bool)
	for _, r := range roots {
		visibleWalk(r, q, vis)
	}
	return vis
}

func visibleWalk(n Node, q string, vis map[int]bool) bool {
	match := strings.Contains(strings.ToLower(n.Name), q)
	for _, c := range n.Children {
		if visibleWalk(c, q, vis) {
			match = true
		}
	}
	if match {
		vis[n.ID] = true
	}
	return match
}

// HighlightSpans finds every case-insensitive occurrence of q in text.
// The query is scanned as a plain substring, never compiled as a
// pattern, so regex metacharacters have no special meaning.
func HighlightSpans(text, q string) []Span {
	if q == "" || text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	q = strings.ToLower(q)
	var spans []Span
	for start := 0; ; {
		i := strings.Index(lower[start:], q)
		if i < 0 {
			break
		}
		at := start + i
		spans = append(spans, Span{Start: at, End: at + len(q)})
		start = at + len(q)
	}
	return spans
}

// Highlight wraps every match of q in text with wrap, leaving
// non-matching runs byte-for-byte untouched.
func Highlight(text, q string, wrap func(string) string) string {
	spans := HighlightSpans(text, q)
	if len(spans) == 0 {
		return text
	}
	var b strings.Builder
	last := 0
	for _, s := range spans {
		b.WriteString(text[last:s.Start])
		b.WriteString(wrap(text[s.Start:s.End]))
		last = s.End
	}
	b.WriteString(text[last:])
	return b.String()
}

// ExpandMatchingPaths removes every ancestor of a matching node from
// the fold state, forcing those folders open. Folders not on a
// matching path keep their state, so clearing the filter later does
// not re-collapse them. Idempotent; safe to call on every keystroke.
func (m *Model) ExpandMatchingPaths(q string) {
	if q == "" {
		return
	}
	for _, r := range m.roots {
		m.expandWalk(r, q, nil)
	}
}

func (m *Model) expandWalk(n Node, q string, ancestors []int) {
	if strings.Contains(strings.ToLower(n.Name), q) {
		for _, id := range ancestors {
			delete(m.fold, id)
		}
	}
	if n.IsFolder() {
		ancestors = append(ancestors, n.ID)
		for _, c := range n.Children {
			m.expandWalk(c, q, ancestors)
		}
	}
}
