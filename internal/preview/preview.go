// Package preview holds the pure shaping logic behind the preview
// pane: strategy selection by file type, PDF page and paragraph
// splitting, sheet row capping, and the vocabulary of the preview
// state machine. Rendering stays in the app layer; everything here is
// plain data in, plain data out.
package preview

import (
	"fmt"
	"sort"
)

// Status is the lifecycle of one preview request.
type Status int

const (
	Idle Status = iota
	Loading
	Loaded
	Failed
)

// UnsupportedFormatError reports a declared file type that no
// rendering strategy covers. It surfaces as the pane placeholder, not
// as a fault.
type UnsupportedFormatError struct {
	FileType string
}

func (e *UnsupportedFormatError) Error() string {
	if e.FileType == "" {
		return "no preview available for this document"
	}
	return fmt.Sprintf("no preview available for %q documents", e.FileType)
}

// MetadataLines flattens an extractor metadata map into sorted
// "key: value" lines for display.
func MetadataLines(meta map[string]any) []string {
	if len(meta) == 0 {
		return nil
	}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", k, CellString(meta[k])))
	}
	return lines
}
