// Package clipboard wraps the system clipboard for the two copy
// targets the UI offers: the breadcrumb path of the selected document
// and the rendered text of the preview pane.
package clipboard

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/x/ansi"
)

// ErrUnavailable indicates no clipboard utility was found
var ErrUnavailable = errors.New("clipboard unavailable - install xclip, xsel, or wl-clipboard")

// IsAvailable returns true if clipboard operations are supported
func IsAvailable() bool {
	return !clipboard.Unsupported
}

// CopyPath copies a breadcrumb path joined with "/".
func CopyPath(segments []string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return clipboard.WriteAll(strings.Join(segments, "/"))
}

// CopyText copies rendered pane text, stripping ANSI styling so the
// paste target receives plain content.
func CopyText(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return clipboard.WriteAll(ansi.Strip(text))
}
