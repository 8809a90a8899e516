// Package styles centralizes the lipgloss palette and the shared
// style components. The defaults target dark terminals; Apply reworks
// the text colors when the terminal background is light.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette. Every component style below derives from these so a theme
// switch only has to touch this block.
var (
	Accent      = lipgloss.Color("39")  // deep blue, titles and the focused pane
	AccentAlt   = lipgloss.Color("135") // purple, section headings
	Success     = lipgloss.Color("78")  // green, confirmations
	SuccessBold = lipgloss.Color("48")  // bright green, search-hit flags
	Warning     = lipgloss.Color("215") // amber, highlights and soft failures
	Error       = lipgloss.Color("203") // red, hard failures
	Info        = lipgloss.Color("117") // light blue, user-side chrome

	TextNormal   = lipgloss.Color("253")
	TextMuted    = lipgloss.Color("248")
	TextFaint    = lipgloss.Color("242")
	TextOnAccent = lipgloss.Color("16")

	BorderActive   = lipgloss.Color("39")
	BorderInactive = lipgloss.Color("238")
)

// App chrome.
var (
	// Header is the brand chip in the top bar.
	Header = lipgloss.NewStyle().
		Bold(true).
		Background(Accent).
		Foreground(TextOnAccent)

	// Title heads each pane and overlay.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent)

	// SectionHeader introduces blocks inside the preview pane: pages,
	// sheets, the image gallery, metadata.
	SectionHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentAlt)

	// Key names a keyboard binding in help text and hints.
	Key = lipgloss.NewStyle().
		Foreground(lipgloss.Color("222"))
)

// Body text.
var (
	Normal = lipgloss.NewStyle().Foreground(TextNormal)
	Muted  = lipgloss.NewStyle().Foreground(TextMuted)
	Faint  = lipgloss.NewStyle().Faint(true)

	// Placeholder fills panes that have nothing to show.
	Placeholder = lipgloss.NewStyle().
			Foreground(TextFaint).
			Italic(true)
)

// Tree pane.
var (
	// Selected is the cursor row.
	Selected = lipgloss.NewStyle().
			Background(Accent).
			Foreground(TextOnAccent)

	// Match marks filter and search-term hits inside text.
	Match = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true).
		Underline(true)

	// Flagged marks tree nodes referenced by the latest search results.
	Flagged = lipgloss.NewStyle().
		Foreground(SuccessBold).
		Bold(true)
)

// Breadcrumb segments: the file leaf is interactive, folders are
// plain labels.
var (
	BreadcrumbFile = lipgloss.NewStyle().
			Foreground(Info).
			Underline(true)

	BreadcrumbFolder = lipgloss.NewStyle().
				Foreground(TextMuted)

	BreadcrumbSep = lipgloss.NewStyle().
			Foreground(TextFaint)
)

// Chat pane senders and the in-flight placeholder.
var (
	ChatUser = lipgloss.NewStyle().
			Bold(true).
			Foreground(Info)

	ChatAssistant = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentAlt)

	ChatPending = lipgloss.NewStyle().
			Foreground(TextFaint).
			Italic(true)
)

// Status bar and pane-level notices.
var (
	StatusSuccess = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(Warning)

	StatusError = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// TruncationNotice styles the capped-sheet marker row.
	TruncationNotice = lipgloss.NewStyle().
				Foreground(Warning).
				Italic(true)
)

func paneBorder(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c)
}

// ActiveBorder frames the focused pane.
func ActiveBorder() lipgloss.Style { return paneBorder(BorderActive) }

// InactiveBorder frames the other panes.
func InactiveBorder() lipgloss.Style { return paneBorder(BorderInactive) }

// kindColors maps a rendering strategy name to its badge color.
var kindColors = map[string]lipgloss.Color{
	"pdf":   Error,
	"word":  Info,
	"excel": Success,
	"image": AccentAlt,
	"video": Warning,
}

// KindStyles returns the badge styles for declared file types.
func KindStyles() map[string]lipgloss.Style {
	out := make(map[string]lipgloss.Style, len(kindColors))
	for kind, c := range kindColors {
		out[kind] = lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return out
}

// Apply adjusts the palette for the configured theme. "auto" probes
// the terminal background through termenv; "light" and "dark" force
// it. Styles derived from the text colors are rebuilt in place.
func Apply(theme string) {
	light := false
	switch theme {
	case "light":
		light = true
	case "dark":
		light = false
	default:
		light = !termenv.HasDarkBackground()
	}
	if !light {
		return
	}

	TextNormal = lipgloss.Color("235")
	TextMuted = lipgloss.Color("239")
	TextFaint = lipgloss.Color("245")
	TextOnAccent = lipgloss.Color("231")
	BorderInactive = lipgloss.Color("250")

	Header = Header.Foreground(TextOnAccent)
	Normal = Normal.Foreground(TextNormal)
	Muted = Muted.Foreground(TextMuted)
	Selected = Selected.Foreground(TextOnAccent)
	BreadcrumbFolder = BreadcrumbFolder.Foreground(TextMuted)
	BreadcrumbSep = BreadcrumbSep.Foreground(TextFaint)
	ChatPending = ChatPending.Foreground(TextFaint)
	Placeholder = Placeholder.Foreground(TextFaint)
}
