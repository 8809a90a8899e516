package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"docpane/internal/preview"
	"docpane/internal/tree"
	"docpane/internal/ui/styles"
)

// renderTreeRows renders the visible window of the flattened tree.
func (m Model) renderTreeRows(width int) string {
	if m.tree.Empty() {
		if m.treeErr != "" {
			return styles.Placeholder.Render("tree unavailable")
		}
		return styles.Placeholder.Render("no documents")
	}
	if len(m.treeRows) == 0 {
		return styles.Placeholder.Render("no matches")
	}

	kindStyles := styles.KindStyles()
	visible := m.treeBodyHeight()
	end := m.treeOffset + visible
	if end > len(m.treeRows) {
		end = len(m.treeRows)
	}

	var b strings.Builder
	for i := m.treeOffset; i < end; i++ {
		row := m.treeRows[i]
		b.WriteString(m.renderTreeRow(row, i == m.cursor, width, kindStyles))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderTreeRow styles one row. Precedence: cursor > flagged > filter
// highlight > folder bolding.
func (m Model) renderTreeRow(row treeRow, isCursor bool, width int, kindStyles map[string]lipgloss.Style) string {
	indent := strings.Repeat("  ", row.depth)

	icon := "  "
	if row.node.Type == tree.Folder {
		if m.tree.Collapsed(row.node.ID) {
			icon = "> "
		} else {
			icon = "v "
		}
	}

	badge := ""
	if row.node.Type == tree.File {
		kind := preview.KindOf(row.node.FileType)
		if style, ok := kindStyles[kind.String()]; ok {
			badge = " " + style.Render(preview.NormalizeType(row.node.FileType))
		}
	}

	marker := ""
	if m.pv.sel != nil && m.pv.sel.id == row.node.ID {
		marker = " ●"
	}

	nameWidth := width - runewidth.StringWidth(indent+icon+marker) - lipgloss.Width(badge)
	if nameWidth < 4 {
		nameWidth = 4
	}
	name := runewidth.Truncate(row.node.Name, nameWidth, "…")

	if isCursor {
		return styles.Selected.Render(indent + icon + name + marker)
	}

	if _, ok := m.flagged[row.node.ID]; ok {
		name = styles.Flagged.Render(name)
	} else if m.query != "" {
		name = tree.Highlight(name, m.query, func(s string) string {
			return styles.Match.Render(s)
		})
	} else if row.node.Type == tree.Folder {
		name = styles.Normal.Bold(true).Render(name)
	}
	return indent + icon + name + badge + marker
}

// renderBreadcrumb joins the selection path; the leaf is styled as the
// interactive segment that re-triggers the preview.
func (m Model) renderBreadcrumb(width int) string {
	if len(m.breadcrumb) == 0 {
		return styles.Faint.Render("no document selected")
	}
	sep := styles.BreadcrumbSep.Render(" › ")
	parts := make([]string, len(m.breadcrumb))
	for i, n := range m.breadcrumb {
		if i == len(m.breadcrumb)-1 && n.Type == tree.File {
			parts[i] = styles.BreadcrumbFile.Render(n.Name)
		} else {
			parts[i] = styles.BreadcrumbFolder.Render(n.Name)
		}
	}
	crumb := strings.Join(parts, sep)
	// Drop leading segments until the trail fits.
	for len(parts) > 1 && lipgloss.Width(crumb) > width {
		parts = parts[1:]
		crumb = styles.BreadcrumbSep.Render("… › ") + strings.Join(parts, sep)
	}
	return crumb
}

// renderTreeTitle shows the document count once a tree is loaded.
func (m Model) renderTreeTitle() string {
	title := styles.Title.Render("Documents")
	if n := len(m.tree.Files()); n > 0 {
		title += styles.Faint.Render(fmt.Sprintf(" %d", n))
	}
	return title
}
