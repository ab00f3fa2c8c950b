// ABOUTME: Terminal UI formatting for materials output.
// ABOUTME: Uses glamour for markdown and fatih/color for styling.

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/harper/materials/internal/models"
)

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
)

func shortID(m models.Material) string {
	if m.ID == uuid.Nil {
		return "------"
	}
	return m.ID.String()[:6]
}

// FormatMaterialListItem renders one material as a terminal card.
func FormatMaterialListItem(m models.Material) string {
	m = m.Normalized()
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("  %s  %s\n", faint(shortID(m)), bold(m.ResourceName)))
	sb.WriteString(fmt.Sprintf("         %s %s\n", faint("By:"), m.Contributor))
	sb.WriteString(fmt.Sprintf("         %s %s\n", faint("Link:"), m.Link))

	if len(m.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("         %s %s\n",
			faint("Tags:"),
			cyan(strings.Join(m.Tags, ", "))))
	}

	return sb.String()
}

// MaterialMarkdown describes a material as a markdown document.
func MaterialMarkdown(m models.Material) string {
	m = m.Normalized()
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", m.ResourceName))
	sb.WriteString(fmt.Sprintf("**Contributor:** %s\n\n", m.Contributor))
	sb.WriteString(fmt.Sprintf("**Link:** <%s>\n\n", m.Link))
	if len(m.Tags) > 0 {
		sb.WriteString("**Tags:** ")
		for i, t := range m.Tags {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString("`" + t + "`")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func FormatMarkdown(content string, dark bool) (string, error) {
	style := glamour.WithAutoStyle()
	if dark {
		style = glamour.WithStandardStyle("dark")
	}
	renderer, err := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to raw content if renderer fails
		return content, nil //nolint:nilerr // Intentional fallback
	}

	out, err := renderer.Render(content)
	if err != nil {
		// Fallback to raw content if rendering fails
		return content, nil //nolint:nilerr // Intentional fallback
	}
	return out, nil
}

func FormatCount(shown, total int) string {
	if shown == total {
		return faint(fmt.Sprintf("\n%d materials\n", total))
	}
	return faint(fmt.Sprintf("\n%d of %d materials\n", shown, total))
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}

func Warning(msg string) string {
	return color.New(color.FgYellow).Sprint("! ") + msg
}
