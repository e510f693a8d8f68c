package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abdidvp/expectfix/internal/domain"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	warningItemStyle   = lipgloss.NewStyle().Foreground(warning)
)

// RenderFixResult renders a fix run as a styled TUI string.
func RenderFixResult(result *domain.FixResult) string {
	var b strings.Builder

	mode := "applied"
	if result.DryRun {
		mode = "dry run"
	}
	color := success
	if len(result.Failed) > 0 {
		color = warning
	}
	summary := lipgloss.NewStyle().Bold(true).Foreground(color).
		Render(fmt.Sprintf("%d fixed  ·  %d failed", len(result.Applied), len(result.Failed)))

	b.WriteString(boxStyle.Render(titleStyle.Render("expectfix fix") + "  " + dimStyle.Render(mode) + "\n" + summary))
	b.WriteString("\n")

	if len(result.Applied) > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s %s\n", sectionHeaderStyle.Render("Fixed"), dimStyle.Render(fmt.Sprintf("(%d)", len(result.Applied))))
		for _, a := range result.Applied {
			fmt.Fprintf(&b, "    %s %s  %s\n",
				passStyle.Render("●"),
				fileStyle.Render(fmt.Sprintf("%s:%d", shortenPath(a.File), a.Line)),
				a.Method+"  "+faintStyle.Render(a.Description),
			)
		}
	}

	if len(result.Failed) > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s %s\n", sectionHeaderStyle.Render("Not fixed"), dimStyle.Render(fmt.Sprintf("(%d)", len(result.Failed))))
		for _, f := range result.Failed {
			fmt.Fprintf(&b, "    %s %s  %s %s\n",
				warningItemStyle.Render("●"),
				fileStyle.Render(fmt.Sprintf("%s:%d", shortenPath(f.File), f.Line)),
				f.Method,
				faintStyle.Render("["+f.Kind+"]"),
			)
			fmt.Fprintf(&b, "         %s\n", dimStyle.Render(f.Error))
		}
	}

	if len(result.FilesChanged) > 0 {
		b.WriteString("\n")
		verb := "Changed"
		if result.DryRun {
			verb = "Would change"
		}
		fmt.Fprintf(&b, "  %s %s\n", sectionHeaderStyle.Render(verb), dimStyle.Render(fmt.Sprintf("(%d files)", len(result.FilesChanged))))
		for _, f := range result.FilesChanged {
			fmt.Fprintf(&b, "    %s\n", fileStyle.Render(f))
		}
	}

	renderFileErrors(&b, result.FileErrors)
	renderWarnings(&b, result.Warnings)

	b.WriteString("\n")
	b.WriteString("  " + dimStyle.Render(fmt.Sprintf("done in %s", result.Duration.Round(1e6))))
	b.WriteString("\n")
	return b.String()
}
