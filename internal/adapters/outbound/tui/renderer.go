package tui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abdidvp/expectfix/internal/domain"
)

// ── warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	info      = lipgloss.Color("#8B949E") // soft blue-gray
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	skipStyle     = lipgloss.NewStyle().Foreground(skipColor)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	hintStyle     = lipgloss.NewStyle().Foreground(dim).Italic(true)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderInspectReport formats an inspection run for the terminal.
func RenderInspectReport(report *domain.InspectReport) string {
	var b strings.Builder

	title := headerStyle.Render("expectfix")
	subtitle := dimStyle.Render("Inspection Report")
	summary := fmt.Sprintf("%d files  ·  %d issues  ·  %d fixable",
		report.FilesScanned, len(report.Issues), report.Fixable())
	summaryStyled := lipgloss.NewStyle().Bold(true).Foreground(issueColor(len(report.Issues))).Render(summary)

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + summaryStyled))
	b.WriteString("\n\n")

	if report.FilesCached > 0 {
		b.WriteString("  " + skipStyle.Render(fmt.Sprintf("%d unchanged files skipped (cached)", report.FilesCached)) + "\n\n")
	}

	issues := append([]domain.Issue(nil), report.Issues...)
	sortIssues(issues)

	if len(issues) > 0 {
		errorCount, warnCount, infoCount := countSeverities(issues)
		b.WriteString("  ")
		b.WriteString(titleStyle.Render("Issues"))
		b.WriteString("  ")
		if errorCount > 0 {
			b.WriteString(errorTagStyle.Render(fmt.Sprintf("%d errors", errorCount)))
			b.WriteString("  ")
		}
		if warnCount > 0 {
			b.WriteString(warnTagStyle.Render(fmt.Sprintf("%d warnings", warnCount)))
			b.WriteString("  ")
		}
		if infoCount > 0 {
			b.WriteString(infoTagStyle.Render(fmt.Sprintf("%d info", infoCount)))
		}
		b.WriteString("\n\n")

		for _, issue := range issues {
			renderIssue(&b, issue)
		}
	} else {
		b.WriteString("  " + passStyle.Render("No issues found.") + "\n")
	}

	renderFileErrors(&b, report.FileErrors)
	renderWarnings(&b, report.Warnings)

	if report.Fixable() > 0 {
		b.WriteString("\n")
		b.WriteString("  " + hintStyle.Render("Run `expectfix fix` to apply the available fixes."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	return b.String()
}

func renderIssue(b *strings.Builder, issue domain.Issue) {
	tag := severityTag(issue.Severity)
	loc := ""
	if issue.File != "" {
		loc = shortenPath(issue.File)
		if issue.Line > 0 {
			loc = fmt.Sprintf("%s:%d", loc, issue.Line)
		}
	}

	msg := issue.Message
	if issue.Method != "" {
		msg = issue.Method + "  " + msg
	}

	if loc != "" {
		fmt.Fprintf(b, "    %s %s  %s\n", tag, fileStyle.Render(loc), faintStyle.Render(issue.Inspection))
		fmt.Fprintf(b, "         %s\n", dimStyle.Render(msg))
	} else {
		fmt.Fprintf(b, "    %s %s\n", tag, dimStyle.Render(msg))
	}
	if issue.FixAvailable {
		fmt.Fprintf(b, "         %s %s\n", passStyle.Render("↳"), faintStyle.Render(issue.FixName))
	}
}

func renderFileErrors(b *strings.Builder, errs []domain.FileError) {
	if len(errs) == 0 {
		return
	}
	b.WriteString("\n  " + separatorLine + "\n\n")
	b.WriteString("  " + titleStyle.Render("Skipped files") + "\n\n")
	for _, e := range errs {
		fmt.Fprintf(b, "    %s %s\n", failStyle.Render("●"), fileStyle.Render(shortenPath(e.File)))
		fmt.Fprintf(b, "         %s\n", dimStyle.Render(e.Message))
	}
}

func renderWarnings(b *strings.Builder, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	b.WriteString("\n")
	for _, w := range warnings {
		fmt.Fprintf(b, "  %s %s\n", warnTagStyle.Render("warn "), dimStyle.Render(w))
	}
}

func severityTag(severity string) string {
	switch severity {
	case domain.SeverityError:
		return errorTagStyle.Render("error")
	case domain.SeverityWarning:
		return warnTagStyle.Render("warn ")
	default:
		return infoTagStyle.Render("info ")
	}
}

func countSeverities(issues []domain.Issue) (errors, warnings, infos int) {
	for _, i := range issues {
		switch i.Severity {
		case domain.SeverityError:
			errors++
		case domain.SeverityWarning:
			warnings++
		default:
			infos++
		}
	}
	return
}

// sortIssues orders by severity, then file and line.
func sortIssues(issues []domain.Issue) {
	order := map[string]int{
		domain.SeverityError:   0,
		domain.SeverityWarning: 1,
		domain.SeverityInfo:    2,
	}
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if order[a.Severity] != order[b.Severity] {
			return order[a.Severity] < order[b.Severity]
		}
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Line < b.Line
	})
}

func issueColor(n int) lipgloss.Color {
	switch {
	case n == 0:
		return success
	case n < 10:
		return warning
	default:
		return danger
	}
}

// shortenPath keeps the part of a Java path from the package root on.
func shortenPath(path string) string {
	path = filepath.ToSlash(path)
	for _, root := range []string{"src/test/java/", "src/main/java/"} {
		if idx := strings.Index(path, root); idx >= 0 {
			return path[idx+len(root):]
		}
	}
	parts := strings.Split(path, "/")
	if len(parts) > 3 {
		return strings.Join(parts[len(parts)-3:], "/")
	}
	return path
}

// RenderHistory formats fix run history for terminal output.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No fix history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Fix History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for _, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}

		line := fmt.Sprintf("  %s  %s  %s",
			dimStyle.Render(e.Timestamp.Format("2006-01-02 15:04")),
			faintStyle.Render(hash),
			passStyle.Render(fmt.Sprintf("%d applied", e.Applied)),
		)
		if e.Failed > 0 {
			line += "  " + failStyle.Render(fmt.Sprintf("%d failed", e.Failed))
		}
		line += "  " + dimStyle.Render(fmt.Sprintf("%d files", len(e.FilesChanged)))

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
