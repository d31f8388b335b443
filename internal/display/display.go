package display

import (
	"fmt"
	"io"
	"strings"

	ghclient "github.com/fini-net/gh-check-reporter/internal/github"
	"github.com/fini-net/gh-check-reporter/internal/timing"
)

const maxNameWidth = 60

// Printer writes the human-readable console output of a run. The failure
// summary is log-like output for CI readers; the dry-run preview is the
// program's actual output and goes to its own writer.
type Printer struct {
	summary       io.Writer
	summaryStyles Styles
	preview       io.Writer
	previewStyles Styles
}

// NewPrinter creates a Printer. Each writer is paired with styles built for it.
func NewPrinter(summary io.Writer, summaryStyles Styles, preview io.Writer, previewStyles Styles) *Printer {
	return &Printer{
		summary:       summary,
		summaryStyles: summaryStyles,
		preview:       preview,
		previewStyles: previewStyles,
	}
}

// GetCheckIcon returns the appropriate icon for a check run based on status and conclusion
func GetCheckIcon(status, conclusion string) string {
	switch status {
	case "completed":
		switch conclusion {
		case "success":
			return "✓"
		case "failure":
			return "✗"
		case "cancelled":
			return "⊗"
		case "skipped":
			return "⊘"
		case "timed_out":
			return "⏱"
		case "action_required":
			return "!"
		default:
			return "?"
		}
	case "in_progress":
		return "◐"
	case "queued":
		return "⏸"
	default:
		return "?"
	}
}

// TruncateName shortens name to maxWidth characters, marking the cut
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth {
		return string(runes[:maxWidth-1]) + "…"
	}
	return name
}

// nameWidth returns the column width for the job names, capped at maxNameWidth
func nameWidth(checks []ghclient.CheckRunInfo) int {
	width := 0
	for _, check := range checks {
		n := len([]rune(check.Name))
		if n > width {
			width = n
		}
	}
	if width > maxNameWidth {
		width = maxNameWidth
	}
	return width
}

// PrintFailures prints a workflow's failed check runs, one aligned line each
func (p *Printer) PrintFailures(workflow string, failed []ghclient.CheckRunInfo) {
	if len(failed) == 0 {
		fmt.Fprintln(p.summary, p.summaryStyles.Success.Render(fmt.Sprintf("%s %s: no failures", GetCheckIcon("completed", "success"), workflow)))
		return
	}

	header := fmt.Sprintf("%s: %d failed job(s), %s total runtime", workflow, len(failed), timing.FormatDuration(timing.TotalDuration(failed)))
	fmt.Fprintln(p.summary, p.summaryStyles.Header.Render(header))

	width := nameWidth(failed)
	for _, check := range failed {
		name := TruncateName(check.Name, width)
		padding := strings.Repeat(" ", width-len([]rune(name)))
		icon := p.summaryStyles.Failure.Render(GetCheckIcon(check.Status, check.Conclusion))
		duration := "-"
		if d := timing.RunDuration(check); d > 0 {
			duration = timing.FormatDuration(d)
		}
		fmt.Fprintf(p.summary, "%s %s%s  %s  %s\n", icon, name, padding, duration, p.summaryStyles.Dim.Render(check.HTMLURL))
	}
}

// PrintPreview prints the comment body that would be sent for a pull request
func (p *Printer) PrintPreview(prNumber int, action, body string) {
	fmt.Fprintln(p.preview, p.previewStyles.Info.Render(fmt.Sprintf("PR #%d: would %s comment", prNumber, action)))
	fmt.Fprintln(p.preview, p.previewStyles.Preview.Render(body))
}
