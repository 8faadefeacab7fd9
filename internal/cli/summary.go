package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/pcr-triage/internal/domain"
	"github.com/runoshun/pcr-triage/internal/usecase"
)

// previewWordWrap is the column width used by --preview.
const previewWordWrap = 100

var (
	summaryTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6C5CE7"))
	summaryLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A29BFE"))
	summaryCountStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00B894"))
	summaryEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#636E72"))
	summaryPathStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#636E72")).Italic(true)
)

// printSummary writes the bucket sizes and artifact paths of a run to w.
func printSummary(w io.Writer, kind domain.TriageKind, out *usecase.RunTriageOutput) {
	title := fmt.Sprintf("%s: %d issues", kind.Display(), out.Issues)
	if out.Repo != nil && out.Repo.Slug != "" {
		title += " in " + out.Repo.Slug
	}
	_, _ = fmt.Fprintln(w, summaryTitleStyle.Render(title))

	width := 0
	for _, b := range out.Buckets {
		width = max(width, len(b.Name))
	}
	label := summaryLabelStyle.Width(width + 2)
	for _, b := range out.Buckets {
		count := summaryCountStyle
		if b.Count == 0 {
			count = summaryEmptyStyle
		}
		_, _ = fmt.Fprintln(w, "  "+label.Render(b.Name)+count.Render(strconv.Itoa(b.Count)))
	}

	_, _ = fmt.Fprintln(w, summaryPathStyle.Render("  wrote "+out.PersistPath))
	_, _ = fmt.Fprintln(w, summaryPathStyle.Render("  wrote "+out.MarkdownPath))
}

// renderPreview renders markdown for the terminal.
func renderPreview(w io.Writer, markdown string) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(previewWordWrap),
	)
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}
	rendered, err := r.Render(markdown)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = io.WriteString(w, rendered)
	return err
}
