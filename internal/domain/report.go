package domain

import (
	"strconv"
	"strings"
	"time"
)

// GeneratorComment is the first line of every generated document.
const GeneratorComment = "<!-- stubs generated with pcr-util -->"

// BlockLayout selects how an issue block is laid out.
type BlockLayout int

const (
	LayoutList  BlockLayout = iota // One "Key: value" line per field
	LayoutTable                    // A two-column Markdown table
)

// Report is a review document ready to render.
// Fields are ordered to minimize memory padding.
type Report struct {
	GeneratedAt time.Time
	Title       string
	Sections    []ReportSection
	Compact     bool // Single blank lines around the header, no blank lines after sections
}

// ReportSection is one H2 section of a review document.
type ReportSection struct {
	Heading     string
	Link        *SectionLink  // Optional reference link below the heading
	EmptyNotice string        // Rendered instead of issue blocks when Issues is empty
	Issues      []IssueRecord // Rendered in the given order
	Layout      BlockLayout
}

// SectionLink is a Markdown link placed under a section heading.
type SectionLink struct {
	Text string
	URL  string
}

// RenderReport renders a review document to Markdown.
// The output depends only on r; titles and labels are not escaped.
func RenderReport(r Report) string {
	rc := renderCtx{compact: r.Compact}
	rc.header(r.Title, r.GeneratedAt)
	for _, s := range r.Sections {
		rc.section(s)
	}
	return rc.String()
}

// renderCtx accumulates one document and is discarded after rendering.
type renderCtx struct {
	strings.Builder
	compact bool
}

func (rc *renderCtx) line(parts ...string) {
	for _, p := range parts {
		rc.WriteString(p)
	}
	rc.WriteByte('\n')
}

func (rc *renderCtx) header(title string, at time.Time) {
	rc.line(GeneratorComment)
	if !rc.compact {
		rc.line()
	}
	rc.line("# ", title)
	rc.line()
	rc.line("*Issues snapshot collected on ", at.UTC().Format(time.RFC3339), "*")
	rc.line()
	if !rc.compact {
		rc.line()
	}
}

func (rc *renderCtx) section(s ReportSection) {
	rc.line("## ", s.Heading)
	rc.line()
	if s.Link != nil {
		rc.line("[", s.Link.Text, "](", s.Link.URL, ")")
		rc.line()
		rc.line()
	}

	if len(s.Issues) == 0 && s.EmptyNotice != "" {
		rc.line(s.EmptyNotice)
	}
	for _, issue := range s.Issues {
		if s.Layout == LayoutTable {
			rc.tableIssue(issue)
		} else {
			rc.listIssue(issue)
		}
	}

	if !rc.compact {
		rc.WriteString("\n\n")
	}
}

func (rc *renderCtx) issueHeading(issue IssueRecord) {
	rc.line("### #", strconv.FormatUint(issue.Number, 10), ": ", issue.Title)
}

func (rc *renderCtx) listIssue(issue IssueRecord) {
	rc.issueHeading(issue)
	rc.line("Link: <", issue.URL, ">")
	rc.line("Creation date: ", creationDate(issue))
	rc.line("Labels: ", inlineCodeList(issue.Labels))
	rc.line("Author: `", issue.Author, "`")
	rc.line("Working groups: ", inlineCodeList(WorkingGroups(issue.Labels)))
	rc.line("Assignees: ", inlineCodeList(issue.Assignees))
	rc.todo()
}

func (rc *renderCtx) tableIssue(issue IssueRecord) {
	rc.issueHeading(issue)
	rc.line("| Kind | Value |")
	rc.line("| - | - |")
	rc.line("| Link | <", issue.URL, "> |")
	rc.line("| Creation date | ", creationDate(issue), " |")
	// List cells close without a space before the pipe.
	rc.line("| Labels | ", inlineCodeList(issue.Labels), "|")
	rc.line("| Author | `", issue.Author, "` |")
	rc.line("| Working groups | ", inlineCodeList(WorkingGroups(issue.Labels)), "|")
	rc.line("| Assignees | ", inlineCodeList(issue.Assignees), "|")
	rc.todo()
}

func (rc *renderCtx) todo() {
	rc.line()
	rc.line("**TODO**")
	rc.line()
	rc.line()
}

// creationDate is the date portion of CreatedAt in its own offset.
func creationDate(issue IssueRecord) string {
	return issue.CreatedAt.Format(time.DateOnly)
}

// inlineCodeList renders items as "`a`, `b`"; an empty list renders as "".
func inlineCodeList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = "`" + it + "`"
	}
	return strings.Join(quoted, ", ")
}
