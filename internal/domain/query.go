package domain

import "strings"

// IssueFields is the field selection requested from the tracker.
var IssueFields = []string{
	"assignees",
	"author",
	"createdAt",
	"labels",
	"number",
	"title",
	"updatedAt",
	"url",
}

// FetchQuery describes one issue listing request.
// Fields are ordered to minimize memory padding.
type FetchQuery struct {
	Repo   string   // owner/name; empty lets the client infer it from the checkout
	Search string   // Tracker search query (optional)
	Labels []string // Required labels (AND condition)
	Fields []string // Field selection
	Limit  int      // Maximum number of results
}

// Search queries per triage kind. These duplicate the classification rules in
// tracker query syntax and must be reviewed together with classify.go.
const (
	compilerTrackingIssueSearch = "is:issue state:open sort:updated-asc " +
		"label:T-compiler label:C-tracking-issue " +
		"-label:T-bootstrap -label:T-cargo -label:T-core -label:T-dev-tools " +
		"-label:T-infra -label:T-lang -label:T-libs -label:T-libs-api " +
		"-label:T-opsem -label:T-release -label:T-rustdoc -label:T-rustdoc-frontend " +
		"-label:T-rustfmt -label:T-rust-analyzer -label:T-style -label:T-types"

	trackingIssueSearch = "is:issue state:open sort:created-asc label:C-tracking-issue"
)

// Bucket reference links rendered under section headings. They encode the
// same filters as NoTeam and PartitionByOwnership and are kept in sync by hand.
// PHighNoOwnerURL filters on T-compiler, so PHighReport omits it for other teams.
const (
	PHighNoTeamURL = "https://github.com/rust-lang/rust/issues?q=is%3Aopen%20is%3Aissue%20label%3AP-high" +
		"%20-label%3AT-cargo%20-label%3AT-community%20-label%3AT-compiler%20-label%3AT-core" +
		"%20-label%3AT-crates-io%20-label%3AT-dev-tools%20-label%3AT-docs-rs%20-label%3AT-infra" +
		"%20-label%3AT-libs%20-label%3AT-libs-api%20-label%3AT-release%20-label%3AT-rustdoc" +
		"%20-label%3AT-style%20-label%3AT-types%20-label%3AT-lang%20-label%3AT-leadership-council"

	PHighNoOwnerURL = "https://github.com/rust-lang/rust/issues?q=is%3Aissue%20is%3Aopen%20label%3AT-compiler" +
		"%20label%3AP-high%20-label%3Awg-debugging%20-label%3AWG-embedded%20-label%3AWG-diagnostics" +
		"%20-label%3AWG-async%20-label%3AWG-incr-comp%20no%3Aassignee%20sort%3Acreated-asc" +
		"%20-label%3AI-types-nominated%20-label%3AI-lang-nominated%20-label%3AI-compiler-nominated" +
		"%20-label%3AT-types%20-label%3AWG-llvm"

	TrackingIssueNoTeamURL = "https://github.com/rust-lang/rust/issues?q=is%3Aissue%20is%3Aopen" +
		"%20label%3AC-tracking-issue%20-label%3AT-bootstrap%20-label%3AT-cargo%20-label%3AT-compiler" +
		"%20-label%3AT-core%20-label%3AT-dev-tools%20-label%3AT-infra%20-label%3AT-lang" +
		"%20-label%3AT-libs%20-label%3AT-libs-api%20-label%3AT-opsem%20-label%3AT-release" +
		"%20-label%3AT-rustdoc%20-label%3AT-style%20-label%3AT-types%20sort%3Acreated-asc"
)

// QueryFor returns the fetch query for a triage kind.
func QueryFor(kind TriageKind, limit int) FetchQuery {
	q := FetchQuery{
		Fields: IssueFields,
		Limit:  limit,
	}
	switch kind {
	case TriageKindPHigh:
		q.Labels = []string{"P-high"}
	case TriageKindCompilerTrackingIssue:
		q.Search = compilerTrackingIssueSearch
	case TriageKindNoTeam:
		q.Search = trackingIssueSearch
	}
	return q
}

// FieldList returns the comma separated field selection.
func (q FetchQuery) FieldList() string {
	return strings.Join(q.Fields, ",")
}
