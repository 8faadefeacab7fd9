package domain

import "time"

// Fixed section texts.
const (
	pHighNoTeamHeading     = "P-high missing team label"
	pHighNoTeamLinkText    = "P-high issues without team label"
	pHighNoTeamEmptyNotice = "**Did not find P-high issues without a team label**"
	pHighNoOwnerLinkText   = "P-high issues with no owner"

	compilerTrackingIssueHeading = "T-compiler-only tracking issues"

	noTeamHeading     = "Tracking issues missing team label"
	noTeamLinkText    = "Tracking issues without team label"
	noTeamEmptyNotice = "**Did not find tracking issues without a team label**"
)

// PHighReport builds the P-high review: issues without a team label, then
// issues of teamLabel split by ownership.
func PHighReport(title string, at time.Time, issues []IssueRecord, teamLabel string) (Report, Classification) {
	c := ClassifyBatch(issues, teamLabel)
	// The no-owner query is written for T-compiler only.
	var noOwnerLink *SectionLink
	if teamLabel == DefaultTeamLabel {
		noOwnerLink = &SectionLink{Text: pHighNoOwnerLinkText, URL: PHighNoOwnerURL}
	}
	return Report{
		GeneratedAt: at,
		Title:       title,
		Sections: []ReportSection{
			{
				Heading:     pHighNoTeamHeading,
				Link:        &SectionLink{Text: pHighNoTeamLinkText, URL: PHighNoTeamURL},
				EmptyNotice: pHighNoTeamEmptyNotice,
				Issues:      c.NoTeam,
			},
			{
				Heading: "P-high " + teamLabel + " issues missing owner (no WG and no assignee)",
				Link:    noOwnerLink,
				Issues:  c.NoOwner,
			},
			{
				Heading: "P-high " + teamLabel + " issues with owner (WG or assignee)",
				Issues:  c.HasOwner,
			},
		},
	}, c
}

// CompilerTrackingIssueReport lists every fetched tracking issue; the
// tracker query already narrows them to T-compiler only.
func CompilerTrackingIssueReport(title string, at time.Time, issues []IssueRecord) Report {
	return Report{
		GeneratedAt: at,
		Title:       title,
		Compact:     true,
		Sections: []ReportSection{
			{
				Heading: compilerTrackingIssueHeading,
				Issues:  issues,
				Layout:  LayoutTable,
			},
		},
	}
}

// NoTeamReport lists tracking issues that carry no team label.
func NoTeamReport(title string, at time.Time, issues []IssueRecord) (Report, []IssueRecord) {
	noTeam := NoTeam(issues)
	return Report{
		GeneratedAt: at,
		Title:       title,
		Sections: []ReportSection{
			{
				Heading:     noTeamHeading,
				Link:        &SectionLink{Text: noTeamLinkText, URL: TrackingIssueNoTeamURL},
				EmptyNotice: noTeamEmptyNotice,
				Issues:      noTeam,
			},
		},
	}, noTeam
}

// BucketCount is the size of one rendered bucket.
type BucketCount struct {
	Name  string
	Count int
}

// BuildReport builds the review document for kind and reports bucket sizes.
func BuildReport(kind TriageKind, title string, at time.Time, issues []IssueRecord, teamLabel string) (Report, []BucketCount) {
	switch kind {
	case TriageKindPHigh:
		r, c := PHighReport(title, at, issues, teamLabel)
		return r, []BucketCount{
			{Name: "no team", Count: len(c.NoTeam)},
			{Name: teamLabel + " no owner", Count: len(c.NoOwner)},
			{Name: teamLabel + " has owner", Count: len(c.HasOwner)},
		}
	case TriageKindNoTeam:
		r, noTeam := NoTeamReport(title, at, issues)
		return r, []BucketCount{{Name: "no team", Count: len(noTeam)}}
	default:
		return CompilerTrackingIssueReport(title, at, issues), []BucketCount{
			{Name: "tracking issues", Count: len(issues)},
		}
	}
}
