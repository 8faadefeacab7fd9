package domain

import "strings"

// Label prefixes that carry ownership meaning.
const (
	TeamLabelPrefix         = "T-"  // Responsible team
	WorkingGroupLabelPrefix = "WG-" // Owning working group
)

// DefaultTeamLabel is the team whose issues are split by ownership.
const DefaultTeamLabel = "T-compiler"

// Classification holds the review buckets of one batch.
// Every bucket is a subsequence of the input in its original order.
type Classification struct {
	NoTeam     []IssueRecord // No T- label at all
	TeamScoped []IssueRecord // Carries the team label
	NoOwner    []IssueRecord // TeamScoped, no WG- label and no assignee
	HasOwner   []IssueRecord // TeamScoped, WG- label or assignee
}

// ClassifyBatch applies every classification rule to issues.
func ClassifyBatch(issues []IssueRecord, teamLabel string) Classification {
	teamScoped := TeamScoped(issues, teamLabel)
	noOwner, hasOwner := PartitionByOwnership(teamScoped)
	return Classification{
		NoTeam:     NoTeam(issues),
		TeamScoped: teamScoped,
		NoOwner:    noOwner,
		HasOwner:   hasOwner,
	}
}

// NoTeam selects issues lacking any team label.
func NoTeam(issues []IssueRecord) []IssueRecord {
	return filterIssues(issues, func(r IssueRecord) bool {
		return !r.HasLabelPrefix(TeamLabelPrefix)
	})
}

// TeamScoped selects issues carrying exactly teamLabel.
func TeamScoped(issues []IssueRecord, teamLabel string) []IssueRecord {
	return filterIssues(issues, func(r IssueRecord) bool {
		return r.HasLabel(teamLabel)
	})
}

// PartitionByOwnership splits issues into (no owner, has owner).
// An owner is either a working group label or an assignee.
func PartitionByOwnership(issues []IssueRecord) (noOwner, hasOwner []IssueRecord) {
	noOwner = []IssueRecord{}
	hasOwner = []IssueRecord{}
	for _, r := range issues {
		if isUnowned(r) {
			noOwner = append(noOwner, r)
		} else {
			hasOwner = append(hasOwner, r)
		}
	}
	return noOwner, hasOwner
}

// WorkingGroups returns the WG- labels in their stored order.
func WorkingGroups(labels []string) []string {
	wgs := []string{}
	for _, l := range labels {
		if strings.HasPrefix(l, WorkingGroupLabelPrefix) {
			wgs = append(wgs, l)
		}
	}
	return wgs
}

func isUnowned(r IssueRecord) bool {
	return !r.HasLabelPrefix(WorkingGroupLabelPrefix) && !r.IsAssigned()
}

func filterIssues(issues []IssueRecord, keep func(IssueRecord) bool) []IssueRecord {
	result := []IssueRecord{}
	for _, r := range issues {
		if keep(r) {
			result = append(result, r)
		}
	}
	return result
}
