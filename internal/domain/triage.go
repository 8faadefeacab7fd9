package domain

import "fmt"

// TriageKind identifies one kind of triage run.
type TriageKind string

const (
	TriageKindPHigh                 TriageKind = "p-high"                  // P-high issue review
	TriageKindCompilerTrackingIssue TriageKind = "compiler-tracking-issue" // T-compiler-only tracking issues
	TriageKindNoTeam                TriageKind = "no-team"                 // Tracking issues without a team label
)

// AllTriageKinds returns every triage kind in display order.
func AllTriageKinds() []TriageKind {
	return []TriageKind{
		TriageKindPHigh,
		TriageKindCompilerTrackingIssue,
		TriageKindNoTeam,
	}
}

// ParseTriageKind converts a command name into a TriageKind.
func ParseTriageKind(s string) (TriageKind, error) {
	for _, k := range AllTriageKinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTriageKind, s)
}

// Display returns a human-readable name used in log output.
func (k TriageKind) Display() string {
	switch k {
	case TriageKindPHigh:
		return "P-high issues"
	case TriageKindCompilerTrackingIssue:
		return "T-compiler-only tracking issues"
	case TriageKindNoTeam:
		return "tracking issues without team label"
	default:
		return string(k)
	}
}

// ConfigKey returns the config file section name for the kind.
func (k TriageKind) ConfigKey() string {
	switch k {
	case TriageKindPHigh:
		return "p_high"
	case TriageKindCompilerTrackingIssue:
		return "compiler_tracking_issue"
	case TriageKindNoTeam:
		return "no_team"
	default:
		return string(k)
	}
}
