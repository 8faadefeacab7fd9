package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON key names so errors match the tracker schema.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeIssues parses a tracker response (a JSON array of RawIssue) and
// normalizes every element. A single malformed issue fails the whole batch.
func DecodeIssues(data []byte) ([]IssueRecord, error) {
	var raw []RawIssue
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeserialize, err)
	}
	// json.Unmarshal maps a top-level null to a nil slice.
	if raw == nil {
		return nil, fmt.Errorf("%w: expected a JSON array of issues", ErrDeserialize)
	}

	records := make([]IssueRecord, 0, len(raw))
	for i, r := range raw {
		rec, err := NormalizeIssue(r)
		if err != nil {
			if r.Number != nil {
				return nil, fmt.Errorf("issue #%d (index %d): %w", *r.Number, i, err)
			}
			return nil, fmt.Errorf("issue at index %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// NormalizeIssue maps one raw issue to an IssueRecord.
func NormalizeIssue(raw RawIssue) (IssueRecord, error) {
	if err := validate.Struct(raw); err != nil {
		return IssueRecord{}, fmt.Errorf("%w: %s", ErrDeserialize, describeValidation(err))
	}

	createdAt, err := parseTimestamp("createdAt", *raw.CreatedAt)
	if err != nil {
		return IssueRecord{}, err
	}
	updatedAt, err := parseTimestamp("updatedAt", *raw.UpdatedAt)
	if err != nil {
		return IssueRecord{}, err
	}

	assignees := make([]string, 0, len(raw.Assignees))
	for _, a := range raw.Assignees {
		assignees = append(assignees, *a.Login)
	}
	labels := make([]string, 0, len(raw.Labels))
	for _, l := range raw.Labels {
		labels = append(labels, *l.Name)
	}

	return IssueRecord{
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		Author:    *raw.Author.Login,
		Title:     *raw.Title,
		URL:       *raw.URL,
		Assignees: sortedUnique(assignees),
		Labels:    sortedUnique(labels),
		Number:    *raw.Number,
	}, nil
}

// SortByNumber orders a batch oldest issue first.
func SortByNumber(issues []IssueRecord) {
	slices.SortStableFunc(issues, func(a, b IssueRecord) int {
		switch {
		case a.Number < b.Number:
			return -1
		case a.Number > b.Number:
			return 1
		default:
			return 0
		}
	})
}

func parseTimestamp(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %q is not an RFC 3339 timestamp", ErrDeserialize, field, value)
	}
	return t, nil
}

func sortedUnique(items []string) []string {
	slices.Sort(items)
	return slices.Compact(items)
}

// describeValidation turns validator output into "missing field x, y".
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.TrimPrefix(fe.Namespace(), "RawIssue."))
	}
	return "missing field " + strings.Join(fields, ", ")
}
