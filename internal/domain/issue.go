package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// IssueRecord is the flattened form of one tracker issue.
// Fields are ordered to minimize memory padding; JSON key order is fixed by persistedIssue.
type IssueRecord struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	Author    string
	Title     string
	URL       string
	Assignees []string
	Labels    []string
	Number    uint64
}

// persistedIssue fixes the key order of the persisted JSON document:
// assignees, author, created_at, labels, number, title, updated_at, url.
type persistedIssue struct {
	Assignees []string  `json:"assignees"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	Labels    []string  `json:"labels"`
	Number    uint64    `json:"number"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updated_at"`
	URL       string    `json:"url"`
}

// MarshalJSON encodes the record in the persisted layout.
func (r IssueRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(persistedIssue{
		Assignees: nonNil(r.Assignees),
		Author:    r.Author,
		CreatedAt: r.CreatedAt,
		Labels:    nonNil(r.Labels),
		Number:    r.Number,
		Title:     r.Title,
		UpdatedAt: r.UpdatedAt,
		URL:       r.URL,
	})
}

// UnmarshalJSON decodes a record from the persisted layout.
func (r *IssueRecord) UnmarshalJSON(data []byte) error {
	var p persistedIssue
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = IssueRecord{
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Author:    p.Author,
		Title:     p.Title,
		URL:       p.URL,
		Assignees: p.Assignees,
		Labels:    p.Labels,
		Number:    p.Number,
	}
	return nil
}

// nonNil keeps empty lists as [] rather than null in the persisted output.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// HasLabel reports whether the issue carries the exact label name.
func (r IssueRecord) HasLabel(name string) bool {
	for _, l := range r.Labels {
		if l == name {
			return true
		}
	}
	return false
}

// HasLabelPrefix reports whether any label starts with prefix.
func (r IssueRecord) HasLabelPrefix(prefix string) bool {
	for _, l := range r.Labels {
		if strings.HasPrefix(l, prefix) {
			return true
		}
	}
	return false
}

// IsAssigned reports whether at least one assignee is set.
func (r IssueRecord) IsAssigned() bool {
	return len(r.Assignees) > 0
}

// RawIssue is one element of the tracker response as emitted by `gh issue list --json`.
// Pointer fields distinguish absent keys from zero values.
type RawIssue struct {
	Assignees []RawActor `json:"assignees" validate:"required,dive"`
	Author    *RawActor  `json:"author" validate:"required"`
	CreatedAt *string    `json:"createdAt" validate:"required"`
	Labels    []RawLabel `json:"labels" validate:"required,dive"`
	Number    *uint64    `json:"number" validate:"required"`
	Title     *string    `json:"title" validate:"required"`
	UpdatedAt *string    `json:"updatedAt" validate:"required"`
	URL       *string    `json:"url" validate:"required"`
}

// RawActor is an author or assignee object. Only Login survives normalization.
type RawActor struct {
	Login *string `json:"login" validate:"required"`
	ID    string  `json:"id,omitempty"`
	Name  string  `json:"name,omitempty"`
	IsBot bool    `json:"is_bot,omitempty"`
}

// RawLabel is a label object. Only Name survives normalization.
type RawLabel struct {
	Name        *string `json:"name" validate:"required"`
	ID          string  `json:"id,omitempty"`
	Description string  `json:"description,omitempty"`
	Color       string  `json:"color,omitempty"`
}
