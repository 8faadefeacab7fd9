package domain

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issue(number uint64, labels []string, assignees []string) IssueRecord {
	return IssueRecord{
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Author:    "alice",
		Title:     fmt.Sprintf("Issue %d", number),
		URL:       fmt.Sprintf("https://x/%d", number),
		Labels:    labels,
		Assignees: assignees,
		Number:    number,
	}
}

func numbers(issues []IssueRecord) []uint64 {
	out := []uint64{}
	for _, i := range issues {
		out = append(out, i.Number)
	}
	return out
}

func TestClassifyBatch_SingleRecordExample(t *testing.T) {
	batch := []IssueRecord{issue(42, []string{"T-compiler", "P-high"}, nil)}

	c := ClassifyBatch(batch, "T-compiler")

	assert.Empty(t, c.NoTeam)
	assert.Equal(t, []uint64{42}, numbers(c.TeamScoped))
	assert.Equal(t, []uint64{42}, numbers(c.NoOwner))
	assert.Empty(t, c.HasOwner)
}

func TestClassifyBatch_Empty(t *testing.T) {
	c := ClassifyBatch(nil, "T-compiler")
	assert.Empty(t, c.NoTeam)
	assert.Empty(t, c.TeamScoped)
	assert.Empty(t, c.NoOwner)
	assert.Empty(t, c.HasOwner)
}

func TestNoTeam(t *testing.T) {
	batch := []IssueRecord{
		issue(1, []string{"P-high"}, nil),
		issue(2, []string{"P-high", "T-libs"}, nil),
		issue(3, nil, nil),
		issue(4, []string{"t-lowercase", "WG-llvm"}, nil),
	}
	assert.Equal(t, []uint64{1, 3, 4}, numbers(NoTeam(batch)))
}

func TestTeamScoped_ExactMatch(t *testing.T) {
	batch := []IssueRecord{
		issue(1, []string{"T-compiler"}, nil),
		issue(2, []string{"T-compiler-extra"}, nil),
		issue(3, []string{"T-libs", "T-compiler"}, nil),
	}
	assert.Equal(t, []uint64{1, 3}, numbers(TeamScoped(batch, "T-compiler")))
}

func TestPartitionByOwnership(t *testing.T) {
	batch := []IssueRecord{
		issue(1, []string{"T-compiler"}, nil),
		issue(2, []string{"T-compiler", "WG-llvm"}, nil),
		issue(3, []string{"T-compiler"}, []string{"bob"}),
		issue(4, []string{"T-compiler", "wg-debugging"}, nil),
		issue(5, []string{"T-compiler", "WG-async"}, []string{"carol"}),
	}

	noOwner, hasOwner := PartitionByOwnership(batch)

	// Lowercase wg- is not a working group label.
	assert.Equal(t, []uint64{1, 4}, numbers(noOwner))
	assert.Equal(t, []uint64{2, 3, 5}, numbers(hasOwner))
}

func TestWorkingGroups(t *testing.T) {
	assert.Equal(t, []string{"WG-async", "WG-llvm"}, WorkingGroups([]string{"P-high", "WG-async", "T-compiler", "WG-llvm"}))
	assert.Empty(t, WorkingGroups(nil))
}

func TestClassifyBatch_Properties(t *testing.T) {
	labelPool := []string{"T-compiler", "T-libs", "T-types", "P-high", "WG-llvm", "WG-async", "A-diagnostics", "C-bug"}
	userPool := []string{"alice", "bob", "carol"}
	rng := rand.New(rand.NewSource(1))

	for round := 0; round < 200; round++ {
		batch := make([]IssueRecord, rng.Intn(12))
		for i := range batch {
			var labels, assignees []string
			for _, l := range labelPool {
				if rng.Intn(3) == 0 {
					labels = append(labels, l)
				}
			}
			for _, u := range userPool {
				if rng.Intn(4) == 0 {
					assignees = append(assignees, u)
				}
			}
			batch[i] = issue(uint64(rng.Intn(100000)), labels, assignees)
		}

		for _, team := range []string{"T-compiler", "T-libs", "T-types"} {
			c := ClassifyBatch(batch, team)

			// no_team and team_scoped are disjoint.
			for _, a := range c.NoTeam {
				for _, b := range c.TeamScoped {
					require.False(t, sameRecord(a, b), "record %d in both no_team and team_scoped", a.Number)
				}
			}

			// no_owner and has_owner partition team_scoped exactly, in order.
			require.Len(t, c.TeamScoped, len(c.NoOwner)+len(c.HasOwner))
			assertSubsequence(t, batch, c.NoTeam)
			assertSubsequence(t, batch, c.TeamScoped)
			assertSubsequence(t, c.TeamScoped, c.NoOwner)
			assertSubsequence(t, c.TeamScoped, c.HasOwner)
			for _, r := range c.NoOwner {
				require.False(t, r.IsAssigned())
				require.Empty(t, WorkingGroups(r.Labels))
			}
			for _, r := range c.HasOwner {
				require.True(t, r.IsAssigned() || len(WorkingGroups(r.Labels)) > 0)
			}
		}
	}
}

func sameRecord(a, b IssueRecord) bool {
	return a.Number == b.Number && fmt.Sprint(a.Labels) == fmt.Sprint(b.Labels) && fmt.Sprint(a.Assignees) == fmt.Sprint(b.Assignees)
}

// assertSubsequence checks that sub appears in whole in the same relative order.
func assertSubsequence(t *testing.T, whole, sub []IssueRecord) {
	t.Helper()
	j := 0
	for i := 0; i < len(whole) && j < len(sub); i++ {
		if sameRecord(whole[i], sub[j]) {
			j++
		}
	}
	require.Equal(t, len(sub), j, "bucket is not an ordered subsequence of its input")
}
