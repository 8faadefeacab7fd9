package ghapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v57/github"
	"github.com/runoshun/pcr-triage/internal/domain"
	"github.com/runoshun/pcr-triage/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient returns a Client talking to a local server driven by mux.
func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	gh := github.NewClient(nil)
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	gh.BaseURL = baseURL
	return NewWithClient(gh, testutil.DiscardLogger())
}

const apiIssue = `{
	"number": %d,
	"title": "Hang on overflow",
	"html_url": "https://github.com/rust-lang/rust/issues/%d",
	"user": {"login": "alice", "node_id": "U_1"},
	"assignees": [{"login": "bob"}],
	"labels": [{"name": "T-compiler", "color": "bfd4f2"}, {"name": "P-high"}],
	"created_at": "2024-01-01T00:00:00Z",
	"updated_at": "2024-01-02T03:04:05Z"
}`

func TestClient_Fetch_ListByLabel(t *testing.T) {
	mux := http.NewServeMux()
	var gotLabels string
	mux.HandleFunc("/repos/rust-lang/rust/issues", func(w http.ResponseWriter, r *http.Request) {
		gotLabels = r.URL.Query().Get("labels")
		assert.Equal(t, "open", r.URL.Query().Get("state"))
		pr := `{"number": 3, "title": "PR", "pull_request": {"url": "x"}, "user": {"login": "x"},
			"created_at": "2024-01-01T00:00:00Z", "updated_at": "2024-01-01T00:00:00Z"}`
		fmt.Fprintf(w, "[%s,%s]", fmt.Sprintf(apiIssue, 42, 42), pr)
	})
	client := newTestClient(t, mux)

	query := domain.QueryFor(domain.TriageKindPHigh, 100)
	query.Repo = "rust-lang/rust"
	data, err := client.Fetch(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, "P-high", gotLabels)

	issues, err := domain.DecodeIssues(data)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, uint64(42), issues[0].Number)
	assert.Equal(t, "alice", issues[0].Author)
	assert.Equal(t, []string{"bob"}, issues[0].Assignees)
	assert.Equal(t, []string{"P-high", "T-compiler"}, issues[0].Labels)
	assert.Equal(t, "https://github.com/rust-lang/rust/issues/42", issues[0].URL)
}

func TestClient_Fetch_SearchPaginatesUpToLimit(t *testing.T) {
	mux := http.NewServeMux()
	var gotQuery string
	mux.HandleFunc("/search/issues", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		page := r.URL.Query().Get("page")
		if page == "" || page == "1" {
			w.Header().Set("Link", `<`+"http://"+r.Host+`/search/issues?page=2>; rel="next"`)
			fmt.Fprintf(w, `{"total_count": 3, "items": [%s, %s]}`,
				fmt.Sprintf(apiIssue, 1, 1), fmt.Sprintf(apiIssue, 2, 2))
			return
		}
		fmt.Fprintf(w, `{"total_count": 3, "items": [%s]}`, fmt.Sprintf(apiIssue, 3, 3))
	})
	client := newTestClient(t, mux)

	query := domain.QueryFor(domain.TriageKindNoTeam, 3)
	query.Repo = "rust-lang/rust"
	data, err := client.Fetch(context.Background(), query)
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "repo:rust-lang/rust ")
	assert.Contains(t, gotQuery, "label:C-tracking-issue")

	issues, err := domain.DecodeIssues(data)
	require.NoError(t, err)
	assert.Len(t, issues, 3)

	query.Limit = 1
	data, err = client.Fetch(context.Background(), query)
	require.NoError(t, err)
	issues, err = domain.DecodeIssues(data)
	require.NoError(t, err)
	assert.Len(t, issues, 1)
}

func TestClient_Fetch_Errors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/rust-lang/rust/issues", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message": "Bad credentials"}`)
	})
	client := newTestClient(t, mux)

	query := domain.QueryFor(domain.TriageKindPHigh, 100)
	query.Repo = "rust-lang/rust"
	_, err := client.Fetch(context.Background(), query)
	require.ErrorIs(t, err, domain.ErrExternalCommand)
	assert.Contains(t, err.Error(), "Bad credentials")

	query.Repo = ""
	_, err = client.Fetch(context.Background(), query)
	require.ErrorIs(t, err, domain.ErrRemoteNotFound)
}

func TestToRawIssue_MissingFieldsStayNil(t *testing.T) {
	raw := toRawIssue(&github.Issue{Title: github.String("t")})
	assert.Nil(t, raw.Number)
	assert.Nil(t, raw.Author)
	assert.Nil(t, raw.CreatedAt)

	_, err := domain.NormalizeIssue(raw)
	require.ErrorIs(t, err, domain.ErrDeserialize)
}
