package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jira-worklogger/internal/config"
	"jira-worklogger/internal/jira"
)

type worklogCall struct {
	key       string
	timeSpent string
	comment   string
}

// fakeClient is an in-memory Service with per-key error injection.
type fakeClient struct {
	searchResults []jira.Issue
	searchErr     error
	getErr        map[string]error
	worklogErr    map[string]error
	worklogs      []worklogCall
}

func (f *fakeClient) SearchIssues(_ context.Context, _ string, _ int) ([]jira.Issue, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResults, nil
}

func (f *fakeClient) GetIssue(_ context.Context, key string) (jira.Issue, error) {
	if err := f.getErr[key]; err != nil {
		return jira.Issue{}, err
	}
	return jira.Issue{Key: key}, nil
}

func (f *fakeClient) AddWorklog(_ context.Context, key, timeSpent, comment string) error {
	f.worklogs = append(f.worklogs, worklogCall{key, timeSpent, comment})
	return f.worklogErr[key]
}

func newTestRunner(client *fakeClient) *Runner {
	r := NewRunner(client, &config.ServerProfile{Name: "test"}, &jira.User{Name: "jdoe"})
	r.cache = make(map[string]jira.Issue)
	return r
}

func TestValidateSelection(t *testing.T) {
	client := &fakeClient{}
	r := newTestRunner(client)

	err := r.validateSelection(context.Background(), []string{"ABC-1", "ABC-2"})

	assert.NoError(t, err)
}

func TestValidateSelectionNotFound(t *testing.T) {
	client := &fakeClient{
		getErr: map[string]error{
			"ABC-2": fmt.Errorf("issue %q: %w", "ABC-2", jira.ErrNotFound),
		},
	}
	r := newTestRunner(client)

	err := r.validateSelection(context.Background(), []string{"ABC-1", "ABC-2", "ABC-3"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, jira.ErrNotFound))
	assert.Contains(t, err.Error(), "ABC-2")
}

func TestSubmitLogsEveryIssueInOrder(t *testing.T) {
	client := &fakeClient{}
	r := newTestRunner(client)

	err := r.submit(context.Background(), []string{"ABC-1", "ABC-2"}, "45m", "fixed bug")

	require.NoError(t, err)
	require.Len(t, client.worklogs, 2)
	assert.Equal(t, worklogCall{"ABC-1", "45m", "fixed bug"}, client.worklogs[0])
	assert.Equal(t, worklogCall{"ABC-2", "45m", "fixed bug"}, client.worklogs[1])
}

func TestSubmitContinuesAfterFailure(t *testing.T) {
	client := &fakeClient{
		worklogErr: map[string]error{
			"ABC-2": &jira.APIError{StatusCode: http.StatusBadRequest, Body: "nope"},
		},
	}
	r := newTestRunner(client)

	err := r.submit(context.Background(), []string{"ABC-1", "ABC-2", "ABC-3"}, "1h", "")

	// Best-effort: the failure on ABC-2 is reported but the remaining
	// issues still get their worklog.
	require.NoError(t, err)
	require.Len(t, client.worklogs, 3)
	assert.Equal(t, "ABC-3", client.worklogs[2].key)
}

func TestSubmitStopsOnCancelledContext(t *testing.T) {
	client := &fakeClient{}
	r := newTestRunner(client)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.submit(ctx, []string{"ABC-1"}, "1h", "")

	require.Error(t, err)
	assert.Empty(t, client.worklogs)
}

func TestFetchIssuesTreatsQueryErrorAsZeroResults(t *testing.T) {
	client := &fakeClient{
		searchErr: &jira.APIError{StatusCode: http.StatusBadRequest, Body: "bad jql"},
	}
	r := newTestRunner(client)

	issues, err := r.fetchIssues(context.Background(), "not valid", 0)

	assert.NoError(t, err)
	assert.Empty(t, issues)
}

func TestFetchIssuesCachesResults(t *testing.T) {
	client := &fakeClient{
		searchResults: []jira.Issue{
			{Key: "ABC-1", Summary: "first"},
			{Key: "ABC-2", Summary: "second"},
		},
	}
	r := newTestRunner(client)

	issues, err := r.fetchIssues(context.Background(), "project = ABC", 0)

	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, "first", r.cache["ABC-1"].Summary)
	assert.Equal(t, "second", r.cache["ABC-2"].Summary)
}

func TestFetchIssuesPropagatesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := &fakeClient{searchErr: ctx.Err()}
	r := newTestRunner(client)

	_, err := r.fetchIssues(ctx, "project = ABC", 0)

	assert.Error(t, err)
}
