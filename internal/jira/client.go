package jira

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/phuslu/log"

	"jira-worklogger/internal/config"
)

// issueFieldList is the field projection requested on every search and fetch.
const issueFieldList = "id,key,summary,statusCategory,status,description"

// searchPageSize is how many issues one search request asks for; unbounded
// searches page through results in chunks of this size.
const searchPageSize = 100

// Client talks to one Jira instance with a fixed set of credentials.
type Client struct {
	baseURL    string
	authHeader string
	http       *http.Client
}

func newClient(baseURL, authHeader string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authHeader: authHeader,
		http:       &http.Client{},
	}
}

func basicAuthHeader(email, token string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(email+":"+token))
}

// Connect authenticates against the server described by the profile and
// returns a ready client along with the authenticated user.
//
// PAT profiles get a single bearer-token attempt. Cloud-token profiles try
// (email, api_token) as basic credentials first and fall back to the API
// token alone as a bearer credential when the server answers 401/403; any
// other failure propagates immediately. If every attempt is rejected, the
// last authorization error is returned.
func Connect(ctx context.Context, profile *config.ServerProfile) (*Client, *User, error) {
	switch profile.AuthType {
	case config.AuthPAT:
		c := newClient(profile.URL, "Bearer "+profile.PAT)
		user, err := c.Myself(ctx)
		if err != nil {
			return nil, nil, err
		}
		return c, user, nil

	case config.AuthCloudToken:
		type attempt struct {
			method string
			header string
		}
		var attempts []attempt
		if profile.Email != "" && profile.APIToken != "" {
			attempts = append(attempts, attempt{"email+api_token", basicAuthHeader(profile.Email, profile.APIToken)})
		}
		if profile.APIToken != "" {
			attempts = append(attempts, attempt{"bearer", "Bearer " + profile.APIToken})
		}

		var lastAuthErr error
		for _, a := range attempts {
			c := newClient(profile.URL, a.header)
			user, err := c.Myself(ctx)
			if err == nil {
				return c, user, nil
			}
			if IsAuthError(err) {
				log.Debug().
					Str("method", a.method).
					Str("server", profile.Name).
					Err(err).
					Msg("authentication method rejected")
				lastAuthErr = err
				continue
			}
			return nil, nil, err
		}
		if lastAuthErr != nil {
			return nil, nil, lastAuthErr
		}
		return nil, nil, fmt.Errorf("no usable credentials configured for server %q", profile.Name)

	default:
		return nil, nil, fmt.Errorf("unsupported auth type %q for server %q", profile.AuthType, profile.Name)
	}
}

// Myself fetches the authenticated user, which doubles as the credential
// check during Connect.
func (c *Client) Myself(ctx context.Context) (*User, error) {
	body, err := c.get(ctx, "/rest/api/2/myself", nil)
	if err != nil {
		return nil, err
	}
	var mr myselfResponse
	if err := json.Unmarshal(body, &mr); err != nil {
		return nil, fmt.Errorf("decode myself response: %w", err)
	}
	return &User{
		AccountID:   mr.AccountID,
		Name:        mr.Name,
		DisplayName: mr.DisplayName,
		Email:       mr.EmailAddress,
	}, nil
}

// SearchIssues runs a JQL query. A maxResults of zero or less means
// unbounded; the client then pages through the full result set.
func (c *Client) SearchIssues(ctx context.Context, jql string, maxResults int) ([]Issue, error) {
	var issues []Issue
	startAt := 0
	for {
		pageSize := searchPageSize
		if maxResults > 0 {
			remaining := maxResults - len(issues)
			if remaining <= 0 {
				return issues, nil
			}
			if remaining < pageSize {
				pageSize = remaining
			}
		}

		page, err := c.searchPage(ctx, jql, startAt, pageSize)
		if err != nil {
			return nil, err
		}
		for _, si := range page.Issues {
			issues = append(issues, si.toIssue())
		}

		startAt += len(page.Issues)
		if len(page.Issues) == 0 || startAt >= page.Total {
			return issues, nil
		}
	}
}

func (c *Client) searchPage(ctx context.Context, jql string, startAt, pageSize int) (*searchResponse, error) {
	params := url.Values{}
	params.Set("jql", jql)
	params.Set("fields", issueFieldList)
	params.Set("startAt", strconv.Itoa(startAt))
	params.Set("maxResults", strconv.Itoa(pageSize))

	body, err := c.get(ctx, "/rest/api/2/search", params)
	if err != nil {
		return nil, err
	}
	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &sr, nil
}

// GetIssue fetches a single issue by key, returning ErrNotFound when the
// server does not know it.
func (c *Client) GetIssue(ctx context.Context, key string) (Issue, error) {
	params := url.Values{}
	params.Set("fields", issueFieldList)

	body, err := c.get(ctx, "/rest/api/2/issue/"+url.PathEscape(key), params)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return Issue{}, fmt.Errorf("issue %q: %w", key, ErrNotFound)
		}
		return Issue{}, err
	}

	var si searchIssue
	if err := json.Unmarshal(body, &si); err != nil {
		return Issue{}, fmt.Errorf("decode issue response: %w", err)
	}
	return si.toIssue(), nil
}

// AddWorklog appends a worklog entry to the issue, letting Jira adjust the
// remaining estimate automatically.
func (c *Client) AddWorklog(ctx context.Context, key, timeSpent, comment string) error {
	payload, err := json.Marshal(worklogPayload{TimeSpent: timeSpent, Comment: comment})
	if err != nil {
		return fmt.Errorf("marshal worklog payload: %w", err)
	}

	endpoint := c.baseURL + "/rest/api/2/issue/" + url.PathEscape(key) + "/worklog?adjustEstimate=auto"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", "application/json")

	_, err = c.do(req)
	return err
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jira request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}
