package jira

// Issue is the projection of a Jira issue the tool works with.
type Issue struct {
	Key         string
	Summary     string
	Status      string
	Description string
}

// User identifies the authenticated Jira account.
type User struct {
	AccountID   string
	Name        string
	DisplayName string
	Email       string
}

type searchResponse struct {
	StartAt    int           `json:"startAt"`
	MaxResults int           `json:"maxResults"`
	Total      int           `json:"total"`
	Issues     []searchIssue `json:"issues"`
}

type searchIssue struct {
	ID     string      `json:"id"`
	Key    string      `json:"key"`
	Fields issueFields `json:"fields"`
}

type issueFields struct {
	Summary     string       `json:"summary"`
	Status      *issueStatus `json:"status"`
	Description string       `json:"description"`
}

type issueStatus struct {
	Name string `json:"name"`
}

type worklogPayload struct {
	TimeSpent string `json:"timeSpent"`
	Comment   string `json:"comment,omitempty"`
}

type myselfResponse struct {
	AccountID    string `json:"accountId"`
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}

func (si searchIssue) toIssue() Issue {
	status := ""
	if si.Fields.Status != nil {
		status = si.Fields.Status.Name
	}
	return Issue{
		Key:         si.Key,
		Summary:     si.Fields.Summary,
		Status:      status,
		Description: si.Fields.Description,
	}
}
