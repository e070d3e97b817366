package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordJQL(t *testing.T) {
	tests := []struct {
		name string
		term string
		want string
	}{
		{
			name: "plain term",
			term: "login bug",
			want: `summary ~ "login bug" OR description ~ "login bug" ORDER BY updated DESC`,
		},
		{
			name: "issue key gets an exact clause first",
			term: "ABC-123",
			want: `key = "ABC-123" OR summary ~ "ABC-123" OR description ~ "ABC-123" ORDER BY updated DESC`,
		},
		{
			name: "lowercase issue key is normalized for the key clause",
			term: "abc-123",
			want: `key = "ABC-123" OR summary ~ "abc-123" OR description ~ "abc-123" ORDER BY updated DESC`,
		},
		{
			name: "embedded quotes are escaped",
			term: `foo"bar`,
			want: `summary ~ "foo\"bar" OR description ~ "foo\"bar" ORDER BY updated DESC`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeywordJQL(tt.term))
		})
	}
}

func TestIsIssueKey(t *testing.T) {
	valid := []string{"A-1", "ABC-123", "A1_B2-42"}
	for _, key := range valid {
		assert.True(t, IsIssueKey(key), key)
	}

	invalid := []string{"", "abc-123", "1ABC-1", "ABC", "ABC-", "-123", "ABC-12x"}
	for _, key := range invalid {
		assert.False(t, IsIssueKey(key), key)
	}
}

func TestProjectJQL(t *testing.T) {
	assert.Empty(t, ProjectJQL(nil))
	assert.Equal(t,
		"project in (ABC) AND statusCategory not in (Done)",
		ProjectJQL([]string{"ABC"}),
	)
	assert.Equal(t,
		"project in (ABC, XYZ) AND statusCategory not in (Done)",
		ProjectJQL([]string{"ABC", "XYZ"}),
	)
}
