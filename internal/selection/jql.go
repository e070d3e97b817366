package selection

import (
	"fmt"
	"regexp"
	"strings"
)

var issueKeyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*-\d+$`)

// IsIssueKey reports whether s looks like a Jira issue key such as "ABC-123".
func IsIssueKey(s string) bool {
	return issueKeyPattern.MatchString(s)
}

// KeywordJQL builds a JQL query matching the term against summary and
// description. When the term itself looks like an issue key, an exact-key
// clause is placed before the text clauses so a direct hit sorts first.
// Results are ordered by most recently updated.
func KeywordJQL(term string) string {
	escaped := strings.ReplaceAll(term, `"`, `\"`)
	clauses := []string{
		fmt.Sprintf(`summary ~ "%s"`, escaped),
		fmt.Sprintf(`description ~ "%s"`, escaped),
	}
	normalizedKey := strings.ToUpper(strings.TrimSpace(term))
	if IsIssueKey(normalizedKey) {
		clauses = append([]string{fmt.Sprintf(`key = "%s"`, normalizedKey)}, clauses...)
	}
	return strings.Join(clauses, " OR ") + " ORDER BY updated DESC"
}

// ProjectJQL builds a JQL query covering the open issues of the given
// project keys. It returns "" when no keys are configured.
func ProjectJQL(projectKeys []string) string {
	if len(projectKeys) == 0 {
		return ""
	}
	return fmt.Sprintf(
		"project in (%s) AND statusCategory not in (Done)",
		strings.Join(projectKeys, ", "),
	)
}
