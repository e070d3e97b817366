// Package session drives one select-and-log pass: browse views, accumulate
// a selection, capture a duration and submit worklogs.
package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/phuslu/log"
	"github.com/pterm/pterm"

	"jira-worklogger/internal/config"
	"jira-worklogger/internal/jira"
	"jira-worklogger/internal/selection"
	"jira-worklogger/internal/ui"
)

// keywordSearchLimit caps keyword searches; every other view runs unbounded.
const keywordSearchLimit = 50

// backToViews is the sentinel multi-select entry that leaves a view without
// touching the selection.
const backToViews = "__back_to_views__"

// ErrNoSelection is returned when the workflow finishes with nothing selected.
var ErrNoSelection = errors.New("no issues selected")

// Service is the slice of the Jira client the workflow needs. *jira.Client
// implements it; tests substitute a fake.
type Service interface {
	SearchIssues(ctx context.Context, jql string, maxResults int) ([]jira.Issue, error)
	GetIssue(ctx context.Context, key string) (jira.Issue, error)
	AddWorklog(ctx context.Context, key, timeSpent, comment string) error
}

type viewChoice int

const (
	viewMyIssues viewChoice = iota
	viewTeamIssues
	viewProjectIssues
	viewKeywordSearch
	viewCustomJQL
	viewManualEntry
	viewReview
	viewFinish
)

// Runner owns the state of one workflow run. The client, profile and user
// survive across runs; the selection and issue cache are fresh per run.
type Runner struct {
	client  Service
	profile *config.ServerProfile
	user    *jira.User
	cache   map[string]jira.Issue
}

func NewRunner(client Service, profile *config.ServerProfile, user *jira.User) *Runner {
	return &Runner{
		client:  client,
		profile: profile,
		user:    user,
	}
}

// Run executes one full pass and reports whether the user wants another.
func (r *Runner) Run(ctx context.Context) (bool, error) {
	r.cache = make(map[string]jira.Issue)
	state := selection.NewState()

	if err := r.selectIssues(ctx, state); err != nil {
		return false, err
	}
	if state.Len() == 0 {
		return false, ErrNoSelection
	}
	keys := state.Keys()

	if err := r.validateSelection(ctx, keys); err != nil {
		return false, err
	}

	timeSpent, comment, err := r.captureTime()
	if err != nil {
		return false, err
	}

	if err := r.submit(ctx, keys, timeSpent, comment); err != nil {
		return false, err
	}

	return ui.ConfirmYesNo("Work on another ticket?")
}

func (r *Runner) selectIssues(ctx context.Context, state *selection.State) error {
	for {
		choice, err := r.promptView(state)
		if err != nil {
			return err
		}

		switch choice {
		case viewFinish:
			return nil

		case viewReview:
			changed, err := r.reviewSelection(state)
			if err != nil {
				return err
			}
			done, err := r.maybeStartLogging(state, changed)
			if err != nil {
				return err
			}
			if done {
				return nil
			}

		case viewManualEntry:
			changed, err := r.promptManualKey(state)
			if err != nil {
				return err
			}
			done, err := r.maybeStartLogging(state, changed)
			if err != nil {
				return err
			}
			if done {
				return nil
			}

		case viewMyIssues:
			done, err := r.browse(ctx, state, r.profile.IssueJQL, 0,
				"issue(s) assigned to you", "Select from your assigned issues")
			if err != nil {
				return err
			}
			if done {
				return nil
			}

		case viewTeamIssues:
			done, err := r.browse(ctx, state, r.profile.TeamIssueJQL, 0,
				"team issue(s)", "Select shared/team issues")
			if err != nil {
				return err
			}
			if done {
				return nil
			}

		case viewProjectIssues:
			done, err := r.browse(ctx, state, selection.ProjectJQL(r.profile.ProjectKeys), 0,
				"project issue(s)", "Select project issues")
			if err != nil {
				return err
			}
			if done {
				return nil
			}

		case viewKeywordSearch:
			term, err := promptRequired(
				"Search term to look for in Jira",
				"Matches summary and description; type an issue key to find it directly.")
			if err != nil {
				return err
			}
			done, err := r.browse(ctx, state, selection.KeywordJQL(term), keywordSearchLimit,
				"issue(s) from keyword search", "Select issues from keyword search")
			if err != nil {
				return err
			}
			if done {
				return nil
			}

		case viewCustomJQL:
			jql, err := promptJQL()
			if err != nil {
				return err
			}
			done, err := r.browse(ctx, state, jql, 0,
				"issue(s) from custom JQL", "Select issues from custom JQL")
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

func (r *Runner) promptView(state *selection.State) (viewChoice, error) {
	options := []huh.Option[viewChoice]{
		huh.NewOption("My assigned issues", viewMyIssues),
	}
	if r.profile.TeamIssueJQL != "" {
		options = append(options, huh.NewOption("Shared/team buckets", viewTeamIssues))
	}
	if len(r.profile.ProjectKeys) > 0 {
		title := fmt.Sprintf("All project tickets (%s)", strings.Join(r.profile.ProjectKeys, ", "))
		options = append(options, huh.NewOption(title, viewProjectIssues))
	}
	options = append(options,
		huh.NewOption("Search Jira by keywords", viewKeywordSearch),
		huh.NewOption("Search Jira with custom JQL", viewCustomJQL),
		huh.NewOption("Enter issue key manually", viewManualEntry),
	)
	if state.Len() > 0 {
		options = append(options,
			huh.NewOption(fmt.Sprintf("Review current selection (%d selected)", state.Len()), viewReview),
			huh.NewOption("Done selecting issues", viewFinish),
		)
	}

	var choice viewChoice
	err := huh.NewSelect[viewChoice]().
		Title("How would you like to find issues?").
		Options(options...).
		Value(&choice).
		Run()
	return choice, err
}

// browse runs a view's query, lets the user toggle issues and reconciles
// the result into the selection. It reports whether the user chose to jump
// straight to logging.
func (r *Runner) browse(ctx context.Context, state *selection.State, jql string, limit int, what, prompt string) (bool, error) {
	issues, err := r.fetchIssues(ctx, jql, limit)
	if err != nil {
		return false, err
	}
	ui.PrintLoaded(len(issues), what)
	if len(issues) == 0 {
		return false, nil
	}
	ui.PrintIssuesTable(issues)

	changed, backed, err := r.promptIssueSelection(state, issues, prompt)
	if err != nil || backed {
		return false, err
	}
	return r.maybeStartLogging(state, changed)
}

// fetchIssues runs a JQL search under a spinner. A service-side rejection is
// reported and treated as zero results so the workflow keeps going; only a
// cancelled context propagates as an error.
func (r *Runner) fetchIssues(ctx context.Context, jql string, limit int) ([]jira.Issue, error) {
	log.Debug().Str("jql", jql).Msg("searching jira")
	spinner, _ := pterm.DefaultSpinner.Start("Loading issues...")
	issues, err := r.client.SearchIssues(ctx, jql, limit)
	spinner.Stop()
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		ui.PrintError("Failed to run JQL search: " + err.Error())
		return nil, nil
	}
	for _, issue := range issues {
		r.cache[issue.Key] = issue
	}
	return issues, nil
}

func (r *Runner) promptIssueSelection(state *selection.State, issues []jira.Issue, title string) (changed, backed bool, err error) {
	viewKeys := make([]string, 0, len(issues))
	options := make([]huh.Option[string], 0, len(issues)+1)
	for _, issue := range issues {
		viewKeys = append(viewKeys, issue.Key)
		options = append(options,
			huh.NewOption(fmt.Sprintf("%s - %s", issue.Key, issue.Summary), issue.Key).
				Selected(state.Contains(issue.Key)))
	}
	options = append(options, huh.NewOption("Back to view selector", backToViews))

	var checked []string
	err = huh.NewMultiSelect[string]().
		Title(title).
		Description("Space toggles an issue; pick 'Back to view selector' to leave the selection untouched.").
		Options(options...).
		Filterable(true).
		Value(&checked).
		Run()
	if err != nil {
		return false, false, err
	}

	if slices.Contains(checked, backToViews) {
		return false, true, nil
	}
	return state.SyncView(viewKeys, checked), false, nil
}

func (r *Runner) reviewSelection(state *selection.State) (bool, error) {
	options := make([]huh.Option[string], 0, state.Len())
	for _, key := range state.Keys() {
		title := key
		if issue, ok := r.cache[key]; ok && issue.Summary != "" {
			title = fmt.Sprintf("%s - %s", key, issue.Summary)
		}
		options = append(options, huh.NewOption(title, key).Selected(true))
	}

	var kept []string
	err := huh.NewMultiSelect[string]().
		Title("Review selected issues").
		Description("Uncheck any issues you want to remove.").
		Options(options...).
		Filterable(true).
		Value(&kept).
		Run()
	if err != nil {
		return false, err
	}
	return state.Review(kept), nil
}

func (r *Runner) promptManualKey(state *selection.State) (bool, error) {
	var key string
	err := huh.NewInput().
		Title("Enter the Jira issue key").
		Placeholder("TEAM-123").
		Validate(requiredValue).
		Value(&key).
		Run()
	if err != nil {
		return false, err
	}

	key = strings.ToUpper(strings.TrimSpace(key))
	if !state.Add(key) {
		ui.PrintNotice(fmt.Sprintf("Issue %s is already selected.", key))
		return false, nil
	}
	return true, nil
}

// maybeStartLogging asks once, after a selection change, whether to jump to
// logging or keep selecting.
func (r *Runner) maybeStartLogging(state *selection.State, changed bool) (bool, error) {
	if !changed || state.Len() == 0 {
		return false, nil
	}

	var action string
	err := huh.NewSelect[string]().
		Title(fmt.Sprintf("%d issue(s) selected. What next?", state.Len())).
		Options(
			huh.NewOption("Log time now", "log"),
			huh.NewOption("Keep selecting issues", "keep"),
		).
		Value(&action).
		Run()
	if err != nil {
		return false, err
	}
	return action == "log", nil
}

// validateSelection loads every selected issue to make sure it exists
// before any worklog is written. Sequential on purpose; the batch is small.
func (r *Runner) validateSelection(ctx context.Context, keys []string) error {
	spinner, _ := pterm.DefaultSpinner.Start("Verifying selected issues...")
	defer spinner.Stop()
	for _, key := range keys {
		log.Debug().Str("issue", key).Msg("loading issue")
		if _, err := r.client.GetIssue(ctx, key); err != nil {
			return fmt.Errorf("failed to verify issue %q: %w", key, err)
		}
	}
	return nil
}

func promptRequired(title, description string) (string, error) {
	var value string
	err := huh.NewInput().
		Title(title).
		Description(description).
		Validate(requiredValue).
		Value(&value).
		Run()
	return strings.TrimSpace(value), err
}

func promptJQL() (string, error) {
	var jql string
	err := huh.NewText().
		Title("Enter the JQL to run").
		Description("Example: project = ABC AND statusCategory != Done").
		Validate(requiredValue).
		Value(&jql).
		Run()
	return strings.TrimSpace(jql), err
}

func requiredValue(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("please enter a value")
	}
	return nil
}
