package session

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/phuslu/log"
	"github.com/pterm/pterm"

	"jira-worklogger/internal/duration"
	"jira-worklogger/internal/ui"
)

// captureTime produces the duration string and comment to log: either a
// manual entry or a wall-clock timer run, followed by the confirm/adjust
// loop.
func (r *Runner) captureTime() (timeSpent, comment string, err error) {
	var method string
	err = huh.NewSelect[string]().
		Title("How do you want to log the time?").
		Options(
			huh.NewOption("Automatically (with a timer)", "auto"),
			huh.NewOption("Manually", "manual"),
		).
		Value(&method).
		Run()
	if err != nil {
		return "", "", err
	}

	if method == "manual" {
		comment, err = promptComment()
		if err != nil {
			return "", "", err
		}
		timeSpent, err = promptDuration("")
		if err != nil {
			return "", "", err
		}
	} else {
		timeSpent, comment, err = r.runTimer()
		if err != nil {
			return "", "", err
		}
	}

	timeSpent, err = r.confirmDuration(timeSpent)
	if err != nil {
		return "", "", err
	}
	return timeSpent, comment, nil
}

func (r *Runner) runTimer() (timeSpent, comment string, err error) {
	err = ui.WaitForEnter("Press Enter to START the timer and begin logging your work...")
	if err != nil {
		return "", "", err
	}

	elapsed, err := ui.RunTimer()
	if err != nil {
		return "", "", err
	}

	timeSpent = duration.FromElapsed(elapsed)
	pterm.Success.Printfln("Timer stopped after approximately %d minute(s).", duration.Minutes(elapsed))

	comment, err = promptComment()
	if err != nil {
		return "", "", err
	}
	return timeSpent, comment, nil
}

// confirmDuration loops until the user accepts the duration, offering a
// replacement prompt prefilled with the previous value on each pass.
func (r *Runner) confirmDuration(timeSpent string) (string, error) {
	for {
		var fine bool
		err := huh.NewSelect[bool]().
			Title(fmt.Sprintf("We've tracked a total of %s. Do you want to adjust the time?", timeSpent)).
			Options(
				huh.NewOption(fmt.Sprintf("No, %s is fine.", timeSpent), true),
				huh.NewOption("Yes, I want to adjust the time spent.", false),
			).
			Value(&fine).
			Run()
		if err != nil {
			return "", err
		}
		if fine {
			return timeSpent, nil
		}

		timeSpent, err = promptDuration(timeSpent)
		if err != nil {
			return "", err
		}
	}
}

// submit appends one worklog per selected issue. A failure on one issue is
// reported and the loop moves on to the rest; a partially recorded batch
// beats an aborted one, and every outcome is shown.
func (r *Runner) submit(ctx context.Context, keys []string, timeSpent, comment string) error {
	summaries := make(map[string]string, len(keys))
	for _, key := range keys {
		summaries[key] = r.cache[key].Summary
	}
	ui.PrintSummary(keys, summaries, timeSpent)

	for _, key := range keys {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Debug().Str("issue", key).Str("timeSpent", timeSpent).Msg("adding worklog")
		spinner, _ := pterm.DefaultSpinner.Start("Logging work on " + key + "...")
		err := r.client.AddWorklog(ctx, key, timeSpent, comment)
		spinner.Stop()
		ui.PrintLogResult(key, err == nil)
		if err != nil {
			ui.PrintError("  " + err.Error())
		}
	}
	return nil
}

func promptComment() (string, error) {
	var comment string
	err := huh.NewText().
		Title("Enter an optional comment for what you've worked on").
		Value(&comment).
		Run()
	return comment, err
}

func promptDuration(previous string) (string, error) {
	value := previous
	err := huh.NewInput().
		Title(`How much time did you spend, e.g. "2d" or "30m"?`).
		Validate(requiredValue).
		Value(&value).
		Run()
	return value, err
}
