package ui

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"

	"jira-worklogger/internal/duration"
	"jira-worklogger/internal/jira"
)

func PrintWelcome() {
	pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgCyan)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack, pterm.Bold)).
		Println("Jira Worklogger")
	pterm.Println(pterm.Gray("Select issues, track your time, log your work."))
	pterm.Println()
}

func PrintIssuesTable(issues []jira.Issue) {
	tableData := pterm.TableData{
		{"#", "Key", "Summary", "Status"},
	}
	for i, issue := range issues {
		tableData = append(tableData, []string{
			strconv.Itoa(i + 1),
			issue.Key,
			issue.Summary,
			issue.Status,
		})
	}

	pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(tableData).Render()
	pterm.Println()
}

// PrintSummary shows what is about to be submitted: one row per issue, all
// sharing the same duration, with the accumulated total at the bottom.
func PrintSummary(keys []string, summaries map[string]string, timeSpent string) {
	pterm.Println()
	pterm.DefaultSection.WithStyle(pterm.NewStyle(pterm.FgCyan, pterm.Bold)).Println("Worklog summary")

	tableData := pterm.TableData{
		{"Issue", "Summary", "Time"},
	}
	for _, key := range keys {
		tableData = append(tableData, []string{
			pterm.FgCyan.Sprint(key),
			summaries[key],
			pterm.FgYellow.Sprint(timeSpent),
		})
	}

	totalSeconds := duration.ParseSeconds(timeSpent) * len(keys)
	tableData = append(tableData, []string{
		pterm.Bold.Sprint("TOTAL"),
		"",
		pterm.Bold.Sprint(pterm.FgYellow.Sprint(duration.FormatSeconds(totalSeconds))),
	})

	pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(tableData).Render()
	pterm.Println()
}

func PrintLogResult(issueKey string, success bool) {
	if success {
		pterm.Success.Printfln("Added worklog to issue %s", issueKey)
	} else {
		pterm.Error.Printfln("Failed to add worklog to issue %s", issueKey)
	}
}

// PrintLoaded reports how many issues a view query returned; zero results
// render as a warning rather than a success.
func PrintLoaded(count int, what string) {
	msg := fmt.Sprintf("Loaded %d %s.", count, what)
	if count > 0 {
		pterm.Success.Println(msg)
	} else {
		pterm.Warning.Println(msg)
	}
}

func PrintCancelled() {
	pterm.Warning.Println("Cancelled by user. Exiting.")
}

func PrintFarewell() {
	pterm.Println()
	pterm.Println(pterm.Gray("Thank you for using this tool."))
}

func PrintError(msg string) {
	pterm.Println(pterm.Red("⚠ " + msg))
}

func PrintNotice(msg string) {
	pterm.Println(pterm.Yellow(msg))
}

func PrintStatus(msg string) {
	pterm.Println(pterm.Gray(msg))
}
