package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
)

func required(message string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s", message)
		}
		return nil
	}
}

// RunWizard interactively collects a new server profile. The caller is
// expected to persist the result with Store.AddServer.
func RunWizard(store *Store) (*ServerProfile, error) {
	profile := &ServerProfile{
		AuthType: AuthCloudToken,
		IssueJQL: DefaultIssueJQL,
	}
	var projectKeysInput string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Which Jira server to connect to?").
				Placeholder("https://your-instance.atlassian.net").
				Value(&profile.URL).
				Validate(required("Please enter a Jira server")),
			huh.NewSelect[string]().
				Title("Which authentication method do you want to configure?").
				Options(
					huh.NewOption("Jira Cloud - Email and API token", AuthCloudToken),
					huh.NewOption("Jira Server / Data Center - Personal Access Token", AuthPAT),
				).
				Value(&profile.AuthType),
			huh.NewInput().
				Title("What name to give your server?").
				Value(&profile.Name).
				Validate(func(name string) error {
					if strings.TrimSpace(name) == "" {
						return fmt.Errorf("please enter a name for the server")
					}
					if store.HasServer(strings.TrimSpace(name)) {
						return fmt.Errorf("name is already taken, please choose another one")
					}
					return nil
				}),
		).Title("Server"),

		huh.NewGroup(
			huh.NewInput().
				Title("Which JQL should be used to list issues by default?").
				Value(&profile.IssueJQL),
			huh.NewInput().
				Title("Optional JQL for shared/team buckets (leave blank to skip)").
				Value(&profile.TeamIssueJQL),
			huh.NewInput().
				Title("Optional Jira project keys for broader searches (comma separated)").
				Value(&projectKeysInput),
		).Title("Queries"),
	)
	if err := form.Run(); err != nil {
		return nil, err
	}

	if raw := strings.TrimSpace(projectKeysInput); raw != "" {
		profile.ProjectKeys = strings.Split(raw, ",")
	}

	var credentials *huh.Form
	if profile.AuthType == AuthPAT {
		credentials = huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("What is your Jira Personal Access Token (PAT)?").
				EchoMode(huh.EchoModePassword).
				Value(&profile.PAT).
				Validate(required("Please enter a value")),
		))
	} else {
		credentials = huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("What is your Atlassian account email?").
				Value(&profile.Email).
				Validate(required("Please enter a value")),
			huh.NewInput().
				Title("What is your Jira Cloud API token?").
				Description("Create one at https://id.atlassian.com/manage-profile/security/api-tokens").
				EchoMode(huh.EchoModePassword).
				Value(&profile.APIToken).
				Validate(required("Please enter a value")),
		))
	}
	if err := credentials.Run(); err != nil {
		return nil, err
	}

	pterm.Warning.Printfln("Credentials are stored unencrypted in %s.", store.Path())

	profile.Normalize()
	return profile, nil
}
