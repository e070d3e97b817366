package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/huh"
	"github.com/phuslu/log"
	"github.com/pterm/pterm"

	"jira-worklogger/internal/config"
	"jira-worklogger/internal/jira"
	"jira-worklogger/internal/logging"
	"jira-worklogger/internal/session"
	"jira-worklogger/internal/ui"
)

var Version = "dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Println("jira-worklogger version", Version)
		return
	}

	logging.Setup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store := config.DefaultStore()
	if err := store.Load(); err != nil {
		pterm.Error.Println("Failed to load config: " + err.Error())
		os.Exit(1)
	}

	ui.PrintWelcome()

	if len(store.Servers) == 0 {
		fmt.Println("No servers configured yet. Let's set one up!")
		fmt.Println()
		if err := addServer(store); err != nil {
			exitOnPromptError(ctx, err)
		}
	}

	profile, err := pickServer(store)
	if err != nil {
		exitOnPromptError(ctx, err)
	}

	spinner, _ := pterm.DefaultSpinner.Start("Connecting to " + profile.URL + "...")
	client, user, err := jira.Connect(ctx, profile)
	spinner.Stop()
	if err != nil {
		if jira.IsAuthError(err) {
			pterm.Error.Println("Authentication failed. Please verify your credentials or reconfigure the server.")
			os.Exit(1)
		}
		exitOnPromptError(ctx, err)
	}
	log.Debug().
		Str("server", profile.URL).
		Str("user", user.Name).
		Str("displayName", user.DisplayName).
		Msg("authenticated with jira")

	// The profile, client and user survive across passes; each pass starts
	// with a fresh selection.
	runner := session.NewRunner(client, profile, user)
	for {
		again, err := runner.Run(ctx)
		if err != nil {
			handleRunError(ctx, err)
		}
		if !again {
			break
		}
	}

	ui.PrintFarewell()
}

// addServer runs the wizard and persists the result.
func addServer(store *config.Store) error {
	profile, err := config.RunWizard(store)
	if err != nil {
		return err
	}
	return store.AddServer(profile)
}

// pickServer loops over the profile picker until the user settles on a
// server, offering the wizard for new ones along the way.
func pickServer(store *config.Store) (*config.ServerProfile, error) {
	for {
		options := make([]huh.Option[int], 0, len(store.Servers)+1)
		for i, server := range store.Servers {
			options = append(options, huh.NewOption(fmt.Sprintf("%s - %s", server.Name, server.URL), i))
		}
		options = append(options, huh.NewOption("Add a new server", -1))

		choice := 0
		err := huh.NewSelect[int]().
			Title("Please select a server to work with").
			Options(options...).
			Value(&choice).
			Run()
		if err != nil {
			return nil, err
		}

		if choice >= 0 {
			return store.Servers[choice], nil
		}
		if err := addServer(store); err != nil {
			return nil, err
		}
	}
}

func handleRunError(ctx context.Context, err error) {
	switch {
	case errors.Is(err, session.ErrNoSelection):
		pterm.Error.Println("No issues selected. Exiting.")
	case errors.Is(err, jira.ErrNotFound):
		pterm.Error.Println(err.Error())
		ui.PrintStatus("Please run the tool again and verify your selections.")
	case isCancelled(ctx, err):
		ui.PrintCancelled()
	default:
		pterm.Error.Println(err.Error())
	}
	os.Exit(1)
}

func exitOnPromptError(ctx context.Context, err error) {
	if isCancelled(ctx, err) {
		ui.PrintCancelled()
	} else {
		pterm.Error.Println(err.Error())
	}
	os.Exit(1)
}

func isCancelled(ctx context.Context, err error) bool {
	return errors.Is(err, huh.ErrUserAborted) || ctx.Err() != nil
}
