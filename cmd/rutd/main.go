// Package main implements the rutd CLI, a git-backed personal task tracker.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rutd/rutd/internal/config"
	"github.com/rutd/rutd/internal/git"
	"github.com/rutd/rutd/internal/logging"
	"github.com/rutd/rutd/internal/ui"
	"github.com/rutd/rutd/task"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := rootCmd.Execute(); err != nil {
		ui.NewTerminal().ShowFailure(fmt.Sprintf("Error: %v", err))
		return 1
	}
	return 0
}

var rootCmd = &cobra.Command{
	Use:           "rutd",
	Short:         "rutd - a personal task tracker backed by a git repository",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var verbosity int

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (repeatable)")
}

// runtime bundles the collaborators every command needs.
type runtime struct {
	cfg     *config.Config
	manager *task.Manager
	display *ui.Terminal
}

// loadRuntime loads config once, installs logging, and wires the manager.
func loadRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if err := logging.Setup(logging.Options{
		FilePath:  cfg.LogPath(),
		History:   cfg.Log.History,
		Console:   cfg.Log.Console,
		Verbosity: verbosity,
	}); err != nil {
		return nil, err
	}

	client := git.New(git.Credentials{
		Username: cfg.Git.Username,
		Password: cfg.Git.Password,
	})
	return &runtime{
		cfg:     cfg,
		manager: task.NewManager(cfg.TasksPath(), cfg.ActiveTaskPath(), client),
		display: ui.NewTerminal(),
	}, nil
}
