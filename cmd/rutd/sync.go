package main

import (
	"github.com/spf13/cobra"

	"github.com/rutd/rutd/internal/git"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize the task repository with its remote",
	Args:  cobra.NoArgs,
	RunE:  runSync,
}

var syncPrefer string

var cloneCmd = &cobra.Command{
	Use:   "clone <url>",
	Short: "Clone a remote task repository into the task directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runClone,
}

func init() {
	rootCmd.AddCommand(syncCmd, cloneCmd)

	syncCmd.Flags().StringVar(&syncPrefer, "prefer", "none", "Conflict resolution preference (none, local, remote)")
	_ = syncCmd.RegisterFlagCompletionFunc("prefer", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"none", "local", "remote"}, cobra.ShellCompDirectiveNoFileComp
	})
}

func runSync(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	pref, err := git.ParsePreference(syncPrefer)
	if err != nil {
		return err
	}
	if err := rt.manager.Sync(pref); err != nil {
		return err
	}
	rt.display.ShowSuccess("Tasks synchronized")
	return nil
}

func runClone(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	if err := rt.manager.CloneRepo(args[0]); err != nil {
		return err
	}
	rt.display.ShowSuccess("Task repository cloned")
	return nil
}
