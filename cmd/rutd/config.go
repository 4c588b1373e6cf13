package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rutd/rutd/internal/config"
	"github.com/rutd/rutd/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and modify the configuration file",
}

var configGetCmd = &cobra.Command{
	Use:               "get <key>",
	Short:             "Print one config value",
	Args:              cobra.ExactArgs(1),
	RunE:              runConfigGet,
	ValidArgsFunction: completeConfigKeys,
}

var configSetCmd = &cobra.Command{
	Use:               "set <key> <value>",
	Short:             "Set a config value in the config file",
	Args:              cobra.ExactArgs(2),
	RunE:              runConfigSet,
	ValidArgsFunction: completeConfigKeys,
}

var configUnsetCmd = &cobra.Command{
	Use:               "unset <key>",
	Short:             "Remove a config value from the config file",
	Args:              cobra.ExactArgs(1),
	RunE:              runConfigUnset,
	ValidArgsFunction: completeConfigKeys,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List every config key with its effective value",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd, configSetCmd, configUnsetCmd, configShowCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	value, err := config.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := config.Set(args[0], args[1]); err != nil {
		return err
	}
	ui.NewTerminal().ShowSuccess(fmt.Sprintf("Set %s", args[0]))
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	if err := config.Unset(args[0]); err != nil {
		return err
	}
	ui.NewTerminal().ShowSuccess(fmt.Sprintf("Unset %s", args[0]))
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	entries, err := config.ListValues()
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{entry.Path, entry.Value})
	}
	fmt.Print(ui.FormatTable([]string{"KEY", "VALUE"}, rows))
	return nil
}

func completeConfigKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return config.ListPaths(), cobra.ShellCompDirectiveNoFileComp
}
