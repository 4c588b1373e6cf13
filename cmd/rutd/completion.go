package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rutd/rutd/task"
)

// completeTaskIDs suggests task ids with their first description line.
func completeTaskIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	rt, err := loadRuntime()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	tasks, err := rt.manager.Store().LoadAll()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	suggestions := make([]string, 0, len(tasks))
	for _, t := range tasks {
		line, _, _ := strings.Cut(t.Description, "\n")
		suggestions = append(suggestions, t.ID+"\t"+line)
	}
	return suggestions, cobra.ShellCompDirectiveNoFileComp
}

// registerTaskFlagCompletions wires enum and config-backed suggestions onto
// the priority/status/scope/type flags of each command that has them.
func registerTaskFlagCompletions(cmds ...*cobra.Command) {
	completions := map[string]func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective){
		"priority": completePriorities,
		"status":   completeStatuses,
		"scope":    completeScopes,
		"type":     completeTypes,
	}
	for _, cmd := range cmds {
		for flag, fn := range completions {
			if cmd.Flags().Lookup(flag) != nil {
				_ = cmd.RegisterFlagCompletionFunc(flag, fn)
			}
		}
	}
}

func completePriorities(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, 0, len(task.Priorities()))
	for _, p := range task.Priorities() {
		names = append(names, p.String())
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func completeStatuses(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, 0, len(task.Statuses()))
	for _, s := range task.Statuses() {
		names = append(names, s.String())
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// completeScopes suggests the pinned scopes plus every scope already used
// in the store.
func completeScopes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	rt, err := loadRuntime()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completeTags(rt, rt.cfg.Task.Scopes, func(t task.Task) string { return t.Scope }), cobra.ShellCompDirectiveNoFileComp
}

// completeTypes suggests the pinned types plus every type already used in
// the store.
func completeTypes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	rt, err := loadRuntime()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completeTags(rt, rt.cfg.Task.Types, func(t task.Task) string { return t.Type }), cobra.ShellCompDirectiveNoFileComp
}

func completeTags(rt *runtime, pinned []string, field func(task.Task) string) []string {
	seen := map[string]struct{}{}
	var suggestions []string
	add := func(tag string) {
		if tag == "" {
			return
		}
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		suggestions = append(suggestions, tag)
	}

	for _, tag := range pinned {
		add(tag)
	}
	if tasks, err := rt.manager.Store().LoadAll(); err == nil {
		for _, t := range tasks {
			add(field(t))
		}
	}
	return suggestions
}
