package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rutd/rutd/internal/daterange"
	"github.com/rutd/rutd/task"
)

// add
var addCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Add a new task",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

var (
	addPriority string
	addScope    string
	addType     string
)

// list
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks matching the given filters",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var (
	listFilter filterFlags
	listSort   string
	listStats  bool
)

// done
var doneCmd = &cobra.Command{
	Use:               "done <id>",
	Short:             "Mark a task as done",
	Args:              cobra.ExactArgs(1),
	RunE:              runDone,
	ValidArgsFunction: completeTaskIDs,
}

// edit
var editCmd = &cobra.Command{
	Use:               "edit <id>",
	Short:             "Edit a task description in $EDITOR",
	Args:              cobra.ExactArgs(1),
	RunE:              runEdit,
	ValidArgsFunction: completeTaskIDs,
}

// start
var startCmd = &cobra.Command{
	Use:               "start <id>",
	Short:             "Start timing work on a task",
	Args:              cobra.ExactArgs(1),
	RunE:              runStart,
	ValidArgsFunction: completeTaskIDs,
}

// stop
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop timing the active task",
	Args:  cobra.NoArgs,
	RunE:  runStop,
}

// abort
var abortCmd = &cobra.Command{
	Use:               "abort [id]",
	Short:             "Abort a task (the active one when no id is given)",
	Args:              cobra.MaximumNArgs(1),
	RunE:              runAbort,
	ValidArgsFunction: completeTaskIDs,
}

// clean
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete tasks matching the given filters",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

var (
	cleanFilter filterFlags
	cleanForce  bool
)

func init() {
	rootCmd.AddCommand(addCmd, listCmd, doneCmd, editCmd, startCmd, stopCmd, abortCmd, cleanCmd)

	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "normal", "Priority (low, normal, high, urgent)")
	addCmd.Flags().StringVarP(&addScope, "scope", "s", "", "Project-like scope tag")
	addCmd.Flags().StringVarP(&addType, "type", "t", "", "Category tag")

	listFilter.register(listCmd.Flags())
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort spec, e.g. priority:desc,created")
	listCmd.Flags().BoolVar(&listStats, "stats", false, "Show a summary table instead of rows")

	cleanFilter.register(cleanCmd.Flags())
	cleanCmd.Flags().BoolVar(&cleanForce, "force", false, "Delete without confirmation")

	registerTaskFlagCompletions(addCmd, listCmd, cleanCmd)
}

// filterFlags are the shared filter options of list and clean. Enum flags
// accept short and long aliases, date flags accept the range mini-language.
type filterFlags struct {
	priority string
	scope    string
	taskType string
	status   string
	added    string
	updated  string
	done     string
	fuzzy    string
}

func (f *filterFlags) register(flags *pflag.FlagSet) {
	flags.StringVarP(&f.priority, "priority", "p", "", "Filter by priority")
	flags.StringVarP(&f.scope, "scope", "c", "", "Filter by scope")
	flags.StringVarP(&f.taskType, "type", "t", "", "Filter by type")
	flags.StringVarP(&f.status, "status", "s", "", "Filter by status")
	flags.StringVarP(&f.added, "added", "a", "", "Filter by creation date range")
	flags.StringVarP(&f.updated, "updated", "u", "", "Filter by update date range")
	flags.StringVarP(&f.done, "done", "d", "", "Filter by completion date range")
	flags.StringVarP(&f.fuzzy, "fuzzy", "f", "", "Fuzzy-match the description")
}

func (f *filterFlags) build(now time.Time) (task.Filter, error) {
	var filter task.Filter

	if f.priority != "" {
		p, err := task.ParsePriority(f.priority)
		if err != nil {
			return task.Filter{}, err
		}
		filter.Priority = &p
	}
	if f.scope != "" {
		filter.Scope = &f.scope
	}
	if f.taskType != "" {
		filter.Type = &f.taskType
	}
	if f.status != "" {
		s, err := task.ParseStatus(f.status)
		if err != nil {
			return task.Filter{}, err
		}
		filter.Status = &s
	}

	for _, spec := range []struct {
		input  string
		target *daterange.Range
	}{
		{f.added, &filter.CreationTime},
		{f.updated, &filter.UpdateTime},
		{f.done, &filter.CompletionTime},
	} {
		if spec.input == "" {
			continue
		}
		r, err := daterange.Parse(spec.input, now)
		if err != nil {
			return task.Filter{}, err
		}
		*spec.target = r
	}

	filter.Fuzzy = f.fuzzy
	return filter, nil
}

func (f *filterFlags) isEmpty() bool {
	return *f == filterFlags{}
}

func runAdd(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	priority, err := task.ParsePriority(addPriority)
	if err != nil {
		return err
	}

	created, err := rt.manager.Add(args[0], priority, addScope, addType)
	if err != nil {
		return err
	}
	rt.display.ShowSuccess(fmt.Sprintf("Added task %s", created.ID[:8]))
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	filter, err := listFilter.build(time.Now())
	if err != nil {
		return err
	}

	var sortOpts task.SortOptions
	if listSort != "" {
		if sortOpts, err = task.ParseSortOptions(listSort); err != nil {
			return err
		}
	}

	tasks, err := rt.manager.List(filter, sortOpts)
	if err != nil {
		return err
	}

	switch {
	case listStats:
		rt.display.ShowTaskStats(tasks)
	case len(tasks) == 1 && !listFilter.isEmpty():
		rt.display.ShowTaskDetail(tasks[0])
	default:
		rt.display.ShowTasksList(tasks)
	}
	return nil
}

func runDone(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	finished, err := rt.manager.MarkDone(args[0])
	if err != nil {
		return err
	}
	rt.display.ShowSuccess(fmt.Sprintf("Task %s done", finished.ID[:8]))
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	edited, err := rt.manager.Edit(args[0], rt.display)
	if err != nil {
		return err
	}
	rt.display.ShowSuccess(fmt.Sprintf("Task %s updated", edited.ID[:8]))
	return nil
}

func runStart(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	started, err := rt.manager.Start(args[0])
	if err != nil {
		return err
	}
	rt.display.ShowSuccess(fmt.Sprintf("Started task %s", started.ID[:8]))
	return nil
}

func runStop(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	stopped, err := rt.manager.Stop()
	if err != nil {
		return err
	}
	rt.display.ShowSuccess(fmt.Sprintf("Stopped task %s", stopped.ID[:8]))
	return nil
}

func runAbort(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	idOrPrefix := ""
	if len(args) > 0 {
		idOrPrefix = args[0]
	}
	aborted, err := rt.manager.Abort(idOrPrefix)
	if err != nil {
		return err
	}
	rt.display.ShowSuccess(fmt.Sprintf("Aborted task %s", aborted.ID[:8]))
	return nil
}

func runClean(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	filter, err := cleanFilter.build(time.Now())
	if err != nil {
		return err
	}
	deleted, err := rt.manager.Clean(filter, cleanForce, rt.display)
	if err != nil {
		return err
	}
	rt.display.ShowSuccess(fmt.Sprintf("Deleted %d task(s)", deleted))
	return nil
}
