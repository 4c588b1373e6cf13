package git

import (
	"fmt"
	"strings"
)

// Action names the kind of store mutation a commit records.
type Action string

const (
	// ActionCreate records a new task.
	ActionCreate Action = "create"

	// ActionUpdate records a content change on an existing task.
	ActionUpdate Action = "update"

	// ActionFinish records a task marked done.
	ActionFinish Action = "finish"

	// ActionCancel records an aborted task.
	ActionCancel Action = "cancel"

	// ActionDelete records one or more removed tasks.
	ActionDelete Action = "delete"
)

// CommitMessage renders the commit-message convention
//
//	<action>(<scope>|<type>): <description>
//
//	<id>[\n<id>...]
//
// Absent scope or type renders as "-".
func CommitMessage(action Action, scope, taskType, description string, ids ...string) string {
	if scope == "" {
		scope = "-"
	}
	if taskType == "" {
		taskType = "-"
	}
	return fmt.Sprintf("%s(%s|%s): %s\n\n%s", action, scope, taskType, description, strings.Join(ids, "\n"))
}
