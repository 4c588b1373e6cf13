package task

// Display is the presentation collaborator the manager drives. The core
// never writes to the terminal directly; interactive confirmation, editor
// hand-off, and all rendering go through this contract.
type Display interface {
	// Confirm asks the user a yes/no question and returns true on yes.
	Confirm(message string) (bool, error)

	// Edit hands the user an editor seeded with initial and returns the
	// replacement text. The second result is false when the user made no
	// change.
	Edit(initial string) (string, bool, error)

	// ShowSuccess reports a completed operation.
	ShowSuccess(message string)

	// ShowFailure reports a failed operation.
	ShowFailure(message string)

	// ShowTasksList renders tasks as a table.
	ShowTasksList(tasks []Task)

	// ShowTaskStats renders a summary over tasks.
	ShowTaskStats(tasks []Task)

	// ShowTaskDetail renders a single task in full.
	ShowTaskDetail(t Task)
}
