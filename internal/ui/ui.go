// Package ui implements the terminal presentation layer: task tables,
// colored cells, confirmation prompts, and the editor hand-off.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rutd/rutd/internal/editor"
	"github.com/rutd/rutd/task"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	priorityStyles = map[task.Priority]lipgloss.Style{
		task.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		task.PriorityNormal: lipgloss.NewStyle(),
		task.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		task.PriorityUrgent: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}

	statusStyles = map[task.Status]lipgloss.Style{
		task.StatusTodo:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		task.StatusDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		task.StatusAborted: lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true),
	}
)

// Terminal is the interactive display used by the CLI.
type Terminal struct{}

// NewTerminal creates a terminal display.
func NewTerminal() *Terminal {
	return &Terminal{}
}

// Confirm asks a yes/no question via stdin/stdout. A non-interactive
// session answers no.
func (t *Terminal) Confirm(message string) (bool, error) {
	if !editor.IsInteractive() {
		return false, nil
	}
	fmt.Printf("%s [y/n]: ", message)
	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(response)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Edit hands the text to $EDITOR. The second result is false when the
// session is non-interactive or the user left the text untouched.
func (t *Terminal) Edit(initial string) (string, bool, error) {
	if !editor.IsInteractive() {
		return initial, false, nil
	}
	edited, err := editor.EditText(initial)
	if err != nil {
		return "", false, err
	}
	if edited == initial {
		return initial, false, nil
	}
	return edited, true, nil
}

// ShowSuccess prints a green success line.
func (t *Terminal) ShowSuccess(message string) {
	fmt.Println(successStyle.Render(message))
}

// ShowFailure prints a red failure line to stderr.
func (t *Terminal) ShowFailure(message string) {
	fmt.Fprintln(os.Stderr, failureStyle.Render(message))
}
