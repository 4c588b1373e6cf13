package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/rutd/rutd/task"
)

const (
	descriptionColumnWidth = 50
	detailWrapWidth        = 72
	shortIDLength          = 8
)

// FormatTable renders headers and rows as an aligned table. Cell widths
// are measured after ANSI styling so colored cells line up.
func FormatTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = lipgloss.Width(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var builder strings.Builder
	writeRow := func(row []string) {
		for i, cell := range row {
			builder.WriteString(cell)
			if i == len(row)-1 {
				builder.WriteByte('\n')
				continue
			}
			builder.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+2))
		}
	}

	writeRow(headers)
	for _, row := range rows {
		writeRow(row)
	}
	return builder.String()
}

// ShowTasksList renders tasks as a table, one row per task.
func (t *Terminal) ShowTasksList(tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return
	}

	headers := []string{"ID", "PRI", "STATUS", "SCOPE", "TYPE", "SPENT", "CREATED", "DESCRIPTION"}
	rows := make([][]string, 0, len(tasks))
	for _, item := range tasks {
		rows = append(rows, []string{
			shortID(item.ID),
			styledPriority(item.Priority),
			styledStatus(item.Status),
			orDash(item.Scope),
			orDash(item.Type),
			formatSpent(item.TimeSpent),
			item.CreatedAt.Format("2006-01-02"),
			truncate.StringWithTail(firstLine(item.Description), descriptionColumnWidth, "..."),
		})
	}
	fmt.Print(FormatTable(headers, rows))
}

// ShowTaskStats renders a per-scope summary with status counts and total
// accumulated time.
func (t *Terminal) ShowTaskStats(tasks []task.Task) {
	type scopeStats struct {
		todo, done, aborted int
		seconds             int64
	}

	byScope := map[string]*scopeStats{}
	for _, item := range tasks {
		scope := orDash(item.Scope)
		stats, ok := byScope[scope]
		if !ok {
			stats = &scopeStats{}
			byScope[scope] = stats
		}
		switch item.Status {
		case task.StatusTodo:
			stats.todo++
		case task.StatusDone:
			stats.done++
		case task.StatusAborted:
			stats.aborted++
		}
		if item.TimeSpent != nil {
			stats.seconds += *item.TimeSpent
		}
	}

	scopes := make([]string, 0, len(byScope))
	for scope := range byScope {
		scopes = append(scopes, scope)
	}
	sort.Strings(scopes)

	var total scopeStats
	rows := make([][]string, 0, len(scopes)+1)
	for _, scope := range scopes {
		stats := byScope[scope]
		rows = append(rows, []string{
			scope,
			fmt.Sprintf("%d", stats.todo),
			fmt.Sprintf("%d", stats.done),
			fmt.Sprintf("%d", stats.aborted),
			formatSeconds(stats.seconds),
		})
		total.todo += stats.todo
		total.done += stats.done
		total.aborted += stats.aborted
		total.seconds += stats.seconds
	}
	rows = append(rows, []string{
		"total",
		fmt.Sprintf("%d", total.todo),
		fmt.Sprintf("%d", total.done),
		fmt.Sprintf("%d", total.aborted),
		formatSeconds(total.seconds),
	})

	fmt.Print(FormatTable([]string{"SCOPE", "TODO", "DONE", "ABORTED", "SPENT"}, rows))
}

// ShowTaskDetail renders one task in full, with the description wrapped.
func (t *Terminal) ShowTaskDetail(item task.Task) {
	rows := [][]string{
		{"id", item.ID},
		{"priority", styledPriority(item.Priority)},
		{"status", styledStatus(item.Status)},
		{"scope", orDash(item.Scope)},
		{"type", orDash(item.Type)},
		{"created", item.CreatedAt.Format(time.RFC3339)},
	}
	if item.UpdatedAt != nil {
		rows = append(rows, []string{"updated", item.UpdatedAt.Format(time.RFC3339)})
	}
	if item.CompletedAt != nil {
		rows = append(rows, []string{"completed", item.CompletedAt.Format(time.RFC3339)})
	}
	rows = append(rows, []string{"spent", formatSpent(item.TimeSpent)})

	for _, row := range rows {
		fmt.Printf("%-10s %s\n", row[0], row[1])
	}
	fmt.Println()
	fmt.Println(wordwrap.String(item.Description, detailWrapWidth))
}

func styledPriority(p task.Priority) string {
	return priorityStyles[p].Render(p.String())
}

func styledStatus(s task.Status) string {
	return statusStyles[s].Render(s.String())
}

func shortID(id string) string {
	if len(id) > shortIDLength {
		return id[:shortIDLength]
	}
	return id
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// formatSpent renders accumulated seconds compactly, "-" when absent.
func formatSpent(seconds *int64) string {
	if seconds == nil {
		return "-"
	}
	return formatSeconds(*seconds)
}

func formatSeconds(seconds int64) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm %ds", minutes, seconds%60)
	}
	hours := minutes / 60
	return fmt.Sprintf("%dh %dm", hours, minutes%60)
}
