// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskman/internal/service"
)

const (
	// tableFormat lays out ID, STATUS, CREATED and TITLE. IDs are sized for UUIDs.
	tableFormat = "%-36s  %-11s  %-10s  %s\n"

	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// FormatTaskTable writes a header and one row per task.
func FormatTaskTable(w io.Writer, tasks []service.Task) {
	fmt.Fprintf(w, tableFormat, "ID", "STATUS", "CREATED", "TITLE")
	for _, task := range tasks {
		FormatTaskRow(w, task)
	}
}

// FormatTaskRow writes a single table row.
func FormatTaskRow(w io.Writer, task service.Task) {
	fmt.Fprintf(w, tableFormat,
		task.ID,
		statusLabel(task.Status),
		formatTime(task.CreatedAt, dateLayout),
		normalizeTitle(task.Title),
	)
}

// FormatTaskDetail writes every field of a task, description last.
func FormatTaskDetail(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "id:       %s\n", task.ID)
	fmt.Fprintf(w, "title:    %s\n", normalizeTitle(task.Title))
	fmt.Fprintf(w, "status:   %s\n", statusLabel(task.Status))
	fmt.Fprintf(w, "created:  %s\n", formatTime(task.CreatedAt, dateTimeLayout))
	fmt.Fprintf(w, "updated:  %s\n", formatTime(task.UpdatedAt, dateTimeLayout))

	desc := strings.TrimRight(strings.ReplaceAll(task.Description, "\r\n", "\n"), "\n")
	if strings.TrimSpace(desc) == "" {
		return
	}
	fmt.Fprintln(w)
	for _, line := range strings.Split(desc, "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

func statusLabel(s service.Status) string {
	if s == "" {
		return "-"
	}
	return string(s)
}

func formatTime(ts service.Timestamp, layout string) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.UTC().Format(layout)
}
