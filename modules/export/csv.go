package export

import (
	"strings"
	"time"

	domain "github.com/SahilGarg15/TaskFlow/domain/task"
)

// csvHeader is the fixed column order of CSV exports.
const csvHeader = "Title,Description,Status,Priority,Due Date,Tags,Created At,Completed At"

// quote wraps a field in double quotes with internal quotes doubled. Text
// fields are always quoted so titles containing commas or newlines survive
// round-trips through spreadsheet tools.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// renderCSV builds the CSV document for the given tasks.
func renderCSV(tasks []*domain.Task) string {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteString("\n")

	for _, t := range tasks {
		created := t.CreatedAt.Format(time.RFC3339)
		row := []string{
			quote(t.Title),
			quote(t.Description),
			string(t.Status),
			string(t.Priority),
			formatTime(t.DueDate),
			quote(strings.Join(t.Tags, ", ")),
			created,
			formatTime(t.CompletedAt),
		}
		b.WriteString(strings.Join(row, ","))
		b.WriteString("\n")
	}
	return b.String()
}
