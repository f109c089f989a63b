// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskboard/internal/service"
)

const (
	// CardSeparator is the separator line between task cards.
	CardSeparator = "------------"

	// NoTasks is printed when the collection is empty.
	NoTasks = "no tasks found"
)

// cardLines are the labelled attributes of a card, in display order.
// The id is never displayed.
var cardLines = []struct {
	label string
	value func(service.Task) string
}{
	{"Description", func(t service.Task) string { return t.Description }},
	{"Priority", func(t service.Task) string { return t.Priority }},
	{"Status", func(t service.Task) string { return t.Status }},
	{"Created Date", func(t service.Task) string { return t.CreatedDate }},
	{"Due Date", func(t service.Task) string { return t.DueDate }},
}

// FormatCard formats one task card.
// Format:
//
//	------------
//	{N:>4}  Title : {TITLE}
//	      Description : {DESCRIPTION}
//	      ...
func FormatCard(w io.Writer, num int, task service.Task) {
	fmt.Fprintln(w, CardSeparator)
	fmt.Fprintf(w, "%4d  Title : %s\n", num, normalizeText(task.Title))
	for _, line := range cardLines {
		fmt.Fprintf(w, "      %s : %s\n", line.label, normalizeText(line.value(task)))
	}
}

// FormatCards formats every task in collection order, numbered from 1.
func FormatCards(w io.Writer, tasks []service.Task) {
	for i, task := range tasks {
		FormatCard(w, i+1, task)
	}
}

// normalizeText replaces newlines so a field stays on its card line.
// Values are otherwise shown verbatim.
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
