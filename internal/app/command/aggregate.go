package command

import "strings"

// Aggregate joins result texts with a newline in input order.
func Aggregate(outcomes []ItemOutcome) string {
	if len(outcomes) == 0 {
		return ""
	}
	lines := make([]string, len(outcomes))
	for i, o := range outcomes {
		lines[i] = o.Result.Text
	}
	return strings.Join(lines, "\n")
}
