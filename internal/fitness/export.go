package fitness

import (
	"fmt"
	"strings"
)

// ClipboardText renders the plan as a plain-text block:
// title, description, a blank line, then "name: sets × reps @ weight (instructions)" per exercise.
func ClipboardText(plan WorkoutPlan) string {
	var sb strings.Builder
	sb.WriteString(plan.Title)
	sb.WriteString("\n")
	sb.WriteString(plan.Description)
	sb.WriteString("\n\n")

	for i, ex := range plan.Exercises {
		sb.WriteString(fmt.Sprintf("%s: %d × %s", ex.Name, ex.Sets, ex.Reps))
		if ex.Weight != "" {
			sb.WriteString(" @ ")
			sb.WriteString(ex.Weight)
		}
		if ex.Instructions != "" {
			sb.WriteString(" (")
			sb.WriteString(ex.Instructions)
			sb.WriteString(")")
		}
		if i < len(plan.Exercises)-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
