package types

import (
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
)

// FormatIssues renders validation issues as a markdown table. It returns an
// empty string when there is nothing to report.
func FormatIssues(issues []Issue) string {
	if len(issues) == 0 {
		return ""
	}
	var buf strings.Builder
	buf.WriteString("# Validation errors:\n")
	table := tablewriter.NewTable(&buf, tablewriter.WithRenderer(renderer.NewMarkdown()))
	table.Header("Field", "Reason", "Message")
	for _, issue := range issues {
		_ = table.Append(issue.JSONPointer, issue.Reason, issue.Message)
	}
	_ = table.Render()
	return buf.String()
}

func FormatFields(fields []FieldInfo, values map[string]any) string {
	if len(fields) == 0 {
		return ""
	}
	var buf strings.Builder
	table := tablewriter.NewTable(&buf, tablewriter.WithRenderer(renderer.NewMarkdown()))
	table.Header("Field", "Value", "Required")
	for _, field := range fields {
		required := "no"
		if field.Required {
			required = "yes"
		}
		_ = table.Append(field.DisplayName, displayValue(values[field.Name]), required)
	}
	_ = table.Render()
	return buf.String()
}

func displayValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case string:
		if val == "" {
			return "-"
		}
		return strings.ReplaceAll(val, "\n", " ")
	case bool:
		if val {
			return "yes"
		}
		return "no"
	case map[string]any:
		if name, ok := val["name"].(string); ok && name != "" {
			return name
		}
		return "-"
	default:
		return "?"
	}
}
