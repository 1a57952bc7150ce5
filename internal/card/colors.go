package card

import "strings"

// defaultTemplate is the header color used for unrecognized statuses.
const defaultTemplate = "blue"

var statusTemplates = map[string]string{
	"running":   "wathet",
	"pending":   "wathet",
	"success":   "green",
	"completed": "green",
	"failed":    "red",
	"error":     "red",
	"warning":   "orange",
	"info":      "blue",
}

// TemplateForStatus maps a semantic workflow status to a header color tag.
// The mapping is total: unrecognized statuses fall back to blue.
func TemplateForStatus(status string) string {
	if template, ok := statusTemplates[strings.ToLower(strings.TrimSpace(status))]; ok {
		return template
	}
	return defaultTemplate
}
