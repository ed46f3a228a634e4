package flags

import (
	"strings"
)

const choiceSeparator = "|"

// FormatChoiceUsage renders a flag usage string whose backquoted placeholder
// enumerates the accepted values, with the default value upper-cased.
// Duplicate and blank choices are dropped.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	var usage strings.Builder
	usage.WriteString("`<")
	usage.WriteString(strings.Join(normalizeChoices(defaultChoice, choices), choiceSeparator))
	usage.WriteString(">`")

	trimmedDescription := strings.TrimSpace(description)
	if len(trimmedDescription) > 0 {
		usage.WriteString(" ")
		usage.WriteString(trimmedDescription)
	}
	return usage.String()
}

func normalizeChoices(defaultChoice string, choices []string) []string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))

	displayChoices := make([]string, 0, len(choices))
	seenChoices := make(map[string]struct{}, len(choices))
	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		if len(trimmedChoice) == 0 {
			continue
		}

		normalizedChoice := strings.ToLower(trimmedChoice)
		if _, alreadySeen := seenChoices[normalizedChoice]; alreadySeen {
			continue
		}
		seenChoices[normalizedChoice] = struct{}{}

		if normalizedChoice == normalizedDefault {
			trimmedChoice = strings.ToUpper(trimmedChoice)
		}
		displayChoices = append(displayChoices, trimmedChoice)
	}
	return displayChoices
}
