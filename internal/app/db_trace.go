package app

import (
	"regexp"
	"strconv"
	"strings"
)

const maxTracedQueryLength = 512

var (
	queryWhitespaceRegex = regexp.MustCompile(`\s+`)
	// Matches the tuple list of a multi-row INSERT, up to an optional trailing clause.
	valuesListRegex = regexp.MustCompile(`(?i)( VALUES )(\([^()]*\))((?:, \([^()]*\))+)`)
)

// formatDBQueryForTrace collapses whitespace and folds bulk play inserts to
// their first tuple so span attributes stay readable.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegex.ReplaceAllString(query, " ")
	normalized = valuesListRegex.ReplaceAllStringFunc(normalized, func(match string) string {
		parts := valuesListRegex.FindStringSubmatch(match)
		rest := strings.Count(parts[3], "(")
		return parts[1] + parts[2] + " /* +" + strconv.Itoa(rest) + " rows */"
	})
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	return normalized[:maxTracedQueryLength] + "..."
}
