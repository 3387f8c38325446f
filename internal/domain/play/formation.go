package play

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	FormationTripsRight = "Trips Right"
	FormationTripsLeft  = "Trips Left"
	FormationDoubles    = "Doubles"
)

type formationRule struct {
	label   string
	matches func(lowered string) bool
}

// formationRules is evaluated in order and the first match wins. New rules go
// at the end of this list so stored plays keep their classification.
var formationRules = []formationRule{
	{
		label: FormationTripsRight,
		matches: func(s string) bool {
			return strings.Contains(s, "trips") && strings.Contains(s, "right")
		},
	},
	{
		label: FormationTripsLeft,
		matches: func(s string) bool {
			return strings.Contains(s, "trips") && strings.Contains(s, "left")
		},
	},
	{
		label: FormationDoubles,
		matches: func(s string) bool {
			return strings.Contains(s, "double")
		},
	},
}

// NormalizeFormation maps a free-text formation label to its canonical name.
// Labels no rule recognizes come back trimmed and title-cased.
func NormalizeFormation(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.Join(strings.Fields(*raw), " ")
	if trimmed == "" {
		return nil
	}

	lowered := strings.ToLower(trimmed)
	for _, rule := range formationRules {
		if rule.matches(lowered) {
			label := rule.label
			return &label
		}
	}

	// A Caser holds state, so each call gets its own.
	titled := cases.Title(language.English).String(trimmed)
	return &titled
}
