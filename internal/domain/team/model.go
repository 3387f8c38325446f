package team

import (
	"fmt"
	"strings"
)

// Team is a football program referenced by games and plays.
type Team struct {
	ID       int64
	Name     string
	Mascot   *string
	City     *string
	State    *string
	Division *string
	Region   *string
	District *string
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
