package play

import (
	"fmt"
	"strings"
)

const (
	TypeRun  = "run"
	TypePass = "pass"
)

// Play is one charted snap. Nil pointers mean the export had no usable value.
type Play struct {
	ID            int64
	DriveID       int64
	GameID        int64
	OffenseTeamID int64
	DefenseTeamID int64
	Quarter       *int
	Clock         *string
	Down          *int
	Distance      *int
	YardLine      *int
	HashMark      *string
	FormationRaw  *string
	FormationNorm *string
	Personnel     *string
	PlayType      *string
	RunDirection  *string
	PassZone      *string
	YardsGained   *int
	Result        *string
}

func (p Play) Validate() error {
	if p.GameID <= 0 {
		return fmt.Errorf("play game id is required")
	}
	if p.DriveID <= 0 {
		return fmt.Errorf("play drive id is required")
	}

	return nil
}

// NormalizePlayType lower-cases the charted play type so "Run" and "run" group together.
func NormalizePlayType(value *string) *string {
	if value == nil {
		return nil
	}
	out := strings.ToLower(strings.TrimSpace(*value))
	if out == "" {
		return nil
	}
	return &out
}
