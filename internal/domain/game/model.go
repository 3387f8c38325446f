package game

import (
	"fmt"
	"time"
)

// DefaultSource is the provenance tag written when the caller supplies none.
const DefaultSource = "Hudl"

// Game is one ingested play-by-play file: an offense charted against a defense.
type Game struct {
	ID            int64
	OffenseTeamID int64
	DefenseTeamID int64
	Date          *time.Time
	Season        *int
	Week          *int
	Venue         *string
	Source        string
}

func (g Game) Validate() error {
	if g.OffenseTeamID <= 0 {
		return fmt.Errorf("game offense team id is required")
	}
	if g.DefenseTeamID <= 0 {
		return fmt.Errorf("game defense team id is required")
	}

	return nil
}

// Key identifies a game for lookup-or-create resolution.
type Key struct {
	Season        int
	Week          int
	OffenseTeamID int64
	DefenseTeamID int64
}

// Listing is a game joined with its team names for selection lists.
type Listing struct {
	ID          int64
	OffenseTeam string
	DefenseTeam string
	Date        *time.Time
	Season      *int
	Week        *int
	Venue       *string
	Source      string
	PlayCount   int
}

func (l Listing) Label() string {
	label := fmt.Sprintf("#%d %s vs %s", l.ID, l.OffenseTeam, l.DefenseTeam)
	if l.Season != nil && l.Week != nil {
		label += fmt.Sprintf(" (%d wk %d)", *l.Season, *l.Week)
	}
	return label
}
