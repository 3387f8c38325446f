package drive

import "fmt"

// Drive groups the plays one offense runs before possession changes.
type Drive struct {
	ID            int64
	GameID        int64
	OffenseTeamID int64
	DefenseTeamID int64
}

func (d Drive) Validate() error {
	if d.GameID <= 0 {
		return fmt.Errorf("drive game id is required")
	}

	return nil
}
