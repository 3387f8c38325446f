package postgres

import "database/sql"

type driveInsertModel struct {
	GameID        int64 `db:"game_id"`
	OffenseTeamID int64 `db:"offense_team_id"`
	DefenseTeamID int64 `db:"defense_team_id"`
}

type playInsertModel struct {
	DriveID       int64   `db:"drive_id"`
	GameID        int64   `db:"game_id"`
	OffenseTeamID int64   `db:"offense_team_id"`
	DefenseTeamID int64   `db:"defense_team_id"`
	Quarter       *int    `db:"quarter"`
	Clock         *string `db:"clock"`
	Down          *int    `db:"down"`
	Distance      *int    `db:"distance"`
	YardLine      *int    `db:"yard_line"`
	HashMark      *string `db:"hash_mark"`
	FormationRaw  *string `db:"formation_raw"`
	FormationNorm *string `db:"formation_norm"`
	Personnel     *string `db:"personnel"`
	PlayType      *string `db:"play_type"`
	RunDirection  *string `db:"run_direction"`
	PassZone      *string `db:"pass_zone"`
	YardsGained   *int    `db:"yards_gained"`
	Result        *string `db:"result"`
}

type labelCountModel struct {
	Label string `db:"label"`
	Plays int    `db:"plays"`
}

type downYardsModel struct {
	Down         int             `db:"down"`
	Plays        int             `db:"plays"`
	AverageYards sql.NullFloat64 `db:"average_yards"`
}
