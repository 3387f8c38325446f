package postgres

import (
	"database/sql"
	"time"
)

type gameListingModel struct {
	ID          int64          `db:"game_id"`
	OffenseTeam string         `db:"offense_team"`
	DefenseTeam string         `db:"defense_team"`
	GameDate    sql.NullTime   `db:"game_date"`
	Season      sql.NullInt64  `db:"season"`
	Week        sql.NullInt64  `db:"week"`
	Venue       sql.NullString `db:"venue"`
	Source      string         `db:"source"`
	PlayCount   int            `db:"play_count"`
}

type gameInsertModel struct {
	OffenseTeamID int64      `db:"offense_team_id"`
	DefenseTeamID int64      `db:"defense_team_id"`
	GameDate      *time.Time `db:"game_date"`
	Season        *int       `db:"season"`
	Week          *int       `db:"week"`
	Venue         *string    `db:"venue"`
	Source        string     `db:"source"`
}
