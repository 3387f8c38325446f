package postgres

import (
	"database/sql"
	"time"
)

type teamTableModel struct {
	ID        int64          `db:"team_id"`
	Name      string         `db:"team_name"`
	Mascot    sql.NullString `db:"mascot"`
	City      sql.NullString `db:"city"`
	State     sql.NullString `db:"state"`
	Division  sql.NullString `db:"division"`
	Region    sql.NullString `db:"region"`
	District  sql.NullString `db:"district"`
	CreatedAt time.Time      `db:"created_at"`
}

type teamInsertModel struct {
	Name     string  `db:"team_name"`
	Mascot   *string `db:"mascot"`
	City     *string `db:"city"`
	State    *string `db:"state"`
	Division *string `db:"division"`
	Region   *string `db:"region"`
	District *string `db:"district"`
}
