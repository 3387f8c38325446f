package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("formation_norm AS label", "COUNT(*) AS plays").
		From("plays").
		Where(Eq("game_id", int64(7)), IsNotNull("formation_norm")).
		GroupBy("formation_norm").
		OrderBy("plays DESC", "label").
		Limit(5).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT formation_norm AS label, COUNT(*) AS plays FROM plays WHERE game_id = $1 AND formation_norm IS NOT NULL GROUP BY formation_norm ORDER BY plays DESC, label LIMIT 5"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != int64(7) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("teams").
		Columns("team_name", "city").
		Values("Central", "Springfield").
		Suffix("RETURNING team_id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO teams (team_name, city) VALUES ($1, $2) RETURNING team_id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "Central" || args[1] != "Springfield" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("teams").Columns("team_name", "city").Values("Central").ToSQL()
	if err == nil {
		t.Fatalf("expected error for short row")
	}
}

type testRow struct {
	Name    string  `db:"team_name"`
	City    *string `db:"city"`
	Skipped string  `db:"-"`
}

func TestInsertModels(t *testing.T) {
	city := "Springfield"
	rows := []testRow{{Name: "Central", City: &city}, {Name: "Westview"}}

	query, args, err := InsertModels("teams", rows, "ON CONFLICT DO NOTHING")
	if err != nil {
		t.Fatalf("build insert models query: %v", err)
	}

	wantQuery := "INSERT INTO teams (team_name, city) VALUES ($1, $2), ($3, $4) ON CONFLICT DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != "Central" || args[2] != "Westview" {
		t.Fatalf("unexpected args: %+v", args)
	}
	if _, _, err := InsertModels[testRow]("teams", nil, ""); err == nil {
		t.Fatalf("expected error for empty models")
	}
}
