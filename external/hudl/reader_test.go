package hudl

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestPlayReader_SnakeCaseHeader(t *testing.T) {
	src := "\ufeffdrive_id,quarter,clock,down,distance,yard_line,hash_mark,formation_raw,formation_norm,personnel,play_type,run_direction,pass_zone,yards_gained,result\n" +
		"1,1,11:42,1,10,-25,L,trips rt,,11,Run,Right,,4,Rush\n" +
		"1,1,11:05,2,6,-29,M,doubles,,11,Pass,,Deep Left,n/a,Incomplete\n"

	reader, err := NewPlayReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	if !reader.Has(ColumnDriveID) {
		t.Fatalf("expected drive_id column to be detected through the BOM")
	}
	if reader.Has(ColumnSeason) {
		t.Fatalf("did not expect season column")
	}

	first, err := reader.Next()
	if err != nil {
		t.Fatalf("read first row: %v", err)
	}
	if first.Line != 2 {
		t.Fatalf("unexpected line: %d", first.Line)
	}
	if v := first.Int(ColumnYardLine); v == nil || *v != -25 {
		t.Fatalf("unexpected yard line: %v", v)
	}
	if v := first.String(ColumnFormationRaw); v == nil || *v != "trips rt" {
		t.Fatalf("unexpected formation: %v", v)
	}
	if v := first.String(ColumnFormationNorm); v != nil {
		t.Fatalf("expected empty formation_norm to be nil, got %q", *v)
	}
	if first.Nullified() != 0 {
		t.Fatalf("unexpected nullified count: %d", first.Nullified())
	}

	second, err := reader.Next()
	if err != nil {
		t.Fatalf("read second row: %v", err)
	}
	if v := second.Int(ColumnYardsGained); v != nil {
		t.Fatalf("expected malformed yards to be nil, got %d", *v)
	}
	if raw, ok := second.Raw(ColumnYardsGained); !ok || raw != "n/a" {
		t.Fatalf("unexpected raw yards: %q %v", raw, ok)
	}
	if second.Nullified() != 1 {
		t.Fatalf("expected one nullified cell, got %d", second.Nullified())
	}

	if _, err := reader.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestPlayReader_CapitalCaseHeader(t *testing.T) {
	src := "Season,Week,OffenseTeam,DefenseTeam,Quarter,Clock,Down,Distance,YardLine,Hash,Formation,Personnel,PlayType,RunDirection,PassZone,Yards,Result\n" +
		"2024,3,Eagles,Hawks,2,5:10,3,7,40,R,Trips Left,10,Pass,,Short Middle,12,Complete\n"

	reader, err := NewPlayReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	if reader.Has(ColumnDriveID) {
		t.Fatalf("did not expect drive_id column")
	}

	rec, err := reader.Next()
	if err != nil {
		t.Fatalf("read row: %v", err)
	}
	if v := rec.Int(ColumnSeason); v == nil || *v != 2024 {
		t.Fatalf("unexpected season: %v", v)
	}
	if v := rec.String(ColumnOffenseTeam); v == nil || *v != "Eagles" {
		t.Fatalf("unexpected offense team: %v", v)
	}
	if v := rec.String(ColumnHashMark); v == nil || *v != "R" {
		t.Fatalf("unexpected hash: %v", v)
	}
	if v := rec.String(ColumnFormationRaw); v == nil || *v != "Trips Left" {
		t.Fatalf("unexpected formation: %v", v)
	}
	if v := rec.Int(ColumnYardsGained); v == nil || *v != 12 {
		t.Fatalf("unexpected yards: %v", v)
	}
}

func TestPlayReader_ShortRowLeavesTrailingColumnsAbsent(t *testing.T) {
	src := "quarter,down,yards_gained\n4,2\n"

	reader, err := NewPlayReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	rec, err := reader.Next()
	if err != nil {
		t.Fatalf("read row: %v", err)
	}
	if v := rec.Int(ColumnYardsGained); v != nil {
		t.Fatalf("expected absent yards, got %d", *v)
	}
	if _, ok := rec.Raw(ColumnYardsGained); ok {
		t.Fatalf("expected yards cell to be absent")
	}
}

func TestPlayReader_EmptyInput(t *testing.T) {
	if _, err := NewPlayReader(strings.NewReader("")); !errors.Is(err, ErrNoHeader) {
		t.Fatalf("expected ErrNoHeader, got %v", err)
	}
}

func TestTeamReader(t *testing.T) {
	src := "team_name,mascot,city,state,division,region,district\n" +
		"Central,Eagles,Springfield,IL,5A,North,3\n" +
		",,,,,,\n"

	reader, err := NewTeamReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("new team reader: %v", err)
	}

	item, line, err := reader.Next()
	if err != nil {
		t.Fatalf("read team: %v", err)
	}
	if line != 2 || item.Name != "Central" {
		t.Fatalf("unexpected team: line=%d name=%q", line, item.Name)
	}
	if item.City == nil || *item.City != "Springfield" || item.District == nil || *item.District != "3" {
		t.Fatalf("unexpected team fields: %+v", item)
	}

	blank, _, err := reader.Next()
	if err != nil {
		t.Fatalf("read blank team: %v", err)
	}
	if blank.Name != "" || blank.City != nil {
		t.Fatalf("expected blank team, got %+v", blank)
	}
}

func TestTeamReader_RequiresTeamName(t *testing.T) {
	if _, err := NewTeamReader(strings.NewReader("mascot,city\nEagles,Springfield\n")); err == nil {
		t.Fatalf("expected error for missing team_name column")
	}
}
