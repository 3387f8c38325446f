package hudl

import "strings"

// Column is the canonical name of a play-by-play export column.
type Column string

const (
	ColumnDriveID       Column = "drive_id"
	ColumnSeason        Column = "season"
	ColumnWeek          Column = "week"
	ColumnOffenseTeam   Column = "offense_team"
	ColumnDefenseTeam   Column = "defense_team"
	ColumnQuarter       Column = "quarter"
	ColumnClock         Column = "clock"
	ColumnDown          Column = "down"
	ColumnDistance      Column = "distance"
	ColumnYardLine      Column = "yard_line"
	ColumnHashMark      Column = "hash_mark"
	ColumnFormationRaw  Column = "formation_raw"
	ColumnFormationNorm Column = "formation_norm"
	ColumnPersonnel     Column = "personnel"
	ColumnPlayType      Column = "play_type"
	ColumnRunDirection  Column = "run_direction"
	ColumnPassZone      Column = "pass_zone"
	ColumnYardsGained   Column = "yards_gained"
	ColumnResult        Column = "result"
)

type kind int

const (
	kindString kind = iota
	kindInt
)

type columnSpec struct {
	column  Column
	kind    kind
	aliases []string
}

// playColumns accepts both the lower_snake_case and the CapitalCase export
// headers. Aliases are compared after normalizeHeader.
var playColumns = []columnSpec{
	{column: ColumnDriveID, kind: kindInt, aliases: []string{"driveid"}},
	{column: ColumnSeason, kind: kindInt, aliases: []string{"season"}},
	{column: ColumnWeek, kind: kindInt, aliases: []string{"week"}},
	{column: ColumnOffenseTeam, kind: kindString, aliases: []string{"offenseteam", "offense"}},
	{column: ColumnDefenseTeam, kind: kindString, aliases: []string{"defenseteam", "defense"}},
	{column: ColumnQuarter, kind: kindInt, aliases: []string{"quarter", "qtr"}},
	{column: ColumnClock, kind: kindString, aliases: []string{"clock"}},
	{column: ColumnDown, kind: kindInt, aliases: []string{"down", "dn"}},
	{column: ColumnDistance, kind: kindInt, aliases: []string{"distance", "dist"}},
	{column: ColumnYardLine, kind: kindInt, aliases: []string{"yardline", "yardln"}},
	{column: ColumnHashMark, kind: kindString, aliases: []string{"hashmark", "hash"}},
	{column: ColumnFormationRaw, kind: kindString, aliases: []string{"formationraw", "formation", "offform"}},
	{column: ColumnFormationNorm, kind: kindString, aliases: []string{"formationnorm"}},
	{column: ColumnPersonnel, kind: kindString, aliases: []string{"personnel"}},
	{column: ColumnPlayType, kind: kindString, aliases: []string{"playtype"}},
	{column: ColumnRunDirection, kind: kindString, aliases: []string{"rundirection", "rundir"}},
	{column: ColumnPassZone, kind: kindString, aliases: []string{"passzone"}},
	{column: ColumnYardsGained, kind: kindInt, aliases: []string{"yardsgained", "yards", "gnls", "gainloss"}},
	{column: ColumnResult, kind: kindString, aliases: []string{"result"}},
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer("_", "", " ", "", "-", "", "/", "").Replace(h)
}

// indexHeader maps canonical columns to their position in the header row.
// The first matching header wins when an export repeats a column.
func indexHeader(header []string, specs []columnSpec) map[Column]int {
	byAlias := make(map[string]Column, len(specs)*2)
	for _, spec := range specs {
		for _, alias := range spec.aliases {
			byAlias[alias] = spec.column
		}
	}

	index := make(map[Column]int, len(specs))
	for pos, h := range header {
		col, ok := byAlias[normalizeHeader(h)]
		if !ok {
			continue
		}
		if _, seen := index[col]; seen {
			continue
		}
		index[col] = pos
	}
	return index
}
