package hudl

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/riskibarqy/tendalyze/internal/domain/team"
)

const (
	rosterTeamName = "team_name"
	rosterMascot   = "mascot"
	rosterCity     = "city"
	rosterState    = "state"
	rosterDivision = "division"
	rosterRegion   = "region"
	rosterDistrict = "district"
)

var rosterColumns = []columnSpec{
	{column: rosterTeamName, aliases: []string{"teamname", "team", "name", "school"}},
	{column: rosterMascot, aliases: []string{"mascot"}},
	{column: rosterCity, aliases: []string{"city"}},
	{column: rosterState, aliases: []string{"state"}},
	{column: rosterDivision, aliases: []string{"division"}},
	{column: rosterRegion, aliases: []string{"region"}},
	{column: rosterDistrict, aliases: []string{"district"}},
}

// TeamReader streams a team roster file (one team per row).
type TeamReader struct {
	csv   *csv.Reader
	index map[Column]int
}

func NewTeamReader(src io.Reader) (*TeamReader, error) {
	cr, header, err := openCSV(src)
	if err != nil {
		return nil, err
	}

	index := indexHeader(header, rosterColumns)
	if _, ok := index[rosterTeamName]; !ok {
		return nil, fmt.Errorf("roster header must include team_name (got %s)", strings.Join(header, ","))
	}

	return &TeamReader{csv: cr, index: index}, nil
}

// Next returns the next team and the line it came from, or io.EOF.
func (r *TeamReader) Next() (team.Team, int, error) {
	fields, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return team.Team{}, 0, io.EOF
		}
		return team.Team{}, 0, fmt.Errorf("read roster row: %w", err)
	}
	line, _ := r.csv.FieldPos(0)

	cell := func(col Column) *string {
		pos, ok := r.index[col]
		if !ok || pos >= len(fields) {
			return nil
		}
		return String(fields[pos])
	}

	item := team.Team{
		Mascot:   cell(rosterMascot),
		City:     cell(rosterCity),
		State:    cell(rosterState),
		Division: cell(rosterDivision),
		Region:   cell(rosterRegion),
		District: cell(rosterDistrict),
	}
	if name := cell(rosterTeamName); name != nil {
		item.Name = *name
	}

	return item, line, nil
}
