package usecase

import (
	"context"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/tendalyze/internal/domain/game"
	"github.com/riskibarqy/tendalyze/internal/domain/ingestion"
	"github.com/riskibarqy/tendalyze/internal/domain/team"
)

// ReferenceResolver looks up teams and games inside one ingestion transaction
// and creates them on first reference. Results are memoized for the run, so a
// name or game key costs at most one lookup and one insert.
type ReferenceResolver struct {
	cmds   ingestion.Commands
	source string
	teams  map[string]int64
	games  map[game.Key]int64

	teamsCreated int
	gamesCreated int
}

func NewReferenceResolver(cmds ingestion.Commands, source string) *ReferenceResolver {
	source = strings.TrimSpace(source)
	if source == "" {
		source = game.DefaultSource
	}

	return &ReferenceResolver{
		cmds:   cmds,
		source: source,
		teams:  make(map[string]int64),
		games:  make(map[game.Key]int64),
	}
}

// ResolveTeam returns the id of the team with exactly this name, creating a
// name-only team when none exists.
func (r *ReferenceResolver) ResolveTeam(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if id, ok := r.teams[name]; ok {
		return id, nil
	}

	id, exists, err := r.cmds.FindTeamByName(ctx, name)
	if err != nil {
		return 0, crerr.Wrapf(err, "find team %q", name)
	}
	if !exists {
		id, err = r.cmds.InsertTeam(ctx, team.Team{Name: name})
		if err != nil {
			return 0, crerr.Wrapf(err, "insert team %q", name)
		}
		r.teamsCreated++
	}

	r.teams[name] = id
	return id, nil
}

// ResolveGame returns the game matching season, week and both teams, creating it when absent.
func (r *ReferenceResolver) ResolveGame(ctx context.Context, key game.Key) (int64, error) {
	if key.OffenseTeamID <= 0 || key.DefenseTeamID <= 0 {
		return 0, fmt.Errorf("%w: game teams are required", ErrInvalidInput)
	}
	if id, ok := r.games[key]; ok {
		return id, nil
	}

	id, exists, err := r.cmds.FindGame(ctx, key)
	if err != nil {
		return 0, crerr.Wrapf(err, "find game season=%d week=%d", key.Season, key.Week)
	}
	if !exists {
		season, week := key.Season, key.Week
		id, err = r.cmds.InsertGame(ctx, game.Game{
			OffenseTeamID: key.OffenseTeamID,
			DefenseTeamID: key.DefenseTeamID,
			Season:        &season,
			Week:          &week,
			Source:        r.source,
		})
		if err != nil {
			return 0, crerr.Wrapf(err, "insert game season=%d week=%d", key.Season, key.Week)
		}
		r.gamesCreated++
	}

	r.games[key] = id
	return id, nil
}

func (r *ReferenceResolver) TeamsCreated() int { return r.teamsCreated }

func (r *ReferenceResolver) GamesCreated() int { return r.gamesCreated }
