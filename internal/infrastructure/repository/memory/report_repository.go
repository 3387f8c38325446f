package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/tendalyze/internal/domain/game"
	"github.com/riskibarqy/tendalyze/internal/domain/play"
	"github.com/riskibarqy/tendalyze/internal/domain/report"
	"github.com/riskibarqy/tendalyze/internal/domain/team"
)

// Read-side queries over committed data.

func (s *Store) CountPlays(_ context.Context, gameID int64) (int, error) {
	return len(s.playsOf(gameID)), nil
}

func (s *Store) CountByPlayType(_ context.Context, gameID int64) ([]report.PlayTypeCount, error) {
	counts := countBy(s.playsOf(gameID), func(item play.Play) *string { return item.PlayType })
	out := make([]report.PlayTypeCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, report.PlayTypeCount{PlayType: c.label, Plays: c.plays})
	}
	return out, nil
}

func (s *Store) TopFormations(_ context.Context, gameID int64, limit int) ([]report.FormationCount, error) {
	withFormation := make([]play.Play, 0)
	for _, item := range s.playsOf(gameID) {
		if item.FormationNorm != nil {
			withFormation = append(withFormation, item)
		}
	}

	counts := countBy(withFormation, func(item play.Play) *string { return item.FormationNorm })
	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	out := make([]report.FormationCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, report.FormationCount{Formation: c.label, Plays: c.plays})
	}
	return out, nil
}

func (s *Store) AverageYardsByDown(_ context.Context, gameID int64) ([]report.DownYards, error) {
	type acc struct {
		plays, withYards, yards int
	}
	byDown := make(map[int]*acc)
	for _, item := range s.playsOf(gameID) {
		if item.Down == nil {
			continue
		}
		a, ok := byDown[*item.Down]
		if !ok {
			a = &acc{}
			byDown[*item.Down] = a
		}
		a.plays++
		if item.YardsGained != nil {
			a.withYards++
			a.yards += *item.YardsGained
		}
	}

	out := make([]report.DownYards, 0, len(byDown))
	for down, a := range byDown {
		row := report.DownYards{Down: down, Plays: a.plays}
		if a.withYards > 0 {
			avg := float64(a.yards) / float64(a.withYards)
			row.AverageYards = &avg
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Down < out[j].Down })
	return out, nil
}

type GameRepository struct {
	store *Store
}

func NewGameRepository(store *Store) *GameRepository {
	return &GameRepository{store: store}
}

func (r *GameRepository) List(_ context.Context) ([]game.Listing, error) {
	data := r.store.snapshot()
	names := make(map[int64]string, len(data.teams))
	for _, item := range data.teams {
		names[item.ID] = item.Name
	}
	plays := make(map[int64]int, len(data.games))
	for _, item := range data.plays {
		plays[item.GameID]++
	}

	out := make([]game.Listing, 0, len(data.games))
	for _, item := range data.games {
		out = append(out, game.Listing{
			ID:          item.ID,
			OffenseTeam: names[item.OffenseTeamID],
			DefenseTeam: names[item.DefenseTeamID],
			Date:        item.Date,
			Season:      item.Season,
			Week:        item.Week,
			Venue:       item.Venue,
			Source:      item.Source,
			PlayCount:   plays[item.ID],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *GameRepository) Exists(_ context.Context, id int64) (bool, error) {
	for _, item := range r.store.snapshot().games {
		if item.ID == id {
			return true, nil
		}
	}
	return false, nil
}

type TeamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) *TeamRepository {
	return &TeamRepository{store: store}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	out := append([]team.Team(nil), r.store.snapshot().teams...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) ServerVersion(context.Context) (string, error) {
	return "memory", nil
}

func (s *Store) CountAllPlays(_ context.Context) (int, error) {
	return len(s.snapshot().plays), nil
}

func (s *Store) playsOf(gameID int64) []play.Play {
	data := s.snapshot()
	if gameID == report.AllGames {
		return data.plays
	}
	out := make([]play.Play, 0)
	for _, item := range data.plays {
		if item.GameID == gameID {
			out = append(out, item)
		}
	}
	return out
}

type labelCount struct {
	label string
	plays int
}

func countBy(items []play.Play, column func(play.Play) *string) []labelCount {
	counts := make(map[string]int)
	for _, item := range items {
		label := report.UnknownLabel
		if v := column(item); v != nil {
			label = *v
		}
		counts[label]++
	}

	out := make([]labelCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, labelCount{label: label, plays: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].plays == out[j].plays {
			return out[i].label < out[j].label
		}
		return out[i].plays > out[j].plays
	})
	return out
}

// ListPlays returns committed plays in insertion order; AllGames returns every play.
func (s *Store) ListPlays(_ context.Context, gameID int64) ([]play.Play, error) {
	return append([]play.Play(nil), s.playsOf(gameID)...), nil
}
