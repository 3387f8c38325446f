package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/tendalyze/internal/domain/game"
	"github.com/riskibarqy/tendalyze/internal/domain/report"
	"github.com/riskibarqy/tendalyze/internal/domain/team"
	"github.com/riskibarqy/tendalyze/internal/usecase"
)

const allGamesParam = "all"

type teamDTO struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Mascot   *string `json:"mascot,omitempty"`
	City     *string `json:"city,omitempty"`
	State    *string `json:"state,omitempty"`
	Division *string `json:"division,omitempty"`
	Region   *string `json:"region,omitempty"`
	District *string `json:"district,omitempty"`
}

type gameDTO struct {
	ID          int64   `json:"id"`
	Label       string  `json:"label"`
	OffenseTeam string  `json:"offenseTeam"`
	DefenseTeam string  `json:"defenseTeam"`
	Date        string  `json:"date,omitempty"`
	Season      *int    `json:"season,omitempty"`
	Week        *int    `json:"week,omitempty"`
	Venue       *string `json:"venue,omitempty"`
	Source      string  `json:"source"`
	Plays       int     `json:"plays"`
}

type summaryDTO struct {
	GameID        int64           `json:"gameId"`
	TotalPlays    int             `json:"totalPlays"`
	RunShare      float64         `json:"runShare"`
	PassShare     float64         `json:"passShare"`
	PlayTypes     []labelCountDTO `json:"playTypes"`
	TopFormations []labelCountDTO `json:"topFormations"`
	YardsByDown   []downYardsDTO  `json:"yardsByDown"`
}

type labelCountDTO struct {
	Label string `json:"label"`
	Plays int    `json:"plays"`
}

type downYardsDTO struct {
	Down         int      `json:"down"`
	Plays        int      `json:"plays"`
	AverageYards *float64 `json:"averageYards"`
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.reports.ListTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGames")
	defer span.End()

	games, err := h.reports.ListGames(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list games failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameDTO, 0, len(games))
	for _, g := range games {
		items = append(items, gameToDTO(g))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetGameSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameSummary")
	defer span.End()

	gameID, err := parseGameID(r.PathValue("gameID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	top, err := parseTop(r.URL.Query().Get("top"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.reports.GetSummary(ctx, gameID, top)
	if err != nil {
		h.logger.WarnContext(ctx, "get summary failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summaryToDTO(summary))
}

// parseGameID accepts a positive id or "all".
func parseGameID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, allGamesParam) {
		return report.AllGames, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: game id must be a positive integer or %q", usecase.ErrInvalidInput, allGamesParam)
	}
	return id, nil
}

func parseTop(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	top, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: top must be an integer", usecase.ErrInvalidInput)
	}
	return top, nil
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:       v.ID,
		Name:     v.Name,
		Mascot:   v.Mascot,
		City:     v.City,
		State:    v.State,
		Division: v.Division,
		Region:   v.Region,
		District: v.District,
	}
}

func gameToDTO(v game.Listing) gameDTO {
	out := gameDTO{
		ID:          v.ID,
		Label:       v.Label(),
		OffenseTeam: v.OffenseTeam,
		DefenseTeam: v.DefenseTeam,
		Season:      v.Season,
		Week:        v.Week,
		Venue:       v.Venue,
		Source:      v.Source,
		Plays:       v.PlayCount,
	}
	if v.Date != nil {
		out.Date = v.Date.Format(time.DateOnly)
	}
	return out
}

func summaryToDTO(v report.Summary) summaryDTO {
	run, pass := v.RunPassSplit()
	out := summaryDTO{
		GameID:        v.GameID,
		TotalPlays:    v.TotalPlays,
		RunShare:      run,
		PassShare:     pass,
		PlayTypes:     make([]labelCountDTO, 0, len(v.PlayTypes)),
		TopFormations: make([]labelCountDTO, 0, len(v.TopFormations)),
		YardsByDown:   make([]downYardsDTO, 0, len(v.YardsByDown)),
	}
	for _, item := range v.PlayTypes {
		out.PlayTypes = append(out.PlayTypes, labelCountDTO{Label: item.PlayType, Plays: item.Plays})
	}
	for _, item := range v.TopFormations {
		out.TopFormations = append(out.TopFormations, labelCountDTO{Label: item.Formation, Plays: item.Plays})
	}
	for _, item := range v.YardsByDown {
		out.YardsByDown = append(out.YardsByDown, downYardsDTO{Down: item.Down, Plays: item.Plays, AverageYards: item.AverageYards})
	}
	return out
}
