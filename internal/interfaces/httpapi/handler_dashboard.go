package httpapi

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/riskibarqy/tendalyze/internal/domain/game"
	"github.com/riskibarqy/tendalyze/internal/domain/report"
	"github.com/riskibarqy/tendalyze/internal/domain/team"
	"github.com/riskibarqy/tendalyze/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templateFS embed.FS

var dashboardTabs = []string{"overview", "formations", "downs"}

var tabTitles = func() map[string]string {
	caser := cases.Title(language.English)
	out := make(map[string]string, len(dashboardTabs))
	for _, key := range dashboardTabs {
		out[key] = caser.String(key)
	}
	return out
}()

type dashboardTab struct {
	Key    string
	Title  string
	Active bool
}

type dashboardState struct {
	GameID     int64
	Tab        string
	Flash      string
	FlashError bool
}

type dashboardView struct {
	StoreOK      bool
	StoreVersion string
	StorePlays   int
	MultiMode    bool
	Teams        []team.Team
	Games        []game.Listing
	SelectedGame int64
	Tabs         []dashboardTab
	Tab          string
	Summary      *report.Summary
	RunShare     float64
	PassShare    float64
	Flash        string
	FlashError   bool
}

func parseDashboardTemplate() (*template.Template, error) {
	tmpl, err := template.New("dashboard.html").Funcs(template.FuncMap{
		"pct": func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
		"yards": func(v *float64) string {
			if v == nil {
				return "-"
			}
			return fmt.Sprintf("%.2f", *v)
		},
	}).ParseFS(templateFS, "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("parse dashboard template: %w", err)
	}
	return tmpl, nil
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Dashboard")
	defer span.End()

	state := dashboardState{Tab: r.URL.Query().Get("tab")}
	gameID, err := parseGameID(r.URL.Query().Get("game"))
	if err != nil {
		state.Flash, state.FlashError = err.Error(), true
	}
	state.GameID = gameID

	h.renderDashboard(ctx, w, http.StatusOK, state)
}

func (h *Handler) DashboardIngestPlays(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DashboardIngestPlays")
	defer span.End()

	result, filename, err := h.ingestPlaysUpload(ctx, w, r)
	if err != nil {
		h.logger.WarnContext(ctx, "dashboard ingest plays failed", "filename", filename, "error", err)
		h.renderDashboardError(ctx, w, err)
		return
	}

	h.renderDashboard(ctx, w, http.StatusOK, dashboardState{
		GameID: result.GameID,
		Flash: fmt.Sprintf("Ingested %d plays across %d drives into %d game(s); %d cells were blank or malformed.",
			result.Plays, result.Drives, len(result.GameIDs), result.NullifiedCells),
	})
}

func (h *Handler) DashboardIngestTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DashboardIngestTeams")
	defer span.End()

	result, filename, err := h.loadTeamsUpload(ctx, w, r)
	if err != nil {
		h.logger.WarnContext(ctx, "dashboard load teams failed", "filename", filename, "error", err)
		h.renderDashboardError(ctx, w, err)
		return
	}

	h.renderDashboard(ctx, w, http.StatusOK, dashboardState{
		Flash: fmt.Sprintf("Loaded teams: %d inserted, %d skipped.", result.Inserted, result.Skipped),
	})
}

func (h *Handler) renderDashboardError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	msg := err.Error()
	if mapped.HTTPStatus == http.StatusInternalServerError {
		msg = "internal server error"
	}
	h.renderDashboard(ctx, w, mapped.HTTPStatus, dashboardState{Flash: msg, FlashError: true})
}

// renderDashboard degrades per section: a failed query leaves its section
// empty and surfaces the error in the flash line.
func (h *Handler) renderDashboard(ctx context.Context, w http.ResponseWriter, status int, state dashboardState) {
	view := dashboardView{
		MultiMode:    h.ingestion.Mode() == usecase.IngestModeMultiGame,
		SelectedGame: state.GameID,
		Tab:          activeTab(state.Tab),
		Flash:        state.Flash,
		FlashError:   state.FlashError,
	}
	for _, key := range dashboardTabs {
		view.Tabs = append(view.Tabs, dashboardTab{Key: key, Title: tabTitles[key], Active: key == view.Tab})
	}

	var problems []string
	if st, err := h.status.Check(ctx); err != nil {
		h.logger.WarnContext(ctx, "dashboard store check failed", "error", err)
	} else {
		view.StoreOK, view.StoreVersion, view.StorePlays = true, st.Version, st.Plays
	}

	if view.StoreOK {
		var err error
		if view.Teams, err = h.reports.ListTeams(ctx); err != nil {
			problems = append(problems, "teams unavailable")
			h.logger.WarnContext(ctx, "dashboard list teams failed", "error", err)
		}
		if view.Games, err = h.reports.ListGames(ctx); err != nil {
			problems = append(problems, "games unavailable")
			h.logger.WarnContext(ctx, "dashboard list games failed", "error", err)
		}
		summary, err := h.reports.GetSummary(ctx, state.GameID, 0)
		if err != nil {
			problems = append(problems, err.Error())
			h.logger.WarnContext(ctx, "dashboard summary failed", "game_id", state.GameID, "error", err)
		} else {
			view.Summary = &summary
			view.RunShare, view.PassShare = summary.RunPassSplit()
		}
	}
	if len(problems) > 0 && view.Flash == "" {
		view.Flash, view.FlashError = strings.Join(problems, "; "), true
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := h.dashboard.Execute(buf, view); err != nil {
		h.logger.ErrorContext(ctx, "render dashboard failed", "error", err)
		writeInternalError(ctx, w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func activeTab(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	for _, key := range dashboardTabs {
		if key == raw {
			return key
		}
	}
	return dashboardTabs[0]
}
