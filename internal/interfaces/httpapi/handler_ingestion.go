package httpapi

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/tendalyze/internal/usecase"
)

const (
	uploadFormField = "file"
	multipartMemory = 8 << 20
	gameDateLayout  = "2006-01-02"
)

type ingestPlaysForm struct {
	OffenseTeamID int64  `validate:"omitempty,gt=0"`
	DefenseTeamID int64  `validate:"omitempty,gt=0"`
	GameDate      string `validate:"omitempty,datetime=2006-01-02"`
	Season        *int   `validate:"omitempty,gte=1900,lte=2100"`
	Week          *int   `validate:"omitempty,gte=0,lte=25"`
	Venue         string `validate:"omitempty,max=200"`
	Source        string `validate:"omitempty,max=50"`
}

type ingestPlaysDTO struct {
	GameID         int64   `json:"gameId"`
	GameIDs        []int64 `json:"gameIds"`
	Plays          int     `json:"plays"`
	Drives         int     `json:"drives"`
	TeamsCreated   int     `json:"teamsCreated"`
	GamesCreated   int     `json:"gamesCreated"`
	NullifiedCells int     `json:"nullifiedCells"`
}

type loadTeamsDTO struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

func (h *Handler) IngestPlays(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestPlays")
	defer span.End()

	result, filename, err := h.ingestPlaysUpload(ctx, w, r)
	if err != nil {
		h.logger.WarnContext(ctx, "ingest plays failed", "filename", filename, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, ingestPlaysToDTO(result))
}

func (h *Handler) IngestTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestTeams")
	defer span.End()

	result, filename, err := h.loadTeamsUpload(ctx, w, r)
	if err != nil {
		h.logger.WarnContext(ctx, "load teams failed", "filename", filename, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, loadTeamsDTO{Inserted: result.Inserted, Skipped: result.Skipped})
}

func (h *Handler) ingestPlaysUpload(ctx context.Context, w http.ResponseWriter, r *http.Request) (usecase.IngestPlaysResult, string, error) {
	file, header, err := h.openUpload(w, r)
	if err != nil {
		return usecase.IngestPlaysResult{}, "", err
	}
	defer file.Close()

	input, err := h.playsInput(ctx, r)
	if err != nil {
		return usecase.IngestPlaysResult{}, header.Filename, err
	}

	result, err := h.ingestion.IngestPlays(ctx, file, input)
	return result, header.Filename, err
}

func (h *Handler) loadTeamsUpload(ctx context.Context, w http.ResponseWriter, r *http.Request) (usecase.LoadTeamsResult, string, error) {
	file, header, err := h.openUpload(w, r)
	if err != nil {
		return usecase.LoadTeamsResult{}, "", err
	}
	defer file.Close()

	result, err := h.roster.LoadTeamsCSV(ctx, file)
	return result, header.Filename, err
}

// openUpload caps the request body at the configured limit before parsing.
func (h *Handler) openUpload(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.uploadMaxBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return nil, nil, fmt.Errorf("upload exceeds %d bytes: %w", h.uploadMaxBytes, err)
		}
		return nil, nil, fmt.Errorf("%w: parse multipart form: %v", usecase.ErrInvalidInput, err)
	}

	file, header, err := r.FormFile(uploadFormField)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: form field %q is required", usecase.ErrInvalidInput, uploadFormField)
	}
	return file, header, nil
}

func (h *Handler) playsInput(ctx context.Context, r *http.Request) (usecase.IngestPlaysInput, error) {
	form, err := parsePlaysForm(r)
	if err != nil {
		return usecase.IngestPlaysInput{}, err
	}
	if err := h.validateRequest(ctx, form); err != nil {
		return usecase.IngestPlaysInput{}, err
	}

	input := usecase.IngestPlaysInput{
		OffenseTeamID: form.OffenseTeamID,
		DefenseTeamID: form.DefenseTeamID,
		Season:        form.Season,
		Week:          form.Week,
		Source:        form.Source,
	}
	if form.Venue != "" {
		venue := form.Venue
		input.Venue = &venue
	}
	if form.GameDate != "" {
		date, err := time.Parse(gameDateLayout, form.GameDate)
		if err != nil {
			return usecase.IngestPlaysInput{}, fmt.Errorf("%w: game_date: %v", usecase.ErrInvalidInput, err)
		}
		input.GameDate = &date
	}
	return input, nil
}

func parsePlaysForm(r *http.Request) (ingestPlaysForm, error) {
	var (
		form ingestPlaysForm
		err  error
	)
	if form.OffenseTeamID, err = formInt64(r, "offense_team_id"); err != nil {
		return ingestPlaysForm{}, err
	}
	if form.DefenseTeamID, err = formInt64(r, "defense_team_id"); err != nil {
		return ingestPlaysForm{}, err
	}
	if form.Season, err = formOptionalInt(r, "season"); err != nil {
		return ingestPlaysForm{}, err
	}
	if form.Week, err = formOptionalInt(r, "week"); err != nil {
		return ingestPlaysForm{}, err
	}
	form.GameDate = strings.TrimSpace(r.FormValue("game_date"))
	form.Venue = strings.TrimSpace(r.FormValue("venue"))
	form.Source = strings.TrimSpace(r.FormValue("source"))
	return form, nil
}

func formInt64(r *http.Request, key string) (int64, error) {
	raw := strings.TrimSpace(r.FormValue(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return v, nil
}

func formOptionalInt(r *http.Request, key string) (*int, error) {
	raw := strings.TrimSpace(r.FormValue(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return &v, nil
}

func ingestPlaysToDTO(v usecase.IngestPlaysResult) ingestPlaysDTO {
	gameIDs := v.GameIDs
	if gameIDs == nil {
		gameIDs = []int64{}
	}
	return ingestPlaysDTO{
		GameID:         v.GameID,
		GameIDs:        gameIDs,
		Plays:          v.Plays,
		Drives:         v.Drives,
		TeamsCreated:   v.TeamsCreated,
		GamesCreated:   v.GamesCreated,
		NullifiedCells: v.NullifiedCells,
	}
}
