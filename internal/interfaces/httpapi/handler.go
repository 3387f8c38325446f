package httpapi

import (
	"context"
	"fmt"
	"html/template"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/tendalyze/internal/domain/game"
	"github.com/riskibarqy/tendalyze/internal/domain/report"
	"github.com/riskibarqy/tendalyze/internal/domain/team"
	"github.com/riskibarqy/tendalyze/internal/platform/logging"
	"github.com/riskibarqy/tendalyze/internal/usecase"
)

type PlayIngester interface {
	IngestPlays(ctx context.Context, src io.Reader, input usecase.IngestPlaysInput) (usecase.IngestPlaysResult, error)
	Mode() usecase.IngestMode
}

type RosterLoader interface {
	LoadTeamsCSV(ctx context.Context, src io.Reader) (usecase.LoadTeamsResult, error)
}

type ReportReader interface {
	GetSummary(ctx context.Context, gameID int64, top int) (report.Summary, error)
	ListTeams(ctx context.Context) ([]team.Team, error)
	ListGames(ctx context.Context) ([]game.Listing, error)
}

type StatusChecker interface {
	Ready(ctx context.Context) error
	Check(ctx context.Context) (usecase.StoreStatus, error)
}

type Services struct {
	Ingestion PlayIngester
	Roster    RosterLoader
	Reports   ReportReader
	Status    StatusChecker
}

type Handler struct {
	ingestion      PlayIngester
	roster         RosterLoader
	reports        ReportReader
	status         StatusChecker
	uploadMaxBytes int64
	logger         *logging.Logger
	validator      *validator.Validate
	dashboard      *template.Template
}

func NewHandler(services Services, uploadMaxBytes int64, logger *logging.Logger) (*Handler, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if uploadMaxBytes <= 0 {
		return nil, fmt.Errorf("upload max bytes must be > 0")
	}

	tmpl, err := parseDashboardTemplate()
	if err != nil {
		return nil, err
	}

	return &Handler{
		ingestion:      services.Ingestion,
		roster:         services.Roster,
		reports:        services.Reports,
		status:         services.Status,
		uploadMaxBytes: uploadMaxBytes,
		logger:         logger,
		validator:      validator.New(),
		dashboard:      tmpl,
	}, nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
