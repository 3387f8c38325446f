package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/riskibarqy/tendalyze/internal/app"
	"github.com/riskibarqy/tendalyze/internal/config"
	"github.com/riskibarqy/tendalyze/internal/platform/logging"
	"github.com/riskibarqy/tendalyze/internal/usecase"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	if err := run(os.Args[1], os.Args[2:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd string, args []string, stdout io.Writer) error {
	var (
		plays    playsArgs
		filePath string
		err      error
	)
	switch cmd {
	case "plays":
		if plays, err = parsePlaysArgs(args); err != nil {
			return err
		}
	case "teams":
		if filePath, err = parseTeamsArgs(args); err != nil {
			return err
		}
	case "check":
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", cmd)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if plays.mode != "" {
		cfg.IngestMode = plays.mode
	}

	logger := logging.NewConsole(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := app.OpenDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	services, err := app.NewServices(cfg, db, logger)
	if err != nil {
		return err
	}

	switch cmd {
	case "plays":
		return ingestPlays(ctx, services.Ingestion, plays, stdout)
	case "teams":
		return loadTeams(ctx, services.Roster, filePath, stdout)
	default:
		return checkConnection(ctx, services.Status, stdout)
	}
}

type playsArgs struct {
	file  string
	mode  string
	input usecase.IngestPlaysInput
}

func parsePlaysArgs(args []string) (playsArgs, error) {
	fs := flag.NewFlagSet("plays", flag.ContinueOnError)
	file := fs.String("file", "", "play-by-play CSV export")
	mode := fs.String("mode", "", "single or multi (defaults to INGEST_MODE)")
	offense := fs.Int64("offense", 0, "offense team id (single mode)")
	defense := fs.Int64("defense", 0, "defense team id (single mode)")
	date := fs.String("date", "", "game date, YYYY-MM-DD")
	season := fs.String("season", "", "season year")
	week := fs.String("week", "", "week number")
	venue := fs.String("venue", "", "venue")
	source := fs.String("source", "", "source tag (defaults to INGEST_DEFAULT_SOURCE)")
	if err := fs.Parse(args); err != nil {
		return playsArgs{}, err
	}

	out := playsArgs{
		file: strings.TrimSpace(*file),
		mode: strings.TrimSpace(*mode),
		input: usecase.IngestPlaysInput{
			OffenseTeamID: *offense,
			DefenseTeamID: *defense,
			Source:        *source,
		},
	}
	if out.file == "" && fs.NArg() > 0 {
		out.file = fs.Arg(0)
	}
	if out.file == "" {
		return playsArgs{}, errors.New("plays requires -file")
	}
	if out.mode != "" {
		if _, err := usecase.ParseIngestMode(out.mode); err != nil {
			return playsArgs{}, err
		}
	}

	var err error
	if out.input.Season, err = optionalInt("season", *season); err != nil {
		return playsArgs{}, err
	}
	if out.input.Week, err = optionalInt("week", *week); err != nil {
		return playsArgs{}, err
	}
	if v := strings.TrimSpace(*date); v != "" {
		parsed, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return playsArgs{}, fmt.Errorf("invalid -date %q: %w", v, err)
		}
		out.input.GameDate = &parsed
	}
	if v := strings.TrimSpace(*venue); v != "" {
		out.input.Venue = &v
	}

	return out, nil
}

func parseTeamsArgs(args []string) (string, error) {
	fs := flag.NewFlagSet("teams", flag.ContinueOnError)
	file := fs.String("file", "", "team roster CSV")
	if err := fs.Parse(args); err != nil {
		return "", err
	}

	path := strings.TrimSpace(*file)
	if path == "" && fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	if path == "" {
		return "", errors.New("teams requires -file")
	}
	return path, nil
}

func optionalInt(name, raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid -%s %q: %w", name, raw, err)
	}
	return &v, nil
}

func ingestPlays(ctx context.Context, svc *usecase.IngestionService, args playsArgs, stdout io.Writer) error {
	f, err := os.Open(args.file)
	if err != nil {
		return err
	}
	defer f.Close()

	result, err := svc.IngestPlays(ctx, f, args.input)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "game_id=%d games=%d plays=%d drives=%d teams_created=%d games_created=%d nullified_cells=%d\n",
		result.GameID, len(result.GameIDs), result.Plays, result.Drives, result.TeamsCreated, result.GamesCreated, result.NullifiedCells)
	return nil
}

func loadTeams(ctx context.Context, svc *usecase.TeamRosterService, path string, stdout io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	result, err := svc.LoadTeamsCSV(ctx, f)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "inserted=%d skipped=%d\n", result.Inserted, result.Skipped)
	return nil
}

func checkConnection(ctx context.Context, svc *usecase.StatusService, stdout io.Writer) error {
	status, err := svc.Check(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "connected: %s\n", status.Version)
	fmt.Fprintf(stdout, "plays: %d\n", status.Plays)
	return nil
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <plays|teams|check> [flags]\n", name)
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintf(os.Stderr, "  %s plays -file week1.csv -offense 1 -defense 2 -date 2024-09-06\n", name)
	fmt.Fprintf(os.Stderr, "  %s plays -mode multi -file season.csv\n", name)
	fmt.Fprintf(os.Stderr, "  %s teams -file teams.csv\n", name)
	fmt.Fprintf(os.Stderr, "  %s check\n", name)
}
