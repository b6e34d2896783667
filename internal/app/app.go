package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/maccabipedia/clubstats/external/cargoquery"
	"github.com/maccabipedia/clubstats/internal/config"
	"github.com/maccabipedia/clubstats/internal/domain/games"
	"github.com/maccabipedia/clubstats/internal/domain/match"
	"github.com/maccabipedia/clubstats/internal/domain/rawdata"
	"github.com/maccabipedia/clubstats/internal/infrastructure/repository/memory"
	"github.com/maccabipedia/clubstats/internal/infrastructure/repository/postgres"
	"github.com/maccabipedia/clubstats/internal/interfaces/httpapi"
	"github.com/maccabipedia/clubstats/internal/platform/cache"
	"github.com/maccabipedia/clubstats/internal/platform/logging"
	"github.com/maccabipedia/clubstats/internal/usecase"
)

// App wires the full pipeline: fetch or read raw match records, ingest and
// reconcile them, then serve the analytical services over the loaded set.
type App struct {
	cfg    config.Config
	logger *logging.Logger

	Repo      *memory.MatchRepository
	Ingestion *usecase.IngestionService
	Reconcile *usecase.ReconcileService
	Scanner   *usecase.ErrorScanService
	Streaks   *usecase.StreakService
	Comebacks *usecase.ComebackService
	Rankings  *usecase.RankingService
}

func New(cfg config.Config, logger *logging.Logger) *App {
	if logger == nil {
		logger = logging.Default()
	}

	var memo *cache.Store
	if cfg.CacheEnabled {
		memo = cache.NewStore(cfg.CacheTTL)
	}

	return &App{
		cfg:       cfg,
		logger:    logger,
		Repo:      memory.NewMatchRepository(nil),
		Ingestion: usecase.NewIngestionService(match.NameVariants(cfg.ClubNameVariants), cfg.IngestWorkers, logger),
		Reconcile: usecase.NewReconcileService(logger),
		Scanner:   usecase.NewErrorScanService(cfg.ScanWorkers, logger),
		Streaks:   usecase.NewStreakService(memo),
		Comebacks: usecase.NewComebackService(),
		Rankings:  usecase.NewRankingService(),
	}
}

// LoadDataset pulls raw records, runs the ingest/reconcile/correct pipeline
// and installs the result in the repository. With no cargo endpoint and no
// record files it falls back to the bundled sample set.
func (a *App) LoadDataset(ctx context.Context, corrections []usecase.Correction) error {
	records, err := a.loadRecords(ctx)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		a.logger.InfoContext(ctx, "no raw records found, loading sample dataset")
		a.Repo.Replace(memory.SeedMatches())
		return nil
	}

	matches, rejected, err := a.Ingestion.Ingest(ctx, records)
	if err != nil {
		return fmt.Errorf("ingest records: %w", err)
	}
	if rejected > 0 {
		a.logger.WarnContext(ctx, "records rejected during ingestion", "rejected", rejected)
	}

	a.Reconcile.ReconcileAll(ctx, matches)
	if len(corrections) > 0 {
		matches = usecase.NewCorrectionService(corrections, a.logger).Apply(ctx, matches)
	}

	a.Repo.Replace(matches)
	a.logger.InfoContext(ctx, "dataset loaded", "matches", len(matches))
	return nil
}

func (a *App) loadRecords(ctx context.Context) ([]rawdata.MatchRecord, error) {
	if a.cfg.CargoEnabled {
		client := cargoquery.NewClient(cargoquery.ClientConfig{
			BaseURL:        a.cfg.CargoBaseURL,
			Timeout:        a.cfg.CargoTimeout,
			MaxRetries:     a.cfg.CargoMaxRetries,
			Logger:         a.logger,
			CircuitBreaker: a.cfg.CargoCircuit,
		})
		return client.FetchMatchRecords(ctx)
	}
	return readRecordFiles(a.cfg.DataDir)
}

// readRecordFiles reads every *.json file under dir; each file holds an
// array of match records.
func readRecordFiles(dir string) ([]rawdata.MatchRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read data dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var out []rawdata.MatchRecord
	for _, name := range names {
		path := filepath.Join(dir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		var records []rawdata.MatchRecord
		if err := sonic.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		out = append(out, records...)
	}
	return out, nil
}

// ScanDataset reports consistency findings over the loaded set.
func (a *App) ScanDataset(ctx context.Context) ([]usecase.Finding, error) {
	matches, err := a.Repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return a.Scanner.Scan(ctx, games.New(matches, "all games")), nil
}

// ExportRows flattens the loaded set into the relational sink.
func (a *App) ExportRows(ctx context.Context) error {
	if !a.cfg.ExportEnabled {
		return nil
	}

	db, err := postgres.Open(a.cfg.DBURL)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	matches, err := a.Repo.ListAll(ctx)
	if err != nil {
		return err
	}

	exporter := usecase.NewExportService(postgres.NewExportRepository(db))
	if err := exporter.Persist(ctx, games.New(matches, "all games")); err != nil {
		return fmt.Errorf("persist export rows: %w", err)
	}
	a.logger.InfoContext(ctx, "export complete", "matches", len(matches))
	return nil
}

func (a *App) HTTPServer() (*http.Server, error) {
	if strings.TrimSpace(a.cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(a.Repo, a.Streaks, a.Comebacks, a.Rankings, a.logger)
	return &http.Server{
		Addr:         a.cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, a.logger),
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
	}, nil
}
