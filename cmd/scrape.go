package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/martenlienen/icml-nips-iclr-dataset/internal/api"
	"github.com/martenlienen/icml-nips-iclr-dataset/internal/config"
	"github.com/martenlienen/icml-nips-iclr-dataset/internal/fetch"
	"github.com/martenlienen/icml-nips-iclr-dataset/internal/gate"
	"github.com/martenlienen/icml-nips-iclr-dataset/internal/logging"
	"github.com/martenlienen/icml-nips-iclr-dataset/internal/metrics"
	"github.com/martenlienen/icml-nips-iclr-dataset/internal/progress"
	"github.com/martenlienen/icml-nips-iclr-dataset/internal/progress/sinks"
	"github.com/martenlienen/icml-nips-iclr-dataset/internal/report"
	"github.com/martenlienen/icml-nips-iclr-dataset/internal/scrape"
	"github.com/martenlienen/icml-nips-iclr-dataset/internal/site"
	"github.com/martenlienen/icml-nips-iclr-dataset/internal/storage/postgres"
)

func newScrapeCmd() *cobra.Command {
	var (
		output   string
		parallel int
		retries  int
	)
	cmd := &cobra.Command{
		Use:   "scrape <year|start-end>",
		Short: "Scrape the configured conferences for a year or year range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// The year argument is validated before anything touches the
			// network; a typo should not cost a single request.
			startYear, endYear, err := config.ParseYearRange(args[0])
			if err != nil {
				return err
			}

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output") {
				cfg.Output.Path = output
			}
			if cmd.Flags().Changed("parallel") {
				cfg.Scrape.Parallel = parallel
			}
			if cmd.Flags().Changed("retries") {
				cfg.Scrape.Retries = retries
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return runScrape(cmd.Context(), cfg, startYear, endYear)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "papers.csv", "where to store the dataset")
	cmd.Flags().IntVar(&parallel, "parallel", gate.DefaultCapacity, "number of parallel requests")
	cmd.Flags().IntVar(&retries, "retries", fetch.DefaultAttempts, "attempts per request before giving up")
	return cmd
}

func runScrape(ctx context.Context, cfg config.Config, startYear, endYear int) error {
	logger, err := logging.New(cfg.Development)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	metrics.Init()
	tracker := progress.NewTracker()

	promSink, err := sinks.NewPrometheusSink(nil)
	if err != nil {
		return fmt.Errorf("register progress metrics: %w", err)
	}
	reporter := progress.NewReporter(
		tracker,
		cfg.Scrape.ProgressInterval(),
		sinks.NewLogSink(logger),
		promSink,
	)
	// Wait for the reporter to flush its end-of-run snapshot; the logger
	// sync defer above runs after this one.
	reporterCtx, stopReporter := context.WithCancel(ctx)
	reporterDone := make(chan struct{})
	go func() {
		defer close(reporterDone)
		reporter.Run(reporterCtx)
	}()
	defer func() {
		stopReporter()
		<-reporterDone
	}()

	client := fetch.NewCollyClient(fetch.ClientConfig{
		UserAgent:   cfg.Scrape.UserAgent,
		Timeout:     cfg.Scrape.Timeout(),
		MaxParallel: cfg.Scrape.Parallel,
	})
	fetcher := fetch.New(client, gate.New(cfg.Scrape.Parallel), tracker, cfg.Scrape.Retries, logger)
	loader := scrape.NewLoader(fetcher, site.NewScheduleParser())
	runner := scrape.NewRunner(scrape.NewScraper(loader, logger), logger)

	if cfg.Server.Addr != "" {
		srv := api.NewServer(tracker, runner.RunID().String(), logger)
		srv.Start(cfg.Server.Addr)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("status server shutdown", zap.Error(err))
			}
		}()
	}

	conferences := make([]scrape.Conference, 0, len(cfg.Conferences))
	for _, c := range cfg.Conferences {
		conferences = append(conferences, scrape.Conference{
			Name:      c.Name,
			Host:      c.Host,
			FirstYear: c.FirstYear,
		})
	}

	rows, err := runner.Run(ctx, conferences, startYear, endYear)
	if err != nil {
		return fmt.Errorf("scrape run: %w", err)
	}

	if err := report.WriteCSVFile(cfg.Output.Path, rows); err != nil {
		return err
	}
	logger.Info("dataset written",
		zap.String("path", cfg.Output.Path),
		zap.Int("rows", len(rows)),
	)

	if cfg.DB.DSN != "" {
		if err := storeRows(ctx, cfg, rows, logger); err != nil {
			return err
		}
	}
	return nil
}

func storeRows(ctx context.Context, cfg config.Config, rows []scrape.Row, logger *zap.Logger) error {
	store, err := postgres.NewRowStore(ctx, cfg.DB.DSN, cfg.DB.Table)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := store.InsertRows(ctx, rows); err != nil {
		return err
	}
	logger.Info("dataset stored in postgres",
		zap.String("table", cfg.DB.Table),
		zap.Int("rows", len(rows)),
	)
	return nil
}
