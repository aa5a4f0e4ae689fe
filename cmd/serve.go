package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kozaktomas/namevibe/internal/admission"
	"github.com/kozaktomas/namevibe/internal/ai"
	"github.com/kozaktomas/namevibe/internal/config"
	"github.com/kozaktomas/namevibe/internal/constants"
	"github.com/kozaktomas/namevibe/internal/database"
	"github.com/kozaktomas/namevibe/internal/database/mariadb"
	"github.com/kozaktomas/namevibe/internal/database/postgres"
	"github.com/kozaktomas/namevibe/internal/logging"
	"github.com/kozaktomas/namevibe/internal/metrics"
	"github.com/kozaktomas/namevibe/internal/recommend"
	"github.com/kozaktomas/namevibe/internal/web"
	"github.com/kozaktomas/namevibe/internal/web/handlers"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the namevibe HTTP API.
The API accepts a face photo with a gender preference and answers with a
recommended name and its companions. Names and companions are read from
PostgreSQL, or from MariaDB when DATASET_MYSQL_DSN is set.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "Port to listen on (overrides WEB_PORT)")
	serveCmd.Flags().String("host", "", "Host to bind to (overrides WEB_HOST)")
	serveCmd.Flags().Bool("no-metrics", false, "Do not expose /metrics")
}

// applyServeFlags lets explicit flags win over the environment.
func applyServeFlags(cmd *cobra.Command, cfg *config.Config) {
	if port := mustGetInt(cmd, "port"); port > 0 {
		cfg.Web.Port = port
	}
	if host := mustGetString(cmd, "host"); host != "" {
		cfg.Web.Host = host
	}
}

// openDataset picks the dataset backend. Rate events always use PostgreSQL.
// The returned pinger is nil when the dataset shares the PostgreSQL pool.
func openDataset(cfg *config.Config, pool *postgres.Pool, log zerolog.Logger) (database.DatasetReader, handlers.Pinger, func(), error) {
	if cfg.Dataset.MySQLDSN == "" {
		log.Info().Msg("reading dataset from PostgreSQL")
		return postgres.NewDatasetRepository(pool), nil, func() {}, nil
	}

	mysqlPool, err := mariadb.NewPool(cfg.Dataset.MySQLDSN)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to MariaDB dataset: %w", err)
	}
	log.Info().Msg("reading dataset from MariaDB")
	closeFn := func() {
		if err := mysqlPool.Close(); err != nil {
			log.Warn().Err(err).Msg("closing MariaDB pool")
		}
	}
	return mysqlPool, mysqlPool, closeFn, nil
}

// newClassifier builds the configured vision provider behind a circuit breaker.
func newClassifier(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*ai.BreakerClassifier, error) {
	provider, err := ai.NewFromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	breakerCfg := ai.DefaultBreakerConfig()
	if m != nil {
		breakerCfg.OnStateChange = m.ObserveBreakerState
		m.TrackBreaker(provider.Name())
	}
	return ai.NewBreakerClassifier(provider, breakerCfg), nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	applyServeFlags(cmd, cfg)
	log := logging.New(cfg.Log)

	if cfg.Database.URL == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info().Msg("connecting to PostgreSQL")
	pool, applied, err := postgres.Open(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	defer pool.Close()
	for _, name := range applied {
		log.Info().Str("migration", name).Msg("applied migration")
	}

	dataset, datasetPinger, closeDataset, err := openDataset(cfg, pool, log)
	if err != nil {
		return err
	}
	defer closeDataset()

	var m *metrics.Metrics
	if !mustGetBool(cmd, "no-metrics") {
		m = metrics.New()
	}

	classifier, err := newClassifier(ctx, cfg, m)
	if err != nil {
		return fmt.Errorf("failed to create vision provider: %w", err)
	}

	gateOpts := []admission.Option{admission.WithLogger(log)}
	matcherOpts := []recommend.Option{
		recommend.WithTimeouts(cfg.Timeouts.Classify, cfg.Timeouts.Store),
		recommend.WithLogger(log),
	}
	if m != nil {
		gateOpts = append(gateOpts, admission.WithDecisionHook(func(d admission.Decision) {
			m.ObserveAdmission(d.Admitted, d.Failed)
		}))
		matcherOpts = append(matcherOpts, recommend.WithObserver(m))
	}
	if cfg.DebugOverrideReady() {
		matcherOpts = append(matcherOpts, recommend.WithDebugIdentifier(cfg.Debug.Identifier))
		log.Warn().Str("identifier", cfg.Debug.Identifier).Msg("debug override enabled")
	}

	gate := admission.NewGate(postgres.NewRateEventRepository(pool), cfg.Admission.Limit, cfg.Admission.Window, gateOpts...)
	matcher := recommend.NewMatcher(dataset, gate, classifier, matcherOpts...)

	health := map[string]handlers.Pinger{
		"postgres":   pool,
		"classifier": classifier,
	}
	if datasetPinger != nil {
		health["mariadb"] = datasetPinger
	}
	deps := web.Dependencies{
		Matcher: matcher,
		Health:  health,
		Logger:  log,
	}
	if m != nil {
		deps.Metrics = m.Handler()
	}
	server := web.NewServer(cfg, deps)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, constants.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("error during shutdown")
		}
	}()

	log.Info().
		Str("provider", classifier.Name()).
		Int("admission_limit", cfg.Admission.Limit).
		Dur("admission_window", cfg.Admission.Window).
		Msgf("starting namevibe on http://%s:%d", cfg.Web.Host, cfg.Web.Port)

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
