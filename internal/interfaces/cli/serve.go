package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/SolBenven/proyecto-final/internal/application/adminops"
	"github.com/SolBenven/proyecto-final/internal/application/analytics"
	"github.com/SolBenven/proyecto-final/internal/application/intake"
	"github.com/SolBenven/proyecto-final/internal/config"
	"github.com/SolBenven/proyecto-final/internal/domain/claim"
	"github.com/SolBenven/proyecto-final/internal/domain/department"
	"github.com/SolBenven/proyecto-final/internal/domain/notification"
	redisinfra "github.com/SolBenven/proyecto-final/internal/infrastructure/cache/redis"
	"github.com/SolBenven/proyecto-final/internal/infrastructure/database/postgres"
	"github.com/SolBenven/proyecto-final/internal/infrastructure/messaging/kafka"
	"github.com/SolBenven/proyecto-final/internal/infrastructure/monitoring/logging"
	"github.com/SolBenven/proyecto-final/internal/infrastructure/monitoring/metrics"
	miniostore "github.com/SolBenven/proyecto-final/internal/infrastructure/storage/minio"
	"github.com/SolBenven/proyecto-final/internal/intelligence/deptclass"
	"github.com/SolBenven/proyecto-final/internal/intelligence/similarity"
	httpserver "github.com/SolBenven/proyecto-final/internal/interfaces/http"
	"github.com/SolBenven/proyecto-final/internal/interfaces/http/handlers"
	"github.com/SolBenven/proyecto-final/pkg/errors"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the claim-routing API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			log := newLogger(cfg)
			defer log.Sync()
			return RunServer(cmd.Context(), cfg, log)
		},
	}
}

// RunServer wires the full dependency graph and serves until the context is
// cancelled or a termination signal arrives.
func RunServer(ctx context.Context, cfg *config.Config, log logging.Logger) error {
	db, err := postgres.Connect(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Migrate(db, cfg.Database, log); err != nil {
		return err
	}

	// The unread-count cache is optional: a broken redis degrades to
	// database counts instead of blocking startup.
	var counter notification.UnreadCounter = redisinfra.NopCounter{}
	if redisClient, err := redisinfra.Connect(ctx, cfg.Redis, log); err != nil {
		log.Warn("redis unavailable, unread counts served from the database", logging.Err(err))
	} else {
		defer redisClient.Close()
		counter = redisinfra.NewUnreadCounter(redisClient, cfg.Redis, log)
	}

	artifacts, err := miniostore.NewArtifactStore(ctx, cfg.MinIO, log)
	if err != nil {
		return err
	}

	var publisher claim.EventPublisher = claim.NopPublisher{}
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka, log)
		defer producer.Close()
		publisher = producer
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	m := metrics.New(registry)

	claimRepo := postgres.NewClaimRepository(db)
	deptRepo := postgres.NewDepartmentRepository(db)
	notifRepo := postgres.NewNotificationRepository(db)
	tx := postgres.NewTxRunner(db)

	classifier := deptclass.NewService(deptclass.Config{
		ConfidenceThreshold: cfg.Classifier.ConfidenceThreshold,
		VectorizerKey:       cfg.Classifier.VectorizerKey,
		ModelKey:            cfg.Classifier.ModelKey,
		MaxFeatures:         cfg.Classifier.MaxFeatures,
		FallbackLabel:       fallbackLabel(ctx, deptRepo, log),
	}, artifacts, log)

	finder := similarity.NewFinder(similarity.Config{
		Threshold:   cfg.Similarity.Threshold,
		Limit:       cfg.Similarity.Limit,
		MaxFeatures: cfg.Similarity.MaxFeatures,
	}, log)

	claims := claim.NewService(claimRepo, notifRepo, deptRepo, counter, tx, publisher, log)
	depts := department.NewService(deptRepo, log)
	notifications := notification.NewService(notifRepo, counter, log)
	intakeSvc := intake.NewService(claims, claimRepo, deptRepo, classifier, finder, m, log)
	adminSvc := adminops.NewService(claims, claimRepo, depts, m, log)
	analyticsSvc := analytics.NewService(claimRepo, log)

	router := httpserver.NewRouter(httpserver.RouterConfig{
		ClaimHandler:        handlers.NewClaimHandler(intakeSvc, claims),
		AdminHandler:        handlers.NewAdminHandler(adminSvc),
		NotificationHandler: handlers.NewNotificationHandler(notifications),
		DepartmentHandler:   handlers.NewDepartmentHandler(depts),
		AnalyticsHandler:    handlers.NewAnalyticsHandler(analyticsSvc),
		HealthHandler:       handlers.NewHealthHandler(db, classifier),
		Logger:              log,
		Metrics:             m,
		Gatherer:            registry,
		Mode:                cfg.Server.Mode,
	})
	server := httpserver.NewServer(cfg.Server, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	case sig := <-quit:
		log.Info("shutdown signal received", logging.String("signal", sig.String()))
	}

	if err := server.Stop(context.Background()); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "graceful shutdown failed")
	}
	return <-errCh
}

// fallbackLabel resolves the technical secretariat's internal name for the
// classifier's low-confidence substitution.  Missing configuration is not
// fatal here; intake applies its own fallback when the label cannot be
// resolved.
func fallbackLabel(ctx context.Context, deptRepo department.Repository, log logging.Logger) string {
	dept, err := deptRepo.GetTechnicalSecretariat(ctx)
	if err != nil {
		log.Warn("technical secretariat not found, classifier fallback label unset", logging.Err(err))
		return ""
	}
	return dept.Name
}
