package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/dentalink/loyalty-card-service/internal/app/background"
	"github.com/dentalink/loyalty-card-service/internal/codegen"
	"github.com/dentalink/loyalty-card-service/internal/config"
	"github.com/dentalink/loyalty-card-service/internal/domain"
	publisher "github.com/dentalink/loyalty-card-service/internal/infrastructure/kafka"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/metrics"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/migrate"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/postgres"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/postgres/repository"
	"github.com/dentalink/loyalty-card-service/internal/usecase"
	"github.com/dentalink/loyalty-card-service/internal/usecase/card"
	"github.com/dentalink/loyalty-card-service/internal/usecase/reconciler"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	setupLogger(cfg.LogConfig)
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.CardDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.CardDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	pub := publisher.NewDefaultKafkaPublisher(brokers)

	cardMetrics := metrics.NewCardMetrics()

	// Init repos
	cardRepo := repository.NewDefaultCardRepository(db)
	batchRepo := repository.NewDefaultBatchRepository(db)
	clinicRepo := repository.NewDefaultClinicRepository(db)
	perkRepo := repository.NewDefaultPerkRepository(db)
	historyRepo := repository.NewDefaultHistoryRepository(db)
	versionRepo := repository.NewDefaultVersionRepository(db)
	draftRepo := repository.NewDefaultDraftRepository(db)

	// Init usecases
	versionUsecase := usecase.NewDefaultVersionUsecase(versionRepo, pub, cfg.KafkaService.Topic, cardMetrics)
	perkUsecase := usecase.NewDefaultPerkUsecase(perkRepo, clinicRepo, versionUsecase, cardMetrics)
	draftUsecase := usecase.NewDefaultDraftUsecase(draftRepo, cfg.Drafts.TTL, cfg.Drafts.DebounceDelay, cardMetrics)

	generator, err := codegen.NewGenerator()
	if err != nil {
		log.Fatalf("failed to init code generator: %v", err)
	}

	cardUsecase := card.NewDefaultCardUsecase(
		cardRepo,
		batchRepo,
		clinicRepo,
		historyRepo,
		perkUsecase,
		versionUsecase,
		pub,
		cfg.KafkaService.Topic,
		cardMetrics,
		generator,
		cfg.Generation,
		cfg.Lifecycle,
	)

	// Version reconciler
	rec := reconciler.NewReconciler(versionRepo, cfg.Sync.PollInterval, cfg.Sync.NotificationSize, cardMetrics)
	rec.OnUpdate(func(n domain.UpdateNotification) {
		slog.Info("component updated",
			slog.String("component", string(n.Component)),
			slog.Int64("old_version", n.OldVersion),
			slog.Int64("new_version", n.NewVersion))
	})
	rec.Start(context.Background())
	defer rec.Stop()

	// Background tasks
	tasks := background.NewBackgroundTasks(cardUsecase, draftUsecase, cfg.Drafts.SweepInterval)
	tasks.StartAll(context.Background())

	// Metrics endpoint
	http.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf("%s:%s", cfg.MetricsHTTP.Host, cfg.MetricsHTTP.Port)
	log.Printf("metrics server started on %s\n", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}

func setupLogger(cfg config.LogConfig) {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
