package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/andreyxaxa/Image-Ingestor/config"
	"github.com/andreyxaxa/Image-Ingestor/internal/controller/restapi"
	"github.com/andreyxaxa/Image-Ingestor/internal/controller/worker/outbox"
	"github.com/andreyxaxa/Image-Ingestor/internal/infrastructure/codereader"
	infrakafka "github.com/andreyxaxa/Image-Ingestor/internal/infrastructure/kafka"
	"github.com/andreyxaxa/Image-Ingestor/internal/infrastructure/processor"
	"github.com/andreyxaxa/Image-Ingestor/internal/repo"
	"github.com/andreyxaxa/Image-Ingestor/internal/repo/persistent"
	"github.com/andreyxaxa/Image-Ingestor/internal/usecase"
	"github.com/andreyxaxa/Image-Ingestor/internal/usecase/ingest"
	"github.com/andreyxaxa/Image-Ingestor/internal/usecase/journal"
	"github.com/andreyxaxa/Image-Ingestor/internal/usecase/operation"
	"github.com/andreyxaxa/Image-Ingestor/pkg/httpserver"
	"github.com/andreyxaxa/Image-Ingestor/pkg/kafka/producer"
	"github.com/andreyxaxa/Image-Ingestor/pkg/logger"
	"github.com/andreyxaxa/Image-Ingestor/pkg/postgres"
	"github.com/andreyxaxa/Image-Ingestor/pkg/s3client"
)

func Run(cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Logger
	l := logger.New(cfg.Log.Level)

	// Repository
	artifacts, err := newArtifactRepo(ctx, cfg)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - newArtifactRepo: %w", err))
	}

	// Use-Case

	// journal
	var (
		jrnl           usecase.Journal = journal.Nop{}
		journalUseCase *journal.JournalUseCase
	)

	if cfg.PG.Enabled {
		pg, err := postgres.New(cfg.PG.URL, postgres.MaxPoolSize(cfg.PG.PoolMax))
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - postgres.New: %w", err))
		}
		defer pg.Close()

		journalUseCase = journal.New(
			persistent.NewIngestionRepo(pg),
			persistent.NewOutboxRepo(pg),
			pg,
			l,
		)
		jrnl = journalUseCase
	}

	// terminal operation
	imgProcessor := processor.New(processor.MaxPixels(cfg.Ingest.MaxPixels))

	op, err := operation.New(cfg.Ingest.Operation, operation.Deps{
		Processor: imgProcessor,
		Artifacts: artifacts,
		Reader:    codereader.New(cfg.QRCode.TryHarder),
		Logger:    l,
		Resize: operation.ResizeOptions{
			Width:     cfg.Resize.Width,
			Height:    cfg.Resize.Height,
			Grayscale: cfg.Resize.Grayscale,
			Format:    cfg.Resize.Format,
		},
	})
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - operation.New: %w", err))
	}

	// ingest use-case
	ingestUseCase := ingest.New(imgProcessor, op, jrnl, cfg.Ingest.ProcessTimeout, l)

	// Outbox Relay Worker
	var outboxRelayWorker *outbox.OutboxRelay

	if cfg.Kafka.Enabled {
		kafkaProducer, err := producer.New(ctx, cfg.Kafka.Brokers)
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - producer.New: %w", err))
		}

		outboxRelayWorker = outbox.New(
			journalUseCase,
			infrakafka.NewEventProducer(kafkaProducer, cfg.Kafka.Topic),
			l,
			outbox.Config{
				PollInterval:       cfg.OutboxRelay.PollInterval,
				MarkFailedInterval: cfg.OutboxRelay.MarkFailedInterval,
				CleanupInterval:    cfg.OutboxRelay.CleanupInterval,
				BatchTimeout:       cfg.OutboxRelay.ProcessBatchTimeout,
				BatchSize:          cfg.OutboxRelay.BatchSize,
				MaxRetries:         cfg.OutboxRelay.MaxRetries,
			},
		)
	}

	// HTTP Server
	httpServer := httpserver.New(l,
		httpserver.Port(cfg.HTTP.Port),
		httpserver.Prefork(cfg.HTTP.UsePreforkMode),
		httpserver.BodyLimit(cfg.HTTP.BodyLimit),
	)
	restapi.NewRouter(httpServer.App, cfg, ingestUseCase, l)

	// Start Components
	if outboxRelayWorker != nil {
		err = outboxRelayWorker.Start(ctx)
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - outboxRelayWorker.Start: %w", err))
		}
	}
	httpServer.Start()

	l.Info("app - Run - operation=%s storage=%s journal=%t relay=%t",
		op.Name(), cfg.Storage.Backend, cfg.PG.Enabled, cfg.Kafka.Enabled)

	// Waiting Signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("app - Run - signal: %s", s.String())
	case err = <-httpServer.Notify():
		l.Error(fmt.Errorf("app - Run - httpServer.Notify: %w", err))
	}

	// Shutdown
	err = httpServer.Shutdown()
	if err != nil {
		l.Error(fmt.Errorf("app - Run - httpServer.Shutdown: %w", err))
	}

	if outboxRelayWorker != nil {
		orlShutdownCtx, orlShutdownCancel := context.WithTimeout(ctx, cfg.OutboxRelay.ShutdownTimeout)
		defer orlShutdownCancel()
		err = outboxRelayWorker.Shutdown(orlShutdownCtx)
		if err != nil {
			l.Error(fmt.Errorf("app - Run - outboxRelayWorker.Shutdown: %w", err))
		}
	}
}

func newArtifactRepo(ctx context.Context, cfg *config.Config) (repo.ArtifactRepo, error) {
	switch cfg.Storage.Backend {
	case config.StorageS3:
		s3Ctx, s3Cancel := context.WithTimeout(ctx, cfg.S3.CfgLoadTimeout)
		defer s3Cancel()

		s3c, err := s3client.New(s3Ctx, cfg.S3.Endpoint, cfg.S3.AccessKey, cfg.S3.SecretKey,
			s3client.Region(cfg.S3.Region),
			s3client.Bucket(cfg.S3.Bucket),
		)
		if err != nil {
			return nil, fmt.Errorf("s3client.New: %w", err)
		}

		return persistent.NewS3ArtifactRepo(s3c, cfg.S3.Bucket), nil
	case config.StorageLocal:
		return persistent.NewLocalArtifactRepo(cfg.Storage.LocalDir), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
