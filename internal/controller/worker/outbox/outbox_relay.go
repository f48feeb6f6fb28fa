package outbox

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andreyxaxa/Image-Ingestor/internal/entity"
	"github.com/andreyxaxa/Image-Ingestor/internal/infrastructure"
	"github.com/andreyxaxa/Image-Ingestor/internal/usecase"
	"github.com/andreyxaxa/Image-Ingestor/pkg/logger"
)

type Config struct {
	PollInterval       time.Duration
	MarkFailedInterval time.Duration
	CleanupInterval    time.Duration
	BatchTimeout       time.Duration
	BatchSize          int
	MaxRetries         int
}

// batchReport - итог одного прохода по pending событиям.
type batchReport struct {
	sent      int
	retried   int
	lastRetry []string // ингестии, у которых кончились попытки
}

// OutboxRelay доставляет события ингестий из аутбокса в kafka.
type OutboxRelay struct {
	outbox usecase.OutboxUseCase
	es     infrastructure.EventsSender
	logger logger.Interface
	cfg    Config

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	started atomic.Bool
}

func New(outbox usecase.OutboxUseCase, es infrastructure.EventsSender, l logger.Interface, cfg Config) *OutboxRelay {
	return &OutboxRelay{
		outbox: outbox,
		es:     es,
		logger: l,
		cfg:    cfg,
	}
}

func (r *OutboxRelay) Start(ctx context.Context) error {
	if !r.started.CompareAndSwap(false, true) {
		return fmt.Errorf("OutboxRelay - Start - worker already started")
	}

	r.ctx, r.cancel = context.WithCancel(ctx)

	// 1. доставка ингестий в kafka
	r.every(r.cfg.PollInterval, func() {
		batchCtx, batchCancel := context.WithTimeout(r.ctx, r.cfg.BatchTimeout)
		defer batchCancel()

		report := r.relayBatch(batchCtx)
		if report.sent > 0 || report.retried > 0 {
			r.logger.Info("OutboxRelay - relayBatch - sent=%d retried=%d", report.sent, report.retried)
		}
		if len(report.lastRetry) > 0 {
			r.logger.Warn("OutboxRelay - relayBatch - ingestions out of retries: %s", strings.Join(report.lastRetry, ","))
		}
	})

	// 2. pending с исчерпанными попытками -> failed
	r.every(r.cfg.MarkFailedInterval, func() {
		count, err := r.outbox.MarkMaxRetriesAsFailed(r.ctx, r.cfg.MaxRetries)
		if err != nil {
			r.logger.Error(err, "OutboxRelay - Start - r.outbox.MarkMaxRetriesAsFailed")

			return
		}
		if count > 0 {
			r.logger.Warn("OutboxRelay - Start - marked failed: %d", count)
		}
	})

	// 3. удаление processed/failed
	r.every(r.cfg.CleanupInterval, func() {
		count, err := r.outbox.CleanupOutbox(r.ctx)
		if err != nil {
			r.logger.Error(err, "OutboxRelay - Start - r.outbox.CleanupOutbox")

			return
		}
		if count > 0 {
			r.logger.Info("OutboxRelay - Start - cleaned up: %d", count)
		}
	})

	r.logger.Info("OutboxRelay - Started - batch=%d max_retries=%d", r.cfg.BatchSize, r.cfg.MaxRetries)

	return nil
}

func (r *OutboxRelay) relayBatch(ctx context.Context) batchReport {
	var report batchReport

	// 1. pending, retry_count < max retries
	events, err := r.outbox.GetPendingEvents(ctx, r.cfg.MaxRetries, r.cfg.BatchSize)
	if err != nil {
		r.logger.Error(err, "OutboxRelay - relayBatch - r.outbox.GetPendingEvents")

		return report
	}
	if len(events) == 0 {
		return report
	}

	// 2. processing, чтобы соседний тик их не взял
	err = r.outbox.MarkAsProcessingBatch(ctx, events)
	if err != nil {
		r.logger.Error(err, "OutboxRelay - relayBatch - r.outbox.MarkAsProcessingBatch")

		return report
	}

	// 3. отправка; при ошибке весь батч обратно в pending с retry_count + 1
	err = r.es.SendEvents(ctx, events)
	if err != nil {
		r.logger.Error(err, "OutboxRelay - relayBatch - r.es.SendEvents")

		incErr := r.outbox.IncrementRetryCountBatch(ctx, events)
		if incErr != nil {
			r.logger.Error(incErr, "OutboxRelay - relayBatch - r.outbox.IncrementRetryCountBatch")

			return report
		}

		report.retried = len(events)
		report.lastRetry = r.outOfRetries(events)

		return report
	}

	// 4. processed
	err = r.outbox.MarkAsProcessedBatch(ctx, events)
	if err != nil {
		r.logger.Error(err, "OutboxRelay - relayBatch - r.outbox.MarkAsProcessedBatch")

		return report
	}

	report.sent = len(events)

	return report
}

// outOfRetries - ингестии, чьи события после этой попытки станут failed.
func (r *OutboxRelay) outOfRetries(events []*entity.OutboxEvent) []string {
	var ids []string

	for _, event := range events {
		if event.RetryCount+1 >= r.cfg.MaxRetries {
			ids = append(ids, event.IngestionID.String())
		}
	}

	return ids
}

func (r *OutboxRelay) every(interval time.Duration, task func()) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-r.ctx.Done():
				return
			case <-ticker.C:
				task()
			}
		}
	}()
}

func (r *OutboxRelay) Shutdown(ctx context.Context) error {
	if !r.started.Load() {
		return nil
	}

	r.cancel()

	done := make(chan struct{})

	go func() {
		r.wg.Wait()
		if err := r.es.Close(); err != nil {
			r.logger.Error(err, "OutboxRelay - Shutdown - r.es.Close")
		}
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("OutboxRelay - Shutdown: %w", ctx.Err())
	}
}
