package processor

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"immoxperts/server/internal/database"
	"immoxperts/server/internal/queue"
)

// Options tunes the import pipeline.
type Options struct {
	MaxRetries int
	RetryDelay time.Duration
}

// BatchProcessor drains the address queue into the sqlite index with
// bounded retries per batch.
type BatchProcessor struct {
	db        *database.Database
	logger    *logrus.Logger
	opts      Options
	queue     *queue.AddressQueue
	waitGroup sync.WaitGroup
}

// NewBatchProcessor creates a new batch processor instance
func NewBatchProcessor(db *database.Database, q *queue.AddressQueue, opts Options, logger *logrus.Logger) *BatchProcessor {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 5 * time.Second
	}
	return &BatchProcessor{
		db:     db,
		queue:  q,
		opts:   opts,
		logger: logger,
	}
}

// Start subscribes the processor to the import queue.
func (p *BatchProcessor) Start() {
	p.queue.Subscribe(func(batch []*database.AddressRecord) error {
		return p.processBatch(batch)
	})
}

// Stop waits for in-flight batches to finish.
func (p *BatchProcessor) Stop() {
	p.waitGroup.Wait()
}

// processBatch handles a single batch with retry logic.
func (p *BatchProcessor) processBatch(batch []*database.AddressRecord) error {
	p.waitGroup.Add(1)
	defer p.waitGroup.Done()

	var err error
	for attempt := 0; attempt <= p.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			p.logger.Infof("Retrying batch import, attempt %d of %d", attempt, p.opts.MaxRetries)
			time.Sleep(p.opts.RetryDelay)
		}

		err = p.db.UpsertAddresses(batch)
		if err == nil {
			p.logger.Infof("Successfully imported batch of %d addresses", len(batch))
			return nil
		}

		p.logger.Errorf("Batch import failed: %v", err)
	}

	return fmt.Errorf("failed to import batch after %d attempts: %w", p.opts.MaxRetries, err)
}
