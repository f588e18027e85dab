package queue

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"immoxperts/server/internal/database"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// AddressQueue is an in-memory queue for address-index import batches.
type AddressQueue struct {
	items    chan []*database.AddressRecord
	done     chan struct{}
	maxSize  int
	closed   bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []func([]*database.AddressRecord) error
}

// NewAddressQueue creates a new address queue with the specified buffer size
func NewAddressQueue(bufferSize int, logger *logrus.Logger) *AddressQueue {
	return &AddressQueue{
		items:    make(chan []*database.AddressRecord, bufferSize),
		done:     make(chan struct{}),
		maxSize:  bufferSize,
		logger:   logger,
		handlers: make([]func([]*database.AddressRecord) error, 0),
	}
}

// Push adds a batch of address records to the queue
func (q *AddressQueue) Push(records []*database.AddressRecord) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrQueueClosed
	}
	q.mu.RUnlock()

	// Non-blocking send to prevent deadlocks
	select {
	case q.items <- records:
		q.logger.WithField("batch_size", len(records)).Debug("Pushed batch to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe adds a handler function that will be called for each batch
func (q *AddressQueue) Subscribe(handler func([]*database.AddressRecord) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start begins processing items in the queue
func (q *AddressQueue) Start() {
	go q.process()
}

// process handles the queue processing loop
func (q *AddressQueue) process() {
	for {
		select {
		case <-q.done:
			return
		case batch := <-q.items:
			q.processBatch(batch)
		}
	}
}

// processBatch sends the batch to all subscribed handlers
func (q *AddressQueue) processBatch(batch []*database.AddressRecord) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(batch); err != nil {
			q.logger.WithError(err).Error("Handler failed to process batch")
		}
	}
}

// Close stops the queue and prevents new items from being added
func (q *AddressQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	q.closed = true
	close(q.done)
	close(q.items)
	return nil
}

// Len returns the current number of batches in the queue
func (q *AddressQueue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed
func (q *AddressQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
