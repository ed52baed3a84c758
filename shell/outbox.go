package shell

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/school-library-lending/core"
	"github.com/AntonStoeckl/school-library-lending/journal"
)

const (
	defaultRetryInterval = 2 * time.Second

	logMsgOutboxAppended      = "outbox: events appended to journal"
	logMsgOutboxAppendFailed  = "outbox: appending to journal failed, keeping events pending"
	logMsgOutboxMappingFailed = "outbox: dropping event that cannot be mapped"
	logMsgOutboxStopped       = "outbox: stopped"
	logAttrPending            = "pending"
	logAttrAttempts           = "attempts"
	logAttrEventCount         = "event_count"
	logAttrEventType          = "event_type"
	logAttrError              = "error"
)

// ErrOutboxNotDrained is returned by Flush when events remain pending.
var ErrOutboxNotDrained = errors.New("outbox still holds pending events")

// Outbox queues recorded domain events in memory and appends them to the journal in FIFO order.
//
// Record never blocks on I/O, so handlers can call it inside the inventory's critical
// sections, which makes the queue order match the order the changes were committed in.
// A failed append leaves the batch at the head of the queue; nothing is reordered or dropped.
type Outbox struct {
	journal       AppendsToJournal
	logger        Logger
	retryOptions  []RetryOption
	retryInterval time.Duration

	mu      sync.Mutex
	pending journal.StorableEvents
	signal  chan struct{}

	drainMu sync.Mutex
}

// OutboxOption configures an Outbox.
type OutboxOption func(*Outbox)

// WithOutboxLogger sets the logger for the Outbox.
func WithOutboxLogger(logger Logger) OutboxOption {
	return func(o *Outbox) {
		o.logger = logger
	}
}

// WithOutboxRetryOptions sets the retry configuration used for each append.
func WithOutboxRetryOptions(options ...RetryOption) OutboxOption {
	return func(o *Outbox) {
		o.retryOptions = options
	}
}

// WithOutboxRetryInterval sets how long Run waits before retrying a batch whose append failed.
func WithOutboxRetryInterval(interval time.Duration) OutboxOption {
	return func(o *Outbox) {
		o.retryInterval = interval
	}
}

// NewOutbox creates an Outbox that appends to the given journal.
func NewOutbox(journal AppendsToJournal, options ...OutboxOption) *Outbox {
	o := &Outbox{
		journal:       journal,
		retryInterval: defaultRetryInterval,
		signal:        make(chan struct{}, 1),
	}

	for _, option := range options {
		option(o)
	}

	return o
}

// Record implements EventRecorder. Events recorded together share a correlation ID.
func (o *Outbox) Record(events ...core.DomainEvent) {
	if len(events) == 0 {
		return
	}

	correlationID := uuid.New()
	storableEvents := make(journal.StorableEvents, 0, len(events))

	for _, event := range events {
		storableEvent, err := StorableEventFrom(event, BuildEventMetadata(uuid.New(), correlationID, correlationID))
		if err != nil {
			o.logError(logMsgOutboxMappingFailed, logAttrEventType, event.IsEventType(), logAttrError, err.Error())
			continue
		}

		storableEvents = append(storableEvents, storableEvent)
	}

	o.mu.Lock()
	o.pending = append(o.pending, storableEvents...)
	o.mu.Unlock()

	select {
	case o.signal <- struct{}{}:
	default:
	}
}

// Pending returns the number of events not yet appended.
func (o *Outbox) Pending() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return len(o.pending)
}

// Run drains the queue whenever events are recorded, until ctx is done.
// On return it makes a last attempt to drain what is left.
func (o *Outbox) Run(ctx context.Context) {
	retry := time.NewTimer(o.retryInterval)
	retry.Stop()
	defer retry.Stop()

	for {
		select {
		case <-ctx.Done():
			o.drainOnShutdown()
			return
		case <-o.signal:
		case <-retry.C:
		}

		if err := o.drain(ctx); err != nil && ctx.Err() == nil {
			retry.Reset(o.retryInterval)
		}
	}
}

// Flush appends all pending events synchronously.
func (o *Outbox) Flush(ctx context.Context) error {
	if err := o.drain(ctx); err != nil {
		return err
	}

	if o.Pending() > 0 {
		return ErrOutboxNotDrained
	}

	return nil
}

func (o *Outbox) drainOnShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), o.retryInterval)
	defer cancel()

	if err := o.Flush(ctx); err != nil {
		o.logError(logMsgOutboxStopped, logAttrPending, o.Pending(), logAttrError, err.Error())
		return
	}

	o.logInfo(logMsgOutboxStopped, logAttrPending, 0)
}

// drain appends the current head of the queue as one batch and removes it on success.
// drainMu keeps concurrent drains from appending the same batch twice or out of order.
func (o *Outbox) drain(ctx context.Context) error {
	o.drainMu.Lock()
	defer o.drainMu.Unlock()

	o.mu.Lock()
	batch := make(journal.StorableEvents, len(o.pending))
	copy(batch, o.pending)
	o.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	meta, err := RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return o.journal.Append(retryCtx, batch...)
	}, o.retryOptions...)

	if err != nil {
		o.logError(
			logMsgOutboxAppendFailed,
			logAttrPending, len(batch),
			logAttrAttempts, meta.Attempts,
			logAttrError, err.Error(),
		)

		return err
	}

	o.mu.Lock()
	o.pending = o.pending[len(batch):]
	o.mu.Unlock()

	o.logInfo(logMsgOutboxAppended, logAttrEventCount, len(batch), logAttrAttempts, meta.Attempts)

	return nil
}

func (o *Outbox) logInfo(msg string, args ...any) {
	if o.logger != nil {
		o.logger.Info(msg, args...)
	}
}

func (o *Outbox) logError(msg string, args ...any) {
	if o.logger != nil {
		o.logger.Error(msg, args...)
	}
}
