package worker

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/frontikai/stewardapp/internal/amqp"
	applog "github.com/frontikai/stewardapp/internal/log"
)

// auditHeader is written once when the audit file is created.
var auditHeader = []string{"received_at", "message_id", "kind", "record_id", "amount", "date"}

// AuditWriter appends record events to a CSV audit trail on disk.
// Writes are flushed on an interval rather than per row.
type AuditWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer

	// seen bounds redelivery: a nacked-then-redelivered event must not
	// produce a second audit row.
	seen      map[string]struct{}
	seenOrder []string
}

const seenLimit = 1024

// NewAuditWriter opens (or creates) the audit file for appending, writing
// the header when the file is new.
func NewAuditWriter(path string) (*AuditWriter, error) {
	info, err := os.Stat(path)
	isNew := os.IsNotExist(err) || (err == nil && info.Size() == 0)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit file: %w", err)
	}

	w := &AuditWriter{
		file:   f,
		writer: csv.NewWriter(f),
		seen:   make(map[string]struct{}),
	}
	if isNew {
		if err := w.writer.Write(auditHeader); err != nil {
			f.Close()
			return nil, fmt.Errorf("write audit header: %w", err)
		}
		w.writer.Flush()
		if err := w.writer.Error(); err != nil {
			f.Close()
			return nil, fmt.Errorf("flush audit header: %w", err)
		}
	}
	return w, nil
}

// Append writes one audit row for a record event. Events already seen by
// message ID are skipped.
func (w *AuditWriter) Append(event *amqp.RecordEvent) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, dup := w.seen[event.MessageID]; dup {
		slog.Debug("Skipping duplicate event", "message_id", event.MessageID)
		return nil
	}
	w.remember(event.MessageID)

	row := []string{
		time.Now().UTC().Format(time.RFC3339),
		event.MessageID,
		event.Kind,
		fmt.Sprintf("%d", event.RecordID),
		event.Amount,
		event.Date,
	}
	if err := w.writer.Write(row); err != nil {
		return fmt.Errorf("write audit row: %w", err)
	}
	return nil
}

// Flush forces buffered rows out to disk.
func (w *AuditWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		return fmt.Errorf("flush audit file: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (w *AuditWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		w.file.Close()
		return fmt.Errorf("flush audit file: %w", err)
	}
	return w.file.Close()
}

func (w *AuditWriter) remember(messageID string) {
	w.seen[messageID] = struct{}{}
	w.seenOrder = append(w.seenOrder, messageID)
	if len(w.seenOrder) > seenLimit {
		oldest := w.seenOrder[0]
		w.seenOrder = w.seenOrder[1:]
		delete(w.seen, oldest)
	}
}

// AuditWorker consumes record events and maintains the CSV audit trail.
type AuditWorker struct {
	client        *amqp.Client
	writer        *AuditWriter
	flushInterval time.Duration
}

func NewAuditWorker(client *amqp.Client, writer *AuditWriter, flushInterval time.Duration) *AuditWorker {
	return &AuditWorker{
		client:        client,
		writer:        writer,
		flushInterval: flushInterval,
	}
}

// Run consumes events and flushes the audit file on an interval until the
// context is cancelled. One failing goroutine takes the other down.
func (w *AuditWorker) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return w.client.ConsumeRecordEvents(ctx, w.HandleEvent)
	})

	g.Go(func() error {
		ticker := time.NewTicker(w.flushInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := w.writer.Flush(); err != nil {
					return err
				}
			}
		}
	})

	err := g.Wait()
	if flushErr := w.writer.Flush(); flushErr != nil {
		slog.Error("Final audit flush failed", "error", flushErr)
	}
	return err
}

// HandleEvent appends a single event to the audit trail.
func (w *AuditWorker) HandleEvent(event *amqp.RecordEvent) error {
	if err := w.writer.Append(event); err != nil {
		return err
	}
	slog.Info("Audited record event",
		applog.FieldMessageID, event.MessageID,
		applog.FieldComponent, applog.ComponentWorker,
		"kind", event.Kind,
		"record_id", event.RecordID)
	return nil
}
