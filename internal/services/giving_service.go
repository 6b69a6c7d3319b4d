// Package services orchestrates record writes across storage and eventing.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frontikai/stewardapp/internal/amqp"
	"github.com/frontikai/stewardapp/internal/core"
	"github.com/frontikai/stewardapp/internal/storage"
)

// GivingService persists donations and income and publishes record events.
// Event publishing is best effort: the SQLite write is the source of truth
// and never fails because the broker is down.
type GivingService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewGivingService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *GivingService {
	return &GivingService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// RecordDonation validates and saves a donation, then publishes an event.
func (s *GivingService) RecordDonation(ctx context.Context, d core.Donation) (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, fmt.Errorf("validate donation: %w", err)
	}

	id, err := s.storage.AddDonation(ctx, d)
	if err != nil {
		return 0, fmt.Errorf("save donation: %w", err)
	}

	s.publish(ctx, amqp.NewRecordEvent(
		amqp.EventDonationRecorded, id, d.Amount.String(), d.Date.ISO()))

	return id, nil
}

// RecordIncome validates and saves an income record, then publishes an event.
func (s *GivingService) RecordIncome(ctx context.Context, in core.Income) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, fmt.Errorf("validate income: %w", err)
	}

	id, err := s.storage.AddIncome(ctx, in)
	if err != nil {
		return 0, fmt.Errorf("save income: %w", err)
	}

	s.publish(ctx, amqp.NewRecordEvent(
		amqp.EventIncomeRecorded, id, in.Amount.String(), in.Date.ISO()))

	return id, nil
}

// ProcessIncome marks an income record as tithed against.
func (s *GivingService) ProcessIncome(ctx context.Context, id int64) error {
	if err := s.storage.MarkIncomeProcessed(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, amqp.NewRecordEvent(amqp.EventIncomeProcessed, id, "", ""))
	return nil
}

func (s *GivingService) publish(ctx context.Context, event *amqp.RecordEvent) {
	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishRecordEvent(ctx, event); err != nil {
		// The record is already saved locally; log and move on.
		slog.ErrorContext(ctx, "Failed to publish record event",
			"kind", event.Kind,
			"record_id", event.RecordID,
			"error", err)
	}
}

// Close closes both storage and AMQP connections
func (s *GivingService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close giving service: %v", errs)
	}
	return nil
}
