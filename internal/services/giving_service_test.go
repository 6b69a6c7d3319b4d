package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/frontikai/stewardapp/internal/core"
	"github.com/frontikai/stewardapp/internal/storage"
)

func newTestService(t *testing.T) *GivingService {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "steward.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	// nil AMQP client: eventing disabled, writes must still succeed
	svc := NewGivingService(repo, nil)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestRecordDonation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, err := svc.RecordDonation(ctx, core.Donation{
		Amount: decimal.RequireFromString("50"),
		Date:   core.NewDate(2026, 8, 10),
		Type:   core.DonationOffering,
	})
	if err != nil {
		t.Fatalf("record donation: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero id")
	}

	// Validation failures never hit storage.
	_, err = svc.RecordDonation(ctx, core.Donation{
		Amount: decimal.Zero,
		Date:   core.NewDate(2026, 8, 10),
		Type:   core.DonationTithe,
	})
	if !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestRecordIncomeAndProcess(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, err := svc.RecordIncome(ctx, core.Income{
		Amount: decimal.RequireFromString("2000"),
		Date:   core.NewDate(2026, 8, 1),
		Source: "Salary",
	})
	if err != nil {
		t.Fatalf("record income: %v", err)
	}

	if err := svc.ProcessIncome(ctx, id); err != nil {
		t.Fatalf("process income: %v", err)
	}
	if err := svc.ProcessIncome(ctx, 9999); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	_, err = svc.RecordIncome(ctx, core.Income{
		Amount: decimal.RequireFromString("100"),
		Date:   core.NewDate(2026, 8, 1),
		Source: "",
	})
	if !errors.Is(err, core.ErrEmptySource) {
		t.Errorf("expected ErrEmptySource, got %v", err)
	}
}

func TestCloseNilComponents(t *testing.T) {
	svc := &GivingService{}
	if err := svc.Close(); err != nil {
		t.Fatalf("Close with nil components: %v", err)
	}
}
