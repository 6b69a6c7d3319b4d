package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/frontikai/stewardapp/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "steward.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestDonationRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	recipientID, err := repo.AddRecipient(ctx, core.Recipient{
		Name: "Grace Church", Category: core.RecipientChurch,
	})
	if err != nil {
		t.Fatalf("add recipient: %v", err)
	}

	id, err := repo.AddDonation(ctx, core.Donation{
		RecipientID: recipientID,
		Amount:      decimal.RequireFromString("123.45"),
		Date:        core.NewDate(2026, 8, 10),
		Type:        core.DonationTithe,
		Notes:       "august tithe",
	})
	if err != nil {
		t.Fatalf("add donation: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero id")
	}

	period := core.NewPeriod(core.NewDate(2026, 8, 1), core.NewDate(2026, 8, 31))
	donations, err := repo.GetDonations(ctx, period)
	if err != nil {
		t.Fatalf("get donations: %v", err)
	}
	if len(donations) != 1 {
		t.Fatalf("expected 1 donation, got %d", len(donations))
	}
	got := donations[0]
	if !got.Amount.Equal(decimal.RequireFromString("123.45")) {
		t.Errorf("amount = %s, want 123.45", got.Amount)
	}
	if got.Date.ISO() != "2026-08-10" || got.Type != core.DonationTithe || got.Notes != "august tithe" {
		t.Errorf("donation round trip mismatch: %+v", got)
	}

	// Inclusive range bounds.
	edge := core.NewPeriod(core.NewDate(2026, 8, 10), core.NewDate(2026, 8, 10))
	if donations, err = repo.GetDonations(ctx, edge); err != nil || len(donations) != 1 {
		t.Errorf("single-day range: %d donations, err %v", len(donations), err)
	}
	outside := core.NewPeriod(core.NewDate(2026, 9, 1), core.NewDate(2026, 9, 30))
	if donations, err = repo.GetDonations(ctx, outside); err != nil || len(donations) != 0 {
		t.Errorf("outside range: %d donations, err %v", len(donations), err)
	}

	total, err := repo.GetDonationTotal(ctx, period)
	if err != nil {
		t.Fatalf("get donation total: %v", err)
	}
	if !total.Equal(decimal.RequireFromString("123.45")) {
		t.Errorf("total = %s, want 123.45", total)
	}
}

func TestIncomeProcessing(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.AddIncome(ctx, core.Income{
		Amount: decimal.RequireFromString("2000"),
		Date:   core.NewDate(2026, 8, 1),
		Source: "Salary",
	})
	if err != nil {
		t.Fatalf("add income: %v", err)
	}
	if _, err = repo.AddIncome(ctx, core.Income{
		Amount:    decimal.RequireFromString("500"),
		Date:      core.NewDate(2026, 8, 5),
		Source:    "Freelance",
		Processed: true,
	}); err != nil {
		t.Fatalf("add income: %v", err)
	}

	total, err := repo.GetUnprocessedIncomeTotal(ctx)
	if err != nil {
		t.Fatalf("unprocessed total: %v", err)
	}
	if !total.Equal(decimal.RequireFromString("2000")) {
		t.Errorf("unprocessed total = %s, want 2000", total)
	}

	// Default 10% rate seeded by migrations.
	pending, err := repo.GetPendingTitheTotal(ctx)
	if err != nil {
		t.Fatalf("pending tithe: %v", err)
	}
	if !pending.Equal(decimal.RequireFromString("200")) {
		t.Errorf("pending tithe = %s, want 200", pending)
	}

	if err := repo.MarkIncomeProcessed(ctx, first); err != nil {
		t.Fatalf("mark processed: %v", err)
	}
	if pending, err = repo.GetPendingTitheTotal(ctx); err != nil || !pending.IsZero() {
		t.Errorf("pending tithe after processing = %s (err %v), want 0", pending, err)
	}

	if err := repo.MarkIncomeProcessed(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRecipients(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Insert out of name order to check ordering.
	if _, err := repo.AddRecipient(ctx, core.Recipient{Name: "Zion Ministry", Category: core.RecipientMissions}); err != nil {
		t.Fatalf("add recipient: %v", err)
	}
	id, err := repo.AddRecipient(ctx, core.Recipient{Name: "Food Bank", Category: core.RecipientCharity, IsDefault: true})
	if err != nil {
		t.Fatalf("add recipient: %v", err)
	}

	recipients, err := repo.GetRecipients(ctx)
	if err != nil {
		t.Fatalf("get recipients: %v", err)
	}
	if len(recipients) != 2 || recipients[0].Name != "Food Bank" || recipients[1].Name != "Zion Ministry" {
		t.Fatalf("recipients not ordered by name: %+v", recipients)
	}
	if !recipients[0].IsDefault {
		t.Error("expected Food Bank to be default")
	}

	updated := recipients[0]
	updated.Name = "City Food Bank"
	updated.IsDefault = false
	if err := repo.UpdateRecipient(ctx, updated); err != nil {
		t.Fatalf("update recipient: %v", err)
	}
	recipients, _ = repo.GetRecipients(ctx)
	if recipients[0].Name != "City Food Bank" || recipients[0].ID != id {
		t.Errorf("update not applied: %+v", recipients[0])
	}

	missing := core.Recipient{ID: 9999, Name: "X", Category: core.RecipientOther}
	if err := repo.UpdateRecipient(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSettings(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	settings, err := repo.Settings(ctx)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if settings.Currency != "USD" {
		t.Errorf("currency = %q, want USD", settings.Currency)
	}
	if !settings.TithePercent.Equal(decimal.NewFromInt(10)) {
		t.Errorf("tithe rate = %s, want 10", settings.TithePercent)
	}
	if !settings.IncomeTracking {
		t.Error("income tracking should default on")
	}

	if err := repo.UpdateSetting(ctx, core.SettingCurrency, "EUR"); err != nil {
		t.Fatalf("update setting: %v", err)
	}
	if err := repo.UpdateSetting(ctx, core.SettingTithePercent, "12.5"); err != nil {
		t.Fatalf("update setting: %v", err)
	}
	settings, _ = repo.Settings(ctx)
	if settings.Currency != "EUR" || !settings.TithePercent.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("settings after update: %+v", settings)
	}

	// Garbage rate falls back to the default.
	_ = repo.UpdateSetting(ctx, core.SettingTithePercent, "lots")
	settings, _ = repo.Settings(ctx)
	if !settings.TithePercent.Equal(decimal.NewFromInt(10)) {
		t.Errorf("tithe rate = %s, want fallback 10", settings.TithePercent)
	}

	if _, err := repo.GetSetting(ctx, "no-such-key"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGoals(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	goals, err := repo.Goals(ctx)
	if err != nil {
		t.Fatalf("goals: %v", err)
	}
	if !goals.Monthly.Equal(decimal.NewFromInt(500)) || !goals.Annual.Equal(decimal.NewFromInt(6000)) {
		t.Errorf("default goals = %+v", goals)
	}

	if err := repo.UpdateSetting(ctx, "monthlyGoal", "750"); err != nil {
		t.Fatalf("update goal: %v", err)
	}
	goals, _ = repo.Goals(ctx)
	if !goals.Monthly.Equal(decimal.NewFromInt(750)) {
		t.Errorf("monthly goal = %s, want 750", goals.Monthly)
	}
}
