// Package storage is the SQLite record store backing the API: donations,
// income, recipients, and the key/value settings table. Amounts are stored
// as decimal strings so no precision is lost crossing the driver.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/frontikai/stewardapp/internal/core"
)

var ErrNotFound = errors.New("record not found")

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// AddDonation inserts a donation and returns its ID.
func (r *SQLiteRepository) AddDonation(ctx context.Context, d core.Donation) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO donations (recipient_id, amount, date, type, notes) VALUES (?, ?, ?, ?, ?)`,
		d.RecipientID, d.Amount.String(), d.Date.ISO(), string(d.Type), d.Notes)
	if err != nil {
		return 0, fmt.Errorf("insert donation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("donation insert id: %w", err)
	}

	slog.InfoContext(ctx, "Donation saved",
		"id", id,
		"recipient_id", d.RecipientID,
		"amount", d.Amount.String(),
		"date", d.Date.ISO())

	return id, nil
}

// GetDonations returns donations inside the period, both ends inclusive,
// newest first.
func (r *SQLiteRepository) GetDonations(ctx context.Context, p core.Period) ([]core.Donation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, recipient_id, amount, date, type, notes
		 FROM donations WHERE date BETWEEN ? AND ? ORDER BY date DESC, id DESC`,
		p.Start.ISO(), p.End.ISO())
	if err != nil {
		return nil, fmt.Errorf("query donations: %w", err)
	}
	defer rows.Close()

	var donations []core.Donation
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		donations = append(donations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donations: %w", err)
	}
	return donations, nil
}

// GetDonationTotal sums donation amounts inside the period.
func (r *SQLiteRepository) GetDonationTotal(ctx context.Context, p core.Period) (decimal.Decimal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT amount FROM donations WHERE date BETWEEN ? AND ?`,
		p.Start.ISO(), p.End.ISO())
	if err != nil {
		return decimal.Zero, fmt.Errorf("query donation total: %w", err)
	}
	defer rows.Close()

	return sumAmounts(rows)
}

// AddIncome inserts an income record and returns its ID.
func (r *SQLiteRepository) AddIncome(ctx context.Context, in core.Income) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO income (amount, date, source, notes, processed) VALUES (?, ?, ?, ?, ?)`,
		in.Amount.String(), in.Date.ISO(), in.Source, in.Notes, boolToInt(in.Processed))
	if err != nil {
		return 0, fmt.Errorf("insert income: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("income insert id: %w", err)
	}

	slog.InfoContext(ctx, "Income saved",
		"id", id,
		"amount", in.Amount.String(),
		"source", in.Source,
		"processed", in.Processed)

	return id, nil
}

// GetIncome returns income records inside the period, newest first.
func (r *SQLiteRepository) GetIncome(ctx context.Context, p core.Period) ([]core.Income, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount, date, source, notes, processed
		 FROM income WHERE date BETWEEN ? AND ? ORDER BY date DESC, id DESC`,
		p.Start.ISO(), p.End.ISO())
	if err != nil {
		return nil, fmt.Errorf("query income: %w", err)
	}
	defer rows.Close()
	return collectIncome(rows)
}

// MarkIncomeProcessed flags an income record as tithed against.
func (r *SQLiteRepository) MarkIncomeProcessed(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE income SET processed = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark income processed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark income processed rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	slog.InfoContext(ctx, "Income marked processed", "id", id)
	return nil
}

// GetUnprocessedIncome returns all income not yet tithed against,
// regardless of date, oldest first.
func (r *SQLiteRepository) GetUnprocessedIncome(ctx context.Context) ([]core.Income, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount, date, source, notes, processed
		 FROM income WHERE processed = 0 ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("query unprocessed income: %w", err)
	}
	defer rows.Close()
	return collectIncome(rows)
}

// GetUnprocessedIncomeTotal sums income not yet tithed against.
func (r *SQLiteRepository) GetUnprocessedIncomeTotal(ctx context.Context) (decimal.Decimal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT amount FROM income WHERE processed = 0`)
	if err != nil {
		return decimal.Zero, fmt.Errorf("query unprocessed income: %w", err)
	}
	defer rows.Close()

	return sumAmounts(rows)
}

// GetPendingTitheTotal computes the tithe owed on unprocessed income at the
// configured rate: the store-level counterpart of the report calculation,
// for callers that want the single figure without a record fetch.
func (r *SQLiteRepository) GetPendingTitheTotal(ctx context.Context) (decimal.Decimal, error) {
	settings, err := r.Settings(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	base, err := r.GetUnprocessedIncomeTotal(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return base.Mul(settings.TithePercent).Div(decimal.NewFromInt(100)), nil
}

// AddRecipient inserts a recipient and returns its ID.
func (r *SQLiteRepository) AddRecipient(ctx context.Context, rec core.Recipient) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO recipients (name, category, notes, is_default) VALUES (?, ?, ?, ?)`,
		rec.Name, string(rec.Category), rec.Notes, boolToInt(rec.IsDefault))
	if err != nil {
		return 0, fmt.Errorf("insert recipient: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("recipient insert id: %w", err)
	}

	slog.InfoContext(ctx, "Recipient saved", "id", id, "name", rec.Name)
	return id, nil
}

// GetRecipients returns all recipients ordered by name.
func (r *SQLiteRepository) GetRecipients(ctx context.Context) ([]core.Recipient, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, category, notes, is_default FROM recipients ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("query recipients: %w", err)
	}
	defer rows.Close()

	var recipients []core.Recipient
	for rows.Next() {
		var (
			rec       core.Recipient
			category  string
			isDefault int
		)
		if err := rows.Scan(&rec.ID, &rec.Name, &category, &rec.Notes, &isDefault); err != nil {
			return nil, fmt.Errorf("scan recipient: %w", err)
		}
		rec.Category = core.RecipientCategory(category)
		rec.IsDefault = isDefault == 1
		recipients = append(recipients, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipients: %w", err)
	}
	return recipients, nil
}

// UpdateRecipient updates an existing recipient.
func (r *SQLiteRepository) UpdateRecipient(ctx context.Context, rec core.Recipient) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE recipients SET name = ?, category = ?, notes = ?, is_default = ? WHERE id = ?`,
		rec.Name, string(rec.Category), rec.Notes, boolToInt(rec.IsDefault), rec.ID)
	if err != nil {
		return fmt.Errorf("update recipient: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update recipient rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetSetting returns a single setting value. ErrNotFound when unset.
func (r *SQLiteRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("query setting %s: %w", key, err)
	}
	return value, nil
}

// UpdateSetting upserts a setting value.
func (r *SQLiteRepository) UpdateSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("update setting %s: %w", key, err)
	}
	return nil
}

// Settings returns the typed settings view. Missing or unparsable values
// fall back to the defaults, notably tithe rate 10.
func (r *SQLiteRepository) Settings(ctx context.Context) (core.Settings, error) {
	settings := core.DefaultSettings()

	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return settings, fmt.Errorf("query settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return settings, fmt.Errorf("scan setting: %w", err)
		}
		switch key {
		case core.SettingCurrency:
			if value != "" {
				settings.Currency = value
			}
		case core.SettingTithePercent:
			if rate, err := decimal.NewFromString(value); err == nil && rate.IsPositive() {
				settings.TithePercent = rate
			} else {
				slog.WarnContext(ctx, "Unparsable tithe rate, using default",
					"value", value, "default", settings.TithePercent.String())
			}
		case core.SettingIncomeTracking:
			settings.IncomeTracking = value == "true"
		}
	}
	if err := rows.Err(); err != nil {
		return settings, fmt.Errorf("iterate settings: %w", err)
	}
	return settings, nil
}

// Goals returns the configured giving goals, defaulting when unset.
func (r *SQLiteRepository) Goals(ctx context.Context) (core.Goals, error) {
	goals := core.Goals{
		Monthly: decimal.NewFromInt(500),
		Annual:  decimal.NewFromInt(6000),
	}

	if v, err := r.GetSetting(ctx, "monthlyGoal"); err == nil {
		if d, err := decimal.NewFromString(v); err == nil && !d.IsNegative() {
			goals.Monthly = d
		}
	} else if !errors.Is(err, ErrNotFound) {
		return goals, err
	}

	if v, err := r.GetSetting(ctx, "annualGoal"); err == nil {
		if d, err := decimal.NewFromString(v); err == nil && !d.IsNegative() {
			goals.Annual = d
		}
	} else if !errors.Is(err, ErrNotFound) {
		return goals, err
	}

	return goals, nil
}

// GetDonation retrieves a single donation by ID.
func (r *SQLiteRepository) GetDonation(ctx context.Context, id int64) (core.Donation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, recipient_id, amount, date, type, notes FROM donations WHERE id = ?`, id)

	d, err := scanDonation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Donation{}, ErrNotFound
	}
	return d, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDonation(row rowScanner) (core.Donation, error) {
	var (
		d      core.Donation
		amount string
		date   string
		typ    string
	)
	if err := row.Scan(&d.ID, &d.RecipientID, &amount, &date, &typ, &d.Notes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Donation{}, err
		}
		return core.Donation{}, fmt.Errorf("scan donation: %w", err)
	}
	var err error
	if d.Amount, err = decimal.NewFromString(amount); err != nil {
		return core.Donation{}, fmt.Errorf("parse donation amount %q: %w", amount, err)
	}
	if d.Date, err = core.ParseDate(date); err != nil {
		return core.Donation{}, fmt.Errorf("parse donation date %q: %w", date, err)
	}
	d.Type = core.DonationType(typ)
	return d, nil
}

func collectIncome(rows *sql.Rows) ([]core.Income, error) {
	var records []core.Income
	for rows.Next() {
		var (
			in        core.Income
			amount    string
			date      string
			processed int
			err       error
		)
		if err = rows.Scan(&in.ID, &amount, &date, &in.Source, &in.Notes, &processed); err != nil {
			return nil, fmt.Errorf("scan income: %w", err)
		}
		if in.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse income amount %q: %w", amount, err)
		}
		if in.Date, err = core.ParseDate(date); err != nil {
			return nil, fmt.Errorf("parse income date %q: %w", date, err)
		}
		in.Processed = processed == 1
		records = append(records, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate income: %w", err)
	}
	return records, nil
}

func sumAmounts(rows *sql.Rows) (decimal.Decimal, error) {
	total := decimal.Zero
	for rows.Next() {
		var amount string
		if err := rows.Scan(&amount); err != nil {
			return decimal.Zero, fmt.Errorf("scan amount: %w", err)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parse amount %q: %w", amount, err)
		}
		total = total.Add(d)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("iterate amounts: %w", err)
	}
	return total, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
