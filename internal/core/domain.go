package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DonationTithe    DonationType = "Tithe"
	DonationOffering DonationType = "Offering"
	DonationCharity  DonationType = "Charity"
	DonationMissions DonationType = "Missions"
	DonationSpecial  DonationType = "Special"
)

const (
	RecipientChurch       RecipientCategory = "Church"
	RecipientCharity      RecipientCategory = "Charity"
	RecipientMissions     RecipientCategory = "Missions"
	RecipientIndividual   RecipientCategory = "Individual"
	RecipientOrganization RecipientCategory = "Organization"
	RecipientOther        RecipientCategory = "Other"
)

type (
	DonationType      string
	RecipientCategory string

	Date struct {
		time.Time
	}

	// Donation is a single recorded gift. RecipientID is zero when the
	// donation was recorded without a recipient.
	Donation struct {
		ID          int64
		RecipientID int64
		Amount      decimal.Decimal
		Date        Date
		Type        DonationType
		Notes       string
	}

	// Income is a recorded income event. Processed marks it as already
	// tithed against; unprocessed income feeds the pending obligation.
	Income struct {
		ID        int64
		Amount    decimal.Decimal
		Date      Date
		Source    string
		Notes     string
		Processed bool
	}

	Recipient struct {
		ID        int64
		Name      string
		Category  RecipientCategory
		Notes     string
		IsDefault bool
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidType     = errors.New("invalid donation type")
	ErrEmptySource     = errors.New("empty income source")
	ErrEmptyName       = errors.New("empty recipient name")
	ErrInvalidCategory = errors.New("invalid recipient category")
)

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO YYYY-MM-DD string, the storage wire format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// ISO returns the date formatted as YYYY-MM-DD
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

func (t DonationType) Validate() error {
	switch t {
	case DonationTithe, DonationOffering, DonationCharity, DonationMissions, DonationSpecial:
		return nil
	}
	return ErrInvalidType
}

func (c RecipientCategory) Validate() error {
	switch c {
	case RecipientChurch, RecipientCharity, RecipientMissions, RecipientIndividual, RecipientOrganization, RecipientOther:
		return nil
	}
	return ErrInvalidCategory
}

func (d Donation) Validate() error {
	if err := d.Date.Validate(); err != nil {
		return err
	}
	if !d.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if err := d.Type.Validate(); err != nil {
		return err
	}
	if len(d.Notes) > 500 {
		return errors.New("notes too long (max 500 characters)")
	}
	return nil
}

func (i Income) Validate() error {
	if err := i.Date.Validate(); err != nil {
		return err
	}
	if !i.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if len(strings.TrimSpace(i.Source)) == 0 {
		return ErrEmptySource
	}
	if len(i.Notes) > 500 {
		return errors.New("notes too long (max 500 characters)")
	}
	return nil
}

func (r Recipient) Validate() error {
	if len(strings.TrimSpace(r.Name)) == 0 {
		return ErrEmptyName
	}
	if len(r.Name) > 100 {
		return errors.New("name too long (max 100 characters)")
	}
	if err := r.Category.Validate(); err != nil {
		return err
	}
	return nil
}
