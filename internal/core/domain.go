package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Payment intervals a recurring contract can be classified into.
const (
	Monthly   Interval = "monthly"
	Quarterly Interval = "quarterly"
	Yearly    Interval = "yearly"
)

// Contract categories shown on the dashboard.
const (
	Income       Category = "income"
	Subscription Category = "subscription"
	Insurance    Category = "insurance"
	Utility      Category = "utility"
)

type (
	Interval string

	Category string

	// Date is a calendar date at day granularity. The time-of-day portion
	// is always midnight UTC; comparisons are calendar comparisons.
	Date struct {
		time.Time
	}

	// Money is a signed amount in cents. Negative means money leaving the
	// account (expense), positive means money entering (income).
	Money struct {
		Cents int64
	}

	// Transaction is the canonical booking record after normalization.
	Transaction struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Date   Date   `json:"date"`
		Amount Money  `json:"amount"`
	}

	// Contract is a recurring obligation inferred from transaction history.
	// Contracts are recomputed on every detection run and never persisted;
	// the ID is only stable within a single result list.
	Contract struct {
		ID          int      `json:"id"`
		Name        string   `json:"name"`
		Category    Category `json:"category"`
		Amount      Money    `json:"amount"`
		Interval    Interval `json:"interval"`
		NextPayment Date     `json:"nextPayment"`
		Provider    string   `json:"provider"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyName     = errors.New("empty name")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a calendar date in ISO-8601 form (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// DaysUntil returns the number of whole calendar days from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time.Sub(d.Time).Hours() / 24)
}

// AddMonths returns the date advanced by the given number of calendar
// months. Day overflow follows time.AddDate normalization: Jan 31 plus
// one month rolls into early March rather than clamping to Feb 28/29.
func (d Date) AddMonths(months int) Date {
	return Date{Time: d.Time.AddDate(0, months, 0)}
}

// AddYears returns the date advanced by the given number of calendar years.
func (d Date) AddYears(years int) Date {
	return Date{Time: d.Time.AddDate(years, 0, 0)}
}

// Before reports whether d is an earlier calendar day than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// String returns the date in the dashboard's display format (dd.MM.yyyy).
func (d Date) String() string {
	return d.Format("02.01.2006")
}

// MarshalJSON writes the date in the dashboard's dd.MM.yyyy format.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("02.01.2006") + `"`), nil
}

// UnmarshalJSON accepts the dd.MM.yyyy display format.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	t, err := time.Parse("02.01.2006", s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	d.Time = t
	return nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// IsExpense reports whether the amount represents money leaving the account.
func (m Money) IsExpense() bool {
	return m.Cents < 0
}

// Negate flips the sign of the amount.
func (m Money) Negate() Money {
	return Money{Cents: -m.Cents}
}

// Abs returns the magnitude of the amount.
func (m Money) Abs() Money {
	if m.Cents < 0 {
		return Money{Cents: -m.Cents}
	}
	return m
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (c Contract) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	switch c.Interval {
	case Monthly, Quarterly, Yearly:
	default:
		return fmt.Errorf("invalid interval %q", c.Interval)
	}
	switch c.Category {
	case Income, Subscription, Insurance, Utility:
	default:
		return fmt.Errorf("invalid category %q", c.Category)
	}
	return c.NextPayment.Validate()
}
