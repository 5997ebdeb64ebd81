package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Value objects are construct-once: fields are unexported and only the New*
// constructors can produce a valid instance, so an instance in hand always
// satisfies its invariants. All of them compare by value.

var (
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrNegativeAmount   = errors.New("amount must not be negative")
)

var (
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
	emailPattern    = regexp.MustCompile(`^[\w.\-+]+@[\w.\-]+\.\w+$`)
)

// Money is a monetary amount in minor units (cents) with an ISO 4217
// currency code.
type Money struct {
	amount   int64
	currency string
}

// NewMoney validates amount and currency. Amounts are minor units and must
// not be negative; currency must match ^[A-Z]{3}$.
func NewMoney(amount int64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, ErrNegativeAmount
	}
	if !currencyPattern.MatchString(currency) {
		return Money{}, fmt.Errorf("invalid currency code %q", currency)
	}
	return Money{amount: amount, currency: currency}, nil
}

func (m Money) Amount() int64    { return m.amount }
func (m Money) Currency() string { return m.currency }

func (m Money) String() string {
	return fmt.Sprintf("%s %d.%02d", m.currency, m.amount/100, m.amount%100)
}

// Add returns the sum of two amounts of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("%w: cannot add %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

// Subtract returns the difference of two amounts of the same currency.
// A negative result is rejected.
func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("%w: cannot subtract %s from %s", ErrCurrencyMismatch, other.currency, m.currency)
	}
	if m.amount < other.amount {
		return Money{}, ErrNegativeAmount
	}
	return Money{amount: m.amount - other.amount, currency: m.currency}, nil
}

// Email is a validated email address.
type Email struct {
	value string
}

func NewEmail(value string) (Email, error) {
	value = strings.TrimSpace(value)
	if !emailPattern.MatchString(value) {
		return Email{}, fmt.Errorf("invalid email address %q", value)
	}
	return Email{value: value}, nil
}

func (e Email) String() string { return e.value }

// Username returns the part before the @.
func (e Email) Username() string {
	return e.value[:strings.LastIndex(e.value, "@")]
}

// Domain returns the part after the @.
func (e Email) Domain() string {
	return e.value[strings.LastIndex(e.value, "@")+1:]
}

// DateRange is an inclusive range of instants with end >= start.
type DateRange struct {
	start time.Time
	end   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	if end.Before(start) {
		return DateRange{}, fmt.Errorf("range end %s precedes start %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return DateRange{start: start, end: end}, nil
}

func (r DateRange) Start() time.Time { return r.start }
func (r DateRange) End() time.Time   { return r.end }

// DurationDays returns the number of whole days between start and end.
func (r DateRange) DurationDays() int {
	return int(r.end.Sub(r.start).Hours() / 24)
}

// Contains reports whether t falls inside the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.start) && !t.After(r.end)
}

// Overlaps reports whether the two ranges share at least one instant.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.end.Before(other.start) && !r.start.After(other.end)
}
