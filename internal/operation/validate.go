package operation

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	MaxDescriptionLen = 50

	// AmountPlaces is the number of decimal places an amount may carry.
	AmountPlaces = 2

	// DateLayout is the day-month-year format accepted for date filters.
	DateLayout = "02-01-2006"
)

var maxAmount = decimal.NewFromInt(1_000_000)

func ParseCategory(s string) (Category, error) {
	c := Category(strings.TrimSpace(s))
	if err := c.Validate(); err != nil {
		return "", err
	}

	return c, nil
}

func (c Category) Validate() error {
	switch c {
	case CategoryIncome, CategoryExpense:
		return nil
	}

	return ErrInvalidCategory
}

// ParseAmount parses a decimal amount. A comma is accepted as the decimal separator.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}

	if err := ValidateAmount(d); err != nil {
		return decimal.Zero, err
	}

	return d, nil
}

func ValidateAmount(d decimal.Decimal) error {
	if d.IsNegative() || d.GreaterThan(maxAmount) || !d.Equal(d.Round(AmountPlaces)) {
		return ErrInvalidAmount
	}

	return nil
}

func ValidateDescription(s string) error {
	if s == "" || utf8.RuneCountInString(s) > MaxDescriptionLen {
		return ErrInvalidDescription
	}

	return nil
}

// ParseDate parses a DD-MM-YYYY date in the local time zone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}

	return t, nil
}

// ParseChoice parses a menu choice in the range [0, max].
func ParseChoice(s string, max int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > max {
		return 0, fmt.Errorf("%w: choice must be within the range of 0 to %d", ErrInvalidChoice, max)
	}

	return n, nil
}

func (p CreateParams) Validate() error {
	if err := p.Category.Validate(); err != nil {
		return err
	}

	if err := ValidateAmount(p.Amount); err != nil {
		return err
	}

	return ValidateDescription(p.Description)
}

func (p UpdateParams) Validate() error {
	if p.Category != nil {
		if err := p.Category.Validate(); err != nil {
			return err
		}
	}

	if p.Amount != nil {
		if err := ValidateAmount(*p.Amount); err != nil {
			return err
		}
	}

	if p.Description != nil {
		return ValidateDescription(*p.Description)
	}

	return nil
}
