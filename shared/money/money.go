package money

import (
	"bytes"
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	centsPerUnit = 100
	scale        = 2

	// MaxUnits is the largest whole part a NUMERIC(12,2) column holds.
	MaxUnits = 9_999_999_999
)

var (
	ErrInvalidAmount = errors.New("money: invalid amount")
	ErrNegative      = errors.New("money: amount must not be negative")
	ErrOutOfRange    = fmt.Errorf("%w: more than %d whole units", ErrInvalidAmount, MaxUnits)
)

// Amount is a fixed-point value with two decimal places, stored as integer cents.
type Amount int64

func FromCents(cents int64) Amount {
	return Amount(cents)
}

// Parse reads a decimal string such as "100", "99.9" or "12.345".
// Digits past the second decimal are truncated, never rounded.
func Parse(value string) (Amount, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, ErrInvalidAmount
	}

	negative := false
	if value[0] == '-' || value[0] == '+' {
		negative = value[0] == '-'
		value = value[1:]
	}

	whole, fraction, _ := strings.Cut(value, ".")
	if whole == "" && fraction == "" {
		return 0, ErrInvalidAmount
	}

	if whole == "" {
		whole = "0"
	}

	if !isDigits(whole) || !isDigits(fraction) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}

	if len(fraction) > scale {
		fraction = fraction[:scale]
	}

	fraction += strings.Repeat("0", scale-len(fraction))

	whole = strings.TrimLeft(whole, "0")
	if len(whole) > len(strconv.Itoa(MaxUnits)) {
		return 0, ErrOutOfRange
	}

	units := int64(0)
	if whole != "" {
		parsed, err := strconv.ParseInt(whole, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidAmount, err)
		}

		units = parsed
	}

	cents, err := strconv.ParseInt(fraction, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidAmount, err)
	}

	total := units*centsPerUnit + cents
	if negative {
		total = -total
	}

	return Amount(total), nil
}

// MustParse is Parse for fixtures and constants.
func MustParse(value string) Amount {
	amount, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return amount
}

// ParseNonNegative is Parse that rejects negative amounts.
func ParseNonNegative(value string) (Amount, error) {
	amount, err := Parse(value)
	if err != nil {
		return 0, err
	}

	if amount < 0 {
		return 0, ErrNegative
	}

	return amount, nil
}

func (a Amount) Cents() int64 {
	return int64(a)
}

func (a Amount) Add(other Amount) Amount {
	return a + other
}

// Mul multiplies by an integer count such as nights or quantity.
func (a Amount) Mul(times int64) Amount {
	return a * Amount(times)
}

func (a Amount) IsZero() bool {
	return a == 0
}

func (a Amount) String() string {
	cents := int64(a)
	sign := ""

	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	return fmt.Sprintf("%s%d.%02d", sign, cents/centsPerUnit, cents%centsPerUnit)
}

// MarshalJSON encodes the amount as a decimal string so clients never see a float.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(a.String())), nil
}

// UnmarshalJSON accepts both "100.00" and 100.00 without going through float64.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = 0

		return nil
	}

	raw := string(data)
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}

	amount, err := Parse(raw)
	if err != nil {
		return err
	}

	*a = amount

	return nil
}

// Scan reads a NUMERIC column, which lib/pq hands over as text.
func (a *Amount) Scan(src any) error {
	switch value := src.(type) {
	case nil:
		*a = 0

		return nil
	case []byte:
		return a.scanString(string(value))
	case string:
		return a.scanString(value)
	case int64:
		*a = Amount(value * centsPerUnit)

		return nil
	case float64:
		return a.scanString(strconv.FormatFloat(value, 'f', -1, 64))
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidAmount, src)
	}
}

func (a *Amount) scanString(value string) error {
	amount, err := Parse(value)
	if err != nil {
		return err
	}

	*a = amount

	return nil
}

// Value writes the amount as a decimal literal for NUMERIC(12,2) columns.
func (a Amount) Value() (driver.Value, error) {
	return a.String(), nil
}

func isDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
