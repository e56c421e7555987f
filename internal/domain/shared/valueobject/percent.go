package valueobject

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a value object for percentage figures (VAT, profit margin,
// utilization, doctor share). Stored as the human-facing number: 40 means 40%.
type Percent struct {
	value decimal.Decimal
}

// NewPercent creates a Percent from a decimal value
func NewPercent(value decimal.Decimal) Percent {
	return Percent{value: value}
}

// NewPercentFromFloat creates a Percent from a float64 value
func NewPercentFromFloat(value float64) Percent {
	return Percent{value: decimal.NewFromFloat(value)}
}

// NewPercentFromInt creates a Percent from an int64 value
func NewPercentFromInt(value int64) Percent {
	return Percent{value: decimal.NewFromInt(value)}
}

// InRange0To100 reports whether the percentage lies within [0,100].
// Chair utilization must satisfy this.
func (p Percent) InRange0To100() bool {
	return !p.value.IsNegative() && p.value.LessThanOrEqual(decimal.NewFromInt(100))
}

// Decimal returns the raw percentage number (40 for 40%)
func (p Percent) Decimal() decimal.Decimal {
	return p.value
}

// Fraction returns the percentage as a fraction (0.4 for 40%)
func (p Percent) Fraction() decimal.Decimal {
	return p.value.Div(decimal.NewFromInt(100))
}

// Multiplier returns 1 + fraction (1.4 for 40%), the factor applied when
// adding a margin or tax on top of a base amount.
func (p Percent) Multiplier() decimal.Decimal {
	return decimal.NewFromInt(1).Add(p.Fraction())
}

// IsNegative returns true if the percentage is below zero
func (p Percent) IsNegative() bool {
	return p.value.IsNegative()
}

// IsZero returns true if the percentage is zero
func (p Percent) IsZero() bool {
	return p.value.IsZero()
}

// GreaterThanOrEqual100 reports whether the percentage meets or exceeds 100%.
// A doctor share at or above 100% of the final price has no finite solution.
func (p Percent) GreaterThanOrEqual100() bool {
	return p.value.GreaterThanOrEqual(decimal.NewFromInt(100))
}

// Float64 returns the percentage as a float64 (may lose precision)
func (p Percent) Float64() float64 {
	f, _ := p.value.Float64()
	return f
}

// String returns the percentage as a string with a percent sign
func (p Percent) String() string {
	return p.value.String() + "%"
}

// MarshalJSON implements json.Marshaler, emitting the bare number
func (p Percent) MarshalJSON() ([]byte, error) {
	return []byte(p.value.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (p *Percent) UnmarshalJSON(data []byte) error {
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("invalid percent: %w", err)
	}
	p.value = d
	return nil
}

// Value implements driver.Valuer for database storage
func (p Percent) Value() (driver.Value, error) {
	return p.value.String(), nil
}

// Scan implements sql.Scanner for database retrieval
func (p *Percent) Scan(value any) error {
	if value == nil {
		p.value = decimal.Zero
		return nil
	}

	var strVal string
	switch v := value.(type) {
	case string:
		strVal = v
	case []byte:
		strVal = string(v)
	case float64:
		strVal = decimal.NewFromFloat(v).String()
	case int64:
		strVal = decimal.NewFromInt(v).String()
	default:
		return fmt.Errorf("cannot scan %T into Percent", value)
	}

	d, err := decimal.NewFromString(strVal)
	if err != nil {
		return fmt.Errorf("invalid decimal value: %w", err)
	}
	p.value = d
	return nil
}
