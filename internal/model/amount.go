package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of fractional digits of the numeric(36,18)
// amount columns.
const AmountScale = 18

// maxAmount is the smallest value that overflows the integer part of the
// amount columns.
var maxAmount = decimal.New(1, 36-AmountScale)

// Amount is a WLD amount sent as a JSON number or a numeric string. Input
// that does not parse leaves Valid false instead of failing the request,
// so the caller decides how to report it.
type Amount struct {
	decimal.NullDecimal
}

func NewAmount(s string) Amount {
	var a Amount
	_ = a.UnmarshalJSON([]byte(s))
	return a
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	d, err := decimal.NewFromString(strings.Trim(string(b), `"`))
	if err != nil {
		a.NullDecimal = decimal.NullDecimal{}
		return nil
	}

	a.NullDecimal = decimal.NewNullDecimal(d)
	return nil
}

// IsPositive reports whether the amount parsed to a value strictly greater
// than zero.
func (a Amount) IsPositive() bool {
	return a.Valid && a.Decimal.IsPositive()
}

// FitsColumn reports whether the amount is stored without rounding or
// overflow.
func (a Amount) FitsColumn() bool {
	if !a.Valid {
		return false
	}

	return a.Decimal.Equal(a.Decimal.Truncate(AmountScale)) && a.Decimal.Abs().LessThan(maxAmount)
}
