package reservation

import (
	"github.com/shopspring/decimal"
)

// Money is a non-negative amount with two decimal places.
type Money struct {
	amount decimal.Decimal
}

func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrNegativePrice
	}
	return Money{amount: amount.Round(2)}, nil
}

func MustMoney(s string) Money {
	m, err := NewMoney(decimal.RequireFromString(s))
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Times multiplies by a whole number of units, rounding to cents.
func (m Money) Times(units int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(units))).Round(2)}
}

func (m Money) Equal(o Money) bool {
	return m.amount.Equal(o.amount)
}

func (m Money) String() string {
	return m.amount.StringFixed(2)
}
