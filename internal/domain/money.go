package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, unit currency.Unit) (Money, error) {
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("amount[%s] is negative", amount)
	}

	return Money{Amount: amount, Currency: unit}, nil
}

func USD(amount decimal.Decimal) Money {
	return Money{Amount: amount, Currency: currency.USD}
}

func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("currency mismatch: %s != %s", m.Currency, other.Currency)
	}

	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

func (m Money) Mul(q Quantity) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(int64(q))), Currency: m.Currency}
}

// Convert applies rate and rounds half-to-even to the standard scale of target
// (0 digits for KRW).
func (m Money) Convert(rate decimal.Decimal, target currency.Unit) (Money, error) {
	if !rate.IsPositive() {
		return Money{}, fmt.Errorf("rate[%s] is not positive", rate)
	}

	scale, _ := currency.Standard.Rounding(target)

	return Money{
		Amount:   m.Amount.Mul(rate).RoundBank(int32(scale)),
		Currency: target,
	}, nil
}

func (m Money) String() string {
	return m.Currency.String() + " " + m.Amount.String()
}
