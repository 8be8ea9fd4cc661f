package domain

import "fmt"

// MaxQuantity caps a single cart line.
const MaxQuantity = 9_999

const QuantityOne Quantity = 1

type Quantity int

func NewQuantity(n int) (Quantity, error) {
	if n < 1 || n > MaxQuantity {
		return 0, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidQuantity, n, MaxQuantity)
	}

	return Quantity(n), nil
}

func (q Quantity) Add(delta Quantity) (Quantity, error) {
	return NewQuantity(int(q) + int(delta))
}

func (q Quantity) Int() int {
	return int(q)
}
