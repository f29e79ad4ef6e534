package funds

import (
	"errors"
	"math/big"
)

var ErrInsufficientFunds = errors.New("insufficient funds")

// Sink moves settlement currency between addresses. Amounts are always in
// the smallest currency unit.
type Sink interface {
	Transfer(from, to string, amount *big.Int) error
}
