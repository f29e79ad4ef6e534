package funds

import (
	"math/big"
	"sync"
)

// MemoryBank is an in-process Sink used by tests and local development.
type MemoryBank struct {
	mu       sync.Mutex
	balances map[string]*big.Int
}

func NewMemoryBank() *MemoryBank {
	return &MemoryBank{balances: map[string]*big.Int{}}
}

func (b *MemoryBank) Deposit(addr string, amount *big.Int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.balances[addr] = new(big.Int).Add(b.balance(addr), amount)
}

func (b *MemoryBank) Balance(addr string) *big.Int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return new(big.Int).Set(b.balance(addr))
}

func (b *MemoryBank) Transfer(from, to string, amount *big.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.balance(from).Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}

	b.balances[from] = new(big.Int).Sub(b.balance(from), amount)
	b.balances[to] = new(big.Int).Add(b.balance(to), amount)

	return nil
}

func (b *MemoryBank) balance(addr string) *big.Int {
	if bal, exists := b.balances[addr]; exists {
		return bal
	}

	return big.NewInt(0)
}
