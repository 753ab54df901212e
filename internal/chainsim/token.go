package chainsim

import (
	"sync"

	"github.com/eigerco/bramble/internal/account"
)

// Token is an in-memory fungible token ledger backing the devnet and
// tests. Amounts use 7 decimal fixed point like the rest of the
// system.
type Token struct {
	addr   account.Address
	symbol string

	mu       sync.Mutex
	balances map[account.Address]int64
}

func NewToken(addr account.Address, symbol string) *Token {
	return &Token{
		addr:     addr,
		symbol:   symbol,
		balances: make(map[account.Address]int64),
	}
}

func (t *Token) Addr() account.Address {
	return t.addr
}

func (t *Token) Symbol() string {
	return t.symbol
}

// Mint credits newly issued tokens to an account.
func (t *Token) Mint(to account.Address, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.balances[to] += amount
	return nil
}

func (t *Token) Balance(of account.Address) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.balances[of]
}

// Transfer moves tokens between accounts.
func (t *Token) Transfer(from, to account.Address, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.balances[from] < amount {
		return ErrInsufficientFunds
	}
	t.balances[from] -= amount
	t.balances[to] += amount
	return nil
}

// TotalSupply sums every balance, used by conservation checks in
// tests.
func (t *Token) TotalSupply() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	var total int64
	for _, b := range t.balances {
		total += b
	}
	return total
}
