package chainsim

import (
	"context"
	"sync"
	"time"

	"github.com/eigerco/bramble/internal/account"
	"github.com/eigerco/bramble/internal/ledgertime"
)

// Vault simulates an emissions vault: reserves accrue yield-token
// emissions over time, or receive one-shot grants, and an admin
// balance can be drained by the configured admin. It implements
// vault.Vault.
type Vault struct {
	addr  account.Address
	token *Token
	clock ledgertime.Clock

	mu           sync.Mutex
	admin        account.Address
	pending      map[uint32]int64
	rates        map[uint32]int64
	accruedSince map[uint32]time.Time
	adminBalance int64
}

func NewVault(addr account.Address, token *Token, admin account.Address, clock ledgertime.Clock) *Vault {
	return &Vault{
		addr:         addr,
		token:        token,
		clock:        clock,
		admin:        admin,
		pending:      make(map[uint32]int64),
		rates:        make(map[uint32]int64),
		accruedSince: make(map[uint32]time.Time),
	}
}

func (v *Vault) Addr() account.Address {
	return v.addr
}

// SetEmissions grants a one-shot claimable amount to a reserve. The
// vault must separately hold enough of the yield token to pay it out.
func (v *Vault) SetEmissions(reserveID uint32, amount int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pending[reserveID] += amount
}

// SetEmissionRate starts continuous accrual for a reserve at perSecond,
// counted from the current clock time.
func (v *Vault) SetEmissionRate(reserveID uint32, perSecond int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rates[reserveID] = perSecond
	v.accruedSince[reserveID] = v.clock.Now()
}

// SetAdminBalance sets the withdrawable admin balance.
func (v *Vault) SetAdminBalance(amount int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.adminBalance = amount
}

// SetAdmin hands the admin role to another account.
func (v *Vault) SetAdmin(admin account.Address) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.admin = admin
}

// ClaimEmissions pays out everything accrued for the given reserves to
// recipient. Claiming immediately again yields zero. Duplicate reserve
// ids in one call are counted once.
func (v *Vault) ClaimEmissions(_ context.Context, reserveIDs []uint32, recipient account.Address) (int64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	now := v.clock.Now()
	seen := make(map[uint32]bool, len(reserveIDs))
	// Accrual is settled in whole seconds; the remainder keeps
	// accruing, so splitting one claim into several pays the same.
	consumed := make(map[uint32]time.Duration, len(reserveIDs))
	var total int64
	for _, id := range reserveIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		total += v.pending[id]
		if rate := v.rates[id]; rate > 0 {
			if elapsed := now.Sub(v.accruedSince[id]); elapsed > 0 {
				whole := elapsed / time.Second * time.Second
				total += rate * int64(whole/time.Second)
				consumed[id] = whole
			}
		}
	}

	if total > 0 {
		if err := v.token.Transfer(v.addr, recipient, total); err != nil {
			return 0, err
		}
	}
	for id := range seen {
		v.pending[id] = 0
		if d := consumed[id]; d > 0 {
			v.accruedSince[id] = v.accruedSince[id].Add(d)
		}
	}
	return total, nil
}

// AdminWithdraw drains the admin balance to recipient. Only the admin
// account may receive it.
func (v *Vault) AdminWithdraw(_ context.Context, recipient account.Address) (int64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if recipient != v.admin {
		return 0, ErrNotVaultAdmin
	}
	amount := v.adminBalance
	if amount == 0 {
		return 0, nil
	}
	if err := v.token.Transfer(v.addr, recipient, amount); err != nil {
		return 0, err
	}
	v.adminBalance = 0
	return amount, nil
}
