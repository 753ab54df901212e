package vault

import (
	"context"

	"github.com/eigerco/bramble/internal/account"
)

// Vault is the external emissions vault the engine draws yield from.
// Implementations wrap a concrete venue; the devnet uses the chainsim
// vault.
type Vault interface {
	// ClaimEmissions claims whatever emissions have accrued for the
	// given reserve ids, pays them out to recipient and returns the
	// claimed amount. Claiming reserves with nothing accrued yields
	// zero, not an error.
	ClaimEmissions(ctx context.Context, reserveIDs []uint32, recipient account.Address) (int64, error)

	// AdminWithdraw drains the vault's admin-held balance to recipient
	// and returns the withdrawn amount.
	AdminWithdraw(ctx context.Context, recipient account.Address) (int64, error)
}
