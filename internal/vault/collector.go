package vault

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/eigerco/bramble/internal/account"
	"github.com/eigerco/bramble/internal/safemath"
)

// Collector drains every yield source the engine is entitled to: the
// configured reserves' emissions plus the vault's admin balance.
type Collector struct {
	vault    Vault
	reserves []uint32
	log      zerolog.Logger
}

func NewCollector(v Vault, reserves []uint32, logger zerolog.Logger) *Collector {
	return &Collector{
		vault:    v,
		reserves: reserves,
		log:      logger,
	}
}

// Collect claims reserve emissions and withdraws the admin balance to
// recipient, returning the combined yield. Zero yield is a valid
// outcome; any vault failure aborts the collection.
func (c *Collector) Collect(ctx context.Context, recipient account.Address) (int64, error) {
	claimed, err := c.vault.ClaimEmissions(ctx, c.reserves, recipient)
	if err != nil {
		return 0, fmt.Errorf("%w: claim emissions: %w", ErrCollection, err)
	}
	withdrawn, err := c.vault.AdminWithdraw(ctx, recipient)
	if err != nil {
		return 0, fmt.Errorf("%w: admin withdraw: %w", ErrCollection, err)
	}
	if claimed < 0 || withdrawn < 0 {
		return 0, fmt.Errorf("%w: vault reported negative yield", ErrCollection)
	}
	total, ok := safemath.AddAmount(claimed, withdrawn)
	if !ok {
		return 0, fmt.Errorf("%w: yield overflow", ErrCollection)
	}
	c.log.Debug().
		Int64("claimed", claimed).
		Int64("withdrawn", withdrawn).
		Int64("total", total).
		Msg("yield collected")
	return total, nil
}
