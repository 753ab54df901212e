package main

import (
	"fmt"

	"github.com/eigerco/bramble/internal/account"
	"github.com/eigerco/bramble/internal/chainsim"
	"github.com/eigerco/bramble/internal/ledgertime"
	"github.com/eigerco/bramble/pkg/log"
)

// devnet is the simulated chain the daemon runs against: a yield and a
// settlement token, an emissions vault and a constant product pool.
// Addresses are derived from fixed labels so they are stable across
// restarts of the same data directory.
type devnet struct {
	admin account.Address
	self  account.Address
	blnd  *chainsim.Token
	usdc  *chainsim.Token
	vault *chainsim.Vault
	amm   *chainsim.AMM
}

func buildDevnet(cfg config, clock ledgertime.Clock) (*devnet, error) {
	if cfg.SimPoolLiquidity <= 0 {
		return nil, fmt.Errorf("pool liquidity must be positive, got %d", cfg.SimPoolLiquidity)
	}

	d := &devnet{
		admin: account.Derive("bramble/admin"),
		self:  account.Derive("bramble/engine"),
		blnd:  chainsim.NewToken(account.Derive("bramble/token/blnd"), "BLND"),
		usdc:  chainsim.NewToken(account.Derive("bramble/token/usdc"), "USDC"),
	}

	// The engine address is the vault admin, so admin withdrawals land
	// in engine custody during collection.
	d.vault = chainsim.NewVault(account.Derive("bramble/vault"), d.blnd, d.self, clock)
	if err := d.blnd.Mint(d.vault.Addr(), cfg.SimPoolLiquidity); err != nil {
		return nil, fmt.Errorf("fund vault: %w", err)
	}
	for _, id := range cfg.ReserveIDs {
		if cfg.SimEmissionRate > 0 {
			d.vault.SetEmissionRate(id, cfg.SimEmissionRate)
		}
	}
	if cfg.SimAdminBalance > 0 {
		d.vault.SetAdminBalance(cfg.SimAdminBalance)
	}

	d.amm = chainsim.NewAMM(account.Derive("bramble/amm"), d.blnd, d.usdc, clock)
	lp := account.Derive("bramble/lp")
	if err := d.blnd.Mint(lp, cfg.SimPoolLiquidity); err != nil {
		return nil, fmt.Errorf("fund liquidity provider: %w", err)
	}
	if err := d.usdc.Mint(lp, cfg.SimPoolLiquidity); err != nil {
		return nil, fmt.Errorf("fund liquidity provider: %w", err)
	}
	if err := d.amm.AddLiquidity(lp, cfg.SimPoolLiquidity, cfg.SimPoolLiquidity); err != nil {
		return nil, fmt.Errorf("seed pool: %w", err)
	}

	log.Sim.Info().
		Str("admin", d.admin.String()).
		Str("engine", d.self.String()).
		Str("yield_token", d.blnd.Addr().String()).
		Str("settlement_token", d.usdc.Addr().String()).
		Str("vault", d.vault.Addr().String()).
		Str("pool", d.amm.Addr().String()).
		Int64("pool_liquidity", cfg.SimPoolLiquidity).
		Int64("emission_rate", cfg.SimEmissionRate).
		Msg("devnet ready")
	return d, nil
}
