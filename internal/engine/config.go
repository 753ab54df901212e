package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/eigerco/bramble/internal/account"
	"github.com/eigerco/bramble/internal/store"
)

// CyclePolicy controls who may trigger epoch settlement.
type CyclePolicy uint8

const (
	// CyclePermissionless lets any caller cycle a due epoch; the gate
	// alone decides readiness.
	CyclePermissionless CyclePolicy = iota
	// CycleAdminOnly restricts cycling to the admin account.
	CycleAdminOnly
)

func ParseCyclePolicy(s string) (CyclePolicy, error) {
	switch s {
	case "permissionless":
		return CyclePermissionless, nil
	case "admin":
		return CycleAdminOnly, nil
	default:
		return 0, fmt.Errorf("unknown cycle policy %q", s)
	}
}

func (p CyclePolicy) String() string {
	switch p {
	case CyclePermissionless:
		return "permissionless"
	case CycleAdminOnly:
		return "admin"
	default:
		return fmt.Sprintf("policy(%d)", uint8(p))
	}
}

// DefaultSwapDeadline bounds how long a settlement swap may stay
// pending at the router when the configuration does not say otherwise.
const DefaultSwapDeadline = 30 * time.Second

// Config carries the engine's identity and operational knobs. The
// identity fields are persisted at genesis and must match on every
// later boot; the rest may change between runs.
type Config struct {
	// Admin may register games, claim emissions and, under
	// CycleAdminOnly, cycle epochs.
	Admin account.Address
	// Self is the engine's own custody address; collected yield and
	// settled reward pools are paid to it.
	Self            account.Address
	YieldToken      account.Address
	SettlementToken account.Address
	// ReserveIDs are the vault reserves drained on every cycle.
	ReserveIDs    []uint32
	EpochDuration time.Duration
	CyclePolicy   CyclePolicy
	// SwapMinOut is an absolute floor on each cycle's settled output,
	// 0 disables it.
	SwapMinOut   int64
	SwapDeadline time.Duration
}

func (c Config) Validate() error {
	if c.Admin.IsZero() {
		return errors.New("admin address required")
	}
	if c.Self.IsZero() {
		return errors.New("engine address required")
	}
	if c.YieldToken.IsZero() || c.SettlementToken.IsZero() {
		return errors.New("yield and settlement token addresses required")
	}
	if c.YieldToken == c.SettlementToken {
		return errors.New("yield and settlement tokens must differ")
	}
	if c.EpochDuration <= 0 {
		return errors.New("epoch duration must be positive")
	}
	if c.SwapMinOut < 0 {
		return errors.New("swap floor must not be negative")
	}
	if c.SwapDeadline < 0 {
		return errors.New("swap deadline must not be negative")
	}
	return nil
}

// record extracts the identity fields persisted at genesis.
func (c Config) record() store.ConfigRecord {
	return store.ConfigRecord{
		Admin:           c.Admin,
		Self:            c.Self,
		YieldToken:      c.YieldToken,
		SettlementToken: c.SettlementToken,
		EpochDuration:   c.EpochDuration,
	}
}
