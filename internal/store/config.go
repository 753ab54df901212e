package store

import (
	"time"

	"github.com/eigerco/bramble/internal/account"
)

// ConfigRecord is the persisted engine configuration. The identity
// fields (admin, engine address, tokens, epoch duration) are fixed at
// genesis; operational knobs live with the process configuration and
// are not recorded here.
type ConfigRecord struct {
	Admin           account.Address `json:"admin"`
	Self            account.Address `json:"self"`
	YieldToken      account.Address `json:"yield_token"`
	SettlementToken account.Address `json:"settlement_token"`
	EpochDuration   time.Duration   `json:"epoch_duration"`
}
