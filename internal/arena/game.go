package arena

import (
	"time"

	"github.com/eigerco/bramble/internal/account"
)

// Game is a registered game contract, the only kind of caller allowed
// to open and resolve sessions.
type Game struct {
	Addr         account.Address `json:"addr"`
	RegisteredAt time.Time       `json:"registered_at"`
}
