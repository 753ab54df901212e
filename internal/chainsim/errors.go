package chainsim

import "errors"

var (
	// ErrInvalidAmount is returned for mints, transfers and swaps of a
	// non-positive amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds is returned when a transfer exceeds the
	// sender's token balance.
	ErrInsufficientFunds = errors.New("insufficient token balance")

	// ErrNotVaultAdmin is returned when someone other than the vault
	// admin tries to withdraw the admin balance.
	ErrNotVaultAdmin = errors.New("recipient is not the vault admin")

	// ErrUnknownPair is returned for swaps naming tokens the pool does
	// not serve.
	ErrUnknownPair = errors.New("token pair not served by this pool")

	// ErrNoLiquidity is returned for swaps against an empty pool.
	ErrNoLiquidity = errors.New("pool has no liquidity")

	// ErrDeadlineExpired is returned when a swap arrives after its
	// deadline.
	ErrDeadlineExpired = errors.New("swap deadline expired")
)
