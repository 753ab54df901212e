package account

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const AddressSize = 32

// Address identifies an account on the ledger: a player, a game
// contract, the engine itself, or an external venue such as the
// emissions vault.
type Address [AddressSize]byte

// AddressFromBytes converts a byte slice to an Address.
func AddressFromBytes(b []byte) (Address, error) {
	if len(b) != AddressSize {
		return Address{}, ErrInvalidAddress
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

// ParseAddress decodes a hex string, with or without a 0x prefix.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, ErrInvalidAddress
	}
	return AddressFromBytes(b)
}

// Derive produces a deterministic address from a label. Used for test
// and devnet identities.
func Derive(label string) Address {
	return Address(blake2b.Sum256([]byte(label)))
}

func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// Short returns a truncated form for log output.
func (a Address) Short() string {
	return "0x" + hex.EncodeToString(a[:4])
}

func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
