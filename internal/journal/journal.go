package journal

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Kind classifies a journal entry.
type Kind string

const (
	KindGameRegistered   Kind = "game_registered"
	KindDeposit          Kind = "deposit"
	KindFactionSelected  Kind = "faction_selected"
	KindSessionStarted   Kind = "session_started"
	KindSessionResolved  Kind = "session_resolved"
	KindEpochFinalized   Kind = "epoch_finalized"
	KindYieldCarried     Kind = "yield_carried"
	KindEmissionsClaimed Kind = "emissions_claimed"
)

// Digest is a blake2b hash linking journal entries into a chain.
type Digest [32]byte

func (d Digest) String() string {
	return "0x" + hex.EncodeToString(d[:])
}

func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Digest) UnmarshalText(text []byte) error {
	s := string(text)
	if len(s) >= 2 && s[:2] == "0x" {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != len(d) {
		return fmt.Errorf("invalid digest %q", text)
	}
	copy(d[:], b)
	return nil
}

// Entry is one record of the append-only financial journal. Every
// entry commits to its predecessor through Parent, so any rewrite of
// history breaks the chain.
type Entry struct {
	Seq     uint64          `json:"seq"`
	Time    time.Time       `json:"time"`
	Kind    Kind            `json:"kind"`
	Payload json.RawMessage `json:"payload"`
	Parent  Digest          `json:"parent"`
	Digest  Digest          `json:"digest"`
}

// Head identifies the latest entry of the chain. The zero Head denotes
// an empty journal.
type Head struct {
	Seq    uint64 `json:"seq"`
	Digest Digest `json:"digest"`
}

// Append builds the successor entry of head for the given payload. The
// payload must marshal to JSON. Nothing is persisted here; callers
// stage the entry together with the state it describes.
func Append(head Head, kind Kind, payload any, now time.Time) (Entry, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Entry{}, fmt.Errorf("marshal payload: %w", err)
	}

	e := Entry{
		Seq:     head.Seq + 1,
		Time:    now,
		Kind:    kind,
		Payload: raw,
		Parent:  head.Digest,
	}
	e.Digest = e.ComputeDigest()
	return e, nil
}

// Head returns the chain head as of this entry.
func (e Entry) Head() Head {
	return Head{Seq: e.Seq, Digest: e.Digest}
}

// ComputeDigest hashes the entry's canonical encoding: sequence, time,
// kind, payload and parent digest.
func (e Entry) ComputeDigest() Digest {
	buf := make([]byte, 0, 16+len(e.Kind)+len(e.Payload)+len(e.Parent))
	buf = binary.BigEndian.AppendUint64(buf, e.Seq)
	buf = binary.BigEndian.AppendUint64(buf, uint64(e.Time.UnixNano()))
	buf = append(buf, e.Kind...)
	buf = append(buf, e.Payload...)
	buf = append(buf, e.Parent[:]...)
	return blake2b.Sum256(buf)
}

// Verify walks entries in order, checking sequence continuity, parent
// linkage and digests against the given head. Pass the zero Head to
// verify a chain from its beginning.
func Verify(head Head, entries []Entry) error {
	for _, e := range entries {
		if e.Seq != head.Seq+1 {
			return fmt.Errorf("%w: sequence gap at %d, expected %d", ErrBrokenChain, e.Seq, head.Seq+1)
		}
		if e.Parent != head.Digest {
			return fmt.Errorf("%w: parent mismatch at seq %d", ErrBrokenChain, e.Seq)
		}
		if e.ComputeDigest() != e.Digest {
			return fmt.Errorf("%w: digest mismatch at seq %d", ErrBrokenChain, e.Seq)
		}
		head = e.Head()
	}
	return nil
}
