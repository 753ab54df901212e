package arena

import "fmt"

// Faction is one of the two sides players align with for an epoch's
// reward split.
type Faction uint8

const (
	FactionWholeNoodle Faction = iota
	FactionPointyStick

	numFactions
)

// FactionFromID converts a wire identifier (0 or 1) to a Faction.
func FactionFromID(id uint8) (Faction, error) {
	if id >= uint8(numFactions) {
		return 0, fmt.Errorf("%w: id %d", ErrBadFaction, id)
	}
	return Faction(id), nil
}

// Factions lists all valid factions in id order.
func Factions() []Faction {
	return []Faction{FactionWholeNoodle, FactionPointyStick}
}

// Valid reports whether f is a known faction.
func (f Faction) Valid() bool {
	return f < numFactions
}

func (f Faction) String() string {
	switch f {
	case FactionWholeNoodle:
		return "whole-noodle"
	case FactionPointyStick:
		return "pointy-stick"
	default:
		return fmt.Sprintf("faction(%d)", uint8(f))
	}
}
