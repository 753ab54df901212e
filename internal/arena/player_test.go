package arena

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/bramble/internal/account"
)

func TestPlayer_Credit(t *testing.T) {
	p := NewPlayer(account.Derive("alice"))

	require.NoError(t, p.Credit(100_0000000))
	require.NoError(t, p.Credit(23_0000000))
	assert.Equal(t, int64(123_0000000), p.Balance)

	assert.ErrorIs(t, p.Credit(0), ErrInvalidAmount)
	assert.ErrorIs(t, p.Credit(-5), ErrInvalidAmount)
	assert.Equal(t, int64(123_0000000), p.Balance, "rejected credits must not change the balance")

	p.Balance = math.MaxInt64 - 1
	assert.ErrorIs(t, p.Credit(2), ErrBalanceOverflow)
	require.NoError(t, p.Credit(1))
	assert.Equal(t, int64(math.MaxInt64), p.Balance)
}

func TestPlayer_ChooseFaction(t *testing.T) {
	t.Run("select and switch", func(t *testing.T) {
		p := NewPlayer(account.Derive("bob"))
		require.Nil(t, p.Faction)

		require.NoError(t, p.ChooseFaction(FactionWholeNoodle))
		require.NotNil(t, p.Faction)
		assert.Equal(t, FactionWholeNoodle, *p.Faction)

		require.NoError(t, p.ChooseFaction(FactionPointyStick))
		assert.Equal(t, FactionPointyStick, *p.Faction)
	})

	t.Run("locked while sessions are open", func(t *testing.T) {
		p := NewPlayer(account.Derive("carol"))
		require.NoError(t, p.ChooseFaction(FactionWholeNoodle))

		p.ActiveSessions = 1
		assert.ErrorIs(t, p.ChooseFaction(FactionPointyStick), ErrFactionLocked)
		// Reselecting the current faction is rejected too.
		assert.ErrorIs(t, p.ChooseFaction(FactionWholeNoodle), ErrFactionLocked)

		p.ReleaseSession()
		require.NoError(t, p.ChooseFaction(FactionPointyStick))
	})

	t.Run("unknown faction", func(t *testing.T) {
		p := NewPlayer(account.Derive("dave"))
		assert.ErrorIs(t, p.ChooseFaction(Faction(7)), ErrBadFaction)
		assert.Nil(t, p.Faction)
	})
}

func TestPlayer_ReleaseSession(t *testing.T) {
	p := NewPlayer(account.Derive("erin"))
	p.ActiveSessions = 2

	p.ReleaseSession()
	assert.Equal(t, uint32(1), p.ActiveSessions)
	p.ReleaseSession()
	assert.Equal(t, uint32(0), p.ActiveSessions)
	// Never goes negative.
	p.ReleaseSession()
	assert.Equal(t, uint32(0), p.ActiveSessions)
}

func TestPlayer_Clone(t *testing.T) {
	p := NewPlayer(account.Derive("frank"))
	require.NoError(t, p.Credit(50))
	require.NoError(t, p.ChooseFaction(FactionWholeNoodle))

	c := p.Clone()
	require.NoError(t, c.Credit(25))
	require.NoError(t, c.ChooseFaction(FactionPointyStick))

	assert.Equal(t, int64(50), p.Balance)
	assert.Equal(t, FactionWholeNoodle, *p.Faction, "clone mutation leaked into the original")
	assert.Equal(t, int64(75), c.Balance)
	assert.Equal(t, FactionPointyStick, *c.Faction)
}

func TestTotals(t *testing.T) {
	noodle := FactionWholeNoodle
	stick := FactionPointyStick

	players := []*Player{
		{Addr: account.Derive("p1"), Balance: 100, Faction: &noodle},
		{Addr: account.Derive("p2"), Balance: 250, Faction: &noodle},
		{Addr: account.Derive("p3"), Balance: 40, Faction: &stick},
		{Addr: account.Derive("p4"), Balance: 999}, // no faction selected
	}

	totals := Totals(players)
	assert.Equal(t, int64(350), totals[FactionWholeNoodle])
	assert.Equal(t, int64(40), totals[FactionPointyStick])
	assert.Len(t, totals, 2)
}

func TestFaction_FromID(t *testing.T) {
	f, err := FactionFromID(0)
	require.NoError(t, err)
	assert.Equal(t, FactionWholeNoodle, f)

	f, err = FactionFromID(1)
	require.NoError(t, err)
	assert.Equal(t, FactionPointyStick, f)

	_, err = FactionFromID(2)
	assert.ErrorIs(t, err, ErrBadFaction)
}

func TestFaction_String(t *testing.T) {
	assert.Equal(t, "whole-noodle", FactionWholeNoodle.String())
	assert.Equal(t, "pointy-stick", FactionPointyStick.String())
	assert.Equal(t, "faction(9)", Faction(9).String())
}
