package epoch

import (
	"errors"
	"math"
	"testing"
	"time"
)

var testStart = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

func TestEpoch_First(t *testing.T) {
	e := First(testStart, 100*time.Second)
	if e.Index != 0 {
		t.Errorf("Index: got %d, want 0", e.Index)
	}
	if !e.Start.Equal(testStart) {
		t.Errorf("Start: got %v, want %v", e.Start, testStart)
	}
	if e.Finalized {
		t.Error("a fresh epoch must not be finalized")
	}
	if e.RewardPool != 0 {
		t.Errorf("RewardPool: got %d, want 0", e.RewardPool)
	}
}

func TestEpoch_Due(t *testing.T) {
	e := First(testStart, 100*time.Second)

	t.Run("before the boundary", func(t *testing.T) {
		if e.Due(testStart.Add(100*time.Second - time.Nanosecond)) {
			t.Error("epoch should not be due before its duration elapses")
		}
	})

	t.Run("exactly at the boundary", func(t *testing.T) {
		if !e.Due(testStart.Add(100 * time.Second)) {
			t.Error("epoch should be due at the boundary instant")
		}
	})

	t.Run("after the boundary", func(t *testing.T) {
		if !e.Due(testStart.Add(101 * time.Second)) {
			t.Error("epoch should be due after the boundary")
		}
	})
}

func TestEpoch_Remaining(t *testing.T) {
	e := First(testStart, 100*time.Second)

	if got := e.Remaining(testStart.Add(40 * time.Second)); got != 60*time.Second {
		t.Errorf("Remaining mid epoch: got %v, want 60s", got)
	}
	if got := e.Remaining(testStart.Add(200 * time.Second)); got != 0 {
		t.Errorf("Remaining past due: got %v, want 0", got)
	}
}

func TestEpoch_Finalize(t *testing.T) {
	e := First(testStart, 100*time.Second)
	cycleAt := testStart.Add(101 * time.Second)

	t.Run("before due", func(t *testing.T) {
		_, _, err := e.Finalize(500, testStart.Add(99*time.Second))
		if !errors.Is(err, ErrNotReady) {
			t.Errorf("got %v, want ErrNotReady", err)
		}
	})

	t.Run("negative reward pool", func(t *testing.T) {
		_, _, err := e.Finalize(-1, cycleAt)
		if !errors.Is(err, ErrInvalidRewardPool) {
			t.Errorf("got %v, want ErrInvalidRewardPool", err)
		}
	})

	t.Run("seals and opens successor", func(t *testing.T) {
		sealed, next, err := e.Finalize(500, cycleAt)
		if err != nil {
			t.Fatalf("Finalize: %v", err)
		}
		if !sealed.Finalized || sealed.RewardPool != 500 || sealed.Index != 0 {
			t.Errorf("sealed epoch wrong: %+v", sealed)
		}
		if next.Index != 1 {
			t.Errorf("next.Index: got %d, want 1", next.Index)
		}
		if !next.Start.Equal(cycleAt) {
			t.Errorf("next.Start: got %v, want cycle time %v", next.Start, cycleAt)
		}
		if next.Duration != e.Duration {
			t.Errorf("next.Duration: got %v, want %v", next.Duration, e.Duration)
		}
		if next.Finalized || next.RewardPool != 0 {
			t.Errorf("successor must open clean: %+v", next)
		}
	})

	t.Run("receiver unchanged", func(t *testing.T) {
		if _, _, err := e.Finalize(500, cycleAt); err != nil {
			t.Fatalf("Finalize: %v", err)
		}
		if e.Finalized {
			t.Error("Finalize mutated its receiver")
		}
	})

	t.Run("already finalized", func(t *testing.T) {
		sealed, _, err := e.Finalize(500, cycleAt)
		if err != nil {
			t.Fatalf("Finalize: %v", err)
		}
		_, _, err = sealed.Finalize(500, cycleAt.Add(200*time.Second))
		if !errors.Is(err, ErrAlreadyFinalized) {
			t.Errorf("got %v, want ErrAlreadyFinalized", err)
		}
	})

	t.Run("zero reward pool is valid", func(t *testing.T) {
		sealed, _, err := e.Finalize(0, cycleAt)
		if err != nil {
			t.Fatalf("Finalize with zero pool: %v", err)
		}
		if !sealed.Finalized || sealed.RewardPool != 0 {
			t.Errorf("sealed epoch wrong: %+v", sealed)
		}
	})

	t.Run("index exhaustion", func(t *testing.T) {
		last := Epoch{Index: math.MaxUint32, Start: testStart, Duration: time.Second}
		_, _, err := last.Finalize(0, testStart.Add(time.Hour))
		if !errors.Is(err, ErrMaxIndexReached) {
			t.Errorf("got %v, want ErrMaxIndexReached", err)
		}
	})
}
