package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpot_StatusInvariant_ExactlyOneHolds(t *testing.T) {
	// GIVEN a fresh spot
	s := &Spot{ID: SpotID{Floor: 0, Seq: 1}, Location: Location{X: 1, Y: 1}, Type: SpotStandard}

	// THEN it starts available with no occupant
	assert.Equal(t, StatusAvailable, s.Status())
	_, occupied := s.Occupant()
	assert.False(t, occupied)

	// WHEN occupied
	assert.True(t, s.Occupy(7, 10))
	assert.Equal(t, StatusOccupied, s.Status())
	occupant, occupied := s.Occupant()
	assert.True(t, occupied)
	assert.Equal(t, 7, occupant)

	// THEN it cannot be reserved or re-occupied while occupied
	assert.False(t, s.Reserve(10, 30))
	assert.False(t, s.Occupy(8, 11))

	// WHEN vacated
	_, ok := s.Vacate(20)
	assert.True(t, ok)
	assert.Equal(t, StatusAvailable, s.Status())
	_, occupied = s.Occupant()
	assert.False(t, occupied)
}

func TestSpot_OccupyVacate_RoundTripDuration(t *testing.T) {
	s := &Spot{ID: SpotID{Floor: 0, Seq: 1}, Type: SpotStandard}

	if !s.Occupy(1, 100) {
		t.Fatal("Occupy on available spot failed")
	}
	duration, ok := s.Vacate(160)
	if !ok {
		t.Fatal("Vacate on occupied spot failed")
	}
	if duration != 60 {
		t.Errorf("duration: got %.1f, want 60", duration)
	}
	if duration < 0 {
		t.Errorf("duration must be non-negative, got %.1f", duration)
	}
}

func TestSpot_Vacate_NotOccupied_Fails(t *testing.T) {
	s := &Spot{ID: SpotID{Floor: 0, Seq: 1}}
	if _, ok := s.Vacate(10); ok {
		t.Error("Vacate on available spot should fail")
	}
}

func TestSpot_ReserveCancel(t *testing.T) {
	s := &Spot{ID: SpotID{Floor: 0, Seq: 1}}

	assert.True(t, s.Reserve(100, DefaultReservationMinutes))
	assert.Equal(t, StatusReserved, s.Status())
	until, ok := s.ReservedUntil()
	assert.True(t, ok)
	assert.Equal(t, 130.0, until)

	// A reserved spot cannot be occupied or re-reserved.
	assert.False(t, s.Occupy(1, 100))
	assert.False(t, s.Reserve(100, 10))

	assert.True(t, s.CancelReservation())
	assert.Equal(t, StatusAvailable, s.Status())
	assert.False(t, s.CancelReservation())
}

func TestSpotID_String(t *testing.T) {
	id := SpotID{Floor: 2, Seq: 17}
	assert.Equal(t, "2-17", id.String())
}
