package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVehicle_Preferences(t *testing.T) {
	v := NewVehicle(1, VehicleElectric, 10, 60)
	assert.False(t, v.HasPreference(PrefNearEntrance))

	v.SetPreferences(map[string]bool{PrefNearEntrance: true, "covered_spot": false})
	assert.True(t, v.HasPreference(PrefNearEntrance))
	assert.False(t, v.HasPreference("covered_spot"))
	assert.False(t, v.HasPreference("unknown_flag"))
}

func TestVehicle_AssignSpot(t *testing.T) {
	v := NewVehicle(2, VehicleStandard, 0, 30)
	assert.False(t, v.Assigned)

	id := SpotID{Floor: 1, Seq: 7}
	v.AssignSpot(id)

	assert.True(t, v.Assigned)
	assert.Equal(t, id, v.AssignedSpot)
}

func TestVehicle_CloneIsIndependent(t *testing.T) {
	v := NewVehicle(3, VehicleHandicap, 5, 45)
	v.SetPreferences(map[string]bool{PrefNearEntrance: true})

	cp := v.Clone()
	cp.AssignSpot(SpotID{Floor: 0, Seq: 1})
	cp.Preferences["easy_exit"] = true

	assert.False(t, v.Assigned)
	assert.False(t, v.HasPreference("easy_exit"))
	assert.Equal(t, v.ID, cp.ID)
}

func TestVehicle_String(t *testing.T) {
	v := NewVehicle(4, VehicleStandard, 0, 30)
	assert.Equal(t, "Vehicle 4 (standard) - unassigned", v.String())

	v.AssignSpot(SpotID{Floor: 2, Seq: 9})
	assert.Equal(t, "Vehicle 4 (standard) - Spot: 2-9", v.String())
}
