package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShiftValidate(t *testing.T) {
	shift := Shift{DayOfWeek: "MONDAY", StartTime: "09:00", EndTime: "17:00"}
	assert.NoError(t, shift.Validate())

	shift.EndTime = "08:00"
	assert.Error(t, shift.Validate(), "end before start")

	shift.EndTime = "09:00"
	assert.Error(t, shift.Validate(), "zero-length shift")

	shift.EndTime = "17:00"
	shift.DayOfWeek = "SOMEDAY"
	assert.Error(t, shift.Validate())

	shift.DayOfWeek = "MONDAY"
	shift.StartTime = "25:00"
	assert.Error(t, shift.Validate())
}

func TestTableValidate(t *testing.T) {
	table := RestaurantTable{TableNumber: 1, Capacity: 4}
	assert.NoError(t, table.Validate())

	table.TableNumber = 0
	assert.Error(t, table.Validate())

	table = RestaurantTable{TableNumber: 2, Capacity: 0}
	assert.Error(t, table.Validate())
}

func TestReservationRules(t *testing.T) {
	code := NewConfirmationCode()
	assert.Len(t, code, 36)
	assert.NotEqual(t, code, NewConfirmationCode())

	r := Reservation{Status: ReservationPending}
	assert.True(t, r.CanBeCancelled())
	r.Status = ReservationConfirmed
	assert.True(t, r.CanBeCancelled())
	r.Status = ReservationCompleted
	assert.False(t, r.CanBeCancelled())
	r.Status = ReservationCancelled
	assert.False(t, r.CanBeCancelled())
}
