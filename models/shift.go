package models

import (
	"fmt"
	"time"
)

// Shift is a recurring weekly work slot assigned to an employee
type Shift struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	EmployeeID uint   `json:"employee_id" gorm:"not null"`
	Employee   *User  `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
	DayOfWeek  string `json:"day_of_week" gorm:"not null;size:10"` // MONDAY..SUNDAY

	// Times in 24h HH:MM format
	StartTime string `json:"start_time" gorm:"not null;size:5"`
	EndTime   string `json:"end_time" gorm:"not null;size:5"`

	Active    bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks day and time window consistency
func (s *Shift) Validate() error {
	if _, err := parseClock(s.StartTime); err != nil {
		return fmt.Errorf("invalid start time: %w", err)
	}
	end, err := parseClock(s.EndTime)
	if err != nil {
		return fmt.Errorf("invalid end time: %w", err)
	}
	start, _ := parseClock(s.StartTime)
	if !end.After(start) {
		return fmt.Errorf("shift end time must be after start time")
	}
	valid := false
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.DayOfWeek == weekdayName(d) {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid day of week: %s", s.DayOfWeek)
	}
	return nil
}

func parseClock(v string) (time.Time, error) {
	return time.Parse("15:04", v)
}

// ShiftAction records what happened at a punch
type ShiftAction string

const (
	ShiftClockIn  ShiftAction = "CLOCK_IN"
	ShiftClockOut ShiftAction = "CLOCK_OUT"
)

// ShiftHistory is the punch clock audit trail
type ShiftHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	EmployeeID uint        `json:"employee_id" gorm:"not null"`
	Employee   *User       `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
	Action     ShiftAction `json:"action" gorm:"not null;size:10"`
	Timestamp  time.Time   `json:"timestamp" gorm:"not null"`
	Notes      string      `json:"notes,omitempty" gorm:"size:500"`
	CreatedAt  time.Time   `json:"created_at"`
}
