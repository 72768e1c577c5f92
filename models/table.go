package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TableStatus represents the occupancy state of a restaurant table
type TableStatus string

const (
	TableAvailable    TableStatus = "AVAILABLE"
	TableOccupied     TableStatus = "OCCUPIED"
	TableReserved     TableStatus = "RESERVED"
	TableOutOfService TableStatus = "OUT_OF_SERVICE"
)

type RestaurantTable struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	TableNumber int         `json:"table_number" gorm:"uniqueIndex;not null"`
	Capacity    int         `json:"capacity" gorm:"not null"`
	Location    string      `json:"location,omitempty" gorm:"size:100"`
	Status      TableStatus `json:"status" gorm:"not null;size:20;default:'AVAILABLE'"`
	Active      bool        `json:"active" gorm:"not null;default:true"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Validate checks the table's basic invariants
func (t *RestaurantTable) Validate() error {
	if t.TableNumber <= 0 {
		return fmt.Errorf("table number must be positive")
	}
	if t.Capacity <= 0 {
		return fmt.Errorf("table capacity must be positive")
	}
	return nil
}

// ReservationStatus represents the lifecycle of a reservation
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationCompleted ReservationStatus = "COMPLETED"
	ReservationNoShow    ReservationStatus = "NO_SHOW"
)

type Reservation struct {
	ID uint `json:"id" gorm:"primaryKey"`

	// Code customers use to reference their reservation
	ConfirmationCode string `json:"confirmation_code" gorm:"uniqueIndex;not null;size:36"`

	CustomerID *uint  `json:"customer_id,omitempty"`
	Customer   *User  `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Name       string `json:"name" gorm:"not null;size:100"`
	Phone      string `json:"phone" gorm:"not null;size:20"`

	TableID *uint            `json:"table_id,omitempty"`
	Table   *RestaurantTable `json:"table,omitempty" gorm:"foreignKey:TableID"`

	ReservedFor time.Time         `json:"reserved_for" gorm:"not null"`
	PartySize   int               `json:"party_size" gorm:"not null"`
	Notes       string            `json:"notes,omitempty" gorm:"size:500"`
	Status      ReservationStatus `json:"status" gorm:"not null;size:20;default:'PENDING'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewConfirmationCode generates the customer-facing reservation code
func NewConfirmationCode() string {
	return uuid.New().String()
}

// Validate checks the reservation's basic invariants
func (r *Reservation) Validate() error {
	if r.PartySize <= 0 {
		return fmt.Errorf("party size must be positive")
	}
	if r.ReservedFor.Before(time.Now()) {
		return fmt.Errorf("reservation time must be in the future")
	}
	return nil
}

// CanBeCancelled reports whether the reservation may still be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == ReservationPending || r.Status == ReservationConfirmed
}
