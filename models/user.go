package models

import "time"

// UserRole defines staff and customer roles in the system
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleWaiter   UserRole = "waiter"
	RoleChef     UserRole = "chef"
	RoleCashier  UserRole = "cashier"
	RoleDelivery UserRole = "delivery"
	RoleCustomer UserRole = "customer"
)

// StaffRoles are the roles created and managed by an admin
var StaffRoles = []UserRole{RoleAdmin, RoleWaiter, RoleChef, RoleCashier, RoleDelivery}

// IsStaff reports whether the role belongs to restaurant personnel
func (r UserRole) IsStaff() bool {
	for _, s := range StaffRoles {
		if r == s {
			return true
		}
	}
	return false
}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null;size:100"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null;size:100"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"not null;size:20;default:'customer'"`
	Phone        string    `json:"phone,omitempty" gorm:"size:20"`
	Address      string    `json:"address,omitempty" gorm:"size:500"`
	Active       bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
