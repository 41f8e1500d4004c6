package entity

import (
	"gorm.io/gorm"
)

// Role values stored on User.Role.
const (
	RoleCustomer         = "CUSTOMER"
	RoleCook             = "COOK"
	RoleInventoryManager = "INVENTORY_MANAGER"
	RoleAdministrator    = "ADMINISTRATOR"
	RoleWaiter           = "WAITER"
)

type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `json:"-"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `gorm:"not null;default:CUSTOMER;index" json:"role"`

	// Relations, preloaded only when needed
	Orders       []Order                `gorm:"foreignKey:CustomerID" json:"-"`
	Transactions []InventoryTransaction `gorm:"foreignKey:UserID" json:"-"`
}

// IsStaff reports whether the user holds any non-customer role.
func (u *User) IsStaff() bool {
	switch u.Role {
	case RoleCook, RoleInventoryManager, RoleAdministrator, RoleWaiter:
		return true
	}
	return false
}
