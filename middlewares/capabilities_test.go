package middlewares

import (
	"testing"

	"github.com/Felmyb/SistemaSKC/entity"
	"github.com/stretchr/testify/assert"
)

func TestHasCapability(t *testing.T) {
	cases := []struct {
		role string
		cap  string
		want bool
	}{
		{entity.RoleCustomer, CapMenuView, true},
		{entity.RoleCustomer, CapOrdersCreate, true},
		{entity.RoleCustomer, CapOrdersCancel, true},
		{entity.RoleCustomer, CapInventoryAdjust, false},
		{entity.RoleCustomer, CapOrdersUpdateStatus, false},
		{entity.RoleCustomer, CapMenuManage, false},

		{entity.RoleCook, CapOrdersUpdateStatus, true},
		{entity.RoleCook, CapKitchenFeed, true},
		{entity.RoleCook, CapInventoryView, true},
		{entity.RoleCook, CapInventoryAdjust, false},
		{entity.RoleCook, CapOrdersCreate, false},

		{entity.RoleWaiter, CapOrdersCreate, true},
		{entity.RoleWaiter, CapOrdersCancel, true},
		{entity.RoleWaiter, CapInventoryView, false},

		{entity.RoleInventoryManager, CapInventoryAdjust, true},
		{entity.RoleInventoryManager, CapMenuManage, true},
		{entity.RoleInventoryManager, CapTransactionsView, true},
		{entity.RoleInventoryManager, CapOrdersUpdateStatus, false},
		{entity.RoleInventoryManager, CapUsersManage, false},

		{"", CapMenuView, false},
		{"GUEST", CapOrdersView, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HasCapability(tc.role, tc.cap),
			"role %q cap %q", tc.role, tc.cap)
	}

	// The administrator holds every capability any other role has.
	for role, caps := range roleCapabilities {
		if role == entity.RoleAdministrator {
			continue
		}
		for _, cap := range caps {
			assert.True(t, HasCapability(entity.RoleAdministrator, cap),
				"administrator missing %q held by %s", cap, role)
		}
	}
}
