package policy

import (
	"testing"

	"github.com/farellandr/seatsavvy/internal/models"
)

var (
	admin    = models.UserProfile{ID: "admin1", Role: models.RoleAdmin}
	managerA = models.UserProfile{ID: "manager1", Role: models.RoleManager}
	managerB = models.UserProfile{ID: "manager2", Role: models.RoleManager}
	customer = models.UserProfile{ID: "user1", Role: models.RoleCustomer}
	guest    = models.Guest()
)

func TestCanAccess(t *testing.T) {
	ownedByA := Event("manager1")
	ticketOfA := Ticket("manager1", "user1")

	tests := []struct {
		name     string
		actor    models.UserProfile
		resource Resource
		action   Action
		want     bool
	}{
		{"admin updates any event", admin, ownedByA, ActionUpdate, true},
		{"admin verifies any ticket", admin, Ticket("manager2", "user9"), ActionVerify, true},
		{"owner updates event", managerA, ownedByA, ActionUpdate, true},
		{"owner cancels event", managerA, ownedByA, ActionCancel, true},
		{"other manager cannot update", managerB, ownedByA, ActionUpdate, false},
		{"other manager cannot cancel", managerB, ownedByA, ActionCancel, false},
		{"other manager cannot verify", managerB, ticketOfA, ActionVerify, false},
		{"other manager cannot redeem", managerB, ticketOfA, ActionRedeem, false},
		{"other manager cannot view ticket", managerB, ticketOfA, ActionView, false},
		{"owner verifies ticket", managerA, ticketOfA, ActionVerify, true},
		{"owner redeems ticket", managerA, ticketOfA, ActionRedeem, true},
		{"owner views ticket", managerA, ticketOfA, ActionView, true},
		{"manager views ticket they bought", managerB, Ticket("manager1", "manager2"), ActionView, true},
		{"manager opens scanner", managerA, Scanner(), ActionVerify, true},
		{"manager with empty owner cannot verify", managerA, Ticket("", ""), ActionVerify, false},
		{"manager creates in catalog", managerA, Catalog(), ActionCreate, true},
		{"manager creates own event", managerA, ownedByA, ActionCreate, true},
		{"manager cannot create for another organizer", managerB, ownedByA, ActionCreate, false},
		{"manager lists catalog", managerA, Catalog(), ActionList, true},
		{"manager sees stats", managerA, Catalog(), ActionStats, true},
		{"customer lists catalog", customer, Catalog(), ActionList, true},
		{"customer views event", customer, ownedByA, ActionView, true},
		{"customer purchases", customer, ownedByA, ActionPurchase, true},
		{"customer cannot create", customer, Catalog(), ActionCreate, false},
		{"customer cannot update", customer, ownedByA, ActionUpdate, false},
		{"customer cannot cancel", customer, ownedByA, ActionCancel, false},
		{"customer cannot open scanner", customer, Scanner(), ActionVerify, false},
		{"customer cannot verify", customer, ticketOfA, ActionVerify, false},
		{"customer cannot see stats", customer, Catalog(), ActionStats, false},
		{"customer views own ticket", customer, ticketOfA, ActionView, true},
		{"customer cannot view others ticket", customer, Ticket("manager1", "user2"), ActionView, false},
		{"guest lists catalog", guest, Catalog(), ActionList, true},
		{"guest purchases", guest, ownedByA, ActionPurchase, true},
		{"guest cannot view tickets", guest, Ticket("manager1", ""), ActionView, false},
		{"guest cannot verify", guest, Scanner(), ActionVerify, false},
		{"unknown role denied", models.UserProfile{ID: "x", Role: "ghost"}, Catalog(), ActionList, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAccess(tt.actor, tt.resource, tt.action); got != tt.want {
				t.Fatalf("CanAccess() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScopes(t *testing.T) {
	if got := EventScope(managerA); got != "manager1" {
		t.Fatalf("manager scope = %q", got)
	}
	if got := EventScope(admin); got != "" {
		t.Fatalf("admin scope = %q", got)
	}
	if got := EventScope(customer); got != "" {
		t.Fatalf("customer scope = %q", got)
	}

	tests := []struct {
		actor     models.UserProfile
		organizer string
		buyer     string
		ok        bool
	}{
		{admin, "", "", true},
		{managerA, "manager1", "", true},
		{customer, "", "user1", true},
		{guest, "", "", false},
	}
	for _, tt := range tests {
		org, buyer, ok := TicketScope(tt.actor)
		if org != tt.organizer || buyer != tt.buyer || ok != tt.ok {
			t.Errorf("TicketScope(%s) = %q, %q, %v", tt.actor.Role, org, buyer, ok)
		}
	}
}
