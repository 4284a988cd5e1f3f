// Package policy decides what an actor may do. Every service asks CanAccess
// instead of branching on roles itself.
package policy

import "github.com/farellandr/seatsavvy/internal/models"

type Kind string

const (
	KindCatalog Kind = "catalog"
	KindEvent   Kind = "event"
	KindTicket  Kind = "ticket"
	KindScanner Kind = "scanner"
)

type Action string

const (
	ActionList     Action = "list"
	ActionView     Action = "view"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionCancel   Action = "cancel"
	ActionPurchase Action = "purchase"
	ActionVerify   Action = "verify"
	ActionRedeem   Action = "redeem"
	ActionStats    Action = "stats"
)

// Resource is what an action targets. OwnerID is the organizer of the event
// (or of the ticket's event). BuyerID is set for tickets only.
type Resource struct {
	Kind    Kind
	OwnerID string
	BuyerID string
}

func Catalog() Resource { return Resource{Kind: KindCatalog} }

// Scanner is the gate check-in desk itself, before any ticket is known.
func Scanner() Resource { return Resource{Kind: KindScanner} }

func Event(organizerID string) Resource { return Resource{Kind: KindEvent, OwnerID: organizerID} }

func Ticket(organizerID, buyerID string) Resource {
	return Resource{Kind: KindTicket, OwnerID: organizerID, BuyerID: buyerID}
}

func CanAccess(actor models.UserProfile, resource Resource, action Action) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleManager:
		return managerCan(actor, resource, action)
	case models.RoleCustomer:
		return customerCan(actor, resource, action)
	case models.RoleGuest:
		return guestCan(resource, action)
	}
	return false
}

func managerCan(actor models.UserProfile, resource Resource, action Action) bool {
	owns := matches(resource.OwnerID, actor.ID)
	switch action {
	case ActionList, ActionStats:
		return resource.Kind == KindCatalog
	case ActionCreate:
		return resource.Kind == KindCatalog || owns
	case ActionView:
		if resource.Kind == KindTicket {
			return owns || matches(resource.BuyerID, actor.ID)
		}
		return resource.Kind == KindEvent
	case ActionPurchase:
		return resource.Kind == KindEvent
	case ActionVerify, ActionRedeem:
		return resource.Kind == KindScanner || owns
	case ActionUpdate, ActionCancel:
		return owns
	}
	return false
}

func customerCan(actor models.UserProfile, resource Resource, action Action) bool {
	switch action {
	case ActionList:
		return resource.Kind == KindCatalog
	case ActionPurchase:
		return resource.Kind == KindEvent
	case ActionView:
		if resource.Kind == KindTicket {
			return matches(resource.BuyerID, actor.ID)
		}
		return resource.Kind == KindEvent
	}
	return false
}

func guestCan(resource Resource, action Action) bool {
	switch action {
	case ActionList:
		return resource.Kind == KindCatalog
	case ActionView, ActionPurchase:
		return resource.Kind == KindEvent
	}
	return false
}

func matches(ownerID, actorID string) bool {
	return ownerID != "" && ownerID == actorID
}

// EventScope is the organizer filter applied when actor lists events.
// An empty result means the full catalog.
func EventScope(actor models.UserProfile) string {
	if actor.Role == models.RoleManager {
		return actor.ID
	}
	return ""
}

// TicketScope reports how ticket listings are narrowed for actor: by the
// organizer of the ticket's event for managers, by buyer for customers.
// ok is false for actors that may not list tickets at all.
func TicketScope(actor models.UserProfile) (organizerID, buyerID string, ok bool) {
	switch actor.Role {
	case models.RoleAdmin:
		return "", "", true
	case models.RoleManager:
		return actor.ID, "", true
	case models.RoleCustomer:
		return "", actor.ID, actor.ID != ""
	}
	return "", "", false
}
