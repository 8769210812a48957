package usecase

import (
	"marketplace/internal/data/entity"

	"github.com/google/uuid"
)

type Action string

const (
	ActionView           Action = "view"
	ActionUpdate         Action = "update"
	ActionSelfDeactivate Action = "self_deactivate"
	ActionActivate       Action = "activate"
	ActionDisable        Action = "disable"
	ActionSuspend        Action = "suspend"
	ActionAdminDelete    Action = "admin_delete"
	// ActionSell lists a product owned by the target user.
	ActionSell Action = "sell"
)

// StatusAction is the action implied by moving a user to status.
func StatusAction(status entity.UserStatus) Action {
	switch status {
	case entity.StatusActive:
		return ActionActivate
	case entity.StatusSuspended:
		return ActionSuspend
	default:
		return ActionDisable
	}
}

// CanActOn reports whether actor may perform action on the user identified
// by target. It has no side effects and does not touch storage.
func CanActOn(actor entity.Actor, target uuid.UUID, action Action) bool {
	if actor.UserID == uuid.Nil {
		return false
	}

	if actor.UserID == target {
		switch action {
		case ActionView, ActionUpdate, ActionSelfDeactivate:
			return true
		case ActionActivate:
			// an admin may reactivate themselves through the status endpoint
			return actor.IsAdmin()
		case ActionSell:
			return actor.UserType == entity.UserTypeSeller || actor.IsAdmin()
		default:
			return false
		}
	}

	if !actor.IsAdmin() {
		return false
	}
	return action != ActionSelfDeactivate
}

// authorize turns a CanActOn refusal into the matching error.
func authorize(actor entity.Actor, target uuid.UUID, action Action) error {
	if CanActOn(actor, target, action) {
		return nil
	}
	if actor.UserID == target && actor.UserID != uuid.Nil {
		return ErrSelfActionForbidden
	}
	return ErrForbidden
}

func requireAdmin(actor entity.Actor) error {
	if actor.UserID == uuid.Nil || !actor.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
