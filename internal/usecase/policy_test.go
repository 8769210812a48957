package usecase_test

import (
	"testing"

	"marketplace/internal/data/entity"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanActOn(t *testing.T) {
	admin := entity.Actor{UserID: uuid.New(), UserType: entity.UserTypeAdmin}
	seller := entity.Actor{UserID: uuid.New(), UserType: entity.UserTypeSeller}
	other := uuid.New()

	allActions := []usecase.Action{
		usecase.ActionView,
		usecase.ActionUpdate,
		usecase.ActionSelfDeactivate,
		usecase.ActionActivate,
		usecase.ActionDisable,
		usecase.ActionSuspend,
		usecase.ActionAdminDelete,
		usecase.ActionSell,
	}
	buyer := entity.Actor{UserID: uuid.New(), UserType: entity.UserTypeBuyer}

	tests := []struct {
		name    string
		actor   entity.Actor
		target  uuid.UUID
		allowed map[usecase.Action]bool
	}{
		{
			name:   "admin on self",
			actor:  admin,
			target: admin.UserID,
			allowed: map[usecase.Action]bool{
				usecase.ActionView:           true,
				usecase.ActionUpdate:         true,
				usecase.ActionSelfDeactivate: true,
				usecase.ActionActivate:       true,
				usecase.ActionSell:           true,
			},
		},
		{
			name:   "admin on other",
			actor:  admin,
			target: other,
			allowed: map[usecase.Action]bool{
				usecase.ActionView:        true,
				usecase.ActionUpdate:      true,
				usecase.ActionActivate:    true,
				usecase.ActionDisable:     true,
				usecase.ActionSuspend:     true,
				usecase.ActionAdminDelete: true,
				usecase.ActionSell:        true,
			},
		},
		{
			name:   "seller on self",
			actor:  seller,
			target: seller.UserID,
			allowed: map[usecase.Action]bool{
				usecase.ActionView:           true,
				usecase.ActionUpdate:         true,
				usecase.ActionSelfDeactivate: true,
				usecase.ActionSell:           true,
			},
		},
		{
			name:   "buyer on self",
			actor:  buyer,
			target: buyer.UserID,
			allowed: map[usecase.Action]bool{
				usecase.ActionView:           true,
				usecase.ActionUpdate:         true,
				usecase.ActionSelfDeactivate: true,
			},
		},
		{
			name:    "seller on other",
			actor:   seller,
			target:  other,
			allowed: map[usecase.Action]bool{},
		},
		{
			name:    "anonymous",
			actor:   entity.Actor{},
			target:  other,
			allowed: map[usecase.Action]bool{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, action := range allActions {
				assert.Equal(t, tt.allowed[action], usecase.CanActOn(tt.actor, tt.target, action),
					"action %s", action)
			}
		})
	}
}

func TestStatusAction(t *testing.T) {
	assert.Equal(t, usecase.ActionActivate, usecase.StatusAction(entity.StatusActive))
	assert.Equal(t, usecase.ActionDisable, usecase.StatusAction(entity.StatusInactive))
	assert.Equal(t, usecase.ActionSuspend, usecase.StatusAction(entity.StatusSuspended))
}
