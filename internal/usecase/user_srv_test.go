package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"marketplace/internal/data/entity"
	"marketplace/internal/dto/request"
	"marketplace/internal/usecase"
	"marketplace/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateSelfIgnoresPrivilegedFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := f.seed(t, "alice", entity.UserTypeBuyer, entity.StatusActive, strongPassword)

	body := `{"full_name":"Alice Liddell","user_type":"admin","status":"suspended","username":"queen","profile":{"city":"Oxford"}}`
	var req request.UpdateUserRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	resp, err := f.svc.User.UpdateSelf(ctx, entity.ActorFromUser(user), &req)
	require.NoError(t, err)

	require.NotNil(t, resp.FullName)
	assert.Equal(t, "Alice Liddell", *resp.FullName)
	assert.Equal(t, entity.UserTypeBuyer, resp.UserType)
	assert.Equal(t, entity.StatusActive, resp.Status)
	assert.Equal(t, "alice", resp.Username)
	require.NotNil(t, resp.Profile)
	require.NotNil(t, resp.Profile.City)
	assert.Equal(t, "Oxford", *resp.Profile.City)

	stored := f.users.get(t, user.ID)
	assert.Equal(t, entity.UserTypeBuyer, stored.UserType)
	assert.Equal(t, entity.StatusActive, stored.Status)
}

func TestUpdateSelfPhone(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := f.seed(t, "alice", entity.UserTypeBuyer, entity.StatusActive, strongPassword)

	_, err := f.svc.User.UpdateSelf(ctx, entity.ActorFromUser(user), &request.UpdateUserRequest{
		Phone: utils.StringPtr("not a phone"),
	})
	var verr *usecase.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "phone")

	resp, err := f.svc.User.UpdateSelf(ctx, entity.ActorFromUser(user), &request.UpdateUserRequest{
		Phone: utils.StringPtr("(650) 253-0000"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Phone)
	assert.Equal(t, "+16502530000", *resp.Phone)
}

func TestDeactivateSelf(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := f.seed(t, "alice", entity.UserTypeSeller, entity.StatusActive, strongPassword)
	actor := entity.ActorFromUser(user)

	require.NoError(t, f.svc.User.DeactivateSelf(ctx, actor))
	assert.Equal(t, entity.StatusInactive, f.users.get(t, user.ID).Status)

	_, err := f.svc.Auth.Login(ctx, &request.LoginRequest{Username: "alice", Password: strongPassword})
	assert.ErrorIs(t, err, usecase.ErrAccountDisabled)

	assert.ErrorIs(t, f.svc.User.DeactivateSelf(ctx, actor), usecase.ErrAccountDisabled)
}

func TestDeactivateSelfWhileSuspended(t *testing.T) {
	f := newFixture(t)
	user := f.seed(t, "alice", entity.UserTypeBuyer, entity.StatusSuspended, strongPassword)

	err := f.svc.User.DeactivateSelf(context.Background(), entity.ActorFromUser(user))
	var notActive *usecase.AccountNotActiveError
	require.ErrorAs(t, err, &notActive)
	assert.Equal(t, entity.StatusSuspended, f.users.get(t, user.ID).Status)
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := f.seed(t, "alice", entity.UserTypeBuyer, entity.StatusActive, strongPassword)
	actor := entity.ActorFromUser(user)

	profile, err := f.svc.User.GetProfile(ctx, actor)
	require.NoError(t, err)
	assert.Nil(t, profile.Bio)

	updated, err := f.svc.User.UpdateProfile(ctx, actor, &request.ProfileRequest{
		Bio:     utils.StringPtr("Collector of teapots"),
		Country: utils.StringPtr("UK"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Collector of teapots", *updated.Bio)

	// absent fields are left alone
	updated, err = f.svc.User.UpdateProfile(ctx, actor, &request.ProfileRequest{City: utils.StringPtr("Leeds")})
	require.NoError(t, err)
	assert.Equal(t, "Collector of teapots", *updated.Bio)
	assert.Equal(t, "UK", *updated.Country)
	assert.Equal(t, "Leeds", *updated.City)
}

func TestGetMeRequiresActor(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.User.GetMe(context.Background(), entity.Actor{})
	assert.ErrorIs(t, err, usecase.ErrForbidden)
}

func TestUpdateSelfKeepsConcurrentSuspension(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := f.seed(t, "alice", entity.UserTypeSeller, entity.StatusActive, strongPassword)

	users := &interleavedUsers{
		memUsers: f.users,
		target:   user.ID,
		between: func() {
			require.NoError(t, f.users.UpdateStatus(ctx, user.ID, entity.StatusSuspended))
		},
	}
	svc := f.serviceWith(users)

	resp, err := svc.User.UpdateSelf(ctx, entity.ActorFromUser(user), &request.UpdateUserRequest{
		FullName: utils.StringPtr("Alice Liddell"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSuspended, resp.Status)

	stored := f.users.get(t, user.ID)
	assert.Equal(t, entity.StatusSuspended, stored.Status)
	assert.Equal(t, entity.UserTypeSeller, stored.UserType)
	require.NotNil(t, stored.FullName)
	assert.Equal(t, "Alice Liddell", *stored.FullName)
}
