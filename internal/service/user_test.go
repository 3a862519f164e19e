package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huellitas/huellitas-api/internal/authz"
	"github.com/huellitas/huellitas-api/internal/crypto"
	"github.com/huellitas/huellitas-api/internal/model"
)

func validRegistration() model.CreateUserRequest {
	return model.CreateUserRequest{
		Name:     "Lucia",
		Email:    "lucia@mail.com",
		Password: "miClave123",
		Phone:    "1144556677",
		Address:  "Av. Siempreviva 742",
	}
}

func adminActor() *model.User {
	return &model.User{ID: 99, Name: "ADMIN", Role: model.RoleAdmin, Active: true}
}

func regularActor(id int64) *model.User {
	return &model.User{ID: id, Name: "LUCIA", Role: model.RoleUser, Active: true}
}

func TestRegister(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)

	resp, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, resp.Role)
	assert.True(t, resp.Active)

	stored := users.users[resp.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "miClave123", stored.PasswordHash)

	match, err := crypto.VerifyPassword("miClave123", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, match)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	tests := []struct {
		name   string
		mutate func(*model.CreateUserRequest)
	}{
		{"password too short", func(r *model.CreateUserRequest) { r.Password = "abc12" }},
		{"password too long", func(r *model.CreateUserRequest) { r.Password = "estaClaveEsDemasiadoLarga" }},
		{"name too short", func(r *model.CreateUserRequest) { r.Name = "Lu" }},
		{"name with digits", func(r *model.CreateUserRequest) { r.Name = "Lucia99" }},
		{"bad email", func(r *model.CreateUserRequest) { r.Email = "no-es-correo" }},
		{"bad phone", func(r *model.CreateUserRequest) { r.Phone = "12ab34" }},
		{"unknown role", func(r *model.CreateUserRequest) { r.Role = "SUPER_ROLE" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegistration()
			tt.mutate(&req)

			var vErr *ValidationError
			_, err := svc.Register(context.Background(), req)
			assert.ErrorAs(t, err, &vErr)
		})
	}
}

func TestRegisterCountsCharactersNotBytes(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)

	// 14 characters but more bytes; must pass the 3..15 rule
	req := validRegistration()
	req.Name = "Agustín García"
	resp, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Agustín García", resp.Name)

	// 15 characters, 16 bytes
	req = validRegistration()
	req.Email = "otra@mail.com"
	req.Password = "ñaaaaaaaaaaaaaa"
	_, err = svc.Register(context.Background(), req)
	require.NoError(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegistration())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestListRequiresAdmin(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(regularActor(1)))

	_, err := svc.List(context.Background(), regularActor(1), 0, 5)
	assert.ErrorIs(t, err, authz.ErrForbidden)

	resp, err := svc.List(context.Background(), adminActor(), 0, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
}

func TestGetSelfOrAdmin(t *testing.T) {
	users := newFakeUserRepo(regularActor(1), regularActor(2))
	svc := NewUserService(users)

	_, err := svc.Get(context.Background(), regularActor(1), 1)
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), regularActor(1), 2)
	assert.ErrorIs(t, err, authz.ErrForbidden)

	_, err = svc.Get(context.Background(), adminActor(), 2)
	assert.NoError(t, err)
}

func TestUpdateRoleChangeIsAdminOnly(t *testing.T) {
	users := newFakeUserRepo(regularActor(1))
	svc := NewUserService(users)

	role := model.RoleAdmin
	_, err := svc.Update(context.Background(), regularActor(1), 1, model.UpdateUserRequest{Role: &role})
	assert.ErrorIs(t, err, authz.ErrForbidden)
	assert.Equal(t, model.RoleUser, users.users[1].Role)

	resp, err := svc.Update(context.Background(), adminActor(), 1, model.UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, resp.Role)
}

func TestUpdateRehashesPassword(t *testing.T) {
	users := newFakeUserRepo(regularActor(1))
	svc := NewUserService(users)

	pass := "claveNueva"
	_, err := svc.Update(context.Background(), regularActor(1), 1, model.UpdateUserRequest{Password: &pass})
	require.NoError(t, err)

	assert.NotEqual(t, pass, users.users[1].PasswordHash)
	match, err := crypto.VerifyPassword(pass, users.users[1].PasswordHash)
	require.NoError(t, err)
	assert.True(t, match)
}

func TestDeleteSoftDisables(t *testing.T) {
	users := newFakeUserRepo(regularActor(1))
	svc := NewUserService(users)

	_, err := svc.Delete(context.Background(), regularActor(1), 1)
	assert.ErrorIs(t, err, authz.ErrForbidden)

	resp, err := svc.Delete(context.Background(), adminActor(), 1)
	require.NoError(t, err)
	assert.False(t, resp.Active)

	// the row stays, only the flag flips
	require.NotNil(t, users.users[1])
	assert.False(t, users.users[1].Active)
}

func TestDeleteUnknownUser(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.Delete(context.Background(), adminActor(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
