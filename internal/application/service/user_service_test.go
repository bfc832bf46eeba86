package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/quotation-api/internal/domain/entity"
	infraRepo "github.com/sangkips/quotation-api/internal/infrastructure/repository"
	"github.com/sangkips/quotation-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUserService(env *testEnv) *UserService {
	return NewUserService(
		infraRepo.NewTransactor(env.db),
		infraRepo.NewUserRepository(env.db),
		infraRepo.NewRoleRepository(env.db),
		zap.NewNop(),
	)
}

func ptr[T any](v T) *T { return &v }

func TestUserService_PromoteAndDisableOperator(t *testing.T) {
	env, _ := newAuthEnv(t)
	users := newUserService(env)
	ctx := context.Background()

	admin, err := env.auth.Login(ctx, &LoginInput{Email: "admin@example.com", Password: "admin-pass"})
	require.NoError(t, err)
	staff, err := env.auth.CreateOperator(ctx, &CreateOperatorInput{
		Name: "Luis", Email: "luis@example.com", Password: "luis-pass-1",
	})
	require.NoError(t, err)
	assert.False(t, staff.HasRole(entity.RoleAdmin))

	updated, err := users.UpdateUser(ctx, &UpdateUserInput{
		ActorID: admin.User.ID,
		UserID:  staff.ID,
		Role:    ptr(entity.RoleAdmin),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleAdmin}, updated.RoleNames())
	assert.Contains(t, updated.GetPermissions(), entity.PermissionManageServices)

	_, err = users.UpdateUser(ctx, &UpdateUserInput{
		ActorID: admin.User.ID,
		UserID:  staff.ID,
		Active:  ptr(false),
	})
	require.NoError(t, err)

	_, err = env.auth.Login(ctx, &LoginInput{Email: "luis@example.com", Password: "luis-pass-1"})
	requireAppError(t, err, http.StatusForbidden)
}

func TestUserService_RejectsSelfDemotion(t *testing.T) {
	env, _ := newAuthEnv(t)
	users := newUserService(env)
	ctx := context.Background()

	admin, err := env.auth.Login(ctx, &LoginInput{Email: "admin@example.com", Password: "admin-pass"})
	require.NoError(t, err)

	_, err = users.UpdateUser(ctx, &UpdateUserInput{
		ActorID: admin.User.ID,
		UserID:  admin.User.ID,
		Role:    ptr(entity.RoleStaff),
	})
	appErr := requireAppError(t, err, http.StatusUnprocessableEntity)
	assert.Equal(t, "role", appErr.Errors[0].Field)

	_, err = users.UpdateUser(ctx, &UpdateUserInput{
		ActorID: admin.User.ID,
		UserID:  admin.User.ID,
		Active:  ptr(false),
	})
	requireAppError(t, err, http.StatusUnprocessableEntity)
}

func TestUserService_UnknownRoleAndUser(t *testing.T) {
	env, _ := newAuthEnv(t)
	users := newUserService(env)
	ctx := context.Background()

	admin, err := env.auth.Login(ctx, &LoginInput{Email: "admin@example.com", Password: "admin-pass"})
	require.NoError(t, err)
	staff, err := env.auth.CreateOperator(ctx, &CreateOperatorInput{
		Name: "Eva", Email: "eva@example.com", Password: "eva-pass-12",
	})
	require.NoError(t, err)

	_, err = users.UpdateUser(ctx, &UpdateUserInput{ActorID: admin.User.ID, UserID: staff.ID, Role: ptr("owner")})
	requireAppError(t, err, http.StatusUnprocessableEntity)

	got, err := users.GetUser(ctx, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleStaff}, got.RoleNames())

	_, err = users.GetUser(ctx, uuid.New())
	requireAppError(t, err, http.StatusNotFound)
}

func TestUserService_ListUsersAndRoles(t *testing.T) {
	env, _ := newAuthEnv(t)
	users := newUserService(env)
	ctx := context.Background()

	_, err := env.auth.CreateOperator(ctx, &CreateOperatorInput{
		Name: "Zoe", Email: "zoe@example.com", Password: "zoe-pass-12",
	})
	require.NoError(t, err)

	page, err := users.ListUsers(ctx, &pagination.PaginationParams{Page: 1, PerPage: 10}, "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Pagination.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Admin", page.Items[0].Name)
	assert.NotEmpty(t, page.Items[1].Roles)

	page, err = users.ListUsers(ctx, nil, "zoe")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "zoe@example.com", page.Items[0].Email)

	roles, err := users.ListRoles(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, entity.RoleAdmin, roles[0].Name)
	assert.Len(t, roles[1].Permissions, len(roles[0].Permissions)-1)
}
