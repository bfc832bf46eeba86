package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/sangkips/quotation-api/internal/config"
	"github.com/sangkips/quotation-api/internal/domain/entity"
	"github.com/sangkips/quotation-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/quotation-api/internal/infrastructure/repository"
	"github.com/sangkips/quotation-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthEnv(t *testing.T) (*testEnv, *utils.JWTManager) {
	t.Helper()
	env := newTestEnv(t)
	require.NoError(t, database.SeedDefaultData(env.db, config.AdminConfig{
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: "admin-pass",
	}, zap.NewNop()))

	jwt := utils.NewJWTManager("quotation-api", "test-secret", time.Hour, 24*time.Hour)
	env.auth = NewAuthService(infraRepo.NewUserRepository(env.db), infraRepo.NewRoleRepository(env.db), jwt, zap.NewNop())
	return env, jwt
}

func TestAuthService_LoginAndRefresh(t *testing.T) {
	env, jwt := newAuthEnv(t)
	ctx := context.Background()

	out, err := env.auth.Login(ctx, &LoginInput{Email: " Admin@Example.com ", Password: "admin-pass"})
	require.NoError(t, err)

	claims, err := jwt.ValidateAccessToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.UserID)
	assert.Contains(t, claims.Roles, entity.RoleAdmin)
	assert.Contains(t, claims.Permissions, entity.PermissionManageServices)

	refreshed, err := env.auth.RefreshToken(ctx, out.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = env.auth.RefreshToken(ctx, out.AccessToken+"x")
	requireAppError(t, err, http.StatusUnauthorized)
}

func TestAuthService_LoginRejections(t *testing.T) {
	env, _ := newAuthEnv(t)
	ctx := context.Background()

	_, err := env.auth.Login(ctx, &LoginInput{Email: "admin@example.com", Password: "wrong"})
	requireAppError(t, err, http.StatusUnauthorized)

	_, err = env.auth.Login(ctx, &LoginInput{Email: "nobody@example.com", Password: "admin-pass"})
	requireAppError(t, err, http.StatusUnauthorized)

	require.NoError(t, env.db.Model(&entity.User{}).Where("email = ?", "admin@example.com").Update("active", false).Error)
	_, err = env.auth.Login(ctx, &LoginInput{Email: "admin@example.com", Password: "admin-pass"})
	requireAppError(t, err, http.StatusForbidden)
}

func TestAuthService_CreateOperatorAndChangePassword(t *testing.T) {
	env, _ := newAuthEnv(t)
	ctx := context.Background()

	staff, err := env.auth.CreateOperator(ctx, &CreateOperatorInput{
		Name:     "Sam",
		Email:    "sam@example.com",
		Password: "staff-pass",
	})
	require.NoError(t, err)
	assert.True(t, staff.HasRole(entity.RoleStaff))
	assert.NotContains(t, staff.GetPermissions(), entity.PermissionManageServices)

	_, err = env.auth.CreateOperator(ctx, &CreateOperatorInput{Name: "Sam", Email: "SAM@example.com", Password: "staff-pass"})
	requireAppError(t, err, http.StatusConflict)

	_, err = env.auth.CreateOperator(ctx, &CreateOperatorInput{Name: "X", Email: "x@example.com", Password: "short"})
	requireAppError(t, err, http.StatusUnprocessableEntity)

	_, err = env.auth.CreateOperator(ctx, &CreateOperatorInput{Name: "X", Email: "x@example.com", Password: "long-enough", Role: "owner"})
	requireAppError(t, err, http.StatusUnprocessableEntity)

	err = env.auth.ChangePassword(ctx, &ChangePasswordInput{UserID: staff.ID, CurrentPassword: "nope", NewPassword: "new-password"})
	requireAppError(t, err, http.StatusUnprocessableEntity)

	require.NoError(t, env.auth.ChangePassword(ctx, &ChangePasswordInput{
		UserID: staff.ID, CurrentPassword: "staff-pass", NewPassword: "new-password",
	}))
	_, err = env.auth.Login(ctx, &LoginInput{Email: "sam@example.com", Password: "new-password"})
	require.NoError(t, err)
}
