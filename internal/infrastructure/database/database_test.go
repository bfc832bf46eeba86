package database

import (
	"testing"

	"github.com/sangkips/quotation-api/internal/config"
	"github.com/sangkips/quotation-api/internal/domain/entity"
	"github.com/sangkips/quotation-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewSQLiteDB(SQLiteMemoryDSN(t.Name()), "silent", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db, zap.NewNop()))
	return db
}

func TestNewDB_RejectsUnknownDriver(t *testing.T) {
	_, err := NewDB(&config.DatabaseConfig{Driver: "oracle"}, zap.NewNop())
	require.Error(t, err)
}

func TestSeedDefaultData_CreatesAdminOnce(t *testing.T) {
	db := newTestDB(t)
	admin := config.AdminConfig{Name: "Ops", Email: "ops@example.com", Password: "s3cret-pass"}

	require.NoError(t, SeedDefaultData(db, admin, zap.NewNop()))
	require.NoError(t, SeedDefaultData(db, admin, zap.NewNop()))

	var users []entity.User
	require.NoError(t, db.Preload("Roles.Permissions").Find(&users).Error)
	require.Len(t, users, 1)

	user := users[0]
	assert.True(t, user.HasRole(entity.RoleAdmin))
	assert.ElementsMatch(t, allPermissions, user.GetPermissions())
	assert.True(t, utils.CheckPasswordHash("s3cret-pass", user.Password))

	var staff entity.Role
	require.NoError(t, db.Preload("Permissions").First(&staff, "name = ?", entity.RoleStaff).Error)
	assert.Len(t, staff.Permissions, len(staffPermissions))
}

func TestSeedDefaultData_SkipsAdminWithoutCredentials(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, SeedDefaultData(db, config.AdminConfig{}, zap.NewNop()))

	var count int64
	require.NoError(t, db.Model(&entity.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
