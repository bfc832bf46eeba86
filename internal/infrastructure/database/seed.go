package database

import (
	"errors"
	"fmt"

	"github.com/sangkips/quotation-api/internal/config"
	"github.com/sangkips/quotation-api/internal/domain/entity"
	"github.com/sangkips/quotation-api/pkg/logger"
	"github.com/sangkips/quotation-api/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var allPermissions = []string{
	entity.PermissionViewDashboard,
	entity.PermissionManageClients,
	entity.PermissionManageServices,
	entity.PermissionManageQuotes,
	entity.PermissionExportQuotes,
}

var staffPermissions = []string{
	entity.PermissionViewDashboard,
	entity.PermissionManageClients,
	entity.PermissionManageQuotes,
	entity.PermissionExportQuotes,
}

// SeedDefaultData creates the permissions, the admin and staff roles, and the
// bootstrap admin user when credentials are configured. Existing rows are kept.
func SeedDefaultData(db *gorm.DB, admin config.AdminConfig, log *zap.Logger) error {
	log = logger.Named(log, "seed")

	perms := make(map[string]entity.Permission, len(allPermissions))
	for _, name := range allPermissions {
		p := entity.Permission{Name: name}
		if err := db.Where(entity.Permission{Name: name}).FirstOrCreate(&p).Error; err != nil {
			return fmt.Errorf("seed permission %s: %w", name, err)
		}
		perms[name] = p
	}

	adminRole, err := seedRole(db, entity.RoleAdmin, allPermissions, perms)
	if err != nil {
		return err
	}
	if _, err := seedRole(db, entity.RoleStaff, staffPermissions, perms); err != nil {
		return err
	}

	if admin.Email == "" || admin.Password == "" {
		log.Info("admin credentials not configured, skipping admin user")
		return nil
	}

	var existing entity.User
	err = db.Where("email = ?", admin.Email).First(&existing).Error
	if err == nil {
		log.Info("admin user already exists", zap.String("email", admin.Email))
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup admin user: %w", err)
	}

	hashed, err := utils.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	name := admin.Name
	if name == "" {
		name = "Administrator"
	}
	user := entity.User{
		Name:     name,
		Email:    admin.Email,
		Password: hashed,
		Active:   true,
		Roles:    []entity.Role{*adminRole},
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	log.Info("admin user created", zap.String("email", admin.Email))
	return nil
}

func seedRole(db *gorm.DB, name string, permNames []string, perms map[string]entity.Permission) (*entity.Role, error) {
	role := entity.Role{Name: name}
	if err := db.Where(entity.Role{Name: name}).FirstOrCreate(&role).Error; err != nil {
		return nil, fmt.Errorf("seed role %s: %w", name, err)
	}

	granted := make([]entity.Permission, 0, len(permNames))
	for _, p := range permNames {
		granted = append(granted, perms[p])
	}
	if err := db.Model(&role).Association("Permissions").Replace(granted); err != nil {
		return nil, fmt.Errorf("grant permissions to %s: %w", name, err)
	}
	return &role, nil
}
