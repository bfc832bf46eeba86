package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an operator of the application
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255" json:"-"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Roles []Role `gorm:"many2many:user_roles;joinForeignKey:user_id;joinReferences:role_id" json:"roles,omitempty"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// Role represents a role in the RBAC system
type Role struct {
	ID          uint         `gorm:"primary_key" json:"id"`
	Name        string       `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Permissions []Permission `gorm:"many2many:role_permissions;joinForeignKey:role_id;joinReferences:permission_id" json:"permissions,omitempty"`
}

// TableName returns the table name for the Role model
func (Role) TableName() string {
	return "roles"
}

// Permission represents a permission in the RBAC system
type Permission struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Permission model
func (Permission) TableName() string {
	return "permissions"
}

// Permission names checked by the HTTP layer.
const (
	PermissionViewDashboard  = "view-dashboard"
	PermissionManageClients  = "manage-clients"
	PermissionManageServices = "manage-services"
	PermissionManageQuotes   = "manage-quotes"
	PermissionExportQuotes   = "export-quotes"
)

// Role names seeded at startup.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// HasRole checks if the user has a specific role
func (u *User) HasRole(roleName string) bool {
	for _, role := range u.Roles {
		if role.Name == roleName {
			return true
		}
	}
	return false
}

// RoleNames returns the names of the user's roles
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		names = append(names, role.Name)
	}
	return names
}

// GetPermissions returns all permission names for the user
func (u *User) GetPermissions() []string {
	seen := make(map[string]bool)
	result := make([]string, 0)
	for _, role := range u.Roles {
		for _, permission := range role.Permissions {
			if !seen[permission.Name] {
				seen[permission.Name] = true
				result = append(result, permission.Name)
			}
		}
	}
	return result
}
