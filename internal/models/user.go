package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin  = "admin"
	RoleLeader = "leader"
	RoleMember = "member"
)

// ValidRole reports whether role is one of the persisted role values.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleLeader, RoleMember:
		return true
	}
	return false
}

// User is the profile row of an account. Its ID is the ID of the Identity
// that owns the credentials, so a profile never exists without an identity.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Email     string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Role      string         `gorm:"size:20;not null;default:'member';index" json:"role"`
	GrupoID   *uuid.UUID     `gorm:"type:uuid;index" json:"grupo_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
