package access

import (
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The scopes below are the row-level access rules of the API. Admins see
// everything; leaders see the rows they lead; members see their own rows.

// LedBy filters groups by their leader.
func LedBy(leaderID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("leader_id = ?", leaderID)
	}
}

// Discipleships filters discipulados to the ones v takes part in. A leader
// can be discipulador and discípulo at the same time.
func Discipleships(v Viewer) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch v.Role {
		case models.RoleAdmin:
			return db
		case models.RoleLeader:
			return db.Where("discipulador_id = ? OR discipulo_id = ?", v.UserID, v.UserID)
		default:
			return db.Where("discipulo_id = ?", v.UserID)
		}
	}
}

// OwnedOrDiscipled filters rows whose ownerColumn is v itself or, for
// leaders, one of v's discípulos.
func OwnedOrDiscipled(v Viewer, ownerColumn string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch v.Role {
		case models.RoleAdmin:
			return db
		case models.RoleLeader:
			disciples := db.Session(&gorm.Session{NewDB: true}).
				Model(&models.Discipleship{}).
				Select("discipulo_id").
				Where("discipulador_id = ?", v.UserID)
			return db.Where(ownerColumn+" = ? OR "+ownerColumn+" IN (?)", v.UserID, disciples)
		default:
			return db.Where(ownerColumn+" = ?", v.UserID)
		}
	}
}

// CanWriteDiscipleship reports whether v may log meetings or otherwise
// change the given discipleship.
func CanWriteDiscipleship(v Viewer, d *models.Discipleship) bool {
	if v.Role == models.RoleAdmin {
		return true
	}
	return v.Role == models.RoleLeader && d.DiscipuladorID == v.UserID
}
