package seed

import (
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/models"
	"github.com/google/uuid"
)

// Store is the data and identity service a seed run writes through.
type Store interface {
	CreateIdentity(email, password string, metadata map[string]any) (uuid.UUID, error)
	InsertProfile(user *models.User) error
	InsertGroups(groups []models.Group) error
	ListGroups() ([]models.Group, error)
	AssignGroup(userID, groupID uuid.UUID) error
	InsertDiscipleships(edges []models.Discipleship) error
	ListDiscipleships() ([]models.Discipleship, error)
	InsertMeetings(meetings []models.Meeting) error
}
