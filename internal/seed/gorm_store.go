package seed

import (
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/models"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/services"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStore implements Store on the application database, creating
// identities through the auth service so seeded accounts can log in.
type GormStore struct {
	db    *gorm.DB
	auth  *services.AuthService
	users *services.UserService
}

func NewGormStore(db *gorm.DB, auth *services.AuthService) *GormStore {
	return &GormStore{db: db, auth: auth, users: services.NewUserService(db)}
}

func (s *GormStore) CreateIdentity(email, password string, metadata map[string]any) (uuid.UUID, error) {
	identity, err := s.auth.CreateIdentity(email, password, metadata)
	if err != nil {
		return uuid.Nil, err
	}
	return identity.ID, nil
}

func (s *GormStore) InsertProfile(user *models.User) error {
	return s.db.Create(user).Error
}

func (s *GormStore) InsertGroups(groups []models.Group) error {
	return s.db.Create(&groups).Error
}

func (s *GormStore) ListGroups() ([]models.Group, error) {
	var groups []models.Group
	err := s.db.Order("created_at ASC").Order("name ASC").Find(&groups).Error
	return groups, err
}

func (s *GormStore) AssignGroup(userID, groupID uuid.UUID) error {
	return s.users.AssignGroup(userID, &groupID)
}

func (s *GormStore) InsertDiscipleships(edges []models.Discipleship) error {
	return s.db.Create(&edges).Error
}

func (s *GormStore) ListDiscipleships() ([]models.Discipleship, error) {
	var edges []models.Discipleship
	err := s.db.Order("created_at ASC").Find(&edges).Error
	return edges, err
}

func (s *GormStore) InsertMeetings(meetings []models.Meeting) error {
	return s.db.Create(&meetings).Error
}
