package discipleship

import (
	"errors"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/discipulado/internal/access"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("discipleship not found")
	ErrMeetingNotFound  = errors.New("meeting not found")
	ErrForbidden        = errors.New("only the discipulador or an admin can change this discipleship")
	ErrAlreadyLinked    = errors.New("discipleship already exists")
	ErrSelfLink         = errors.New("discipulador and discípulo must be different people")
	ErrInvalidLeader    = errors.New("discipulador must be a leader or admin")
	ErrDiscipleNotFound = errors.New("discípulo not found")
	ErrTopicRequired    = errors.New("topic is required")
)

// DiscipleshipView is a discipleship with both participants' names.
type DiscipleshipView struct {
	ID               uuid.UUID `json:"id"`
	DiscipuladorID   uuid.UUID `json:"discipulador_id"`
	DiscipuladorName string    `json:"discipulador_name"`
	DiscipuloID      uuid.UUID `json:"discipulo_id"`
	DiscipuloName    string    `json:"discipulo_name"`
	CreatedAt        time.Time `json:"created_at"`
}

type DiscipleshipService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDiscipleshipService(db *gorm.DB) *DiscipleshipService {
	return &DiscipleshipService{db: db, now: time.Now}
}

// List returns the discipleships visible to v, newest first.
func (s *DiscipleshipService) List(v access.Viewer) ([]DiscipleshipView, error) {
	views := []DiscipleshipView{}
	err := s.db.Table("discipulados").
		Scopes(access.Discipleships(v)).
		Select("discipulados.id, discipulados.discipulador_id, COALESCE(l.name, '') AS discipulador_name, " +
			"discipulados.discipulo_id, COALESCE(m.name, '') AS discipulo_name, discipulados.created_at").
		Joins("LEFT JOIN users l ON l.id = discipulados.discipulador_id").
		Joins("LEFT JOIN users m ON m.id = discipulados.discipulo_id").
		Order("discipulados.created_at DESC").
		Scan(&views).Error
	return views, err
}

// Get returns one discipleship if v can see it.
func (s *DiscipleshipService) Get(v access.Viewer, id uuid.UUID) (*models.Discipleship, error) {
	var d models.Discipleship
	if err := s.db.Scopes(access.Discipleships(v)).First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

type CreateDiscipleshipRequest struct {
	DiscipuladorID uuid.UUID `json:"discipulador_id"`
	DiscipuloID    uuid.UUID `json:"discipulo_id"`
}

// Create links a discípulo to a discipulador. Leaders can only create
// links where they are the discipulador; an empty discipulador_id means
// the caller.
func (s *DiscipleshipService) Create(v access.Viewer, req *CreateDiscipleshipRequest) (*models.Discipleship, error) {
	leaderID := req.DiscipuladorID
	if leaderID == uuid.Nil {
		leaderID = v.UserID
	}

	switch v.Role {
	case models.RoleAdmin:
	case models.RoleLeader:
		if leaderID != v.UserID {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}

	if leaderID == req.DiscipuloID {
		return nil, ErrSelfLink
	}

	var leader models.User
	if err := s.db.First(&leader, "id = ?", leaderID).Error; err != nil ||
		(leader.Role != models.RoleLeader && leader.Role != models.RoleAdmin) {
		return nil, ErrInvalidLeader
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", req.DiscipuloID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrDiscipleNotFound
	}

	if err := s.db.Model(&models.Discipleship{}).
		Where("discipulador_id = ? AND discipulo_id = ?", leaderID, req.DiscipuloID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadyLinked
	}

	d := &models.Discipleship{DiscipuladorID: leaderID, DiscipuloID: req.DiscipuloID}
	if err := s.db.Create(d).Error; err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes the discipleship and its meetings.
func (s *DiscipleshipService) Delete(v access.Viewer, id uuid.UUID) error {
	d, err := s.Get(v, id)
	if err != nil {
		return err
	}
	if !access.CanWriteDiscipleship(v, d) {
		return ErrForbidden
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("discipulado_id = ?", d.ID).Delete(&models.Meeting{}).Error; err != nil {
			return err
		}
		return tx.Delete(d).Error
	})
}

func (s *DiscipleshipService) ListMeetings(v access.Viewer, discipleshipID uuid.UUID) ([]models.Meeting, error) {
	if _, err := s.Get(v, discipleshipID); err != nil {
		return nil, err
	}

	meetings := []models.Meeting{}
	err := s.db.Where("discipulado_id = ?", discipleshipID).
		Order("date DESC").
		Find(&meetings).Error
	return meetings, err
}

type LogMeetingRequest struct {
	Date  *time.Time `json:"date"`
	Topic string     `json:"topic"`
	Notes string     `json:"notes"`
}

// LogMeeting records an encontro. A missing date means now.
func (s *DiscipleshipService) LogMeeting(v access.Viewer, discipleshipID uuid.UUID, req *LogMeetingRequest) (*models.Meeting, error) {
	d, err := s.Get(v, discipleshipID)
	if err != nil {
		return nil, err
	}
	if !access.CanWriteDiscipleship(v, d) {
		return nil, ErrForbidden
	}

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, ErrTopicRequired
	}
	date := s.now()
	if req.Date != nil && !req.Date.IsZero() {
		date = *req.Date
	}

	m := &models.Meeting{
		DiscipuladoID: d.ID,
		Date:          date,
		Topic:         topic,
		Notes:         strings.TrimSpace(req.Notes),
	}
	if err := s.db.Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *DiscipleshipService) DeleteMeeting(v access.Viewer, discipleshipID, meetingID uuid.UUID) error {
	d, err := s.Get(v, discipleshipID)
	if err != nil {
		return err
	}
	if !access.CanWriteDiscipleship(v, d) {
		return ErrForbidden
	}

	result := s.db.Where("id = ? AND discipulado_id = ?", meetingID, d.ID).Delete(&models.Meeting{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMeetingNotFound
	}
	return nil
}
