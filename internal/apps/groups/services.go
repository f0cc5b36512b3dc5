package groups

import (
	"errors"
	"slices"
	"strings"

	"github.com/ahmetcoskunkizilkaya/discipulado/internal/access"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("group not found")
	ErrForbidden      = errors.New("only the group leader or an admin can change this group")
	ErrInvalidWeekday = errors.New("invalid weekday")
	ErrInvalidLeader  = errors.New("leader must be an existing leader or admin")
	ErrNameRequired   = errors.New("name is required")
)

// GroupDetail is a group with its current members.
type GroupDetail struct {
	models.Group
	Leader  *models.User  `json:"leader,omitempty"`
	Members []models.User `json:"members"`
}

type GroupService struct {
	db *gorm.DB
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db}
}

func (s *GroupService) List() ([]models.Group, error) {
	var groups []models.Group
	err := s.db.Order("name ASC").Find(&groups).Error
	return groups, err
}

// Led returns the groups the viewer leads.
func (s *GroupService) Led(v access.Viewer) ([]models.Group, error) {
	var groups []models.Group
	err := s.db.Scopes(access.LedBy(v.UserID)).Order("name ASC").Find(&groups).Error
	return groups, err
}

func (s *GroupService) Get(id uuid.UUID) (*GroupDetail, error) {
	var group models.Group
	if err := s.db.First(&group, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	detail := &GroupDetail{Group: group, Members: []models.User{}}
	if err := s.db.Where("grupo_id = ?", id).Order("name ASC").Find(&detail.Members).Error; err != nil {
		return nil, err
	}

	var leader models.User
	if err := s.db.First(&leader, "id = ?", group.LeaderID).Error; err == nil {
		detail.Leader = &leader
	}
	return detail, nil
}

type CreateGroupRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Weekday     string    `json:"weekday"`
	LeaderID    uuid.UUID `json:"leader_id"`
}

func (s *GroupService) Create(req *CreateGroupRequest) (*models.Group, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if !slices.Contains(models.Weekdays, req.Weekday) {
		return nil, ErrInvalidWeekday
	}
	if err := s.checkLeader(req.LeaderID); err != nil {
		return nil, err
	}

	group := &models.Group{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Address:     strings.TrimSpace(req.Address),
		Weekday:     req.Weekday,
		LeaderID:    req.LeaderID,
	}
	if err := s.db.Create(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

// UpdateGroupRequest carries optional changes. Name and LeaderID are only
// honored for admins.
type UpdateGroupRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Address     *string    `json:"address"`
	Weekday     *string    `json:"weekday"`
	LeaderID    *uuid.UUID `json:"leader_id"`
}

func (s *GroupService) Update(v access.Viewer, id uuid.UUID, req *UpdateGroupRequest) (*models.Group, error) {
	var group models.Group
	if err := s.db.First(&group, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	isAdmin := v.Role == models.RoleAdmin
	if !isAdmin && (v.Role != models.RoleLeader || group.LeaderID != v.UserID) {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Address != nil {
		updates["address"] = strings.TrimSpace(*req.Address)
	}
	if req.Weekday != nil {
		if !slices.Contains(models.Weekdays, *req.Weekday) {
			return nil, ErrInvalidWeekday
		}
		updates["weekday"] = *req.Weekday
	}
	if isAdmin {
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return nil, ErrNameRequired
			}
			updates["name"] = name
		}
		if req.LeaderID != nil {
			if err := s.checkLeader(*req.LeaderID); err != nil {
				return nil, err
			}
			updates["leader_id"] = *req.LeaderID
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(&group).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	if err := s.db.First(&group, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// Delete removes the group and detaches its members.
func (s *GroupService) Delete(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("grupo_id = ?", id).Update("grupo_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Group{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *GroupService) checkLeader(id uuid.UUID) error {
	var count int64
	err := s.db.Model(&models.User{}).
		Where("id = ? AND role IN ?", id, []string{models.RoleLeader, models.RoleAdmin}).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrInvalidLeader
	}
	return nil
}
