package growthplans

import (
	"errors"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/discipulado/internal/access"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("growth plan not found")
	ErrForbidden     = errors.New("you cannot change this growth plan")
	ErrTitleRequired = errors.New("title is required")
	ErrInvalidStep   = errors.New("step index out of range")
)

type PlanService struct {
	db *gorm.DB
}

func NewPlanService(db *gorm.DB) *PlanService {
	return &PlanService{db: db}
}

// List returns the viewer's plans and, for leaders, their discípulos' plans.
func (s *PlanService) List(v access.Viewer, status string) ([]GrowthPlan, error) {
	plans := []GrowthPlan{}
	query := s.db.Scopes(access.OwnedOrDiscipled(v, "user_id"))
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Find(&plans).Error
	return plans, err
}

func (s *PlanService) Get(v access.Viewer, id uuid.UUID) (*GrowthPlan, error) {
	var plan GrowthPlan
	if err := s.db.Scopes(access.OwnedOrDiscipled(v, "user_id")).First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

type CreatePlanRequest struct {
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Steps       []string   `json:"steps"`
	DueDate     *time.Time `json:"due_date"`
}

// Create sets up a plan for req.UserID, or for the viewer when empty.
// Only admins and the user's discipulador can create plans for others.
func (s *PlanService) Create(v access.Viewer, req *CreatePlanRequest) (*GrowthPlan, error) {
	target := req.UserID
	if target == uuid.Nil {
		target = v.UserID
	}
	if target != v.UserID {
		ok, err := s.mentors(v, target)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrForbidden
		}
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	plan := &GrowthPlan{
		UserID:      target,
		CreatedBy:   v.UserID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Steps:       toSteps(req.Steps),
		DueDate:     req.DueDate,
	}
	plan.refreshStatus()
	if err := s.db.Create(plan).Error; err != nil {
		return nil, err
	}
	return plan, nil
}

type UpdatePlanRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Steps       *[]string  `json:"steps"`
	DueDate     *time.Time `json:"due_date"`
}

// Update edits a plan. Replacing the steps resets their completion.
func (s *PlanService) Update(v access.Viewer, id uuid.UUID, req *UpdatePlanRequest) (*GrowthPlan, error) {
	plan, err := s.writable(v, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		plan.Title = title
	}
	if req.Description != nil {
		plan.Description = strings.TrimSpace(*req.Description)
	}
	if req.DueDate != nil {
		plan.DueDate = req.DueDate
	}
	if req.Steps != nil {
		plan.Steps = toSteps(*req.Steps)
	}
	plan.refreshStatus()

	if err := s.db.Save(plan).Error; err != nil {
		return nil, err
	}
	return plan, nil
}

// ToggleStep flips the completion of one step and recomputes the status.
func (s *PlanService) ToggleStep(v access.Viewer, id uuid.UUID, index int) (*GrowthPlan, error) {
	plan, err := s.writable(v, id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(plan.Steps) {
		return nil, ErrInvalidStep
	}

	plan.Steps[index].Done = !plan.Steps[index].Done
	plan.refreshStatus()

	if err := s.db.Model(plan).Updates(map[string]interface{}{
		"steps":  plan.Steps,
		"status": plan.Status,
	}).Error; err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) Delete(v access.Viewer, id uuid.UUID) error {
	plan, err := s.writable(v, id)
	if err != nil {
		return err
	}
	return s.db.Delete(plan).Error
}

// writable loads a plan the viewer can see and checks they may change it:
// the owner, its creator, an admin, or the owner's discipulador.
func (s *PlanService) writable(v access.Viewer, id uuid.UUID) (*GrowthPlan, error) {
	plan, err := s.Get(v, id)
	if err != nil {
		return nil, err
	}
	if plan.UserID == v.UserID || plan.CreatedBy == v.UserID {
		return plan, nil
	}
	ok, err := s.mentors(v, plan.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return plan, nil
}

// mentors reports whether v may manage plans of userID.
func (s *PlanService) mentors(v access.Viewer, userID uuid.UUID) (bool, error) {
	switch v.Role {
	case models.RoleAdmin:
		return true, nil
	case models.RoleLeader:
		var count int64
		err := s.db.Model(&models.Discipleship{}).
			Where("discipulador_id = ? AND discipulo_id = ?", v.UserID, userID).
			Count(&count).Error
		return count > 0, err
	}
	return false, nil
}

func toSteps(titles []string) datatypes.JSONSlice[Step] {
	steps := datatypes.JSONSlice[Step]{}
	for _, t := range titles {
		if t = strings.TrimSpace(t); t != "" {
			steps = append(steps, Step{Title: t})
		}
	}
	return steps
}
