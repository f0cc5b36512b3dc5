package growthplans

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Step is one item of a growth plan.
type Step struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// GrowthPlan is a plano de crescimento: a checklist a member works
// through, often set up by their discipulador.
type GrowthPlan struct {
	ID          uuid.UUID                 `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID                 `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedBy   uuid.UUID                 `gorm:"type:uuid;not null" json:"created_by"`
	Title       string                    `gorm:"size:255;not null" json:"title"`
	Description string                    `gorm:"type:text" json:"description"`
	Steps       datatypes.JSONSlice[Step] `json:"steps"`
	Status      string                    `gorm:"size:20;not null;default:'active';index" json:"status"`
	DueDate     *time.Time                `json:"due_date"`
	CreatedAt   time.Time                 `json:"created_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`
	DeletedAt   gorm.DeletedAt            `gorm:"index" json:"-"`
}

func (GrowthPlan) TableName() string { return "planos_crescimento" }

func (p *GrowthPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// refreshStatus marks the plan completed once every step is done.
func (p *GrowthPlan) refreshStatus() {
	if len(p.Steps) == 0 {
		p.Status = StatusActive
		return
	}
	for _, s := range p.Steps {
		if !s.Done {
			p.Status = StatusActive
			return
		}
	}
	p.Status = StatusCompleted
}
