package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Weekdays is the fixed cycle used for group meeting days.
var Weekdays = []string{
	"Segunda-feira", "Terça-feira", "Quarta-feira", "Quinta-feira",
	"Sexta-feira", "Sábado", "Domingo",
}

// Group is a célula: a small group that meets at one location under one leader.
type Group struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Address     string    `gorm:"size:500" json:"address"`
	Weekday     string    `gorm:"size:20" json:"weekday"`
	LeaderID    uuid.UUID `gorm:"type:uuid;not null;index" json:"leader_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Group) TableName() string {
	return "grupos"
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
