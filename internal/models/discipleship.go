package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Discipleship pairs a leader (discipulador) with a member (discípulo).
type Discipleship struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DiscipuladorID uuid.UUID `gorm:"type:uuid;not null;index" json:"discipulador_id"`
	DiscipuloID    uuid.UUID `gorm:"type:uuid;not null;index" json:"discipulo_id"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Discipleship) TableName() string {
	return "discipulados"
}

func (d *Discipleship) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// Meeting is an encontro logged against one discipleship.
type Meeting struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DiscipuladoID uuid.UUID `gorm:"type:uuid;not null;index" json:"discipulado_id"`
	Date          time.Time `gorm:"not null;index" json:"date"`
	Topic         string    `gorm:"size:255;not null" json:"topic"`
	Notes         string    `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Meeting) TableName() string {
	return "encontros"
}

func (m *Meeting) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
