package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProgramModel struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Type      string         `gorm:"type:varchar(100)" json:"type"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ProgramModel) TableName() string {
	return "programs"
}

func (p *ProgramModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

type ProgramAnnouncementModel struct {
	ID             string         `gorm:"type:uuid;primary_key" json:"id"`
	ProgramID      string         `gorm:"type:uuid;not null;index" json:"program_id"`
	Title          string         `gorm:"type:varchar(255);not null" json:"title"`
	Content        string         `gorm:"type:text;not null" json:"content"`
	Status         string         `gorm:"type:varchar(20);default:'draft';index" json:"status"`
	PublishedAt    *time.Time     `json:"published_at"`
	ExpiresAt      *time.Time     `json:"expires_at"`
	IsUrgent       bool           `gorm:"default:false" json:"is_urgent"`
	TargetAudience StringList     `gorm:"type:jsonb" json:"target_audience"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	Program        *ProgramModel  `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
}

func (ProgramAnnouncementModel) TableName() string {
	return "program_announcements"
}

func (a *ProgramAnnouncementModel) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}
