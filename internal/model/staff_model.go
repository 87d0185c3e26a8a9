package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffModel struct {
	ID                string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID            string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Position          string    `gorm:"type:varchar(100)" json:"position"`
	ModulePermissions JSONMap   `gorm:"type:jsonb" json:"module_permissions"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (StaffModel) TableName() string {
	return "staff"
}

func (s *StaffModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
