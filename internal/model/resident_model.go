package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResidentModel struct {
	ID            string         `gorm:"type:uuid;primary_key" json:"id"`
	ResidentID    string         `gorm:"type:varchar(50);uniqueIndex" json:"resident_id"`
	UserID        *string        `gorm:"type:uuid;index" json:"user_id"`
	FirstName     string         `gorm:"type:varchar(100);not null" json:"first_name"`
	MiddleName    string         `gorm:"type:varchar(100)" json:"middle_name"`
	LastName      string         `gorm:"type:varchar(100);not null" json:"last_name"`
	NameSuffix    string         `gorm:"type:varchar(20)" json:"name_suffix"`
	Email         string         `gorm:"type:varchar(255)" json:"email"`
	ContactNumber string         `gorm:"type:varchar(30)" json:"contact_number"`
	ForReview     bool           `gorm:"default:false" json:"for_review"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	User          *UserModel     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ResidentModel) TableName() string {
	return "residents"
}

func (r *ResidentModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
