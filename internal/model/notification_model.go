package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserNotificationModel is the framework-native notification store, keyed to
// a user account. Primary keys are uuids, independent of the custom store's
// numeric id space.
type UserNotificationModel struct {
	ID        string     `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string     `gorm:"type:uuid;not null;index" json:"user_id"`
	Data      JSONMap    `gorm:"type:jsonb" json:"data"`
	ReadAt    *time.Time `gorm:"index" json:"read_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (UserNotificationModel) TableName() string {
	return "user_notifications"
}

func (n *UserNotificationModel) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}

// ResidentNotificationModel is the custom notification store, keyed to a
// resident profile and optionally a program.
type ResidentNotificationModel struct {
	ID         int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	ResidentID string        `gorm:"type:uuid;not null;index" json:"resident_id"`
	ProgramID  *string       `gorm:"type:uuid;index" json:"program_id"`
	Type       string        `gorm:"type:varchar(50)" json:"type"`
	Title      string        `gorm:"type:varchar(255)" json:"title"`
	Message    string        `gorm:"type:text" json:"message"`
	Data       JSONMap       `gorm:"type:jsonb" json:"data"`
	IsRead     bool          `gorm:"default:false;index" json:"is_read"`
	ReadAt     *time.Time    `json:"read_at"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
	Program    *ProgramModel `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
}

func (ResidentNotificationModel) TableName() string {
	return "resident_notifications"
}
