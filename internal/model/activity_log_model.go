package model

import (
	"time"
)

type ActivityLogModel struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      *string    `gorm:"type:uuid;index" json:"user_id"`
	Action      string     `gorm:"type:varchar(100);not null;index" json:"action"`
	ModelType   string     `gorm:"type:varchar(100);index" json:"model_type"`
	ModelID     string     `gorm:"type:varchar(100)" json:"model_id"`
	Description string     `gorm:"type:text" json:"description"`
	IPAddress   string     `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent   string     `gorm:"type:varchar(500)" json:"user_agent"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	User        *UserModel `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ActivityLogModel) TableName() string {
	return "activity_logs"
}
