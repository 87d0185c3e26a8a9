package entity

import "time"

type Program struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AnnouncementStatus string

const (
	AnnouncementDraft     AnnouncementStatus = "draft"
	AnnouncementPublished AnnouncementStatus = "published"
	AnnouncementArchived  AnnouncementStatus = "archived"
)

type ProgramAnnouncement struct {
	ID             string             `json:"id"`
	ProgramID      string             `json:"program_id"`
	Title          string             `json:"title"`
	Content        string             `json:"content"`
	Status         AnnouncementStatus `json:"status"`
	PublishedAt    *time.Time         `json:"published_at"`
	ExpiresAt      *time.Time         `json:"expires_at"`
	IsUrgent       bool               `json:"is_urgent"`
	TargetAudience []string           `json:"target_audience"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	Program        *Program           `json:"program,omitempty"`
}
