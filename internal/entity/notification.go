package entity

import "time"

// NotificationSource tells which store a unified entry came from. The two id
// spaces are independent, so the source tag travels with every entry.
type NotificationSource string

const (
	SourceFramework NotificationSource = "framework_notification"
	SourceCustom    NotificationSource = "custom_notification"
)

// NotificationCategory is the closed set of semantic classifications derived
// from the payload. Earlier categories strictly dominate later ones.
type NotificationCategory string

const (
	CategoryDocumentRequest     NotificationCategory = "document_request"
	CategoryAssetRequest        NotificationCategory = "asset_request"
	CategoryAssetPayment        NotificationCategory = "asset_payment"
	CategoryBlotterRequest      NotificationCategory = "blotter_request"
	CategoryBlotterAppointment  NotificationCategory = "blotter_appointment"
	CategoryAnnouncement        NotificationCategory = "announcement"
	CategoryProgramAnnouncement NotificationCategory = "program_announcement"
	CategoryProject             NotificationCategory = "project"
	CategoryBenefitUpdate       NotificationCategory = "benefit_update"
	CategoryGenericProgram      NotificationCategory = "generic_program"
	CategoryUnclassified        NotificationCategory = "unclassified"
)

// Notification is the unified feed record assembled from either source.
type Notification struct {
	ID           string                 `json:"id"`
	Source       NotificationSource     `json:"type"`
	Category     NotificationCategory   `json:"category"`
	Title        string                 `json:"title"`
	Message      string                 `json:"message"`
	Data         map[string]interface{} `json:"data"`
	IsRead       bool                   `json:"is_read"`
	ReadAt       *time.Time             `json:"read_at"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
	RedirectPath *string                `json:"redirect_path"`
}

// FrameworkNotification is a raw row from the framework-native store, keyed
// to a user account.
type FrameworkNotification struct {
	ID        string
	UserID    string
	Data      map[string]interface{}
	ReadAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ResidentNotification is a raw row from the custom store, keyed to a
// resident profile and optionally a program.
type ResidentNotification struct {
	ID          int64
	ResidentID  string
	ProgramID   *string
	Type        string
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ProgramName *string
	ProgramType *string
}
