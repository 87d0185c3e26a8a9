package entity

import "time"

type ActivityLog struct {
	ID          int64     `json:"id"`
	UserID      *string   `json:"user_id"`
	Action      string    `json:"action"`
	ModelType   string    `json:"model_type"`
	ModelID     string    `json:"model_id"`
	Description string    `json:"description"`
	IPAddress   string    `json:"ip_address"`
	UserAgent   string    `json:"user_agent"`
	CreatedAt   time.Time `json:"created_at"`
	User        *User     `json:"user,omitempty"`
}

// LogFilters narrows activity log listings. Zero values mean "no filter".
type LogFilters struct {
	UserID    string
	Action    string
	ModelType string
	DateFrom  *time.Time
	DateTo    *time.Time
	Search    string
	Page      int
	PerPage   int
}

type ActionCount struct {
	Action string `json:"action"`
	Count  int64  `json:"count"`
}

type UserActivityCount struct {
	UserID        string `json:"user_id"`
	ActivityCount int64  `json:"activity_count"`
	User          *User  `json:"user"`
}

type LogStatistics struct {
	TotalLogs         int64               `json:"total_logs"`
	LoginCount        int64               `json:"login_count"`
	UserRegistrations int64               `json:"user_registrations"`
	ResidentUpdates   int64               `json:"resident_updates"`
	AdminActions      int64               `json:"admin_actions"`
	TopActions        []ActionCount       `json:"top_actions"`
	ActiveUsers       []UserActivityCount `json:"active_users"`
}

type LogFilterOptions struct {
	Actions    []string `json:"actions"`
	ModelTypes []string `json:"model_types"`
	Users      []User   `json:"users"`
}
