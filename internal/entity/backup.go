package entity

type BackupType string

const (
	BackupTypeDatabase BackupType = "database"
	BackupTypeStorage  BackupType = "storage"
	BackupTypeConfig   BackupType = "config"
	BackupTypeUnknown  BackupType = "unknown"
)

// Backup describes one file in the backup directory.
type Backup struct {
	ID            string     `json:"id"`
	Filename      string     `json:"filename"`
	Type          BackupType `json:"type"`
	Size          int64      `json:"size"`
	SizeFormatted string     `json:"size_formatted"`
	Path          string     `json:"path"`
	CreatedAt     string     `json:"created_at"`
	ModifiedAt    string     `json:"modified_at"`
	Timestamp     int64      `json:"timestamp"`
}

type BackupStatistics struct {
	TotalBackups       int     `json:"total_backups"`
	TotalSize          int64   `json:"total_size"`
	TotalSizeFormatted string  `json:"total_size_formatted"`
	DatabaseBackups    int     `json:"database_backups"`
	StorageBackups     int     `json:"storage_backups"`
	ConfigBackups      int     `json:"config_backups"`
	LatestBackup       *string `json:"latest_backup"`
	OldestBackup       *string `json:"oldest_backup"`
}
