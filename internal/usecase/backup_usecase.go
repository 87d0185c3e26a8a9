package usecase

import (
	"crypto/md5"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"barangay-egov/internal/entity"
	"barangay-egov/pkg/config"
	"barangay-egov/pkg/logger"
	"barangay-egov/pkg/storage"
)

var (
	ErrBackupNotFound = errors.New("backup not found")
	ErrInvalidBackup  = errors.New("invalid backup filename")
)

// Backup filenames embed their creation time as Ymd_His.
var backupTimestampPattern = regexp.MustCompile(`(\d{8}_\d{6})`)

const backupTimestampLayout = "20060102_150405"
const backupDisplayLayout = "2006-01-02 15:04:05"

type BackupUseCase interface {
	CreateDatabaseBackup() (*entity.Backup, error)
	CreateConfigBackup() (*entity.Backup, error)
	List(page, perPage int, typeFilter string) ([]*entity.Backup, int, error)
	Statistics() (*entity.BackupStatistics, error)
	Delete(filename string) error
	ResolvePath(filename string) (string, error)
}

type backupUseCase struct {
	cfg     *config.Config
	offsite *storage.Client
	log     *logger.Logger
}

// NewBackupUseCase builds the backup manager. The offsite client may be nil,
// in which case backups stay local only.
func NewBackupUseCase(cfg *config.Config, offsite *storage.Client, log *logger.Logger) BackupUseCase {
	return &backupUseCase{cfg: cfg, offsite: offsite, log: log}
}

func (uc *backupUseCase) CreateDatabaseBackup() (*entity.Backup, error) {
	if err := os.MkdirAll(uc.cfg.BackupDir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}

	filename := "db_backup_" + time.Now().Format(backupTimestampLayout) + ".sql"
	path := filepath.Join(uc.cfg.BackupDir, filename)

	cmd := exec.Command(uc.cfg.PgDumpPath,
		"-h", uc.cfg.DBHost,
		"-p", uc.cfg.DBPort,
		"-U", uc.cfg.DBUser,
		"-d", uc.cfg.DBName,
		"-f", path,
		"--no-owner",
	)
	cmd.Env = append(os.Environ(), "PGPASSWORD="+uc.cfg.DBPassword)

	if output, err := cmd.CombinedOutput(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("pg_dump failed: %w: %s", err, strings.TrimSpace(string(output)))
	}

	uc.uploadOffsite(path)
	return uc.describeFile(path)
}

// CreateConfigBackup snapshots the environment file alongside the database
// dumps.
func (uc *backupUseCase) CreateConfigBackup() (*entity.Backup, error) {
	if err := os.MkdirAll(uc.cfg.BackupDir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}

	source, err := os.Open(uc.cfg.EnvFilePath)
	if err != nil {
		return nil, fmt.Errorf("open env file: %w", err)
	}
	defer source.Close()

	filename := "config_backup_" + time.Now().Format(backupTimestampLayout) + ".env"
	path := filepath.Join(uc.cfg.BackupDir, filename)

	dest, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create config backup: %w", err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, source); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("copy env file: %w", err)
	}

	uc.uploadOffsite(path)
	return uc.describeFile(path)
}

func (uc *backupUseCase) uploadOffsite(path string) {
	if uc.offsite == nil {
		return
	}
	key, err := uc.offsite.UploadFile(path)
	if err != nil {
		uc.log.Warn("offsite backup upload failed for %s: %v", filepath.Base(path), err)
		return
	}
	uc.log.Info("backup uploaded offsite as %s", key)
}

// List returns backups newest first. Scan problems on individual files are
// logged and skipped so a corrupt entry cannot break the listing.
func (uc *backupUseCase) List(page, perPage int, typeFilter string) ([]*entity.Backup, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	backups := uc.scan()
	if typeFilter != "" {
		filtered := backups[:0]
		for _, backup := range backups {
			if string(backup.Type) == typeFilter {
				filtered = append(filtered, backup)
			}
		}
		backups = filtered
	}

	total := len(backups)
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return backups[start:end], total, nil
}

func (uc *backupUseCase) Statistics() (*entity.BackupStatistics, error) {
	backups := uc.scan()

	stats := &entity.BackupStatistics{TotalBackups: len(backups)}
	for _, backup := range backups {
		stats.TotalSize += backup.Size
		switch backup.Type {
		case entity.BackupTypeDatabase:
			stats.DatabaseBackups++
		case entity.BackupTypeStorage:
			stats.StorageBackups++
		case entity.BackupTypeConfig:
			stats.ConfigBackups++
		}
	}
	stats.TotalSizeFormatted = formatBytes(stats.TotalSize)

	if len(backups) > 0 {
		// scan() sorts newest first
		stats.LatestBackup = &backups[0].CreatedAt
		stats.OldestBackup = &backups[len(backups)-1].CreatedAt
	}
	return stats, nil
}

func (uc *backupUseCase) Delete(filename string) error {
	path, err := uc.ResolvePath(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete backup: %w", err)
	}
	uc.log.Info("backup %s deleted", filename)
	return nil
}

// ResolvePath maps a bare filename to its path inside the backup directory,
// rejecting anything that could escape it.
func (uc *backupUseCase) ResolvePath(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", ErrInvalidBackup
	}
	path := filepath.Join(uc.cfg.BackupDir, filename)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", ErrBackupNotFound
		}
		return "", fmt.Errorf("stat backup: %w", err)
	}
	return path, nil
}

func (uc *backupUseCase) scan() []*entity.Backup {
	entries, err := os.ReadDir(uc.cfg.BackupDir)
	if err != nil {
		if !os.IsNotExist(err) {
			uc.log.Warn("failed to read backup dir %s: %v", uc.cfg.BackupDir, err)
		}
		return nil
	}

	backups := make([]*entity.Backup, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		backup, err := uc.describeFile(filepath.Join(uc.cfg.BackupDir, entry.Name()))
		if err != nil {
			uc.log.Warn("skipping unreadable backup %s: %v", entry.Name(), err)
			continue
		}
		backups = append(backups, backup)
	}

	sort.SliceStable(backups, func(i, j int) bool {
		return backups[i].Timestamp > backups[j].Timestamp
	})
	return backups
}

func (uc *backupUseCase) describeFile(path string) (*entity.Backup, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	filename := filepath.Base(path)
	createdAt := info.ModTime()
	if match := backupTimestampPattern.FindString(filename); match != "" {
		if parsed, err := time.ParseInLocation(backupTimestampLayout, match, time.Local); err == nil {
			createdAt = parsed
		}
	}

	return &entity.Backup{
		ID:            fmt.Sprintf("%x", md5.Sum([]byte(path))),
		Filename:      filename,
		Type:          backupTypeOf(filename),
		Size:          info.Size(),
		SizeFormatted: formatBytes(info.Size()),
		Path:          path,
		CreatedAt:     createdAt.Format(backupDisplayLayout),
		ModifiedAt:    info.ModTime().Format(backupDisplayLayout),
		Timestamp:     createdAt.Unix(),
	}, nil
}

func backupTypeOf(filename string) entity.BackupType {
	switch {
	case strings.HasPrefix(filename, "db_backup_"):
		return entity.BackupTypeDatabase
	case strings.HasPrefix(filename, "storage_backup_"):
		return entity.BackupTypeStorage
	case strings.HasPrefix(filename, "config_backup_"):
		return entity.BackupTypeConfig
	default:
		return entity.BackupTypeUnknown
	}
}

func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	units := []string{"KB", "MB", "GB", "TB"}
	value := float64(size)
	exp := -1
	for value >= unit && exp < len(units)-1 {
		value /= unit
		exp++
	}
	return fmt.Sprintf("%.2f %s", value, units[exp])
}
