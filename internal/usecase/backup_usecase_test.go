package usecase

import (
	"os"
	"path/filepath"
	"testing"

	"barangay-egov/internal/entity"
	"barangay-egov/pkg/config"
	"barangay-egov/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func newBackupUseCaseForTest(t *testing.T) (*backupUseCase, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{BackupDir: dir}
	return &backupUseCase{cfg: cfg, log: logger.New()}, dir
}

func writeBackupFile(t *testing.T, dir, name, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600)
	assert.NoError(t, err)
}

func TestBackupList_TypesAndOrdering(t *testing.T) {
	uc, dir := newBackupUseCaseForTest(t)
	writeBackupFile(t, dir, "db_backup_20250101_080000.sql", "dump-old")
	writeBackupFile(t, dir, "db_backup_20250601_080000.sql", "dump-new")
	writeBackupFile(t, dir, "config_backup_20250301_080000.env", "env")
	writeBackupFile(t, dir, "notes.txt", "junk")

	backups, total, err := uc.List(1, 10, "")

	assert.NoError(t, err)
	assert.Equal(t, 4, total)
	// Embedded timestamps decide the order, newest first
	assert.Equal(t, "db_backup_20250601_080000.sql", backups[0].Filename)
	assert.Equal(t, entity.BackupTypeDatabase, backups[0].Type)
	assert.Equal(t, entity.BackupTypeConfig, backupTypeOf("config_backup_20250301_080000.env"))
	assert.Equal(t, entity.BackupTypeUnknown, backupTypeOf("notes.txt"))
}

func TestBackupList_TypeFilterAndPagination(t *testing.T) {
	uc, dir := newBackupUseCaseForTest(t)
	writeBackupFile(t, dir, "db_backup_20250101_080000.sql", "a")
	writeBackupFile(t, dir, "db_backup_20250102_080000.sql", "b")
	writeBackupFile(t, dir, "config_backup_20250103_080000.env", "c")

	backups, total, err := uc.List(1, 1, "database")

	assert.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, backups, 1)
	assert.Equal(t, "db_backup_20250102_080000.sql", backups[0].Filename)
}

func TestBackupList_MissingDirIsEmpty(t *testing.T) {
	cfg := &config.Config{BackupDir: filepath.Join(t.TempDir(), "does-not-exist")}
	uc := &backupUseCase{cfg: cfg, log: logger.New()}

	backups, total, err := uc.List(1, 10, "")

	assert.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, backups)
}

func TestBackupStatistics(t *testing.T) {
	uc, dir := newBackupUseCaseForTest(t)
	writeBackupFile(t, dir, "db_backup_20250101_080000.sql", "0123456789")
	writeBackupFile(t, dir, "config_backup_20250201_080000.env", "01234")

	stats, err := uc.Statistics()

	assert.NoError(t, err)
	assert.Equal(t, 2, stats.TotalBackups)
	assert.Equal(t, int64(15), stats.TotalSize)
	assert.Equal(t, 1, stats.DatabaseBackups)
	assert.Equal(t, 1, stats.ConfigBackups)
	assert.NotNil(t, stats.LatestBackup)
	assert.NotNil(t, stats.OldestBackup)
}

func TestBackupDelete(t *testing.T) {
	uc, dir := newBackupUseCaseForTest(t)
	writeBackupFile(t, dir, "db_backup_20250101_080000.sql", "dump")

	err := uc.Delete("db_backup_20250101_080000.sql")
	assert.NoError(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "db_backup_20250101_080000.sql"))
	assert.True(t, os.IsNotExist(statErr))

	assert.ErrorIs(t, uc.Delete("db_backup_20250101_080000.sql"), ErrBackupNotFound)
}

func TestBackupResolvePath_RejectsTraversal(t *testing.T) {
	uc, _ := newBackupUseCaseForTest(t)

	_, err := uc.ResolvePath("../../../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidBackup)

	_, err = uc.ResolvePath(".hidden")
	assert.ErrorIs(t, err, ErrInvalidBackup)

	_, err = uc.ResolvePath("")
	assert.ErrorIs(t, err, ErrInvalidBackup)
}

func TestCreateConfigBackup(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	assert.NoError(t, os.WriteFile(envPath, []byte("DB_HOST=localhost"), 0o600))

	cfg := &config.Config{BackupDir: filepath.Join(dir, "backups"), EnvFilePath: envPath}
	uc := &backupUseCase{cfg: cfg, log: logger.New()}

	backup, err := uc.CreateConfigBackup()

	assert.NoError(t, err)
	assert.Equal(t, entity.BackupTypeConfig, backup.Type)
	content, readErr := os.ReadFile(backup.Path)
	assert.NoError(t, readErr)
	assert.Equal(t, "DB_HOST=localhost", string(content))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.00 KB", formatBytes(1024))
	assert.Equal(t, "1.50 MB", formatBytes(1572864))
	assert.Equal(t, "1.00 GB", formatBytes(1073741824))
}
