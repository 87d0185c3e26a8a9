package persistent

import (
	"time"

	"barangay-egov/internal/entity"
	"barangay-egov/internal/model"

	"gorm.io/gorm"
)

type ActivityLogRepository interface {
	Create(log *entity.ActivityLog) error
	List(filters entity.LogFilters) ([]*entity.ActivityLog, int64, error)
	GetByID(id int64) (*entity.ActivityLog, error)
	Statistics(from, to time.Time) (*entity.LogStatistics, error)
	FilterOptions() (*entity.LogFilterOptions, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
	ActiveUserIDs(actions []string, since time.Time) ([]string, error)
	LastActivityAt(userID string, actions []string) (*time.Time, error)
	CountMatching(actions []string, from, to time.Time) (int64, error)
}

type activityLogRepository struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Create(log *entity.ActivityLog) error {
	logModel := &model.ActivityLogModel{
		UserID:      log.UserID,
		Action:      log.Action,
		ModelType:   log.ModelType,
		ModelID:     log.ModelID,
		Description: log.Description,
		IPAddress:   log.IPAddress,
		UserAgent:   log.UserAgent,
	}
	if err := r.db.Create(logModel).Error; err != nil {
		return err
	}
	log.ID = logModel.ID
	log.CreatedAt = logModel.CreatedAt
	return nil
}

func (r *activityLogRepository) List(filters entity.LogFilters) ([]*entity.ActivityLog, int64, error) {
	query := r.db.Model(&model.ActivityLogModel{}).Preload("User")

	if filters.UserID != "" {
		query = query.Where("user_id = ?", filters.UserID)
	}
	if filters.Action != "" {
		query = query.Where("action = ?", filters.Action)
	}
	if filters.ModelType != "" {
		query = query.Where("model_type = ?", filters.ModelType)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("description ILIKE ? OR action ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	perPage := filters.PerPage
	if perPage < 1 {
		perPage = 20
	}

	var models []model.ActivityLogModel
	err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	logs := make([]*entity.ActivityLog, len(models))
	for i := range models {
		logs[i] = ToActivityLogEntity(&models[i])
	}
	return logs, total, nil
}

func (r *activityLogRepository) GetByID(id int64) (*entity.ActivityLog, error) {
	var logModel model.ActivityLogModel
	err := r.db.Preload("User").Where("id = ?", id).First(&logModel).Error
	if err != nil {
		return nil, err
	}
	return ToActivityLogEntity(&logModel), nil
}

func (r *activityLogRepository) Statistics(from, to time.Time) (*entity.LogStatistics, error) {
	stats := &entity.LogStatistics{}
	base := func() *gorm.DB {
		return r.db.Model(&model.ActivityLogModel{}).Where("created_at BETWEEN ? AND ?", from, to)
	}

	if err := base().Count(&stats.TotalLogs).Error; err != nil {
		return nil, err
	}
	if err := base().Where("action = ?", "login").Count(&stats.LoginCount).Error; err != nil {
		return nil, err
	}
	if err := base().Where("action = ? AND model_type = ?", "created", "User").Count(&stats.UserRegistrations).Error; err != nil {
		return nil, err
	}
	if err := base().Where("action = ? AND model_type = ?", "updated", "Resident").Count(&stats.ResidentUpdates).Error; err != nil {
		return nil, err
	}
	if err := base().Where("action LIKE ?", "admin.%").Count(&stats.AdminActions).Error; err != nil {
		return nil, err
	}

	err := base().Select("action, COUNT(*) as count").
		Group("action").
		Order("count DESC").
		Limit(10).
		Scan(&stats.TopActions).Error
	if err != nil {
		return nil, err
	}

	type userActivityRow struct {
		UserID        string
		ActivityCount int64
	}
	var rows []userActivityRow
	err = base().Select("user_id, COUNT(*) as activity_count").
		Where("user_id IS NOT NULL").
		Group("user_id").
		Order("activity_count DESC").
		Limit(10).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		var userModel model.UserModel
		userEntry := entity.UserActivityCount{UserID: row.UserID, ActivityCount: row.ActivityCount}
		if err := r.db.Where("id = ?", row.UserID).First(&userModel).Error; err == nil {
			userEntry.User = ToUserEntity(&userModel)
		}
		stats.ActiveUsers = append(stats.ActiveUsers, userEntry)
	}

	return stats, nil
}

func (r *activityLogRepository) FilterOptions() (*entity.LogFilterOptions, error) {
	options := &entity.LogFilterOptions{}

	err := r.db.Model(&model.ActivityLogModel{}).
		Distinct("action").
		Pluck("action", &options.Actions).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&model.ActivityLogModel{}).
		Distinct("model_type").
		Where("model_type <> ''").
		Pluck("model_type", &options.ModelTypes).Error
	if err != nil {
		return nil, err
	}

	var userIDs []string
	err = r.db.Model(&model.ActivityLogModel{}).
		Distinct("user_id").
		Where("user_id IS NOT NULL").
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, err
	}

	if len(userIDs) > 0 {
		var userModels []model.UserModel
		if err := r.db.Where("id IN ?", userIDs).Find(&userModels).Error; err != nil {
			return nil, err
		}
		for i := range userModels {
			options.Users = append(options.Users, *ToUserEntity(&userModels[i]))
		}
	}

	return options, nil
}

func (r *activityLogRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&model.ActivityLogModel{})
	return result.RowsAffected, result.Error
}

func (r *activityLogRepository) ActiveUserIDs(actions []string, since time.Time) ([]string, error) {
	var userIDs []string
	err := r.db.Model(&model.ActivityLogModel{}).
		Distinct("user_id").
		Where("action IN ? AND created_at >= ? AND user_id IS NOT NULL", actions, since).
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}

func (r *activityLogRepository) LastActivityAt(userID string, actions []string) (*time.Time, error) {
	var logModel model.ActivityLogModel
	err := r.db.Where("user_id = ? AND action IN ?", userID, actions).
		Order("created_at DESC").
		First(&logModel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &logModel.CreatedAt, nil
}

func (r *activityLogRepository) CountMatching(actions []string, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.ActivityLogModel{}).
		Where("action IN ? AND created_at BETWEEN ? AND ?", actions, from, to).
		Count(&count).Error
	return count, err
}
