package persistent

import (
	"barangay-egov/internal/entity"
	"barangay-egov/internal/model"

	"gorm.io/gorm"
)

type ResidentRepository interface {
	GetByUserID(userID string) (*entity.Resident, error)
	ListWithAccounts() ([]*entity.Resident, error)
	ListWithAccountsExcluding(activeUserIDs []string, page, perPage int) ([]*entity.Resident, int64, error)
	SetForReview(id string) error
	CountFlagged() (int64, error)
}

type residentRepository struct {
	db *gorm.DB
}

func NewResidentRepository(db *gorm.DB) ResidentRepository {
	return &residentRepository{db: db}
}

func (r *residentRepository) GetByUserID(userID string) (*entity.Resident, error) {
	var residentModel model.ResidentModel
	err := r.db.Where("user_id = ?", userID).First(&residentModel).Error
	if err != nil {
		return nil, err
	}
	return ToResidentEntity(&residentModel), nil
}

func (r *residentRepository) ListWithAccounts() ([]*entity.Resident, error) {
	var models []model.ResidentModel
	err := r.db.Preload("User").Where("user_id IS NOT NULL").Find(&models).Error
	if err != nil {
		return nil, err
	}

	residents := make([]*entity.Resident, len(models))
	for i := range models {
		residents[i] = ToResidentEntity(&models[i])
	}
	return residents, nil
}

func (r *residentRepository) ListWithAccountsExcluding(activeUserIDs []string, page, perPage int) ([]*entity.Resident, int64, error) {
	query := r.db.Model(&model.ResidentModel{}).
		Preload("User").
		Where("user_id IS NOT NULL")

	// All residents count as inactive when nobody has recent activity
	if len(activeUserIDs) > 0 {
		query = query.Where("user_id NOT IN ?", activeUserIDs)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []model.ResidentModel
	err := query.Offset((page - 1) * perPage).Limit(perPage).Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	residents := make([]*entity.Resident, len(models))
	for i := range models {
		residents[i] = ToResidentEntity(&models[i])
	}
	return residents, total, nil
}

func (r *residentRepository) SetForReview(id string) error {
	return r.db.Model(&model.ResidentModel{}).
		Where("id = ?", id).
		Update("for_review", true).Error
}

func (r *residentRepository) CountFlagged() (int64, error) {
	var count int64
	err := r.db.Model(&model.ResidentModel{}).Where("for_review = ?", true).Count(&count).Error
	return count, err
}
