package persistent

import (
	"barangay-egov/internal/entity"
	"barangay-egov/internal/model"

	"gorm.io/gorm"
)

type StaffRepository interface {
	GetByUserID(userID string) (*entity.Staff, error)
}

type staffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) GetByUserID(userID string) (*entity.Staff, error) {
	var staffModel model.StaffModel
	err := r.db.Where("user_id = ?", userID).First(&staffModel).Error
	if err != nil {
		return nil, err
	}
	return ToStaffEntity(&staffModel), nil
}
