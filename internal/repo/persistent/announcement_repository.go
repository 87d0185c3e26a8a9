package persistent

import (
	"time"

	"barangay-egov/internal/entity"
	"barangay-egov/internal/model"

	"gorm.io/gorm"
)

type AnnouncementFilters struct {
	ProgramID     string
	Status        string
	PublishedOnly bool
}

type AnnouncementRepository interface {
	List(filters AnnouncementFilters) ([]*entity.ProgramAnnouncement, error)
	ListForResidents() ([]*entity.ProgramAnnouncement, error)
	GetByID(id string) (*entity.ProgramAnnouncement, error)
	Create(announcement *entity.ProgramAnnouncement) error
	Update(announcement *entity.ProgramAnnouncement) error
	Delete(id string) error
	Publish(id string, publishedAt time.Time) error
	ProgramExists(programID string) (bool, error)
}

type announcementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) List(filters AnnouncementFilters) ([]*entity.ProgramAnnouncement, error) {
	query := r.db.Preload("Program").Order("created_at DESC")

	if filters.ProgramID != "" {
		query = query.Where("program_id = ?", filters.ProgramID)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.PublishedOnly {
		query = query.Where("status = ?", string(entity.AnnouncementPublished))
	}

	var models []model.ProgramAnnouncementModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	announcements := make([]*entity.ProgramAnnouncement, len(models))
	for i := range models {
		announcements[i] = ToAnnouncementEntity(&models[i])
	}
	return announcements, nil
}

func (r *announcementRepository) ListForResidents() ([]*entity.ProgramAnnouncement, error) {
	var models []model.ProgramAnnouncementModel
	err := r.db.Preload("Program").
		Where("status = ?", string(entity.AnnouncementPublished)).
		Order("is_urgent DESC").
		Order("published_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	announcements := make([]*entity.ProgramAnnouncement, len(models))
	for i := range models {
		announcements[i] = ToAnnouncementEntity(&models[i])
	}
	return announcements, nil
}

func (r *announcementRepository) GetByID(id string) (*entity.ProgramAnnouncement, error) {
	var announcementModel model.ProgramAnnouncementModel
	err := r.db.Preload("Program").Where("id = ?", id).First(&announcementModel).Error
	if err != nil {
		return nil, err
	}
	return ToAnnouncementEntity(&announcementModel), nil
}

func (r *announcementRepository) Create(announcement *entity.ProgramAnnouncement) error {
	announcementModel := toAnnouncementModel(announcement)
	if err := r.db.Create(announcementModel).Error; err != nil {
		return err
	}

	created, err := r.GetByID(announcementModel.ID)
	if err != nil {
		return err
	}
	*announcement = *created
	return nil
}

func (r *announcementRepository) Update(announcement *entity.ProgramAnnouncement) error {
	announcementModel := toAnnouncementModel(announcement)
	if err := r.db.Save(announcementModel).Error; err != nil {
		return err
	}

	updated, err := r.GetByID(announcementModel.ID)
	if err != nil {
		return err
	}
	*announcement = *updated
	return nil
}

func (r *announcementRepository) Delete(id string) error {
	return r.db.Delete(&model.ProgramAnnouncementModel{}, "id = ?", id).Error
}

func (r *announcementRepository) Publish(id string, publishedAt time.Time) error {
	return r.db.Model(&model.ProgramAnnouncementModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       string(entity.AnnouncementPublished),
			"published_at": publishedAt,
		}).Error
}

func (r *announcementRepository) ProgramExists(programID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.ProgramModel{}).Where("id = ?", programID).Count(&count).Error
	return count > 0, err
}

func toAnnouncementModel(a *entity.ProgramAnnouncement) *model.ProgramAnnouncementModel {
	return &model.ProgramAnnouncementModel{
		ID:             a.ID,
		ProgramID:      a.ProgramID,
		Title:          a.Title,
		Content:        a.Content,
		Status:         string(a.Status),
		PublishedAt:    a.PublishedAt,
		ExpiresAt:      a.ExpiresAt,
		IsUrgent:       a.IsUrgent,
		TargetAudience: model.StringList(a.TargetAudience),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
