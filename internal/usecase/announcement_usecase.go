package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"barangay-egov/internal/entity"
	"barangay-egov/internal/repo/persistent"
	"barangay-egov/pkg/logger"

	"gorm.io/gorm"
)

var ErrAnnouncementNotFound = errors.New("announcement not found")

// ValidationError carries per-field messages for an unprocessable request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// AnnouncementInput is the write payload for create and update operations.
type AnnouncementInput struct {
	ProgramID      string     `json:"program_id"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Status         string     `json:"status"`
	ExpiresAt      *time.Time `json:"expires_at"`
	IsUrgent       bool       `json:"is_urgent"`
	TargetAudience []string   `json:"target_audience"`
}

type AnnouncementUseCase interface {
	List(filters persistent.AnnouncementFilters) ([]*entity.ProgramAnnouncement, error)
	ListForResidents() ([]*entity.ProgramAnnouncement, error)
	Get(id string) (*entity.ProgramAnnouncement, error)
	Create(input AnnouncementInput) (*entity.ProgramAnnouncement, error)
	Update(id string, input AnnouncementInput) (*entity.ProgramAnnouncement, error)
	Delete(id string) error
	Publish(id string) (*entity.ProgramAnnouncement, error)
}

type announcementUseCase struct {
	announcementRepo persistent.AnnouncementRepository
	notificationRepo persistent.NotificationRepository
	log              *logger.Logger
}

func NewAnnouncementUseCase(
	announcementRepo persistent.AnnouncementRepository,
	notificationRepo persistent.NotificationRepository,
	log *logger.Logger,
) AnnouncementUseCase {
	return &announcementUseCase{
		announcementRepo: announcementRepo,
		notificationRepo: notificationRepo,
		log:              log,
	}
}

func (uc *announcementUseCase) List(filters persistent.AnnouncementFilters) ([]*entity.ProgramAnnouncement, error) {
	return uc.announcementRepo.List(filters)
}

func (uc *announcementUseCase) ListForResidents() ([]*entity.ProgramAnnouncement, error) {
	return uc.announcementRepo.ListForResidents()
}

func (uc *announcementUseCase) Get(id string) (*entity.ProgramAnnouncement, error) {
	announcement, err := uc.announcementRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("fetch announcement: %w", err)
	}
	return announcement, nil
}

func (uc *announcementUseCase) validate(input AnnouncementInput) error {
	fields := map[string]string{}

	if strings.TrimSpace(input.ProgramID) == "" {
		fields["program_id"] = "The program id field is required."
	} else {
		exists, err := uc.announcementRepo.ProgramExists(input.ProgramID)
		if err != nil {
			return fmt.Errorf("check program: %w", err)
		}
		if !exists {
			fields["program_id"] = "The selected program id is invalid."
		}
	}
	if strings.TrimSpace(input.Title) == "" {
		fields["title"] = "The title field is required."
	}
	if strings.TrimSpace(input.Content) == "" {
		fields["content"] = "The content field is required."
	}
	if input.Status != "" {
		switch entity.AnnouncementStatus(input.Status) {
		case entity.AnnouncementDraft, entity.AnnouncementPublished, entity.AnnouncementArchived:
		default:
			fields["status"] = "The selected status is invalid."
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (uc *announcementUseCase) Create(input AnnouncementInput) (*entity.ProgramAnnouncement, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}

	status := entity.AnnouncementStatus(input.Status)
	if status == "" {
		status = entity.AnnouncementDraft
	}

	announcement := &entity.ProgramAnnouncement{
		ProgramID:      input.ProgramID,
		Title:          input.Title,
		Content:        input.Content,
		Status:         status,
		ExpiresAt:      input.ExpiresAt,
		IsUrgent:       input.IsUrgent,
		TargetAudience: input.TargetAudience,
	}
	if status == entity.AnnouncementPublished {
		now := time.Now()
		announcement.PublishedAt = &now
	}

	if err := uc.announcementRepo.Create(announcement); err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}

	// Fan-out runs after the write so a notification failure never blocks
	// announcement creation.
	if status == entity.AnnouncementPublished {
		go uc.notifyAllResidents(announcement)
	}
	return announcement, nil
}

func (uc *announcementUseCase) Update(id string, input AnnouncementInput) (*entity.ProgramAnnouncement, error) {
	existing, err := uc.Get(id)
	if err != nil {
		return nil, err
	}

	if err := uc.validate(input); err != nil {
		return nil, err
	}

	existing.ProgramID = input.ProgramID
	existing.Title = input.Title
	existing.Content = input.Content
	existing.ExpiresAt = input.ExpiresAt
	existing.IsUrgent = input.IsUrgent
	existing.TargetAudience = input.TargetAudience
	if input.Status != "" {
		newStatus := entity.AnnouncementStatus(input.Status)
		if newStatus == entity.AnnouncementPublished && existing.Status != entity.AnnouncementPublished {
			now := time.Now()
			existing.PublishedAt = &now
		}
		existing.Status = newStatus
	}

	if err := uc.announcementRepo.Update(existing); err != nil {
		return nil, fmt.Errorf("update announcement: %w", err)
	}
	return existing, nil
}

func (uc *announcementUseCase) Delete(id string) error {
	if _, err := uc.Get(id); err != nil {
		return err
	}
	if err := uc.announcementRepo.Delete(id); err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	return nil
}

func (uc *announcementUseCase) Publish(id string) (*entity.ProgramAnnouncement, error) {
	announcement, err := uc.Get(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := uc.announcementRepo.Publish(id, now); err != nil {
		return nil, fmt.Errorf("publish announcement: %w", err)
	}
	announcement.Status = entity.AnnouncementPublished
	announcement.PublishedAt = &now

	go uc.notifyAllResidents(announcement)
	return announcement, nil
}

// notifyAllResidents pushes a framework notification to every resident user.
// Per-recipient failures are logged and skipped so one bad row cannot stall
// the rest of the fan-out.
func (uc *announcementUseCase) notifyAllResidents(announcement *entity.ProgramAnnouncement) {
	userIDs, err := uc.notificationRepo.GetResidentUserIDs()
	if err != nil {
		uc.log.Error("failed to fetch resident users for announcement %s: %v", announcement.ID, err)
		return
	}

	data := map[string]interface{}{
		"type":                    "program_announcement",
		"program_announcement_id": announcement.ID,
		"program_id":              announcement.ProgramID,
		"announcement_title":      announcement.Title,
		"message":                 announcement.Content,
		"is_urgent":               announcement.IsUrgent,
	}
	if announcement.Program != nil {
		data["program_name"] = announcement.Program.Name
	}

	sent := 0
	for _, userID := range userIDs {
		notification := &entity.FrameworkNotification{UserID: userID, Data: data}
		if err := uc.notificationRepo.CreateFrameworkNotification(notification); err != nil {
			uc.log.Warn("failed to notify user %s about announcement %s: %v", userID, announcement.ID, err)
			continue
		}
		sent++
	}
	uc.log.Info("announcement %s notifications sent to %d residents", announcement.ID, sent)
}
