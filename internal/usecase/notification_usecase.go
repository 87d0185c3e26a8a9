package usecase

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"barangay-egov/internal/entity"
	"barangay-egov/internal/repo/persistent"

	"gorm.io/gorm"
)

var (
	ErrProfileNotFound      = errors.New("resident profile not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

const (
	// Per-source fetch window; the merged feed is capped separately.
	perSourceLimit = 50
	mergedLimit    = 100
)

type NotificationUseCase interface {
	ListNotifications(userID string) ([]*entity.Notification, int, error)
	MarkAsRead(notificationID, userID string) (entity.NotificationSource, error)
	MarkAllAsRead(userID string) error
}

type notificationUseCase struct {
	notificationRepo persistent.NotificationRepository
	residentRepo     persistent.ResidentRepository
}

func NewNotificationUseCase(
	notificationRepo persistent.NotificationRepository,
	residentRepo persistent.ResidentRepository,
) NotificationUseCase {
	return &notificationUseCase{
		notificationRepo: notificationRepo,
		residentRepo:     residentRepo,
	}
}

// ListNotifications merges both notification stores into one feed ordered by
// creation time descending, newest first. Each entry is classified, given a
// display title and message, and annotated with a redirect path.
func (uc *notificationUseCase) ListNotifications(userID string) ([]*entity.Notification, int, error) {
	resident, err := uc.residentRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrProfileNotFound
		}
		return nil, 0, fmt.Errorf("fetch resident profile: %w", err)
	}

	frameworkRows, err := uc.notificationRepo.GetFrameworkNotifications(userID, perSourceLimit)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch framework notifications: %w", err)
	}

	residentRows, err := uc.notificationRepo.GetResidentNotifications(resident.ID, perSourceLimit)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch resident notifications: %w", err)
	}

	merged := make([]*entity.Notification, 0, len(frameworkRows)+len(residentRows))
	for _, row := range frameworkRows {
		merged = append(merged, uc.fromFrameworkRow(row))
	}
	for _, row := range residentRows {
		merged = append(merged, uc.fromResidentRow(row))
	}

	// Stable sort keeps same-timestamp entries in source order.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	unread := 0
	for _, notification := range merged {
		if !notification.IsRead {
			unread++
		}
	}

	if len(merged) > mergedLimit {
		merged = merged[:mergedLimit]
	}
	return merged, unread, nil
}

func (uc *notificationUseCase) fromFrameworkRow(row *entity.FrameworkNotification) *entity.Notification {
	data := row.Data
	if data == nil {
		data = map[string]interface{}{}
	}

	category := Classify(data)
	return &entity.Notification{
		ID:           row.ID,
		Source:       entity.SourceFramework,
		Category:     category,
		Title:        CategoryTitle(category),
		Message:      BuildMessage(data, row.CreatedAt),
		Data:         data,
		IsRead:       row.ReadAt != nil,
		ReadAt:       row.ReadAt,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		RedirectPath: ResolveRedirect(data, entity.SourceFramework),
	}
}

// fromResidentRow enriches the stored payload with the row's own program and
// message columns before classification, so custom rows classify the same way
// framework rows do.
func (uc *notificationUseCase) fromResidentRow(row *entity.ResidentNotification) *entity.Notification {
	data := make(map[string]interface{}, len(row.Data)+5)
	for key, value := range row.Data {
		data[key] = value
	}
	if row.ProgramID != nil {
		data["program_id"] = *row.ProgramID
	}
	if row.ProgramName != nil {
		data["program_name"] = *row.ProgramName
	}
	if row.ProgramType != nil {
		data["program_type"] = *row.ProgramType
	}
	if row.Message != "" {
		data["message"] = row.Message
	}
	if row.Type != "" {
		data["type"] = row.Type
	}

	category := Classify(data)
	title := row.Title
	if title == "" {
		title = CategoryTitle(category)
	}

	return &entity.Notification{
		ID:           strconv.FormatInt(row.ID, 10),
		Source:       entity.SourceCustom,
		Category:     category,
		Title:        title,
		Message:      BuildMessage(data, row.CreatedAt),
		Data:         data,
		IsRead:       row.IsRead,
		ReadAt:       row.ReadAt,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		RedirectPath: ResolveRedirect(data, entity.SourceCustom),
	}
}

// MarkAsRead resolves a bare id against the framework store first, then the
// custom store. The returned source tells the caller which store matched.
func (uc *notificationUseCase) MarkAsRead(notificationID, userID string) (entity.NotificationSource, error) {
	resident, err := uc.residentRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrProfileNotFound
		}
		return "", fmt.Errorf("fetch resident profile: %w", err)
	}

	now := time.Now()

	_, err = uc.notificationRepo.FindFrameworkNotification(notificationID, userID)
	if err == nil {
		if err := uc.notificationRepo.MarkFrameworkRead(notificationID, now); err != nil {
			return "", fmt.Errorf("mark framework notification read: %w", err)
		}
		return entity.SourceFramework, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("find framework notification: %w", err)
	}

	// Custom store uses numeric ids; non-numeric ids can only miss.
	customID, parseErr := strconv.ParseInt(notificationID, 10, 64)
	if parseErr != nil {
		return "", ErrNotificationNotFound
	}

	_, err = uc.notificationRepo.FindResidentNotification(customID, resident.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotificationNotFound
		}
		return "", fmt.Errorf("find resident notification: %w", err)
	}
	if err := uc.notificationRepo.MarkResidentRead(customID, now); err != nil {
		return "", fmt.Errorf("mark resident notification read: %w", err)
	}
	return entity.SourceCustom, nil
}

func (uc *notificationUseCase) MarkAllAsRead(userID string) error {
	resident, err := uc.residentRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("fetch resident profile: %w", err)
	}

	if err := uc.notificationRepo.MarkAllRead(userID, resident.ID, time.Now()); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}
