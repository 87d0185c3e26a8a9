package usecase

import (
	"strconv"
	"testing"
	"time"

	"barangay-egov/internal/entity"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeNotificationRepo struct {
	framework      []*entity.FrameworkNotification
	resident       []*entity.ResidentNotification
	markedUUIDs    []string
	markedNumeric  []int64
	markAllCalls   int
	createdFanouts []*entity.FrameworkNotification
	residentUsers  []string
}

func (f *fakeNotificationRepo) GetFrameworkNotifications(userID string, limit int) ([]*entity.FrameworkNotification, error) {
	if limit > len(f.framework) {
		limit = len(f.framework)
	}
	return f.framework[:limit], nil
}

func (f *fakeNotificationRepo) GetResidentNotifications(residentID string, limit int) ([]*entity.ResidentNotification, error) {
	if limit > len(f.resident) {
		limit = len(f.resident)
	}
	return f.resident[:limit], nil
}

func (f *fakeNotificationRepo) FindFrameworkNotification(id, userID string) (*entity.FrameworkNotification, error) {
	for _, n := range f.framework {
		if n.ID == id && n.UserID == userID {
			return n, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepo) MarkFrameworkRead(id string, readAt time.Time) error {
	f.markedUUIDs = append(f.markedUUIDs, id)
	return nil
}

func (f *fakeNotificationRepo) FindResidentNotification(id int64, residentID string) (*entity.ResidentNotification, error) {
	for _, n := range f.resident {
		if n.ID == id && n.ResidentID == residentID {
			return n, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepo) MarkResidentRead(id int64, readAt time.Time) error {
	f.markedNumeric = append(f.markedNumeric, id)
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(userID, residentID string, readAt time.Time) error {
	f.markAllCalls++
	return nil
}

func (f *fakeNotificationRepo) CreateFrameworkNotification(n *entity.FrameworkNotification) error {
	f.createdFanouts = append(f.createdFanouts, n)
	return nil
}

func (f *fakeNotificationRepo) GetResidentUserIDs() ([]string, error) {
	return f.residentUsers, nil
}

type fakeResidentRepo struct {
	resident *entity.Resident
}

func (f *fakeResidentRepo) GetByUserID(userID string) (*entity.Resident, error) {
	if f.resident == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.resident, nil
}

func (f *fakeResidentRepo) ListWithAccounts() ([]*entity.Resident, error) { return nil, nil }
func (f *fakeResidentRepo) ListWithAccountsExcluding(activeUserIDs []string, page, perPage int) ([]*entity.Resident, int64, error) {
	return nil, 0, nil
}
func (f *fakeResidentRepo) SetForReview(id string) error { return nil }
func (f *fakeResidentRepo) CountFlagged() (int64, error) { return 0, nil }

func baseTime(offset int) time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(offset) * time.Minute)
}

func TestListNotifications_MergesAndSortsDescending(t *testing.T) {
	readAt := baseTime(0)
	notificationRepo := &fakeNotificationRepo{
		framework: []*entity.FrameworkNotification{
			{ID: "uuid-1", UserID: "user-1", Data: map[string]interface{}{"document_type": "Clearance", "status": "approved"}, CreatedAt: baseTime(10)},
			{ID: "uuid-2", UserID: "user-1", Data: map[string]interface{}{"type": "announcement"}, ReadAt: &readAt, CreatedAt: baseTime(30)},
		},
		resident: []*entity.ResidentNotification{
			{ID: 7, ResidentID: "res-1", Type: "program_notice", Title: "Enrollment", Message: "Enrolled.", CreatedAt: baseTime(20)},
		},
	}
	residentRepo := &fakeResidentRepo{resident: &entity.Resident{ID: "res-1", UserID: "user-1"}}
	uc := NewNotificationUseCase(notificationRepo, residentRepo)

	notifications, unread, err := uc.ListNotifications("user-1")

	assert.NoError(t, err)
	assert.Len(t, notifications, 3)
	assert.Equal(t, "uuid-2", notifications[0].ID)
	assert.Equal(t, "7", notifications[1].ID)
	assert.Equal(t, "uuid-1", notifications[2].ID)
	assert.Equal(t, 2, unread)

	// framework entry classified and titled
	assert.Equal(t, entity.SourceFramework, notifications[2].Source)
	assert.Equal(t, entity.CategoryDocumentRequest, notifications[2].Category)
	assert.Equal(t, "Document Request Notification", notifications[2].Title)

	// custom entry keeps its stored title and gets the custom fallback route
	assert.Equal(t, entity.SourceCustom, notifications[1].Source)
	assert.Equal(t, "Enrollment", notifications[1].Title)
	assert.NotNil(t, notifications[1].RedirectPath)
	assert.Equal(t, "/residents/enrolledPrograms", *notifications[1].RedirectPath)
}

func TestListNotifications_CustomPayloadEnrichment(t *testing.T) {
	programID := "prog-1"
	programName := "4Ps Assistance"
	notificationRepo := &fakeNotificationRepo{
		resident: []*entity.ResidentNotification{
			{
				ID:          3,
				ResidentID:  "res-1",
				ProgramID:   &programID,
				ProgramName: &programName,
				Type:        "program_notice",
				CreatedAt:   baseTime(0),
			},
		},
	}
	residentRepo := &fakeResidentRepo{resident: &entity.Resident{ID: "res-1", UserID: "user-1"}}
	uc := NewNotificationUseCase(notificationRepo, residentRepo)

	notifications, _, err := uc.ListNotifications("user-1")

	assert.NoError(t, err)
	assert.Len(t, notifications, 1)
	assert.Equal(t, "prog-1", notifications[0].Data["program_id"])
	assert.Equal(t, "4Ps Assistance", notifications[0].Data["program_name"])
	assert.Equal(t, "/residents/enrolledPrograms?program=prog-1", *notifications[0].RedirectPath)
}

func TestListNotifications_CapsMergedFeed(t *testing.T) {
	notificationRepo := &fakeNotificationRepo{}
	for i := 0; i < 60; i++ {
		notificationRepo.framework = append(notificationRepo.framework, &entity.FrameworkNotification{
			ID: "uuid-" + strconv.Itoa(i), UserID: "user-1", CreatedAt: baseTime(i),
		})
		notificationRepo.resident = append(notificationRepo.resident, &entity.ResidentNotification{
			ID: int64(i), ResidentID: "res-1", CreatedAt: baseTime(i),
		})
	}
	residentRepo := &fakeResidentRepo{resident: &entity.Resident{ID: "res-1", UserID: "user-1"}}
	uc := NewNotificationUseCase(notificationRepo, residentRepo)

	notifications, unread, err := uc.ListNotifications("user-1")

	assert.NoError(t, err)
	// 50 per source, so the merged feed stays within the 100-entry cap
	assert.Len(t, notifications, 100)
	assert.Equal(t, 100, unread)
}

func TestListNotifications_ProfileNotFound(t *testing.T) {
	uc := NewNotificationUseCase(&fakeNotificationRepo{}, &fakeResidentRepo{})

	_, _, err := uc.ListNotifications("user-x")

	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestMarkAsRead_FrameworkStoreCheckedFirst(t *testing.T) {
	// Same id exists in both stores; the framework row must win.
	notificationRepo := &fakeNotificationRepo{
		framework: []*entity.FrameworkNotification{
			{ID: "15", UserID: "user-1", CreatedAt: baseTime(0)},
		},
		resident: []*entity.ResidentNotification{
			{ID: 15, ResidentID: "res-1", CreatedAt: baseTime(0)},
		},
	}
	residentRepo := &fakeResidentRepo{resident: &entity.Resident{ID: "res-1", UserID: "user-1"}}
	uc := NewNotificationUseCase(notificationRepo, residentRepo)

	source, err := uc.MarkAsRead("15", "user-1")

	assert.NoError(t, err)
	assert.Equal(t, entity.SourceFramework, source)
	assert.Equal(t, []string{"15"}, notificationRepo.markedUUIDs)
	assert.Empty(t, notificationRepo.markedNumeric)
}

func TestMarkAsRead_FallsBackToCustomStore(t *testing.T) {
	notificationRepo := &fakeNotificationRepo{
		resident: []*entity.ResidentNotification{
			{ID: 15, ResidentID: "res-1", CreatedAt: baseTime(0)},
		},
	}
	residentRepo := &fakeResidentRepo{resident: &entity.Resident{ID: "res-1", UserID: "user-1"}}
	uc := NewNotificationUseCase(notificationRepo, residentRepo)

	source, err := uc.MarkAsRead("15", "user-1")

	assert.NoError(t, err)
	assert.Equal(t, entity.SourceCustom, source)
	assert.Equal(t, []int64{15}, notificationRepo.markedNumeric)
}

func TestMarkAsRead_NonNumericIDMissesCustomStore(t *testing.T) {
	notificationRepo := &fakeNotificationRepo{}
	residentRepo := &fakeResidentRepo{resident: &entity.Resident{ID: "res-1", UserID: "user-1"}}
	uc := NewNotificationUseCase(notificationRepo, residentRepo)

	_, err := uc.MarkAsRead("not-a-number", "user-1")

	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestMarkAsRead_NotFoundAnywhere(t *testing.T) {
	notificationRepo := &fakeNotificationRepo{}
	residentRepo := &fakeResidentRepo{resident: &entity.Resident{ID: "res-1", UserID: "user-1"}}
	uc := NewNotificationUseCase(notificationRepo, residentRepo)

	_, err := uc.MarkAsRead("99", "user-1")

	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestMarkAllAsRead(t *testing.T) {
	notificationRepo := &fakeNotificationRepo{}
	residentRepo := &fakeResidentRepo{resident: &entity.Resident{ID: "res-1", UserID: "user-1"}}
	uc := NewNotificationUseCase(notificationRepo, residentRepo)

	err := uc.MarkAllAsRead("user-1")

	assert.NoError(t, err)
	assert.Equal(t, 1, notificationRepo.markAllCalls)
}

func TestMarkAllAsRead_ProfileNotFound(t *testing.T) {
	uc := NewNotificationUseCase(&fakeNotificationRepo{}, &fakeResidentRepo{})

	err := uc.MarkAllAsRead("user-x")

	assert.ErrorIs(t, err, ErrProfileNotFound)
}
