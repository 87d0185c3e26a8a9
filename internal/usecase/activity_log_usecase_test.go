package usecase

import (
	"testing"
	"time"

	"barangay-egov/internal/entity"
	"barangay-egov/pkg/logger"

	"github.com/stretchr/testify/assert"
)

type fakeActivityLogRepo struct {
	created      []*entity.ActivityLog
	activeIDs    []string
	lastActivity map[string]time.Time
	deleteCutoff time.Time
	deletedCount int64
	createErr    error
}

func (f *fakeActivityLogRepo) Create(log *entity.ActivityLog) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, log)
	return nil
}

func (f *fakeActivityLogRepo) List(filters entity.LogFilters) ([]*entity.ActivityLog, int64, error) {
	return nil, 0, nil
}

func (f *fakeActivityLogRepo) GetByID(id int64) (*entity.ActivityLog, error) { return nil, nil }

func (f *fakeActivityLogRepo) Statistics(from, to time.Time) (*entity.LogStatistics, error) {
	return &entity.LogStatistics{}, nil
}

func (f *fakeActivityLogRepo) FilterOptions() (*entity.LogFilterOptions, error) {
	return &entity.LogFilterOptions{}, nil
}

func (f *fakeActivityLogRepo) DeleteOlderThan(cutoff time.Time) (int64, error) {
	f.deleteCutoff = cutoff
	return f.deletedCount, nil
}

func (f *fakeActivityLogRepo) ActiveUserIDs(actions []string, since time.Time) ([]string, error) {
	return f.activeIDs, nil
}

func (f *fakeActivityLogRepo) LastActivityAt(userID string, actions []string) (*time.Time, error) {
	if at, ok := f.lastActivity[userID]; ok {
		return &at, nil
	}
	return nil, nil
}

func (f *fakeActivityLogRepo) CountMatching(actions []string, from, to time.Time) (int64, error) {
	return 0, nil
}

type fakeInactiveResidentRepo struct {
	residents []*entity.Resident
	flagged   []string
	excluded  []string
}

func (f *fakeInactiveResidentRepo) GetByUserID(userID string) (*entity.Resident, error) {
	return nil, nil
}

func (f *fakeInactiveResidentRepo) ListWithAccounts() ([]*entity.Resident, error) {
	return f.residents, nil
}

func (f *fakeInactiveResidentRepo) ListWithAccountsExcluding(activeUserIDs []string, page, perPage int) ([]*entity.Resident, int64, error) {
	f.excluded = activeUserIDs
	inactive := []*entity.Resident{}
	active := map[string]bool{}
	for _, id := range activeUserIDs {
		active[id] = true
	}
	for _, r := range f.residents {
		if !active[r.UserID] {
			inactive = append(inactive, r)
		}
	}
	return inactive, int64(len(inactive)), nil
}

func (f *fakeInactiveResidentRepo) SetForReview(id string) error {
	f.flagged = append(f.flagged, id)
	return nil
}

func (f *fakeInactiveResidentRepo) CountFlagged() (int64, error) {
	return int64(len(f.flagged)), nil
}

func TestLog_BestEffort(t *testing.T) {
	repo := &fakeActivityLogRepo{}
	uc := NewActivityLogUseCase(repo, &fakeInactiveResidentRepo{}, logger.New())

	uc.Log(&entity.ActivityLog{Action: "login"})
	assert.Len(t, repo.created, 1)

	// A failing store must not panic or surface the error
	repo.createErr = assert.AnError
	uc.Log(&entity.ActivityLog{Action: "login"})
	assert.Len(t, repo.created, 1)
}

func TestCleanup_DefaultsRetention(t *testing.T) {
	repo := &fakeActivityLogRepo{deletedCount: 12}
	uc := NewActivityLogUseCase(repo, &fakeInactiveResidentRepo{}, logger.New())

	deleted, err := uc.Cleanup(0)

	assert.NoError(t, err)
	assert.Equal(t, int64(12), deleted)
	expected := time.Now().AddDate(0, 0, -90)
	assert.WithinDuration(t, expected, repo.deleteCutoff, time.Minute)
}

func TestInactiveResidents_SortsByDaysInactive(t *testing.T) {
	now := time.Now()
	repo := &fakeActivityLogRepo{
		activeIDs: []string{"user-active"},
		lastActivity: map[string]time.Time{
			"user-stale": now.AddDate(-2, 0, 0),
		},
	}
	residentRepo := &fakeInactiveResidentRepo{residents: []*entity.Resident{
		{ID: "res-1", UserID: "user-stale", FirstName: "Juan", LastName: "Dela Cruz", CreatedAt: now.AddDate(-3, 0, 0)},
		{ID: "res-2", UserID: "user-new", FirstName: "Maria", LastName: "Santos", CreatedAt: now.AddDate(0, -14, 0)},
		{ID: "res-3", UserID: "user-active", FirstName: "Pedro", LastName: "Reyes", CreatedAt: now.AddDate(-3, 0, 0)},
	}}
	uc := NewActivityLogUseCase(repo, residentRepo, logger.New())

	report, total, err := uc.InactiveResidents(1, 20)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, report, 2)
	// user-stale has the older last activity so it sorts first
	assert.Equal(t, "res-1", report[0].ID)
	assert.Equal(t, "res-2", report[1].ID)
	assert.Greater(t, report[0].DaysInactive, report[1].DaysInactive)
	assert.Equal(t, "Juan Dela Cruz", report[0].FullName)
	// residents with recorded activity use it instead of profile creation
	assert.WithinDuration(t, now.AddDate(-2, 0, 0), report[0].LastActivityDate, time.Minute)
	// active user ids were passed through as the exclusion set
	assert.Equal(t, []string{"user-active"}, residentRepo.excluded)
}

func TestFlagInactiveResidents_SkipsActiveUsers(t *testing.T) {
	repo := &fakeActivityLogRepo{activeIDs: []string{"user-active"}}
	residentRepo := &fakeInactiveResidentRepo{residents: []*entity.Resident{
		{ID: "res-1", UserID: "user-idle"},
		{ID: "res-2", UserID: "user-active"},
		{ID: "res-3", UserID: "user-gone"},
	}}
	uc := NewActivityLogUseCase(repo, residentRepo, logger.New())

	flagged, err := uc.FlagInactiveResidents()

	assert.NoError(t, err)
	assert.Equal(t, 2, flagged)
	assert.ElementsMatch(t, []string{"res-1", "res-3"}, residentRepo.flagged)
}
