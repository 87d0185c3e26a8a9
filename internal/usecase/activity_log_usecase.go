package usecase

import (
	"fmt"
	"sort"
	"time"

	"barangay-egov/internal/entity"
	"barangay-egov/internal/repo/persistent"
	"barangay-egov/pkg/logger"
)

const (
	defaultRetentionDays = 90
	inactivityWindowDays = 365
	exportRowLimit       = 5000
)

// Actions that count as resident activity for the inactivity report.
var residentActivityActions = []string{"login", "Resident.Profile.Updated", "Resident.Updated"}

type ActivityLogUseCase interface {
	Log(entry *entity.ActivityLog)
	List(filters entity.LogFilters) ([]*entity.ActivityLog, int64, error)
	Get(id int64) (*entity.ActivityLog, error)
	Statistics(from, to *time.Time) (*entity.LogStatistics, error)
	FilterOptions() (*entity.LogFilterOptions, error)
	Export(filters entity.LogFilters) ([]*entity.ActivityLog, error)
	Cleanup(days int) (int64, error)
	InactiveResidents(page, perPage int) ([]*entity.InactiveResident, int64, error)
	FlagInactiveResidents() (int, error)
	FlaggedCount() (int64, error)
}

type activityLogUseCase struct {
	logRepo      persistent.ActivityLogRepository
	residentRepo persistent.ResidentRepository
	log          *logger.Logger
}

func NewActivityLogUseCase(
	logRepo persistent.ActivityLogRepository,
	residentRepo persistent.ResidentRepository,
	log *logger.Logger,
) ActivityLogUseCase {
	return &activityLogUseCase{
		logRepo:      logRepo,
		residentRepo: residentRepo,
		log:          log,
	}
}

// Log records an audit entry best-effort. Persistence failures never bubble
// up to the operation being audited.
func (uc *activityLogUseCase) Log(entry *entity.ActivityLog) {
	if err := uc.logRepo.Create(entry); err != nil {
		uc.log.Error("failed to record activity log action=%s: %v", entry.Action, err)
	}
}

func (uc *activityLogUseCase) List(filters entity.LogFilters) ([]*entity.ActivityLog, int64, error) {
	return uc.logRepo.List(filters)
}

func (uc *activityLogUseCase) Get(id int64) (*entity.ActivityLog, error) {
	return uc.logRepo.GetByID(id)
}

// Statistics defaults to the last 30 days when no range is given.
func (uc *activityLogUseCase) Statistics(from, to *time.Time) (*entity.LogStatistics, error) {
	end := time.Now()
	if to != nil {
		end = *to
	}
	start := end.AddDate(0, 0, -30)
	if from != nil {
		start = *from
	}
	return uc.logRepo.Statistics(start, end)
}

func (uc *activityLogUseCase) FilterOptions() (*entity.LogFilterOptions, error) {
	return uc.logRepo.FilterOptions()
}

func (uc *activityLogUseCase) Export(filters entity.LogFilters) ([]*entity.ActivityLog, error) {
	filters.Page = 1
	filters.PerPage = exportRowLimit
	logs, _, err := uc.logRepo.List(filters)
	return logs, err
}

func (uc *activityLogUseCase) Cleanup(days int) (int64, error) {
	if days < 1 {
		days = defaultRetentionDays
	}
	cutoff := time.Now().AddDate(0, 0, -days)
	deleted, err := uc.logRepo.DeleteOlderThan(cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete logs older than %d days: %w", days, err)
	}
	uc.log.Info("activity log cleanup removed %d entries older than %d days", deleted, days)
	return deleted, nil
}

// InactiveResidents reports residents with accounts but no login or profile
// activity inside the last year. Residents with no recorded activity at all
// fall back to their profile creation date.
func (uc *activityLogUseCase) InactiveResidents(page, perPage int) ([]*entity.InactiveResident, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	now := time.Now()
	since := now.AddDate(0, 0, -inactivityWindowDays)

	activeUserIDs, err := uc.logRepo.ActiveUserIDs(residentActivityActions, since)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch active user ids: %w", err)
	}

	residents, total, err := uc.residentRepo.ListWithAccountsExcluding(activeUserIDs, page, perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch inactive residents: %w", err)
	}

	report := make([]*entity.InactiveResident, 0, len(residents))
	for _, resident := range residents {
		lastActivity := resident.CreatedAt
		if at, err := uc.logRepo.LastActivityAt(resident.UserID, residentActivityActions); err != nil {
			uc.log.Warn("failed to resolve last activity for user %s: %v", resident.UserID, err)
		} else if at != nil {
			lastActivity = *at
		}

		report = append(report, &entity.InactiveResident{
			ID:               resident.ID,
			ResidentID:       resident.ResidentID,
			FirstName:        resident.FirstName,
			MiddleName:       resident.MiddleName,
			LastName:         resident.LastName,
			NameSuffix:       resident.NameSuffix,
			Email:            resident.Email,
			ContactNumber:    resident.ContactNumber,
			FullName:         resident.FullName(),
			UserID:           resident.UserID,
			LastActivityDate: lastActivity,
			DaysInactive:     int(now.Sub(lastActivity).Hours() / 24),
			ForReview:        resident.ForReview,
			User:             resident.User,
		})
	}

	sort.SliceStable(report, func(i, j int) bool {
		return report[i].DaysInactive > report[j].DaysInactive
	})
	return report, total, nil
}

// FlagInactiveResidents marks every currently-inactive resident profile for
// review and returns how many were flagged.
func (uc *activityLogUseCase) FlagInactiveResidents() (int, error) {
	since := time.Now().AddDate(0, 0, -inactivityWindowDays)

	activeUserIDs, err := uc.logRepo.ActiveUserIDs(residentActivityActions, since)
	if err != nil {
		return 0, fmt.Errorf("fetch active user ids: %w", err)
	}

	active := make(map[string]bool, len(activeUserIDs))
	for _, id := range activeUserIDs {
		active[id] = true
	}

	residents, err := uc.residentRepo.ListWithAccounts()
	if err != nil {
		return 0, fmt.Errorf("fetch residents: %w", err)
	}

	flagged := 0
	for _, resident := range residents {
		if active[resident.UserID] {
			continue
		}
		if err := uc.residentRepo.SetForReview(resident.ID); err != nil {
			uc.log.Error("failed to flag resident %s for review: %v", resident.ID, err)
			continue
		}
		flagged++
	}
	return flagged, nil
}

func (uc *activityLogUseCase) FlaggedCount() (int64, error) {
	return uc.residentRepo.CountFlagged()
}
