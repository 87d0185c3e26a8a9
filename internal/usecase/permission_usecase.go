package usecase

import (
	"errors"
	"fmt"

	"barangay-egov/internal/repo/persistent"

	"gorm.io/gorm"
)

// adminModules is the full permission set granted to admin accounts.
var adminModules = []string{
	"dashboard",
	"residentsRecords",
	"documentsRecords",
	"householdRecords",
	"blotterRecords",
	"financialTracking",
	"barangayOfficials",
	"staff",
	"communicationAnnouncement",
	"projectManagement",
	"socialServices",
	"disasterEmergency",
	"inventoryAssets",
	"activityLogs",
}

type PermissionUseCase interface {
	ModulePermissions(userID, role string) (map[string]bool, error)
}

type permissionUseCase struct {
	staffRepo persistent.StaffRepository
}

func NewPermissionUseCase(staffRepo persistent.StaffRepository) PermissionUseCase {
	return &permissionUseCase{staffRepo: staffRepo}
}

// ModulePermissions resolves which admin-panel modules a user may open.
// Admins get everything; staff get their stored grants; anyone without a
// staff record falls back to dashboard only.
func (uc *permissionUseCase) ModulePermissions(userID, role string) (map[string]bool, error) {
	if role == "admin" {
		permissions := make(map[string]bool, len(adminModules))
		for _, module := range adminModules {
			permissions[module] = true
		}
		return permissions, nil
	}

	staff, err := uc.staffRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return map[string]bool{"dashboard": true}, nil
		}
		return nil, fmt.Errorf("fetch staff record: %w", err)
	}

	if len(staff.ModulePermissions) == 0 {
		return map[string]bool{"dashboard": true}, nil
	}
	return normalizePermissions(staff.ModulePermissions), nil
}

// normalizePermissions accepts both storage shapes: a map of module to flag,
// or a plain list of granted module names.
func normalizePermissions(raw map[string]interface{}) map[string]bool {
	permissions := make(map[string]bool, len(raw))

	// A list stored as jsonb decodes into numeric string keys; detect the
	// list shape by value type instead.
	if modules, ok := raw["modules"]; ok {
		if list, ok := modules.([]interface{}); ok {
			for _, module := range list {
				if name, ok := module.(string); ok {
					permissions[name] = true
				}
			}
			return permissions
		}
	}

	for key, value := range raw {
		switch v := value.(type) {
		case bool:
			permissions[key] = v
		case string:
			// Module name stored as a list element
			permissions[v] = true
		case float64:
			permissions[key] = v != 0
		}
	}
	return permissions
}
