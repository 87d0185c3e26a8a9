package usecase

import (
	"testing"

	"barangay-egov/internal/entity"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeStaffRepo struct {
	staff *entity.Staff
}

func (f *fakeStaffRepo) GetByUserID(userID string) (*entity.Staff, error) {
	if f.staff == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.staff, nil
}

func TestModulePermissions_AdminGetsEverything(t *testing.T) {
	uc := NewPermissionUseCase(&fakeStaffRepo{})

	permissions, err := uc.ModulePermissions("user-1", "admin")

	assert.NoError(t, err)
	assert.Len(t, permissions, 14)
	assert.True(t, permissions["dashboard"])
	assert.True(t, permissions["activityLogs"])
	assert.True(t, permissions["residentsRecords"])
}

func TestModulePermissions_MissingStaffFallsBackToDashboard(t *testing.T) {
	uc := NewPermissionUseCase(&fakeStaffRepo{})

	permissions, err := uc.ModulePermissions("user-1", "staff")

	assert.NoError(t, err)
	assert.Equal(t, map[string]bool{"dashboard": true}, permissions)
}

func TestModulePermissions_StaffMapShape(t *testing.T) {
	uc := NewPermissionUseCase(&fakeStaffRepo{staff: &entity.Staff{
		UserID: "user-1",
		ModulePermissions: map[string]interface{}{
			"dashboard":        true,
			"residentsRecords": false,
			"blotterRecords":   float64(1),
		},
	}})

	permissions, err := uc.ModulePermissions("user-1", "staff")

	assert.NoError(t, err)
	assert.True(t, permissions["dashboard"])
	assert.False(t, permissions["residentsRecords"])
	assert.True(t, permissions["blotterRecords"])
}

func TestModulePermissions_ListShapeNormalized(t *testing.T) {
	uc := NewPermissionUseCase(&fakeStaffRepo{staff: &entity.Staff{
		UserID: "user-1",
		ModulePermissions: map[string]interface{}{
			"modules": []interface{}{"dashboard", "documentsRecords"},
		},
	}})

	permissions, err := uc.ModulePermissions("user-1", "staff")

	assert.NoError(t, err)
	assert.Equal(t, map[string]bool{"dashboard": true, "documentsRecords": true}, permissions)
}
