package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"barangay-egov/internal/entity"
	"barangay-egov/internal/repo/persistent"
	"barangay-egov/internal/usecase"
	"barangay-egov/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeAnnouncementUseCase struct {
	announcements []*entity.ProgramAnnouncement
	created       *entity.ProgramAnnouncement
	createErr     error
	getErr        error
}

func (f *fakeAnnouncementUseCase) List(filters persistent.AnnouncementFilters) ([]*entity.ProgramAnnouncement, error) {
	return f.announcements, nil
}

func (f *fakeAnnouncementUseCase) ListForResidents() ([]*entity.ProgramAnnouncement, error) {
	return f.announcements, nil
}

func (f *fakeAnnouncementUseCase) Get(id string) (*entity.ProgramAnnouncement, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.created, nil
}

func (f *fakeAnnouncementUseCase) Create(input usecase.AnnouncementInput) (*entity.ProgramAnnouncement, error) {
	return f.created, f.createErr
}

func (f *fakeAnnouncementUseCase) Update(id string, input usecase.AnnouncementInput) (*entity.ProgramAnnouncement, error) {
	return f.created, f.createErr
}

func (f *fakeAnnouncementUseCase) Delete(id string) error { return f.getErr }

func (f *fakeAnnouncementUseCase) Publish(id string) (*entity.ProgramAnnouncement, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.created, nil
}

type noopActivityLogUseCase struct {
	usecase.ActivityLogUseCase
	entries []*entity.ActivityLog
}

func (n *noopActivityLogUseCase) Log(entry *entity.ActivityLog) {
	n.entries = append(n.entries, entry)
}

func setupAnnouncementTestRouter(uc usecase.AnnouncementUseCase, audit *noopActivityLogUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAnnouncementHandler(uc, audit, logger.New())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", "admin-1")
	})
	r.GET("/announcements", handler.GetAnnouncementsForResidents)
	r.POST("/admin/announcements", handler.CreateAnnouncement)
	r.POST("/admin/announcements/:id/publish", handler.PublishAnnouncement)
	return r
}

func TestCreateAnnouncement_ValidationReturns422(t *testing.T) {
	uc := &fakeAnnouncementUseCase{
		createErr: &usecase.ValidationError{Fields: map[string]string{"title": "The title field is required."}},
	}
	audit := &noopActivityLogUseCase{}
	router := setupAnnouncementTestRouter(uc, audit)

	body, _ := json.Marshal(map[string]string{"program_id": "p-1"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/announcements", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	errors := response["errors"].(map[string]interface{})
	assert.Equal(t, "The title field is required.", errors["title"])
	assert.Empty(t, audit.entries)
}

func TestCreateAnnouncement_SuccessIsAudited(t *testing.T) {
	uc := &fakeAnnouncementUseCase{
		created: &entity.ProgramAnnouncement{
			ID:     "ann-1",
			Title:  "Payout",
			Status: entity.AnnouncementPublished,
		},
	}
	audit := &noopActivityLogUseCase{}
	router := setupAnnouncementTestRouter(uc, audit)

	body, _ := json.Marshal(map[string]string{
		"program_id": "p-1",
		"title":      "Payout",
		"content":    "Schedule inside.",
		"status":     "published",
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/announcements", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Contains(t, response["message"], "published")

	assert.Len(t, audit.entries, 1)
	assert.Equal(t, "admin.announcement.created", audit.entries[0].Action)
	assert.Equal(t, "admin-1", *audit.entries[0].UserID)
}

func TestPublishAnnouncement_NotFound(t *testing.T) {
	uc := &fakeAnnouncementUseCase{getErr: usecase.ErrAnnouncementNotFound}
	router := setupAnnouncementTestRouter(uc, &noopActivityLogUseCase{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/announcements/missing/publish", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAnnouncementsForResidents(t *testing.T) {
	uc := &fakeAnnouncementUseCase{
		announcements: []*entity.ProgramAnnouncement{
			{ID: "ann-1", Title: "Payout", Status: entity.AnnouncementPublished},
		},
	}
	router := setupAnnouncementTestRouter(uc, &noopActivityLogUseCase{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/announcements", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
}
