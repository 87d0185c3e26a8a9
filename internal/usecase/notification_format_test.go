package usecase

import (
	"testing"
	"time"

	"barangay-egov/internal/entity"

	"github.com/stretchr/testify/assert"
)

var testCreatedAt = time.Date(2025, 3, 15, 14, 30, 5, 0, time.UTC)

func TestClassify_DocumentRequestVariants(t *testing.T) {
	assert.Equal(t, entity.CategoryDocumentRequest, Classify(map[string]interface{}{"document_request_id": float64(12)}))
	assert.Equal(t, entity.CategoryDocumentRequest, Classify(map[string]interface{}{"type": "document_request_status"}))
	assert.Equal(t, entity.CategoryDocumentRequest, Classify(map[string]interface{}{"document_type": "Barangay Clearance"}))
	assert.Equal(t, entity.CategoryDocumentRequest, Classify(map[string]interface{}{"certification_type": "Indigency"}))
}

func TestClassify_FirstMatchWins(t *testing.T) {
	// document keys dominate everything that follows
	data := map[string]interface{}{
		"document_request_id": float64(5),
		"asset_request_id":    float64(9),
		"program_id":          float64(3),
		"type":                "announcement",
	}
	assert.Equal(t, entity.CategoryDocumentRequest, Classify(data))

	// asset beats blotter and program
	data = map[string]interface{}{
		"asset_request_id":   float64(9),
		"blotter_request_id": float64(2),
		"program_id":         float64(3),
	}
	assert.Equal(t, entity.CategoryAssetRequest, Classify(data))
}

func TestClassify_NullValuesDoNotMatch(t *testing.T) {
	data := map[string]interface{}{"document_request_id": nil, "program_id": float64(7)}
	assert.Equal(t, entity.CategoryGenericProgram, Classify(data))
}

func TestClassify_RemainingCategories(t *testing.T) {
	assert.Equal(t, entity.CategoryAssetPayment, Classify(map[string]interface{}{"type": "asset_payment"}))
	assert.Equal(t, entity.CategoryBlotterRequest, Classify(map[string]interface{}{"blotter_request_id": float64(4)}))
	assert.Equal(t, entity.CategoryBlotterAppointment, Classify(map[string]interface{}{"appointment_id": float64(8)}))
	assert.Equal(t, entity.CategoryAnnouncement, Classify(map[string]interface{}{"announcement_id": "a-1"}))
	assert.Equal(t, entity.CategoryProgramAnnouncement, Classify(map[string]interface{}{"program_announcement_id": "pa-1"}))
	assert.Equal(t, entity.CategoryProject, Classify(map[string]interface{}{"type": "project"}))
	assert.Equal(t, entity.CategoryBenefitUpdate, Classify(map[string]interface{}{"submission_id": float64(3)}))
	assert.Equal(t, entity.CategoryBenefitUpdate, Classify(map[string]interface{}{"type": "application_status"}))
	assert.Equal(t, entity.CategoryGenericProgram, Classify(map[string]interface{}{"program_id": "p-1"}))
	assert.Equal(t, entity.CategoryUnclassified, Classify(map[string]interface{}{}))
}

func TestCategoryTitle(t *testing.T) {
	assert.Equal(t, "Document Request Notification", CategoryTitle(entity.CategoryDocumentRequest))
	assert.Equal(t, "Asset Payment Notification", CategoryTitle(entity.CategoryAssetPayment))
	assert.Equal(t, "Blotter Appointment Notification", CategoryTitle(entity.CategoryBlotterAppointment))
	assert.Equal(t, "Benefits Update Notification", CategoryTitle(entity.CategoryBenefitUpdate))
	assert.Equal(t, "Program Notification", CategoryTitle(entity.CategoryGenericProgram))
	assert.Equal(t, "Notification", CategoryTitle(entity.CategoryUnclassified))
}

func TestBuildMessage_CustomMessageGetsDetailsBlock(t *testing.T) {
	data := map[string]interface{}{
		"message":             "Your clearance is ready.",
		"document_type":       "Barangay Clearance",
		"status":              "approved",
		"document_request_id": float64(42),
	}

	message := BuildMessage(data, testCreatedAt)

	assert.Contains(t, message, "Your clearance is ready.\n\n")
	assert.Contains(t, message, "Document Type: Barangay Clearance")
	assert.Contains(t, message, "Status: Approved")
	assert.Contains(t, message, "Request #: 42")
	assert.Contains(t, message, "Date: 03/15/2025, 2:30:05 PM")
}

func TestBuildMessage_RequestIDPriority(t *testing.T) {
	data := map[string]interface{}{
		"message":             "Update.",
		"document_request_id": float64(1),
		"asset_request_id":    float64(2),
		"blotter_request_id":  float64(3),
	}
	message := BuildMessage(data, testCreatedAt)
	assert.Contains(t, message, "Request #: 1")
	assert.NotContains(t, message, "Request #: 2")
	assert.NotContains(t, message, "Request #: 3")
}

func TestBuildMessage_DocumentApproved(t *testing.T) {
	data := map[string]interface{}{
		"document_type":       "Barangay Clearance",
		"status":              "approved",
		"document_request_id": float64(7),
	}

	message := BuildMessage(data, testCreatedAt)

	assert.Contains(t, message, "Great news! Your Barangay Clearance request has been approved and is ready for pickup.")
	assert.Contains(t, message, "Request #: 7")
}

func TestBuildMessage_DocumentDeniedWithReason(t *testing.T) {
	data := map[string]interface{}{
		"certification_type": "Indigency",
		"status":             "denied",
		"reason":             "Incomplete requirements",
	}

	message := BuildMessage(data, testCreatedAt)

	assert.Contains(t, message, "Your Indigency request has been denied. Reason: Incomplete requirements")
	assert.Contains(t, message, "Document Type: Indigency")
}

func TestBuildMessage_AssetStatuses(t *testing.T) {
	approved := BuildMessage(map[string]interface{}{
		"asset_request_id": float64(3),
		"asset_name":       "Community Tent",
		"status":           "approved",
	}, testCreatedAt)
	assert.Contains(t, approved, "Your request for Community Tent has been approved.")

	inProgress := BuildMessage(map[string]interface{}{
		"asset_request_id": float64(3),
		"asset_name":       "Community Tent",
		"status":           "in_progress",
	}, testCreatedAt)
	assert.Contains(t, inProgress, "has been processed. Status: In Progress")
}

func TestBuildMessage_AssetPaymentFormatsPesoAmount(t *testing.T) {
	data := map[string]interface{}{
		"type":             "asset_payment",
		"asset_name":       "Sound System",
		"asset_request_id": float64(11),
		"amount":           float64(1234.5),
	}

	message := BuildMessage(data, testCreatedAt)

	assert.Contains(t, message, "Payment for your Sound System request of ₱1,234.50 has been processed successfully.")
	assert.Contains(t, message, "Request #: 11")
}

func TestBuildMessage_Announcement(t *testing.T) {
	data := map[string]interface{}{
		"type":               "announcement",
		"announcement_title": "Fiesta Schedule",
	}
	message := BuildMessage(data, testCreatedAt)
	assert.Contains(t, message, "New announcement: Fiesta Schedule")
	assert.Contains(t, message, "Date: 03/15/2025, 2:30:05 PM")
}

func TestBuildMessage_BenefitStatus(t *testing.T) {
	data := map[string]interface{}{
		"submission_id": float64(5),
		"status":        "approved",
		"program_name":  "4Ps Assistance",
	}
	message := BuildMessage(data, testCreatedAt)
	assert.Contains(t, message, "Your application status: Approved")
	assert.Contains(t, message, "Program: 4Ps Assistance")
}

func TestBuildMessage_StringTimestampPassesThrough(t *testing.T) {
	data := map[string]interface{}{"message": "Hello", "status": "pending"}
	message := BuildMessage(data, "yesterday")
	assert.Contains(t, message, "Date: yesterday")
}

func TestBuildMessage_Fallback(t *testing.T) {
	assert.Equal(t, "New notification", BuildMessage(map[string]interface{}{}, testCreatedAt))
}

func TestResolveRedirect_ActionURLWinsAndLegacyRewrites(t *testing.T) {
	path := ResolveRedirect(map[string]interface{}{
		"action_url":    "/residents/documents/status",
		"redirect_path": "/somewhere/else",
	}, entity.SourceFramework)
	assert.Equal(t, "/residents/requestDocuments?status", *path)

	path = ResolveRedirect(map[string]interface{}{
		"action_url": "/residents/statusDocumentRequests",
	}, entity.SourceFramework)
	assert.Equal(t, "/residents/requestDocuments?status", *path)

	path = ResolveRedirect(map[string]interface{}{
		"action_url": "/residents/custom",
	}, entity.SourceFramework)
	assert.Equal(t, "/residents/custom", *path)
}

func TestResolveRedirect_RedirectPathVerbatim(t *testing.T) {
	path := ResolveRedirect(map[string]interface{}{
		"redirect_path": "/residents/somewhere",
		"program_id":    float64(1),
	}, entity.SourceCustom)
	assert.Equal(t, "/residents/somewhere", *path)
}

func TestResolveRedirect_CategoryRoutes(t *testing.T) {
	path := ResolveRedirect(map[string]interface{}{"document_type": "Clearance"}, entity.SourceFramework)
	assert.Equal(t, "/residents/requestDocuments?status", *path)

	path = ResolveRedirect(map[string]interface{}{"asset_request_id": float64(42)}, entity.SourceFramework)
	assert.Equal(t, "/residents/statusassetrequests?id=42", *path)

	path = ResolveRedirect(map[string]interface{}{"type": "asset_request"}, entity.SourceFramework)
	assert.Equal(t, "/residents/statusassetrequests", *path)

	path = ResolveRedirect(map[string]interface{}{"blotter_request_id": float64(9)}, entity.SourceFramework)
	assert.Equal(t, "/residents/statusBlotterRequests?id=9", *path)

	path = ResolveRedirect(map[string]interface{}{"appointment_id": float64(4)}, entity.SourceFramework)
	assert.Equal(t, "/residents/statusBlotterRequests?id=4", *path)

	path = ResolveRedirect(map[string]interface{}{"announcement_id": "a-7"}, entity.SourceFramework)
	assert.Equal(t, "/residents/dashboard?tab=announcements&id=a-7", *path)

	path = ResolveRedirect(map[string]interface{}{"project_id": float64(2)}, entity.SourceFramework)
	assert.Equal(t, "/residents/projects?id=2", *path)

	path = ResolveRedirect(map[string]interface{}{"submission_id": float64(6)}, entity.SourceFramework)
	assert.Equal(t, "/residents/myBenefits?submission=6", *path)

	path = ResolveRedirect(map[string]interface{}{"benefit_id": float64(3)}, entity.SourceFramework)
	assert.Equal(t, "/residents/myBenefits?benefit=3", *path)
}

func TestResolveRedirect_ProgramAnnouncementAnchors(t *testing.T) {
	path := ResolveRedirect(map[string]interface{}{"program_announcement_id": "pa-9"}, entity.SourceFramework)
	assert.Equal(t, "/residents/dashboard?section=programs&announcement=pa-9#announcement-pa-9", *path)

	path = ResolveRedirect(map[string]interface{}{"type": "program_announcement", "program_id": "p-2"}, entity.SourceFramework)
	assert.Equal(t, "/residents/dashboard?section=programs&program=p-2#program-p-2", *path)

	path = ResolveRedirect(map[string]interface{}{"type": "program_announcement"}, entity.SourceFramework)
	assert.Equal(t, "/residents/dashboard?section=programs#available-programs", *path)
}

func TestResolveRedirect_CustomSourceFallback(t *testing.T) {
	path := ResolveRedirect(map[string]interface{}{
		"type":       "program_notice",
		"program_id": float64(7),
	}, entity.SourceCustom)
	assert.Equal(t, "/residents/enrolledPrograms?program=7", *path)

	path = ResolveRedirect(map[string]interface{}{
		"type":           "program_notice",
		"program_id":     float64(7),
		"beneficiary_id": float64(12),
	}, entity.SourceCustom)
	assert.Equal(t, "/residents/enrolledPrograms?program=7&beneficiary=12", *path)

	path = ResolveRedirect(map[string]interface{}{}, entity.SourceCustom)
	assert.Equal(t, "/residents/enrolledPrograms", *path)
}

func TestResolveRedirect_GenericProgramAndNone(t *testing.T) {
	path := ResolveRedirect(map[string]interface{}{"program_id": "p-3"}, entity.SourceFramework)
	assert.Equal(t, "/residents/enrolledPrograms?program=p-3", *path)

	assert.Nil(t, ResolveRedirect(map[string]interface{}{}, entity.SourceFramework))
}

func TestUcfirst(t *testing.T) {
	assert.Equal(t, "Approved", ucfirst("approved"))
	assert.Equal(t, "", ucfirst(""))
	assert.Equal(t, "In_progress", ucfirst("in_progress"))
}
