package usecase

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"barangay-egov/internal/entity"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Display timestamp layout used inside notification messages.
const messageDateLayout = "01/02/2006, 3:04:05 PM"

var pesoPrinter = message.NewPrinter(language.English)

// hasKey reports whether a payload key is present with a non-nil value.
func hasKey(data map[string]interface{}, key string) bool {
	value, ok := data[key]
	return ok && value != nil
}

// payloadString renders a payload value as a string. Numbers coming out of
// jsonb arrive as float64, so integral values are printed without decimals.
func payloadString(data map[string]interface{}, key string) string {
	value, ok := data[key]
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func payloadFloat(data map[string]interface{}, key string) (float64, bool) {
	value, ok := data[key]
	if !ok || value == nil {
		return 0, false
	}
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func ucfirst(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// formatMessageDate renders a creation timestamp for the details block.
// Values that are already display strings pass through unchanged.
func formatMessageDate(createdAt interface{}) string {
	switch v := createdAt.(type) {
	case string:
		return v
	case time.Time:
		return v.Format(messageDateLayout)
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.Format(messageDateLayout)
	default:
		return ""
	}
}

// Classify assigns exactly one category via a strict first-match-wins chain.
// Earlier rules dominate later ones no matter how many keys match.
func Classify(data map[string]interface{}) entity.NotificationCategory {
	notificationType := payloadString(data, "type")

	switch {
	case hasKey(data, "document_request_id") ||
		notificationType == "document_request_status" ||
		hasKey(data, "document_type") ||
		hasKey(data, "certification_type"):
		return entity.CategoryDocumentRequest

	case hasKey(data, "asset_request_id") || notificationType == "asset_request":
		return entity.CategoryAssetRequest

	case notificationType == "asset_payment":
		return entity.CategoryAssetPayment

	case hasKey(data, "blotter_request_id") || notificationType == "blotter_request":
		return entity.CategoryBlotterRequest

	case hasKey(data, "appointment_id") || notificationType == "blotter_appointment":
		return entity.CategoryBlotterAppointment

	case notificationType == "announcement" || hasKey(data, "announcement_id"):
		return entity.CategoryAnnouncement

	case notificationType == "program_announcement" || hasKey(data, "program_announcement_id"):
		return entity.CategoryProgramAnnouncement

	case notificationType == "project" || hasKey(data, "project_id"):
		return entity.CategoryProject

	case notificationType == "benefit_update" ||
		notificationType == "application_status" ||
		hasKey(data, "submission_id") ||
		hasKey(data, "benefit_id"):
		return entity.CategoryBenefitUpdate

	case hasKey(data, "program_id"):
		return entity.CategoryGenericProgram

	default:
		return entity.CategoryUnclassified
	}
}

// CategoryTitle maps a category to its fixed display title.
func CategoryTitle(category entity.NotificationCategory) string {
	switch category {
	case entity.CategoryDocumentRequest:
		return "Document Request Notification"
	case entity.CategoryAssetRequest:
		return "Asset Request Notification"
	case entity.CategoryAssetPayment:
		return "Asset Payment Notification"
	case entity.CategoryBlotterRequest:
		return "Blotter Request Notification"
	case entity.CategoryBlotterAppointment:
		return "Blotter Appointment Notification"
	case entity.CategoryAnnouncement:
		return "Announcement Notification"
	case entity.CategoryProgramAnnouncement:
		return "Program Announcement Notification"
	case entity.CategoryProject:
		return "Project Update Notification"
	case entity.CategoryBenefitUpdate:
		return "Benefits Update Notification"
	case entity.CategoryGenericProgram:
		return "Program Notification"
	default:
		return "Notification"
	}
}

// BuildMessage derives the long-form display message. A caller-supplied
// payload message is used verbatim as the body but always augmented with a
// details block; otherwise a category template with status-dependent phrasing
// is selected.
func BuildMessage(data map[string]interface{}, createdAt interface{}) string {
	if custom := payloadString(data, "message"); custom != "" {
		details := []string{}

		if hasKey(data, "document_type") || hasKey(data, "certification_type") {
			docType := payloadString(data, "document_type")
			if docType == "" {
				docType = payloadString(data, "certification_type")
			}
			if docType != "" {
				details = append(details, "Document Type: "+docType)
			}
		}

		if status := payloadString(data, "status"); status != "" {
			details = append(details, "Status: "+ucfirst(status))
		}

		// Request id priority: document > asset > blotter
		if hasKey(data, "document_request_id") {
			details = append(details, "Request #: "+payloadString(data, "document_request_id"))
		} else if hasKey(data, "asset_request_id") {
			details = append(details, "Request #: "+payloadString(data, "asset_request_id"))
		} else if hasKey(data, "blotter_request_id") {
			details = append(details, "Request #: "+payloadString(data, "blotter_request_id"))
		}

		if date := formatMessageDate(createdAt); date != "" {
			details = append(details, "Date: "+date)
		}

		if len(details) > 0 {
			custom += "\n\n" + strings.Join(details, "\n")
		}
		return custom
	}

	notificationType := payloadString(data, "type")
	status := payloadString(data, "status")

	// Document requests
	if hasKey(data, "document_request_id") ||
		notificationType == "document_request_status" ||
		hasKey(data, "document_type") ||
		hasKey(data, "certification_type") {

		docType := payloadString(data, "document_type")
		if docType == "" {
			docType = payloadString(data, "certification_type")
		}
		if docType == "" {
			docType = "Document"
		}

		var body string
		switch status {
		case "approved":
			body = fmt.Sprintf("Great news! Your %s request has been approved and is ready for pickup.", docType)
		case "denied", "rejected":
			body = fmt.Sprintf("Your %s request has been denied.", docType)
			if reason := payloadString(data, "reason"); reason != "" {
				body += " Reason: " + reason
			}
		case "processing":
			body = fmt.Sprintf("Your %s request is currently being processed.", docType)
		case "pending":
			body = fmt.Sprintf("Your %s request has been submitted and is pending review.", docType)
		default:
			body = fmt.Sprintf("Update on your %s request.", docType)
		}

		details := []string{"Document Type: " + docType}
		if status != "" {
			details = append(details, "Status: "+ucfirst(status))
		}
		if hasKey(data, "document_request_id") {
			details = append(details, "Request #: "+payloadString(data, "document_request_id"))
		}
		if date := formatMessageDate(createdAt); date != "" {
			details = append(details, "Date: "+date)
		}
		return body + "\n\n" + strings.Join(details, "\n")
	}

	// Asset requests
	if hasKey(data, "asset_request_id") || notificationType == "asset_request" {
		assetName := payloadString(data, "asset_name")
		if assetName == "" {
			assetName = "Asset"
		}

		var body string
		switch status {
		case "approved":
			body = fmt.Sprintf("Your request for %s has been approved.", assetName)
		case "denied", "rejected":
			body = fmt.Sprintf("Your request for %s has been denied.", assetName)
		case "processing", "in_progress":
			body = fmt.Sprintf("Your request for %s has been processed. Status: In Progress", assetName)
		case "pending":
			body = fmt.Sprintf("Your request for %s has been submitted and is pending review.", assetName)
		default:
			body = fmt.Sprintf("Update on your request for %s.", assetName)
		}

		details := []string{}
		if status != "" {
			details = append(details, "Status: "+ucfirst(status))
		}
		if hasKey(data, "asset_request_id") {
			details = append(details, "Request #: "+payloadString(data, "asset_request_id"))
		}
		if date := formatMessageDate(createdAt); date != "" {
			details = append(details, "Date: "+date)
		}
		return appendDetails(body, details)
	}

	// Asset payments
	if notificationType == "asset_payment" {
		assetName := payloadString(data, "asset_name")
		if assetName == "" {
			assetName = "Asset"
		}

		body := fmt.Sprintf("Payment for your %s request", assetName)
		if amount, ok := payloadFloat(data, "amount"); ok {
			body += pesoPrinter.Sprintf(" of ₱%.2f", amount)
		}
		body += " has been processed successfully."

		details := []string{}
		if hasKey(data, "asset_request_id") {
			details = append(details, "Request #: "+payloadString(data, "asset_request_id"))
		}
		if date := formatMessageDate(createdAt); date != "" {
			details = append(details, "Date: "+date)
		}
		return appendDetails(body, details)
	}

	// Blotter requests
	if hasKey(data, "blotter_request_id") || notificationType == "blotter_request" {
		body := "Update on your blotter request."
		switch status {
		case "approved":
			body = "Your blotter request has been approved."
		case "denied":
			body = "Your blotter request has been denied."
		}

		details := []string{}
		if status != "" {
			details = append(details, "Status: "+ucfirst(status))
		}
		if hasKey(data, "blotter_request_id") {
			details = append(details, "Request #: "+payloadString(data, "blotter_request_id"))
		}
		if date := formatMessageDate(createdAt); date != "" {
			details = append(details, "Date: "+date)
		}
		return appendDetails(body, details)
	}

	// Projects
	if notificationType == "project" || hasKey(data, "project_id") {
		projectName := payloadString(data, "project_name")
		if projectName == "" {
			projectName = "Project"
		}
		body := fmt.Sprintf("New community %s project has been posted. Check details in Projects page.", projectName)

		details := []string{}
		if hasKey(data, "project_id") {
			details = append(details, "Project ID: "+payloadString(data, "project_id"))
		}
		if date := formatMessageDate(createdAt); date != "" {
			details = append(details, "Date: "+date)
		}
		return appendDetails(body, details)
	}

	// Announcements
	if notificationType == "announcement" || hasKey(data, "announcement_id") {
		announcementTitle := payloadString(data, "announcement_title")
		if announcementTitle == "" {
			announcementTitle = "Announcement"
		}
		body := "New announcement: " + announcementTitle
		if date := formatMessageDate(createdAt); date != "" {
			body += "\n\nDate: " + date
		}
		return body
	}

	// Benefits / application status
	if notificationType == "benefit_update" ||
		notificationType == "application_status" ||
		hasKey(data, "submission_id") ||
		hasKey(data, "benefit_id") {

		body := "Update on your program application or benefit."
		if status != "" {
			body = "Your application status: " + ucfirst(status)
		}

		details := []string{}
		if programName := payloadString(data, "program_name"); programName != "" {
			details = append(details, "Program: "+programName)
		}
		if status != "" {
			details = append(details, "Status: "+ucfirst(status))
		}
		if date := formatMessageDate(createdAt); date != "" {
			details = append(details, "Date: "+date)
		}
		return appendDetails(body, details)
	}

	// Program updates
	if hasKey(data, "program_id") || hasKey(data, "program_name") {
		programName := payloadString(data, "program_name")
		if programName == "" {
			programName = "Program"
		}
		body := fmt.Sprintf("Update regarding %s program.", programName)

		details := []string{}
		if hasKey(data, "program_name") {
			details = append(details, "Program: "+payloadString(data, "program_name"))
		}
		if status != "" {
			details = append(details, "Status: "+ucfirst(status))
		}
		if date := formatMessageDate(createdAt); date != "" {
			details = append(details, "Date: "+date)
		}
		return appendDetails(body, details)
	}

	return "New notification"
}

func appendDetails(body string, details []string) string {
	if len(details) == 0 {
		return body
	}
	return body + "\n\n" + strings.Join(details, "\n")
}

// Legacy document-status routes rewritten to the canonical request page.
var legacyDocumentStatusPaths = map[string]bool{
	"/residents/documents/status":       true,
	"/residents/statusDocumentRequests": true,
}

// ResolveRedirect computes the client route a notification should open.
// Priority: explicit action_url (with legacy rewrites), explicit
// redirect_path, category route, custom-source fallback, then none.
func ResolveRedirect(data map[string]interface{}, source entity.NotificationSource) *string {
	if hasKey(data, "action_url") {
		actionURL := payloadString(data, "action_url")
		if legacyDocumentStatusPaths[actionURL] {
			return ptr("/residents/requestDocuments?status")
		}
		return ptr(actionURL)
	}

	if hasKey(data, "redirect_path") {
		return ptr(payloadString(data, "redirect_path"))
	}

	notificationType := payloadString(data, "type")

	// Document requests always land on the request-documents status tab
	if hasKey(data, "document_request_id") ||
		notificationType == "document_request_status" ||
		hasKey(data, "document_type") ||
		hasKey(data, "certification_type") {
		return ptr("/residents/requestDocuments?status")
	}

	if hasKey(data, "asset_request_id") || notificationType == "asset_request" {
		path := "/residents/statusassetrequests"
		if hasKey(data, "asset_request_id") {
			path += "?id=" + payloadString(data, "asset_request_id")
		}
		return ptr(path)
	}

	if notificationType == "asset_payment" {
		path := "/residents/statusassetrequests"
		if hasKey(data, "asset_request_id") {
			path += "?id=" + payloadString(data, "asset_request_id")
		}
		return ptr(path)
	}

	if hasKey(data, "blotter_request_id") || notificationType == "blotter_request" {
		path := "/residents/statusBlotterRequests"
		if hasKey(data, "blotter_request_id") {
			path += "?id=" + payloadString(data, "blotter_request_id")
		}
		return ptr(path)
	}

	if hasKey(data, "appointment_id") || notificationType == "blotter_appointment" {
		path := "/residents/statusBlotterRequests"
		if hasKey(data, "appointment_id") {
			path += "?id=" + payloadString(data, "appointment_id")
		}
		return ptr(path)
	}

	if notificationType == "announcement" || hasKey(data, "announcement_id") {
		path := "/residents/dashboard?tab=announcements"
		if hasKey(data, "announcement_id") {
			path += "&id=" + payloadString(data, "announcement_id")
		}
		return ptr(path)
	}

	if notificationType == "program_announcement" || hasKey(data, "program_announcement_id") {
		switch {
		case hasKey(data, "program_announcement_id"):
			id := payloadString(data, "program_announcement_id")
			return ptr("/residents/dashboard?section=programs&announcement=" + id + "#announcement-" + id)
		case hasKey(data, "program_id"):
			id := payloadString(data, "program_id")
			return ptr("/residents/dashboard?section=programs&program=" + id + "#program-" + id)
		default:
			return ptr("/residents/dashboard?section=programs#available-programs")
		}
	}

	if notificationType == "project" || hasKey(data, "project_id") {
		path := "/residents/projects"
		if hasKey(data, "project_id") {
			path += "?id=" + payloadString(data, "project_id")
		}
		return ptr(path)
	}

	if notificationType == "benefit_update" ||
		notificationType == "application_status" ||
		hasKey(data, "submission_id") ||
		hasKey(data, "benefit_id") {
		path := "/residents/myBenefits"
		if hasKey(data, "submission_id") {
			path += "?submission=" + payloadString(data, "submission_id")
		} else if hasKey(data, "benefit_id") {
			path += "?benefit=" + payloadString(data, "benefit_id")
		}
		return ptr(path)
	}

	// Custom-source notifications without a category route fall back to the
	// enrolled programs page.
	if source == entity.SourceCustom {
		if notificationType == "program_notice" {
			programID := payloadString(data, "program_id")
			beneficiaryID := payloadString(data, "beneficiary_id")
			if beneficiaryID != "" && programID != "" {
				return ptr("/residents/enrolledPrograms?program=" + programID + "&beneficiary=" + beneficiaryID)
			}
			if programID != "" {
				return ptr("/residents/enrolledPrograms?program=" + programID)
			}
		}
		if hasKey(data, "program_id") {
			programID := payloadString(data, "program_id")
			if beneficiaryID := payloadString(data, "beneficiary_id"); beneficiaryID != "" {
				return ptr("/residents/enrolledPrograms?program=" + programID + "&beneficiary=" + beneficiaryID)
			}
			return ptr("/residents/enrolledPrograms?program=" + programID)
		}
		return ptr("/residents/enrolledPrograms")
	}

	if hasKey(data, "program_id") && !hasKey(data, "program_announcement_id") {
		programID := payloadString(data, "program_id")
		if beneficiaryID := payloadString(data, "beneficiary_id"); beneficiaryID != "" {
			return ptr("/residents/enrolledPrograms?program=" + programID + "&beneficiary=" + beneficiaryID)
		}
		return ptr("/residents/enrolledPrograms?program=" + programID)
	}

	return nil
}

func ptr(s string) *string {
	return &s
}
