package persistent

import (
	"barangay-egov/internal/entity"
	"barangay-egov/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}
	return &entity.User{
		ID:    m.ID,
		Name:  m.Name,
		Email: m.Email,
		Role:  m.Role,
	}
}

func ToResidentEntity(m *model.ResidentModel) *entity.Resident {
	if m == nil {
		return nil
	}
	userID := ""
	if m.UserID != nil {
		userID = *m.UserID
	}
	return &entity.Resident{
		ID:            m.ID,
		ResidentID:    m.ResidentID,
		UserID:        userID,
		FirstName:     m.FirstName,
		MiddleName:    m.MiddleName,
		LastName:      m.LastName,
		NameSuffix:    m.NameSuffix,
		Email:         m.Email,
		ContactNumber: m.ContactNumber,
		ForReview:     m.ForReview,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		User:          ToUserEntity(m.User),
	}
}

func ToFrameworkNotificationEntity(m *model.UserNotificationModel) *entity.FrameworkNotification {
	if m == nil {
		return nil
	}
	return &entity.FrameworkNotification{
		ID:        m.ID,
		UserID:    m.UserID,
		Data:      map[string]interface{}(m.Data),
		ReadAt:    m.ReadAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToResidentNotificationEntity(m *model.ResidentNotificationModel) *entity.ResidentNotification {
	if m == nil {
		return nil
	}
	n := &entity.ResidentNotification{
		ID:         m.ID,
		ResidentID: m.ResidentID,
		ProgramID:  m.ProgramID,
		Type:       m.Type,
		Title:      m.Title,
		Message:    m.Message,
		Data:       map[string]interface{}(m.Data),
		IsRead:     m.IsRead,
		ReadAt:     m.ReadAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.Program != nil {
		n.ProgramName = &m.Program.Name
		n.ProgramType = &m.Program.Type
	}
	return n
}

func ToProgramEntity(m *model.ProgramModel) *entity.Program {
	if m == nil {
		return nil
	}
	return &entity.Program{
		ID:        m.ID,
		Name:      m.Name,
		Type:      m.Type,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToAnnouncementEntity(m *model.ProgramAnnouncementModel) *entity.ProgramAnnouncement {
	if m == nil {
		return nil
	}
	return &entity.ProgramAnnouncement{
		ID:             m.ID,
		ProgramID:      m.ProgramID,
		Title:          m.Title,
		Content:        m.Content,
		Status:         entity.AnnouncementStatus(m.Status),
		PublishedAt:    m.PublishedAt,
		ExpiresAt:      m.ExpiresAt,
		IsUrgent:       m.IsUrgent,
		TargetAudience: []string(m.TargetAudience),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		Program:        ToProgramEntity(m.Program),
	}
}

func ToActivityLogEntity(m *model.ActivityLogModel) *entity.ActivityLog {
	if m == nil {
		return nil
	}
	return &entity.ActivityLog{
		ID:          m.ID,
		UserID:      m.UserID,
		Action:      m.Action,
		ModelType:   m.ModelType,
		ModelID:     m.ModelID,
		Description: m.Description,
		IPAddress:   m.IPAddress,
		UserAgent:   m.UserAgent,
		CreatedAt:   m.CreatedAt,
		User:        ToUserEntity(m.User),
	}
}

func ToStaffEntity(m *model.StaffModel) *entity.Staff {
	if m == nil {
		return nil
	}
	return &entity.Staff{
		ID:                m.ID,
		UserID:            m.UserID,
		Position:          m.Position,
		ModulePermissions: map[string]interface{}(m.ModulePermissions),
	}
}
