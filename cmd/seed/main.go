package main

import (
	"fmt"
	"time"

	"barangay-egov/internal/model"
	"barangay-egov/pkg/config"
	"barangay-egov/pkg/database"
	"barangay-egov/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func hashPassword(password string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(hashed)
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	admin := model.UserModel{
		Name:     "Barangay Admin",
		Email:    "admin@barangay.test",
		Password: hashPassword("password123"),
		Role:     "admin",
	}
	if err := db.Where("email = ?", admin.Email).FirstOrCreate(&admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	staffUser := model.UserModel{
		Name:     "Records Staff",
		Email:    "staff@barangay.test",
		Password: hashPassword("password123"),
		Role:     "staff",
	}
	if err := db.Where("email = ?", staffUser.Email).FirstOrCreate(&staffUser).Error; err != nil {
		return fmt.Errorf("seed staff user: %w", err)
	}

	staff := model.StaffModel{
		UserID:   staffUser.ID,
		Position: "Records Officer",
		ModulePermissions: model.JSONMap{
			"dashboard":                 true,
			"residentsRecords":          true,
			"documentsRecords":          true,
			"communicationAnnouncement": true,
		},
	}
	if err := db.Where("user_id = ?", staffUser.ID).FirstOrCreate(&staff).Error; err != nil {
		return fmt.Errorf("seed staff record: %w", err)
	}

	residents := []struct {
		name      string
		email     string
		firstName string
		lastName  string
		contact   string
	}{
		{"Juan Dela Cruz", "juan@barangay.test", "Juan", "Dela Cruz", "09171234567"},
		{"Maria Santos", "maria@barangay.test", "Maria", "Santos", "09181234567"},
		{"Pedro Reyes", "pedro@barangay.test", "Pedro", "Reyes", "09191234567"},
	}

	residentIDs := make([]string, 0, len(residents))
	userIDs := make([]string, 0, len(residents))
	for i, seed := range residents {
		user := model.UserModel{
			Name:     seed.name,
			Email:    seed.email,
			Password: hashPassword("password123"),
			Role:     "resident",
		}
		if err := db.Where("email = ?", user.Email).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("seed resident user %s: %w", seed.email, err)
		}

		resident := model.ResidentModel{
			ResidentID:    fmt.Sprintf("RES-2025-%04d", i+1),
			UserID:        &user.ID,
			FirstName:     seed.firstName,
			LastName:      seed.lastName,
			Email:         seed.email,
			ContactNumber: seed.contact,
		}
		if err := db.Where("resident_id = ?", resident.ResidentID).FirstOrCreate(&resident).Error; err != nil {
			return fmt.Errorf("seed resident %s: %w", resident.ResidentID, err)
		}
		residentIDs = append(residentIDs, resident.ID)
		userIDs = append(userIDs, user.ID)
	}

	program := model.ProgramModel{
		Name: "4Ps Assistance",
		Type: "financial",
	}
	if err := db.Where("name = ?", program.Name).FirstOrCreate(&program).Error; err != nil {
		return fmt.Errorf("seed program: %w", err)
	}

	now := time.Now()
	announcement := model.ProgramAnnouncementModel{
		ProgramID:      program.ID,
		Title:          "Q3 Payout Schedule",
		Content:        "Payouts for the third quarter start on Monday at the barangay hall.",
		Status:         "published",
		PublishedAt:    &now,
		TargetAudience: model.StringList{"beneficiaries"},
	}
	if err := db.Where("title = ?", announcement.Title).FirstOrCreate(&announcement).Error; err != nil {
		return fmt.Errorf("seed announcement: %w", err)
	}

	// Sample entries in both notification stores so the unified feed has
	// something to merge.
	for _, userID := range userIDs {
		notification := model.UserNotificationModel{
			UserID: userID,
			Data: model.JSONMap{
				"type":                "document_request_status",
				"document_type":       "Barangay Clearance",
				"status":              "approved",
				"document_request_id": 1001,
			},
		}
		if err := db.Create(&notification).Error; err != nil {
			return fmt.Errorf("seed user notification: %w", err)
		}
	}

	for _, residentID := range residentIDs {
		notification := model.ResidentNotificationModel{
			ResidentID: residentID,
			ProgramID:  &program.ID,
			Type:       "program_notice",
			Title:      "Program Enrollment Confirmed",
			Message:    "You have been enrolled in the 4Ps Assistance program.",
			Data:       model.JSONMap{"status": "enrolled"},
		}
		if err := db.Create(&notification).Error; err != nil {
			return fmt.Errorf("seed resident notification: %w", err)
		}
	}

	log.Info("Seeded %d residents, 1 program, 1 announcement", len(residents))
	return nil
}
