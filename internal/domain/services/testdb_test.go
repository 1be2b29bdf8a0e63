package services

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jashanpj/janasampark/internal/domain/models"
	"github.com/jashanpj/janasampark/internal/infrastructure/config"
	"github.com/jashanpj/janasampark/utils"
)

// setupTestDB opens a private in-memory database migrated to the current
// schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Survey{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		EnvType:       "TEST",
		JWTSecretKey:  "test-secret",
		TokenLifetime: time.Hour,
	}
}

// seedUser inserts an account with a bcrypt-hashed password.
func seedUser(t *testing.T, db *gorm.DB, username, password string, role models.Role, approved bool) *models.User {
	t.Helper()

	hashed, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := &models.User{
		Name:       "Test " + username,
		Username:   username,
		Password:   hashed,
		Phone:      "9876543210",
		Role:       role,
		IsApproved: approved,
		WardNumber: 12,
		LocalBody:  "N.Paravur",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

// seedSurvey inserts a survey owned by ownerID.
func seedSurvey(t *testing.T, db *gorm.DB, ownerID uint, name string) *models.Survey {
	t.Helper()

	survey := &models.Survey{
		Name:                 name,
		Age:                  34,
		Education:            "Secondary Education",
		Job:                  "Farmer",
		Phone:                "9000000001",
		PoliticalAffiliation: models.AffiliationLDF,
		Religion:             "Hindu",
		Caste:                "Ezhava",
		Category:             "OBC",
		Sex:                  models.SexFemale,
		CreatedBy:            ownerID,
	}
	if err := db.Create(survey).Error; err != nil {
		t.Fatalf("seed survey %s: %v", name, err)
	}
	return survey
}
