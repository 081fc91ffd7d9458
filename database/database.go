package database

import (
	"fmt"
	"log"

	config "school_backend/configs"
	"school_backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Subject{},
		&models.Class{},
		&models.StudentDetail{},
		&models.TeacherAssignment{},
		&models.Grade{},
		&models.ReportCard{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedPrincipal() {
	principalEmail := config.Config("PRINCIPAL_EMAIL")
	principalPassword := config.Config("PRINCIPAL_PASSWORD")

	var count int64
	err := DB.Model(&models.User{}).Where("email = ?", principalEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for principal user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Principal user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(principalPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash principal password: %v", err)
		return
	}

	principal := models.User{
		Name:        config.Config("PRINCIPAL_NAME"),
		Email:       principalEmail,
		PhoneNumber: config.Config("PRINCIPAL_PHONE"),
		Gender:      "other",
		Password:    string(hashedPassword),
		Role:        "principal",
	}

	if err := DB.Create(&principal).Error; err != nil {
		log.Fatalf("🔥 Failed to seed principal user: %v", err)
		return
	}

	log.Println("✅ Principal user seeded successfully")
}
