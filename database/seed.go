package database

import (
	"errors"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/immsamyak/ClassTrack/models"
)

// defaultSettings mirrors the values the system ships with; existing rows
// are never overwritten.
var defaultSettings = []models.Setting{
	{Name: "school_name", Value: "Class Track School"},
	{Name: "academic_year", Value: "2024-2025"},
	{Name: "semester", Value: "Fall 2024"},
	{Name: "school_address", Value: "123 Education Street, Learning City"},
	{Name: "school_phone", Value: "+1-234-567-8900"},
	{Name: "school_email", Value: "info@classtrack.edu"},
	{Name: "principal_name", Value: "Dr. John Smith"},
	{Name: "attendance_percentage_required", Value: "75"},
	{Name: "passing_marks_percentage", Value: "40"},
	{Name: "grade_a_percentage", Value: "90"},
	{Name: "grade_b_percentage", Value: "80"},
	{Name: "grade_c_percentage", Value: "70"},
	{Name: "grade_d_percentage", Value: "40"},
	{Name: "backup_enabled", Value: "true"},
	{Name: "notification_enabled", Value: "true"},
	{Name: "theme", Value: "default"},
}

// Seed inserts the default settings and the bootstrap admin account when
// they are missing.
func Seed(db *gorm.DB) error {
	for _, s := range defaultSettings {
		var existing models.Setting
		err := db.Where("setting_name = ?", s.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&s).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return seedAdmin(db)
}

func seedAdmin(db *gorm.DB) error {
	var existing models.User
	err := db.Where("username = ?", "admin").First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Create(&models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		FullName:     "Administrator",
		Email:        "admin@classtrack.com",
	}).Error
}
