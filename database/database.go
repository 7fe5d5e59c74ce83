package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/immsamyak/ClassTrack/config"
	"github.com/immsamyak/ClassTrack/models"
)

var DB *gorm.DB

// Connect opens the shared connection pool and brings the schema up to
// date. The DB must be reachable at startup; failing fast beats limping.
func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to access connection pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)

	if err := Migrate(db); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
	if err := Seed(db); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

// Migrate creates or updates every table the system owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.Teacher{},
		&models.Subject{},
		&models.Attendance{},
		&models.Mark{},
		&models.Setting{},
	)
}
