package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gameboxd/backend/internal/models"
)

// Connect opens the database connection, runs migrations, and returns the
// handle. Lifecycle belongs to the caller; nothing here is a package global.
func Connect(dsn string) (*gorm.DB, error) {
	// Configure GORM logger
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             200 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,            // Log level
			IgnoreRecordNotFoundError: true,                   // Ignore ErrRecordNotFound error for logger
			Colorful:                  true,                   // Enable color
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: customLogger,
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established.")

	// Run migrations
	err = db.AutoMigrate(
		&models.User{},
		&models.Review{},
		&models.List{},
		&models.ListItem{},
		&models.LikedGame{},
		&models.GameStatus{},
	)
	if err != nil {
		return nil, err
	}

	log.Println("Database migrated successfully.")
	return db, nil
}
