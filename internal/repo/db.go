package repo

import (
	"poker-hand-service/internal/config"
	"poker-hand-service/internal/model"
	"poker-hand-service/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := config.GlobalConfig.Database.DSN
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Log.Fatal("Failed to connect to database",
			zap.Error(err),
		)
	}

	InitSchema(DB)
}

// InitSchema creates the hands table if it is missing. A creation
// failure (typically a database user without CREATE privilege) is
// logged but not fatal: the process keeps serving and the repository
// degrades to its missing-table behavior.
func InitSchema(db *gorm.DB) {
	if err := db.AutoMigrate(&model.HandRow{}); err != nil {
		logger.Log.Error("Failed to create hands table; continuing, database operations may fail",
			zap.Error(err),
		)
	}
}
