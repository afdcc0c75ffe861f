package db

import (
	"trello/internal/app/admin"
	"trello/internal/app/board"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB, logger *zap.Logger) error {
	if err := db.AutoMigrate(&board.Board{}, &admin.Operator{}); err != nil {
		return err
	}

	logger.Info("Database schema migrated")
	return nil
}
