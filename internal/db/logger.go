package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// NewGormLogger routes gorm's query log through zap. Lookups that find no
// row are expected (unknown board titles, unknown operators) and are not
// reported.
func NewGormLogger(zapLogger *zap.Logger, level logger.LogLevel) logger.Interface {
	return logger.New(
		zap.NewStdLog(zapLogger.Named("gorm")),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		},
	)
}
