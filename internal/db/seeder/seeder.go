package seeder

import (
	"context"

	"trello/internal/app/admin"

	"go.uber.org/zap"
)

// Seeder provisions the bootstrap operator account from configuration.
type Seeder struct {
	operators admin.Service
	username  string
	password  string
	logger    *zap.Logger
}

func NewSeeder(operators admin.Service, username, password string, logger *zap.Logger) *Seeder {
	return &Seeder{
		operators: operators,
		username:  username,
		password:  password,
		logger:    logger,
	}
}

func (s *Seeder) Seed(ctx context.Context) error {
	s.logger.Info("Running database seeders...")

	if err := s.seedOperator(ctx); err != nil {
		return err
	}

	s.logger.Info("Database seeders completed successfully")
	return nil
}

func (s *Seeder) seedOperator(ctx context.Context) error {
	if s.username == "" || s.password == "" {
		s.logger.Info("ADMIN_USERNAME/ADMIN_PASSWORD not set, skipping operator seed")
		return nil
	}

	op, err := s.operators.EnsureOperator(ctx, s.username, s.password)
	if err != nil {
		return err
	}

	s.logger.Info("Seeded operator", zap.String("username", op.Username), zap.Uint64("id", op.ID))
	return nil
}
