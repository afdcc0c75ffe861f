package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Authenticate(ctx context.Context, username, password string) (*Operator, error)
	GetOperator(ctx context.Context, id uint64) (*Operator, error)
	EnsureOperator(ctx context.Context, username, password string) (*Operator, error)
}

type service struct {
	repo   Repository
	cost   int
	logger *zap.SugaredLogger

	// compared against when the username is unknown so both failure paths
	// take the same time
	dummyHash []byte
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return newService(repo, bcrypt.DefaultCost, logger)
}

func newService(repo Repository, cost int, logger *zap.Logger) *service {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	return &service{
		repo:      repo,
		cost:      cost,
		logger:    logger.Sugar(),
		dummyHash: dummy,
	}
}

func (s *service) Authenticate(ctx context.Context, username, password string) (*Operator, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	op, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrOperatorNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)); err != nil {
		s.logger.Warnw("Authenticate: wrong password", "username", username)
		return nil, ErrInvalidCredentials
	}

	return op, nil
}

func (s *service) GetOperator(ctx context.Context, id uint64) (*Operator, error) {
	return s.repo.GetByID(ctx, id)
}

// EnsureOperator creates the operator or, when it already exists, resets its
// password.
func (s *service) EnsureOperator(ctx context.Context, username, password string) (*Operator, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	op, err := s.repo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		if err := s.repo.UpdatePasswordHash(ctx, op.ID, string(hash)); err != nil {
			return nil, fmt.Errorf("update operator: %w", err)
		}
		op.PasswordHash = string(hash)
		s.logger.Infow("EnsureOperator: password reset", "username", username)
		return op, nil

	case errors.Is(err, ErrOperatorNotFound):
		op = &Operator{Username: username, PasswordHash: string(hash)}
		if err := s.repo.Create(ctx, op); err != nil {
			return nil, fmt.Errorf("create operator: %w", err)
		}
		s.logger.Infow("EnsureOperator: operator created", "username", username)
		return op, nil

	default:
		return nil, err
	}
}
