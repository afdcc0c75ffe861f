package board

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"trello/internal/metrics"

	"go.uber.org/zap"
)

type Service interface {
	CreateBoard(ctx context.Context, title string) (*Board, error)
	GetAllBoards(ctx context.Context) ([]*Board, error)
	GetBoardByTitle(ctx context.Context, title string) (*Board, error)
	CountBoards(ctx context.Context) (int64, error)
}

type service struct {
	repo   Repository
	cache  ListCache
	logger *zap.SugaredLogger

	// cacheMu orders cache writes against invalidations; generation counts
	// invalidations so a listing read before one is never stored after it.
	cacheMu    sync.Mutex
	generation uint64
}

// NewService wires the board service. cache may be nil, in which case every
// listing goes to the repository.
func NewService(repo Repository, cache ListCache, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		cache:  cache,
		logger: logger.Sugar(),
	}
}

// NormalizeTitle trims the title and checks it is neither empty nor too long.
func NormalizeTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}

func (s *service) CreateBoard(ctx context.Context, raw string) (*Board, error) {
	title, err := NormalizeTitle(raw)
	if err != nil {
		metrics.BoardCreateRejected.WithLabelValues(rejectReason(err)).Inc()
		return nil, err
	}

	board := &Board{Title: title}
	if err := s.repo.Create(ctx, board); err != nil {
		metrics.BoardCreateRejected.WithLabelValues(rejectReason(err)).Inc()
		return nil, fmt.Errorf("create board: %w", err)
	}

	s.invalidateList(ctx)

	metrics.BoardsCreated.Inc()
	s.logger.Infow("CreateBoard: board created", "board_id", board.ID, "title", board.Title)
	return board, nil
}

func (s *service) GetAllBoards(ctx context.Context) ([]*Board, error) {
	if s.cache == nil {
		return s.listBoards(ctx)
	}

	if boards, ok := s.cache.Get(ctx); ok {
		return boards, nil
	}

	s.cacheMu.Lock()
	generation := s.generation
	s.cacheMu.Unlock()

	boards, err := s.listBoards(ctx)
	if err != nil {
		return nil, err
	}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.generation == generation {
		s.cache.Set(ctx, boards)
	}
	return boards, nil
}

func (s *service) listBoards(ctx context.Context) ([]*Board, error) {
	boards, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	return boards, nil
}

func (s *service) invalidateList(ctx context.Context) {
	if s.cache == nil {
		return
	}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.generation++
	s.cache.Invalidate(ctx)
}

func (s *service) GetBoardByTitle(ctx context.Context, title string) (*Board, error) {
	board, err := s.repo.GetByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("get board: %w", err)
	}
	return board, nil
}

func (s *service) CountBoards(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrEmptyTitle):
		return "empty"
	case errors.Is(err, ErrTitleTooLong):
		return "too_long"
	case errors.Is(err, ErrBoardExists):
		return "conflict"
	default:
		return "error"
	}
}
