package board

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ncruces/go-sqlite3"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

type Repository interface {
	Create(ctx context.Context, board *Board) error
	GetAll(ctx context.Context) ([]*Board, error)
	GetByTitle(ctx context.Context, title string) (*Board, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts the board. The unique index on title is the only guard
// against duplicates, so two racing inserts of the same title leave exactly
// one row and the loser gets ErrBoardExists.
func (r *repository) Create(ctx context.Context, board *Board) error {
	err := r.db.WithContext(ctx).Create(board).Error
	if err == nil {
		return nil
	}
	if isDuplicateKey(err) {
		return fmt.Errorf("%w: %q", ErrBoardExists, board.Title)
	}
	return err
}

func (r *repository) GetAll(ctx context.Context) ([]*Board, error) {
	var boards []*Board
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&boards).Error
	return boards, err
}

func (r *repository) GetByTitle(ctx context.Context, title string) (*Board, error) {
	var board Board
	err := r.db.WithContext(ctx).Where("title = ?", title).First(&board).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrBoardNotFound, title)
		}
		return nil, err
	}
	return &board, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Board{}).Count(&count).Error
	return count, err
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var sqliteErr *sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode() == sqlite3.CONSTRAINT_UNIQUE
	}

	return false
}
