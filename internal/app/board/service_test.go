package board_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"trello/internal/app/board"
	"trello/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T, cache board.ListCache) (board.Service, board.Repository) {
	t.Helper()
	repo := board.NewRepository(testutil.NewTestDB(t))
	return board.NewService(repo, cache, zap.NewNop()), repo
}

func TestNormalizeTitle(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{name: "plain", raw: "My Board", want: "My Board"},
		{name: "trimmed", raw: "  \tMy Board \n", want: "My Board"},
		{name: "empty", raw: "", wantErr: board.ErrEmptyTitle},
		{name: "whitespace", raw: " \t\n ", wantErr: board.ErrEmptyTitle},
		{name: "max length", raw: strings.Repeat("é", board.MaxTitleLength), want: strings.Repeat("é", board.MaxTitleLength)},
		{name: "too long", raw: strings.Repeat("x", board.MaxTitleLength+1), wantErr: board.ErrTitleTooLong},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := board.NormalizeTitle(tc.raw)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCreateBoard(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil)

	created, err := svc.CreateBoard(ctx, "  Roadmap  ")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Roadmap", created.Title)
	assert.False(t, created.CreatedAt.IsZero(), "created_at is assigned by the store")

	found, err := svc.GetBoardByTitle(ctx, "Roadmap")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.WithinDuration(t, created.CreatedAt, found.CreatedAt, time.Second)
}

func TestCreateBoardRejectsInvalidTitles(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService(t, nil)

	for _, raw := range []string{"", "   ", "\t\n", strings.Repeat("a", board.MaxTitleLength+1)} {
		_, err := svc.CreateBoard(ctx, raw)
		assert.Error(t, err)
	}

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreateBoardDuplicate(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService(t, nil)

	_, err := svc.CreateBoard(ctx, "Sprint")
	require.NoError(t, err)

	for _, raw := range []string{"Sprint", " Sprint "} {
		_, err = svc.CreateBoard(ctx, raw)
		assert.ErrorIs(t, err, board.ErrBoardExists)
	}

	// Matching is case-sensitive.
	_, err = svc.CreateBoard(ctx, "sprint")
	require.NoError(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestCreateBoardConcurrentDuplicates(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService(t, nil)

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateBoard(ctx, "Race")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			default:
				assert.ErrorIs(t, err, board.ErrBoardExists)
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicts)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestGetAllBoardsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil)

	titles := []string{"Zeta", "Alpha", "Mid"}
	for _, title := range titles {
		_, err := svc.CreateBoard(ctx, title)
		require.NoError(t, err)
	}

	boards, err := svc.GetAllBoards(ctx)
	require.NoError(t, err)
	require.Len(t, boards, len(titles))
	for i, b := range boards {
		assert.Equal(t, titles[i], b.Title)
	}
}

func TestCountBoards(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil)

	count, err := svc.CountBoards(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	for _, title := range []string{"One", "Two", "Two"} {
		_, _ = svc.CreateBoard(ctx, title)
	}

	count, err = svc.CountBoards(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestGetBoardByTitle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil)

	_, err := svc.GetBoardByTitle(ctx, "Missing")
	assert.ErrorIs(t, err, board.ErrBoardNotFound)

	_, err = svc.CreateBoard(ctx, "Exact")
	require.NoError(t, err)

	// Lookups use the title verbatim.
	_, err = svc.GetBoardByTitle(ctx, " Exact ")
	assert.ErrorIs(t, err, board.ErrBoardNotFound)
	_, err = svc.GetBoardByTitle(ctx, "exact")
	assert.ErrorIs(t, err, board.ErrBoardNotFound)
}

type fakeCache struct {
	boards      []*board.Board
	hit         bool
	sets        int
	invalidated int
}

func (f *fakeCache) Get(context.Context) ([]*board.Board, bool) {
	return f.boards, f.hit
}

func (f *fakeCache) Set(_ context.Context, boards []*board.Board) {
	f.boards = boards
	f.hit = true
	f.sets++
}

func (f *fakeCache) Invalidate(context.Context) {
	f.boards = nil
	f.hit = false
	f.invalidated++
}

func TestListCache(t *testing.T) {
	ctx := context.Background()
	cache := &fakeCache{}
	svc, _ := newService(t, cache)

	_, err := svc.CreateBoard(ctx, "One")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidated)

	boards, err := svc.GetAllBoards(ctx)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, 1, cache.sets)

	// Served from the cache without touching the store.
	cache.boards = []*board.Board{{Title: "cached"}}
	boards, err = svc.GetAllBoards(ctx)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, "cached", boards[0].Title)
	assert.Equal(t, 1, cache.sets)

	_, err = svc.CreateBoard(ctx, "Two")
	require.NoError(t, err)
	assert.Equal(t, 2, cache.invalidated)

	boards, err = svc.GetAllBoards(ctx)
	require.NoError(t, err)
	assert.Len(t, boards, 2)

	// A rejected create leaves the cache alone.
	_, err = svc.CreateBoard(ctx, "Two")
	assert.ErrorIs(t, err, board.ErrBoardExists)
	assert.Equal(t, 2, cache.invalidated)
}

// createDuringList runs a create between the store read and the return of
// GetAll, the window in which a stale listing could reach the cache.
type createDuringList struct {
	board.Repository
	during func()
}

func (r *createDuringList) GetAll(ctx context.Context) ([]*board.Board, error) {
	boards, err := r.Repository.GetAll(ctx)
	if r.during != nil {
		during := r.during
		r.during = nil
		during()
	}
	return boards, err
}

func TestListCacheSkipsListingReadBeforeCreate(t *testing.T) {
	ctx := context.Background()
	cache := &fakeCache{}
	repo := &createDuringList{Repository: board.NewRepository(testutil.NewTestDB(t))}
	svc := board.NewService(repo, cache, zap.NewNop())

	_, err := svc.CreateBoard(ctx, "Before")
	require.NoError(t, err)

	repo.during = func() {
		_, err := svc.CreateBoard(ctx, "During")
		require.NoError(t, err)
	}

	boards, err := svc.GetAllBoards(ctx)
	require.NoError(t, err)
	assert.Len(t, boards, 1)
	assert.Zero(t, cache.sets, "listing read before the create must not be cached")
	assert.False(t, cache.hit)

	boards, err = svc.GetAllBoards(ctx)
	require.NoError(t, err)
	assert.Len(t, boards, 2)
	assert.Equal(t, 1, cache.sets)
}
