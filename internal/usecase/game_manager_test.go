package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/service"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
)

var (
	errRedisDown    = errors.New("redis down")
	errGameNotFound = errors.New("game not found")
)

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	return that.Called(ctx, game).Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	return args.Get(0).(*entity.Game), args.Error(1)
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	return that.Called(ctx, id).Error(0)
}

func newGameManager(repo gameRepo) *GameManager {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	engine := tictactoe.NewEngine(logger, entity.PlayerO, tictactoe.FirstBest{})

	return NewGameManager(logger, repo, service.NewBotService(logger, engine))
}

func TestGameManager_CreateGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Human holding X moves first", func(t *testing.T) {
		// Given: a repository that accepts the game
		repo := &mockGameRepo{}
		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*entity.Game")).Return(nil).Once()
		manager := newGameManager(repo)

		// When: creating a game as X
		game, err := manager.CreateGame(ctx, entity.PlayerX)

		// Then: the board is empty and it is X's turn
		require.NoError(t, err)
		assert.NotEmpty(t, game.ID)
		assert.Equal(t, entity.Board{}, game.Board)
		assert.Equal(t, entity.PlayerX, game.Turn)
		assert.Equal(t, entity.PlayerO, game.BotMark)
		repo.AssertExpectations(t)
	})

	t.Run("Bot holding X opens in the center", func(t *testing.T) {
		repo := &mockGameRepo{}
		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*entity.Game")).Return(nil).Once()
		manager := newGameManager(repo)

		game, err := manager.CreateGame(ctx, entity.PlayerO)

		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, game.Board[entity.CenterCell])
		assert.Equal(t, entity.PlayerO, game.Turn)
		repo.AssertExpectations(t)
	})

	t.Run("Empty mark is drawn at random", func(t *testing.T) {
		repo := &mockGameRepo{}
		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*entity.Game")).Return(nil).Once()
		manager := newGameManager(repo)

		game, err := manager.CreateGame(ctx, "")

		require.NoError(t, err)
		assert.True(t, entity.IsMark(game.PlayerMark))
		assert.Equal(t, game.PlayerMark, game.Turn)
	})

	t.Run("Invalid mark", func(t *testing.T) {
		repo := &mockGameRepo{}
		manager := newGameManager(repo)

		game, err := manager.CreateGame(ctx, "Z")

		require.ErrorIs(t, err, apperror.ErrInvalidMark)
		assert.Nil(t, game)
		repo.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything)
	})

	t.Run("Storage failure", func(t *testing.T) {
		repo := &mockGameRepo{}
		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*entity.Game")).Return(errRedisDown).Once()
		manager := newGameManager(repo)

		game, err := manager.CreateGame(ctx, entity.PlayerX)

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, game)
	})
}

func TestGameManager_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Bot answers the human move", func(t *testing.T) {
		// Given: a fresh game where the human holds X
		repo := &mockGameRepo{}
		repo.On("GetByID", ctx, "g1").Return(entity.NewGame("g1", entity.PlayerX), nil).Once()
		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*entity.Game")).Return(nil).Once()
		manager := newGameManager(repo)

		// When: the human takes a corner
		game, err := manager.MakeTurn(ctx, "g1", 0)

		// Then: the bot takes the center and hands the turn back
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, game.Board[0])
		assert.Equal(t, entity.PlayerO, game.Board[entity.CenterCell])
		assert.Equal(t, entity.PlayerX, game.Turn)
		repo.AssertExpectations(t)
	})

	t.Run("Bot win removes the game", func(t *testing.T) {
		// Given: the bot threatens the middle row and the human ignores it
		stored := entity.NewGame("g1", entity.PlayerX)
		stored.Board = entity.Board{entity.PlayerX, "", "", entity.PlayerO, entity.PlayerO, "", entity.PlayerX, "", ""}

		repo := &mockGameRepo{}
		repo.On("GetByID", ctx, "g1").Return(stored, nil).Once()
		repo.On("DeleteByID", ctx, "g1").Return(nil).Once()
		manager := newGameManager(repo)

		// When: the human plays elsewhere
		game, err := manager.MakeTurn(ctx, "g1", 8)

		// Then: the bot completes the row and the game is gone from the store
		require.NoError(t, err)
		assert.True(t, game.IsFinished())
		assert.Equal(t, entity.PlayerO, game.Winner)
		repo.AssertExpectations(t)
		repo.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything)
	})

	t.Run("Human cannot play an occupied cell", func(t *testing.T) {
		stored := entity.NewGame("g1", entity.PlayerX)
		stored.Board[4] = entity.PlayerO
		stored.Board[0] = entity.PlayerX

		repo := &mockGameRepo{}
		repo.On("GetByID", ctx, "g1").Return(stored, nil).Once()
		manager := newGameManager(repo)

		game, err := manager.MakeTurn(ctx, "g1", 4)

		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Nil(t, game)
	})

	t.Run("Finished game", func(t *testing.T) {
		stored := entity.NewGame("g1", entity.PlayerX)
		stored.Status = entity.StatusFinished

		repo := &mockGameRepo{}
		repo.On("GetByID", ctx, "g1").Return(stored, nil).Once()
		manager := newGameManager(repo)

		_, err := manager.MakeTurn(ctx, "g1", 4)

		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Unknown game", func(t *testing.T) {
		repo := &mockGameRepo{}
		repo.On("GetByID", ctx, "nope").Return((*entity.Game)(nil), errGameNotFound).Once()
		manager := newGameManager(repo)

		game, err := manager.MakeTurn(ctx, "nope", 4)

		require.ErrorIs(t, err, errGameNotFound)
		assert.Nil(t, game)
	})
}

func TestGameManager_GetGame(t *testing.T) {
	ctx := context.Background()

	stored := entity.NewGame("g1", entity.PlayerX)
	repo := &mockGameRepo{}
	repo.On("GetByID", ctx, "g1").Return(stored, nil).Once()
	manager := newGameManager(repo)

	game, err := manager.GetGame(ctx, "g1")

	require.NoError(t, err)
	assert.Equal(t, stored, game)
}
