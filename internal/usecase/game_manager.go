package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type botService interface {
	MakeTurn(game *entity.Game) error
}

// GameManager - runs games between a human and the bot.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	bot      botService
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, bot botService) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo: gameRepo,
		bot:      bot,
	}
}

// CreateGame - starts a game where the human holds playerMark. An empty mark is drawn at random.
// When the bot holds X it opens before the game is returned.
func (that *GameManager) CreateGame(ctx context.Context, playerMark string) (*entity.Game, error) {
	if playerMark == "" {
		playerMark, _ = entity.GetRandomMarks()
	}

	if !entity.IsMark(playerMark) {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, playerMark)
	}

	game := entity.NewGame(pkg.GenerateGameID(), playerMark)

	if game.IsBotTurn() {
		if err := that.bot.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make first turn: %w", err)
		}
	}

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID, "playerMark", game.PlayerMark)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn - plays the human's cell and the bot's answer.
// A game that ends here is removed from the store and returned in its final state.
func (that *GameManager) MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error) {
	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err = tictactoe.MakeTurn(game, game.PlayerMark, cell); err != nil {
		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	if game.IsBotTurn() {
		if err = that.bot.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if game.IsFinished() {
		that.deleteGame(ctx, game)

		return game, nil
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	return game, nil
}

func (that *GameManager) deleteGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "deleteGame", "gameID", game.ID)

	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
		return
	}

	log.Info("game finished", "winner", game.Winner)
}
