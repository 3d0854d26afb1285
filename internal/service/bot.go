package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
)

var ErrNotBotTurn = errors.New("it's not the bot's turn")

type BotService interface {
	MakeTurn(game *entity.Game) error
}

type moveFinder interface {
	BestMove(cells []string, mark string) (int, error)
}

type botService struct {
	logger *slog.Logger
	engine moveFinder
}

func NewBotService(logger *slog.Logger, engine moveFinder) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
		engine: engine,
	}
}

// MakeTurn - plays the engine's best move for the bot's mark.
func (that *botService) MakeTurn(game *entity.Game) error {
	if !game.IsBotTurn() {
		return fmt.Errorf("%w: game %s", ErrNotBotTurn, game.ID)
	}

	cell, err := that.engine.BestMove(game.Board[:], game.BotMark)
	if err != nil {
		return fmt.Errorf("bot could not find a move: %w", err)
	}

	if err = tictactoe.MakeTurn(game, game.BotMark, cell); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	that.logger.Debug("bot made turn", "gameID", game.ID, "cell", cell, "status", game.Status)

	return nil
}
