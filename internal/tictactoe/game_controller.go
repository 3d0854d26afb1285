package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

// MakeTurn - places mark on cell and moves the game to its next state.
// The game is left untouched when the turn is rejected.
func MakeTurn(gameInstance *entity.Game, mark string, cell int) error {
	if err := gameInstance.ConfirmOngoingState(); err != nil {
		return err
	}

	if err := validateMove(gameInstance, mark, cell); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	gameInstance.Board = gameInstance.Board.With(cell, mark)
	updateGameStatus(gameInstance, mark)

	return nil
}

// validateMove - checks if the move is valid.
func validateMove(gameInstance *entity.Game, mark string, cell int) error {
	if cell < 0 || cell >= len(gameInstance.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if gameInstance.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if gameInstance.Board[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(gameInstance *entity.Game, mark string) {
	switch outcome := evaluateBoard(&gameInstance.Board); outcome {
	case OutcomeXWins, OutcomeOWins:
		gameInstance.Winner = outcome.Winner()
		gameInstance.Status = entity.StatusFinished
		gameInstance.Turn = ""
	case OutcomeDraw:
		gameInstance.Winner = entity.PlayerTie
		gameInstance.Status = entity.StatusFinished
		gameInstance.Turn = ""
	default:
		gameInstance.Turn = entity.Opponent(mark)
	}
}
