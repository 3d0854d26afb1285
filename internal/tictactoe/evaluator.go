package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

// Outcome is the terminal classification of a board.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeXWins
	OutcomeOWins
	OutcomeDraw
)

func (that Outcome) String() string {
	switch that {
	case OutcomeXWins:
		return "x_wins"
	case OutcomeOWins:
		return "o_wins"
	case OutcomeDraw:
		return "draw"
	default:
		return "none"
	}
}

func (that Outcome) IsTerminal() bool {
	return that != OutcomeNone
}

// Winner returns the winning mark, or EmptyCell for a draw or an ongoing game.
func (that Outcome) Winner() string {
	switch that {
	case OutcomeXWins:
		return entity.PlayerX
	case OutcomeOWins:
		return entity.PlayerO
	default:
		return entity.EmptyCell
	}
}

// Evaluate - classifies a plain 9-cell board. Malformed boards are not terminal.
func Evaluate(cells []string) Outcome {
	if len(cells) != len(entity.Board{}) {
		return OutcomeNone
	}

	return evaluateBoard((*entity.Board)(cells))
}

// Winner - returns X or O when that mark owns a full line, otherwise an empty string.
func Winner(cells []string) string {
	return Evaluate(cells).Winner()
}

func evaluateBoard(board *entity.Board) Outcome {
	for _, combo := range entity.WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a == b && b == c {
			switch a {
			case entity.PlayerX:
				return OutcomeXWins
			case entity.PlayerO:
				return OutcomeOWins
			}
		}
	}

	// the game will continue until all the squares are full
	for _, cell := range board {
		if cell == entity.EmptyCell {
			return OutcomeNone
		}
	}

	return OutcomeDraw
}
