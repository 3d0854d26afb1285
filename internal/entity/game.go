package entity

import (
	"errors"
	"fmt"

	"lukechampine.com/frand"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""

	// CenterCell is the opening cell of an empty board.
	CenterCell = 4
)

var (
	ErrUnknownGameStatus = errors.New("unknown game status")

	// WinCombos - every row, column and diagonal of the 3x3 board, in that order.
	WinCombos = [8][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// Board is a row-major 3x3 grid, cell index = row*3 + col.
// It is a value: every move produces a new Board.
type Board [9]string

// With returns a copy of the board with mark placed on cell.
func (that Board) With(cell int, mark string) Board {
	that[cell] = mark
	return that
}

// EmptyCells returns the indices of empty cells in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, len(that))
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}
	return cells
}

func (that Board) IsEmpty() bool {
	for _, cell := range that {
		if cell != EmptyCell {
			return false
		}
	}
	return true
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

// BoardFromCells copies a plain cell slice into a Board.
// ok is false when cells is nil, not 9 long or holds a value other than X, O or empty.
func BoardFromCells(cells []string) (Board, bool) {
	var board Board
	if len(cells) != len(board) {
		return board, false
	}

	for i, cell := range cells {
		if cell != EmptyCell && !IsMark(cell) {
			return Board{}, false
		}
		board[i] = cell
	}

	return board, true
}

func IsMark(mark string) bool {
	return mark == PlayerX || mark == PlayerO
}

func Opponent(mark string) string {
	if mark == PlayerX {
		return PlayerO
	}
	return PlayerX
}

type Game struct {
	ID         string `json:"id"`
	Board      Board  `json:"board"`
	Winner     string `json:"winner"`
	Status     string `json:"status"`
	Turn       string `json:"player_turn"`
	PlayerMark string `json:"player_mark"`
	BotMark    string `json:"bot_mark"`
}

// NewGame - creates an ongoing game between a human holding playerMark and the bot. X always starts.
func NewGame(id, playerMark string) *Game {
	return &Game{
		ID:         id,
		Turn:       PlayerX,
		Status:     StatusOngoing,
		PlayerMark: playerMark,
		BotMark:    Opponent(playerMark),
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsBotTurn() bool {
	return that.IsOngoing() && that.Turn == that.BotMark
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

// GetRandomMarks - returns the marks of the human and the bot.
func GetRandomMarks() (string, string) {
	if frand.Intn(2) == 0 {
		return PlayerX, PlayerO
	}
	return PlayerO, PlayerX
}
