package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrInvalidBoard     = errors.New("board must have exactly 9 cells of X, O or empty")
	ErrInvalidMark      = errors.New("mark must be X or O")
	ErrNoAvailableMoves = errors.New("no available moves")
)
