package tictactoe

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

// NoMove is returned by FindBestMove when there is nothing to play.
const NoMove = -1

const (
	scoreWin  = 1
	scoreDraw = 0
	scoreLoss = -1

	// search window bounds, strictly outside every reachable score
	lowerBound = scoreLoss - 1
	upperBound = scoreWin + 1
)

const (
	sourceOpening = "opening"
	sourceWin     = "win"
	sourceBlock   = "block"
	sourceSearch  = "search"
)

// Engine picks moves for the automated side with minimax and alpha-beta pruning.
// It keeps no state between calls and is safe for concurrent use.
type Engine struct {
	logger   *slog.Logger
	mark     string
	tieBreak TieBreaker
}

// NewEngine - creates an engine playing mark by default. A nil tieBreak falls back to FirstBest.
func NewEngine(logger *slog.Logger, mark string, tieBreak TieBreaker) *Engine {
	if tieBreak == nil {
		tieBreak = FirstBest{}
	}

	return &Engine{
		logger:   logger.With("component", "engine"),
		mark:     mark,
		tieBreak: tieBreak,
	}
}

// Mark - the side the engine plays when none is given.
func (that *Engine) Mark() string {
	return that.mark
}

// FindBestMove - returns the best cell for the engine's own mark, or NoMove.
func (that *Engine) FindBestMove(cells []string) int {
	return that.FindBestMoveFor(cells, that.mark)
}

// FindBestMoveFor - returns the best cell for mark, or NoMove when the board is malformed,
// already decided or full. The reason is logged, never returned.
func (that *Engine) FindBestMoveFor(cells []string, mark string) int {
	cell, err := that.BestMove(cells, mark)
	if err != nil {
		that.logger.Warn("no move found", "method", "FindBestMove", "mark", mark, "error", err)
		return NoMove
	}

	return cell
}

// BestMove - returns the best cell for mark on a plain 9-cell board.
func (that *Engine) BestMove(cells []string, mark string) (int, error) {
	log := that.logger.With("method", "BestMove", "mark", mark)

	board, err := parseBoard(cells, mark)
	if err != nil {
		return NoMove, err
	}

	if board.IsEmpty() {
		log.Debug("move chosen", "cell", entity.CenterCell, "source", sourceOpening)
		return entity.CenterCell, nil
	}

	if cell, ok := completingCell(board, mark); ok {
		log.Debug("move chosen", "cell", cell, "source", sourceWin)
		return cell, nil
	}

	if cell, ok := completingCell(board, entity.Opponent(mark)); ok {
		log.Debug("move chosen", "cell", cell, "source", sourceBlock)
		return cell, nil
	}

	s := newSearch(mark)
	scores := s.rootScores(board)

	bestScore := lowerBound
	var bestCells []int
	for _, cell := range board.EmptyCells() {
		switch score := scores[cell]; {
		case score > bestScore:
			bestScore = score
			bestCells = []int{cell}
		case score == bestScore:
			bestCells = append(bestCells, cell)
		}
	}

	cell := that.tieBreak.Pick(bestCells)
	log.Debug("move chosen",
		"cell", cell,
		"source", sourceSearch,
		"score", bestScore,
		"candidates", bestCells,
		"nodes", s.nodes,
	)

	return cell, nil
}

// Scores - returns the exact minimax score of every empty cell for mark:
// 1 forces a win, 0 a draw, -1 loses against best play.
func (that *Engine) Scores(cells []string, mark string) (map[int]int, error) {
	board, err := parseBoard(cells, mark)
	if err != nil {
		return nil, err
	}

	return newSearch(mark).rootScores(board), nil
}

func parseBoard(cells []string, mark string) (entity.Board, error) {
	board, ok := entity.BoardFromCells(cells)
	if !ok {
		return board, fmt.Errorf("%w: got %d cells", apperror.ErrInvalidBoard, len(cells))
	}

	if !entity.IsMark(mark) {
		return board, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	if board.IsFull() {
		return board, apperror.ErrNoAvailableMoves
	}

	if evaluateBoard(&board).IsTerminal() {
		return board, apperror.ErrGameFinished
	}

	return board, nil
}

// completingCell - the lowest empty cell where mark completes a line.
func completingCell(board entity.Board, mark string) (int, bool) {
	for _, cell := range board.EmptyCells() {
		next := board.With(cell, mark)
		if evaluateBoard(&next).Winner() == mark {
			return cell, true
		}
	}

	return NoMove, false
}

// search holds the per-call state of one minimax run.
type search struct {
	mark     string
	opponent string
	nodes    int
}

func newSearch(mark string) *search {
	return &search{
		mark:     mark,
		opponent: entity.Opponent(mark),
	}
}

// rootScores scores every move with a full window so ties at the root stay exact.
func (that *search) rootScores(board entity.Board) map[int]int {
	empty := board.EmptyCells()
	scores := make(map[int]int, len(empty))

	for _, cell := range empty {
		scores[cell] = that.score(board.With(cell, that.mark), that.opponent, lowerBound, upperBound)
	}

	return scores
}

func (that *search) score(board entity.Board, toMove string, alpha, beta int) int {
	that.nodes++

	switch outcome := evaluateBoard(&board); outcome {
	case OutcomeDraw:
		return scoreDraw
	case OutcomeXWins, OutcomeOWins:
		if outcome.Winner() == that.mark {
			return scoreWin
		}
		return scoreLoss
	}

	if toMove == that.mark {
		best := scoreLoss
		for _, cell := range board.EmptyCells() {
			best = max(best, that.score(board.With(cell, that.mark), that.opponent, alpha, beta))
			alpha = max(alpha, best)

			if best == scoreWin || beta <= alpha {
				break
			}
		}
		return best
	}

	best := scoreWin
	for _, cell := range board.EmptyCells() {
		best = min(best, that.score(board.With(cell, that.opponent), that.mark, alpha, beta))
		beta = min(beta, best)

		if best == scoreLoss || beta <= alpha {
			break
		}
	}
	return best
}
