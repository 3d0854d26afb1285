package tictactoe

import (
	"errors"
	"fmt"

	"lukechampine.com/frand"
)

const (
	TieBreakFirst  = "first"
	TieBreakRandom = "random"
)

var ErrUnknownTieBreak = errors.New("unknown tie-break policy")

// TieBreaker picks one cell among moves that share the best score.
// cells is never empty and is sorted in ascending order.
type TieBreaker interface {
	Pick(cells []int) int
}

// FirstBest always picks the lowest cell index.
type FirstBest struct{}

func (FirstBest) Pick(cells []int) int {
	return cells[0]
}

// RandomBest picks uniformly among the best cells so the bot is not fully predictable.
type RandomBest struct{}

func (RandomBest) Pick(cells []int) int {
	return cells[frand.Intn(len(cells))]
}

// NewTieBreaker - returns the policy configured under bot.tie-break.
func NewTieBreaker(name string) (TieBreaker, error) {
	switch name {
	case TieBreakFirst:
		return FirstBest{}, nil
	case TieBreakRandom:
		return RandomBest{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTieBreak, name)
	}
}
