package minimax

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	// NoMove marks the row and column of a leaf evaluation.
	NoMove = -1

	WinScore  = 1
	DrawScore = 0
	LossScore = -1
)

// Result is a move recommendation. Row and Col are NoMove for a leaf.
type Result struct {
	Row   int
	Col   int
	Score int
}

func (that Result) IsMove() bool {
	return that.Row != NoMove && that.Col != NoMove
}

func (that Result) Cell() entity.Cell {
	return entity.Cell{Row: that.Row, Col: that.Col}
}

type Stats struct {
	Visited   uint64
	Evaluated uint64
	Terminal  uint64
}

// Engine is an exhaustive minimax searcher for a fixed pair of sides.
// An Engine is not safe for concurrent use.
type Engine struct {
	max entity.Mark
	min entity.Mark

	st Stats
}

// New - creates an engine playing for maxMark; the opposite side minimizes.
func New(maxMark entity.Mark) *Engine {
	return &Engine{
		max: maxMark,
		min: entity.Opposite(maxMark),
	}
}

func (that *Engine) Max() entity.Mark {
	return that.max
}

func (that *Engine) Min() entity.Mark {
	return that.min
}

func (that *Engine) Stats() Stats {
	return that.st
}

func (that *Engine) ResetStats() {
	that.st = Stats{}
}

// Evaluate - +1 if the maximizing side wins, -1 if the minimizing side wins, 0 otherwise.
func (that *Engine) Evaluate(board *entity.Board) int {
	switch {
	case board.Wins(that.max):
		return WinScore
	case board.Wins(that.min):
		return LossScore
	default:
		return DrawScore
	}
}

func (that *Engine) IsTerminal(board *entity.Board) bool {
	return board.IsTerminal(that.max, that.min)
}

// Minimax - searches the whole game tree below board for side to move.
//
// The board is mutated in place while the search runs and is restored
// before Minimax returns. Ties are broken in favour of the row-major
// earliest cell.
func (that *Engine) Minimax(board *entity.Board, depth int, side entity.Mark) Result {
	that.st.Visited++

	if depth == 0 || that.IsTerminal(board) {
		that.st.Evaluated++
		if depth != 0 {
			that.st.Terminal++
		}

		return Result{Row: NoMove, Col: NoMove, Score: that.Evaluate(board)}
	}

	best := Result{Row: NoMove, Col: NoMove, Score: math.MaxInt}
	if side == that.max {
		best.Score = math.MinInt
	}

	for _, cell := range board.EmptyCells() {
		board[cell.Row][cell.Col] = side
		score := that.Minimax(board, depth-1, entity.Opposite(side))
		board[cell.Row][cell.Col] = entity.MarkEmpty

		score.Row, score.Col = cell.Row, cell.Col

		if side == that.max {
			if score.Score > best.Score {
				best = score
			}
		} else if score.Score < best.Score {
			best = score
		}
	}

	return best
}

// BestMove - runs a full-depth search for side on board.
func (that *Engine) BestMove(board *entity.Board, side entity.Mark) Result {
	return that.Minimax(board, board.Depth(), side)
}
