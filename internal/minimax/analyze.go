package minimax

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// Analysis holds the score of every legal root move and the move Minimax would pick.
type Analysis struct {
	Side  entity.Mark
	Moves []Result
	Best  Result
	Stats Stats
}

// Analyze - scores every legal move for side, searching the root branches in parallel.
//
// Each branch runs on its own copy of the board with its own engine, so the
// caller's board is never touched. ctx is checked before a branch starts;
// a running branch is not interrupted.
func (that *Engine) Analyze(ctx context.Context, board entity.Board, side entity.Mark) (*Analysis, error) {
	cells := board.EmptyCells()
	analysis := &Analysis{
		Side: side,
		Best: Result{Row: NoMove, Col: NoMove, Score: that.Evaluate(&board)},
	}

	if len(cells) == 0 || that.IsTerminal(&board) {
		return analysis, nil
	}

	analysis.Moves = make([]Result, len(cells))
	stats := make([]Stats, len(cells))

	grp, ctx := errgroup.WithContext(ctx)
	for i, cell := range cells {
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("analyze %s: %w", cell, err)
			}

			branch := board
			branch[cell.Row][cell.Col] = side

			engine := New(that.max)
			score := engine.Minimax(&branch, len(cells)-1, entity.Opposite(side))
			score.Row, score.Col = cell.Row, cell.Col

			analysis.Moves[i] = score
			stats[i] = engine.Stats()

			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}

	// strict comparison in row-major order, as in Minimax
	analysis.Best = analysis.Moves[0]
	for _, move := range analysis.Moves[1:] {
		if side == that.max && move.Score > analysis.Best.Score ||
			side != that.max && move.Score < analysis.Best.Score {
			analysis.Best = move
		}
	}

	for _, st := range stats {
		analysis.Stats.Visited += st.Visited
		analysis.Stats.Evaluated += st.Evaluated
		analysis.Stats.Terminal += st.Terminal
	}

	return analysis, nil
}
