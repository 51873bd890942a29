package command

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
)

var ErrBoardRequired = errors.New("-board is required")

type Analyze struct {
	logger *slog.Logger
	out    io.Writer

	board string
	side  string
}

func NewAnalyze(logger *slog.Logger, out io.Writer) *Analyze {
	return &Analyze{
		logger: logger.With("component", "analyze"),
		out:    out,
	}
}

func (*Analyze) Name() string     { return "analyze" }
func (*Analyze) Synopsis() string { return "Score every legal move of a position" }
func (*Analyze) Usage() string {
	return `analyze -board XO./.X./... [-side X|O]

Searches the full game tree below the position and prints the minimax
score of each legal move for the side to move (+1 win, 0 draw, -1 loss).
`
}

func (that *Analyze) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&that.board, "board", "", "position, 9 cells in row-major order (X, O, .)")
	flags.StringVar(&that.side, "side", "", "side to move (default: inferred from the marks on the board)")
}

func (that *Analyze) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := that.run(ctx); err != nil {
		that.logger.Error("analyze failed", "error", err)
		if errors.Is(err, ErrBoardRequired) || errors.Is(err, entity.ErrInvalidBoard) {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

func (that *Analyze) run(ctx context.Context) error {
	if that.board == "" {
		return ErrBoardRequired
	}

	board, err := entity.ParseBoard(that.board)
	if err != nil {
		return fmt.Errorf("invalid -board: %w", err)
	}

	side := sideToMove(&board)
	if that.side != "" {
		if side, err = entity.ParseMark(that.side); err != nil {
			return fmt.Errorf("invalid -side: %w", err)
		}
	}

	analysis, err := minimax.New(side).Analyze(ctx, board, side)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	fmt.Fprintf(that.out, "position %s, %s to move\n", board.String(), side)

	if len(analysis.Moves) == 0 {
		fmt.Fprintf(that.out, "game over, score %+d\n", analysis.Best.Score)
		return nil
	}

	w := tabwriter.NewWriter(that.out, 4, 8, 1, ' ', 0)
	fmt.Fprintln(w, "index\tcell\tscore")
	for _, move := range analysis.Moves {
		fmt.Fprintf(w, "%d\t%s\t%+d\n", move.Cell().Index(), move.Cell(), move.Score)
	}
	w.Flush()

	fmt.Fprintf(that.out, "best: %d %s score %+d (visited %d nodes)\n",
		analysis.Best.Cell().Index(),
		analysis.Best.Cell(),
		analysis.Best.Score,
		analysis.Stats.Visited,
	)

	return nil
}

// sideToMove - X moves when both sides have placed the same number of marks.
func sideToMove(board *entity.Board) entity.Mark {
	if board.Count(entity.MarkX) > board.Count(entity.MarkO) {
		return entity.MarkO
	}

	return entity.MarkX
}
