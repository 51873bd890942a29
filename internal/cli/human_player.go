package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// HumanPlayer asks for a numpad index until it names an empty cell.
type HumanPlayer struct {
	info     *entity.Player
	terminal *Terminal
}

func (that *Terminal) NewHumanPlayer(mark entity.Mark) *HumanPlayer {
	return &HumanPlayer{
		info:     entity.NewHumanPlayer(mark),
		terminal: that,
	}
}

func (that *HumanPlayer) Info() *entity.Player {
	return that.info
}

func (that *HumanPlayer) GetMove(ctx context.Context, game *entity.Game) (entity.Cell, error) {
	out := that.terminal.out

	for {
		if err := ctx.Err(); err != nil {
			return entity.Cell{}, err
		}

		fmt.Fprint(out, "Use numpad (1..9): ")

		line, err := that.terminal.readLine()
		if err != nil {
			return entity.Cell{}, err
		}

		index, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(out, "Bad choice")
			continue
		}

		cell, ok := entity.CellFromIndex(index)
		if !ok {
			fmt.Fprintln(out, "Bad choice")
			continue
		}

		if !game.Board.IsLegalMove(cell.Row, cell.Col) {
			fmt.Fprintln(out, "Bad move")
			continue
		}

		return cell, nil
	}
}
