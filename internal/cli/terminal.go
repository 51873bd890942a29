package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

var ErrInputClosed = errors.New("input closed")

const rowSeparator = "---------------"

// Terminal reads choices from a line based input and renders the game as text.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// ChooseMark - asks which symbol the human plays until X or O is given.
func (that *Terminal) ChooseMark() (entity.Mark, error) {
	for {
		fmt.Fprint(that.out, "\nChoose X or O\nChosen: ")

		line, err := that.readLine()
		if err != nil {
			return entity.MarkEmpty, err
		}

		mark, err := entity.ParseMark(line)
		if err != nil {
			fmt.Fprintln(that.out, "Bad choice")
			continue
		}

		return mark, nil
	}
}

// ChooseFirst - asks whether the human starts.
func (that *Terminal) ChooseFirst() (bool, error) {
	for {
		fmt.Fprint(that.out, "First to start?[y/n]: ")

		line, err := that.readLine()
		if err != nil {
			return false, err
		}

		switch strings.ToUpper(line) {
		case "Y":
			return true, nil
		case "N":
			return false, nil
		default:
			fmt.Fprintln(that.out, "Bad choice")
		}
	}
}

func (that *Terminal) Turn(player *entity.Player, game *entity.Game) {
	fmt.Fprintf(that.out, "\n%s turn [%s]\n", player.Name, player.Mark)
	that.RenderBoard(&game.Board)
}

func (that *Terminal) IllegalMove(_ *entity.Player, _ entity.Cell, _ error) {
	fmt.Fprintln(that.out, "Bad move")
}

// Outcome - renders the final board and the result from the human's point of view, if one played.
func (that *Terminal) Outcome(game *entity.Game, players map[entity.Mark]*entity.Player) {
	fmt.Fprintln(that.out)
	that.RenderBoard(&game.Board)

	if game.IsDraw() {
		fmt.Fprintln(that.out, "DRAW!")
		return
	}

	winner := game.Winner()

	for mark, player := range players {
		if player.IsBot() {
			continue
		}

		if mark == winner {
			fmt.Fprintln(that.out, "YOU WIN!")
		} else {
			fmt.Fprintln(that.out, "YOU LOSE!")
		}

		return
	}

	fmt.Fprintf(that.out, "%s WINS!\n", winner)
}

func (that *Terminal) RenderBoard(board *entity.Board) {
	fmt.Fprintf(that.out, "\n%s\n", rowSeparator)

	for row := range board {
		for _, mark := range board[row] {
			symbol := " "
			if mark != entity.MarkEmpty {
				symbol = mark.String()
			}
			fmt.Fprintf(that.out, "| %s |", symbol)
		}
		fmt.Fprintf(that.out, "\n%s\n", rowSeparator)
	}
}

// readLine - next trimmed input line. A last line without a newline is still returned.
func (that *Terminal) readLine() (string, error) {
	line, err := that.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		if line == "" {
			fmt.Fprintln(that.out, "Bye")
			return "", ErrInputClosed
		}
	}

	return strings.TrimSpace(line), nil
}
