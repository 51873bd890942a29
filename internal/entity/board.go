package entity

import (
	"errors"
	"fmt"
	"strings"
)

const BoardSize = 3

// Mark is the content of a single cell and, for MarkX and MarkO, the tag of a side.
type Mark int

const (
	MarkEmpty Mark = iota
	MarkX
	MarkO
)

var ErrInvalidBoard = errors.New("invalid board notation")

// WinCombos are the 8 triads: three rows, three columns, main and anti diagonal.
var WinCombos = [8][3]Cell{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{2, 0}, {1, 1}, {0, 2}},
}

// Opposite - returns the other side. MarkEmpty has no opposite and is returned as is.
func Opposite(mark Mark) Mark {
	switch mark {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return MarkEmpty
	}
}

func ParseMark(s string) (Mark, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "X":
		return MarkX, nil
	case "O":
		return MarkO, nil
	default:
		return MarkEmpty, fmt.Errorf("%w: unknown mark %q", ErrInvalidBoard, s)
	}
}

func (that Mark) String() string {
	switch that {
	case MarkX:
		return "X"
	case MarkO:
		return "O"
	default:
		return "."
	}
}

// Cell is a (row, column) pair.
type Cell struct {
	Row int
	Col int
}

// CellFromIndex - maps a numpad index 1..9 to a cell, 1 being the top left corner.
func CellFromIndex(index int) (Cell, bool) {
	if index < 1 || index > BoardSize*BoardSize {
		return Cell{}, false
	}

	return Cell{Row: (index - 1) / BoardSize, Col: (index - 1) % BoardSize}, true
}

func (that Cell) Index() int {
	return that.Row*BoardSize + that.Col + 1
}

func (that Cell) InBounds() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

func (that Cell) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// Board is the 3x3 grid. The zero value is an empty board.
type Board [BoardSize][BoardSize]Mark

// ParseBoard - reads the row-major notation produced by Board.String.
// "X" and "O" are marks, ".", "-" and "_" are empty cells, "/" and spaces are ignored.
func ParseBoard(s string) (Board, error) {
	var board Board

	n := 0
	for _, r := range s {
		var mark Mark

		switch r {
		case 'X', 'x':
			mark = MarkX
		case 'O', 'o':
			mark = MarkO
		case '.', '-', '_':
			mark = MarkEmpty
		case '/', ' ':
			continue
		default:
			return Board{}, fmt.Errorf("%w: unexpected character %q", ErrInvalidBoard, r)
		}

		if n >= BoardSize*BoardSize {
			return Board{}, fmt.Errorf("%w: more than %d cells", ErrInvalidBoard, BoardSize*BoardSize)
		}

		board[n/BoardSize][n%BoardSize] = mark
		n++
	}

	if n != BoardSize*BoardSize {
		return Board{}, fmt.Errorf("%w: got %d cells, want %d", ErrInvalidBoard, n, BoardSize*BoardSize)
	}

	return board, nil
}

func (that *Board) String() string {
	var sb strings.Builder

	for row := range that {
		if row > 0 {
			sb.WriteByte('/')
		}
		for _, mark := range that[row] {
			sb.WriteString(mark.String())
		}
	}

	return sb.String()
}

func (that *Board) At(cell Cell) Mark {
	return that[cell.Row][cell.Col]
}

// EmptyCells - returns every empty cell in row-major order.
func (that *Board) EmptyCells() []Cell {
	cells := make([]Cell, 0, BoardSize*BoardSize)

	for row := range that {
		for col, mark := range that[row] {
			if mark == MarkEmpty {
				cells = append(cells, Cell{Row: row, Col: col})
			}
		}
	}

	return cells
}

// Depth - number of empty cells, i.e. plies left until the board is full.
func (that *Board) Depth() int {
	return that.Count(MarkEmpty)
}

func (that *Board) IsFull() bool {
	return that.Depth() == 0
}

func (that *Board) IsLegalMove(row, col int) bool {
	cell := Cell{Row: row, Col: col}

	return cell.InBounds() && that.At(cell) == MarkEmpty
}

// ApplyMove - writes mark into the cell if the move is legal, otherwise leaves the board unchanged.
func (that *Board) ApplyMove(row, col int, mark Mark) bool {
	if !that.IsLegalMove(row, col) {
		return false
	}

	that[row][col] = mark

	return true
}

func (that *Board) Wins(mark Mark) bool {
	if mark == MarkEmpty {
		return false
	}

	for _, combo := range WinCombos {
		if that.At(combo[0]) == mark && that.At(combo[1]) == mark && that.At(combo[2]) == mark {
			return true
		}
	}

	return false
}

// IsTerminal - reports whether either side has won.
// A full board without a winner is a draw, but it is not terminal here:
// callers detect it through an empty EmptyCells result.
func (that *Board) IsTerminal(a, b Mark) bool {
	return that.Wins(a) || that.Wins(b)
}

// Count - number of cells holding mark.
func (that *Board) Count(mark Mark) int {
	count := 0
	for row := range that {
		for _, m := range that[row] {
			if m == mark {
				count++
			}
		}
	}

	return count
}
