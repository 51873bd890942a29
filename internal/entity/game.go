package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

// State is the state of a single game. Every state but StateInProgress is terminal.
type State string

const (
	StateInProgress State = "in_progress"
	StateWonByX     State = "won_by_x"
	StateWonByO     State = "won_by_o"
	StateDraw       State = "draw"
)

var (
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrUnknownState = errors.New("unknown game state")
)

type Game struct {
	Board Board
	Turn  Mark
	State State
	Moves []Cell
}

// NewGame - creates an empty game where first moves first.
func NewGame(first Mark) *Game {
	return &Game{
		Turn:  first,
		State: StateInProgress,
	}
}

// MakeTurn - places mark on the cell and moves the game through its state machine.
func (that *Game) MakeTurn(mark Mark, row, col int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	cell := Cell{Row: row, Col: col}
	if !cell.InBounds() {
		return fmt.Errorf("%w: cell %s", ErrInvalidCell, cell)
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if !that.Board.ApplyMove(row, col, mark) {
		return apperror.ErrCellOccupied
	}

	that.Moves = append(that.Moves, cell)
	that.UpdateGameState(mark)

	return nil
}

// UpdateGameState - resolves the state after mover has played.
func (that *Game) UpdateGameState(mover Mark) {
	switch {
	case that.Board.Wins(mover):
		that.State = wonBy(mover)
		that.Turn = MarkEmpty
	case that.Board.IsFull():
		that.State = StateDraw
		that.Turn = MarkEmpty
	default:
		that.State = StateInProgress
		that.Turn = Opposite(mover)
	}
}

// Winner - the side that won, MarkEmpty for a draw or an unfinished game.
func (that *Game) Winner() Mark {
	switch that.State {
	case StateWonByX:
		return MarkX
	case StateWonByO:
		return MarkO
	default:
		return MarkEmpty
	}
}

func (that *Game) IsFinished() bool {
	return that.State == StateWonByX || that.State == StateWonByO || that.State == StateDraw
}

func (that *Game) IsOngoing() bool {
	return that.State == StateInProgress
}

func (that *Game) IsDraw() bool {
	return that.State == StateDraw
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownState, that.State)
	}
}

func wonBy(mark Mark) State {
	if mark == MarkX {
		return StateWonByX
	}

	return StateWonByO
}
