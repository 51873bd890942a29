package service

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
)

// Opening policies for the first move on an empty board.
const (
	OpeningRandom = "random"
	OpeningFirst  = "first"
	OpeningSearch = "search"
)

var (
	ErrNoAvailableMoves  = errors.New("no available moves")
	ErrUnknownOpening    = errors.New("unknown opening policy")
	ErrSearchReturnedNil = errors.New("search returned no move")
)

type BotService interface {
	ChooseMove(game *entity.Game) (entity.Cell, error)
	MakeTurn(game *entity.Game) (entity.Cell, error)
}

type botService struct {
	logger *slog.Logger

	mark    entity.Mark
	opening string
	rnd     *rand.Rand
	engine  *minimax.Engine
}

func NewBotService(logger *slog.Logger, mark entity.Mark, opening string, seed int64) (BotService, error) {
	switch opening {
	case OpeningRandom, OpeningFirst, OpeningSearch:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOpening, opening)
	}

	return &botService{
		logger:  logger.With("component", "bot", "mark", mark.String()),
		mark:    mark,
		opening: opening,
		rnd:     rand.New(rand.NewSource(seed)), //nolint: gosec // deterministic openings are wanted
		engine:  minimax.New(mark),
	}, nil
}

// ChooseMove - picks the bot's next cell without changing the game.
func (that *botService) ChooseMove(game *entity.Game) (entity.Cell, error) {
	if game.IsFinished() {
		return entity.Cell{}, apperror.ErrGameFinished
	}

	depth := game.Board.Depth()
	if depth == 0 || that.engine.IsTerminal(&game.Board) {
		return entity.Cell{}, ErrNoAvailableMoves
	}

	if depth == entity.BoardSize*entity.BoardSize && that.opening != OpeningSearch {
		return that.openingMove(), nil
	}

	that.engine.ResetStats()
	result := that.engine.Minimax(&game.Board, depth, that.mark)
	if !result.IsMove() {
		return entity.Cell{}, ErrSearchReturnedNil
	}

	st := that.engine.Stats()
	that.logger.Debug("search finished",
		"depth", depth,
		"cell", result.Cell().String(),
		"score", result.Score,
		"visited", st.Visited,
		"evaluated", st.Evaluated,
	)

	return result.Cell(), nil
}

// MakeTurn - chooses a cell and plays it.
func (that *botService) MakeTurn(game *entity.Game) (entity.Cell, error) {
	cell, err := that.ChooseMove(game)
	if err != nil {
		return entity.Cell{}, err
	}

	if err = game.MakeTurn(that.mark, cell.Row, cell.Col); err != nil {
		return entity.Cell{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return cell, nil
}

// openingMove - the empty board shortcut, no search is run.
func (that *botService) openingMove() entity.Cell {
	if that.opening == OpeningFirst {
		return entity.Cell{Row: 0, Col: 0}
	}

	return entity.Cell{
		Row: that.rnd.Intn(entity.BoardSize),
		Col: that.rnd.Intn(entity.BoardSize),
	}
}
