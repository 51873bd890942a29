package tictactoe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

var (
	ErrSameMark    = errors.New("players must use different marks")
	ErrInvalidMark = errors.New("player mark must be X or O")
)

// Player chooses moves for one side.
type Player interface {
	Info() *entity.Player
	GetMove(ctx context.Context, game *entity.Game) (entity.Cell, error)
}

// Renderer shows the game to whoever is watching.
type Renderer interface {
	Turn(player *entity.Player, game *entity.Game)
	IllegalMove(player *entity.Player, cell entity.Cell, err error)
	Outcome(game *entity.Game, players map[entity.Mark]*entity.Player)
}

type GameController struct {
	logger   *slog.Logger
	renderer Renderer

	players map[entity.Mark]Player
}

func NewGameController(logger *slog.Logger, renderer Renderer, a, b Player) (*GameController, error) {
	markA, markB := a.Info().Mark, b.Info().Mark

	if markA == entity.MarkEmpty || markB == entity.MarkEmpty {
		return nil, ErrInvalidMark
	}

	if markA == markB {
		return nil, fmt.Errorf("%w: both play %s", ErrSameMark, markA)
	}

	return &GameController{
		logger:   logger.With("component", "game_controller"),
		renderer: renderer,
		players: map[entity.Mark]Player{
			markA: a,
			markB: b,
		},
	}, nil
}

// Play - runs one game from the empty board until it is won or drawn.
func (that *GameController) Play(ctx context.Context, first entity.Mark) (*entity.Game, error) {
	log := that.logger.With("method", "Play")

	if _, ok := that.players[first]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMark, first)
	}

	game := entity.NewGame(first)

	for game.IsOngoing() {
		if err := ctx.Err(); err != nil {
			return game, fmt.Errorf("game interrupted: %w", err)
		}

		player := that.players[game.Turn]
		info := player.Info()

		that.renderer.Turn(info, game)

		cell, err := player.GetMove(ctx, game)
		if err != nil {
			return game, fmt.Errorf("%s failed to choose a move: %w", info.Name, err)
		}

		if err = game.MakeTurn(info.Mark, cell.Row, cell.Col); err != nil {
			if !isRetryable(err) {
				return game, fmt.Errorf("failed to make turn: %w", err)
			}

			log.Warn("illegal move", "player", info.Name, "cell", cell.String(), "error", err)
			that.renderer.IllegalMove(info, cell, err)

			continue
		}

		log.Debug("move played", "player", info.Name, "mark", info.Mark.String(), "cell", cell.String(), "board", game.Board.String())
	}

	infos := make(map[entity.Mark]*entity.Player, len(that.players))
	for mark, player := range that.players {
		infos[mark] = player.Info()
	}

	that.renderer.Outcome(game, infos)

	log.Info("game finished", "state", string(game.State), "moves", len(game.Moves))

	return game, nil
}
