package tictactoe

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type botService interface {
	ChooseMove(game *entity.Game) (entity.Cell, error)
}

type BotPlayer struct {
	info *entity.Player
	bot  botService
}

func NewBotPlayer(mark entity.Mark, bot botService) *BotPlayer {
	return &BotPlayer{
		info: entity.NewBotPlayer(mark),
		bot:  bot,
	}
}

func (that *BotPlayer) Info() *entity.Player {
	return that.info
}

func (that *BotPlayer) GetMove(_ context.Context, game *entity.Game) (entity.Cell, error) {
	cell, err := that.bot.ChooseMove(game)
	if err != nil {
		return entity.Cell{}, fmt.Errorf("bot failed to choose a move: %w", err)
	}

	return cell, nil
}

// isRetryable - the mover may pick again after these errors, the game is unchanged.
func isRetryable(err error) bool {
	return errors.Is(err, apperror.ErrCellOccupied) || errors.Is(err, entity.ErrInvalidCell)
}
