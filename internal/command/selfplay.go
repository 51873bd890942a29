package command

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
)

var ErrDecisiveGame = errors.New("engine lost a game against itself")

const prime = 1099511628211

type SelfPlay struct {
	logger *slog.Logger
	conf   *config.Config
	out    io.Writer

	games   int
	threads int
	opening string
	seed    int64
}

// Summary counts the outcomes of a self-play run.
type Summary struct {
	Games  int
	WinsX  int
	WinsO  int
	Draws  int
	Sample *entity.Game
}

func NewSelfPlay(logger *slog.Logger, conf *config.Config, out io.Writer) *SelfPlay {
	return &SelfPlay{
		logger: logger.With("component", "selfplay"),
		conf:   conf,
		out:    out,
	}
}

func (*SelfPlay) Name() string     { return "selfplay" }
func (*SelfPlay) Synopsis() string { return "Play the engine against itself and report results" }
func (*SelfPlay) Usage() string {
	return `selfplay [flags]

Plays games between two engines. Perfect play on both sides always ends in
a draw, so any decisive game is reported as a failure.
`
}

func (that *SelfPlay) SetFlags(flags *flag.FlagSet) {
	flags.IntVar(&that.games, "games", that.conf.SelfPlay.Games, "number of games to play")
	flags.IntVar(&that.threads, "threads", that.conf.SelfPlay.Threads, "number of parallel games")
	flags.StringVar(&that.opening, "opening", that.conf.Bot.Opening, "opening policy: random, first or search")
	flags.Int64Var(&that.seed, "seed", that.conf.Bot.Seed, "starting random seed")
}

func (that *SelfPlay) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	summary, err := that.simulate(ctx)
	if err != nil {
		that.logger.Error("selfplay failed", "error", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(that.out, "games=%d x=%d o=%d draws=%d\n", summary.Games, summary.WinsX, summary.WinsO, summary.Draws)

	if summary.WinsX+summary.WinsO > 0 {
		that.logger.Error("selfplay failed", "error", ErrDecisiveGame, "sample", summary.Sample.Board.String())
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

func (that *SelfPlay) simulate(ctx context.Context) (*Summary, error) {
	threads := max(that.threads, 1)
	todo := int64(that.games)

	var (
		mu      sync.Mutex
		summary = &Summary{}
	)

	grp, ctx := errgroup.WithContext(ctx)
	for id := range threads {
		grp.Go(func() error {
			x, err := service.NewBotService(that.logger, entity.MarkX, that.opening, prime*that.seed+int64(id))
			if err != nil {
				return fmt.Errorf("could not create bot: %w", err)
			}

			o, err := service.NewBotService(that.logger, entity.MarkO, that.opening, prime*that.seed+int64(id)+1)
			if err != nil {
				return fmt.Errorf("could not create bot: %w", err)
			}

			bots := map[entity.Mark]service.BotService{entity.MarkX: x, entity.MarkO: o}

			for atomic.AddInt64(&todo, -1) >= 0 {
				if err = ctx.Err(); err != nil {
					return err
				}

				game, err := playGame(bots)
				if err != nil {
					return err
				}

				mu.Lock()
				summary.add(game)
				mu.Unlock()
			}

			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}

	that.logger.Info("selfplay finished", "games", summary.Games, "draws", summary.Draws)

	return summary, nil
}

func playGame(bots map[entity.Mark]service.BotService) (*entity.Game, error) {
	game := entity.NewGame(entity.MarkX)

	for game.IsOngoing() {
		if _, err := bots[game.Turn].MakeTurn(game); err != nil {
			return game, fmt.Errorf("move %d: %w", len(game.Moves)+1, err)
		}
	}

	return game, nil
}

func (that *Summary) add(game *entity.Game) {
	that.Games++

	switch game.State {
	case entity.StateWonByX:
		that.WinsX++
	case entity.StateWonByO:
		that.WinsO++
	case entity.StateDraw:
		that.Draws++
	}

	if that.Sample == nil || !game.IsDraw() {
		that.Sample = game
	}
}
