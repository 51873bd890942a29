package command

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/subcommands"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/cli"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var ErrInvalidFirst = errors.New("first must be y or n")

type Play struct {
	logger *slog.Logger
	conf   *config.Config
	in     io.Reader
	out    io.Writer

	mark    string
	first   string
	opening string
	seed    int64
}

func NewPlay(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) *Play {
	return &Play{
		logger: logger.With("component", "play"),
		conf:   conf,
		in:     in,
		out:    out,
	}
}

func (*Play) Name() string     { return "play" }
func (*Play) Synopsis() string { return "Play tic-tac-toe against the minimax engine" }
func (*Play) Usage() string {
	return `play [flags]

Play on the command line against the engine. Cells are chosen with the
numpad layout, 1 being the top left and 9 the bottom right corner.
`
}

func (that *Play) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&that.mark, "mark", that.conf.Player.Mark, "your mark, X or O (asked if empty)")
	flags.StringVar(&that.first, "first", that.conf.Player.First, "whether you move first, y or n (asked if empty)")
	flags.StringVar(&that.opening, "opening", that.conf.Bot.Opening, "engine opening policy: random, first or search")
	flags.Int64Var(&that.seed, "seed", that.conf.Bot.Seed, "seed for the random opening")
}

func (that *Play) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, err := that.run(ctx)
	switch {
	case err == nil, errors.Is(err, cli.ErrInputClosed):
		return subcommands.ExitSuccess
	default:
		that.logger.Error("play failed", "error", err)
		return subcommands.ExitFailure
	}
}

func (that *Play) run(ctx context.Context) (*entity.Game, error) {
	terminal := cli.NewTerminal(that.in, that.out)

	humanMark, err := that.humanMark(terminal)
	if err != nil {
		return nil, err
	}

	humanFirst, err := that.humanFirst(terminal)
	if err != nil {
		return nil, err
	}

	botMark := entity.Opposite(humanMark)

	bot, err := service.NewBotService(that.logger, botMark, that.opening, that.seed)
	if err != nil {
		return nil, fmt.Errorf("could not create bot: %w", err)
	}

	controller, err := tictactoe.NewGameController(
		that.logger,
		terminal,
		terminal.NewHumanPlayer(humanMark),
		tictactoe.NewBotPlayer(botMark, bot),
	)
	if err != nil {
		return nil, fmt.Errorf("could not create game: %w", err)
	}

	first := botMark
	if humanFirst {
		first = humanMark
	}

	return controller.Play(ctx, first)
}

func (that *Play) humanMark(terminal *cli.Terminal) (entity.Mark, error) {
	if that.mark == "" {
		return terminal.ChooseMark()
	}

	mark, err := entity.ParseMark(that.mark)
	if err != nil {
		return entity.MarkEmpty, fmt.Errorf("invalid -mark: %w", err)
	}

	return mark, nil
}

func (that *Play) humanFirst(terminal *cli.Terminal) (bool, error) {
	switch strings.ToLower(that.first) {
	case "":
		return terminal.ChooseFirst()
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidFirst, that.first)
	}
}
