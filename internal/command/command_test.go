package command

import (
	"bytes"
	"context"
	"flag"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newConfig() *config.Config {
	return &config.Config{
		LogLevel: "info",
		Bot:      config.Bot{Opening: "first", Seed: 2294},
		SelfPlay: config.SelfPlay{Games: 4, Threads: 2},
	}
}

// parseFlags - registers the command's flags and parses args into them.
func parseFlags(t *testing.T, cmd subcommands.Command, args ...string) *flag.FlagSet {
	t.Helper()

	flags := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(flags)
	require.NoError(t, flags.Parse(args))

	return flags
}

func TestAnalyze_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("Prints the score of every move and the best one", func(t *testing.T) {
		// Given: a position where X must block the middle column
		out := &bytes.Buffer{}
		cmd := NewAnalyze(newLogger(), out)
		flags := parseFlags(t, cmd, "-board", "XOX/.O./...")

		// When: analyzing it
		status := cmd.Execute(ctx, flags)

		// Then: every empty cell is listed and the block is the best move
		require.Equal(t, subcommands.ExitSuccess, status)

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 8)
		assert.Equal(t, "position XOX/.O./..., X to move", lines[0])
		assert.Equal(t, []string{"index", "cell", "score"}, strings.Fields(lines[1]))
		assert.Equal(t, []string{"4", "(1,0)", "-1"}, strings.Fields(lines[2]))
		assert.Equal(t, []string{"8", "(2,1)", "+0"}, strings.Fields(lines[5]))
		assert.True(t, strings.HasPrefix(lines[7], "best: 8 (2,1) score +0 (visited "), lines[7])
	})

	t.Run("Side can be given explicitly", func(t *testing.T) {
		out := &bytes.Buffer{}
		cmd := NewAnalyze(newLogger(), out)
		flags := parseFlags(t, cmd, "-board", "X.X/..O/XOO", "-side", "o")

		status := cmd.Execute(ctx, flags)

		require.Equal(t, subcommands.ExitSuccess, status)
		assert.Contains(t, out.String(), "position X.X/..O/XOO, O to move\n")
		assert.Contains(t, out.String(), "best: 2 (0,1) score -1")
	})

	t.Run("Finished position has no moves", func(t *testing.T) {
		out := &bytes.Buffer{}
		cmd := NewAnalyze(newLogger(), out)
		flags := parseFlags(t, cmd, "-board", "XOX/OXO/O.X")

		status := cmd.Execute(ctx, flags)

		require.Equal(t, subcommands.ExitSuccess, status)
		assert.Equal(t, "position XOX/OXO/O.X, X to move\ngame over, score +1\n", out.String())
	})

	t.Run("Bad input is a usage error", func(t *testing.T) {
		for _, args := range [][]string{
			{},
			{"-board", "XOX"},
			{"-board", "XOX/.O./...", "-side", "Z"},
		} {
			out := &bytes.Buffer{}
			cmd := NewAnalyze(newLogger(), out)
			flags := parseFlags(t, cmd, args...)

			assert.Equal(t, subcommands.ExitUsageError, cmd.Execute(ctx, flags), args)
			assert.Empty(t, out.String())
		}
	})
}

func TestSideToMove(t *testing.T) {
	for s, expected := range map[string]entity.Mark{
		".........":   entity.MarkX,
		"X......../":  entity.MarkO,
		"XO./.../...": entity.MarkX,
		"O../.../...": entity.MarkX,
	} {
		board, err := entity.ParseBoard(s)
		require.NoError(t, err)

		assert.Equal(t, expected, sideToMove(&board), s)
	}
}

func TestPlay_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("Human moving first with flags loses to a blunder", func(t *testing.T) {
		// Given: the human plays X first and types the numpad in order
		out := &bytes.Buffer{}
		cmd := NewPlay(newLogger(), newConfig(), strings.NewReader("1\n2\n3\n4\n5\n6\n7\n8\n9\n"), out)
		parseFlags(t, cmd, "-mark", "X", "-first", "yes")

		// When: the game is played
		game, err := cmd.run(ctx)

		// Then: the engine punishes the open diagonal
		require.NoError(t, err)
		assert.Equal(t, entity.StateWonByO, game.State)
		assert.Equal(t, "XXO/XO./O..", game.Board.String())
		assert.Equal(t, 1, strings.Count(out.String(), "Bad move"))
		assert.True(t, strings.HasSuffix(out.String(), "YOU LOSE!\n"))
	})

	t.Run("Choices are asked at the terminal", func(t *testing.T) {
		// Given: the human picks O, lets the engine open and then types the numpad in order
		out := &bytes.Buffer{}
		cmd := NewPlay(newLogger(), newConfig(), strings.NewReader("o\nn\n1\n2\n3\n4\n5\n6\n7\n8\n9\n"), out)
		parseFlags(t, cmd)

		// When: the game is played
		game, err := cmd.run(ctx)

		// Then: the engine opens in the corner and wins
		require.NoError(t, err)
		assert.Equal(t, entity.Cell{Row: 0, Col: 0}, game.Moves[0])
		assert.Equal(t, entity.StateWonByX, game.State)
		assert.Equal(t, "XOO/XXO/X..", game.Board.String())
		assert.Equal(t, 3, strings.Count(out.String(), "Bad move"))
		assert.NotContains(t, out.String(), "YOU WIN!")
	})

	t.Run("Invalid first flag is rejected", func(t *testing.T) {
		cmd := NewPlay(newLogger(), newConfig(), strings.NewReader(""), io.Discard)
		parseFlags(t, cmd, "-mark", "X", "-first", "maybe")

		_, err := cmd.run(ctx)

		assert.ErrorIs(t, err, ErrInvalidFirst)
	})

	t.Run("Invalid opening is rejected", func(t *testing.T) {
		cmd := NewPlay(newLogger(), newConfig(), strings.NewReader(""), io.Discard)
		flags := parseFlags(t, cmd, "-mark", "O", "-first", "n", "-opening", "center")

		assert.Equal(t, subcommands.ExitFailure, cmd.Execute(ctx, flags))
	})

	t.Run("Closed input quits quietly", func(t *testing.T) {
		out := &bytes.Buffer{}
		cmd := NewPlay(newLogger(), newConfig(), strings.NewReader(""), out)
		flags := parseFlags(t, cmd)

		assert.Equal(t, subcommands.ExitSuccess, cmd.Execute(ctx, flags))
		assert.Contains(t, out.String(), "Bye")
	})
}

func TestSelfPlay(t *testing.T) {
	ctx := context.Background()

	t.Run("Engines always draw", func(t *testing.T) {
		// Given: a handful of games over two workers
		out := &bytes.Buffer{}
		cmd := NewSelfPlay(newLogger(), newConfig(), out)
		flags := parseFlags(t, cmd, "-opening", "random", "-games", "6", "-threads", "2")

		// When: running the self-play
		status := cmd.Execute(ctx, flags)

		// Then: every game is drawn
		require.Equal(t, subcommands.ExitSuccess, status)
		assert.Equal(t, "games=6 x=0 o=0 draws=6\n", out.String())
	})

	t.Run("Summary keeps every game", func(t *testing.T) {
		cmd := NewSelfPlay(newLogger(), newConfig(), io.Discard)
		parseFlags(t, cmd, "-games", "3", "-threads", "8")

		summary, err := cmd.simulate(ctx)

		require.NoError(t, err)
		assert.Equal(t, 3, summary.Games)
		assert.Equal(t, 3, summary.Draws)
		require.NotNil(t, summary.Sample)
		assert.True(t, summary.Sample.Board.IsFull())
	})

	t.Run("Unknown opening fails", func(t *testing.T) {
		cmd := NewSelfPlay(newLogger(), newConfig(), io.Discard)
		flags := parseFlags(t, cmd, "-opening", "center")

		assert.Equal(t, subcommands.ExitFailure, cmd.Execute(ctx, flags))
	})
}

func TestSummary_Add(t *testing.T) {
	summary := &Summary{}
	draw := &entity.Game{State: entity.StateDraw}
	win := &entity.Game{State: entity.StateWonByO}

	summary.add(draw)
	summary.add(win)
	summary.add(draw)

	assert.Equal(t, Summary{Games: 3, WinsO: 1, Draws: 2, Sample: win}, *summary)
}
