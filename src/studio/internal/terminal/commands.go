package terminal

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/cockroachdb/errors"
	"github.com/veedubyou/split-studio/src/shared/playback"
)

type CommandKind string

const (
	Toggle   CommandKind = "p"
	Seek     CommandKind = "s"
	Download CommandKind = "d"
	Quit     CommandKind = "q"
	Help     CommandKind = "h"
)

// Commands is every command the prompt understands, in the order shown
var Commands = []CommandKind{Toggle, Seek, Download, Help, Quit}

const HelpText = `p          play / pause
s <0..1>   seek to a fraction of the track
d          download the track
h          show this help
q          quit`

// Completer offers every command at the start of the prompt
func Completer() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(Commands))
	for _, kind := range Commands {
		items = append(items, readline.PcItem(string(kind)))
	}

	return readline.NewPrefixCompleter(items...)
}

type Command struct {
	Kind     CommandKind
	Fraction float64
}

func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, errors.New("Empty command")
	}

	kind := CommandKind(strings.ToLower(fields[0]))
	switch kind {
	case Toggle, Download, Quit, Help:
		if len(fields) != 1 {
			return Command{}, errors.Newf("%s takes no arguments", kind)
		}
		return Command{Kind: kind}, nil

	case Seek:
		if len(fields) != 2 {
			return Command{}, errors.New("s needs a fraction, like s 0.5")
		}

		fraction, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return Command{}, errors.Wrapf(err, "%q is not a fraction", fields[1])
		}

		return Command{Kind: Seek, Fraction: fraction}, nil

	default:
		return Command{}, errors.Newf("Unknown command %q", fields[0])
	}
}

// Controller applies prompt commands to a single player
type Controller struct {
	player *playback.Player
	out    io.Writer
}

func NewController(player *playback.Player, out io.Writer) Controller {
	return Controller{
		player: player,
		out:    out,
	}
}

// Run returns true once the user asked to quit
func (c Controller) Run(ctx context.Context, command Command) (bool, error) {
	switch command.Kind {
	case Toggle:
		if err := c.player.TogglePlay(); err != nil {
			return false, errors.Wrap(err, "Failed to toggle playback")
		}

	case Seek:
		offset, err := c.player.SeekTo(command.Fraction)
		if err != nil {
			return false, errors.Wrap(err, "Failed to seek")
		}
		fmt.Fprintf(c.out, "at %s\n", playback.FormatTime(offset))

	case Download:
		outcome := c.player.Download(ctx)
		if outcome.FellBack {
			fmt.Fprintf(c.out, "could not download, get it from %s\n", outcome.FallbackURL)
		} else {
			fmt.Fprintf(c.out, "saved %s\n", outcome.SavedURL)
		}

	case Help:
		fmt.Fprintln(c.out, HelpText)

	case Quit:
		return true, nil

	default:
		return false, errors.Newf("Unhandled command %q", command.Kind)
	}

	return false, nil
}
