package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/chzyer/readline"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/veedubyou/split-studio/src/shared/hostmedia"
	"github.com/veedubyou/split-studio/src/shared/playback"
	"github.com/veedubyou/split-studio/src/shared/stemstore/store"
	"github.com/veedubyou/split-studio/src/studio/internal/terminal"
)

var (
	playTitle   string
	playSaveDir string
)

func init() {
	playCmd.Flags().StringVar(&playTitle, "title", "", "title shown next to the progress bar, also names downloads")
	playCmd.Flags().StringVar(&playSaveDir, "save-dir", ".", "where d saves the track")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play <relative-path>",
	Short: "Plays a stem the backend produced",
	Long:  `Plays a path returned by split, like /out/song_vocals.wav, with an interactive prompt.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := splitClient().GetAudioURL(args[0])

		title := playTitle
		if title == "" {
			title = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		}

		exec, hostConfig := hostMedia(true)
		source := hostmedia.NewFFSource(url, exec, hostConfig)

		player := playback.NewPlayer(playback.Track{Title: title, URL: url}, source, playback.Downloader{
			Fetcher: playback.HTTPFetcher{},
			Saver:   store.LocalDirSaver{Dir: playSaveDir},
		})
		defer func() {
			if err := player.Close(); err != nil {
				log.WithError(err).Error("Failed to close player")
			}
		}()

		return runPrompt(cmd, player, source)
	},
}

func runPrompt(cmd *cobra.Command, player *playback.Player, source playback.MediaSource) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "studio> ",
		HistoryFile: filepath.Join(homeDir, ".split_studio_history"),
		AutoComplete: terminal.Completer(),
	})
	if err != nil {
		return errors.Wrap(err, "Failed to start prompt")
	}
	defer rl.Close()

	renderer := terminal.NewProgressRenderer(player, rl.Stdout(), terminal.DefaultRenderWait)
	unsubscribe := source.Subscribe(renderer.Notify)
	defer func() {
		unsubscribe()
		renderer.Stop()
	}()

	controller := terminal.NewController(player, rl.Stdout())
	fmt.Fprintln(rl.Stdout(), terminal.HelpText)

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			return nil
		}
		if err != nil {
			// io.EOF on ctrl-d
			return nil
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		command, err := terminal.ParseCommand(line)
		if err != nil {
			fmt.Fprintln(rl.Stdout(), err.Error())
			continue
		}

		quit, err := controller.Run(cmd.Context(), command)
		if err != nil {
			fmt.Fprintln(rl.Stdout(), err.Error())
		}
		if quit {
			return nil
		}
	}
}
