package cmd

import (
	"github.com/apex/log"
	"github.com/spf13/cobra"
	"github.com/veedubyou/split-studio/src/shared/config"
	"github.com/veedubyou/split-studio/src/shared/config/envvar"
	"github.com/veedubyou/split-studio/src/shared/executor"
	"github.com/veedubyou/split-studio/src/shared/hostmedia"
	"github.com/veedubyou/split-studio/src/shared/splitclient"
)

var (
	backendOrigin string
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "studio",
	Short: "Split songs into vocals and instrumental",
	Long:  `Uploads a song to the audio splitter backend and plays back the separated stems.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.WarnLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendOrigin, "backend", splitclient.DefaultConfig().Origin, "origin of the audio splitter backend")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log everything")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func splitClient() splitclient.Client {
	clientConfig := splitclient.DefaultConfig()
	clientConfig.Origin = backendOrigin
	return splitclient.NewClient(clientConfig)
}

// hostMedia looks the binaries up on PATH unless they're set in the
// environment. Without resolve, a missing binary only shows up when it runs.
func hostMedia(resolve bool) (executor.Executor, hostmedia.Config) {
	ffplay := envvar.GetOr(envvar.FFPLAY_BIN_PATH, "")
	ffprobe := envvar.GetOr(envvar.FFPROBE_BIN_PATH, "")

	if ffplay == "" {
		ffplay = "ffplay"
		if resolve {
			ffplay = config.FFPlayPath()
		}
	}

	if ffprobe == "" {
		ffprobe = "ffprobe"
		if resolve {
			ffprobe = config.FFProbePath()
		}
	}

	return executor.BinaryFileExecutor{}, hostmedia.Config{
		FFPlayPath:   ffplay,
		FFProbePath:  ffprobe,
		TickInterval: hostmedia.DefaultTickInterval,
	}
}
