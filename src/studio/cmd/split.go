package cmd

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/veedubyou/split-studio/src/shared/events"
	"github.com/veedubyou/split-studio/src/shared/hostmedia"
	"github.com/veedubyou/split-studio/src/shared/intake"
	"github.com/veedubyou/split-studio/src/shared/orchestrator"
	"github.com/veedubyou/split-studio/src/shared/playback"
	"github.com/veedubyou/split-studio/src/shared/split/entity"
	"github.com/veedubyou/split-studio/src/shared/stemstore/store"
)

var saveDir string

func init() {
	splitCmd.Flags().StringVar(&saveDir, "save-dir", "", "download both stems into this directory")
	rootCmd.AddCommand(splitCmd)
}

var splitCmd = &cobra.Command{
	Use:   "split <file>",
	Short: "Splits a song into vocals and instrumental",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := readUpload(args[0])
		if err != nil {
			return err
		}

		return runSplit(cmd.Context(), cmd.OutOrStdout(), file)
	},
}

// readUpload guesses the media type from the extension first, then from
// the content
func readUpload(path string) (splitentity.UploadedFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return splitentity.UploadedFile{}, errors.Wrapf(err, "Failed to read %s", path)
	}

	mediaType := mime.TypeByExtension(filepath.Ext(path))
	if mediaType == "" {
		mediaType = http.DetectContentType(content)
	}

	if len(content) > intake.AdvisoryMaxSize {
		fmt.Fprintf(os.Stderr, "warning: %s is larger than 50MB, the backend may refuse it\n", filepath.Base(path))
	}

	return splitentity.UploadedFile{
		Name:      filepath.Base(path),
		MediaType: mediaType,
		Content:   content,
	}, nil
}

func runSplit(ctx context.Context, out io.Writer, file splitentity.UploadedFile) error {
	finished := make(chan orchestrator.Transition, 1)
	watchFinish := orchestrator.ObserverFunc(func(transition orchestrator.Transition) {
		if transition.To != orchestrator.Result && transition.To != orchestrator.Error {
			return
		}

		select {
		case finished <- transition:
		default:
		}
	})

	exec, hostConfig := hostMedia(false)
	downloader := playback.Downloader{
		Fetcher: playback.HTTPFetcher{},
		Navigator: playback.NavigatorFunc(func(url string, filename string) {
			fmt.Fprintf(out, "could not save %s, download it from %s\n", filename, url)
		}),
	}
	if saveDir != "" {
		downloader.Saver = store.LocalDirSaver{Dir: saveDir}
	}

	page := orchestrator.NewPage(orchestrator.Config{
		SessionID: uuid.NewString(),
		Splitter:  splitClient(),
		Sources: func(_ orchestrator.Stem, url string) playback.MediaSource {
			return hostmedia.NewFFSource(url, exec, hostConfig)
		},
		Downloader: downloader,
		Observers:  []orchestrator.Observer{events.LogObserver{}, watchFinish},
	})
	defer page.Close()

	outcome, err := page.Intake().Pick([]splitentity.UploadedFile{file})
	if err != nil {
		return errors.Wrap(err, "Failed to submit file")
	}
	if outcome != intake.Submitted {
		return errors.Newf("%s was not submitted (%s)", file.Name, outcome)
	}

	fmt.Fprintf(out, "splitting %s...\n", file.Name)

	var transition orchestrator.Transition
	select {
	case transition = <-finished:
	case <-ctx.Done():
		page.Reset()
		return errors.Wrap(ctx.Err(), "Gave up waiting for the split")
	}

	if transition.To == orchestrator.Error {
		return errors.Newf("split failed: %s", transition.Message)
	}

	for _, track := range page.Tracks() {
		fmt.Fprintf(out, "%-13s %s\n", track.Title, track.URL)
	}

	if saveDir == "" {
		return nil
	}

	if err := os.MkdirAll(saveDir, 0o755); err != nil {
		return errors.Wrapf(err, "Failed to create %s", saveDir)
	}

	for _, track := range page.Tracks() {
		downloaded := track.Player.Download(ctx)
		if !downloaded.FellBack {
			fmt.Fprintf(out, "saved %s\n", downloaded.SavedURL)
		}
	}

	return nil
}
