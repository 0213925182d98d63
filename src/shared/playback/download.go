package playback

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . Fetcher
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Saver stores downloaded bytes under a filename and returns where they ended up
//
//counterfeiter:generate . Saver
type Saver interface {
	Save(ctx context.Context, filename string, content []byte) (string, error)
}

// Navigator hands the raw URL to the host as a direct download target
type Navigator interface {
	Open(url string, filename string)
}

type NavigatorFunc func(url string, filename string)

func (n NavigatorFunc) Open(url string, filename string) {
	n(url, filename)
}

type DownloadOutcome struct {
	Filename    string
	SavedURL    string
	FellBack    bool
	FallbackURL string
}

type Downloader struct {
	Fetcher   Fetcher
	Saver     Saver
	Navigator Navigator
}

// DownloadFilename is the lowercased title with spaces turned into
// underscores, always with a .wav extension
func DownloadFilename(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "_") + ".wav"
}

// Download fetches and saves the track. Any failure along the way degrades
// to handing the URL to the navigator instead.
func (d Downloader) Download(ctx context.Context, track Track) DownloadOutcome {
	filename := DownloadFilename(track.Title)
	logger := log.WithFields(log.Fields{
		"title":    track.Title,
		"url":      track.URL,
		"filename": filename,
	})

	savedURL, err := d.fetchAndSave(ctx, track.URL, filename)
	if err != nil {
		logger.WithError(err).Debug("Download failed, falling back to direct navigation")
		if d.Navigator != nil {
			d.Navigator.Open(track.URL, filename)
		}

		return DownloadOutcome{
			Filename:    filename,
			FellBack:    true,
			FallbackURL: track.URL,
		}
	}

	logger.WithField("saved_url", savedURL).Info("Track downloaded")
	return DownloadOutcome{
		Filename: filename,
		SavedURL: savedURL,
	}
}

func (d Downloader) fetchAndSave(ctx context.Context, url string, filename string) (string, error) {
	if d.Fetcher == nil || d.Saver == nil {
		return "", errors.New("Downloader has no fetcher or saver")
	}

	content, err := d.Fetcher.Fetch(ctx, url)
	if err != nil {
		return "", errors.Wrap(err, "Failed to fetch track")
	}

	savedURL, err := d.Saver.Save(ctx, filename, content)
	if err != nil {
		return "", errors.Wrap(err, "Failed to save track")
	}

	return savedURL, nil
}

var _ Fetcher = HTTPFetcher{}

type HTTPFetcher struct {
	Client *http.Client
}

func (h HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create fetch request")
	}

	response, err := client.Do(request)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to fetch url")
	}

	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, errors.Newf("Fetch returned status %d", response.StatusCode)
	}

	content, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read fetched body")
	}

	return content, nil
}
