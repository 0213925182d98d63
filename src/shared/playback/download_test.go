package playback_test

import (
	"context"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/veedubyou/split-studio/src/shared/playback"
	"github.com/veedubyou/split-studio/src/shared/playback/playbackfakes"
	"github.com/veedubyou/split-studio/src/shared/testing/dummy"
)

var _ = Describe("Download", func() {
	type navigation struct {
		url      string
		filename string
	}

	var (
		fetcher     *playbackfakes.FakeFetcher
		saver       *playbackfakes.FakeSaver
		navigations []navigation
		downloader  playback.Downloader
		track       playback.Track
	)

	BeforeEach(func() {
		fetcher = &playbackfakes.FakeFetcher{}
		fetcher.FetchReturns([]byte("stem bytes"), nil)

		saver = &playbackfakes.FakeSaver{}
		saver.SaveReturns("/downloads/vocals_only.wav", nil)

		navigations = nil
		downloader = playback.Downloader{
			Fetcher: fetcher,
			Saver:   saver,
			Navigator: playback.NavigatorFunc(func(url string, filename string) {
				navigations = append(navigations, navigation{url: url, filename: filename})
			}),
		}

		track = playback.Track{
			Title: "Vocals Only",
			URL:   "https://audio-splitter-backend.fly.dev/out/v.wav",
		}
	})

	It("saves the fetched bytes under the derived filename", func() {
		outcome := downloader.Download(context.Background(), track)

		Expect(outcome).To(Equal(playback.DownloadOutcome{
			Filename: "vocals_only.wav",
			SavedURL: "/downloads/vocals_only.wav",
		}))

		Expect(fetcher.FetchCallCount()).To(Equal(1))
		_, fetchedURL := fetcher.FetchArgsForCall(0)
		Expect(fetchedURL).To(Equal(track.URL))

		_, filename, content := saver.SaveArgsForCall(0)
		Expect(filename).To(Equal("vocals_only.wav"))
		Expect(content).To(Equal([]byte("stem bytes")))
		Expect(navigations).To(BeEmpty())
	})

	Describe("When the fetch fails", func() {
		BeforeEach(func() {
			fetcher.FetchReturns(nil, dummy.NetworkFailure)
		})

		It("falls back to navigating to the raw url", func() {
			outcome := downloader.Download(context.Background(), track)

			Expect(outcome.FellBack).To(BeTrue())
			Expect(outcome.FallbackURL).To(Equal(track.URL))
			Expect(outcome.Filename).To(Equal("vocals_only.wav"))
			Expect(saver.SaveCallCount()).To(BeZero())
			Expect(navigations).To(Equal([]navigation{{url: track.URL, filename: "vocals_only.wav"}}))
		})
	})

	Describe("When the save fails", func() {
		BeforeEach(func() {
			saver.SaveReturns("", dummy.NetworkFailure)
		})

		It("falls back as well", func() {
			outcome := downloader.Download(context.Background(), track)
			Expect(outcome.FellBack).To(BeTrue())
			Expect(navigations).To(HaveLen(1))
		})
	})

	It("is reachable through the player", func() {
		source := dummy.NewDummyMediaSource(track.URL)
		player := playback.NewPlayer(track, source, downloader)

		outcome := player.Download(context.Background())
		Expect(outcome.SavedURL).To(Equal("/downloads/vocals_only.wav"))
	})

	Describe("HTTPFetcher", func() {
		var server *httptest.Server

		BeforeEach(func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/out/v.wav" {
					_, _ = w.Write([]byte("RIFF"))
					return
				}

				w.WriteHeader(http.StatusNotFound)
			}))
		})

		AfterEach(func() {
			server.Close()
		})

		It("returns the body", func() {
			content, err := playback.HTTPFetcher{}.Fetch(context.Background(), server.URL+"/out/v.wav")
			Expect(err).NotTo(HaveOccurred())
			Expect(content).To(Equal([]byte("RIFF")))
		})

		It("treats a failure status as a failed fetch", func() {
			_, err := playback.HTTPFetcher{}.Fetch(context.Background(), server.URL+"/out/missing.wav")
			Expect(err).To(HaveOccurred())
		})
	})
})
