package session_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/veedubyou/split-studio/src/server/internal/session/bridge"
	"github.com/veedubyou/split-studio/src/server/internal/session/entity"
	"github.com/veedubyou/split-studio/src/server/internal/session/errors"
	"github.com/veedubyou/split-studio/src/server/internal/session/gateway"
	"github.com/veedubyou/split-studio/src/server/internal/session/usecase"
	"github.com/veedubyou/split-studio/src/shared/history"
	"github.com/veedubyou/split-studio/src/shared/history/entity"
	"github.com/veedubyou/split-studio/src/shared/history/entity/historyentityfakes"
	"github.com/veedubyou/split-studio/src/shared/playback"
	"github.com/veedubyou/split-studio/src/shared/playback/playbackfakes"
	"github.com/veedubyou/split-studio/src/shared/split/entity"
	"github.com/veedubyou/split-studio/src/shared/splitclient"
	"github.com/veedubyou/split-studio/src/shared/splitclient/splitclientfakes"
	testlib "github.com/veedubyou/split-studio/src/shared/testing"
)

var _ = Describe("Session", func() {
	const (
		vocalsURL       = "https://audio-splitter-backend.fly.dev/out/song_vocals.wav"
		instrumentalURL = "https://audio-splitter-backend.fly.dev/out/song_karaoke.wav"
	)

	var (
		splitter       *splitclientfakes.FakeSplitService
		fetcher        *playbackfakes.FakeFetcher
		saver          *playbackfakes.FakeSaver
		historyStore   *historyentityfakes.FakeStore
		usecaseConfig  sessionusecase.Config
		sessionGateway sessiongateway.Gateway

		release      chan struct{}
		releaseOnce  *sync.Once
		releaseSplit func()
	)

	BeforeEach(func() {
		release = make(chan struct{})
		releaseOnce = &sync.Once{}
		releaseSplit = func() {
			releaseOnce.Do(func() { close(release) })
		}
		DeferCleanup(func() { releaseSplit() })

		splitter = &splitclientfakes.FakeSplitService{}
		splitter.GetAudioURLStub = splitclient.NewClient(splitclient.DefaultConfig()).GetAudioURL
		splitter.SplitAudioStub = func(_ context.Context, _ splitentity.UploadedFile) (splitentity.SplitResult, error) {
			<-release
			return splitentity.SplitResult{
				Vocals:  "/out/song_vocals.wav",
				Karaoke: "/out/song_karaoke.wav",
			}, nil
		}

		fetcher = &playbackfakes.FakeFetcher{}
		fetcher.FetchReturns([]byte("RIFF"), nil)
		saver = &playbackfakes.FakeSaver{}
		saver.SaveReturns("https://storage.googleapis.com/stems/session/vocals_only.wav", nil)
		historyStore = &historyentityfakes.FakeStore{}

		usecaseConfig = sessionusecase.Config{
			Splitter: splitter,
			Fetcher:  fetcher,
			Savers: func(_ string) playback.Saver {
				return saver
			},
		}
	})

	JustBeforeEach(func() {
		usecase := sessionusecase.NewUsecase(usecaseConfig)
		DeferCleanup(usecase.Close)
		sessionGateway = sessiongateway.NewGateway(usecase)
	})

	createSession := func() string {
		request := testlib.RequestFactory{
			Method: "POST",
			Target: "/sessions",
		}.MakeFake()
		response := httptest.NewRecorder()

		err := sessionGateway.CreateSession(testlib.PrepareEchoContext(request, response))
		Expect(err).NotTo(HaveOccurred())
		Expect(response.Code).To(Equal(http.StatusCreated))

		session := testlib.DecodeJSON[sessionentity.SessionView](response.Body)
		Expect(session.ID).NotTo(BeEmpty())
		return session.ID
	}

	getSession := func(sessionID string) *httptest.ResponseRecorder {
		request := testlib.RequestFactory{
			Method: "GET",
			Target: fmt.Sprintf("/sessions/%s", sessionID),
		}.MakeFake()
		response := httptest.NewRecorder()

		err := sessionGateway.GetSession(testlib.PrepareEchoContext(request, response), sessionID)
		Expect(err).NotTo(HaveOccurred())
		return response
	}

	sessionView := func(sessionID string) sessionentity.SessionView {
		response := getSession(sessionID)
		Expect(response.Code).To(Equal(http.StatusOK))
		return testlib.DecodeJSON[sessionentity.SessionView](response.Body)
	}

	phaseOf := func(sessionID string) func() string {
		return func() string {
			return sessionView(sessionID).Phase
		}
	}

	upload := func(kind string, sessionID string, file *testlib.MultipartFile) *httptest.ResponseRecorder {
		request := testlib.RequestFactory{
			Method:    "POST",
			Target:    fmt.Sprintf("/sessions/%s/%s", sessionID, kind),
			Multipart: file,
		}.MakeFake()
		response := httptest.NewRecorder()
		c := testlib.PrepareEchoContext(request, response)

		var err error
		switch kind {
		case "drop":
			err = sessionGateway.Drop(c, sessionID)
		case "pick":
			err = sessionGateway.Pick(c, sessionID)
		default:
			Fail("unknown upload kind " + kind)
		}

		Expect(err).NotTo(HaveOccurred())
		return response
	}

	audioFile := func() *testlib.MultipartFile {
		return &testlib.MultipartFile{
			FileName:    "song.mp3",
			ContentType: "audio/mpeg",
			Content:     []byte("ID3 pretend audio"),
		}
	}

	reset := func(sessionID string) *httptest.ResponseRecorder {
		request := testlib.RequestFactory{
			Method: "POST",
			Target: fmt.Sprintf("/sessions/%s/reset", sessionID),
		}.MakeFake()
		response := httptest.NewRecorder()

		err := sessionGateway.Reset(testlib.PrepareEchoContext(request, response), sessionID)
		Expect(err).NotTo(HaveOccurred())
		return response
	}

	trackRequest := func(action string, sessionID string, stem string, body any) *httptest.ResponseRecorder {
		request := testlib.RequestFactory{
			Method:  "POST",
			Target:  fmt.Sprintf("/sessions/%s/tracks/%s/%s", sessionID, stem, action),
			JSONObj: body,
		}.MakeFake()
		response := httptest.NewRecorder()
		c := testlib.PrepareEchoContext(request, response)

		var err error
		switch action {
		case "toggle":
			err = sessionGateway.TogglePlay(c, sessionID, stem)
		case "seek":
			err = sessionGateway.Seek(c, sessionID, stem)
		case "media-events":
			err = sessionGateway.PostMediaEvent(c, sessionID, stem)
		case "download":
			err = sessionGateway.Download(c, sessionID, stem)
		default:
			Fail("unknown track action " + action)
		}

		Expect(err).NotTo(HaveOccurred())
		return response
	}

	expectError := func(response *httptest.ResponseRecorder, statusCode int, errorCode any) {
		ExpectWithOffset(1, response.Code).To(Equal(statusCode))
		resErr := testlib.DecodeJSONError(response.Body)
		ExpectWithOffset(1, resErr.Code).To(BeEquivalentTo(errorCode))
	}

	splitToResult := func() string {
		sessionID := createSession()
		Expect(upload("drop", sessionID, audioFile()).Code).To(Equal(http.StatusAccepted))
		releaseSplit()
		Eventually(phaseOf(sessionID)).Should(Equal("result"))
		return sessionID
	}

	Describe("Create Session", func() {
		It("starts idle with intake enabled and no tracks", func() {
			session := sessionView(createSession())
			Expect(session.Phase).To(Equal("idle"))
			Expect(session.IntakeEnabled).To(BeTrue())
			Expect(session.Tracks).To(BeEmpty())
		})

		It("hands out a new ID every time", func() {
			Expect(createSession()).NotTo(Equal(createSession()))
		})
	})

	Describe("For a non-existing session", func() {
		It("fails to get with the right error", func() {
			expectError(getSession("boat"), http.StatusNotFound, sessionerrors.SessionNotFoundCode)
		})

		It("fails to upload with the right error", func() {
			expectError(upload("drop", "boat", audioFile()), http.StatusNotFound, sessionerrors.SessionNotFoundCode)
		})

		It("fails to reset with the right error", func() {
			expectError(reset("boat"), http.StatusNotFound, sessionerrors.SessionNotFoundCode)
		})
	})

	Describe("Drop", func() {
		var sessionID string

		BeforeEach(func() {
			sessionID = ""
		})

		JustBeforeEach(func() {
			sessionID = createSession()
		})

		It("submits an audio file and reports processing", func() {
			response := upload("drop", sessionID, audioFile())
			Expect(response.Code).To(Equal(http.StatusAccepted))

			result := testlib.DecodeJSON[sessionentity.IntakeView](response.Body)
			Expect(result.Outcome).To(Equal("submitted"))
			Expect(result.Phase).To(Equal("processing"))
			Expect(result.IntakeEnabled).To(BeFalse())
			Expect(result.FileName).To(Equal("song.mp3"))

			Eventually(splitter.SplitAudioCallCount).Should(Equal(1))
			_, file := splitter.SplitAudioArgsForCall(0)
			Expect(file.Name).To(Equal("song.mp3"))
			Expect(file.MediaType).To(Equal("audio/mpeg"))
			Expect(file.Content).To(Equal([]byte("ID3 pretend audio")))
		})

		It("shows both stems once the split is back", func() {
			upload("drop", sessionID, audioFile())
			releaseSplit()
			Eventually(phaseOf(sessionID)).Should(Equal("result"))

			session := sessionView(sessionID)
			Expect(session.IntakeEnabled).To(BeTrue())
			Expect(session.Tracks).To(HaveLen(2))

			vocals, instrumental := session.Tracks[0], session.Tracks[1]
			Expect(vocals.Stem).To(Equal("vocals"))
			Expect(vocals.Title).To(Equal("Vocals Only"))
			Expect(vocals.URL).To(Equal(vocalsURL))
			Expect(vocals.Duration).To(BeNil())
			Expect(vocals.DurationLabel).To(Equal("0:00"))

			Expect(instrumental.Stem).To(Equal("instrumental"))
			Expect(instrumental.Title).To(Equal("Instrumental"))
			Expect(instrumental.URL).To(Equal(instrumentalURL))
		})

		It("ignores files that aren't audio", func() {
			response := upload("drop", sessionID, &testlib.MultipartFile{
				FileName:    "notes.txt",
				ContentType: "text/plain",
				Content:     []byte("not a song"),
			})
			Expect(response.Code).To(Equal(http.StatusAccepted))

			result := testlib.DecodeJSON[sessionentity.IntakeView](response.Body)
			Expect(result.Outcome).To(Equal("rejected"))
			Expect(result.Phase).To(Equal("idle"))
			Consistently(splitter.SplitAudioCallCount).Should(BeZero())
		})

		It("refuses a second file while processing", func() {
			upload("drop", sessionID, audioFile())
			expectError(upload("drop", sessionID, audioFile()), http.StatusConflict, sessionerrors.SubmissionNotAllowedCode)
		})

		It("refuses a new file after a result until reset", func() {
			upload("drop", sessionID, audioFile())
			releaseSplit()
			Eventually(phaseOf(sessionID)).Should(Equal("result"))

			expectError(upload("drop", sessionID, audioFile()), http.StatusConflict, sessionerrors.SubmissionNotAllowedCode)

			Expect(reset(sessionID).Code).To(Equal(http.StatusOK))
			Expect(upload("drop", sessionID, audioFile()).Code).To(Equal(http.StatusAccepted))
		})

		It("fails without a file field", func() {
			response := upload("drop", sessionID, &testlib.MultipartFile{
				FieldName:   "attachment",
				FileName:    "song.mp3",
				ContentType: "audio/mpeg",
			})
			expectError(response, http.StatusBadRequest, sessionerrors.BadUploadCode)
		})

		Describe("When the split fails", func() {
			BeforeEach(func() {
				splitter.SplitAudioStub = nil
				splitter.SplitAudioReturns(splitentity.SplitResult{}, &splitclient.APIError{
					Kind:       splitclient.RemoteFailure,
					Message:    "decode failed",
					StatusCode: http.StatusInternalServerError,
				})
			})

			It("shows the backend's message", func() {
				upload("drop", sessionID, audioFile())
				Eventually(phaseOf(sessionID)).Should(Equal("error"))

				session := sessionView(sessionID)
				Expect(session.ErrorMessage).To(Equal("decode failed"))
				Expect(session.Tracks).To(BeEmpty())
			})

			It("can start over", func() {
				upload("drop", sessionID, audioFile())
				Eventually(phaseOf(sessionID)).Should(Equal("error"))

				session := testlib.DecodeJSON[sessionentity.SessionView](reset(sessionID).Body)
				Expect(session.Phase).To(Equal("idle"))
				Expect(session.ErrorMessage).To(BeEmpty())
			})
		})
	})

	Describe("Pick", func() {
		It("does not filter on the declared type", func() {
			sessionID := createSession()
			response := upload("pick", sessionID, &testlib.MultipartFile{
				FileName:    "song.flac",
				ContentType: "application/octet-stream",
				Content:     []byte("fLaC"),
			})
			Expect(response.Code).To(Equal(http.StatusAccepted))

			result := testlib.DecodeJSON[sessionentity.IntakeView](response.Body)
			Expect(result.Outcome).To(Equal("submitted"))
			Expect(result.Phase).To(Equal("processing"))
		})
	})

	Describe("Reset", func() {
		It("abandons a split that is still processing", func() {
			sessionID := createSession()
			upload("drop", sessionID, audioFile())

			session := testlib.DecodeJSON[sessionentity.SessionView](reset(sessionID).Body)
			Expect(session.Phase).To(Equal("idle"))

			releaseSplit()
			Consistently(phaseOf(sessionID)).Should(Equal("idle"))
		})
	})

	Describe("Tracks", func() {
		var sessionID string

		JustBeforeEach(func() {
			sessionID = splitToResult()
		})

		decodeTrack := func(response *httptest.ResponseRecorder) sessionentity.TrackView {
			ExpectWithOffset(1, response.Code).To(Equal(http.StatusOK))
			return testlib.DecodeJSON[sessionentity.TrackView](response.Body)
		}

		loadMetadata := func(stem string, duration float64) {
			response := trackRequest("media-events", sessionID, stem, playback.Event{
				Type: playback.MetadataLoaded,
				Time: duration,
			})
			ExpectWithOffset(1, response.Code).To(Equal(http.StatusOK))
		}

		It("toggles optimistically and waits for the browser", func() {
			track := decodeTrack(trackRequest("toggle", sessionID, "vocals", nil))
			Expect(track.IsPlaying).To(BeTrue())
			Expect(track.Intent).To(Equal("intended"))
			Expect(track.PendingCommand).NotTo(BeNil())
			Expect(track.PendingCommand.Name).To(Equal(bridge.PlayCommand))

			By("Confirming playback from the browser")
			track = decodeTrack(trackRequest("media-events", sessionID, "vocals", playback.Event{Type: playback.Played}))
			Expect(track.IsPlaying).To(BeTrue())
			Expect(track.Intent).To(Equal("confirmed"))
			Expect(track.PendingCommand).To(BeNil())
		})

		It("keeps the two players independent", func() {
			decodeTrack(trackRequest("toggle", sessionID, "vocals", nil))

			session := sessionView(sessionID)
			Expect(session.Tracks[0].IsPlaying).To(BeTrue())
			Expect(session.Tracks[1].IsPlaying).To(BeFalse())
		})

		It("does not seek before the duration is known", func() {
			seek := testlib.DecodeJSON[sessionentity.SeekView](trackRequest("seek", sessionID, "vocals", map[string]any{"fraction": 0.5}).Body)
			Expect(seek.Offset).To(BeZero())
			Expect(seek.Track.PendingCommand).To(BeNil())
		})

		It("seeks to a fraction of the duration", func() {
			loadMetadata("vocals", 200)

			response := trackRequest("seek", sessionID, "vocals", map[string]any{"fraction": 0.5})
			Expect(response.Code).To(Equal(http.StatusOK))

			seek := testlib.DecodeJSON[sessionentity.SeekView](response.Body)
			Expect(seek.Offset).To(Equal(100.0))
			Expect(seek.Track.CurrentTimeLabel).To(Equal("1:40"))
			Expect(seek.Track.DurationLabel).To(Equal("3:20"))
			Expect(seek.Track.Progress).To(Equal(0.5))
			Expect(seek.Track.PendingCommand.Name).To(Equal(bridge.SeekCommand))
			Expect(seek.Track.PendingCommand.Offset).To(Equal(100.0))
		})

		It("seeks from a pointer position on the bar", func() {
			loadMetadata("instrumental", 120)

			response := trackRequest("seek", sessionID, "instrumental", map[string]any{"pointerX": 50, "width": 200})
			seek := testlib.DecodeJSON[sessionentity.SeekView](response.Body)
			Expect(seek.Offset).To(Equal(30.0))
		})

		It("fails to seek without a position", func() {
			response := trackRequest("seek", sessionID, "vocals", map[string]any{})
			expectError(response, http.StatusBadRequest, sessionerrors.BadSeekCode)
		})

		It("rejects unknown media events", func() {
			response := trackRequest("media-events", sessionID, "vocals", map[string]any{"type": "volumechange", "time": 1})
			expectError(response, http.StatusBadRequest, sessionerrors.BadMediaEventCode)
		})

		It("fails for an unknown stem", func() {
			expectError(trackRequest("toggle", sessionID, "drums", nil), http.StatusNotFound, sessionerrors.TrackNotFoundCode)
		})

		It("fails once the session is reset", func() {
			reset(sessionID)
			expectError(trackRequest("toggle", sessionID, "vocals", nil), http.StatusNotFound, sessionerrors.TrackNotFoundCode)
		})

		Describe("Download", func() {
			It("archives the track", func() {
				response := trackRequest("download", sessionID, "vocals", nil)
				Expect(response.Code).To(Equal(http.StatusOK))

				download := testlib.DecodeJSON[sessionentity.DownloadView](response.Body)
				Expect(download.Filename).To(Equal("vocals_only.wav"))
				Expect(download.SavedURL).To(Equal("https://storage.googleapis.com/stems/session/vocals_only.wav"))
				Expect(download.FallbackURL).To(BeEmpty())

				_, url := fetcher.FetchArgsForCall(0)
				Expect(url).To(Equal(vocalsURL))
			})

			Describe("When the fetch fails", func() {
				BeforeEach(func() {
					fetcher.FetchReturns(nil, errors.New("connection reset"))
				})

				It("falls back to the raw URL", func() {
					response := trackRequest("download", sessionID, "instrumental", nil)
					Expect(response.Code).To(Equal(http.StatusOK))

					download := testlib.DecodeJSON[sessionentity.DownloadView](response.Body)
					Expect(download.Filename).To(Equal("instrumental.wav"))
					Expect(download.SavedURL).To(BeEmpty())
					Expect(download.FallbackURL).To(Equal(instrumentalURL))
					Expect(saver.SaveCallCount()).To(BeZero())
				})
			})

			Describe("Without an archive", func() {
				BeforeEach(func() {
					usecaseConfig.Savers = nil
				})

				It("falls back to the raw URL", func() {
					download := testlib.DecodeJSON[sessionentity.DownloadView](trackRequest("download", sessionID, "vocals", nil).Body)
					Expect(download.FallbackURL).To(Equal(vocalsURL))
				})
			})
		})
	})

	Describe("History", func() {
		getHistory := func(sessionID string) *httptest.ResponseRecorder {
			request := testlib.RequestFactory{
				Method: "GET",
				Target: fmt.Sprintf("/sessions/%s/history", sessionID),
			}.MakeFake()
			response := httptest.NewRecorder()

			err := sessionGateway.History(testlib.PrepareEchoContext(request, response), sessionID)
			Expect(err).NotTo(HaveOccurred())
			return response
		}

		It("is unavailable without a store", func() {
			expectError(getHistory(createSession()), http.StatusServiceUnavailable, sessionerrors.HistoryUnavailableCode)
		})

		Describe("With a store", func() {
			BeforeEach(func() {
				recorder := history.NewRecorder(historyStore)
				usecaseConfig.Recorder = recorder
				usecaseConfig.History = recorder
			})

			It("records the split and lists it", func() {
				sessionID := splitToResult()
				Eventually(historyStore.PutRecordCallCount).Should(Equal(1))

				_, record := historyStore.PutRecordArgsForCall(0)
				Expect(record.SessionID).To(Equal(sessionID))
				Expect(record.FileName).To(Equal("song.mp3"))
				historyStore.ListRecordsReturns([]historyentity.Record{record}, nil)

				response := getHistory(sessionID)
				Expect(response.Code).To(Equal(http.StatusOK))

				records := testlib.DecodeJSON[[]historyentity.Record](response.Body)
				Expect(records).To(HaveLen(1))
				Expect(records[0].Vocals).To(Equal("/out/song_vocals.wav"))
			})

			It("is unavailable when the store fails", func() {
				historyStore.ListRecordsReturns(nil, errors.New("table missing"))
				expectError(getHistory(createSession()), http.StatusServiceUnavailable, sessionerrors.HistoryUnavailableCode)
			})
		})
	})

	Describe("Delete Session", func() {
		deleteSession := func(sessionID string) *httptest.ResponseRecorder {
			request := testlib.RequestFactory{
				Method: "DELETE",
				Target: fmt.Sprintf("/sessions/%s", sessionID),
			}.MakeFake()
			response := httptest.NewRecorder()

			err := sessionGateway.DeleteSession(testlib.PrepareEchoContext(request, response), sessionID)
			Expect(err).NotTo(HaveOccurred())
			return response
		}

		It("forgets the session", func() {
			sessionID := createSession()
			Expect(deleteSession(sessionID).Code).To(Equal(http.StatusOK))
			expectError(getSession(sessionID), http.StatusNotFound, sessionerrors.SessionNotFoundCode)
		})

		It("fails for an unknown session", func() {
			expectError(deleteSession("boat"), http.StatusNotFound, sessionerrors.SessionNotFoundCode)
		})
	})

	Describe("Backend Health", func() {
		checkHealth := func() sessionentity.HealthView {
			request := testlib.RequestFactory{Method: "GET", Target: "/backend-health"}.MakeFake()
			response := httptest.NewRecorder()

			err := sessionGateway.BackendHealth(testlib.PrepareEchoContext(request, response))
			Expect(err).NotTo(HaveOccurred())
			Expect(response.Code).To(Equal(http.StatusOK))
			return testlib.DecodeJSON[sessionentity.HealthView](response.Body)
		}

		It("reports a reachable backend", func() {
			splitter.CheckBackendHealthReturns(true)
			Expect(checkHealth().Reachable).To(BeTrue())
		})

		It("reports an unreachable backend", func() {
			splitter.CheckBackendHealthReturns(false)
			Expect(checkHealth().Reachable).To(BeFalse())
		})
	})

	Describe("Idle sessions", func() {
		const idleTTL = 10 * time.Minute

		var (
			clockMu sync.Mutex
			now     time.Time
		)

		advance := func(by time.Duration) {
			clockMu.Lock()
			defer clockMu.Unlock()
			now = now.Add(by)
		}

		BeforeEach(func() {
			now = time.Date(2022, 8, 1, 12, 0, 0, 0, time.UTC)
			usecaseConfig.IdleTTL = idleTTL
			usecaseConfig.ReapInterval = 5 * time.Millisecond
			usecaseConfig.Now = func() time.Time {
				clockMu.Lock()
				defer clockMu.Unlock()
				return now
			}
		})

		It("are torn down once they have gone unused for too long", func() {
			abandoned := createSession()
			active := createSession()

			advance(idleTTL - time.Minute)
			Expect(getSession(active).Code).To(Equal(http.StatusOK))
			advance(2 * time.Minute)

			Eventually(func() int {
				return getSession(abandoned).Code
			}).Should(Equal(http.StatusNotFound))
			Consistently(func() int {
				return getSession(active).Code
			}, "50ms").Should(Equal(http.StatusOK))
		})

		It("are torn down with a finished split too", func() {
			sessionID := createSession()
			Expect(upload("pick", sessionID, audioFile()).Code).To(Equal(http.StatusAccepted))
			releaseSplit()
			Eventually(phaseOf(sessionID)).Should(Equal("result"))

			advance(idleTTL)
			Eventually(func() int {
				return getSession(sessionID).Code
			}).Should(Equal(http.StatusNotFound))
		})
	})
})
