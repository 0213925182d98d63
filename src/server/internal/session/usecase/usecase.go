package sessionusecase

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/markers"
	"github.com/google/uuid"
	"github.com/veedubyou/split-studio/src/server/internal/errors/api"
	"github.com/veedubyou/split-studio/src/server/internal/session/bridge"
	"github.com/veedubyou/split-studio/src/server/internal/session/entity"
	"github.com/veedubyou/split-studio/src/server/internal/session/errors"
	"github.com/veedubyou/split-studio/src/shared/history/entity"
	"github.com/veedubyou/split-studio/src/shared/intake"
	"github.com/veedubyou/split-studio/src/shared/orchestrator"
	"github.com/veedubyou/split-studio/src/shared/playback"
	"github.com/veedubyou/split-studio/src/shared/split/entity"
	"github.com/veedubyou/split-studio/src/shared/splitclient"
)

// SaverFactory gives each session the place its downloads are archived to
type SaverFactory func(sessionID string) playback.Saver

type HistoryLister interface {
	List(ctx context.Context, sessionID string) ([]historyentity.Record, error)
}

const (
	DefaultIdleTTL      = 30 * time.Minute
	DefaultReapInterval = time.Minute
)

// Config leaves IdleTTL, ReapInterval and Now at zero for the defaults
type Config struct {
	Splitter  splitclient.SplitService
	Fetcher   playback.Fetcher
	Savers    SaverFactory
	Observers []orchestrator.Observer
	Recorder  orchestrator.Recorder
	History   HistoryLister

	// sessions untouched for this long are torn down
	IdleTTL      time.Duration
	ReapInterval time.Duration
	Now          func() time.Time
}

type Usecase struct {
	config   Config
	registry *registry
	stop     chan struct{}
	stopOnce *sync.Once
}

func NewUsecase(config Config) Usecase {
	if config.IdleTTL <= 0 {
		config.IdleTTL = DefaultIdleTTL
	}
	if config.ReapInterval <= 0 {
		config.ReapInterval = DefaultReapInterval
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	usecase := Usecase{
		config:   config,
		registry: newRegistry(config.Now),
		stop:     make(chan struct{}),
		stopOnce: &sync.Once{},
	}

	go usecase.reapIdleSessions()
	return usecase
}

func (u Usecase) CreateSession() sessionentity.SessionView {
	sessionID := uuid.NewString()

	downloader := playback.Downloader{
		Fetcher: u.config.Fetcher,
		Navigator: playback.NavigatorFunc(func(url string, filename string) {
			log.WithFields(log.Fields{
				"session_id": sessionID,
				"url":        url,
				"filename":   filename,
			}).Debug("Leaving the download to the browser")
		}),
	}

	if u.config.Savers != nil {
		downloader.Saver = u.config.Savers(sessionID)
	}

	page := orchestrator.NewPage(orchestrator.Config{
		SessionID:  sessionID,
		Splitter:   u.config.Splitter,
		Sources:    browserSource,
		Downloader: downloader,
		Observers:  u.config.Observers,
		Recorder:   u.config.Recorder,
	})

	u.registry.add(sessionID, page)
	log.WithField("session_id", sessionID).Info("Created split session")

	return sessionView(page.Snapshot(), page)
}

func (u Usecase) GetSession(sessionID string) (sessionentity.SessionView, *api.Error) {
	page, apiErr := u.page(sessionID)
	if apiErr != nil {
		return sessionentity.SessionView{}, apiErr
	}

	return sessionView(page.Snapshot(), page), nil
}

func (u Usecase) Drop(sessionID string, files []splitentity.UploadedFile) (sessionentity.IntakeView, *api.Error) {
	return u.useIntake(sessionID, func(pageIntake intake.Intake) (intake.Outcome, error) {
		return pageIntake.Drop(files)
	})
}

func (u Usecase) Pick(sessionID string, files []splitentity.UploadedFile) (sessionentity.IntakeView, *api.Error) {
	return u.useIntake(sessionID, func(pageIntake intake.Intake) (intake.Outcome, error) {
		return pageIntake.Pick(files)
	})
}

func (u Usecase) useIntake(sessionID string, use func(pageIntake intake.Intake) (intake.Outcome, error)) (sessionentity.IntakeView, *api.Error) {
	page, apiErr := u.page(sessionID)
	if apiErr != nil {
		return sessionentity.IntakeView{}, apiErr
	}

	outcome, err := use(page.Intake())
	if err != nil {
		switch {
		case markers.Is(err, orchestrator.SubmissionNotAllowedMark):
			return sessionentity.IntakeView{}, api.CommitError(err,
				sessionerrors.SubmissionNotAllowedCode,
				"A file can only be uploaded from the start screen. Please start over first")
		case markers.Is(err, orchestrator.PageClosedMark):
			return sessionentity.IntakeView{}, sessionNotFound(err)
		default:
			return sessionentity.IntakeView{}, api.CommitError(err,
				api.DefaultErrorCode,
				"Failed to start splitting the file. Please try again")
		}
	}

	switch outcome {
	case intake.Disabled:
		err := errors.New("Intake is disabled while a split is processing")
		return sessionentity.IntakeView{}, api.CommitError(err,
			sessionerrors.SubmissionNotAllowedCode,
			"A file is already being split. Please wait for it to finish")
	case intake.NoFile:
		err := errors.New("No file was included in the upload")
		return sessionentity.IntakeView{}, api.CommitError(err,
			sessionerrors.BadUploadCode,
			"No file was received. Please try uploading again")
	}

	return sessionentity.IntakeView{
		Outcome:     string(outcome),
		SessionView: sessionView(page.Snapshot(), page),
	}, nil
}

func (u Usecase) Reset(sessionID string) (sessionentity.SessionView, *api.Error) {
	page, apiErr := u.page(sessionID)
	if apiErr != nil {
		return sessionentity.SessionView{}, apiErr
	}

	page.Reset()
	return sessionView(page.Snapshot(), page), nil
}

func (u Usecase) TogglePlay(sessionID string, stem string) (sessionentity.TrackView, *api.Error) {
	player, apiErr := u.player(sessionID, stem)
	if apiErr != nil {
		return sessionentity.TrackView{}, apiErr
	}

	if err := player.TogglePlay(); err != nil {
		return sessionentity.TrackView{}, trackNotFound(errors.Wrap(err, "Failed to toggle playback"))
	}

	return trackView(orchestrator.Stem(stem), player), nil
}

func (u Usecase) Seek(sessionID string, stem string, request sessionentity.SeekRequest) (sessionentity.SeekView, *api.Error) {
	player, apiErr := u.player(sessionID, stem)
	if apiErr != nil {
		return sessionentity.SeekView{}, apiErr
	}

	var (
		offset float64
		err    error
	)

	switch {
	case request.Fraction != nil:
		offset, err = player.SeekTo(*request.Fraction)
	case request.PointerX != nil && request.Width != nil:
		offset, err = player.SeekToPointer(*request.PointerX, *request.Width)
	default:
		err := errors.New("Seek request has neither a fraction nor a pointer position")
		return sessionentity.SeekView{}, api.CommitError(err,
			sessionerrors.BadSeekCode,
			"The seek position was missing. Please try again")
	}

	if err != nil {
		return sessionentity.SeekView{}, trackNotFound(errors.Wrap(err, "Failed to seek"))
	}

	return sessionentity.SeekView{
		Offset: offset,
		Track:  trackView(orchestrator.Stem(stem), player),
	}, nil
}

// PostMediaEvent is the browser's audio element reporting what it actually did
func (u Usecase) PostMediaEvent(sessionID string, stem string, event playback.Event) (sessionentity.TrackView, *api.Error) {
	if !event.Type.Valid() {
		err := errors.Newf("Unknown media event type %q", event.Type)
		return sessionentity.TrackView{}, api.CommitError(err,
			sessionerrors.BadMediaEventCode,
			"The media event was not recognized")
	}

	player, apiErr := u.player(sessionID, stem)
	if apiErr != nil {
		return sessionentity.TrackView{}, apiErr
	}

	source, ok := player.Source().(*bridge.BridgeSource)
	if !ok {
		err := errors.Newf("Track %s is not played through the browser", stem)
		return sessionentity.TrackView{}, api.CommitError(err,
			sessionerrors.BadMediaEventCode,
			"This track does not accept media events")
	}

	if err := source.Notify(event); err != nil {
		return sessionentity.TrackView{}, trackNotFound(errors.Wrap(err, "Failed to deliver media event"))
	}

	return trackView(orchestrator.Stem(stem), player), nil
}

func (u Usecase) Download(ctx context.Context, sessionID string, stem string) (sessionentity.DownloadView, *api.Error) {
	player, apiErr := u.player(sessionID, stem)
	if apiErr != nil {
		return sessionentity.DownloadView{}, apiErr
	}

	outcome := player.Download(ctx)
	return sessionentity.DownloadView{
		Filename:    outcome.Filename,
		SavedURL:    outcome.SavedURL,
		FallbackURL: outcome.FallbackURL,
	}, nil
}

func (u Usecase) History(ctx context.Context, sessionID string) ([]historyentity.Record, *api.Error) {
	if _, apiErr := u.page(sessionID); apiErr != nil {
		return nil, apiErr
	}

	if u.config.History == nil {
		err := errors.New("No history store is configured")
		return nil, api.CommitError(err,
			sessionerrors.HistoryUnavailableCode,
			"Split history is not available right now")
	}

	records, err := u.config.History.List(ctx, sessionID)
	if err != nil {
		return nil, api.CommitError(errors.Wrap(err, "Failed to list history"),
			sessionerrors.HistoryUnavailableCode,
			"Split history is not available right now")
	}

	return records, nil
}

func (u Usecase) DeleteSession(sessionID string) *api.Error {
	page, ok := u.registry.remove(sessionID)
	if !ok {
		return sessionNotFound(errors.Newf("No session found for ID %s", sessionID))
	}

	page.Close()
	log.WithField("session_id", sessionID).Info("Deleted split session")
	return nil
}

func (u Usecase) BackendHealth(ctx context.Context) sessionentity.HealthView {
	return sessionentity.HealthView{
		Reachable: u.config.Splitter.CheckBackendHealth(ctx),
	}
}

// Close stops expiring sessions and tears down every live one
func (u Usecase) Close() {
	u.stopOnce.Do(func() { close(u.stop) })

	for _, page := range u.registry.removeAll() {
		page.Close()
	}
}

func (u Usecase) reapIdleSessions() {
	ticker := time.NewTicker(u.config.ReapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-u.stop:
			return
		case <-ticker.C:
			for _, page := range u.registry.removeIdle(u.config.IdleTTL) {
				log.WithField("session_id", page.SessionID()).Info("Closing idle split session")
				page.Close()
			}
		}
	}
}

func (u Usecase) page(sessionID string) (*orchestrator.Page, *api.Error) {
	page, ok := u.registry.get(sessionID)
	if !ok {
		return nil, sessionNotFound(errors.Newf("No session found for ID %s", sessionID))
	}

	return page, nil
}

func (u Usecase) player(sessionID string, stem string) (*playback.Player, *api.Error) {
	page, apiErr := u.page(sessionID)
	if apiErr != nil {
		return nil, apiErr
	}

	if !orchestrator.Stem(stem).Valid() {
		return nil, trackNotFound(errors.Newf("Unknown stem %q", stem))
	}

	player, ok := page.Player(orchestrator.Stem(stem))
	if !ok {
		return nil, trackNotFound(errors.Newf("Track %s is not available in phase %s", stem, page.Phase()))
	}

	return player, nil
}

func browserSource(_ orchestrator.Stem, url string) playback.MediaSource {
	return bridge.NewBridgeSource(url)
}

func sessionNotFound(err error) *api.Error {
	return api.CommitError(err,
		sessionerrors.SessionNotFoundCode,
		"This session could not be found. Please reload the page")
}

func trackNotFound(err error) *api.Error {
	return api.CommitError(err,
		sessionerrors.TrackNotFoundCode,
		"This track is not available. Please start over")
}

func sessionView(snapshot orchestrator.Snapshot, page *orchestrator.Page) sessionentity.SessionView {
	view := sessionentity.SessionView{
		ID:            snapshot.SessionID,
		Phase:         string(snapshot.Phase),
		IntakeEnabled: snapshot.IntakeEnabled(),
		FileName:      snapshot.FileName,
		MediaType:     snapshot.MediaType,
		ErrorMessage:  snapshot.ErrorMessage,
		Tracks:        []sessionentity.TrackView{},
	}

	for _, track := range snapshot.Tracks {
		player, ok := page.Player(track.Stem)
		if !ok {
			continue
		}

		view.Tracks = append(view.Tracks, trackView(track.Stem, player))
	}

	return view
}

func trackView(stem orchestrator.Stem, player *playback.Player) sessionentity.TrackView {
	state := player.State()
	track := player.Track()

	view := sessionentity.TrackView{
		Stem:             string(stem),
		Title:            track.Title,
		URL:              track.URL,
		IsPlaying:        state.IsPlaying,
		Intent:           string(state.Intent),
		CurrentTime:      state.CurrentTime,
		Progress:         player.Progress(),
		CurrentTimeLabel: playback.FormatTime(state.CurrentTime),
		DurationLabel:    playback.FormatTime(state.Duration),
	}

	// unknown durations are NaN, which JSON can't carry
	if !math.IsNaN(state.Duration) && !math.IsInf(state.Duration, 0) {
		duration := state.Duration
		view.Duration = &duration
	}

	if source, ok := player.Source().(*bridge.BridgeSource); ok {
		if command, pending := source.Pending(); pending {
			view.PendingCommand = &command
		}
	}

	return view
}

type registryEntry struct {
	page       *orchestrator.Page
	lastAccess time.Time
}

// registry remembers when each session was last used, get counts as a use
type registry struct {
	now func() time.Time

	mu      sync.Mutex
	entries map[string]*registryEntry
}

func newRegistry(now func() time.Time) *registry {
	return &registry{
		now:     now,
		entries: map[string]*registryEntry{},
	}
}

func (r *registry) add(sessionID string, page *orchestrator.Page) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[sessionID] = &registryEntry{
		page:       page,
		lastAccess: r.now(),
	}
}

func (r *registry) get(sessionID string) (*orchestrator.Page, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[sessionID]
	if !ok {
		return nil, false
	}

	entry.lastAccess = r.now()
	return entry.page, true
}

func (r *registry) remove(sessionID string) (*orchestrator.Page, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[sessionID]
	if !ok {
		return nil, false
	}

	delete(r.entries, sessionID)
	return entry.page, true
}

func (r *registry) removeIdle(ttl time.Duration) []*orchestrator.Page {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	pages := []*orchestrator.Page{}
	for sessionID, entry := range r.entries {
		if now.Sub(entry.lastAccess) < ttl {
			continue
		}

		pages = append(pages, entry.page)
		delete(r.entries, sessionID)
	}

	return pages
}

func (r *registry) removeAll() []*orchestrator.Page {
	r.mu.Lock()
	defer r.mu.Unlock()

	pages := make([]*orchestrator.Page, 0, len(r.entries))
	for sessionID, entry := range r.entries {
		pages = append(pages, entry.page)
		delete(r.entries, sessionID)
	}

	return pages
}
