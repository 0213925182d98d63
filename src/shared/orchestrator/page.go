package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/veedubyou/split-studio/src/shared/intake"
	"github.com/veedubyou/split-studio/src/shared/lib/errors/mark"
	"github.com/veedubyou/split-studio/src/shared/playback"
	"github.com/veedubyou/split-studio/src/shared/split/entity"
	"github.com/veedubyou/split-studio/src/shared/splitclient"
)

// SourceFactory creates the media source backing one stem's player
type SourceFactory func(stem Stem, url string) playback.MediaSource

type Config struct {
	SessionID  string
	Splitter   splitclient.SplitService
	Sources    SourceFactory
	Downloader playback.Downloader
	Observers  []Observer
	Recorder   Recorder
}

type Track struct {
	Stem   Stem
	Title  string
	URL    string
	Player *playback.Player
}

// heldFile is what the page remembers about a submission. The content is
// owned by the split request and goes away with it.
type heldFile struct {
	Name      string
	MediaType string
}

// Page drives one upload from intake through the remote split to playback.
// At most one split is outstanding because intake is disabled while
// processing. A response that belongs to an earlier generation is dropped.
type Page struct {
	config     Config
	dispatcher *dispatcher

	mu           sync.Mutex
	phase        Phase
	generation   uint64
	file         *heldFile
	result       *splitentity.SplitResult
	errorMessage string
	tracks       []Track
	closed       bool
	inFlight     sync.WaitGroup
}

func NewPage(config Config) *Page {
	return &Page{
		config:     config,
		dispatcher: newDispatcher(config.Observers),
		phase:      Idle,
	}
}

func (p *Page) SessionID() string {
	return p.config.SessionID
}

func (p *Page) Phase() Phase {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.phase
}

// Intake is wired to this page and disabled while a split is processing
func (p *Page) Intake() intake.Intake {
	return intake.New(p.Submit, func() bool {
		return p.Phase() == Processing
	})
}

// Submit starts a split. It is only accepted from Idle, a failed or finished
// attempt has to be reset first.
func (p *Page) Submit(file splitentity.UploadedFile) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return mark.Message(PageClosedMark, "Page has been closed")
	}

	if p.phase != Idle {
		return mark.Message(SubmissionNotAllowedMark, "A file can only be submitted from the idle phase")
	}

	p.generation++
	generation := p.generation
	p.file = &heldFile{
		Name:      file.Name,
		MediaType: file.MediaType,
	}

	p.transitionLocked(Processing, "")

	p.inFlight.Add(1)
	go p.runSplit(generation, file)

	return nil
}

// Reset returns to Idle from any phase. A split that is still processing
// is abandoned and its response ignored once it arrives.
func (p *Page) Reset() {
	p.mu.Lock()
	if p.closed || p.phase == Idle {
		p.mu.Unlock()
		return
	}

	if p.phase == Processing {
		log.WithField("session_id", p.config.SessionID).
			Info("Abandoning split that is still processing")
	}

	p.generation++
	tracks := p.clearLocked()
	p.transitionLocked(Idle, "")
	p.mu.Unlock()

	closeTracks(tracks)
}

// Close tears the page down for good. Queued transitions are still delivered.
func (p *Page) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}

	p.closed = true
	p.generation++
	tracks := p.clearLocked()
	p.mu.Unlock()

	closeTracks(tracks)
	p.dispatcher.stop()
}

// Wait blocks until every split this page started has come back
func (p *Page) Wait() {
	p.inFlight.Wait()
}

func (p *Page) Tracks() []Track {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]Track{}, p.tracks...)
}

func (p *Page) Player(stem Stem) (*playback.Player, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, track := range p.tracks {
		if track.Stem == stem {
			return track.Player, true
		}
	}

	return nil, false
}

func (p *Page) runSplit(generation uint64, file splitentity.UploadedFile) {
	defer p.inFlight.Done()

	logger := log.WithFields(log.Fields{
		"session_id": p.config.SessionID,
		"file_name":  file.Name,
		"generation": generation,
	})

	result, err := p.config.Splitter.SplitAudio(context.Background(), file)
	if err != nil {
		logger.WithError(err).Error("Split failed")
		p.finishWithError(generation, splitclient.UserMessage(err))
		return
	}

	tracks := p.buildTracks(result)

	p.mu.Lock()
	if !p.isCurrentLocked(generation) {
		p.mu.Unlock()
		logger.Info("Discarding split result for an abandoned submission")
		closeTracks(tracks)
		return
	}

	p.result = &result
	p.tracks = tracks
	p.transitionLocked(Result, "")
	p.mu.Unlock()

	logger.Info("Split result is ready")
	p.record(logger, file, result)
}

func (p *Page) finishWithError(generation uint64, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.isCurrentLocked(generation) {
		log.WithField("session_id", p.config.SessionID).
			Info("Discarding split failure for an abandoned submission")
		return
	}

	p.errorMessage = message
	p.transitionLocked(Error, message)
}

func (p *Page) buildTracks(result splitentity.SplitResult) []Track {
	paths := []struct {
		stem Stem
		path string
	}{
		{stem: VocalsStem, path: result.Vocals},
		{stem: InstrumentalStem, path: result.Karaoke},
	}

	tracks := make([]Track, 0, len(paths))
	for _, entry := range paths {
		url := p.config.Splitter.GetAudioURL(entry.path)
		track := playback.Track{
			Title: entry.stem.Title(),
			URL:   url,
		}

		source := p.config.Sources(entry.stem, url)
		tracks = append(tracks, Track{
			Stem:   entry.stem,
			Title:  track.Title,
			URL:    url,
			Player: playback.NewPlayer(track, source, p.config.Downloader),
		})
	}

	return tracks
}

func (p *Page) record(logger *log.Entry, file splitentity.UploadedFile, result splitentity.SplitResult) {
	if p.config.Recorder == nil {
		return
	}

	err := p.config.Recorder.RecordSplit(context.Background(), p.config.SessionID, file, result)
	if err != nil {
		logger.WithError(err).Error("Failed to record split history")
	}
}

func (p *Page) isCurrentLocked(generation uint64) bool {
	return !p.closed && p.phase == Processing && p.generation == generation
}

func (p *Page) clearLocked() []Track {
	tracks := p.tracks
	p.tracks = nil
	p.file = nil
	p.result = nil
	p.errorMessage = ""
	return tracks
}

func (p *Page) transitionLocked(to Phase, message string) {
	transition := Transition{
		SessionID: p.config.SessionID,
		From:      p.phase,
		To:        to,
		Message:   message,
		At:        time.Now(),
	}

	if p.file != nil {
		transition.FileName = p.file.Name
	}

	p.phase = to

	if !p.closed {
		p.dispatcher.send(transition)
	}
}

func closeTracks(tracks []Track) {
	for _, track := range tracks {
		if err := track.Player.Close(); err != nil {
			log.WithError(err).
				WithField("stem", track.Stem).
				Error("Failed to close player")
		}
	}
}
