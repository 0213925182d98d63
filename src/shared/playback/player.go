package playback

import (
	"context"
	"math"
	"sync"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"
)

type Intent string

const (
	// Intended is an optimistic value that the media source hasn't confirmed yet
	Intended  Intent = "intended"
	Confirmed Intent = "confirmed"
)

type State struct {
	IsPlaying   bool
	CurrentTime float64
	Duration    float64
	Intent      Intent
}

func initialState() State {
	return State{
		IsPlaying:   false,
		CurrentTime: 0,
		Duration:    math.NaN(),
		Intent:      Confirmed,
	}
}

type Track struct {
	Title string
	URL   string
}

// Player owns its media source exclusively. The lock is never held while
// calling into the source, sources are free to emit events synchronously.
type Player struct {
	track      Track
	source     MediaSource
	downloader Downloader

	mu          sync.Mutex
	state       State
	closed      bool
	unsubscribe func()
}

func NewPlayer(track Track, source MediaSource, downloader Downloader) *Player {
	player := &Player{
		track:      track,
		source:     source,
		downloader: downloader,
		state:      initialState(),
	}

	unsubscribe := source.Subscribe(player.handleEvent)

	player.mu.Lock()
	player.unsubscribe = unsubscribe
	player.mu.Unlock()

	return player
}

func (p *Player) Track() Track {
	return p.track
}

// Source is the media source this player drives
func (p *Player) Source() MediaSource {
	return p.source
}

func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state
}

// Progress is the played fraction, 0 while the duration is unknown
func (p *Player) Progress() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !durationKnown(p.state.Duration) {
		return 0
	}

	return clamp(p.state.CurrentTime/p.state.Duration, 0, 1)
}

// TogglePlay flips IsPlaying before the source has acted on the command.
// A failed command is returned but the optimistic state stays until the
// source reports otherwise.
func (p *Player) TogglePlay() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return errors.New("Player is closed")
	}

	wasPlaying := p.state.IsPlaying
	p.state.IsPlaying = !wasPlaying
	p.state.Intent = Intended
	p.mu.Unlock()

	if wasPlaying {
		if err := p.source.Pause(); err != nil {
			return errors.Wrap(err, "Failed to pause media source")
		}
		return nil
	}

	if err := p.source.Play(); err != nil {
		return errors.Wrap(err, "Failed to play media source")
	}

	return nil
}

// SeekTo jumps to a clamped fraction of the duration and returns the new
// offset. Nothing happens until the duration is known.
func (p *Player) SeekTo(fraction float64) (float64, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return 0, errors.New("Player is closed")
	}

	if !durationKnown(p.state.Duration) || math.IsNaN(fraction) {
		currentTime := p.state.CurrentTime
		p.mu.Unlock()
		return currentTime, nil
	}

	offset := clamp(fraction, 0, 1) * p.state.Duration
	p.state.CurrentTime = offset
	p.mu.Unlock()

	if err := p.source.Seek(offset); err != nil {
		return offset, errors.Wrap(err, "Failed to seek media source")
	}

	return offset, nil
}

// SeekToPointer converts a pointer position within a progress bar of the
// given width into a seek
func (p *Player) SeekToPointer(x float64, width float64) (float64, error) {
	if width <= 0 {
		return p.State().CurrentTime, nil
	}

	return p.SeekTo(x / width)
}

// Download never fails from the caller's point of view, see Downloader
func (p *Player) Download(ctx context.Context) DownloadOutcome {
	return p.downloader.Download(ctx, p.track)
}

// Close releases the subscription taken at construction and the source.
// It is safe to call more than once.
func (p *Player) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}

	p.closed = true
	unsubscribe := p.unsubscribe
	p.unsubscribe = nil
	p.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}

	if err := p.source.Close(); err != nil {
		return errors.Wrap(err, "Failed to close media source")
	}

	return nil
}

func (p *Player) handleEvent(event Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	switch event.Type {
	case MetadataLoaded:
		if math.IsNaN(event.Time) || math.IsInf(event.Time, 0) || event.Time < 0 {
			return
		}
		p.state.Duration = event.Time
		p.clampCurrentTime()

	case TimeAdvanced:
		p.state.CurrentTime = event.Time
		p.clampCurrentTime()

	case Ended:
		p.state.IsPlaying = false
		p.state.Intent = Confirmed

	case Played:
		p.state.IsPlaying = true
		p.state.Intent = Confirmed

	case Paused:
		p.state.IsPlaying = false
		p.state.Intent = Confirmed

	default:
		log.WithFields(log.Fields{
			"title":      p.track.Title,
			"event_type": event.Type,
		}).Debug("Ignoring unknown media event")
	}
}

func (p *Player) clampCurrentTime() {
	if math.IsNaN(p.state.CurrentTime) || p.state.CurrentTime < 0 {
		p.state.CurrentTime = 0
	}

	if !math.IsNaN(p.state.Duration) && p.state.CurrentTime > p.state.Duration {
		p.state.CurrentTime = p.state.Duration
	}
}
