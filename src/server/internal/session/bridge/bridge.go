package bridge

import (
	"math"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/veedubyou/split-studio/src/shared/playback"
	"golang.org/x/exp/maps"
)

type CommandName string

const (
	PlayCommand  CommandName = "play"
	PauseCommand CommandName = "pause"
	SeekCommand  CommandName = "seek"
)

// Command is the latest instruction for the browser's audio element.
// Seq only ever increases so the page can tell a new command from one it
// already carried out.
type Command struct {
	Seq    uint64      `json:"seq"`
	Name   CommandName `json:"name"`
	Offset float64     `json:"offset,omitempty"`
}

var _ playback.MediaSource = &BridgeSource{}

// BridgeSource stands in for an <audio> element living in the browser.
// Commands wait in Pending until the browser reports back through Notify.
type BridgeSource struct {
	url string

	mu        sync.Mutex
	listeners map[int]playback.Listener
	nextID    int
	seq       uint64
	pending   *Command
	closed    bool
}

func NewBridgeSource(url string) *BridgeSource {
	return &BridgeSource{
		url:       url,
		listeners: map[int]playback.Listener{},
	}
}

func (b *BridgeSource) Play() error {
	return b.command(PlayCommand, 0)
}

func (b *BridgeSource) Pause() error {
	return b.command(PauseCommand, 0)
}

func (b *BridgeSource) Seek(offset float64) error {
	return b.command(SeekCommand, offset)
}

func (b *BridgeSource) command(name CommandName, offset float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return errors.Newf("Cannot %s %s, the browser media bridge is closed", name, b.url)
	}

	b.seq++
	b.pending = &Command{
		Seq:    b.seq,
		Name:   name,
		Offset: offset,
	}

	return nil
}

// Pending returns the command the browser hasn't confirmed yet
func (b *BridgeSource) Pending() (Command, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pending == nil {
		return Command{}, false
	}

	return *b.pending, true
}

func (b *BridgeSource) Subscribe(listener playback.Listener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.listeners[id] = listener

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.listeners, id)
	}
}

// SeekTolerance is how far from a pending seek's offset a reported time
// may be and still count as the browser having applied the seek
const SeekTolerance = 1.0

// Notify passes an event from the browser on to every subscriber, settling
// the pending command when the event confirms it. Time updates sent before
// the browser applied a pending seek are dropped.
func (b *BridgeSource) Notify(event playback.Event) error {
	if !event.Type.Valid() {
		return errors.Newf("Unknown media event type %q", event.Type)
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return errors.New("The browser media bridge is closed")
	}

	if b.pending != nil {
		if confirms(event, *b.pending) {
			b.pending = nil
		} else if precedesSeek(event, *b.pending) {
			b.mu.Unlock()
			return nil
		}
	}

	listeners := maps.Values(b.listeners)
	b.mu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}

	return nil
}

func (b *BridgeSource) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.pending = nil
	b.listeners = map[int]playback.Listener{}
	return nil
}

func (b *BridgeSource) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.closed
}

func confirms(event playback.Event, pending Command) bool {
	switch pending.Name {
	case PlayCommand:
		return event.Type == playback.Played
	case PauseCommand:
		return event.Type == playback.Paused || event.Type == playback.Ended
	case SeekCommand:
		return event.Type == playback.TimeAdvanced && nearOffset(event.Time, pending.Offset)
	default:
		return false
	}
}

func precedesSeek(event playback.Event, pending Command) bool {
	return pending.Name == SeekCommand && event.Type == playback.TimeAdvanced
}

func nearOffset(t float64, offset float64) bool {
	return math.Abs(t-offset) <= SeekTolerance
}
