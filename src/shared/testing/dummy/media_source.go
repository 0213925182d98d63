package dummy

import (
	"sync"

	"github.com/veedubyou/split-studio/src/shared/playback"
)

var _ playback.MediaSource = &MediaSource{}

type MediaCommand struct {
	Name   string
	Offset float64
}

// MediaSource records commands and lets tests emit media events by hand
type MediaSource struct {
	Unavailable bool
	URL         string

	mu        sync.Mutex
	listeners map[int]playback.Listener
	nextID    int
	commands  []MediaCommand
	closed    bool
}

func NewDummyMediaSource(url string) *MediaSource {
	return &MediaSource{
		Unavailable: false,
		URL:         url,
		listeners:   map[int]playback.Listener{},
	}
}

func (m *MediaSource) Play() error {
	return m.record(MediaCommand{Name: "play"})
}

func (m *MediaSource) Pause() error {
	return m.record(MediaCommand{Name: "pause"})
}

func (m *MediaSource) Seek(offset float64) error {
	return m.record(MediaCommand{Name: "seek", Offset: offset})
}

func (m *MediaSource) record(command MediaCommand) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Unavailable {
		return NetworkFailure
	}

	m.commands = append(m.commands, command)
	return nil
}

func (m *MediaSource) Subscribe(listener playback.Listener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.listeners[id] = listener

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

func (m *MediaSource) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}

// Emit delivers the event to every current subscriber on the caller's goroutine
func (m *MediaSource) Emit(event playback.Event) {
	m.mu.Lock()
	listeners := make([]playback.Listener, 0, len(m.listeners))
	for _, listener := range m.listeners {
		listeners = append(listeners, listener)
	}
	m.mu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}
}

func (m *MediaSource) Commands() []MediaCommand {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]MediaCommand{}, m.commands...)
}

func (m *MediaSource) ListenerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.listeners)
}

func (m *MediaSource) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.closed
}

// MediaSources hands out dummy sources and keeps them for inspection,
// keyed by the URL they were created for
type MediaSources struct {
	mu      sync.Mutex
	created map[string]*MediaSource
	order   []*MediaSource
}

func NewDummyMediaSources() *MediaSources {
	return &MediaSources{
		created: map[string]*MediaSource{},
	}
}

func (m *MediaSources) New(url string) *MediaSource {
	source := NewDummyMediaSource(url)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.created[url] = source
	m.order = append(m.order, source)

	return source
}

func (m *MediaSources) Get(url string) *MediaSource {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.created[url]
}

func (m *MediaSources) All() []*MediaSource {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]*MediaSource{}, m.order...)
}
