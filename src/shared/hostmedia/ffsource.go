package hostmedia

import (
	"context"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"
	"github.com/veedubyou/split-studio/src/shared/executor"
	"github.com/veedubyou/split-studio/src/shared/playback"
	"golang.org/x/exp/maps"
)

const DefaultTickInterval = 250 * time.Millisecond

type Config struct {
	FFPlayPath   string
	FFProbePath  string
	TickInterval time.Duration
}

var _ playback.MediaSource = &FFSource{}

// FFSource plays a URL through ffplay. Pausing stops the process and
// playing again restarts it from the remembered offset. The duration comes
// from ffprobe in the background.
type FFSource struct {
	url      string
	config   Config
	executor executor.Executor
	now      func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	listeners   map[int]playback.Listener
	nextID      int
	duration    float64
	offset      float64
	startedAt   time.Time
	playing     bool
	stopProcess context.CancelFunc
	run         uint64
	closed      bool
}

func NewFFSource(url string, exec executor.Executor, config Config) *FFSource {
	if config.TickInterval <= 0 {
		config.TickInterval = DefaultTickInterval
	}

	ctx, cancel := context.WithCancel(context.Background())

	source := &FFSource{
		url:       url,
		config:    config,
		executor:  exec,
		now:       time.Now,
		ctx:       ctx,
		cancel:    cancel,
		listeners: map[int]playback.Listener{},
		duration:  math.NaN(),
	}

	go source.probe()
	return source
}

func (f *FFSource) logger() *log.Entry {
	return log.WithField("url", f.url)
}

func (f *FFSource) probe() {
	command := f.executor.CommandContext(f.ctx, f.config.FFProbePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		f.url)

	output, err := command.Output()
	if err != nil {
		f.logger().WithError(err).Error("Failed to probe media duration")
		return
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil || math.IsNaN(duration) || duration < 0 {
		f.logger().WithField("output", string(output)).Error("ffprobe returned an unusable duration")
		return
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.duration = duration
	f.mu.Unlock()

	f.emit(playback.Event{Type: playback.MetadataLoaded, Time: duration})
}

// Subscribe replays the duration to late subscribers once it is known
func (f *FFSource) Subscribe(listener playback.Listener) func() {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.listeners[id] = listener
	duration := f.duration
	f.mu.Unlock()

	if !math.IsNaN(duration) {
		listener(playback.Event{Type: playback.MetadataLoaded, Time: duration})
	}

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.listeners, id)
	}
}

func (f *FFSource) Play() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return errors.New("Media source is closed")
	}

	if f.playing {
		f.mu.Unlock()
		return nil
	}

	err := f.startLocked()
	f.mu.Unlock()

	if err != nil {
		return errors.Wrap(err, "Failed to start ffplay")
	}

	f.emit(playback.Event{Type: playback.Played, Time: f.currentOffset()})
	return nil
}

func (f *FFSource) Pause() error {
	f.mu.Lock()
	if !f.playing {
		f.mu.Unlock()
		return nil
	}

	f.stopLocked()
	offset := f.offset
	f.mu.Unlock()

	f.emit(playback.Event{Type: playback.Paused, Time: offset})
	return nil
}

// Seek moves the offset, restarting ffplay from there when playing
func (f *FFSource) Seek(offset float64) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return errors.New("Media source is closed")
	}

	offset = math.Max(0, offset)
	if !math.IsNaN(f.duration) {
		offset = math.Min(offset, f.duration)
	}

	wasPlaying := f.playing
	if wasPlaying {
		f.stopLocked()
	}

	f.offset = offset

	var err error
	if wasPlaying {
		err = f.startLocked()
	}
	f.mu.Unlock()

	if err != nil {
		f.emit(playback.Event{Type: playback.Paused, Time: offset})
		return errors.Wrap(err, "Failed to restart ffplay after seeking")
	}

	f.emit(playback.Event{Type: playback.TimeAdvanced, Time: offset})
	return nil
}

func (f *FFSource) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}

	if f.playing {
		f.stopLocked()
	}

	f.closed = true
	f.listeners = map[int]playback.Listener{}
	f.cancel()
	return nil
}

func (f *FFSource) startLocked() error {
	processCtx, stopProcess := context.WithCancel(f.ctx)

	command := f.executor.CommandContext(processCtx, f.config.FFPlayPath,
		"-nodisp",
		"-autoexit",
		"-loglevel", "quiet",
		"-ss", strconv.FormatFloat(f.offset, 'f', 3, 64),
		f.url)

	if err := command.Start(); err != nil {
		stopProcess()
		return err
	}

	f.run++
	f.playing = true
	f.startedAt = f.now()
	f.stopProcess = stopProcess

	go f.watch(f.run, command)
	go f.tick(f.run)

	return nil
}

func (f *FFSource) stopLocked() {
	f.offset = f.positionLocked()
	f.playing = false
	f.run++

	if f.stopProcess != nil {
		f.stopProcess()
		f.stopProcess = nil
	}
}

func (f *FFSource) positionLocked() float64 {
	if !f.playing {
		return f.offset
	}

	position := f.offset + f.now().Sub(f.startedAt).Seconds()
	if !math.IsNaN(f.duration) {
		position = math.Min(position, f.duration)
	}

	return position
}

func (f *FFSource) currentOffset() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.positionLocked()
}

func (f *FFSource) watch(run uint64, command executor.Command) {
	err := command.Wait()

	f.mu.Lock()
	if f.run != run {
		f.mu.Unlock()
		return
	}

	position := f.positionLocked()
	f.playing = false
	f.run++
	if f.stopProcess != nil {
		f.stopProcess()
		f.stopProcess = nil
	}

	if err != nil {
		f.offset = position
		f.mu.Unlock()

		f.logger().WithError(err).Error("ffplay exited unexpectedly")
		f.emit(playback.Event{Type: playback.Paused, Time: position})
		return
	}

	if !math.IsNaN(f.duration) {
		position = f.duration
	}
	f.offset = 0
	f.mu.Unlock()

	f.emit(playback.Event{Type: playback.TimeAdvanced, Time: position})
	f.emit(playback.Event{Type: playback.Ended, Time: position})
}

func (f *FFSource) tick(run uint64) {
	ticker := time.NewTicker(f.config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-f.ctx.Done():
			return
		case <-ticker.C:
		}

		f.mu.Lock()
		if f.run != run || !f.playing {
			f.mu.Unlock()
			return
		}
		position := f.positionLocked()
		f.mu.Unlock()

		f.emit(playback.Event{Type: playback.TimeAdvanced, Time: position})
	}
}

func (f *FFSource) emit(event playback.Event) {
	f.mu.Lock()
	listeners := maps.Values(f.listeners)
	f.mu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}
}
