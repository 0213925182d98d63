package terminal

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/veedubyou/split-studio/src/shared/playback"
)

const (
	DefaultRenderWait = 200 * time.Millisecond
	barWidth          = 30
)

// ProgressLine draws one player as
// "> Vocals Only [#####.....] 1:40 / 3:20"
func ProgressLine(title string, state playback.State, progress float64) string {
	marker := "||"
	if state.IsPlaying {
		marker = ">"
	}
	if state.Intent == playback.Intended {
		marker += "?"
	}

	filled := int(math.Round(progress * barWidth))
	filled = int(math.Max(0, math.Min(barWidth, float64(filled))))
	bar := strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled)

	return fmt.Sprintf("%s %s [%s] %s / %s",
		marker,
		title,
		bar,
		playback.FormatTime(state.CurrentTime),
		playback.FormatTime(state.Duration))
}

// ProgressRenderer redraws the progress line at most once per wait,
// however many media events arrive
type ProgressRenderer struct {
	player    *playback.Player
	debounced func(f func())

	mu      sync.Mutex
	out     io.Writer
	stopped bool
}

func NewProgressRenderer(player *playback.Player, out io.Writer, wait time.Duration) *ProgressRenderer {
	return &ProgressRenderer{
		player:    player,
		debounced: debounce.New(wait),
		out:       out,
	}
}

// Notify is a playback.Listener
func (r *ProgressRenderer) Notify(_ playback.Event) {
	r.debounced(r.Render)
}

func (r *ProgressRenderer) Render() {
	line := ProgressLine(r.player.Track().Title, r.player.State(), r.player.Progress())

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return
	}
	fmt.Fprintln(r.out, line)
}

// Stop silences the renderer, a redraw that is already scheduled prints
// nothing
func (r *ProgressRenderer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopped = true
}
