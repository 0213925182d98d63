package orchestrator

import (
	"github.com/veedubyou/split-studio/src/shared/playback"
	"github.com/veedubyou/split-studio/src/shared/split/entity"
)

type TrackSnapshot struct {
	Stem     Stem
	Title    string
	URL      string
	State    playback.State
	Progress float64
}

type Snapshot struct {
	SessionID    string
	Phase        Phase
	FileName     string
	MediaType    string
	ErrorMessage string
	Result       *splitentity.SplitResult
	Tracks       []TrackSnapshot
}

// IntakeEnabled is false while a split is processing
func (s Snapshot) IntakeEnabled() bool {
	return s.Phase != Processing
}

func (p *Page) Snapshot() Snapshot {
	p.mu.Lock()
	snapshot := Snapshot{
		SessionID:    p.config.SessionID,
		Phase:        p.phase,
		ErrorMessage: p.errorMessage,
	}

	if p.file != nil {
		snapshot.FileName = p.file.Name
		snapshot.MediaType = p.file.MediaType
	}

	if p.result != nil {
		result := *p.result
		snapshot.Result = &result
	}

	tracks := append([]Track{}, p.tracks...)
	p.mu.Unlock()

	for _, track := range tracks {
		snapshot.Tracks = append(snapshot.Tracks, TrackSnapshot{
			Stem:     track.Stem,
			Title:    track.Title,
			URL:      track.URL,
			State:    track.Player.State(),
			Progress: track.Player.Progress(),
		})
	}

	return snapshot
}
