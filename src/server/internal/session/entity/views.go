package sessionentity

import (
	"github.com/veedubyou/split-studio/src/server/internal/session/bridge"
)

type TrackView struct {
	Stem             string          `json:"stem"`
	Title            string          `json:"title"`
	URL              string          `json:"url"`
	IsPlaying        bool            `json:"is_playing"`
	Intent           string          `json:"intent"`
	CurrentTime      float64         `json:"current_time"`
	Duration         *float64        `json:"duration"`
	Progress         float64         `json:"progress"`
	CurrentTimeLabel string          `json:"current_time_label"`
	DurationLabel    string          `json:"duration_label"`
	PendingCommand   *bridge.Command `json:"pending_command,omitempty"`
}

type SessionView struct {
	ID            string      `json:"id"`
	Phase         string      `json:"phase"`
	IntakeEnabled bool        `json:"intake_enabled"`
	FileName      string      `json:"file_name,omitempty"`
	MediaType     string      `json:"media_type,omitempty"`
	ErrorMessage  string      `json:"error_message,omitempty"`
	Tracks        []TrackView `json:"tracks"`
}

type IntakeView struct {
	Outcome string `json:"outcome"`
	SessionView
}

// SeekRequest takes either a fraction or a pointer position on a bar
type SeekRequest struct {
	Fraction *float64 `json:"fraction"`
	PointerX *float64 `json:"pointerX"`
	Width    *float64 `json:"width"`
}

type SeekView struct {
	Offset float64   `json:"offset"`
	Track  TrackView `json:"track"`
}

type DownloadView struct {
	Filename    string `json:"filename"`
	SavedURL    string `json:"saved_url,omitempty"`
	FallbackURL string `json:"fallback_url,omitempty"`
}

type HealthView struct {
	Reachable bool `json:"reachable"`
}
