package playback

type EventType string

// named after the media element events they mirror
const (
	MetadataLoaded EventType = "loadedmetadata"
	TimeAdvanced   EventType = "timeupdate"
	Ended          EventType = "ended"
	Played         EventType = "play"
	Paused         EventType = "pause"
)

func (e EventType) Valid() bool {
	switch e {
	case MetadataLoaded, TimeAdvanced, Ended, Played, Paused:
		return true
	default:
		return false
	}
}

// Event carries the duration for MetadataLoaded and the playhead position
// for everything else
type Event struct {
	Type EventType `json:"type"`
	Time float64   `json:"time"`
}

type Listener func(event Event)

// MediaSource is the host's playback capability for a single track.
// Commands may complete asynchronously, the outcome is reported back
// through events.
type MediaSource interface {
	Play() error
	Pause() error
	Seek(offset float64) error
	Subscribe(listener Listener) (unsubscribe func())
	Close() error
}
