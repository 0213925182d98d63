package orchestrator

import (
	"time"

	"github.com/cockroachdb/errors/domains"
)

type Phase string

const (
	Idle       Phase = "idle"
	Processing Phase = "processing"
	Result     Phase = "result"
	Error      Phase = "error"
)

type Stem string

const (
	VocalsStem       Stem = "vocals"
	InstrumentalStem Stem = "instrumental"
)

var stemTitles = map[Stem]string{
	VocalsStem:       "Vocals Only",
	InstrumentalStem: "Instrumental",
}

func (s Stem) Title() string {
	return stemTitles[s]
}

func (s Stem) Valid() bool {
	_, ok := stemTitles[s]
	return ok
}

var (
	SubmissionNotAllowedMark = domains.New("submission_not_allowed")
	PageClosedMark           = domains.New("page_closed")
)

type Transition struct {
	SessionID string    `json:"session_id"`
	From      Phase     `json:"from"`
	To        Phase     `json:"to"`
	FileName  string    `json:"file_name,omitempty"`
	Message   string    `json:"message,omitempty"`
	At        time.Time `json:"at"`
}
