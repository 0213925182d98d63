package sessionerrors

import (
	"github.com/veedubyou/split-studio/src/server/internal/errors/api"
)

const (
	SessionNotFoundCode      = api.ErrorCode("session_not_found")
	TrackNotFoundCode        = api.ErrorCode("track_not_found")
	SubmissionNotAllowedCode = api.ErrorCode("submission_not_allowed")
	BadUploadCode            = api.ErrorCode("bad_upload")
	BadSeekCode              = api.ErrorCode("bad_seek")
	BadMediaEventCode        = api.ErrorCode("bad_media_event")
	HistoryUnavailableCode   = api.ErrorCode("history_unavailable")
)
