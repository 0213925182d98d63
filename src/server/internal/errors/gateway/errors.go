package gateway

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/veedubyou/split-studio/src/server/api_error"
	"github.com/veedubyou/split-studio/src/server/internal/errors/api"
	"github.com/veedubyou/split-studio/src/server/internal/session/errors"
)

var httpStatusCodeMap = map[api.ErrorCode]int{
	api.DefaultErrorCode:                   http.StatusInternalServerError,
	sessionerrors.SessionNotFoundCode:      http.StatusNotFound,
	sessionerrors.TrackNotFoundCode:        http.StatusNotFound,
	sessionerrors.SubmissionNotAllowedCode: http.StatusConflict,
	sessionerrors.BadUploadCode:            http.StatusBadRequest,
	sessionerrors.BadSeekCode:              http.StatusBadRequest,
	sessionerrors.BadMediaEventCode:        http.StatusBadRequest,
	sessionerrors.HistoryUnavailableCode:   http.StatusServiceUnavailable,
}

// StatusCode is the HTTP status an error code is answered with
func StatusCode(errorCode api.ErrorCode) (int, bool) {
	statusCode, ok := httpStatusCodeMap[errorCode]
	return statusCode, ok
}

func ErrorResponse(c echo.Context, err *api.Error) error {
	statusCode, ok := StatusCode(err.ErrorCode)
	if !ok {
		msg := fmt.Sprintf("Error code %s has no HTTP status code mapping", err.ErrorCode)
		panic(msg)
	}

	return c.JSON(statusCode, api_error.NewJSONAPIError(string(err.ErrorCode), err.UserMessage, err.InternalError))
}
