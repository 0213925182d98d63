package sessiongateway

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/labstack/echo/v4"
	"github.com/veedubyou/split-studio/src/server/internal/errors/api"
	"github.com/veedubyou/split-studio/src/server/internal/errors/gateway"
	"github.com/veedubyou/split-studio/src/server/internal/lib/request"
	"github.com/veedubyou/split-studio/src/server/internal/session/entity"
	"github.com/veedubyou/split-studio/src/server/internal/session/errors"
	"github.com/veedubyou/split-studio/src/server/internal/session/usecase"
	"github.com/veedubyou/split-studio/src/shared/playback"
	"github.com/veedubyou/split-studio/src/shared/split/entity"
)

const uploadFieldName = "file"

type Gateway struct {
	usecase sessionusecase.Usecase
}

func NewGateway(usecase sessionusecase.Usecase) Gateway {
	return Gateway{
		usecase: usecase,
	}
}

func (g Gateway) CreateSession(c echo.Context) error {
	session := g.usecase.CreateSession()
	return c.JSON(http.StatusCreated, session)
}

func (g Gateway) GetSession(c echo.Context, sessionID string) error {
	session, apiErr := g.usecase.GetSession(sessionID)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, session)
}

func (g Gateway) Drop(c echo.Context, sessionID string) error {
	files, apiErr := uploadedFiles(c)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	result, apiErr := g.usecase.Drop(sessionID, files)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusAccepted, result)
}

func (g Gateway) Pick(c echo.Context, sessionID string) error {
	files, apiErr := uploadedFiles(c)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	result, apiErr := g.usecase.Pick(sessionID, files)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusAccepted, result)
}

func (g Gateway) Reset(c echo.Context, sessionID string) error {
	session, apiErr := g.usecase.Reset(sessionID)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, session)
}

func (g Gateway) TogglePlay(c echo.Context, sessionID string, stem string) error {
	track, apiErr := g.usecase.TogglePlay(sessionID, stem)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, track)
}

func (g Gateway) Seek(c echo.Context, sessionID string, stem string) error {
	seekRequest := sessionentity.SeekRequest{}
	err := c.Bind(&seekRequest)
	if err != nil {
		err = errors.Wrap(err, "Failed to bind request body to seek request")
		apiErr := api.CommitError(err,
			sessionerrors.BadSeekCode,
			"The seek request was malformed. Please contact the developer")
		return gateway.ErrorResponse(c, apiErr)
	}

	seek, apiErr := g.usecase.Seek(sessionID, stem, seekRequest)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, seek)
}

func (g Gateway) PostMediaEvent(c echo.Context, sessionID string, stem string) error {
	event := playback.Event{}
	err := c.Bind(&event)
	if err != nil {
		err = errors.Wrap(err, "Failed to bind request body to media event")
		apiErr := api.CommitError(err,
			sessionerrors.BadMediaEventCode,
			"The media event was malformed. Please contact the developer")
		return gateway.ErrorResponse(c, apiErr)
	}

	track, apiErr := g.usecase.PostMediaEvent(sessionID, stem, event)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, track)
}

func (g Gateway) Download(c echo.Context, sessionID string, stem string) error {
	ctx := request.Context(c)

	download, apiErr := g.usecase.Download(ctx, sessionID, stem)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, download)
}

func (g Gateway) History(c echo.Context, sessionID string) error {
	ctx := request.Context(c)

	records, apiErr := g.usecase.History(ctx, sessionID)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, records)
}

func (g Gateway) DeleteSession(c echo.Context, sessionID string) error {
	apiErr := g.usecase.DeleteSession(sessionID)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.NoContent(http.StatusOK)
}

func (g Gateway) BackendHealth(c echo.Context) error {
	ctx := request.Context(c)
	return c.JSON(http.StatusOK, g.usecase.BackendHealth(ctx))
}

// uploadedFiles reads every part under the upload field. The declared media
// type is whatever the part's Content-Type says.
func uploadedFiles(c echo.Context) ([]splitentity.UploadedFile, *api.Error) {
	badUpload := func(err error) *api.Error {
		return api.CommitError(err,
			sessionerrors.BadUploadCode,
			"The uploaded file could not be read. Please try again")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, badUpload(errors.Wrap(err, "Failed to parse multipart form"))
	}

	headers := form.File[uploadFieldName]
	if len(headers) == 0 {
		return nil, badUpload(errors.Newf("No %q field in the upload", uploadFieldName))
	}

	files := make([]splitentity.UploadedFile, 0, len(headers))
	for _, header := range headers {
		file, err := readUploadedFile(header)
		if err != nil {
			return nil, badUpload(err)
		}

		files = append(files, file)
	}

	return files, nil
}

func readUploadedFile(header *multipart.FileHeader) (splitentity.UploadedFile, error) {
	part, err := header.Open()
	if err != nil {
		return splitentity.UploadedFile{}, errors.Wrap(err, "Failed to open uploaded file")
	}

	defer part.Close()

	content, err := io.ReadAll(part)
	if err != nil {
		return splitentity.UploadedFile{}, errors.Wrap(err, "Failed to read uploaded file")
	}

	return splitentity.UploadedFile{
		Name:      header.Filename,
		MediaType: header.Header.Get(echo.HeaderContentType),
		Content:   content,
	}, nil
}
