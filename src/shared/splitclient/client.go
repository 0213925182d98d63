package splitclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"
	"github.com/veedubyou/split-studio/src/shared/config/prod"
	"github.com/veedubyou/split-studio/src/shared/split/entity"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

const (
	splitPath     = "/split"
	fileFieldName = "file"
)

//counterfeiter:generate . SplitService
type SplitService interface {
	SplitAudio(ctx context.Context, file splitentity.UploadedFile) (splitentity.SplitResult, error)
	GetAudioURL(relativePath string) string
	CheckBackendHealth(ctx context.Context) bool
}

type Config struct {
	Origin     string
	Timeout    time.Duration
	HealthPath string
}

func DefaultConfig() Config {
	return Config{
		Origin:     prod.SplitBackendOrigin,
		Timeout:    prod.SplitBackendTimeout,
		HealthPath: prod.SplitBackendHealthPath,
	}
}

var _ SplitService = Client{}

type Client struct {
	config     Config
	httpClient *http.Client
}

func NewClient(config Config) Client {
	return Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// SplitAudio uploads the file to the split backend. Every failure comes back
// as an *APIError.
func (c Client) SplitAudio(ctx context.Context, file splitentity.UploadedFile) (splitentity.SplitResult, error) {
	logger := log.WithFields(log.Fields{
		"file_name":  file.Name,
		"media_type": file.MediaType,
		"size":       len(file.Content),
	})

	body, contentType, err := encodeMultipartFile(file)
	if err != nil {
		return splitentity.SplitResult{}, unexpectedFailure(errors.Wrap(err, "Failed to encode multipart body"))
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Origin+splitPath, body)
	if err != nil {
		return splitentity.SplitResult{}, unexpectedFailure(errors.Wrap(err, "Failed to create split request"))
	}
	request.Header.Set("Content-Type", contentType)

	logger.Info("Sending file to split backend")
	response, err := c.httpClient.Do(request)
	if err != nil {
		logger.WithError(err).Error("Split request did not complete")
		return splitentity.SplitResult{}, networkFailure(errors.Wrap(err, "Split request failed"))
	}

	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		logger.WithError(err).Error("Failed to read split response")
		return splitentity.SplitResult{}, networkFailure(errors.Wrap(err, "Failed to read split response body"))
	}

	logger = logger.WithField("status", response.StatusCode)

	if !isSuccessStatus(response.StatusCode) {
		logger.Error("Split backend returned a failure status")
		return splitentity.SplitResult{}, remoteFailure(response.StatusCode, serverErrorMessage(responseBody))
	}

	result, err := decodeSplitResult(responseBody)
	if err != nil {
		logger.WithError(err).Error("Split backend returned an unexpected body")
		return splitentity.SplitResult{}, malformedResponse(response.StatusCode, err)
	}

	logger.Info("Split completed")
	return result, nil
}

// GetAudioURL is plain concatenation, the path is neither validated nor escaped
func (c Client) GetAudioURL(relativePath string) string {
	return c.config.Origin + relativePath
}

// CheckBackendHealth never fails, an unreachable backend is simply false
func (c Client) CheckBackendHealth(ctx context.Context) bool {
	logger := log.WithField("origin", c.config.Origin)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.Origin+c.config.HealthPath, nil)
	if err != nil {
		logger.WithError(err).Debug("Failed to create health check request")
		return false
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		logger.WithError(err).Debug("Split backend is unreachable")
		return false
	}

	defer response.Body.Close()
	_, _ = io.Copy(io.Discard, response.Body)

	return isSuccessStatus(response.StatusCode)
}

func isSuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func encodeMultipartFile(file splitentity.UploadedFile) (io.Reader, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, fileFieldName, quoteEscaper.Replace(file.Name)))

	mediaType := file.MediaType
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	header.Set("Content-Type", mediaType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", errors.Wrap(err, "Failed to create file part")
	}

	if _, err := part.Write(file.Content); err != nil {
		return nil, "", errors.Wrap(err, "Failed to write file contents")
	}

	if err := writer.Close(); err != nil {
		return nil, "", errors.Wrap(err, "Failed to close multipart writer")
	}

	return body, writer.FormDataContentType(), nil
}

func serverErrorMessage(body []byte) string {
	payload := map[string]any{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	message, ok := payload["error"].(string)
	if !ok {
		return ""
	}

	return message
}

func decodeSplitResult(body []byte) (splitentity.SplitResult, error) {
	payload := map[string]any{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return splitentity.SplitResult{}, errors.Wrap(err, "Response body is not a JSON object")
	}

	vocals, ok := payload["vocals"].(string)
	if !ok {
		return splitentity.SplitResult{}, errors.New("Response is missing the vocals path")
	}

	karaoke, ok := payload["karaoke"].(string)
	if !ok {
		return splitentity.SplitResult{}, errors.New("Response is missing the karaoke path")
	}

	return splitentity.SplitResult{
		Vocals:  vocals,
		Karaoke: karaoke,
	}, nil
}
