package store

import (
	"context"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/cockroachdb/errors"
	"github.com/veedubyou/split-studio/src/shared/config"
	"github.com/veedubyou/split-studio/src/shared/stemstore/entity"
)

var _ stemstoreentity.FileStore = GoogleFileStore{}

type GoogleFileStore struct {
	storageClient *storage.Client
	storageHost   string
}

func NewGoogleFileStore(cloudStorageConfig config.CloudStorage) (GoogleFileStore, error) {
	googleStorageClient, err := storage.NewClient(context.Background(), cloudStorageConfig.ClientOptions()...)
	if err != nil {
		return GoogleFileStore{}, errors.Wrap(err, "Failed to create Google Cloud Storage client")
	}

	return GoogleFileStore{
		storageClient: googleStorageClient,
		storageHost:   cloudStorageConfig.GetStorageHost(),
	}, nil
}

func (g GoogleFileStore) WriteFile(ctx context.Context, fileURL string, fileContent []byte) (err error) {
	bucket, filePath, err := g.bucketAndPathFromURL(fileURL)
	if err != nil {
		return errors.Wrap(err, "Couldn't extract file path from URL")
	}

	objectHandle := g.objectHandle(bucket, filePath)
	writer := objectHandle.NewWriter(ctx)
	writer.ContentType = "audio/wav"
	defer func() {
		closeErr := writer.Close()
		if err == nil && closeErr != nil {
			err = errors.Wrap(closeErr, "Error occurred when closing the upload stream")
		}
	}()

	if _, err = writer.Write(fileContent); err != nil {
		return errors.Wrap(err, "Error occurred when uploading file")
	}

	return nil
}

func (g GoogleFileStore) bucketAndPathFromURL(fileURL string) (string, string, error) {
	return BucketAndPathFromURL(g.storageHost, fileURL)
}

func (g GoogleFileStore) objectHandle(bucket string, filePath string) *storage.ObjectHandle {
	return g.storageClient.Bucket(bucket).Object(filePath)
}

// BucketAndPathFromURL splits host/bucket/path/to/object into its bucket
// and object path
func BucketAndPathFromURL(storageHost string, fileURL string) (string, string, error) {
	if !strings.HasPrefix(fileURL, storageHost+"/") {
		return "", "", errors.New("File path given not in the Google cloud storage format")
	}

	bucketAndPath := strings.TrimPrefix(fileURL, storageHost+"/")

	chunks := strings.SplitN(bucketAndPath, "/", 2)
	if len(chunks) != 2 || chunks[0] == "" || chunks[1] == "" {
		return "", "", errors.New("File path given not in the Google cloud storage format")
	}

	return chunks[0], chunks[1], nil
}
