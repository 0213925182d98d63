package history

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/veedubyou/split-studio/src/shared/history/entity"
	"github.com/veedubyou/split-studio/src/shared/split/entity"
)

// Recorder turns finished splits into history records
type Recorder struct {
	store historyentity.Store
	now   func() time.Time
}

func NewRecorder(store historyentity.Store) Recorder {
	return Recorder{
		store: store,
		now:   time.Now,
	}
}

func (r Recorder) RecordSplit(ctx context.Context, sessionID string, file splitentity.UploadedFile, result splitentity.SplitResult) error {
	record := historyentity.Record{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		FileName:  file.Name,
		MediaType: file.MediaType,
		Vocals:    result.Vocals,
		Karaoke:   result.Karaoke,
		CreatedAt: r.now().UTC(),
	}

	if err := r.store.PutRecord(ctx, record); err != nil {
		return errors.Wrap(err, "Failed to store split record")
	}

	return nil
}

func (r Recorder) List(ctx context.Context, sessionID string) ([]historyentity.Record, error) {
	records, err := r.store.ListRecords(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to list split records")
	}

	return records, nil
}
