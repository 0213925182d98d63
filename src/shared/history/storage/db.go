package historystorage

import (
	"context"

	"github.com/veedubyou/split-studio/src/shared/history/entity"
	"github.com/veedubyou/split-studio/src/shared/lib/dynamo"
	"github.com/veedubyou/split-studio/src/shared/lib/errors/mark"
	"github.com/veedubyou/split-studio/src/shared/lib/jsonlib"
	"golang.org/x/exp/slices"
)

const (
	HistoryTable = "SplitHistory"
	sessionIDKey = "session_id"
)

type dbRecord map[string]any

var _ historyentity.Store = DB{}

type DB struct {
	dynamoDB dynamolib.DynamoDBWrapper
}

func NewDB(dynamoDB dynamolib.DynamoDBWrapper) DB {
	return DB{
		dynamoDB: dynamoDB,
	}
}

func (d DB) PutRecord(ctx context.Context, record historyentity.Record) error {
	if record.ID == "" {
		return mark.Message(IDEmptyMark, "History record has no ID")
	}

	recordMap, err := jsonlib.StructToMap(record)
	if err != nil {
		return mark.Wrap(err, MarshalMark, "Failed to convert history record to a map")
	}

	err = d.dynamoDB.Table(HistoryTable).
		Put(recordMap).
		RunWithContext(ctx)
	if err != nil {
		return mark.Wrap(err, DefaultErrorMark, "Failed to put history record")
	}

	return nil
}

// ListRecords returns a session's records, oldest first
func (d DB) ListRecords(ctx context.Context, sessionID string) ([]historyentity.Record, error) {
	values := []dbRecord{}
	err := d.dynamoDB.Table(HistoryTable).
		ScanWhereEquals(sessionIDKey, sessionID).
		AllWithContext(ctx, &values)
	if err != nil {
		return nil, mark.Wrap(err, DefaultErrorMark, "Failed to scan history records")
	}

	records := make([]historyentity.Record, 0, len(values))
	for _, value := range values {
		record, err := jsonlib.MapToStruct[historyentity.Record](value)
		if err != nil {
			return nil, mark.Wrap(err, UnmarshalMark, "Failed to transform DB map back to history record")
		}

		records = append(records, record)
	}

	slices.SortStableFunc(records, func(a, b historyentity.Record) bool {
		return a.CreatedAt.Before(b.CreatedAt)
	})

	return records, nil
}
