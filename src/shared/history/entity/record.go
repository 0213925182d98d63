package historyentity

import (
	"context"
	"time"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

// Record is one successful split, kept per session
type Record struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	FileName  string    `json:"file_name"`
	MediaType string    `json:"media_type"`
	Vocals    string    `json:"vocals"`
	Karaoke   string    `json:"karaoke"`
	CreatedAt time.Time `json:"created_at"`
}

//counterfeiter:generate . Store
type Store interface {
	PutRecord(ctx context.Context, record Record) error
	ListRecords(ctx context.Context, sessionID string) ([]Record, error)
}
