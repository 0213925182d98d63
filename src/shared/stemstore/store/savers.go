package store

import (
	"context"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"
	"github.com/veedubyou/split-studio/src/shared/playback"
	"github.com/veedubyou/split-studio/src/shared/stemstore/entity"
	"github.com/veedubyou/split-studio/src/shared/stemstore/storagepath"
)

var _ playback.Saver = ArchiveSaver{}

// ArchiveSaver keeps downloaded stems in cloud storage, grouped by session
type ArchiveSaver struct {
	fileStore     stemstoreentity.FileStore
	pathGenerator storagepath.Generator
	sessionID     string
}

func NewArchiveSaver(fileStore stemstoreentity.FileStore, pathGenerator storagepath.Generator, sessionID string) ArchiveSaver {
	return ArchiveSaver{
		fileStore:     fileStore,
		pathGenerator: pathGenerator,
		sessionID:     sessionID,
	}
}

func (a ArchiveSaver) Save(ctx context.Context, filename string, content []byte) (string, error) {
	fileURL := a.pathGenerator.GeneratePath(a.sessionID, filename)

	if err := a.fileStore.WriteFile(ctx, fileURL, content); err != nil {
		return "", errors.Wrap(err, "Failed to write stem to the archive")
	}

	log.WithFields(log.Fields{
		"session_id": a.sessionID,
		"url":        fileURL,
		"size":       len(content),
	}).Info("Archived stem")

	return fileURL, nil
}

var _ playback.Saver = LocalDirSaver{}

// LocalDirSaver writes downloads into a directory on this machine
type LocalDirSaver struct {
	Dir string
}

func (l LocalDirSaver) Save(_ context.Context, filename string, content []byte) (string, error) {
	if err := os.MkdirAll(l.Dir, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "Failed to create download directory")
	}

	path := filepath.Join(l.Dir, filepath.Base(filename))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", errors.Wrap(err, "Failed to write downloaded file")
	}

	return path, nil
}
