package dummy

import (
	"context"
	"sync"

	"github.com/veedubyou/split-studio/src/shared/stemstore/entity"
)

var _ stemstoreentity.FileStore = &FileStore{}

func NewDummyFileStore() *FileStore {
	return &FileStore{
		Unavailable: false,
		State:       make(map[string][]byte),
	}
}

type FileStore struct {
	Unavailable bool
	State       map[string][]byte
	mu          sync.Mutex
}

func (t *FileStore) WriteFile(_ context.Context, url string, fileContent []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.Unavailable {
		return NetworkFailure
	}

	t.State[url] = append([]byte{}, fileContent...)

	return nil
}
