package storage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/replypilot/server/internal/assistant/model"
	errx "github.com/replypilot/server/internal/core/error"
	logx "github.com/replypilot/server/pkg/logger"
)

// LocalStore writes drafts to the local filesystem under a root directory,
// creating parent directories as needed. The bucket parameter does not apply to
// local saves and is ignored.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) Store(ctx context.Context, content, locator string, target model.SaveTarget, bucket string) error {
	path := filepath.Join(s.root, locator)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errx.WrapPersistence(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errx.WrapPersistence(err)
	}
	logx.Debug().Str("path", path).Int("bytes", len(content)).Msg("draft written to local file")
	return nil
}

var _ model.Store = (*LocalStore)(nil)
