// Package storage implements the persistence port: a local filesystem backend,
// a remote (Redis-backed, bucket-keyed) backend, and the target dispatcher the
// graph actually talks to.
package storage

import (
	"context"
	"fmt"

	"github.com/replypilot/server/internal/assistant/model"
	errx "github.com/replypilot/server/internal/core/error"
)

// TargetStore dispatches a save to the backend named by its target. Remote may
// be nil when no remote backend is configured; remote saves then fail with a
// persistence error instead of panicking.
type TargetStore struct {
	local  model.Store
	remote model.Store
}

func NewTargetStore(local, remote model.Store) *TargetStore {
	return &TargetStore{local: local, remote: remote}
}

func (s *TargetStore) Store(ctx context.Context, content, locator string, target model.SaveTarget, bucket string) error {
	switch target {
	case model.SaveTargetLocal:
		return s.local.Store(ctx, content, locator, target, bucket)
	case model.SaveTargetRemote:
		if s.remote == nil {
			return errx.WrapPersistence(fmt.Errorf("remote storage is not configured"))
		}
		return s.remote.Store(ctx, content, locator, target, bucket)
	default:
		return errx.WrapPersistence(fmt.Errorf("unknown save target %q", target))
	}
}

var _ model.Store = (*TargetStore)(nil)
