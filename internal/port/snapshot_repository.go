package port

import (
	"context"
	"errors"
)

var ErrSnapshotAbsent = errors.New("snapshot absent")

type SnapshotRepository interface {
	// Load returns the last saved snapshot, or ErrSnapshotAbsent if none was ever written
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the previous snapshot; readers never observe a partial write
	Save(ctx context.Context, snapshot []byte) error
}
