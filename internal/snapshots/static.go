package snapshots

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/preston-bernstein/qb-rankings-service/internal/domain/rankings"
	"github.com/preston-bernstein/qb-rankings-service/internal/logging"
)

//go:embed data/static.json
var embeddedStatic []byte

// Store defines how the static dataset is loaded.
type Store interface {
	LoadStatic() (*rankings.Snapshot, error)
}

// FSStore loads the static dataset from a JSON file on disk.
type FSStore struct {
	path string
}

// NewFSStore constructs a file-backed store for the snapshot at path.
func NewFSStore(path string) *FSStore {
	return &FSStore{path: path}
}

// LoadStatic reads and decodes the snapshot file.
func (s *FSStore) LoadStatic() (*rankings.Snapshot, error) {
	if s == nil || s.path == "" {
		return nil, errors.New("static data path not configured")
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decode(f)
}

// Embedded returns a fresh copy of the dataset compiled into the binary.
func Embedded() *rankings.Snapshot {
	snap, err := decode(bytes.NewReader(embeddedStatic))
	if err != nil {
		// Unreachable unless the embedded file is corrupt.
		panic(fmt.Sprintf("embedded static dataset: %v", err))
	}
	return snap
}

// LoadStatic returns the on-disk dataset at path when one is given and readable,
// otherwise the embedded dataset. Failures are logged and never returned.
func LoadStatic(path string, logger *slog.Logger) *rankings.Snapshot {
	if path == "" {
		return Embedded()
	}
	snap, err := NewFSStore(path).LoadStatic()
	if err != nil {
		logging.Warn(logger, "static dataset unreadable, using embedded copy",
			slog.String(logging.FieldPath, path),
			"error", err,
		)
		return Embedded()
	}
	return snap
}

func decode(r io.Reader) (*rankings.Snapshot, error) {
	var snap rankings.Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode static snapshot: %w", err)
	}
	return snap.Normalize(), nil
}
