// Package store keeps named restore points of the tracked history in a bbolt
// file next to the SQLite database.
//
// Buckets:
//
//	snapshots: one JSON-encoded export per snapshot, keyed snap:<name>
//	_meta:     schema version and created_at
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/WagnerRodrigues181/nutri-lens/internal/service"
)

const schemaVersion = 1

var (
	bucketSnapshots = []byte("snapshots")
	bucketInternal  = []byte("_meta")
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the bbolt file at path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create snapshot directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open snapshot store %s: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate snapshot store: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Path() string {
	return s.db.Path()
}

func (s *Store) migrate() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketSnapshots, bucketInternal} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		meta := tx.Bucket(bucketInternal)
		if meta.Get([]byte("schema_version")) == nil {
			if err := meta.Put([]byte("schema_version"), []byte(fmt.Sprintf("%d", schemaVersion))); err != nil {
				return err
			}
			if err := meta.Put([]byte("created_at"), []byte(time.Now().UTC().Format(time.RFC3339))); err != nil {
				return err
			}
		}
		return nil
	})
}

// SchemaVersion reports the version recorded when the file was created.
func (s *Store) SchemaVersion() (string, error) {
	var v string
	err := s.db.View(func(tx *bolt.Tx) error {
		v = string(tx.Bucket(bucketInternal).Get([]byte("schema_version")))
		return nil
	})
	return v, err
}

// SnapshotInfo describes a snapshot without its payload.
type SnapshotInfo struct {
	Name      string    `json:"name"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Days      int       `json:"days"`
	Meals     int       `json:"meals"`
}

type Snapshot struct {
	SnapshotInfo
	Export service.ExportFile `json:"export"`
}

func snapshotKey(name string) []byte {
	return []byte("snap:" + name)
}

// NormalizeName trims name and rejects names that cannot be used as keys.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("snapshot name is required")
	}
	if strings.ContainsAny(name, "\n\r\t") {
		return "", fmt.Errorf("snapshot name %q contains control characters", name)
	}
	return name, nil
}

// Save stores export under name, replacing any snapshot with the same name.
func (s *Store) Save(name, reason string, export *service.ExportFile, now time.Time) (SnapshotInfo, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return SnapshotInfo{}, err
	}
	if export == nil {
		return SnapshotInfo{}, fmt.Errorf("snapshot %q: export is required", name)
	}
	if now.IsZero() {
		now = time.Now()
	}
	snap := Snapshot{
		SnapshotInfo: SnapshotInfo{
			Name:      name,
			Reason:    strings.TrimSpace(reason),
			CreatedAt: now.UTC(),
			Days:      len(export.History),
			Meals:     export.History.MealCount(),
		},
		Export: *export,
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return SnapshotInfo{}, fmt.Errorf("encode snapshot %q: %w", name, err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSnapshots).Put(snapshotKey(name), b)
	})
	if err != nil {
		return SnapshotInfo{}, fmt.Errorf("save snapshot %q: %w", name, err)
	}
	return snap.SnapshotInfo, nil
}

func (s *Store) Get(name string) (*Snapshot, error) {
	name = strings.TrimSpace(name)
	var snap *Snapshot
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketSnapshots).Get(snapshotKey(name))
		if v == nil {
			return nil
		}
		snap = &Snapshot{}
		return json.Unmarshal(v, snap)
	})
	if err != nil {
		return nil, fmt.Errorf("get snapshot %q: %w", name, err)
	}
	if snap == nil {
		return nil, fmt.Errorf("%w: %q", ErrSnapshotNotFound, name)
	}
	return snap, nil
}

// List returns snapshot summaries, newest first.
func (s *Store) List() ([]SnapshotInfo, error) {
	out := make([]SnapshotInfo, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSnapshots).ForEach(func(k, v []byte) error {
			var info SnapshotInfo
			if err := json.Unmarshal(v, &info); err != nil {
				return fmt.Errorf("decode snapshot %s: %w", k, err)
			}
			out = append(out, info)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) Delete(name string) error {
	name = strings.TrimSpace(name)
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSnapshots)
		if b.Get(snapshotKey(name)) == nil {
			return fmt.Errorf("%w: %q", ErrSnapshotNotFound, name)
		}
		return b.Delete(snapshotKey(name))
	})
}
