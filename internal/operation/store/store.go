package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/ledger/internal/operation"
)

// Store keeps operations in a single JSON file. Every call reads the whole file and
// every mutation writes it back, so it is meant for small personal ledgers.
//
// Mutations hold mu for the full read-modify-write cycle; the file is replaced by
// renaming a fully written temporary file over it.
type Store struct {
	path string

	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

func New(path string) *Store {
	return &Store{
		path:  path,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (s *Store) Path() string {
	return s.path
}

// Init creates an empty store file when none exists yet.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", operation.ErrStoreUnavailable, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	return s.persist(ctx, &snapshot{})
}

// Reset deletes every stored operation.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.persist(ctx, &snapshot{})
}

func (s *Store) ListOperations(_ context.Context, filter operation.Filter) ([]*operation.Operation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return nil, err
	}

	ops := make([]*operation.Operation, 0, len(snap.ops))

	for _, op := range snap.ops {
		if operation.Matches(filter, op) {
			ops = append(ops, op)
		}
	}

	return ops, nil
}

func (s *Store) GetOperation(_ context.Context, id string) (*operation.Operation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return nil, err
	}

	op, ok := snap.get(id)
	if !ok {
		return nil, fmt.Errorf("getting operation %s: %w", id, operation.ErrRecordNotFound)
	}

	return op, nil
}

// CreateOperation assigns op an id (unless it carries one) and a creation time, then
// stores it. A caller-supplied id that is already taken is rejected.
func (s *Store) CreateOperation(ctx context.Context, op *operation.Operation) error {
	return s.CreateOperations(ctx, []*operation.Operation{op})
}

// CreateOperations stores all ops in a single write. Nothing is stored, and no op is
// modified, if any op fails.
func (s *Store) CreateOperations(ctx context.Context, ops []*operation.Operation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return err
	}

	createdAt := s.now().Truncate(time.Microsecond)
	stored := make([]*operation.Operation, len(ops))

	for i, op := range ops {
		rec := *op
		if err := s.insert(snap, &rec, createdAt); err != nil {
			return err
		}

		stored[i] = &rec
	}

	if err := s.persist(ctx, snap); err != nil {
		return err
	}

	for i, op := range ops {
		op.ID = stored[i].ID
		op.CreatedAt = stored[i].CreatedAt
	}

	return nil
}

func (s *Store) insert(snap *snapshot, op *operation.Operation, createdAt time.Time) error {
	if op.ID == "" {
		id := s.newID()
		for snap.has(id) {
			id = s.newID()
		}

		op.ID = id
	} else if snap.has(op.ID) {
		return fmt.Errorf("creating operation %s: %w", op.ID, operation.ErrRecordExists)
	}

	op.CreatedAt = createdAt
	snap.add(op)

	return nil
}

func (s *Store) UpdateOperation(ctx context.Context, id string, params operation.UpdateParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return err
	}

	op, ok := snap.get(id)
	if !ok {
		return fmt.Errorf("updating operation %s: %w", id, operation.ErrRecordNotFound)
	}

	params.Apply(op)

	return s.persist(ctx, snap)
}

func (s *Store) DeleteOperation(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return err
	}

	if !snap.remove(id) {
		return fmt.Errorf("deleting operation %s: %w", id, operation.ErrRecordNotFound)
	}

	return s.persist(ctx, snap)
}

func (s *Store) load() (*snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", operation.ErrStoreUnavailable, err)
	}

	snap, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %w", operation.ErrStoreUnavailable, s.path, err)
	}

	return snap, nil
}

// persist writes snap to a temporary file next to the store and renames it into place.
func (s *Store) persist(ctx context.Context, snap *snapshot) error {
	data, err := encode(snap)
	if err != nil {
		return fmt.Errorf("encoding operations: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %w", operation.ErrStoreUnavailable, err)
	}

	tmpName := tmp.Name()

	if err := writeAndSync(tmp, data); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %w", operation.ErrStoreUnavailable, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replacing store file: %w", operation.ErrStoreUnavailable, err)
	}

	slog.DebugContext(ctx, "store persisted", "path", s.path, "operations", len(snap.ops))

	return nil
}

func writeAndSync(f *os.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}

	if err := f.Chmod(0o644); err != nil {
		f.Close()
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
