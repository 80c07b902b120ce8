package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// fileStateRepository stores one JSON document per session in a directory.
// It is the server-side analog of the storefront's local-storage mirror.
type fileStateRepository struct {
	dir string
}

// NewFileStateRepository creates the directory if needed and returns a
// file-backed StateRepository.
func NewFileStateRepository(dir string) (StateRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &fileStateRepository{dir: dir}, nil
}

// Load reads the session's document. A missing file means no saved state.
func (r *fileStateRepository) Load(ctx context.Context, sessionID string) (*SessionState, error) {
	data, err := os.ReadFile(r.path(sessionID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to read session state: %w", err)
	}

	state := &SessionState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("failed to decode session state: %w", err)
	}
	return state, nil
}

// Save writes the document through a temp file and rename so a crash never
// leaves a half-written mirror behind.
func (r *fileStateRepository) Save(ctx context.Context, sessionID string, state *SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session state: %w", err)
	}

	tmp := r.path(sessionID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write session state: %w", err)
	}
	if err := os.Rename(tmp, r.path(sessionID)); err != nil {
		return fmt.Errorf("failed to replace session state: %w", err)
	}
	return nil
}

// Delete removes the session's document. Deleting absent state is a no-op.
func (r *fileStateRepository) Delete(ctx context.Context, sessionID string) error {
	if err := os.Remove(r.path(sessionID)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete session state: %w", err)
	}
	return nil
}

// path confines the document to the state directory regardless of what the
// caller passed as a session id.
func (r *fileStateRepository) path(sessionID string) string {
	return filepath.Join(r.dir, filepath.Base(sessionID)+".json")
}
