package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// postgresStateRepository stores session state as a JSONB document per
// session id. It is an alternative mirror backend for deployments that
// already run Postgres; the semantics stay best-effort write-through.
type postgresStateRepository struct {
	db *sql.DB
}

// NewPostgresStateRepository creates a new Postgres-backed StateRepository.
func NewPostgresStateRepository(db *sql.DB) StateRepository {
	return &postgresStateRepository{db: db}
}

// Load retrieves the session's document using parameterized queries.
func (r *postgresStateRepository) Load(ctx context.Context, sessionID string) (*SessionState, error) {
	query := `
		SELECT state
		FROM session_state
		WHERE session_id = $1
	`

	var data []byte
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to load session state: %w", err)
	}

	state := &SessionState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("failed to decode session state: %w", err)
	}
	return state, nil
}

// Save upserts the session's document.
func (r *postgresStateRepository) Save(ctx context.Context, sessionID string, state *SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session state: %w", err)
	}

	query := `
		INSERT INTO session_state (session_id, state, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (session_id) DO UPDATE
		SET state = EXCLUDED.state, updated_at = now()
	`

	if _, err := r.db.ExecContext(ctx, query, sessionID, data); err != nil {
		return fmt.Errorf("failed to save session state: %w", err)
	}
	return nil
}

// Delete removes the session's document. Deleting absent state is a no-op.
func (r *postgresStateRepository) Delete(ctx context.Context, sessionID string) error {
	query := `DELETE FROM session_state WHERE session_id = $1`

	if _, err := r.db.ExecContext(ctx, query, sessionID); err != nil {
		return fmt.Errorf("failed to delete session state: %w", err)
	}
	return nil
}
