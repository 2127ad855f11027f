package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/bridgette-app/bridgette/internal/model"
)

// ErrSnapshotEmpty is returned when no snapshot exists for the requested data.
var ErrSnapshotEmpty = errors.New("no snapshot available")

// Snapshot persists the last successful fetch per resource so the TUI can
// render read-only data while the remote is unreachable. Rows hold the JSON
// payload as fetched; this store never mutates records.
type Snapshot struct {
	db *sql.DB
}

// OpenSnapshot opens (and initializes) the snapshot database at path.
func OpenSnapshot(path string, busyTimeoutMs int) (*Snapshot, error) {
	if busyTimeoutMs <= 0 {
		busyTimeoutMs = 5000
	}
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)", path, busyTimeoutMs)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to snapshot database: %w", err)
	}

	s := &Snapshot{db: db}
	if err := s.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Snapshot) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Snapshot) ensureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversation_snapshot (
			id TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			fetched_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS message_snapshot (
			conversation_id TEXT NOT NULL,
			id TEXT NOT NULL,
			payload TEXT NOT NULL,
			fetched_at TEXT NOT NULL,
			PRIMARY KEY (conversation_id, id)
		)`,
		`CREATE INDEX IF NOT EXISTS message_snapshot_conv_idx ON message_snapshot(conversation_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize snapshot schema: %w", err)
		}
	}
	return nil
}

// SaveConversations replaces the conversation snapshot with the given list.
func (s *Snapshot) SaveConversations(ctx context.Context, conversations []model.Conversation) error {
	if s == nil || s.db == nil {
		return errors.New("snapshot store unavailable")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot write: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM conversation_snapshot`); err != nil {
		return fmt.Errorf("failed to clear conversation snapshot: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO conversation_snapshot (id, payload, fetched_at) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	for _, conv := range conversations {
		payload, err := json.Marshal(conv)
		if err != nil {
			return fmt.Errorf("failed to encode conversation %s: %w", conv.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, conv.ID, string(payload), now); err != nil {
			return fmt.Errorf("failed to store conversation snapshot: %w", err)
		}
	}

	return tx.Commit()
}

// LoadConversations returns the last saved conversation list, ordered by
// last activity descending.
func (s *Snapshot) LoadConversations(ctx context.Context) ([]model.Conversation, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("snapshot store unavailable")
	}

	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM conversation_snapshot`)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversation snapshot: %w", err)
	}
	defer rows.Close()

	var conversations []model.Conversation
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan conversation snapshot: %w", err)
		}
		var conv model.Conversation
		if err := json.Unmarshal([]byte(payload), &conv); err != nil {
			return nil, fmt.Errorf("failed to decode conversation snapshot: %w", err)
		}
		conversations = append(conversations, conv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("conversation snapshot query error: %w", err)
	}
	if len(conversations) == 0 {
		return nil, ErrSnapshotEmpty
	}

	sortConversations(conversations)
	return conversations, nil
}

// SaveMessages replaces the message snapshot for one conversation.
func (s *Snapshot) SaveMessages(ctx context.Context, conversationID string, messages []model.Message) error {
	if s == nil || s.db == nil {
		return errors.New("snapshot store unavailable")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot write: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM message_snapshot WHERE conversation_id = ?`, conversationID); err != nil {
		return fmt.Errorf("failed to clear message snapshot: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO message_snapshot (conversation_id, id, payload, fetched_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	for _, msg := range messages {
		// Pending local messages never enter the snapshot
		if msg.IsPending() {
			continue
		}
		payload, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("failed to encode message %s: %w", msg.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, conversationID, msg.ID, string(payload), now); err != nil {
			return fmt.Errorf("failed to store message snapshot: %w", err)
		}
	}

	return tx.Commit()
}

// LoadMessages returns the last saved messages for a conversation, oldest
// first.
func (s *Snapshot) LoadMessages(ctx context.Context, conversationID string) ([]model.Message, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("snapshot store unavailable")
	}

	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM message_snapshot WHERE conversation_id = ?`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query message snapshot: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan message snapshot: %w", err)
		}
		var msg model.Message
		if err := json.Unmarshal([]byte(payload), &msg); err != nil {
			return nil, fmt.Errorf("failed to decode message snapshot: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("message snapshot query error: %w", err)
	}
	if len(messages) == 0 {
		return nil, ErrSnapshotEmpty
	}

	sortMessages(messages)
	return messages, nil
}
