package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/misy-ai/gateway/internal/model"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS transcript (
		id   TEXT PRIMARY KEY,
		ts   TEXT NOT NULL,
		role TEXT NOT NULL,
		text TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_transcript_ts ON transcript(ts DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// getRaw returns the stored value for a record key. Any failure reads as
// "absent"; corruption handling happens in the decoders.
func (s *SQLiteStore) getRaw(ctx context.Context, key string) (string, bool) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM records WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", false
	}
	return value, true
}

func (s *SQLiteStore) setRaw(ctx context.Context, key, value string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now)
	if err != nil {
		return fmt.Errorf("set record %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Plan(ctx context.Context) model.Plan {
	raw, _ := s.getRaw(ctx, KeyPlan)
	return model.ParsePlan(raw)
}

func (s *SQLiteStore) SetPlan(ctx context.Context, p model.Plan) error {
	return s.setRaw(ctx, KeyPlan, string(p))
}

func (s *SQLiteStore) Daily(ctx context.Context, today string) model.DailyUsage {
	raw, ok := s.getRaw(ctx, KeyDaily)
	return decodeDaily(raw, ok, today)
}

func (s *SQLiteStore) SetDaily(ctx context.Context, d model.DailyUsage) error {
	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode daily: %w", err)
	}
	return s.setRaw(ctx, KeyDaily, string(b))
}

func (s *SQLiteStore) Memory(ctx context.Context) model.MemorySnapshot {
	raw, ok := s.getRaw(ctx, KeyMemory)
	return decodeMemory(raw, ok)
}

func (s *SQLiteStore) SetMemory(ctx context.Context, m model.MemorySnapshot) error {
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode memory: %w", err)
	}
	return s.setRaw(ctx, KeyMemory, string(b))
}

func (s *SQLiteStore) AppendTranscript(ctx context.Context, role, text string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transcript (id, ts, role, text) VALUES (?, ?, ?, ?)`,
		s.newID(), now, role, text)
	if err != nil {
		return fmt.Errorf("append transcript: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Transcript(ctx context.Context, limit int) ([]TranscriptEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, ts, role, text FROM transcript ORDER BY ts DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []TranscriptEntry
	for rows.Next() {
		var e TranscriptEntry
		var ts string
		if err := rows.Scan(&e.ID, &ts, &e.Role, &e.Text); err != nil {
			return nil, err
		}
		e.TS, _ = time.Parse(time.RFC3339Nano, ts)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) TranscriptCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transcript`).Scan(&n)
	return n, err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
