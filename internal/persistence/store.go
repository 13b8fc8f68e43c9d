// SQLite-backed save-slot store. Snapshots are zstd-compressed JSON blobs;
// the narrated event history rides along in its own table.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"github.com/talgya/tiny-town/internal/engine"
)

// ErrNoSlot is returned when the requested save slot does not exist.
var ErrNoSlot = errors.New("save slot not found")

// Store wraps the SQLite connection holding save slots and event history.
type Store struct {
	conn *sqlx.DB

	enc *zstd.Encoder
	dec *zstd.Decoder

	// Events buffered since the last flush. Emit never blocks; the
	// buffer is written alongside the next snapshot.
	pending []engine.Event
}

// Open opens or creates the store at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		conn.Close()
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		conn.Close()
		return nil, err
	}

	st := &Store{conn: conn, enc: enc, dec: dec}
	if err := st.migrateSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return st, nil
}

// Close closes the underlying connection.
func (st *Store) Close() error {
	st.enc.Close()
	st.dec.Close()
	return st.conn.Close()
}

func (st *Store) migrateSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS slots (
		name TEXT PRIMARY KEY,
		version TEXT NOT NULL,
		saved_at TEXT NOT NULL,
		data BLOB NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id TEXT NOT NULL,
		sim_time TEXT NOT NULL,
		message TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_category ON events(category);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := st.conn.Exec(schema)
	return err
}

// SaveSlot writes a snapshot into the named slot, replacing any previous
// contents, and flushes the buffered event history.
func (st *Store) SaveSlot(name string, snap *Snapshot) error {
	raw, err := snap.Encode()
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	blob := st.enc.EncodeAll(raw, nil)

	tx, err := st.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT OR REPLACE INTO slots (name, version, saved_at, data) VALUES (?, ?, ?, ?)",
		name, snap.Version, snap.SavedAt.Format(time.RFC3339), blob,
	)
	if err != nil {
		return fmt.Errorf("write slot %q: %w", name, err)
	}

	for _, e := range st.pending {
		if _, err := tx.Exec(
			"INSERT INTO events (event_id, sim_time, message, category) VALUES (?, ?, ?, ?)",
			e.ID, e.SimTime, e.Message, e.Category,
		); err != nil {
			return fmt.Errorf("write events: %w", err)
		}
	}

	_, err = tx.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES ('last_saved_slot', ?), ('last_saved_at', ?)",
		name, snap.SavedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("write meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	st.pending = st.pending[:0]
	return nil
}

// LoadSlot reads, decompresses, and decodes the named slot.
func (st *Store) LoadSlot(name string) (*Snapshot, error) {
	var blob []byte
	err := st.conn.Get(&blob, "SELECT data FROM slots WHERE name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSlot
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %q: %w", name, err)
	}

	raw, err := st.dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("corrupt snapshot: %w", err)
	}
	return Decode(raw)
}

// SaveMeta stores a key-value pair in store metadata.
func (st *Store) SaveMeta(key, value string) error {
	_, err := st.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value. Missing keys return an empty string.
func (st *Store) GetMeta(key string) (string, error) {
	var value string
	err := st.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// HasSlot reports whether the named slot exists.
func (st *Store) HasSlot(name string) bool {
	var n int
	if err := st.conn.Get(&n, "SELECT COUNT(*) FROM slots WHERE name = ?", name); err != nil {
		return false
	}
	return n > 0
}

// Emit buffers an event for the next flush. Implements engine.Sink;
// never blocks, never fails.
func (st *Store) Emit(e engine.Event) {
	st.pending = append(st.pending, e)
	// Bound the buffer in case saves stop happening.
	if len(st.pending) > 4*engine.EventCap {
		st.pending = st.pending[len(st.pending)-2*engine.EventCap:]
	}
}

type storedEvent struct {
	EventID  string `db:"event_id"`
	SimTime  string `db:"sim_time"`
	Message  string `db:"message"`
	Category string `db:"category"`
}

// EventHistory returns up to limit persisted events, oldest first.
func (st *Store) EventHistory(limit int) ([]engine.Event, error) {
	var rows []storedEvent
	err := st.conn.Select(&rows,
		"SELECT event_id, sim_time, message, category FROM events ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	out := make([]engine.Event, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		r := rows[i]
		out = append(out, engine.Event{ID: r.EventID, SimTime: r.SimTime, Message: r.Message, Category: r.Category})
	}
	return out, nil
}
