package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // CGO-free SQLite

	"github.com/fpgatools/go-i2ctrace/i2c"
)

// Store is a handle to one capture database.
type Store struct {
	db *sql.DB
}

// Capture describes one stored trace file.
type Capture struct {
	// ID is the generated capture identifier
	ID string

	// Source is the capture origin, typically the CSV file path
	Source string

	// SCLName and SDAName are the probe names the capture was decoded with
	SCLName string
	SDAName string

	// CreatedAt is the UTC insertion time
	CreatedAt time.Time
}

// Open opens (creating if necessary) the capture database at path.
// Use ":memory:" for an ephemeral database.
func Open(path string) (*Store, error) {
	// WAL + busy timeout to avoid "database is locked"
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS captures(
	  id         TEXT PRIMARY KEY,
	  source     TEXT    NOT NULL,
	  scl_name   TEXT    NOT NULL,
	  sda_name   TEXT    NOT NULL,
	  created_at INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS transactions(
	  capture_id TEXT    NOT NULL REFERENCES captures(id),
	  seq        INTEGER NOT NULL,
	  address    INTEGER NOT NULL,
	  direction  TEXT    NOT NULL CHECK (direction IN ('WR','RD')),
	  addr_ack   INTEGER NOT NULL,
	  start_time REAL    NOT NULL,
	  end_time   REAL    NOT NULL,
	  bytes_json TEXT    NOT NULL CHECK (json_valid(bytes_json)),
	  PRIMARY KEY (capture_id, seq)
	);
	CREATE INDEX IF NOT EXISTS idx_transactions_addr ON transactions(capture_id, address);
	`)
	if err != nil {
		return fmt.Errorf("failed to create database tables: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveCapture stores the decoded transactions of one trace file and returns
// the generated capture ID. The whole capture is written atomically.
func (s *Store) SaveCapture(source, sclName, sdaName string, txns []i2c.Transaction) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(
		`INSERT INTO captures(id, source, scl_name, sda_name, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, source, sclName, sdaName, time.Now().UTC().Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert capture: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO transactions(capture_id, seq, address, direction, addr_ack, start_time, end_time, bytes_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return "", fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for seq, t := range txns {
		bytesJSON, err := json.Marshal(t.Bytes)
		if err != nil {
			return "", fmt.Errorf("failed to encode bytes for transaction %d: %w", seq, err)
		}
		_, err = stmt.Exec(id, seq, t.Address, t.Dir.String(), boolToInt(t.AddrACK), t.StartTime, t.EndTime, string(bytesJSON))
		if err != nil {
			return "", fmt.Errorf("failed to insert transaction %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit capture: %w", err)
	}
	return id, nil
}

// Captures lists all stored captures, newest first.
func (s *Store) Captures() ([]Capture, error) {
	rows, err := s.db.Query(
		`SELECT id, source, scl_name, sda_name, created_at FROM captures ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query captures: %w", err)
	}
	defer rows.Close()

	var caps []Capture
	for rows.Next() {
		var c Capture
		var created int64
		if err := rows.Scan(&c.ID, &c.Source, &c.SCLName, &c.SDAName, &created); err != nil {
			return nil, fmt.Errorf("failed to scan capture: %w", err)
		}
		c.CreatedAt = time.Unix(created, 0).UTC()
		caps = append(caps, c)
	}
	return caps, rows.Err()
}

// Transactions returns every transaction of a capture in bus order.
func (s *Store) Transactions(captureID string) ([]i2c.Transaction, error) {
	return s.queryTransactions(
		`SELECT address, direction, addr_ack, start_time, end_time, bytes_json
		 FROM transactions WHERE capture_id = ? ORDER BY seq`,
		captureID,
	)
}

// TransactionsByAddress returns the transactions of a capture addressed to
// the given 7-bit slave address, in bus order.
func (s *Store) TransactionsByAddress(captureID string, address byte) ([]i2c.Transaction, error) {
	return s.queryTransactions(
		`SELECT address, direction, addr_ack, start_time, end_time, bytes_json
		 FROM transactions WHERE capture_id = ? AND address = ? ORDER BY seq`,
		captureID, address,
	)
}

func (s *Store) queryTransactions(query string, args ...any) ([]i2c.Transaction, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []i2c.Transaction
	for rows.Next() {
		var (
			t         i2c.Transaction
			address   int
			direction string
			addrAck   int
			bytesJSON string
		)
		if err := rows.Scan(&address, &direction, &addrAck, &t.StartTime, &t.EndTime, &bytesJSON); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.Address = byte(address)
		if direction == "RD" {
			t.Dir = i2c.Read
		}
		t.AddrACK = addrAck != 0
		if err := json.Unmarshal([]byte(bytesJSON), &t.Bytes); err != nil {
			return nil, fmt.Errorf("failed to decode bytes: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
