package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"MarketPulse/internal/model"
)

// SQLiteRecorder persists analysis history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read while we write).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			symbol          TEXT NOT NULL,
			name            TEXT,
			asset_type      TEXT,
			price           REAL,
			signal          TEXT,
			ma20            REAL,
			ma50            REAL,
			ma200           REAL,
			rsi             REAL,
			macd            REAL,
			signal_line     REAL,
			macd_histogram  REAL,
			bb_upper        REAL,
			bb_lower        REAL,
			atr             REAL,
			predicted_price REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON analysis_runs(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_symbol ON analysis_runs(symbol)`,

		`CREATE TABLE IF NOT EXISTS alerts (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			asset     TEXT NOT NULL,
			type      TEXT,
			level     TEXT,
			message   TEXT,
			price     REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_ts ON alerts(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// nullable converts an undefined indicator cell into SQL NULL.
func nullable(v model.Value) interface{} {
	if !v.Valid {
		return nil
	}
	return v.V
}

func (r *SQLiteRecorder) RecordRun(snap *RunSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO analysis_runs
		(timestamp, symbol, name, asset_type, price, signal,
		 ma20, ma50, ma200, rsi, macd, signal_line, macd_histogram,
		 bb_upper, bb_lower, atr, predicted_price)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), snap.Symbol, snap.Name, snap.AssetType,
		snap.Price, string(snap.Signal),
		nullable(snap.MA20), nullable(snap.MA50), nullable(snap.MA200),
		nullable(snap.RSI), nullable(snap.MACD), nullable(snap.SignalLine),
		nullable(snap.MACDHistogram), nullable(snap.BBUpper), nullable(snap.BBLower),
		nullable(snap.ATR), nullable(snap.PredictedPrice),
	)
	return err
}

func (r *SQLiteRecorder) RecordAlerts(alerts []model.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	for _, a := range alerts {
		if _, err := tx.Exec(`INSERT INTO alerts
			(timestamp, asset, type, level, message, price)
			VALUES (?,?,?,?,?,?)`,
			a.Timestamp.Unix(), a.Asset, string(a.Type), a.Level.String(),
			a.Message, nullable(a.Price),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert alert: %w", err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
