package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/wlin-papers/papercite/internal/meta"
)

// DB wraps the SQLite history cache. The cache is disposable; it is
// rebuilt from the JSONL log whenever it goes stale.
type DB struct {
	db *sql.DB
}

const selectRecordFields = `ts, old_path, new_path, title, authors_json, year, status, error`

// OpenDB opens or creates the SQLite cache at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS renames (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			ts TEXT NOT NULL,
			old_path TEXT NOT NULL,
			new_path TEXT,
			title TEXT,
			authors_json TEXT,
			year INTEGER,
			status TEXT NOT NULL,
			error TEXT
		);

		-- Full-text search over title and authors
		CREATE VIRTUAL TABLE IF NOT EXISTS renames_fts USING fts5(
			seq,
			title,
			authors_text
		);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromJSONL clears the cache and reloads it from the JSONL log.
// Returns the number of records loaded.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	records, err := ReadAll(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading JSONL: %w", err)
	}

	if _, err := d.db.Exec("DELETE FROM renames"); err != nil {
		return 0, fmt.Errorf("clearing renames table: %w", err)
	}
	if _, err := d.db.Exec("DELETE FROM renames_fts"); err != nil {
		return 0, fmt.Errorf("clearing renames_fts table: %w", err)
	}

	insertStmt, err := d.db.Prepare(`
		INSERT INTO renames (ts, old_path, new_path, title, authors_json, year, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing renames insert: %w", err)
	}
	defer insertStmt.Close()

	ftsStmt, err := d.db.Prepare(`
		INSERT INTO renames_fts (seq, title, authors_text) VALUES (?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for i, rec := range records {
		authorsJSON, err := json.Marshal(rec.Authors)
		if err != nil {
			return 0, fmt.Errorf("marshaling authors for %s: %w", rec.OldPath, err)
		}

		res, err := insertStmt.Exec(
			rec.Time.Format(time.RFC3339), rec.OldPath, rec.NewPath, rec.Title,
			string(authorsJSON), rec.Year, string(rec.Status), rec.Error,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting record %d: %w", i, err)
		}

		seq, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("record %d rowid: %w", i, err)
		}

		if _, err := ftsStmt.Exec(seq, rec.Title, authorsText(rec.Authors)); err != nil {
			return 0, fmt.Errorf("inserting fts for record %d: %w", i, err)
		}
	}

	return len(records), nil
}

// List returns records newest first, optionally limited.
func (d *DB) List(limit int) ([]Record, error) {
	query := `SELECT ` + selectRecordFields + ` FROM renames ORDER BY seq DESC`
	var args []interface{}

	if limit > 0 {
		query += " LIMIT ?"
		args = []interface{}{limit}
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Search performs a full-text search over titles and author names.
func (d *DB) Search(query string, limit int) ([]Record, error) {
	ftsQuery := prepareFTSQuery(query)

	rows, err := d.db.Query(`
		SELECT `+selectRecordFields+`
		FROM renames
		WHERE seq IN (SELECT seq FROM renames_fts WHERE renames_fts MATCH ?)
		ORDER BY seq DESC
		LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching history: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Count returns the total number of records in the cache.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM renames").Scan(&count)
	return count, err
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var rec Record
		var ts, status string
		var newPath, title, authorsJSON, errMsg sql.NullString
		var year sql.NullInt64

		err := rows.Scan(&ts, &rec.OldPath, &newPath, &title, &authorsJSON, &year, &status, &errMsg)
		if err != nil {
			return nil, err
		}

		rec.Time, err = time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp %q: %w", ts, err)
		}
		rec.NewPath = newPath.String
		rec.Title = title.String
		rec.Year = int(year.Int64)
		rec.Status = meta.Status(status)
		rec.Error = errMsg.String

		if authorsJSON.Valid && authorsJSON.String != "" {
			if err := json.Unmarshal([]byte(authorsJSON.String), &rec.Authors); err != nil {
				return nil, fmt.Errorf("parsing authors JSON for %s: %w", rec.OldPath, err)
			}
		}

		records = append(records, rec)
	}
	return records, rows.Err()
}

func authorsText(list []meta.Author) string {
	names := make([]string, len(list))
	for i, a := range list {
		names[i] = a.FullName
	}
	return strings.Join(names, ", ")
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	if strings.ContainsAny(query, "\"*+-:(){}[]^~") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
