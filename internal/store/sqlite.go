package store

import (
	"database/sql"
	"fmt"

	"arcrag/internal/arcadia"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	_ "github.com/mattn/go-sqlite3"
)

func init() {
	sqlite_vec.Auto()
}

// SQLiteStore implements Store backed by SQLite + sqlite-vec.
type SQLiteStore struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path and initializes
// the schema for embeddings of the given dimension. A dimension of 0 uses
// DefaultDimension.
func Open(dbPath string, dimension int) (*SQLiteStore, error) {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := Init(db, dimension); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Add(records []Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Guard the uniqueness invariant before writing anything.
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if seen[r.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, r.ID)
		}
		seen[r.ID] = true

		var one int
		err := tx.QueryRow("SELECT 1 FROM records WHERE id = ?", r.ID).Scan(&one)
		if err == nil {
			return fmt.Errorf("%w: %s", ErrDuplicateID, r.ID)
		}
		if err != sql.ErrNoRows {
			return err
		}
	}

	recStmt, err := tx.Prepare(`
		INSERT INTO records (id, content, source, type, chunk_id, total_chunks, phase, element_id, element_type, element_name)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer recStmt.Close()

	vecStmt, err := tx.Prepare("INSERT INTO vec_records (record_id, embedding) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer vecStmt.Close()

	for _, r := range records {
		res, err := recStmt.Exec(
			r.ID, r.Content,
			r.Meta.Source, r.Meta.Type, r.Meta.ChunkID, r.Meta.TotalChunks,
			string(r.Meta.Phase), r.Meta.ElementID, r.Meta.ElementType, r.Meta.ElementName,
		)
		if err != nil {
			return fmt.Errorf("insert record %s: %w", r.ID, err)
		}
		rowID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		blob, err := sqlite_vec.SerializeFloat32(r.Embedding)
		if err != nil {
			return fmt.Errorf("serialize embedding for %s: %w", r.ID, err)
		}
		if _, err := vecStmt.Exec(rowID, blob); err != nil {
			return fmt.Errorf("insert embedding for %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Query(embedding []float32, k int, filter *Filter) ([]RetrievedRecord, error) {
	blob, err := sqlite_vec.SerializeFloat32(embedding)
	if err != nil {
		return nil, fmt.Errorf("serialize query embedding: %w", err)
	}

	const base = `
		SELECT v.distance, r.content, r.source, r.type, r.chunk_id, r.total_chunks,
		       r.phase, r.element_id, r.element_type, r.element_name
		FROM vec_records v
		JOIN records r ON r.rowid = v.record_id
		WHERE v.embedding MATCH ?`

	var rows *sql.Rows
	if filter != nil {
		rows, err = s.db.Query(base+`
			AND v.record_id IN (SELECT rowid FROM records WHERE type = ? OR element_type = ?)
			ORDER BY v.distance
			LIMIT ?`, blob, filter.Type, filter.ElementType, k)
	} else {
		rows, err = s.db.Query(base+`
			ORDER BY v.distance
			LIMIT ?`, blob, k)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []RetrievedRecord
	for rows.Next() {
		var r RetrievedRecord
		var dist float64
		var phase string
		err := rows.Scan(
			&dist, &r.Content,
			&r.Meta.Source, &r.Meta.Type, &r.Meta.ChunkID, &r.Meta.TotalChunks,
			&phase, &r.Meta.ElementID, &r.Meta.ElementType, &r.Meta.ElementName,
		)
		if err != nil {
			return nil, err
		}
		r.Meta.Phase = arcadia.Phase(phase)
		r.Distance = &dist
		results = append(results, r)
	}
	return results, rows.Err()
}

func (s *SQLiteStore) Count() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM records").Scan(&n)
	return n, err
}

func (s *SQLiteStore) TypeDistribution() map[string]int {
	dist := make(map[string]int)
	rows, err := s.db.Query("SELECT type, COUNT(*) FROM records GROUP BY type")
	if err != nil {
		return dist
	}
	defer rows.Close()
	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return map[string]int{}
		}
		dist[t] = n
	}
	return dist
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
