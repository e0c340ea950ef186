package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/simpletemp/internal/common"
	"github.com/dmitrijs2005/simpletemp/internal/dbx"
	"github.com/google/uuid"
)

// SQLiteStore keeps documents in the documents table created by the
// embedded migrations.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*Document, error) {
	var (
		seq  int64
		body []byte
	)
	err := s.db.QueryRowContext(ctx, `SELECT seq, body FROM documents WHERE id = ?`, id).Scan(&seq, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document[%s]: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, storageErr("failed to get document[%s]: %w", id, err)
	}
	return decodeDocument(id, seq, body)
}

func (s *SQLiteStore) Save(ctx context.Context, doc *Document) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	body, err := json.Marshal(doc.Props)
	if err != nil {
		return storageErr("failed to encode document[%s]: %w", doc.ID, err)
	}

	var seq int64
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM documents`).Scan(&seq); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO documents (id, seq, doc_type, body) VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				seq = excluded.seq,
				doc_type = excluded.doc_type,
				body = excluded.body
		`, doc.ID, seq, doc.Type(), body)
		return err
	})
	if err != nil {
		return storageErr("failed to save document[%s]: %w", doc.ID, err)
	}
	doc.Seq = seq
	return nil
}

func (s *SQLiteStore) Query(ctx context.Context, q Query) ([]*Document, error) {
	var (
		where []string
		args  []any
	)
	if q.Type != "" {
		where = append(where, "doc_type = ?")
		args = append(args, q.Type)
	}
	for prop, want := range q.Equals {
		if err := validProp(prop); err != nil {
			return nil, err
		}
		where = append(where, "json_extract(body, ?) = ?")
		args = append(args, "$."+prop, want)
	}

	query := `SELECT id, seq, body FROM documents`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY seq"

	return s.list(ctx, query, args...)
}

func (s *SQLiteStore) Changes(ctx context.Context, since int64, limit int) ([]*Document, error) {
	if limit <= 0 {
		limit = -1
	}
	return s.list(ctx, `SELECT id, seq, body FROM documents WHERE seq > ? ORDER BY seq LIMIT ?`, since, limit)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]*Document, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []*Document
	for rows.Next() {
		var (
			id   string
			seq  int64
			body []byte
		)
		if err := rows.Scan(&id, &seq, &body); err != nil {
			return nil, storageErr("failed to scan document row: %w", err)
		}
		doc, err := decodeDocument(id, seq, body)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("failed to iterate document rows: %w", err)
	}
	return docs, nil
}

func decodeDocument(id string, seq int64, body []byte) (*Document, error) {
	props := map[string]any{}
	if err := json.Unmarshal(body, &props); err != nil {
		return nil, storageErr("failed to decode document[%s]: %w", id, err)
	}
	return &Document{ID: id, Seq: seq, Props: props}, nil
}
