package docstore

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/dmitrijs2005/simpletemp/internal/common"
	"github.com/google/uuid"
)

// Key prefixes owned by BadgerStore. Other packages sharing the same
// *badger.DB must use prefixes >= 0x10.
const (
	prefixSeqCounter byte = 0x01 // sequence lease
	prefixDoc        byte = 0x02 // id -> envelope
	prefixBySeq      byte = 0x03 // seq -> id
	prefixByType     byte = 0x04 // type 0x00 seq -> id
)

const seqBandwidth = 64

// OpenBadger opens a BadgerDB at dir, or an in-memory one when dir is empty.
func OpenBadger(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts = opts.
		WithLogger(nil).
		WithMemTableSize(16 << 20).
		WithValueLogFileSize(64 << 20).
		WithNumMemtables(2).
		WithBlockCacheSize(8 << 20).
		WithIndexCacheSize(4 << 20)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, storageErr("failed to open badger: %w", err)
	}
	return db, nil
}

// envelope is the stored form of a document.
type envelope struct {
	Seq   int64          `json:"seq"`
	Props map[string]any `json:"props"`
}

// BadgerStore keeps documents in BadgerDB.
type BadgerStore struct {
	db  *badger.DB
	seq *badger.Sequence

	// mu serializes Save so index maintenance never races on one id.
	mu sync.Mutex
}

func NewBadgerStore(db *badger.DB) (*BadgerStore, error) {
	seq, err := db.GetSequence([]byte{prefixSeqCounter}, seqBandwidth)
	if err != nil {
		return nil, storageErr("failed to lease sequence: %w", err)
	}
	return &BadgerStore{db: db, seq: seq}, nil
}

func (s *BadgerStore) Get(ctx context.Context, id string) (*Document, error) {
	var doc *Document
	err := s.db.View(func(txn *badger.Txn) error {
		d, err := getDoc(txn, id)
		doc = d
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *BadgerStore) Save(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.seq.Next()
	if err != nil {
		return storageErr("failed to allocate sequence: %w", err)
	}
	seq := int64(next) + 1

	data, err := json.Marshal(envelope{Seq: seq, Props: doc.Props})
	if err != nil {
		return storageErr("failed to encode document[%s]: %w", doc.ID, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		old, err := getDoc(txn, doc.ID)
		switch {
		case err == nil:
			if err := txn.Delete(bySeqKey(old.Seq)); err != nil {
				return err
			}
			if err := txn.Delete(byTypeKey(old.Type(), old.Seq)); err != nil {
				return err
			}
		case !errors.Is(err, common.ErrNotFound):
			return err
		}

		if err := txn.Set(docKey(doc.ID), data); err != nil {
			return err
		}
		if err := txn.Set(bySeqKey(seq), []byte(doc.ID)); err != nil {
			return err
		}
		return txn.Set(byTypeKey(doc.Type(), seq), []byte(doc.ID))
	})
	if err != nil {
		return storageErr("failed to save document[%s]: %w", doc.ID, err)
	}
	doc.Seq = seq
	return nil
}

func (s *BadgerStore) Query(ctx context.Context, q Query) ([]*Document, error) {
	for prop := range q.Equals {
		if err := validProp(prop); err != nil {
			return nil, err
		}
	}

	prefix := []byte{prefixBySeq}
	if q.Type != "" {
		prefix = byTypePrefix(q.Type)
	}

	var docs []*Document
	err := s.scan(ctx, prefix, prefix, func(doc *Document) bool {
		if matches(doc, q.Equals) {
			docs = append(docs, doc)
		}
		return true
	})
	return docs, err
}

func (s *BadgerStore) Changes(ctx context.Context, since int64, limit int) ([]*Document, error) {
	var docs []*Document
	err := s.scan(ctx, []byte{prefixBySeq}, bySeqKey(since+1), func(doc *Document) bool {
		docs = append(docs, doc)
		return limit <= 0 || len(docs) < limit
	})
	return docs, err
}

func (s *BadgerStore) Close() error {
	return errors.Join(s.seq.Release(), s.db.Close())
}

// scan walks index keys under prefix starting at start, resolving each to
// its document, until fn returns false.
func (s *BadgerStore) scan(ctx context.Context, prefix, start []byte, fn func(*Document) bool) error {
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(start); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			id, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			doc, err := getDoc(txn, string(id))
			if err != nil {
				return err
			}
			if !fn(doc) {
				return nil
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, common.ErrStorage) {
		return storageErr("failed to scan documents: %w", err)
	}
	return err
}

func getDoc(txn *badger.Txn, id string) (*Document, error) {
	item, err := txn.Get(docKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("document[%s]: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, storageErr("failed to get document[%s]: %w", id, err)
	}

	var env envelope
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &env)
	})
	if err != nil {
		return nil, storageErr("failed to decode document[%s]: %w", id, err)
	}
	if env.Props == nil {
		env.Props = map[string]any{}
	}
	return &Document{ID: id, Seq: env.Seq, Props: env.Props}, nil
}

func matches(doc *Document, equals map[string]string) bool {
	for prop, want := range equals {
		if got, ok := doc.Props[prop].(string); !ok || got != want {
			return false
		}
	}
	return true
}

func docKey(id string) []byte {
	return append([]byte{prefixDoc}, id...)
}

func bySeqKey(seq int64) []byte {
	return binary.BigEndian.AppendUint64([]byte{prefixBySeq}, uint64(seq))
}

func byTypePrefix(docType string) []byte {
	key := append([]byte{prefixByType}, docType...)
	return append(key, 0x00)
}

func byTypeKey(docType string, seq int64) []byte {
	return binary.BigEndian.AppendUint64(byTypePrefix(docType), uint64(seq))
}
