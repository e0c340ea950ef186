package metadata

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/dmitrijs2005/simpletemp/internal/common"
)

// prefixMeta keeps metadata keys apart from the document store keys.
const prefixMeta byte = 0x10

type BadgerRepository struct {
	db *badger.DB
}

func NewBadgerRepository(db *badger.DB) *BadgerRepository {
	return &BadgerRepository{db: db}
}

func metaKey(key string) []byte {
	return append([]byte{prefixMeta}, key...)
}

func (r *BadgerRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(metaKey(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get metadata[%s]: %w", common.ErrStorage, key, err)
	}
	return value, nil
}

func (r *BadgerRepository) Set(ctx context.Context, key string, value []byte) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(metaKey(key), value)
	})
	if err != nil {
		return fmt.Errorf("%w: failed to set metadata[%s]: %w", common.ErrStorage, key, err)
	}
	return nil
}

func (r *BadgerRepository) Delete(ctx context.Context, key string) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(metaKey(key))
	})
	if err != nil {
		return fmt.Errorf("%w: failed to delete metadata[%s]: %w", common.ErrStorage, key, err)
	}
	return nil
}

func (r *BadgerRepository) Clear(ctx context.Context) error {
	if err := r.db.DropPrefix([]byte{prefixMeta}); err != nil {
		return fmt.Errorf("%w: failed to clear metadata: %w", common.ErrStorage, err)
	}
	return nil
}

func (r *BadgerRepository) List(ctx context.Context) (map[string][]byte, error) {
	result := make(map[string][]byte)
	prefix := []byte{prefixMeta}

	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			result[string(item.Key()[1:])] = value
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list metadata: %w", common.ErrStorage, err)
	}
	return result, nil
}
