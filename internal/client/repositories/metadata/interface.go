package metadata

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/dmitrijs2005/simpletemp/internal/common"
)

// Repository stores opaque values by key. Get returns (nil, nil) for an
// absent key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// GetInt64 reads a counter stored by SetInt64. An absent key reads as 0.
func GetInt64(ctx context.Context, r Repository, key string) (int64, error) {
	v, err := r.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, nil
	}
	if len(v) != 8 {
		return 0, fmt.Errorf("%w: metadata[%s] is %d bytes, want 8", common.ErrIntegrity, key, len(v))
	}
	return int64(binary.BigEndian.Uint64(v)), nil
}

func SetInt64(ctx context.Context, r Repository, key string, n int64) error {
	return r.Set(ctx, key, binary.BigEndian.AppendUint64(nil, uint64(n)))
}
