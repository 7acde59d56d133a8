package cache

import (
	"context"
	"time"
)

// NullCache never stores anything. It backs --no-cache.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return NullCache{}
}

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
func (NullCache) Clear(context.Context) (int, error)                       { return 0, nil }

var (
	_ Cache   = NullCache{}
	_ Clearer = NullCache{}
)
