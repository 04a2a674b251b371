package mapper

import (
	"context"
	"reflect"
	"sync"

	"github.com/zoobzio/sentinel"
)

// Cache memoizes field descriptors by struct type.
//
// Each type is scanned at most once; the stored descriptors are never
// replaced until Reset. A Cache is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[reflect.Type][]Field
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[reflect.Type][]Field)}
}

// Fields returns the descriptors of struct type rt in declaration order.
// The returned slice is shared and must not be modified.
func (c *Cache) Fields(rt reflect.Type) ([]Field, error) {
	return c.fields(rt, nil)
}

// Field returns the descriptor named name on struct type rt.
func (c *Cache) Field(rt reflect.Type, name string) (Field, bool, error) {
	fields, err := c.Fields(rt)
	if err != nil {
		return Field{}, false, err
	}
	for _, f := range fields {
		if f.Name == name {
			return f, true, nil
		}
	}
	return Field{}, false, nil
}

// Len returns the number of cached types.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Reset clears the cache.
// This is primarily useful for test isolation.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[reflect.Type][]Field)
}

// fieldsFor resolves descriptors for T, handing sentinel's scan of T to the
// builder on a miss.
func fieldsFor[T any](c *Cache) ([]Field, error) {
	rt := reflect.TypeFor[T]()
	return c.fields(rt, func() *sentinel.Metadata {
		spec := sentinel.Scan[T]()
		return &spec
	})
}

func (c *Cache) fields(rt reflect.Type, scan func() *sentinel.Metadata) ([]Field, error) {
	if rt == nil || rt.Kind() != reflect.Struct {
		return nil, newTypeError(ErrNotStruct, rt, "")
	}

	// Fast path: read-lock cache check
	c.mu.RLock()
	if fields, ok := c.entries[rt]; ok {
		c.mu.RUnlock()
		return fields, nil
	}
	c.mu.RUnlock()

	// Slow path: build and cache with write-lock
	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check pattern
	if fields, ok := c.entries[rt]; ok {
		return fields, nil
	}

	var meta *sentinel.Metadata
	if scan != nil {
		meta = scan()
	}
	fields := scanType(rt, meta)
	c.entries[rt] = fields

	emitCacheMiss(context.Background(), rt.String(), len(fields))
	return fields, nil
}
