package mapper

import (
	"context"
	"iter"
	"reflect"
	"sync"
	"time"
)

// Mapper copies matching fields between struct types using a Cache.
// A Mapper is safe for concurrent use.
type Mapper struct {
	cache *Cache
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithCache makes the Mapper use c instead of a private cache.
// Mappers sharing a cache share scanned types.
func WithCache(c *Cache) Option {
	return func(m *Mapper) {
		if c != nil {
			m.cache = c
		}
	}
}

// New creates a Mapper with its own cache unless WithCache is given.
func New(opts ...Option) *Mapper {
	m := &Mapper{}
	for _, opt := range opts {
		opt(m)
	}
	if m.cache == nil {
		m.cache = NewCache()
	}
	return m
}

// Cache returns the mapper's field cache.
func (m *Mapper) Cache() *Cache {
	return m.cache
}

var defaultMapper = sync.OnceValue(func() *Mapper { return New() })

// Default returns the process-wide mapper used by Map and MapCollection.
// Its cache lives until the process exits or Reset is called.
func Default() *Mapper {
	return defaultMapper()
}

// Reset clears the default mapper's cache.
// This is primarily useful for test isolation.
func Reset() {
	Default().cache.Reset()
}

// Map maps src to a new T using the default mapper.
func Map[S, T any](src S, callbacks ...Callback[S, T]) (T, error) {
	return MapWith(Default(), src, callbacks...)
}

// MapCollection maps every element of srcs using the default mapper.
func MapCollection[S, T any](srcs []S, callbacks ...Callback[S, T]) ([]T, error) {
	return MapCollectionWith(Default(), srcs, callbacks...)
}

// MapWith creates a zero T, copies every field of src whose name and type
// match a field of T, then runs callbacks in order.
//
// src may be a struct or a non-nil pointer to one. T must be a struct type.
// On error the zero T is returned; callback errors are returned unchanged.
func MapWith[S, T any](m *Mapper, src S, callbacks ...Callback[S, T]) (T, error) {
	start := time.Now()
	dst, copied, err := mapOne(m, src, callbacks)
	emitMapComplete(context.Background(), typeName[S](), typeName[T](), copied, time.Since(start), err)
	return dst, err
}

// MapCollectionWith maps srcs in order, returning a slice of equal length.
// The first failure aborts the call; the error is wrapped in an ElementError.
func MapCollectionWith[S, T any](m *Mapper, srcs []S, callbacks ...Callback[S, T]) ([]T, error) {
	start := time.Now()

	out := make([]T, len(srcs))
	var err error
	for i := range srcs {
		if out[i], _, err = mapOne(m, srcs[i], callbacks); err != nil {
			err = &ElementError{Index: i, Err: err}
			break
		}
	}

	emitCollectionComplete(context.Background(), typeName[S](), typeName[T](), len(srcs), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MapSeq lazily maps the values of seq in order.
// After the first failure it yields the zero T with an ElementError and stops.
func MapSeq[S, T any](m *Mapper, seq iter.Seq[S], callbacks ...Callback[S, T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		i := 0
		for src := range seq {
			dst, _, err := mapOne(m, src, callbacks)
			if err != nil {
				var zero T
				yield(zero, &ElementError{Index: i, Err: err})
				return
			}
			if !yield(dst, nil) {
				return
			}
			i++
		}
	}
}

// Copy assigns the matching fields of src into the struct dst points to.
// Fields of dst without a counterpart are left untouched. No callbacks run.
func (m *Mapper) Copy(dst, src any) error {
	dv := reflect.ValueOf(dst)
	if dv.Kind() != reflect.Pointer || dv.IsNil() || dv.Elem().Kind() != reflect.Struct {
		return newTypeError(ErrNotStruct, reflect.TypeOf(dst), "target")
	}
	dv = dv.Elem()

	sv, err := sourceValue(reflect.ValueOf(src))
	if err != nil {
		return err
	}

	srcFields, err := m.cache.Fields(sv.Type())
	if err != nil {
		return err
	}
	dstFields, err := m.cache.Fields(dv.Type())
	if err != nil {
		return err
	}

	_, err = copyFields(dv, sv, srcFields, dstFields)
	return err
}

// mapOne performs a single mapping without emitting signals.
func mapOne[S, T any](m *Mapper, src S, callbacks []Callback[S, T]) (T, int, error) {
	var zero T
	if dt := reflect.TypeFor[T](); dt.Kind() != reflect.Struct {
		return zero, 0, newTypeError(ErrNotStruct, dt, "target")
	}

	sv, err := sourceValue(reflect.ValueOf(src))
	if err != nil {
		return zero, 0, err
	}

	var dst T
	copied := 0

	// Check for override interface
	if mf, ok := any(&dst).(Mappable[S]); ok {
		if err := mf.MapFrom(src); err != nil {
			return zero, 0, err
		}
	} else {
		srcFields, err := sourceFields[S](m.cache, sv.Type())
		if err != nil {
			return zero, 0, err
		}
		dstFields, err := fieldsFor[T](m.cache)
		if err != nil {
			return zero, 0, err
		}
		if copied, err = copyFields(reflect.ValueOf(&dst).Elem(), sv, srcFields, dstFields); err != nil {
			return zero, copied, err
		}
	}

	for _, cb := range callbacks {
		if cb == nil {
			continue
		}
		if err := cb(src, &dst); err != nil {
			return zero, copied, err
		}
	}

	return dst, copied, nil
}

// sourceFields resolves descriptors for the struct behind S.
// When S is the struct itself sentinel can scan it directly.
func sourceFields[S any](c *Cache, st reflect.Type) ([]Field, error) {
	if reflect.TypeFor[S]() == st {
		return fieldsFor[S](c)
	}
	return c.Fields(st)
}

// sourceValue dereferences pointers and interfaces down to a struct value.
func sourceValue(v reflect.Value) (reflect.Value, error) {
	if !v.IsValid() {
		return reflect.Value{}, newTypeError(ErrNilSource, nil, "source")
	}
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, newTypeError(ErrNilSource, v.Type(), "source")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, newTypeError(ErrNotStruct, v.Type(), "source")
	}
	return v, nil
}

// copyFields assigns each source field to its single matching target field.
// It returns the number of fields copied.
func copyFields(dst, src reflect.Value, srcFields, dstFields []Field) (int, error) {
	copied := 0
	for _, sf := range srcFields {
		var match *Field
		for i := range dstFields {
			if !dstFields[i].matches(sf) {
				continue
			}
			if match != nil {
				return copied, newFieldError(ErrAmbiguousField, sf.Name, src.Type(), dst.Type())
			}
			match = &dstFields[i]
		}
		if match == nil {
			continue
		}
		match.Set(dst, sf.Get(src))
		copied++
	}
	return copied, nil
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
