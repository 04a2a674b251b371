// Package transform provides mapper callbacks that rewrite a string field
// of the mapped target: hashing, masking, encryption and redaction.
//
// Callbacks name the target field by its Go name and resolve it through the
// default mapper's cache:
//
//	dto, err := mapper.Map(user,
//	    transform.Mask[User, UserDTO]("Email", transform.EmailMasker()),
//	    transform.Redact[User, UserDTO]("Token", "***"),
//	)
//
// Callbacks used with a dedicated mapper should share its cache:
//
//	m := mapper.New()
//	dto, err := mapper.MapWith(m, user,
//	    transform.Redact[User, UserDTO]("Token", "***", transform.WithMapper(m)),
//	)
//
// Empty values are left alone by Hash, Mask and Encrypt.
package transform

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/zoobzio/mapper"
)

// Sentinel errors for programmatic error handling.
var (
	// ErrUnknownField indicates the target has no mappable field of that name.
	ErrUnknownField = errors.New("unknown field")

	// ErrFieldKind indicates the target field is not a string.
	ErrFieldKind = errors.New("field is not a string")

	// ErrHash indicates hashing of a field failed.
	ErrHash = errors.New("hash failed")
)

// Error represents a failure to transform a target field.
type Error struct {
	Err   error  // Underlying sentinel error
	Field string // Target field name
	Op    string // hash, mask, encrypt or redact
	Cause error  // Original error, if any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s field %s: %s: %v", e.Op, e.Field, e.Err.Error(), e.Cause)
	}
	return fmt.Sprintf("%s field %s: %s", e.Op, e.Field, e.Err.Error())
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Option configures a transform callback.
type Option func(*options)

type options struct {
	cache *mapper.Cache
}

// WithCache resolves target fields through c.
func WithCache(c *mapper.Cache) Option {
	return func(o *options) {
		if c != nil {
			o.cache = c
		}
	}
}

// WithMapper resolves target fields through m's cache.
func WithMapper(m *mapper.Mapper) Option {
	return func(o *options) {
		if m != nil {
			o.cache = m.Cache()
		}
	}
}

func resolve(opts []Option) *mapper.Cache {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.cache == nil {
		return mapper.Default().Cache()
	}
	return o.cache
}

// Redact returns a callback that replaces the target field with replacement.
func Redact[S, T any](field, replacement string, opts ...Option) mapper.Callback[S, T] {
	cache := resolve(opts)
	return func(_ S, dst *T) error {
		v, err := stringField(cache, dst, field, "redact")
		if err != nil {
			return err
		}
		v.SetString(replacement)
		return nil
	}
}

// stringField resolves a settable string field on dst.
func stringField[T any](cache *mapper.Cache, dst *T, name, op string) (reflect.Value, error) {
	rv := reflect.ValueOf(dst).Elem()

	f, ok, err := cache.Field(rv.Type(), name)
	if err != nil {
		return reflect.Value{}, err
	}
	if !ok {
		return reflect.Value{}, &Error{Err: ErrUnknownField, Field: name, Op: op}
	}
	if f.Type.Kind() != reflect.String {
		return reflect.Value{}, &Error{Err: ErrFieldKind, Field: name, Op: op}
	}
	return f.Get(rv), nil
}
