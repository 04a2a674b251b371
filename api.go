// Package mapper copies values between unrelated struct types by matching
// field name and declared type.
//
// Field descriptors are discovered by reflection once per type and kept in
// a Cache; every later mapping involving that type reuses them.
//
// # Matching
//
// A source field is copied when the target declares an exported field with
// the same name and exactly the same type. There is no conversion between
// types, no recursion into nested structs and no special handling of
// slices or maps: matching values are assigned as they are. Target fields
// without a counterpart keep their zero value.
//
// Fields can be excluded with a struct tag:
//
//	type User struct {
//	    ID       int
//	    Name     string
//	    Password string `mapper:"-"`
//	}
//
// # Basic Usage
//
//	type UserDTO struct {
//	    ID   int
//	    Name string
//	}
//
//	dto, err := mapper.Map[User, UserDTO](user)
//
//	dtos, err := mapper.MapCollection[User, UserDTO](users,
//	    func(src User, dst *UserDTO) error {
//	        dst.Name = strings.ToUpper(dst.Name)
//	        return nil
//	    },
//	)
//
// Callbacks run after the automatic copy, in the order given. The first
// error stops the mapping and is returned to the caller.
//
// # Caches
//
// Map and MapCollection use the process-wide Default mapper. Use New with
// WithCache to control the cache's lifetime explicitly, and the *With
// variants to map through it.
//
// # Override Interface
//
// Target types can bypass reflection by implementing Mappable for a given
// source type. This is intended for generated code.
package mapper

// Callback post-processes a mapped target.
// src is the value being mapped; dst is the target after the automatic copy.
type Callback[S, T any] func(src S, dst *T) error

// Mappable bypasses reflection when implemented by a pointer to the target type.
// MapFrom populates the receiver from src; callbacks still run afterwards.
type Mappable[S any] interface {
	MapFrom(src S) error
}
