package mapper

import (
	"reflect"

	"github.com/zoobzio/sentinel"
)

// tagName is the struct tag consulted for field options.
// A value of "-" excludes the field from mapping.
const tagName = "mapper"

func init() {
	sentinel.Tag(tagName)
}

// Field describes one mappable field of a struct type.
// Fields are produced by a Cache and must be treated as read-only.
type Field struct {
	Name  string       // Go field name, unique within the struct
	Type  reflect.Type // Declared type
	Index []int        // reflect.Value.FieldByIndex access path
	Tag   string       // Value of the mapper struct tag, if any
}

// Get returns the field's value within the struct value v.
func (f Field) Get(v reflect.Value) reflect.Value {
	return v.FieldByIndex(f.Index)
}

// Set assigns x to the field within v. v must be addressable.
func (f Field) Set(v, x reflect.Value) {
	v.FieldByIndex(f.Index).Set(x)
}

// matches reports whether f can receive a value from src.
func (f Field) matches(src Field) bool {
	return f.Name == src.Name && f.Type == src.Type
}

// scanType builds the field descriptors of a struct type in declaration order.
// Sentinel metadata describing rt is the source of names, types, indexes and
// tags; rt is walked with reflection only when sentinel holds no entry for
// it. Promoted and unexported fields are never included.
func scanType(rt reflect.Type, meta *sentinel.Metadata) []Field {
	if !describes(meta, rt) {
		meta = lookupMetadata(rt)
	}
	if meta == nil {
		return reflectFields(rt)
	}
	return metadataFields(rt, meta)
}

// lookupMetadata returns sentinel's cached metadata for rt, if any.
func lookupMetadata(rt reflect.Type) *sentinel.Metadata {
	spec, ok := sentinel.Lookup(fqdn(rt))
	if !ok || !describes(&spec, rt) {
		return nil
	}
	return &spec
}

// describes reports whether meta was extracted from rt. Sentinel keys by
// package path and name, so function-local and anonymous types can share
// a key with an unrelated struct.
func describes(meta *sentinel.Metadata, rt reflect.Type) bool {
	return meta != nil && meta.ReflectType == rt
}

// fqdn is the key sentinel stores metadata under.
func fqdn(rt reflect.Type) string {
	if pkg := rt.PkgPath(); pkg != "" {
		return pkg + "." + rt.Name()
	}
	return rt.Name()
}

func metadataFields(rt reflect.Type, meta *sentinel.Metadata) []Field {
	fields := make([]Field, 0, len(meta.Fields))
	for _, fm := range meta.Fields {
		if len(fm.Index) != 1 || fm.ReflectType == nil {
			continue
		}

		// Sentinel drops empty tags and only records tags registered
		// before the type was first scanned.
		tag, ok := fm.Tags[tagName]
		if !ok && fm.Index[0] < rt.NumField() {
			tag = rt.Field(fm.Index[0]).Tag.Get(tagName)
		}
		if tag == "-" {
			continue
		}

		fields = append(fields, Field{
			Name:  fm.Name,
			Type:  fm.ReflectType,
			Index: fm.Index,
			Tag:   tag,
		})
	}
	return fields
}

func reflectFields(rt reflect.Type) []Field {
	fields := make([]Field, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get(tagName)
		if tag == "-" {
			continue
		}
		fields = append(fields, Field{
			Name:  sf.Name,
			Type:  sf.Type,
			Index: sf.Index,
			Tag:   tag,
		})
	}
	return fields
}
