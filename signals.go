package mapper

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for mapper events.
var (
	SignalCacheMiss          = capitan.NewSignal("mapper.cache.miss", "Field descriptors scanned for a new type")
	SignalMapComplete        = capitan.NewSignal("mapper.map.complete", "Single record mapping finished")
	SignalCollectionComplete = capitan.NewSignal("mapper.collection.complete", "Collection mapping finished")
)

// Keys for typed event data.
var (
	KeyTypeName   = capitan.NewStringKey("type_name")
	KeySourceType = capitan.NewStringKey("source_type")
	KeyTargetType = capitan.NewStringKey("target_type")
	KeyFieldCount = capitan.NewIntKey("field_count")
	KeyCopied     = capitan.NewIntKey("copied")
	KeyCount      = capitan.NewIntKey("count")
	KeyDuration   = capitan.NewDurationKey("duration")
	KeyError      = capitan.NewErrorKey("error")
)

// emitCacheMiss emits an event when a type is scanned for the first time.
func emitCacheMiss(ctx context.Context, typeName string, fields int) {
	capitan.Emit(ctx, SignalCacheMiss,
		KeyTypeName.Field(typeName),
		KeyFieldCount.Field(fields),
	)
}

// emitMapComplete emits an event when a single mapping finishes.
func emitMapComplete(ctx context.Context, source, target string, copied int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeySourceType.Field(source),
		KeyTargetType.Field(target),
		KeyCopied.Field(copied),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalMapComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalMapComplete, fields...)
	}
}

// emitCollectionComplete emits an event when a collection mapping finishes.
func emitCollectionComplete(ctx context.Context, source, target string, count int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeySourceType.Field(source),
		KeyTargetType.Field(target),
		KeyCount.Field(count),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalCollectionComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalCollectionComplete, fields...)
	}
}
