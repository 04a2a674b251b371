package mapper

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEmitCacheMiss(_ *testing.T) {
	// Should not panic
	emitCacheMiss(context.Background(), "mapper.TestType", 4)
}

func TestEmitMapComplete_Success(_ *testing.T) {
	emitMapComplete(context.Background(), "mapper.Src", "mapper.Dst", 3, 100*time.Microsecond, nil)
}

func TestEmitMapComplete_Error(_ *testing.T) {
	emitMapComplete(context.Background(), "mapper.Src", "mapper.Dst", 0, 100*time.Microsecond, errors.New("test error"))
}

func TestEmitCollectionComplete_Success(_ *testing.T) {
	emitCollectionComplete(context.Background(), "mapper.Src", "mapper.Dst", 10, time.Millisecond, nil)
}

func TestEmitCollectionComplete_Error(_ *testing.T) {
	emitCollectionComplete(context.Background(), "mapper.Src", "mapper.Dst", 10, time.Millisecond, errors.New("test error"))
}

func TestSignalVariables(t *testing.T) {
	signals := []struct {
		name   string
		signal interface{}
	}{
		{"SignalCacheMiss", SignalCacheMiss},
		{"SignalMapComplete", SignalMapComplete},
		{"SignalCollectionComplete", SignalCollectionComplete},
	}

	for _, s := range signals {
		if s.signal == nil {
			t.Errorf("%s is nil", s.name)
		}
	}
}

func TestKeyVariables(t *testing.T) {
	keys := []struct {
		name string
		key  interface{}
	}{
		{"KeyTypeName", KeyTypeName},
		{"KeySourceType", KeySourceType},
		{"KeyTargetType", KeyTargetType},
		{"KeyFieldCount", KeyFieldCount},
		{"KeyCopied", KeyCopied},
		{"KeyCount", KeyCount},
		{"KeyDuration", KeyDuration},
		{"KeyError", KeyError},
	}

	for _, k := range keys {
		if k.key == nil {
			t.Errorf("%s is nil", k.name)
		}
	}
}
