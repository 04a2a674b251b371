// Package bench maps fixture records in bulk and reports how long it took.
package bench

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/panjf2000/ants/v2"
	"github.com/r3labs/diff/v3"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/zoobzio/mapper"
	"github.com/zoobzio/mapper/internal/codec"
	mappertest "github.com/zoobzio/mapper/testing"
)

// ErrMismatch indicates --verify found outputs that differ from the reference copy.
var ErrMismatch = errors.New("mapped output differs from reference")

// Config controls a benchmark run.
type Config struct {
	Count   int    // records to generate when Input is empty
	Workers int    // pool size; <= 1 maps on the calling goroutine
	Input   string // fixture file of SimpleModel records
	Output  string // destination for mapped records
	Format  string // codec name for Input and Output
	Verify  bool   // compare every output with a copier reference
}

// Result summarizes a run.
type Result struct {
	RunID      string
	Mapped     int
	Duration   time.Duration
	Mismatches int
}

// PerRecord returns the average mapping cost of one record.
func (r Result) PerRecord() time.Duration {
	if r.Mapped == 0 {
		return 0
	}
	return r.Duration / time.Duration(r.Mapped)
}

// batch is the on-disk document; XML and BSON cannot encode a bare slice.
type batch[T any] struct {
	XMLName xml.Name `json:"-" yaml:"-" msgpack:"-" bson:"-" xml:"records"`
	Records []T      `json:"records" yaml:"records" msgpack:"records" bson:"records" xml:"record"`
}

// Run executes one benchmark run described by cfg.
func Run(ctx context.Context, cfg Config, logger *zap.Logger) (Result, error) {
	res := Result{RunID: uuid.NewString()}
	logger = logger.With(zap.String("run_id", res.RunID))

	c, err := codec.ByName(cfg.Format)
	if err != nil {
		return res, err
	}

	models, err := load(cfg, c)
	if err != nil {
		return res, err
	}
	logger.Info("records loaded", zap.Int("count", len(models)), zap.String("source", sourceName(cfg)))

	start := time.Now()
	outputs, err := mapAll(ctx, models, cfg.Workers)
	res.Duration = time.Since(start)
	if err != nil {
		return res, err
	}
	res.Mapped = len(outputs)

	logger.Info("records mapped",
		zap.Int("count", res.Mapped),
		zap.Int("workers", max(cfg.Workers, 1)),
		zap.Duration("duration", res.Duration),
		zap.Duration("per_record", res.PerRecord()),
	)

	if cfg.Verify {
		res.Mismatches, err = verify(models, outputs, logger)
		if err != nil {
			return res, err
		}
		if res.Mismatches > 0 {
			return res, fmt.Errorf("%w: %d of %d records", ErrMismatch, res.Mismatches, res.Mapped)
		}
		logger.Info("outputs verified", zap.Int("count", res.Mapped))
	}

	if cfg.Output != "" {
		data, err := c.Marshal(batch[mappertest.SimpleOutput]{Records: outputs})
		if err != nil {
			return res, fmt.Errorf("encode output: %w", err)
		}
		if err := os.WriteFile(cfg.Output, data, 0o644); err != nil {
			return res, fmt.Errorf("write output: %w", err)
		}
		logger.Info("output written", zap.String("path", cfg.Output), zap.Int("bytes", len(data)))
	}

	return res, nil
}

func sourceName(cfg Config) string {
	if cfg.Input != "" {
		return cfg.Input
	}
	return "generated"
}

func load(cfg Config, c codec.Codec) ([]mappertest.SimpleModel, error) {
	if cfg.Input == "" {
		if cfg.Count < 0 {
			return nil, fmt.Errorf("count must not be negative, got %d", cfg.Count)
		}
		return mappertest.Models(cfg.Count, time.Now()), nil
	}

	data, err := os.ReadFile(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	var doc batch[mappertest.SimpleModel]
	if err := c.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode input: %w", err)
	}
	return doc.Records, nil
}

// WriteFixture encodes models to path so later runs can use it as Input.
func WriteFixture(path, format string, models []mappertest.SimpleModel) error {
	c, err := codec.ByName(format)
	if err != nil {
		return err
	}
	data, err := c.Marshal(batch[mappertest.SimpleModel]{Records: models})
	if err != nil {
		return fmt.Errorf("encode fixture: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// mapAll maps models in order. With more than one worker the input is split
// into chunks mapped on an ants pool and joined back in chunk order.
func mapAll(ctx context.Context, models []mappertest.SimpleModel, workers int) ([]mappertest.SimpleOutput, error) {
	if workers <= 1 || len(models) < workers {
		return mapper.MapCollection[mappertest.SimpleModel, mappertest.SimpleOutput](models)
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("worker pool: %w", err)
	}
	defer pool.Release()

	chunks := lo.Chunk(models, (len(models)+workers-1)/workers)
	results := make([][]mappertest.SimpleOutput, len(chunks))
	errs := make([]error, len(chunks))

	var wg sync.WaitGroup
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			out, err := mapper.MapCollection[mappertest.SimpleModel, mappertest.SimpleOutput](chunk)
			if err != nil {
				errs[i] = fmt.Errorf("chunk %d: %w", i, err)
				return
			}
			results[i] = out
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submit chunk %d: %w", i, err)
		}
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return lo.Flatten(results), nil
}

// verify compares each output with copier's copy of the same model.
func verify(models []mappertest.SimpleModel, outputs []mappertest.SimpleOutput, logger *zap.Logger) (int, error) {
	mismatches := 0
	for i := range models {
		var ref mappertest.SimpleOutput
		if err := copier.Copy(&ref, &models[i]); err != nil {
			return mismatches, fmt.Errorf("reference copy %d: %w", i, err)
		}

		changes, err := diff.Diff(ref, outputs[i])
		if err != nil {
			return mismatches, fmt.Errorf("diff %d: %w", i, err)
		}
		if len(changes) == 0 {
			continue
		}

		mismatches++
		for _, ch := range changes {
			logger.Warn("output mismatch",
				zap.Int("index", i),
				zap.Strings("path", ch.Path),
				zap.Any("want", ch.From),
				zap.Any("got", ch.To),
			)
		}
	}
	return mismatches, nil
}
