package bench

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zoobzio/mapper/internal/codec"
	mappertest "github.com/zoobzio/mapper/testing"
)

func TestRun_Generated(t *testing.T) {
	res, err := Run(context.Background(), Config{Count: 100, Format: "json", Verify: true}, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, 100, res.Mapped)
	require.Zero(t, res.Mismatches)
	require.NotEmpty(t, res.RunID)
}

func TestRun_Workers(t *testing.T) {
	models := mappertest.Models(1000, time.Now())

	serial, err := mapAll(context.Background(), models, 1)
	require.NoError(t, err)

	parallel, err := mapAll(context.Background(), models, 4)
	require.NoError(t, err)

	require.Equal(t, serial, parallel)
	require.Len(t, parallel, len(models))
	for i := range parallel {
		require.Equal(t, i, parallel[i].ID)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mapAll(ctx, mappertest.Models(100, time.Now()), 4)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_FixtureRoundTrip(t *testing.T) {
	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	models := mappertest.Models(10, at)

	for _, format := range codec.Names() {
		t.Run(format, func(t *testing.T) {
			dir := t.TempDir()
			in := filepath.Join(dir, "in."+format)
			out := filepath.Join(dir, "out."+format)

			require.NoError(t, WriteFixture(in, format, models))

			res, err := Run(context.Background(), Config{
				Input:   in,
				Output:  out,
				Format:  format,
				Workers: 2,
				Verify:  true,
			}, zap.NewNop())
			require.NoError(t, err)
			require.Equal(t, len(models), res.Mapped)

			data, err := os.ReadFile(out)
			require.NoError(t, err)

			c, err := codec.ByName(format)
			require.NoError(t, err)
			var doc batch[mappertest.SimpleOutput]
			require.NoError(t, c.Unmarshal(data, &doc))
			require.Len(t, doc.Records, len(models))
			require.Equal(t, "Item 3", doc.Records[3].Name)
			require.True(t, doc.Records[3].Date.Equal(at))
		})
	}
}

func TestRun_UnknownFormat(t *testing.T) {
	_, err := Run(context.Background(), Config{Count: 1, Format: "toml"}, zap.NewNop())
	require.ErrorIs(t, err, codec.ErrUnknownFormat)
}

func TestRun_NegativeCount(t *testing.T) {
	_, err := Run(context.Background(), Config{Count: -1, Format: "json"}, zap.NewNop())
	require.Error(t, err)
}

func TestRun_MissingInput(t *testing.T) {
	_, err := Run(context.Background(), Config{Input: filepath.Join(t.TempDir(), "nope.json"), Format: "json"}, zap.NewNop())
	require.Error(t, err)
}

func TestVerify_ReportsMismatch(t *testing.T) {
	models := mappertest.Models(3, time.Now())
	outputs := []mappertest.SimpleOutput{
		{ID: 0, Date: models[0].Date, Name: "Item 0"},
		{ID: 1, Date: models[1].Date, Name: "wrong"},
		{ID: 2, Date: models[2].Date, Name: "Item 2"},
	}

	n, err := verify(models, outputs, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestResult_PerRecord(t *testing.T) {
	require.Zero(t, Result{}.PerRecord())
	require.Equal(t, time.Millisecond, Result{Mapped: 10, Duration: 10 * time.Millisecond}.PerRecord())
}
