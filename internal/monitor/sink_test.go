package monitor

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleResult() RunResult {
	checked := time.Unix(1700000000, 0).UTC()
	return RunResult{
		RunID:      "run-1",
		StartedAt:  checked,
		FinishedAt: checked.Add(time.Minute),
		Verdicts: []Verdict{
			{Site: "https://a.example", HasPromotion: true, PromotionText: "20% off everything", CheckedAt: checked},
			{Site: "https://b.example", HasPromotion: false, CheckedAt: checked},
			{Site: "https://c.example", Error: "fetch_error: dial timeout", CheckedAt: checked},
		},
	}
}

func TestFileSinkWritesBothFiles(t *testing.T) {
	t.Parallel()

	sink, err := NewFileSink(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, sink.Write(context.Background(), sampleResult()))

	assert.FileExists(t, sink.JSONPath())
	assert.FileExists(t, sink.CSVPath())
}

func TestFileSinkJSONRoundTrip(t *testing.T) {
	t.Parallel()

	sink, err := NewFileSink(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	result := sampleResult()
	require.NoError(t, sink.Write(context.Background(), result))

	payload, err := os.ReadFile(sink.JSONPath())
	require.NoError(t, err)

	var got []Verdict
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.Equal(t, result.Verdicts, got)
}

func TestFileSinkCSVShape(t *testing.T) {
	t.Parallel()

	sink, err := NewFileSink(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, sink.Write(context.Background(), sampleResult()))

	f, err := os.Open(sink.CSVPath())
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"site", "has_promotion", "promotion_text"}, rows[0])
	assert.Equal(t, []string{"https://a.example", "true", "20% off everything"}, rows[1])
	assert.Equal(t, []string{"https://b.example", "false", ""}, rows[2])
	assert.Equal(t, []string{"https://c.example", "false", ""}, rows[3])
}

func TestFileSinkReplacesPreviousOutput(t *testing.T) {
	t.Parallel()

	sink, err := NewFileSink(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, sink.Write(context.Background(), sampleResult()))

	second := RunResult{
		RunID:    "run-2",
		Verdicts: []Verdict{{Site: "https://z.example", CheckedAt: time.Unix(1700003600, 0).UTC()}},
	}
	require.NoError(t, sink.Write(context.Background(), second))

	payload, err := os.ReadFile(sink.JSONPath())
	require.NoError(t, err)

	var got []Verdict
	require.NoError(t, json.Unmarshal(payload, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "https://z.example", got[0].Site)
}

func TestFileSinkCanceledContext(t *testing.T) {
	t.Parallel()

	sink, err := NewFileSink(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = sink.Write(ctx, sampleResult())
	require.Error(t, err)
	assert.NoFileExists(t, sink.JSONPath())
}
