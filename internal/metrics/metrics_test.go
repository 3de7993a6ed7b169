package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRecords(t *testing.T) {
	r := New()
	r.ObserveRecords("status", "field-match", 3)
	r.ObserveRecords("status", "field-match", 2)
	r.ObserveRecords("tag", "array", 1)

	assert.Equal(t, 5.0, testutil.ToFloat64(r.recordsGenerated.WithLabelValues("status", "field-match")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.recordsGenerated.WithLabelValues("tag", "array")))
}

func TestWriteTextfile(t *testing.T) {
	r := New()
	r.ObserveRecords("comment-count", "comparison", 4)
	r.ObserveRun(1500*time.Millisecond, time.Unix(1700000000, 0))

	path := filepath.Join(t.TempDir(), "querygen.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `querygen_records_generated_total{category="comparison",template="comment-count"} 4`)
	assert.Contains(t, out, "querygen_generation_duration_seconds 1.5")
	assert.Contains(t, out, "querygen_last_run_timestamp_seconds 1.7e+09")
}
