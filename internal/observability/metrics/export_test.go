package metrics

import (
	"sync"
	"testing"
	"time"

	apperrors "github.com/isre1late/json-samples/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedMetric struct {
	kind  string
	name  string
	value float64
	tags  map[string]string
}

type recordingSink struct {
	mu      sync.Mutex
	metrics []recordedMetric
}

func (r *recordingSink) Count(name string, value int64, tags map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metrics = append(r.metrics, recordedMetric{kind: "count", name: name, value: float64(value), tags: tags})
}

func (r *recordingSink) Timing(name string, value time.Duration, tags map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metrics = append(r.metrics, recordedMetric{kind: "timing", name: name, value: float64(value), tags: tags})
}

func (r *recordingSink) byName(name string) (recordedMetric, bool) {
	for _, m := range r.metrics {
		if m.name == name {
			return m, true
		}
	}
	return recordedMetric{}, false
}

func TestEmitExportRun_Success(t *testing.T) {
	sink := &recordingSink{}

	EmitExportRun(sink, ExportRunMetric{
		Result:     ResultSuccess,
		Rows:       3,
		Bytes:      120,
		Overwrites: 1,
		Duration:   250 * time.Millisecond,
	})

	require.Len(t, sink.metrics, 5)

	run, ok := sink.byName("export.run")
	require.True(t, ok)
	assert.Equal(t, "count", run.kind)
	assert.InDelta(t, 1, run.value, 0)
	assert.Equal(t, map[string]string{"result": ResultSuccess}, run.tags)

	rows, _ := sink.byName("export.rows")
	assert.InDelta(t, 3, rows.value, 0)
	bytes, _ := sink.byName("export.bytes")
	assert.InDelta(t, 120, bytes.value, 0)
	overwrites, _ := sink.byName("export.overwrites")
	assert.InDelta(t, 1, overwrites.value, 0)

	duration, ok := sink.byName("export.duration")
	require.True(t, ok)
	assert.Equal(t, "timing", duration.kind)
	assert.InDelta(t, float64(250*time.Millisecond), duration.value, 0)
}

func TestEmitExportRun_ErrorClass(t *testing.T) {
	sink := &recordingSink{}

	EmitExportRun(sink, ExportRunMetric{
		Result: ResultError,
		Rows:   2,
		Err:    apperrors.New(apperrors.ErrCodeFilesystem, "write sample"),
	})

	run, ok := sink.byName("export.run")
	require.True(t, ok)
	assert.Equal(t, "filesystem", run.tags["error_class"])
	assert.Equal(t, ResultError, run.tags["result"])

	_, ok = sink.byName("export.duration")
	assert.False(t, ok, "zero duration is not emitted")

	rows, _ := sink.byName("export.rows")
	rows.tags["mutated"] = "yes"
	assert.NotContains(t, run.tags, "mutated", "each metric gets its own tag map")
}

func TestEmitExportRun_NilSink(t *testing.T) {
	assert.NotPanics(t, func() {
		EmitExportRun(nil, ExportRunMetric{Result: ResultSuccess})
	})
}

func TestCloneTags(t *testing.T) {
	assert.Nil(t, CloneTags(nil))

	src := map[string]string{"result": "success"}
	cp := CloneTags(src)
	cp["result"] = "error"
	assert.Equal(t, "success", src["result"])
}
