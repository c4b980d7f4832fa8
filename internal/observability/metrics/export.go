// Package metrics emits the export's run-level metrics.
package metrics

import (
	"time"

	obserrors "github.com/isre1late/json-samples/internal/observability/errors"
	"github.com/isre1late/json-samples/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess  = "success"
	ResultError    = "error"
	ResultCanceled = "canceled"
)

// ExportRunMetric captures the outcome of one export run.
type ExportRunMetric struct {
	Result     string
	Rows       int
	Bytes      int64
	Overwrites int
	Duration   time.Duration
	Err        error
}

// EmitExportRun emits export.run plus the run's totals. Totals are emitted
// for failed runs too, since files written before the failure stay on disk.
func EmitExportRun(sink statsd.Sink, in ExportRunMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{"result": in.Result}
	if in.Err != nil && in.Result != ResultSuccess {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("export.run", 1, tags)
	sink.Count("export.rows", int64(in.Rows), CloneTags(tags))
	sink.Count("export.bytes", in.Bytes, CloneTags(tags))
	sink.Count("export.overwrites", int64(in.Overwrites), CloneTags(tags))

	if in.Duration > 0 {
		sink.Timing("export.duration", in.Duration, CloneTags(tags))
	}
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
