package telemetry

import (
	"context"
	"sort"
	"strings"

	"github.com/grafana/pyroscope-go"
)

// Profiling label keys
const (
	ProfilingLabelRoute   = "route"
	ProfilingLabelMethod  = "method"
	ProfilingLabelSurface = "surface"
)

// MaxLabelValueLength bounds label values so a stray path cannot blow up
// label cardinality
const MaxLabelValueLength = 128

// highCardinalityLabels are never attached to profiles
var highCardinalityLabels = map[string]bool{
	"user":       true,
	"request_id": true,
	"trace_id":   true,
	"span_id":    true,
	"record_id":  true,
}

// WithProfilingLabels runs fn with pyroscope labels attached to ctx. Empty
// and high-cardinality labels are dropped.
func WithProfilingLabels(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	pairs := sanitizeLabels(labels)
	if len(pairs) == 0 {
		fn(ctx)
		return
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(pairs...), fn)
}

// sanitizeLabels returns key/value pairs sorted by key
func sanitizeLabels(labels map[string]string) []string {
	keys := make([]string, 0, len(labels))
	for k, v := range labels {
		k = strings.TrimSpace(k)
		if k == "" || strings.TrimSpace(v) == "" || highCardinalityLabels[k] {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		v := strings.TrimSpace(labels[k])
		if len(v) > MaxLabelValueLength {
			v = v[:MaxLabelValueLength]
		}
		pairs = append(pairs, k, v)
	}
	return pairs
}
