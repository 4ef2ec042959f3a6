package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	documentsUploadedTotal  atomic.Uint64
	questionsAnsweredTotal  atomic.Uint64
	questionsFailedTotal    atomic.Uint64
	summariesGeneratedTotal atomic.Uint64
	summariesFallbackTotal  atomic.Uint64

	capabilityDuration = newHistogram([]float64{10, 50, 100, 250, 500, 1000, 2000, 5000, 10000, 30000})
)

// IncDocumentsUploaded counts a stored upload.
func IncDocumentsUploaded() {
	documentsUploadedTotal.Add(1)
}

// IncQuestionsAnswered counts a successful ask.
func IncQuestionsAnswered() {
	questionsAnsweredTotal.Add(1)
}

// IncQuestionsFailed counts an ask that ended in a 500.
func IncQuestionsFailed() {
	questionsFailedTotal.Add(1)
}

// IncSummariesGenerated counts a delivered summary PDF.
func IncSummariesGenerated() {
	summariesGeneratedTotal.Add(1)
}

// IncSummariesFallback counts summaries that used the fallback text.
func IncSummariesFallback() {
	summariesFallbackTotal.Add(1)
}

// ObserveCapabilityDuration records one capability call.
func ObserveCapabilityDuration(d time.Duration) {
	value := float64(d.Microseconds()) / 1000.0
	if value < 0 {
		value = 0
	}
	capabilityDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "documents_uploaded_total", "Total documents uploaded", documentsUploadedTotal.Load())
	writeCounter(&buf, "questions_answered_total", "Total questions answered", questionsAnsweredTotal.Load())
	writeCounter(&buf, "questions_failed_total", "Total questions that failed", questionsFailedTotal.Load())
	writeCounter(&buf, "summaries_generated_total", "Total summary PDFs generated", summariesGeneratedTotal.Load())
	writeCounter(&buf, "summaries_fallback_total", "Total summaries that used the fallback text", summariesFallbackTotal.Load())
	writeHistogram(&buf, "capability_duration_ms", "Text-understanding capability latency in milliseconds", capabilityDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
