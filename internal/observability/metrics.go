package observability

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "u8ctl"

const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
)

var (
	registerOnce sync.Once

	tokensParsed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "parser",
			Name:      "tokens_total",
			Help:      "Tokens passed to the byte parser by result.",
		},
		[]string{"result"},
	)
	tokenLength = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "parser",
			Name:      "token_length_bytes",
			Help:      "Length of tokens passed to the byte parser.",
			Buckets:   []float64{0, 1, 2, 3, 4, 8},
		},
	)
	readErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "input",
			Name:      "read_errors_total",
			Help:      "Failed reads from the input stream.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(tokensParsed, tokenLength, readErrors)
	})
}

func RecordToken(length int, ok bool) {
	RegisterMetrics()
	result := ResultRejected
	if ok {
		result = ResultAccepted
	}
	tokensParsed.WithLabelValues(result).Inc()
	tokenLength.Observe(float64(length))
}

func RecordReadError() {
	RegisterMetrics()
	readErrors.Inc()
}

// WriteText dumps this process's u8ctl metric families in the prometheus
// text exposition format.
func WriteText(w io.Writer) error {
	RegisterMetrics()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), namespace+"_") {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
