package metrics

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/samcharles93/ngramlab/internal/ngram"
)

const namespace = "ngramlab"

// Metrics holds the collectors of the HTTP service on a private registry, so
// several servers in one process (tests) do not collide.
type Metrics struct {
	registry *prometheus.Registry

	modelsBuilt     prometheus.Counter
	modelsLoaded    prometheus.Gauge
	corpusTokens    prometheus.Histogram
	tokensGenerated *prometheus.CounterVec
	scores          *prometheus.CounterVec
	lookupFailures  *prometheus.CounterVec
}

// New registers the service collectors and the Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		modelsBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "models_built_total",
			Help:      "Model families built from a corpus.",
		}),
		modelsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "models_loaded",
			Help:      "Model families currently held in memory.",
		}),
		corpusTokens: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "corpus_tokens",
			Help:      "Token count of corpora used to build models.",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 10),
		}),
		tokensGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_generated_total",
			Help:      "Tokens produced by text generation.",
		}, []string{"order"}),
		scores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "perplexity_requests_total",
			Help:      "Perplexity computations by order and result.",
		}, []string{"order", "result"}),
		lookupFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_failures_total",
			Help:      "Generate or score calls aborted by an unseen context or outcome.",
		}, []string{"kind"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.modelsBuilt,
		m.modelsLoaded,
		m.corpusTokens,
		m.tokensGenerated,
		m.scores,
		m.lookupFailures,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) ModelBuilt(tokens int) {
	m.modelsBuilt.Inc()
	m.modelsLoaded.Inc()
	m.corpusTokens.Observe(float64(tokens))
}

func (m *Metrics) ModelDeleted() {
	m.modelsLoaded.Dec()
}

func (m *Metrics) Generated(order, tokens int) {
	m.tokensGenerated.WithLabelValues(strconv.Itoa(order)).Add(float64(tokens))
}

// Scored records a perplexity computation and classifies err.
func (m *Metrics) Scored(order int, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.scores.WithLabelValues(strconv.Itoa(order), result).Inc()
	m.LookupFailed(err)
}

// LookupFailed counts err when it is an unseen context or outcome.
func (m *Metrics) LookupFailed(err error) {
	switch {
	case errors.Is(err, ngram.ErrContextNotFound):
		m.lookupFailures.WithLabelValues("context").Inc()
	case errors.Is(err, ngram.ErrOutcomeNotFound):
		m.lookupFailures.WithLabelValues("outcome").Inc()
	}
}
