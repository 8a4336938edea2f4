package salesman

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/xrash/smetrics"
)

// PathEditDistance is the Wagner-Fischer edit distance between the city
// orders of a and b, with unit insert, delete and substitute costs. Cities
// are numbered by their position on a, so identical roads score 0.
// Positions are folded into one byte each; on roads of more than 256 cities
// the result is a lower bound.
func PathEditDistance(a, b *Road) int {
	index := make(map[City]int, a.Len())
	ea := make([]byte, a.Len())
	for i, c := range a.path {
		index[c] = i
		ea[i] = byte(i)
	}
	eb := make([]byte, b.Len())
	for i, c := range b.path {
		pos, ok := index[c]
		if !ok {
			pos = a.Len() + i
		}
		eb[i] = byte(pos)
	}
	return smetrics.WagnerFischer(string(ea), string(eb), 1, 1, 1)
}

// PrometheusReporter exports round figures as Prometheus metrics.
type PrometheusReporter struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once
	regErr    error

	rounds           prometheus.Counter
	degradedPairs    prometheus.Counter
	convergeFailures prometheus.Counter
	bestLength       prometheus.Gauge
	highScore        prometheus.Gauge
	topHalfAverage   prometheus.Gauge
	poolSize         prometheus.Gauge
	diversity        prometheus.Gauge
	roundSeconds     prometheus.Histogram
}

// NewPrometheusReporter registers its collectors on reg, or on
// prometheus.DefaultRegisterer when reg is nil. namespace defaults to
// "salesman".
func NewPrometheusReporter(reg prometheus.Registerer, namespace string) *PrometheusReporter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "salesman"
	}
	return &PrometheusReporter{reg: reg, namespace: namespace}
}

func (p *PrometheusReporter) ensureRegistered() error {
	p.once.Do(func() {
		p.rounds = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Name:      "rounds_total",
			Help:      "Generations completed.",
		})
		p.degradedPairs = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Name:      "degraded_parent_pairs_total",
			Help:      "Children bred from a pair that could not be made distinct.",
		})
		p.convergeFailures = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Name:      "converge_failures_total",
			Help:      "Generations whose pool stayed under pool_size.",
		})
		p.bestLength = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Name:      "pool_best_length",
			Help:      "Length of the best road of the latest pool.",
		})
		p.highScore = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Name:      "high_score_length",
			Help:      "Length of the best road known so far.",
		})
		p.topHalfAverage = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Name:      "pool_top_half_average_length",
			Help:      "Mean length of the better half of the latest pool.",
		})
		p.poolSize = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Name:      "pool_size",
			Help:      "Roads in the latest pool.",
		})
		p.diversity = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Name:      "pool_top_edit_distance",
			Help:      "Edit distance between the two best roads of the latest pool.",
		})
		p.roundSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Name:      "round_duration_seconds",
			Help:      "Time spent in one generation.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		})
		for _, c := range []prometheus.Collector{
			p.rounds, p.degradedPairs, p.convergeFailures, p.bestLength, p.highScore,
			p.topHalfAverage, p.poolSize, p.diversity, p.roundSeconds,
		} {
			if err := p.reg.Register(c); err != nil {
				p.regErr = fmt.Errorf("failed to register metric: %w", err)
				return
			}
		}
	})
	return p.regErr
}

func (p *PrometheusReporter) ReportRound(report *GenerationReport) error {
	if err := p.ensureRegistered(); err != nil {
		return err
	}
	p.rounds.Inc()
	p.degradedPairs.Add(float64(report.DegradedPairs))
	if !report.Converged {
		p.convergeFailures.Inc()
	}
	p.bestLength.Set(report.BestLength)
	p.highScore.Set(report.HighScore)
	p.topHalfAverage.Set(report.TopHalfAverage)
	p.poolSize.Set(float64(report.PoolSize))
	p.diversity.Set(float64(report.Diversity))
	p.roundSeconds.Observe(report.Duration.Seconds())
	return nil
}
