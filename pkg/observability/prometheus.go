package observability

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mazewalk"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	tickDuration     prom.Histogram
	ticksSkipped     prom.Counter
	phaseTransitions *prom.CounterVec
	mazesGenerated   prom.Counter
	waypoints        prom.Counter
	revealAmount     prom.Gauge
	publishDuration  *prom.HistogramVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
// A nil registry gets a private one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	pr := &PrometheusRecorder{
		tickDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent inside a single engine tick",
			Buckets:   []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025},
		}),
		ticksSkipped: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_skipped_total",
			Help:      "Ticks dropped because their elapsed time was out of range",
		}),
		phaseTransitions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "phase_transitions_total",
			Help:      "Lifecycle phase transitions",
		}, []string{"from", "to"}),
		mazesGenerated: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "mazes_generated_total",
			Help:      "Mazes installed by the engine",
		}),
		waypoints: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "waypoints_total",
			Help:      "Cells reached by the navigator",
		}),
		revealAmount: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "reveal_amount",
			Help:      "Reveal amount of the current maze, from 0 to 1",
		}),
		publishDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "publish_duration_seconds",
			Help:      "Duration of snapshot publication to the store",
			Buckets:   prom.DefBuckets,
		}, []string{"result"}),
	}

	reg.MustRegister(pr.tickDuration, pr.ticksSkipped, pr.phaseTransitions, pr.mazesGenerated,
		pr.waypoints, pr.revealAmount, pr.publishDuration)
	return pr
}

func (p *PrometheusRecorder) ObserveTickDuration(d time.Duration) {
	p.tickDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncTicksSkipped() { p.ticksSkipped.Inc() }

func (p *PrometheusRecorder) IncPhaseTransition(from, to string) {
	p.phaseTransitions.WithLabelValues(from, to).Inc()
}

func (p *PrometheusRecorder) IncMazesGenerated() { p.mazesGenerated.Inc() }

func (p *PrometheusRecorder) IncWaypoints() { p.waypoints.Inc() }

func (p *PrometheusRecorder) SetRevealAmount(v float64) { p.revealAmount.Set(v) }

func (p *PrometheusRecorder) ObservePublish(d time.Duration, success bool) {
	result := "success"
	if !success {
		result = "error"
	}
	p.publishDuration.WithLabelValues(result).Observe(d.Seconds())
}

// HTTPHandler returns an http.Handler that serves the metrics of reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
