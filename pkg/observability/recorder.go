package observability

import "time"

// Recorder receives engine and host metrics. Implementations may forward to
// Prometheus or any other backend.
type Recorder interface {
	ObserveTickDuration(d time.Duration)
	IncTicksSkipped()
	IncPhaseTransition(from, to string)
	IncMazesGenerated()
	IncWaypoints()
	SetRevealAmount(v float64)
	ObservePublish(d time.Duration, success bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveTickDuration(time.Duration)  {}
func (NoopRecorder) IncTicksSkipped()                   {}
func (NoopRecorder) IncPhaseTransition(string, string)  {}
func (NoopRecorder) IncMazesGenerated()                 {}
func (NoopRecorder) IncWaypoints()                      {}
func (NoopRecorder) SetRevealAmount(float64)            {}
func (NoopRecorder) ObservePublish(time.Duration, bool) {}
