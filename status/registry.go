package status

import "sync/atomic"

// Metric keys shared by producers and the status endpoint
const (
	EngineTicks          = "engine.ticks"
	EnginePolls          = "engine.polls"
	EngineMode           = "engine.mode"
	EnginePhase          = "engine.phase"
	EngineMeter          = "engine.meter"
	GestureConfirmed     = "gesture.confirmed"
	EncounterKills       = "encounter.kills"
	EncounterSpawns      = "encounter.spawns"
	FinisherCompletions  = "finisher.completions"
	NetworkFramesIn      = "network.frames_in"
	NetworkFramesDropped = "network.frames_dropped"
	NetworkClients       = "network.clients"
	AudioEnabled         = "audio.enabled"
)

// Registry is the central metrics facade
// Producers cache pointers during init; update loops write directly to atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Snapshot reads every metric into a flat map keyed by metric name
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.TotalCount())
	r.Bools.Range(func(k string, p *atomic.Bool) { out[k] = p.Load() })
	r.Ints.Range(func(k string, p *atomic.Int64) { out[k] = p.Load() })
	r.Floats.Range(func(k string, p *AtomicFloat) { out[k] = p.Get() })
	r.Strings.Range(func(k string, p *AtomicString) { out[k] = p.Load() })
	return out
}
