package pathmgr

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus collectors the manager updates once per
// tick: how often each strategy runs, how the active primitive looks, and
// how Dubins solves are going.
type Metrics struct {
	Ticks          *prometheus.CounterVec
	Transitions    prometheus.Counter
	DubinsSolves   prometheus.Counter
	DubinsFailures prometheus.Counter

	PrimitiveFlag prometheus.Gauge
	PrimitiveRho  prometheus.Gauge
	ActiveIdx     prometheus.Gauge
}

// NewMetrics registers the manager's collectors against reg, defaulting to
// the global Prometheus registry when reg is nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	ticks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pathmgr_ticks_total",
		Help: "Total number of Tick calls, labeled by the active strategy.",
	}, []string{"strategy"})
	if err := reg.Register(ticks); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			ticks = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}

	transitions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pathmgr_waypoint_transitions_total",
		Help: "Total number of advances of the active waypoint index.",
	})
	if err := reg.Register(transitions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			transitions = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}

	dubinsSolves := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pathmgr_dubins_solves_total",
		Help: "Total number of Dubins path solves attempted.",
	})
	if err := reg.Register(dubinsSolves); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			dubinsSolves = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}

	dubinsFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pathmgr_dubins_solve_failures_total",
		Help: "Total number of Dubins path solves that failed (configurations closer than 2*R_min).",
	})
	if err := reg.Register(dubinsFailures); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			dubinsFailures = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}

	flag := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pathmgr_primitive_flag",
		Help: "1 if the current primitive is a line, 0 if it is an orbit.",
	})
	if err := reg.Register(flag); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			flag = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	rho := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pathmgr_primitive_rho_meters",
		Help: "Orbit radius of the current primitive, meters (0 for a line).",
	})
	if err := reg.Register(rho); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			rho = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	idx := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pathmgr_active_waypoint_index",
		Help: "Index of the waypoint the manager is currently departing from.",
	})
	if err := reg.Register(idx); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			idx = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &Metrics{
		Ticks:          ticks,
		Transitions:    transitions,
		DubinsSolves:   dubinsSolves,
		DubinsFailures: dubinsFailures,
		PrimitiveFlag:  flag,
		PrimitiveRho:   rho,
		ActiveIdx:      idx,
	}, nil
}

// Observe records one tick's outcome: the strategy that produced p, and the
// shape of p itself.
func (m *Metrics) Observe(strategy string, idxA int, p Primitive) {
	if m == nil {
		return
	}
	m.Ticks.WithLabelValues(strategy).Inc()
	m.ActiveIdx.Set(float64(idxA))
	if p.Flag {
		m.PrimitiveFlag.Set(1)
		m.PrimitiveRho.Set(0)
	} else {
		m.PrimitiveFlag.Set(0)
		m.PrimitiveRho.Set(p.Rho)
	}
}

// ObserveTransition increments the waypoint-transition counter.
func (m *Metrics) ObserveTransition() {
	if m == nil {
		return
	}
	m.Transitions.Inc()
}

// Handler returns the HTTP handler serving the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
