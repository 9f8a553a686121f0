package coordinator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes coordinator diagnostics as Prometheus metrics, following
// the gauge-builder pattern of ZhenyuePan-NyxDB's cluster metrics
// collector, repointed at slot-map/health state instead of raft state.
type Metrics struct {
	clusterUp        prometheus.Gauge
	slotMapVersion   prometheus.Gauge
	upNodes          prometheus.Gauge
	queueFullNodes   prometheus.Gauge
	masterCount      prometheus.Gauge
	slotMapUpdates   prometheus.Counter
	nokTransitions   prometheus.Counter
	clusterSlotsErrs prometheus.Counter
}

// NewMetrics creates a Metrics registered on reg (prometheus.
// DefaultRegisterer if nil).
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	if namespace == "" {
		namespace = "rcoord"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	b := promauto.With(reg)
	return &Metrics{
		clusterUp: b.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "cluster_up",
			Help: "1 if the coordinator currently classifies the cluster as OK, 0 otherwise.",
		}),
		slotMapVersion: b.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "slot_map_version",
			Help: "Current accepted slot map version.",
		}),
		upNodes: b.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "up_nodes",
			Help: "Number of addresses currently reporting connection_up.",
		}),
		queueFullNodes: b.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "queue_full_nodes",
			Help: "Number of addresses currently reporting queue_full.",
		}),
		masterCount: b.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "master_count",
			Help: "Number of masters in the current slot map.",
		}),
		slotMapUpdates: b.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "slot_map_updates_total",
			Help: "Number of accepted slot map changes.",
		}),
		nokTransitions: b.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "nok_transitions_total",
			Help: "Number of OK to NOK edge transitions.",
		}),
		clusterSlotsErrs: b.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "cluster_slots_errors_total",
			Help: "Number of Redis-side errors observed on CLUSTER SLOTS refresh.",
		}),
	}
}

func (m *Metrics) observeState(s *state) {
	if m == nil {
		return
	}
	if s.clusterOK {
		m.clusterUp.Set(1)
	} else {
		m.clusterUp.Set(0)
	}
	m.slotMapVersion.Set(float64(s.slotMapVersion))
	m.upNodes.Set(float64(len(s.up)))
	m.queueFullNodes.Set(float64(len(s.queueFull)))
	m.masterCount.Set(float64(len(s.masters)))
}
