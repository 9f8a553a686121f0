// Package health implements the coordinator's health classifier: the pure
// function that derives a Reason from the current slot map, the set of
// reachable masters, and the set of back-pressured masters.
package health

import "github.com/dreamware/rcoord/internal/topology"

// Reason is the health classifier's verdict, in priority order.
type Reason string

const (
	ReasonTooFewNodes        Reason = "too_few_nodes"
	ReasonNotAllSlotsCovered Reason = "not_all_slots_covered"
	ReasonTooFewReplicas     Reason = "too_few_replicas"
	ReasonMasterDown         Reason = "master_down"
	ReasonMasterQueueFull    Reason = "master_queue_full"
	ReasonOK                 Reason = "ok"
)

// Classify computes the health reason for the current state, in the
// priority order of structural slot-map problems first, then
// liveness, then backpressure. minReplicas is the configured minimum
// replica count per master.
func Classify(slotMap topology.SlotMap, up, queueFull topology.AddressSet, minReplicas int) Reason {
	switch topology.Validate(slotMap, minReplicas) {
	case topology.ReasonTooFewNodes:
		return ReasonTooFewNodes
	case topology.ReasonNotAllSlotsCovered:
		return ReasonNotAllSlotsCovered
	case topology.ReasonTooFewReplicas:
		return ReasonTooFewReplicas
	}

	masters := slotMap.Masters()
	for m := range masters {
		if !up.Has(m) {
			return ReasonMasterDown
		}
	}
	if len(topology.Intersect(masters, queueFull)) > 0 {
		return ReasonMasterQueueFull
	}
	return ReasonOK
}

// IsOK reports whether a Reason represents a healthy cluster.
func (r Reason) IsOK() bool {
	return r == ReasonOK
}
