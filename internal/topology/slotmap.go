package topology

import "sort"

// TotalSlots is the fixed number of hash slots in a Redis Cluster.
const TotalSlots = 16384

// SlotRange assigns a contiguous band of slots [Start, Stop] to a master and
// its replicas. 0 <= Start <= Stop <= TotalSlots-1.
type SlotRange struct {
	Start    int
	Stop     int
	Master   Address
	Replicas []Address
}

// SlotMap is a slot range sequence. Canonical form is sorted by Start; build
// one with Canonicalize before comparing or installing it as coordinator
// state.
type SlotMap []SlotRange

// Canonicalize returns a new SlotMap sorted by Start. The input is not
// mutated.
func Canonicalize(ranges []SlotRange) SlotMap {
	out := make(SlotMap, len(ranges))
	copy(out, ranges)
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// Equal reports whether two slot maps are equal in canonical form: same
// length, and element-wise equal ranges (start, stop, master, and replica
// set, order-independent within replicas).
func Equal(a, b SlotMap) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Start != b[i].Start || a[i].Stop != b[i].Stop || a[i].Master != b[i].Master {
			return false
		}
		if !sameReplicas(a[i].Replicas, b[i].Replicas) {
			return false
		}
	}
	return true
}

func sameReplicas(a, b []Address) bool {
	if len(a) != len(b) {
		return false
	}
	as, bs := NewAddressSet(a...), NewAddressSet(b...)
	if len(as) != len(bs) {
		return false
	}
	for addr := range as {
		if !bs.Has(addr) {
			return false
		}
	}
	return true
}

// Masters returns the set of master addresses referenced by the slot map.
func (m SlotMap) Masters() AddressSet {
	out := make(AddressSet, len(m))
	for _, r := range m {
		out.Add(r.Master)
	}
	return out
}

// Addresses returns every address (masters and replicas) referenced by the
// slot map.
func (m SlotMap) Addresses() AddressSet {
	out := make(AddressSet)
	for _, r := range m {
		out.Add(r.Master)
		for _, rep := range r.Replicas {
			out.Add(rep)
		}
	}
	return out
}

// ValidationReason enumerates why a slot map fails validation, in the
// priority order the health classifier evaluates them in.
type ValidationReason string

const (
	ReasonOK                 ValidationReason = "ok"
	ReasonTooFewNodes        ValidationReason = "too_few_nodes"
	ReasonNotAllSlotsCovered ValidationReason = "not_all_slots_covered"
	ReasonTooFewReplicas     ValidationReason = "too_few_replicas"
)

// Validate checks the structural invariants of a canonical slot map
// independent of liveness: a minimum of two ranges, full contiguous
// coverage of [0, TotalSlots), and a minimum replica count per range. It
// does not check node liveness or queue backpressure — see the health
// package for that.
func Validate(m SlotMap, minReplicas int) ValidationReason {
	if len(m) < 2 {
		return ReasonTooFewNodes
	}
	if !coversAllSlots(m) {
		return ReasonNotAllSlotsCovered
	}
	for _, r := range m {
		if len(r.Replicas) < minReplicas {
			return ReasonTooFewReplicas
		}
	}
	return ReasonOK
}

// coversAllSlots reports whether a canonical slot map forms a contiguous
// cover of [0, TotalSlots): the first range starts at 0, each subsequent
// range starts at the predecessor's Stop+1, and the final Stop+1 ==
// TotalSlots.
func coversAllSlots(m SlotMap) bool {
	if len(m) == 0 {
		return false
	}
	if m[0].Start != 0 {
		return false
	}
	for i := 1; i < len(m); i++ {
		if m[i].Start != m[i-1].Stop+1 {
			return false
		}
	}
	return m[len(m)-1].Stop+1 == TotalSlots
}
