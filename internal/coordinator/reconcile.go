package coordinator

import (
	"fmt"
	"time"

	"github.com/dreamware/rcoord/internal/health"
	"github.com/dreamware/rcoord/internal/nodeclient"
	"github.com/dreamware/rcoord/internal/topology"
)

// handleClusterSlotsReply reconciles a CLUSTER SLOTS reply against the
// current slot map. reqVersion is the slot_map_version that was current
// when the request was issued.
func (a *Actor) handleClusterSlotsReply(reqVersion uint64, target topology.Address, res nodeclient.Result) {
	s := a.state
	if reqVersion < s.slotMapVersion {
		a.log.Debug().Uint64("req_version", reqVersion).Uint64("current", s.slotMapVersion).
			Msg("dropping stale CLUSTER SLOTS reply")
		return
	}
	if !res.OK() {
		a.log.Debug().Err(res.TransportErr).Str("target", target.String()).
			Msg("CLUSTER SLOTS transport error, will retry")
		return
	}
	if res.RedisErr != nil {
		s.bus.clusterSlotsError(res.RedisErr)
		if s.metrics != nil {
			s.metrics.clusterSlotsErrs.Inc()
		}
		return
	}

	newMap, err := nodeclient.ParseClusterSlots(res.Reply)
	if err != nil {
		// Malformed replies are treated like Redis-side errors: surfaced,
		// not fatal, and retried by the next scheduled refresh.
		s.bus.clusterSlotsError(fmt.Errorf("parsing CLUSTER SLOTS reply: %w", err))
		return
	}

	if topology.Equal(newMap, s.slotMap) {
		return
	}
	a.applySlotMap(newMap)
}

// applySlotMap performs the atomic diff-and-install: open clients for
// newly referenced addresses, retain clients still referenced or
// reachable, schedule delayed closure for the rest, publish
// slot_map_updated, bump the version, and reclassify.
func (a *Actor) applySlotMap(newMap topology.SlotMap) {
	s := a.state

	newAddrs := newMap.Addresses()
	newMasters := newMap.Masters()

	currentAddrs := make(topology.AddressSet, len(s.nodes))
	for addr := range s.nodes {
		currentAddrs.Add(addr)
	}
	initialSet := topology.NewAddressSet(s.initialNodes...)
	keep := topology.Union(initialSet, newAddrs, s.up)
	candidatesForRemoval := currentAddrs.Sub(keep)

	for addr := range newAddrs {
		if _, exists := s.nodes[addr]; !exists {
			a.openClient(addr)
		}
	}

	for addr := range candidatesForRemoval {
		entry := s.nodes[addr]
		delete(s.nodes, addr)
		a.scheduleClose(entry)
	}

	s.slotMap = newMap
	s.masters = newMasters
	s.slotMapVersion++
	s.bus.slotMapUpdated(newMap, s.slotMapVersion)
	if s.metrics != nil {
		s.metrics.slotMapUpdates.Inc()
	}

	a.reclassify()
}

// scheduleClose defers stopping entry's client by CloseWait, so in-flight
// replies destined for it are not lost. The timer touches nothing
// but the client itself — it never reaches back into actor state, so a
// timer firing after the actor has stopped is harmless.
func (a *Actor) scheduleClose(entry *nodeEntry) {
	if entry == nil {
		return
	}
	wait := a.state.cfg.CloseWait
	time.AfterFunc(wait, func() {
		entry.client.Stop()
	})
}

// openClient dials a new client for addr and wires its events back into
// the actor's own mailbox.
func (a *Actor) openClient(addr topology.Address) *nodeEntry {
	opts := a.state.clientOptsFor(addr, a.postConnEvent)
	client, err := a.state.cfg.Dialer(addr, opts)
	if err != nil {
		a.log.Warn().Err(err).Str("addr", addr.String()).Msg("failed to open node client")
		return nil
	}
	entry := &nodeEntry{addr: addr, client: client}
	a.state.nodes[addr] = entry
	return entry
}

// reclassify recomputes health and drives the OK/NOK edge transitions
// and scheduler arming/disarming.
func (a *Actor) reclassify() {
	s := a.state
	reason := health.Classify(s.slotMap, s.up, s.queueFull, s.cfg.MinReplicas)
	if s.metrics != nil {
		s.metrics.observeState(s)
	}

	switch {
	case s.clusterOK && !reason.IsOK():
		s.clusterOK = false
		s.bus.clusterNOK(reason)
		if s.metrics != nil {
			s.metrics.nokTransitions.Inc()
		}
		a.armRefresh()
	case !s.clusterOK && !reason.IsOK():
		a.armRefresh()
	case !s.clusterOK && reason.IsOK():
		s.clusterOK = true
		s.bus.clusterOK()
		a.disarmRefresh()
	case s.clusterOK && reason.IsOK():
		// no-op
	}
}
