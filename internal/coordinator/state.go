package coordinator

import (
	"github.com/dreamware/rcoord/internal/nodeclient"
	"github.com/dreamware/rcoord/internal/topology"
)

// nodeEntry is the live handle the actor owns for one address.
type nodeEntry struct {
	addr   topology.Address
	client nodeclient.Client
}

// state is the actor's private record. Only the actor goroutine ever
// touches it.
type state struct {
	clusterOK      bool
	initialNodes   []topology.Address
	nodes          map[topology.Address]*nodeEntry
	up             topology.AddressSet
	masters        topology.AddressSet
	queueFull      topology.AddressSet
	slotMap        topology.SlotMap
	slotMapVersion uint64

	refreshArmed bool
	refreshToken uint64

	cfg     Config
	bus     *eventBus
	metrics *Metrics
}

func newState(seeds []topology.Address, cfg Config, bus *eventBus, metrics *Metrics) *state {
	return &state{
		clusterOK:      false,
		initialNodes:   append([]topology.Address(nil), seeds...),
		nodes:          make(map[topology.Address]*nodeEntry),
		up:             make(topology.AddressSet),
		masters:        make(topology.AddressSet),
		queueFull:      make(topology.AddressSet),
		slotMap:        topology.SlotMap{},
		slotMapVersion: 1,
		cfg:            cfg,
		bus:            bus,
		metrics:        metrics,
	}
}

// clientOptsFor builds the per-client Options for addr, wiring its
// OnEvent callback to post into the given dispatch function (the actor
// posts these back onto its own mailbox).
func (s *state) clientOptsFor(addr topology.Address, onEvent func(topology.Address, nodeclient.ConnEvent)) nodeclient.Options {
	opaque := s.cfg.ClientOpts
	return nodeclient.Options{
		Opaque: opaque,
		OnEvent: func(ev nodeclient.ConnEvent) {
			onEvent(addr, ev)
		},
	}
}

// addressesInSlotMap returns the subset of nodes whose address appears in
// the current slot map, used to answer SlotMapInfo: clients is the
// subset of nodes whose addresses appear in slot_map.
func (s *state) addressesInSlotMap() map[topology.Address]nodeclient.Client {
	refd := s.slotMap.Addresses()
	out := make(map[topology.Address]nodeclient.Client, len(refd))
	for addr := range refd {
		if entry, ok := s.nodes[addr]; ok {
			out[addr] = entry.client
		}
	}
	return out
}
