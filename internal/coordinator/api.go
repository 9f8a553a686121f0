package coordinator

import (
	"github.com/dreamware/rcoord/internal/nodeclient"
	"github.com/dreamware/rcoord/internal/topology"
)

// Handle is the public interface to a running coordinator actor. It is the
// only thing Start returns — callers never see the Actor type directly.
type Handle struct {
	actor *Actor
}

// Start spawns a coordinator actor seeded with the given addresses and
// returns a Handle for interacting with it. Start never blocks
// on the seeds actually being reachable — connectivity is established
// asynchronously and observed through Observer callbacks.
func Start(seeds []topology.Address, opts ...Option) (*Handle, error) {
	if len(seeds) == 0 {
		return nil, ErrNoSeeds
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Handle{actor: startActor(seeds, cfg)}, nil
}

// StartWithOptions is the ParseOptions-driven counterpart to Start, for
// callers bridging from a dynamic option map.
func StartWithOptions(seeds []topology.Address, raw map[string]any) (*Handle, error) {
	if len(seeds) == 0 {
		return nil, ErrNoSeeds
	}
	cfg, err := ParseOptions(raw)
	if err != nil {
		return nil, err
	}
	return &Handle{actor: startActor(seeds, cfg)}, nil
}

// Stop terminates the actor, closing every open client after letting
// in-flight work settle. Calling Stop more than once is safe.
func (h *Handle) Stop() {
	h.actor.stop()
}

// SlotMapInfo returns a consistent snapshot of the current slot map, its
// version, and the open clients that back it. Returns
// ErrActorStopped if the actor has already stopped.
func (h *Handle) SlotMapInfo() (SlotMapInfo, error) {
	if h.actor.stopped.Load() {
		return SlotMapInfo{}, ErrActorStopped
	}
	reply := make(chan SlotMapInfo, 1)
	if !h.actor.call(msgGetSlotMapInfo{reply: reply}) {
		return SlotMapInfo{}, ErrActorStopped
	}
	select {
	case info := <-reply:
		return info, nil
	case <-h.actor.done:
		return SlotMapInfo{}, ErrActorStopped
	}
}

// ConnectNode returns the client for addr, opening one if none exists yet
// (used to reach an arbitrary node ahead of the first slot map being
// known). Returns ErrActorStopped if the actor has
// already stopped.
func (h *Handle) ConnectNode(addr topology.Address) (nodeclient.Client, error) {
	if h.actor.stopped.Load() {
		return nil, ErrActorStopped
	}
	reply := make(chan connectNodeResult, 1)
	if !h.actor.call(msgConnectNode{addr: addr, reply: reply}) {
		return nil, ErrActorStopped
	}
	select {
	case res := <-reply:
		return res.client, res.err
	case <-h.actor.done:
		return nil, ErrActorStopped
	}
}

// UpdateSlots forwards a redirection-triggered refresh hint:
// observedVersion must match the coordinator's current slot_map_version
// or the hint is silently ignored, and node is preferred as the query
// target for the resulting CLUSTER SLOTS refresh. UpdateSlots never
// blocks on the refresh completing.
func (h *Handle) UpdateSlots(observedVersion uint64, node topology.Address) error {
	if h.actor.stopped.Load() {
		return ErrActorStopped
	}
	h.actor.post(msgUpdateSlots{version: observedVersion, node: node})
	return nil
}
