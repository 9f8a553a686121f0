package coordinator

import (
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/dreamware/rcoord/internal/nodeclient"
	"github.com/dreamware/rcoord/internal/topology"
)

// mailboxSize bounds how many in-flight messages the actor will buffer.
// Synchronous calls (query messages) still block their caller on a reply
// channel regardless of this buffer; it only smooths bursts of
// asynchronous casts and events.
const mailboxSize = 256

// Actor is the single-threaded cluster coordinator. It is never
// constructed directly by callers — use Start, which spawns the actor's
// goroutine and returns a Handle.
type Actor struct {
	state   *state
	log     zerolog.Logger
	mailbox chan any
	stopped atomic.Bool
	done    chan struct{}
}

// Mailbox message types. Only the actor goroutine ever reads these; every
// other goroutine only ever sends.
type (
	msgGetSlotMapInfo struct {
		reply chan SlotMapInfo
	}
	msgConnectNode struct {
		addr  topology.Address
		reply chan connectNodeResult
	}
	msgUpdateSlots struct {
		version uint64
		node    topology.Address
	}
	msgConnEvent struct {
		addr topology.Address
		ev   nodeclient.ConnEvent
	}
	msgSlotsReply struct {
		reqVersion uint64
		target     topology.Address
		result     nodeclient.Result
	}
	msgTimerFired struct {
		token uint64
	}
	msgStop struct {
		done chan struct{}
	}
)

type connectNodeResult struct {
	client nodeclient.Client
	err    error
}

// SlotMapInfo is the consistent snapshot returned by (*Handle).SlotMapInfo:
// the accepted version, the canonical slot map at that version,
// and the subset of open clients whose address appears in it.
type SlotMapInfo struct {
	Version uint64
	SlotMap topology.SlotMap
	Clients map[topology.Address]nodeclient.Client
}

func startActor(seeds []topology.Address, cfg Config) *Actor {
	bus := newEventBus(cfg.Observers)
	a := &Actor{
		log:     cfg.Logger,
		mailbox: make(chan any, mailboxSize),
		done:    make(chan struct{}),
	}
	a.state = newState(seeds, cfg, bus, cfg.Metrics)
	go a.run(seeds)
	return a
}

func (a *Actor) run(seeds []topology.Address) {
	defer close(a.done)

	for _, addr := range seeds {
		a.openClient(addr)
	}
	a.reclassify()

	for m := range a.mailbox {
		switch msg := m.(type) {
		case msgGetSlotMapInfo:
			msg.reply <- SlotMapInfo{
				Version: a.state.slotMapVersion,
				SlotMap: a.state.slotMap,
				Clients: a.state.addressesInSlotMap(),
			}
		case msgConnectNode:
			msg.reply <- a.handleConnectNode(msg.addr)
		case msgUpdateSlots:
			a.handleUpdateSlots(msg.version, msg.node)
		case msgConnEvent:
			a.handleConnEvent(msg.addr, msg.ev)
		case msgSlotsReply:
			a.handleClusterSlotsReply(msg.reqVersion, msg.target, msg.result)
		case msgTimerFired:
			a.handleTimerFired(msg.token)
		case msgStop:
			a.handleStop()
			close(msg.done)
			return
		}
	}
}

func (a *Actor) handleConnectNode(addr topology.Address) connectNodeResult {
	if entry, ok := a.state.nodes[addr]; ok {
		return connectNodeResult{client: entry.client}
	}
	entry := a.openClient(addr)
	if entry == nil {
		return connectNodeResult{err: ErrDialFailed}
	}
	return connectNodeResult{client: entry.client}
}

// handleUpdateSlots implements the redirection-triggered refresh hint:
// a stale caller view (observed_version != current) is a silent no-op.
func (a *Actor) handleUpdateSlots(observedVersion uint64, node topology.Address) {
	if observedVersion != a.state.slotMapVersion {
		return
	}
	a.armRefreshPreferred(&node)
}

// handleConnEvent applies a connection-status event to up/
// queue_full, forwards it to observers, and reclassifies. socket_closed is
// the one connection_down reason treated as benign and does not remove the
// address from up.
func (a *Actor) handleConnEvent(addr topology.Address, ev nodeclient.ConnEvent) {
	s := a.state
	switch ev.Kind {
	case nodeclient.EventConnectionUp:
		s.up.Add(addr)
	case nodeclient.EventConnectionDown:
		if ev.Down != nodeclient.DownSocketClosed {
			s.up.Remove(addr)
		}
	case nodeclient.EventQueueFull:
		s.queueFull.Add(addr)
	case nodeclient.EventQueueOK:
		s.queueFull.Remove(addr)
	}

	isMaster := s.masters.Has(addr)
	s.bus.connectionStatus(addr, ev, isMaster)
	a.reclassify()
}

func (a *Actor) handleStop() {
	for _, entry := range a.state.nodes {
		entry.client.Stop()
	}
	a.state.bus.stop()
}

// postConnEvent, postSlotsReply, and postTimerFired are called from
// goroutines outside the actor (client callbacks, AfterFunc timers). They
// must never block forever nor panic against a closed mailbox, so each
// checks Actor.stopped before sending — once stopped, a stray event is
// simply dropped — timers that fire post-termination must be harmless.
func (a *Actor) postConnEvent(addr topology.Address, ev nodeclient.ConnEvent) {
	a.post(msgConnEvent{addr: addr, ev: ev})
}

func (a *Actor) postSlotsReply(reqVersion uint64, target topology.Address, res nodeclient.Result) {
	a.post(msgSlotsReply{reqVersion: reqVersion, target: target, result: res})
}

func (a *Actor) postTimerFired(token uint64) {
	a.post(msgTimerFired{token: token})
}

// post is used for fire-and-forget messages (events, timers, hints) where
// dropping under backpressure is preferable to blocking the sender.
func (a *Actor) post(m any) {
	if a.stopped.Load() {
		return
	}
	select {
	case a.mailbox <- m:
	default:
		a.log.Warn().Msg("coordinator mailbox full, dropping message")
	}
}

// call is used for synchronous query messages whose caller is blocked on a
// reply channel: it must not silently drop, so it blocks until the
// mailbox accepts the message or the actor terminates, whichever comes
// first. Returns false if the actor is (or becomes) stopped before the
// message was accepted.
func (a *Actor) call(m any) bool {
	if a.stopped.Load() {
		return false
	}
	select {
	case a.mailbox <- m:
		return true
	case <-a.done:
		return false
	}
}

// stop drains by stopping every known client then terminating the actor
// goroutine.
func (a *Actor) stop() {
	if a.stopped.Swap(true) {
		return
	}
	done := make(chan struct{})
	a.mailbox <- msgStop{done: done}
	<-done
}
