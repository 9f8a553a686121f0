package coordinator

import (
	"github.com/dreamware/rcoord/internal/health"
	"github.com/dreamware/rcoord/internal/nodeclient"
	"github.com/dreamware/rcoord/internal/topology"
)

// Observer receives the coordinator's state-change notifications.
// Implementations must not block: each method is invoked from a dedicated
// per-observer dispatch goroutine, but a slow observer still only holds up
// its own queue, never the actor or other observers.
type Observer interface {
	// ClusterOK fires on the NOK → OK edge, never on every reclassification.
	ClusterOK()
	// ClusterNOK fires on the OK → NOK edge, carrying the first reason that
	// tripped it. Reason changes while staying NOK are not re-notified.
	ClusterNOK(reason health.Reason)
	// SlotMapUpdated fires once per accepted slot-map change.
	SlotMapUpdated(slotMap topology.SlotMap, version uint64)
	// ClusterSlotsError fires when a refresh's CLUSTER SLOTS reply carries
	// a Redis-side error. It does not itself change health.
	ClusterSlotsError(err error)
	// ConnectionStatus forwards a per-client transport event, decorated
	// with whether addr is currently a known master.
	ConnectionStatus(addr topology.Address, event nodeclient.ConnEvent, isMaster bool)
}

// observerQueueSize bounds how far a slow observer can lag before its
// events are dropped rather than risking unbounded memory growth. Dropping
// is preferred over blocking the actor: back-pressure on the sink must
// not block the actor.
const observerQueueSize = 256

// observerDispatcher pairs an Observer with a single-consumer queue so
// event order is preserved per observer while delivery stays off the
// actor's own goroutine.
type observerDispatcher struct {
	obs   Observer
	queue chan func(Observer)
	done  chan struct{}
}

func newObserverDispatcher(obs Observer) *observerDispatcher {
	d := &observerDispatcher{
		obs:   obs,
		queue: make(chan func(Observer), observerQueueSize),
		done:  make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *observerDispatcher) run() {
	for {
		select {
		case fn, ok := <-d.queue:
			if !ok {
				close(d.done)
				return
			}
			fn(d.obs)
		}
	}
}

// send enqueues fn without blocking; if the observer's queue is full the
// event is dropped rather than stalling the actor.
func (d *observerDispatcher) send(fn func(Observer)) {
	select {
	case d.queue <- fn:
	default:
	}
}

func (d *observerDispatcher) stop() {
	close(d.queue)
	<-d.done
}

// eventBus fans out coordinator events to every subscribed Observer.
type eventBus struct {
	dispatchers []*observerDispatcher
}

func newEventBus(observers []Observer) *eventBus {
	b := &eventBus{}
	for _, o := range observers {
		b.dispatchers = append(b.dispatchers, newObserverDispatcher(o))
	}
	return b
}

func (b *eventBus) clusterOK() {
	for _, d := range b.dispatchers {
		d.send(func(o Observer) { o.ClusterOK() })
	}
}

func (b *eventBus) clusterNOK(reason health.Reason) {
	for _, d := range b.dispatchers {
		d.send(func(o Observer) { o.ClusterNOK(reason) })
	}
}

func (b *eventBus) slotMapUpdated(slotMap topology.SlotMap, version uint64) {
	for _, d := range b.dispatchers {
		d.send(func(o Observer) { o.SlotMapUpdated(slotMap, version) })
	}
}

func (b *eventBus) clusterSlotsError(err error) {
	for _, d := range b.dispatchers {
		d.send(func(o Observer) { o.ClusterSlotsError(err) })
	}
}

func (b *eventBus) connectionStatus(addr topology.Address, ev nodeclient.ConnEvent, isMaster bool) {
	for _, d := range b.dispatchers {
		d.send(func(o Observer) { o.ConnectionStatus(addr, ev, isMaster) })
	}
}

func (b *eventBus) stop() {
	for _, d := range b.dispatchers {
		d.stop()
	}
}
