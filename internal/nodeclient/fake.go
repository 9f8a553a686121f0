package nodeclient

import (
	"sync"

	"github.com/dreamware/rcoord/internal/topology"
)

// FakeClient is a deterministic, in-memory Client used to drive the
// coordinator's own test suite without a real Redis cluster. Tests inject
// CLUSTER SLOTS results with SetClusterSlotsReply and observe
// connection-status transitions with SendEvent.
type FakeClient struct {
	addr topology.Address
	opts Options

	mu       sync.Mutex
	stopped  bool
	commands [][]string

	// clusterSlotsReply, when set, is returned to every CLUSTER SLOTS call.
	clusterSlotsReply Result
	hasReply          bool
}

// NewFakeDialer returns a Dialer that hands out FakeClients, recording each
// one in the returned registry keyed by address so tests can reach in and
// drive events after the coordinator has opened it.
func NewFakeDialer() (Dialer, *FakeRegistry) {
	reg := &FakeRegistry{clients: make(map[topology.Address]*FakeClient)}
	dialer := func(addr topology.Address, opts Options) (Client, error) {
		c := &FakeClient{addr: addr, opts: opts}
		reg.put(addr, c)
		c.emit(ConnEvent{Kind: EventConnectionUp})
		return c, nil
	}
	return dialer, reg
}

// FakeRegistry tracks every FakeClient a FakeDialer has opened, by address.
type FakeRegistry struct {
	mu      sync.Mutex
	clients map[topology.Address]*FakeClient
}

func (r *FakeRegistry) put(addr topology.Address, c *FakeClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[addr] = c
}

// Get returns the FakeClient opened for addr, or nil if none was.
func (r *FakeRegistry) Get(addr topology.Address) *FakeClient {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clients[addr]
}

// All returns every address a FakeClient was opened for.
func (r *FakeRegistry) All() []topology.Address {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]topology.Address, 0, len(r.clients))
	for a := range r.clients {
		out = append(out, a)
	}
	return out
}

func (c *FakeClient) Address() topology.Address { return c.addr }

func (c *FakeClient) emit(ev ConnEvent) {
	if c.opts.OnEvent != nil {
		c.opts.OnEvent(ev)
	}
}

// SendEvent lets a test push a connection-status event as if the fake
// transport had observed it.
func (c *FakeClient) SendEvent(ev ConnEvent) {
	c.emit(ev)
}

// SetClusterSlotsReply arms the result returned for every subsequent
// CLUSTER SLOTS command.
func (c *FakeClient) SetClusterSlotsReply(res Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clusterSlotsReply = res
	c.hasReply = true
}

// Commands returns every command issued on this client so far, for
// assertions about which node the scheduler targeted.
func (c *FakeClient) Commands() [][]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]string, len(c.commands))
	copy(out, c.commands)
	return out
}

func (c *FakeClient) CommandAsync(args []string, callback func(Result)) {
	c.mu.Lock()
	c.commands = append(c.commands, args)
	stopped := c.stopped
	res, has := c.clusterSlotsReply, c.hasReply
	c.mu.Unlock()

	if stopped {
		callback(Result{TransportErr: errClientStopped})
		return
	}
	if has && len(args) == 2 && args[0] == "CLUSTER" && args[1] == "SLOTS" {
		callback(res)
		return
	}
	callback(Result{Reply: "OK"})
}

func (c *FakeClient) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.stopped = true
	c.emit(ConnEvent{Kind: EventConnectionDown, Down: DownClientStopped})
}

// IsStopped reports whether Stop has been called, for test assertions about
// close_wait teardown.
func (c *FakeClient) IsStopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

var errClientStopped = &stoppedError{}

type stoppedError struct{}

func (*stoppedError) Error() string { return "fake client stopped" }
