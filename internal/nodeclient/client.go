package nodeclient

import (
	"github.com/dreamware/rcoord/internal/topology"
)

// EventKind enumerates the connection-status messages a Client emits.
type EventKind string

const (
	EventConnectionUp   EventKind = "connection_up"
	EventConnectionDown EventKind = "connection_down"
	EventQueueFull      EventKind = "queue_full"
	EventQueueOK        EventKind = "queue_ok"
)

// DownReason classifies why a connection went down. SocketClosed is the one
// reason the coordinator treats as benign: a clean peer-side close
// that reconnect logic or a later event will resolve on its own.
type DownReason string

const (
	DownSocketClosed  DownReason = "socket_closed"
	DownClientStopped DownReason = "client_stopped"
	DownOther         DownReason = "other"
)

// ConnEvent is a single connection-status message from a node's client.
// Down and Detail are only meaningful when Kind == EventConnectionDown.
type ConnEvent struct {
	Kind   EventKind
	Down   DownReason
	Detail string
}

// Result is the outcome of an asynchronous command: either a reply, a
// Redis-side error, or a transport-level error. Exactly one of
// Reply/RedisErr/TransportErr is set.
type Result struct {
	Reply        any
	RedisErr     error
	TransportErr error
}

// OK reports whether the command completed without a transport error (it
// may still carry a Redis-side error in RedisErr).
func (r Result) OK() bool {
	return r.TransportErr == nil
}

// Options carries opaque per-client configuration forwarded verbatim from
// the coordinator's client_opts, plus an event sink the coordinator relies
// on directly and a cluster-ID flag (the coordinator leaves UseClusterID
// false).
type Options struct {
	// OnEvent is invoked for every ConnEvent this client emits. Events from
	// a single client arrive in emission order; delivery must not block the
	// client's own I/O loop.
	OnEvent func(ConnEvent)
	// UseClusterID requests that the client track and report the remote
	// node's cluster ID alongside health, when the underlying protocol
	// supports it.
	UseClusterID bool
	// Opaque holds additional implementation-defined options.
	Opaque map[string]any
}

// Client is the per-node client contract the coordinator depends on.
// Implementations run their I/O on independent goroutines and communicate
// with the coordinator only through the OnEvent callback and CommandAsync
// completions — never by mutating coordinator state directly.
type Client interface {
	// Address returns the node address this client is connected to.
	Address() topology.Address

	// CommandAsync issues a command without blocking the caller. callback
	// is invoked exactly once, from a goroutine the client controls, when
	// the command completes or fails.
	CommandAsync(args []string, callback func(Result))

	// Stop tears down the connection. It is safe to call more than once.
	Stop()
}

// Dialer opens a Client for the given address. The coordinator never
// constructs a Client directly — it always goes through a Dialer, so tests
// can substitute FakeClient for the real transport.
type Dialer func(addr topology.Address, opts Options) (Client, error)
