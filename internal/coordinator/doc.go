// Package coordinator implements a Redis Cluster coordinator: a
// single-threaded actor that owns a fleet of per-node Redis clients,
// reconciles a local slot map against the authoritative cluster topology,
// classifies cluster health, and publishes state-change notifications to
// subscribers.
//
// # Overview
//
// The coordinator is the control plane a command router sits on top of. It
// never routes commands itself; it answers two questions for the router:
// "what does the slot map look like right now" and "is the cluster healthy
// enough to trust that answer". Everything else — opening and closing
// per-node connections, periodically refreshing the slot map while
// unhealthy, and deciding when OK flips to NOK and back — happens inside
// the actor, serialized through its mailbox.
//
// # Architecture
//
//	┌────────────────────────────────────────────┐
//	│                 Actor                        │
//	│  mailbox: queries, casts, conn events,       │
//	│           slot-info replies, timer ticks     │
//	├───────────────────────────────────────────────┤
//	│  state: nodes, up, masters, queue_full,      │
//	│         slot_map, slot_map_version           │
//	├───────────────────────────────────────────────┤
//	│  reconcile  →  classify  →  schedule refresh │
//	│       ↓                          ↓           │
//	│  open/close clients          CLUSTER SLOTS   │
//	├───────────────────────────────────────────────┤
//	│  publish: cluster_ok / cluster_nok / ...     │
//	└────────────────────────────────────────────┘
//
// # Concurrency
//
// All state transitions run on a single goroutine reading from one mailbox
// channel. Per-node clients (package nodeclient) run independently and talk
// to the actor only through that mailbox — connection-status events,
// CLUSTER SLOTS replies — never by touching actor state directly.
// Synchronous calls (SlotMapInfo, ConnectNode) post a message carrying a
// reply channel and block on it; they never run concurrently with the
// actor's own handler loop.
//
// # See also
//
//   - internal/topology: the slot map data model and its invariants.
//   - internal/health: the pure health classifier function.
//   - internal/nodeclient: the per-node client contract this package
//     consumes.
package coordinator
