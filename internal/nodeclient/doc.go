// Package nodeclient defines the contract the coordinator consumes from a
// per-node Redis client: starting and stopping a connection, issuing
// commands asynchronously, and reporting connection-status events back to
// the coordinator.
//
// The real network transport, RESP parsing, and command pipelining are
// explicitly out of scope for the coordinator itself — this package exists
// only to give that external collaborator a concrete shape to program
// against. Client is the contract; RESPClient is a minimal reference
// implementation; FakeClient (test-only) is the double the coordinator's
// own tests drive.
package nodeclient
