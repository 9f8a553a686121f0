// Package topology implements the data model for a Redis Cluster slot map:
// addresses, slot ranges, and the canonical, comparable slot map the
// coordinator reconciles against the authoritative cluster topology.
//
// A SlotMap is a sequence of SlotRange, each owning a contiguous band of the
// 16384 hash slots with one master and zero or more replicas. Canonical form
// is the sequence sorted by start slot; two maps are equal iff their
// canonical forms are element-wise equal.
package topology
