package nodeclient

import (
	"fmt"

	"github.com/dreamware/rcoord/internal/topology"
)

// ParseClusterSlots decodes the reply of a `CLUSTER SLOTS` command into a
// topology.SlotMap. The wire shape is an array of
// [start, stop, [masterHost, masterPort, ...], [replicaHost, replicaPort,
// ...], ...] entries, per the Redis Cluster protocol.
func ParseClusterSlots(reply any) (topology.SlotMap, error) {
	entries, ok := reply.([]any)
	if !ok {
		return nil, fmt.Errorf("CLUSTER SLOTS: unexpected reply shape %T", reply)
	}
	ranges := make([]topology.SlotRange, 0, len(entries))
	for _, e := range entries {
		fields, ok := e.([]any)
		if !ok || len(fields) < 3 {
			return nil, fmt.Errorf("CLUSTER SLOTS: malformed entry %#v", e)
		}
		start, err := asInt(fields[0])
		if err != nil {
			return nil, fmt.Errorf("CLUSTER SLOTS: start: %w", err)
		}
		stop, err := asInt(fields[1])
		if err != nil {
			return nil, fmt.Errorf("CLUSTER SLOTS: stop: %w", err)
		}
		master, err := asAddress(fields[2])
		if err != nil {
			return nil, fmt.Errorf("CLUSTER SLOTS: master: %w", err)
		}
		var replicas []topology.Address
		for _, rf := range fields[3:] {
			replica, err := asAddress(rf)
			if err != nil {
				return nil, fmt.Errorf("CLUSTER SLOTS: replica: %w", err)
			}
			replicas = append(replicas, replica)
		}
		ranges = append(ranges, topology.SlotRange{
			Start: start, Stop: stop, Master: master, Replicas: replicas,
		})
	}
	return topology.Canonicalize(ranges), nil
}

func asInt(v any) (int, error) {
	switch n := v.(type) {
	case int64:
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}

func asAddress(v any) (topology.Address, error) {
	fields, ok := v.([]any)
	if !ok || len(fields) < 2 {
		return topology.Address{}, fmt.Errorf("expected [host, port, ...], got %#v", v)
	}
	host, ok := fields[0].(string)
	if !ok {
		return topology.Address{}, fmt.Errorf("expected host string, got %T", fields[0])
	}
	port, err := asInt(fields[1])
	if err != nil {
		return topology.Address{}, fmt.Errorf("port: %w", err)
	}
	return topology.NewAddress(host, port), nil
}
