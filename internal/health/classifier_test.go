package health_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dreamware/rcoord/internal/health"
	"github.com/dreamware/rcoord/internal/topology"
)

func addr(host string, port int) topology.Address { return topology.NewAddress(host, port) }

func okMap() topology.SlotMap {
	return topology.SlotMap{
		{Start: 0, Stop: 8191, Master: addr("a", 6379), Replicas: []topology.Address{addr("c", 6379)}},
		{Start: 8192, Stop: 16383, Master: addr("b", 6379), Replicas: []topology.Address{addr("d", 6379)}},
	}
}

func TestClassifyOK(t *testing.T) {
	up := topology.NewAddressSet(addr("a", 6379), addr("b", 6379))
	got := health.Classify(okMap(), up, topology.NewAddressSet(), 1)
	assert.Equal(t, health.ReasonOK, got)
}

func TestClassifyMasterDown(t *testing.T) {
	up := topology.NewAddressSet(addr("a", 6379))
	got := health.Classify(okMap(), up, topology.NewAddressSet(), 1)
	assert.Equal(t, health.ReasonMasterDown, got)
}

func TestClassifyMasterQueueFull(t *testing.T) {
	up := topology.NewAddressSet(addr("a", 6379), addr("b", 6379))
	qf := topology.NewAddressSet(addr("b", 6379))
	got := health.Classify(okMap(), up, qf, 1)
	assert.Equal(t, health.ReasonMasterQueueFull, got)
}

func TestClassifyPriorityStructuralBeforeLiveness(t *testing.T) {
	// too_few_nodes should win even though masters are also down.
	m := topology.SlotMap{{Start: 0, Stop: 16383, Master: addr("a", 6379)}}
	got := health.Classify(m, topology.NewAddressSet(), topology.NewAddressSet(), 1)
	assert.Equal(t, health.ReasonTooFewNodes, got)
}

func TestClassifyTooFewReplicas(t *testing.T) {
	m := topology.SlotMap{
		{Start: 0, Stop: 8191, Master: addr("a", 6379)},
		{Start: 8192, Stop: 16383, Master: addr("b", 6379)},
	}
	up := topology.NewAddressSet(addr("a", 6379), addr("b", 6379))
	got := health.Classify(m, up, topology.NewAddressSet(), 1)
	assert.Equal(t, health.ReasonTooFewReplicas, got)
}
