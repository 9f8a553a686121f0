package topology_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/rcoord/internal/topology"
)

func addr(host string, port int) topology.Address {
	return topology.NewAddress(host, port)
}

func TestCanonicalizeSortsByStart(t *testing.T) {
	in := []topology.SlotRange{
		{Start: 8192, Stop: 16383, Master: addr("b", 6379)},
		{Start: 0, Stop: 8191, Master: addr("a", 6379)},
	}
	out := topology.Canonicalize(in)
	require.Len(t, out, 2)
	assert.Equal(t, 0, out[0].Start)
	assert.Equal(t, 8192, out[1].Start)
}

func TestEqualIgnoresReplicaOrder(t *testing.T) {
	a := topology.SlotMap{{
		Start: 0, Stop: 16383, Master: addr("a", 6379),
		Replicas: []topology.Address{addr("c", 6379), addr("d", 6379)},
	}}
	b := topology.SlotMap{{
		Start: 0, Stop: 16383, Master: addr("a", 6379),
		Replicas: []topology.Address{addr("d", 6379), addr("c", 6379)},
	}}
	assert.True(t, topology.Equal(a, b))
}

func TestEqualDetectsDifference(t *testing.T) {
	a := topology.SlotMap{{Start: 0, Stop: 16383, Master: addr("a", 6379)}}
	b := topology.SlotMap{{Start: 0, Stop: 8191, Master: addr("a", 6379)}}
	assert.False(t, topology.Equal(a, b))
}

func TestValidateTooFewNodes(t *testing.T) {
	m := topology.SlotMap{{Start: 0, Stop: 16383, Master: addr("a", 6379), Replicas: []topology.Address{addr("c", 6379)}}}
	assert.Equal(t, topology.ReasonTooFewNodes, topology.Validate(m, 1))
}

func TestValidateCoverageGap(t *testing.T) {
	m := topology.SlotMap{
		{Start: 0, Stop: 8000, Master: addr("a", 6379), Replicas: []topology.Address{addr("c", 6379)}},
		{Start: 8192, Stop: 16383, Master: addr("b", 6379), Replicas: []topology.Address{addr("d", 6379)}},
	}
	assert.Equal(t, topology.ReasonNotAllSlotsCovered, topology.Validate(m, 1))
}

func TestValidateTooFewReplicas(t *testing.T) {
	m := topology.SlotMap{
		{Start: 0, Stop: 8191, Master: addr("a", 6379)},
		{Start: 8192, Stop: 16383, Master: addr("b", 6379)},
	}
	assert.Equal(t, topology.ReasonTooFewReplicas, topology.Validate(m, 1))
}

func TestValidateOK(t *testing.T) {
	m := topology.SlotMap{
		{Start: 0, Stop: 8191, Master: addr("a", 6379), Replicas: []topology.Address{addr("c", 6379)}},
		{Start: 8192, Stop: 16383, Master: addr("b", 6379), Replicas: []topology.Address{addr("d", 6379)}},
	}
	assert.Equal(t, topology.ReasonOK, topology.Validate(m, 1))
}

func TestDumpSlotMapRendersAddressesAsStrings(t *testing.T) {
	m := topology.SlotMap{
		{Start: 0, Stop: 8191, Master: addr("a", 6379), Replicas: []topology.Address{addr("c", 6379)}},
	}
	out, err := topology.DumpSlotMap(m)
	require.NoError(t, err)
	assert.Contains(t, string(out), "master: a:6379")
	assert.Contains(t, string(out), "c:6379")
}

func TestMastersDerivedFromSlotMap(t *testing.T) {
	m := topology.SlotMap{
		{Start: 0, Stop: 8191, Master: addr("a", 6379)},
		{Start: 8192, Stop: 16383, Master: addr("b", 6379)},
	}
	masters := m.Masters()
	assert.True(t, masters.Has(addr("a", 6379)))
	assert.True(t, masters.Has(addr("b", 6379)))
	assert.Len(t, masters, 2)
}
