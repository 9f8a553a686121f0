package nodeclient_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/rcoord/internal/nodeclient"
	"github.com/dreamware/rcoord/internal/topology"
)

func TestParseClusterSlotsBasic(t *testing.T) {
	reply := []any{
		[]any{int64(0), int64(8191), []any{"a", int64(7000)}, []any{"a", int64(7001)}},
		[]any{int64(8192), int64(16383), []any{"b", int64(7000)}},
	}
	m, err := nodeclient.ParseClusterSlots(reply)
	require.NoError(t, err)
	require.Len(t, m, 2)
	assert.Equal(t, topology.NewAddress("a", 7000), m[0].Master)
	assert.Equal(t, []topology.Address{topology.NewAddress("a", 7001)}, m[0].Replicas)
	assert.Empty(t, m[1].Replicas)
}

func TestParseClusterSlotsRejectsWrongShape(t *testing.T) {
	_, err := nodeclient.ParseClusterSlots("not an array")
	assert.Error(t, err)
}

func TestParseClusterSlotsRejectsShortEntry(t *testing.T) {
	_, err := nodeclient.ParseClusterSlots([]any{[]any{int64(0), int64(1)}})
	assert.Error(t, err)
}

func TestParseClusterSlotsCanonicalizesOrder(t *testing.T) {
	reply := []any{
		[]any{int64(8192), int64(16383), []any{"b", int64(7000)}},
		[]any{int64(0), int64(8191), []any{"a", int64(7000)}},
	}
	m, err := nodeclient.ParseClusterSlots(reply)
	require.NoError(t, err)
	require.Len(t, m, 2)
	assert.Equal(t, 0, m[0].Start)
	assert.Equal(t, 8192, m[1].Start)
}
