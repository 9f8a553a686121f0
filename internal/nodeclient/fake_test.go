package nodeclient_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/rcoord/internal/nodeclient"
	"github.com/dreamware/rcoord/internal/topology"
)

func TestFakeDialerEmitsConnectionUpOnOpen(t *testing.T) {
	dialer, reg := nodeclient.NewFakeDialer()
	addr := topology.NewAddress("a", 7000)

	var events []nodeclient.ConnEvent
	client, err := dialer(addr, nodeclient.Options{OnEvent: func(ev nodeclient.ConnEvent) {
		events = append(events, ev)
	}})
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, nodeclient.EventConnectionUp, events[0].Kind)
	assert.Equal(t, addr, client.Address())
	assert.Same(t, reg.Get(addr), client)
}

func TestFakeClientDefaultReplyIsOK(t *testing.T) {
	dialer, _ := nodeclient.NewFakeDialer()
	client, err := dialer(topology.NewAddress("a", 7000), nodeclient.Options{})
	require.NoError(t, err)

	var got nodeclient.Result
	client.CommandAsync([]string{"PING"}, func(r nodeclient.Result) { got = r })
	assert.Equal(t, "OK", got.Reply)
}

func TestFakeClientReturnsArmedClusterSlotsReply(t *testing.T) {
	dialer, _ := nodeclient.NewFakeDialer()
	client, err := dialer(topology.NewAddress("a", 7000), nodeclient.Options{})
	require.NoError(t, err)
	fc := client.(*nodeclient.FakeClient)

	want := nodeclient.Result{Reply: []any{"slots"}}
	fc.SetClusterSlotsReply(want)

	var got nodeclient.Result
	fc.CommandAsync([]string{"CLUSTER", "SLOTS"}, func(r nodeclient.Result) { got = r })
	assert.Equal(t, want, got)
}

func TestFakeClientStopIsIdempotentAndEmitsDownEvent(t *testing.T) {
	dialer, _ := nodeclient.NewFakeDialer()
	var events []nodeclient.ConnEvent
	client, err := dialer(topology.NewAddress("a", 7000), nodeclient.Options{OnEvent: func(ev nodeclient.ConnEvent) {
		events = append(events, ev)
	}})
	require.NoError(t, err)
	fc := client.(*nodeclient.FakeClient)

	fc.Stop()
	fc.Stop()

	assert.True(t, fc.IsStopped())
	require.Len(t, events, 2) // connection_up on open, connection_down on first Stop
	assert.Equal(t, nodeclient.EventConnectionDown, events[1].Kind)
	assert.Equal(t, nodeclient.DownClientStopped, events[1].Down)
}

func TestFakeClientCommandAsyncAfterStopReturnsTransportError(t *testing.T) {
	dialer, _ := nodeclient.NewFakeDialer()
	client, err := dialer(topology.NewAddress("a", 7000), nodeclient.Options{})
	require.NoError(t, err)
	fc := client.(*nodeclient.FakeClient)
	fc.Stop()

	var got nodeclient.Result
	fc.CommandAsync([]string{"PING"}, func(r nodeclient.Result) { got = r })
	assert.Error(t, got.TransportErr)
	assert.False(t, got.OK())
}
