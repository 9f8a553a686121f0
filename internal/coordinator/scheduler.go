package coordinator

import (
	"time"

	"github.com/dreamware/rcoord/internal/nodeclient"
	"github.com/dreamware/rcoord/internal/topology"
)

// clusterSlotsCommand is the command tokens sent to a node's client to
// request its view of the cluster topology.
var clusterSlotsCommand = []string{"CLUSTER", "SLOTS"}

// armRefresh ensures a refresh is in flight. If already armed it is
// a no-op; if no target is reachable it returns without arming and leaves
// reclassification to retry once up grows.
func (a *Actor) armRefresh() {
	a.armRefreshPreferred(nil)
}

// armRefreshPreferred is armRefresh's general form: when preferred names an
// address with an open client, it is used as the query target ahead of
// the normal selection below — this is how a redirection-triggered
// update_slots hint and the periodic scheduler share one arming
// path.
func (a *Actor) armRefreshPreferred(preferred *topology.Address) {
	s := a.state
	if s.refreshArmed {
		return
	}
	target, ok := a.resolveTarget(preferred)
	if !ok {
		a.log.Debug().Msg("no reachable target for refresh, deferring")
		return
	}
	s.refreshArmed = true
	a.issueRefresh(target)
}

func (a *Actor) resolveTarget(preferred *topology.Address) (topology.Address, bool) {
	if preferred != nil {
		if _, ok := a.state.nodes[*preferred]; ok {
			return *preferred, true
		}
	}
	return a.selectTarget()
}

// disarmRefresh clears the armed flag so a later NOK edge can re-arm.
// Any in-flight timer token becomes stale and its eventual fire is a
// no-op (the token comparison in handleTimerFired catches it).
func (a *Actor) disarmRefresh() {
	a.state.refreshArmed = false
	a.state.refreshToken++
}

// issueRefresh sends CLUSTER SLOTS to target and starts the one-shot
// update_slot_wait timer that, on expiry, re-arms if still NOK.
func (a *Actor) issueRefresh(target topology.Address) {
	s := a.state
	entry, ok := s.nodes[target]
	if !ok {
		a.log.Warn().Str("addr", target.String()).Msg("refresh target has no open client")
		s.refreshArmed = false
		return
	}
	reqVersion := s.slotMapVersion
	entry.client.CommandAsync(clusterSlotsCommand, func(res nodeclient.Result) {
		a.postSlotsReply(reqVersion, target, res)
	})

	s.refreshToken++
	token := s.refreshToken
	time.AfterFunc(s.cfg.UpdateSlotWait, func() {
		a.postTimerFired(token)
	})
}

// handleTimerFired implements the refresh timer's expiry behaviour
// a stale token (superseded by a later arm/disarm) is ignored; if
// still NOK, re-arm (issuing another query); if OK, the armed flag is
// cleared so a later NOK edge can arm afresh.
func (a *Actor) handleTimerFired(token uint64) {
	s := a.state
	if token != s.refreshToken {
		return
	}
	s.refreshArmed = false
	if !s.clusterOK {
		a.armRefresh()
	}
}

// selectTarget walks initial_nodes in order for the first address present
// in up; failing that, returns the lexicographically smallest address in
// up (deterministic, per the design notes) for reproducible tests.
func (a *Actor) selectTarget() (topology.Address, bool) {
	s := a.state
	for _, addr := range s.initialNodes {
		if s.up.Has(addr) {
			return addr, true
		}
	}
	sorted := s.up.Sorted()
	if len(sorted) == 0 {
		return topology.Address{}, false
	}
	return sorted[0], true
}
