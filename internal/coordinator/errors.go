package coordinator

import "errors"

// ErrActorStopped is returned by synchronous calls (SlotMapInfo,
// ConnectNode) made against a Handle whose actor has already stopped.
var ErrActorStopped = errors.New("coordinator: actor stopped")

// ErrInvalidOption is returned by ParseOptions (and so by StartWithOptions)
// when the options map carries a key the coordinator does not recognize or
// a value of the wrong type.
var ErrInvalidOption = errors.New("coordinator: invalid option")

// ErrNoSeeds is returned by Start when called with no seed addresses.
var ErrNoSeeds = errors.New("coordinator: at least one seed address is required")

// ErrDialFailed is returned by ConnectNode when the configured Dialer
// could not open a client for the requested address.
var ErrDialFailed = errors.New("coordinator: failed to dial node")
