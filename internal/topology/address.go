package topology

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Address identifies a Redis node by host and port. It is value-typed and
// hashable, making it the unique key for nodes throughout the coordinator.
type Address struct {
	Host string
	Port int
}

// NewAddress builds an Address from a host and port.
func NewAddress(host string, port int) Address {
	return Address{Host: host, Port: port}
}

func (a Address) String() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// Less provides a deterministic total order (lexicographic by host, then
// port) used for tie-breaking target selection in the refresh scheduler.
func (a Address) Less(other Address) bool {
	if a.Host != other.Host {
		return a.Host < other.Host
	}
	return a.Port < other.Port
}

// AddressSet is a small hash set of addresses keyed by value.
type AddressSet map[Address]struct{}

// NewAddressSet builds a set from the given addresses.
func NewAddressSet(addrs ...Address) AddressSet {
	s := make(AddressSet, len(addrs))
	for _, a := range addrs {
		s[a] = struct{}{}
	}
	return s
}

func (s AddressSet) Has(a Address) bool {
	_, ok := s[a]
	return ok
}

func (s AddressSet) Add(a Address) {
	s[a] = struct{}{}
}

func (s AddressSet) Remove(a Address) {
	delete(s, a)
}

func (s AddressSet) Clone() AddressSet {
	out := make(AddressSet, len(s))
	for a := range s {
		out[a] = struct{}{}
	}
	return out
}

// Sorted returns the set's members in deterministic (Less) order.
func (s AddressSet) Sorted() []Address {
	out := make([]Address, 0, len(s))
	for a := range s {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b Address) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		default:
			return 0
		}
	})
	return out
}

// Sub returns the set difference s \ other.
func (s AddressSet) Sub(other AddressSet) AddressSet {
	out := make(AddressSet)
	for a := range s {
		if !other.Has(a) {
			out[a] = struct{}{}
		}
	}
	return out
}

// Union returns the union of all given sets.
func Union(sets ...AddressSet) AddressSet {
	out := make(AddressSet)
	for _, s := range sets {
		for a := range s {
			out[a] = struct{}{}
		}
	}
	return out
}

// Intersect returns the intersection of a and b.
func Intersect(a, b AddressSet) AddressSet {
	out := make(AddressSet)
	for addr := range a {
		if b.Has(addr) {
			out[addr] = struct{}{}
		}
	}
	return out
}
