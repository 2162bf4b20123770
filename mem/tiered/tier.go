// Package tiered models a three-level memory hierarchy (cache, page, disk)
// whose levels have fixed capacities. Addresses move towards the cache on
// every hit and the least frequently accessed entry of a full level is pushed
// one level down. Entries pushed out of the disk leave the hierarchy.
package tiered

import (
	"github.com/sarchlab/tiersim/sim"
)

// An Address identifies one unit of data. Nothing besides equality is
// interpreted.
type Address string

// Tier is a level of the hierarchy. TierNone stands for "not in any tier".
type Tier int

// The tiers, from fastest to slowest.
const (
	TierNone Tier = iota
	TierCache
	TierPage
	TierDisk
)

// Tiers lists the real tiers from the fastest to the slowest.
var Tiers = []Tier{TierCache, TierPage, TierDisk}

func (t Tier) String() string {
	switch t {
	case TierCache:
		return "cache"
	case TierPage:
		return "page"
	case TierDisk:
		return "disk"
	default:
		return "not found"
	}
}

// Slower returns the next slower tier. The disk has no slower tier.
func (t Tier) Slower() Tier {
	switch t {
	case TierCache:
		return TierPage
	case TierPage:
		return TierDisk
	default:
		return TierNone
	}
}

// Latencies charged for an access, by the tier where the address was found.
const (
	LatencyCache sim.VTimeInCycle = 1
	LatencyPage  sim.VTimeInCycle = 10
	LatencyDisk  sim.VTimeInCycle = 100
	LatencyMiss  sim.VTimeInCycle = 100
)

// Latency returns the number of cycles charged for an access that found the
// address in the given tier.
func Latency(t Tier) sim.VTimeInCycle {
	switch t {
	case TierCache:
		return LatencyCache
	case TierPage:
		return LatencyPage
	case TierDisk:
		return LatencyDisk
	default:
		return LatencyMiss
	}
}
