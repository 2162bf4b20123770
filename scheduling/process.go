// Package scheduling replays the address streams of processes against a
// memory hierarchy, one process after another in arrival order.
package scheduling

import (
	"github.com/sarchlab/tiersim/mem/tiered"
	"github.com/sarchlab/tiersim/sim"
)

// A MemoryAccessRecord is the outcome of one access. It never changes after
// it is appended to a process.
type MemoryAccessRecord struct {
	Address tiered.Address
	FoundIn tiered.Tier
	Latency sim.VTimeInCycle
}

// A Process is an ordered list of addresses that becomes ready at its arrival
// time. The timing fields are filled when the simulation runs.
type Process struct {
	ID          int
	ArrivalTime sim.VTimeInCycle
	Addresses   []tiered.Address

	StartTime     sim.VTimeInCycle
	EndTime       sim.VTimeInCycle
	ExecutionTime sim.VTimeInCycle
	Accesses      []MemoryAccessRecord

	taskID   string
	position int
}

// AverageAccessTime returns the mean latency of the accesses of the process.
// It returns false if the process made no access.
func (p *Process) AverageAccessTime() (float64, bool) {
	if len(p.Accesses) == 0 {
		return 0, false
	}

	var total sim.VTimeInCycle
	for _, a := range p.Accesses {
		total += a.Latency
	}

	return float64(total) / float64(len(p.Accesses)), true
}

// HitCounts counts accesses by the tier the address was found in.
type HitCounts struct {
	Cache uint64 `json:"cache"`
	Page  uint64 `json:"page"`
	Disk  uint64 `json:"disk"`
	Miss  uint64 `json:"miss"`
}

// Add counts one access found in tier t.
func (c *HitCounts) Add(t tiered.Tier) {
	switch t {
	case tiered.TierCache:
		c.Cache++
	case tiered.TierPage:
		c.Page++
	case tiered.TierDisk:
		c.Disk++
	default:
		c.Miss++
	}
}

// Total returns the number of accesses counted.
func (c HitCounts) Total() uint64 {
	return c.Cache + c.Page + c.Disk + c.Miss
}

// Of returns the count of a single tier. TierNone returns the misses.
func (c HitCounts) Of(t tiered.Tier) uint64 {
	switch t {
	case tiered.TierCache:
		return c.Cache
	case tiered.TierPage:
		return c.Page
	case tiered.TierDisk:
		return c.Disk
	default:
		return c.Miss
	}
}
