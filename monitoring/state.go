package monitoring

import (
	"github.com/sarchlab/tiersim/mem/tiered"
	"github.com/sarchlab/tiersim/scheduling"
)

// Process states reported by the monitor.
const (
	ProcessWaiting = "waiting"
	ProcessRunning = "running"
	ProcessDone    = "done"
)

// ProcessStatus is the view of one process exposed by the monitor.
type ProcessStatus struct {
	ID        int    `json:"id"`
	State     string `json:"state"`
	Arrival   uint64 `json:"arrival"`
	Start     uint64 `json:"start"`
	End       uint64 `json:"end"`
	Accesses  int    `json:"accesses"`
	Addresses int    `json:"addresses"`
}

// TierStatus is the content of one tier.
type TierStatus struct {
	Name      string   `json:"name"`
	Capacity  int      `json:"capacity"`
	Addresses []string `json:"addresses"`
}

// State is the copy of the simulation the HTTP handlers read from. It is
// replaced as a whole, never modified in place. Access counts are kept apart
// so that the state can be walked field by field.
type State struct {
	Now       uint64               `json:"now"`
	Tiers     []TierStatus         `json:"tiers"`
	Hits      scheduling.HitCounts `json:"hits"`
	Processes []ProcessStatus      `json:"processes"`
}

func tierStatuses(s tiered.Snapshot) []TierStatus {
	toStrings := func(addrs []tiered.Address) []string {
		out := make([]string, len(addrs))
		for i, a := range addrs {
			out[i] = string(a)
		}

		return out
	}

	return []TierStatus{
		{tiered.TierCache.String(), s.CacheCapacity, toStrings(s.Cache)},
		{tiered.TierPage.String(), s.PageCapacity, toStrings(s.Page)},
		{tiered.TierDisk.String(), s.DiskCapacity, toStrings(s.Disk)},
	}
}

func countsOf(s tiered.Snapshot) map[string]uint64 {
	counts := make(map[string]uint64, len(s.Counts))
	for a, n := range s.Counts {
		counts[string(a)] = n
	}

	return counts
}

func processStatuses(
	processes []*scheduling.Process,
	states map[int]string,
) []ProcessStatus {
	out := make([]ProcessStatus, len(processes))

	for i, p := range processes {
		state, ok := states[p.ID]
		if !ok {
			state = ProcessWaiting
		}

		out[i] = ProcessStatus{
			ID:        p.ID,
			State:     state,
			Arrival:   uint64(p.ArrivalTime),
			Start:     uint64(p.StartTime),
			End:       uint64(p.EndTime),
			Accesses:  len(p.Accesses),
			Addresses: len(p.Addresses),
		}
	}

	return out
}
