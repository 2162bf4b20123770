// Package stats summarizes and prints the outcome of a simulation.
package stats

import (
	"github.com/sarchlab/tiersim/mem/tiered"
	"github.com/sarchlab/tiersim/scheduling"
	"github.com/sarchlab/tiersim/sim"
)

// A Summary is everything a report needs to know about a finished run.
type Summary struct {
	TotalTime sim.VTimeInCycle
	Hits      scheduling.HitCounts
	Processes []*scheduling.Process
}

// Summarize collects the outcome of a scheduler that has run.
func Summarize(s *scheduling.Scheduler) Summary {
	return Summary{
		TotalTime: s.Now(),
		Hits:      s.HitCounts(),
		Processes: s.Processes(),
	}
}

// HitRatio returns the fraction of accesses found in tier t. TierNone gives
// the miss ratio. It is 0 when there were no accesses.
func (s Summary) HitRatio(t tiered.Tier) float64 {
	total := s.Hits.Total()
	if total == 0 {
		return 0
	}

	return float64(s.Hits.Of(t)) / float64(total)
}
