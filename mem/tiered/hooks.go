package tiered

import (
	"github.com/sarchlab/tiersim/sim"
)

// Hook positions the Store invokes.
var (
	// HookPosAccess triggers after an access is classified and all the
	// promotions it caused are done. The item is an AccessInfo.
	HookPosAccess = &sim.HookPos{Name: "TieredAccess"}

	// HookPosEvict triggers when a victim is pushed to a slower tier. The
	// item is a Relocation.
	HookPosEvict = &sim.HookPos{Name: "TieredEvict"}

	// HookPosDrop triggers when an address leaves the hierarchy. The item is
	// a Relocation whose To field is TierNone.
	HookPosDrop = &sim.HookPos{Name: "TieredDrop"}
)

// AccessInfo describes one completed access.
type AccessInfo struct {
	Address Address
	FoundIn Tier
	Latency sim.VTimeInCycle
	Count   uint64
}

// Relocation describes an address leaving a tier.
type Relocation struct {
	Address Address
	From    Tier
	To      Tier
}
