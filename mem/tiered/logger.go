package tiered

import (
	"log"

	"github.com/sarchlab/tiersim/sim"
)

// AccessLogger is a hook that prints accesses, evictions and drops.
type AccessLogger struct {
	sim.LogHookBase
}

// NewAccessLogger returns a new AccessLogger which will write in to the
// logger.
func NewAccessLogger(logger *log.Logger) *AccessLogger {
	h := new(AccessLogger)
	h.Logger = logger

	return h
}

// Func writes the access or relocation into the logger.
func (h *AccessLogger) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case HookPosAccess:
		info := ctx.Item.(AccessInfo)
		h.Printf("access %s: %s, %d cycles, count %d",
			info.Address, info.FoundIn, info.Latency, info.Count)
	case HookPosEvict:
		r := ctx.Item.(Relocation)
		h.Printf("evict %s: %s -> %s", r.Address, r.From, r.To)
	case HookPosDrop:
		r := ctx.Item.(Relocation)
		h.Printf("drop %s", r.Address)
	}
}
