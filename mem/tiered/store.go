package tiered

import (
	"log"

	"github.com/sarchlab/tiersim/sim"
)

// A Store owns the three tiers and the access counter. It is not safe for
// concurrent use; every method runs to completion before the next one may
// start.
type Store struct {
	sim.HookableBase
	sim.NamedBase

	counter *AccessCounter
	tiers   [TierDisk + 1]*tierSet
	nextSeq uint64
}

// Access looks addr up, charges the latency of the tier where it was found,
// and promotes it into the cache. The returned tier is where the address was
// before the access, not where it ends up.
func (s *Store) Access(addr Address) (Tier, sim.VTimeInCycle) {
	count := s.touch(addr)
	found := s.Locate(addr)

	switch found {
	case TierCache:
	case TierPage:
		s.PromoteToCache(addr)
	case TierDisk:
		s.PromoteToPage(addr)
		s.PromoteToCache(addr)
	default:
		s.InsertNew(addr)
		s.PromoteToPage(addr)
		s.PromoteToCache(addr)
	}

	latency := Latency(found)

	s.InvokeHook(sim.HookCtx{
		Domain: s,
		Pos:    HookPosAccess,
		Item: AccessInfo{
			Address: addr,
			FoundIn: found,
			Latency: latency,
			Count:   count,
		},
	})

	return found, latency
}

// touch increments the access count of addr and re-sorts the tier holding it.
func (s *Store) touch(addr Address) uint64 {
	count := s.counter.Increment(addr)

	if t := s.Locate(addr); t != TierNone {
		s.tiers[t].rekey(addr, count)
	}

	return count
}

// Locate returns the tier that holds addr, or TierNone.
func (s *Store) Locate(addr Address) Tier {
	for _, t := range Tiers {
		if s.tiers[t].contains(addr) {
			return t
		}
	}

	return TierNone
}

// PromoteToCache moves addr into the cache. The address must not be in the
// cache already.
func (s *Store) PromoteToCache(addr Address) {
	if s.tiers[TierCache].contains(addr) {
		log.Panicf("address %s is already in the cache", addr)
	}

	s.tiers[TierPage].remove(addr)
	s.tiers[TierDisk].remove(addr)
	s.place(TierCache, addr)
}

// PromoteToPage moves addr from the disk (or from nowhere) into the page
// tier.
func (s *Store) PromoteToPage(addr Address) {
	if s.tiers[TierCache].contains(addr) || s.tiers[TierPage].contains(addr) {
		log.Panicf("address %s is already above the disk", addr)
	}

	s.tiers[TierDisk].remove(addr)
	s.place(TierPage, addr)
}

// InsertNew puts an address that is in no tier onto the disk.
func (s *Store) InsertNew(addr Address) {
	if s.Locate(addr) != TierNone {
		log.Panicf("address %s is already in the hierarchy", addr)
	}

	s.place(TierDisk, addr)
}

// place appends addr to tier t, making room first. A tier without capacity
// lets the address fall through to the next slower tier.
func (s *Store) place(t Tier, addr Address) {
	set := s.tiers[t]
	if set.capacity == 0 {
		s.passDown(t, addr)
		return
	}

	if set.isFull() {
		s.evictFrom(set)
	}

	set.add(s.newEntry(addr))
}

// evictFrom removes the victim of a full tier and relocates it. Only called
// when the tier holds capacity > 0 entries, so a victim always exists.
func (s *Store) evictFrom(set *tierSet) {
	victim, found := set.finder.FindVictim(set)
	if !found {
		log.Panicf("tier %s is full but has no victim", set.tier)
	}

	set.remove(victim)

	if set.tier == TierDisk {
		s.drop(victim)
		return
	}

	s.InvokeHook(sim.HookCtx{
		Domain: s,
		Pos:    HookPosEvict,
		Item: Relocation{
			Address: victim,
			From:    set.tier,
			To:      set.tier.Slower(),
		},
	})

	s.place(set.tier.Slower(), victim)
}

func (s *Store) passDown(t Tier, addr Address) {
	if t == TierDisk {
		s.drop(addr)
		return
	}

	s.place(t.Slower(), addr)
}

func (s *Store) drop(addr Address) {
	s.InvokeHook(sim.HookCtx{
		Domain: s,
		Pos:    HookPosDrop,
		Item: Relocation{
			Address: addr,
			From:    TierDisk,
			To:      TierNone,
		},
	})
}

func (s *Store) newEntry(addr Address) *entry {
	e := &entry{
		addr:  addr,
		count: s.counter.Count(addr),
		seq:   s.nextSeq,
	}
	s.nextSeq++

	return e
}

// Count returns the number of accesses made to addr so far.
func (s *Store) Count(addr Address) uint64 {
	return s.counter.Count(addr)
}

// Capacity returns the capacity of a tier.
func (s *Store) Capacity(t Tier) int {
	return s.tiers[t].capacity
}

// Len returns the number of addresses currently held by a tier.
func (s *Store) Len(t Tier) int {
	return s.tiers[t].Len()
}

// Entries returns the addresses held by a tier, in insertion order.
func (s *Store) Entries(t Tier) []Address {
	return s.tiers[t].addresses()
}

// Snapshot is a copy of the state of a Store.
type Snapshot struct {
	Cache []Address
	Page  []Address
	Disk  []Address

	CacheCapacity int
	PageCapacity  int
	DiskCapacity  int

	Counts map[Address]uint64
}

// Snapshot copies the content of every tier and the access counts.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Cache:         s.Entries(TierCache),
		Page:          s.Entries(TierPage),
		Disk:          s.Entries(TierDisk),
		CacheCapacity: s.Capacity(TierCache),
		PageCapacity:  s.Capacity(TierPage),
		DiskCapacity:  s.Capacity(TierDisk),
		Counts:        s.counter.Snapshot(),
	}
}
