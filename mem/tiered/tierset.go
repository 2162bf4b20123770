package tiered

import (
	"github.com/petar/GoLLRB/llrb"
)

// An entry is the bookkeeping of one address inside one tier. The sequence
// number is unique across the whole store and grows with every insertion, so
// it orders the entries of a tier by insertion time.
type entry struct {
	addr  Address
	count uint64
	seq   uint64
}

// rankItem orders entries by access count, then by insertion order.
type rankItem struct {
	*entry
}

func (i rankItem) Less(than llrb.Item) bool {
	o := than.(rankItem)
	if i.count != o.count {
		return i.count < o.count
	}

	return i.seq < o.seq
}

// ageItem orders entries by insertion order only.
type ageItem struct {
	*entry
}

func (i ageItem) Less(than llrb.Item) bool {
	return i.seq < than.(ageItem).seq
}

// A RankedSet exposes the two orders a VictimFinder can choose from.
type RankedSet interface {
	// LowestRanked returns the entry with the smallest access count. Among
	// equal counts, the earliest inserted entry is returned.
	LowestRanked() (Address, bool)

	// Oldest returns the earliest inserted entry.
	Oldest() (Address, bool)
}

// tierSet holds the addresses of one tier. Membership is a map lookup; the
// two trees keep the entries sorted for victim selection.
type tierSet struct {
	tier     Tier
	capacity int
	finder   VictimFinder

	members map[Address]*entry
	rank    *llrb.LLRB
	age     *llrb.LLRB
}

func newTierSet(tier Tier, capacity int, finder VictimFinder) *tierSet {
	return &tierSet{
		tier:     tier,
		capacity: capacity,
		finder:   finder,
		members:  make(map[Address]*entry),
		rank:     llrb.New(),
		age:      llrb.New(),
	}
}

func (s *tierSet) Len() int {
	return len(s.members)
}

func (s *tierSet) contains(addr Address) bool {
	_, ok := s.members[addr]
	return ok
}

func (s *tierSet) isFull() bool {
	return len(s.members) >= s.capacity
}

func (s *tierSet) add(e *entry) {
	s.members[e.addr] = e
	s.rank.InsertNoReplace(rankItem{e})
	s.age.InsertNoReplace(ageItem{e})
}

func (s *tierSet) remove(addr Address) bool {
	e, ok := s.members[addr]
	if !ok {
		return false
	}

	delete(s.members, addr)
	s.rank.Delete(rankItem{e})
	s.age.Delete(ageItem{e})

	return true
}

// rekey updates the access count of a member, keeping the rank tree sorted.
func (s *tierSet) rekey(addr Address, count uint64) {
	e, ok := s.members[addr]
	if !ok {
		return
	}

	s.rank.Delete(rankItem{e})
	e.count = count
	s.rank.InsertNoReplace(rankItem{e})
}

func (s *tierSet) LowestRanked() (Address, bool) {
	item := s.rank.Min()
	if item == nil {
		return "", false
	}

	return item.(rankItem).addr, true
}

func (s *tierSet) Oldest() (Address, bool) {
	item := s.age.Min()
	if item == nil {
		return "", false
	}

	return item.(ageItem).addr, true
}

// addresses returns the members in insertion order.
func (s *tierSet) addresses() []Address {
	addrs := make([]Address, 0, len(s.members))

	first := s.age.Min()
	if first == nil {
		return addrs
	}

	s.age.AscendGreaterOrEqual(first, func(i llrb.Item) bool {
		addrs = append(addrs, i.(ageItem).addr)
		return true
	})

	return addrs
}
