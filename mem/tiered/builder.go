package tiered

import (
	"fmt"
	"log"

	"github.com/sarchlab/tiersim/sim"
)

// A Builder can build Stores.
type Builder struct {
	cacheCapacity int
	pageCapacity  int
	diskCapacity  int
	bootstrap     bool
	addressPrefix string
	counter       *AccessCounter
}

// MakeBuilder returns a Builder with the default 20/40/80 capacities.
func MakeBuilder() Builder {
	return Builder{
		cacheCapacity: 20,
		pageCapacity:  40,
		diskCapacity:  80,
		bootstrap:     true,
		addressPrefix: "A",
	}
}

// WithCacheCapacity sets the number of addresses the cache can hold.
func (b Builder) WithCacheCapacity(capacity int) Builder {
	b.cacheCapacity = capacity
	return b
}

// WithPageCapacity sets the number of addresses the page tier can hold.
func (b Builder) WithPageCapacity(capacity int) Builder {
	b.pageCapacity = capacity
	return b
}

// WithDiskCapacity sets the number of addresses the disk can hold.
func (b Builder) WithDiskCapacity(capacity int) Builder {
	b.diskCapacity = capacity
	return b
}

// WithCapacities sets the capacities of all three tiers.
func (b Builder) WithCapacities(cache, page, disk int) Builder {
	b.cacheCapacity = cache
	b.pageCapacity = page
	b.diskCapacity = disk

	return b
}

// WithoutBootstrap makes the Store start with all tiers empty.
func (b Builder) WithoutBootstrap() Builder {
	b.bootstrap = false
	return b
}

// WithAddressPrefix sets the prefix of the synthetic addresses generated to
// fill the hierarchy at construction time.
func (b Builder) WithAddressPrefix(prefix string) Builder {
	b.addressPrefix = prefix
	return b
}

// WithAccessCounter lets the Store take ownership of an existing counter.
func (b Builder) WithAccessCounter(counter *AccessCounter) Builder {
	b.counter = counter
	return b
}

// Build creates a Store. It panics if any capacity is negative.
func (b Builder) Build(name string) *Store {
	err := ValidateCapacities(b.cacheCapacity, b.pageCapacity, b.diskCapacity)
	if err != nil {
		log.Panic(err)
	}

	s := &Store{
		NamedBase: sim.MakeNamedBase(name),
		counter:   b.counter,
	}

	if s.counter == nil {
		s.counter = NewAccessCounter()
	}

	s.tiers[TierCache] = newTierSet(
		TierCache, b.cacheCapacity, NewLFUVictimFinder())
	s.tiers[TierPage] = newTierSet(
		TierPage, b.pageCapacity, NewLFUVictimFinder())
	s.tiers[TierDisk] = newTierSet(
		TierDisk, b.diskCapacity, NewFIFOVictimFinder())

	if b.bootstrap {
		b.seed(s)
	}

	return s
}

// seed fills the hierarchy with diskCapacity synthetic addresses. The first
// cacheCapacity of them end in the cache, the next pageCapacity in the page
// tier and the rest stay on the disk. Seeding does not count as accesses.
func (b Builder) seed(s *Store) {
	for i := 0; i < b.diskCapacity; i++ {
		addr := Address(fmt.Sprintf("%s%d", b.addressPrefix, i))

		s.InsertNew(addr)

		if i < b.cacheCapacity+b.pageCapacity {
			s.PromoteToPage(addr)
		}

		if i < b.cacheCapacity {
			s.PromoteToCache(addr)
		}
	}
}
