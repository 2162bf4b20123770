package tiered

// A VictimFinder decides which address should leave a full tier.
type VictimFinder interface {
	FindVictim(set RankedSet) (Address, bool)
}

// LFUVictimFinder evicts the least frequently accessed address. Ties go to
// the address that entered the tier first. Frequency is the lifetime access
// count, so an address that was hot long ago can outlive one that was
// touched once a moment ago.
type LFUVictimFinder struct {
}

// NewLFUVictimFinder returns a newly constructed LFU victim finder.
func NewLFUVictimFinder() *LFUVictimFinder {
	return new(LFUVictimFinder)
}

// FindVictim returns the address with the lowest access count.
func (f *LFUVictimFinder) FindVictim(set RankedSet) (Address, bool) {
	return set.LowestRanked()
}

// FIFOVictimFinder evicts the address that entered the tier first.
type FIFOVictimFinder struct {
}

// NewFIFOVictimFinder returns a newly constructed FIFO victim finder.
func NewFIFOVictimFinder() *FIFOVictimFinder {
	return new(FIFOVictimFinder)
}

// FindVictim returns the oldest address.
func (f *FIFOVictimFinder) FindVictim(set RankedSet) (Address, bool) {
	return set.Oldest()
}
