package tiered

// AccessCounter counts how many times each address has been accessed. Counts
// only grow; nothing ever resets them, not even when an address leaves the
// hierarchy.
type AccessCounter struct {
	counts map[Address]uint64
}

// NewAccessCounter creates an empty AccessCounter.
func NewAccessCounter() *AccessCounter {
	return &AccessCounter{
		counts: make(map[Address]uint64),
	}
}

// Increment adds one to the count of addr and returns the new count.
func (c *AccessCounter) Increment(addr Address) uint64 {
	c.counts[addr]++
	return c.counts[addr]
}

// Count returns the number of accesses recorded for addr.
func (c *AccessCounter) Count(addr Address) uint64 {
	return c.counts[addr]
}

// Len returns the number of distinct addresses ever accessed.
func (c *AccessCounter) Len() int {
	return len(c.counts)
}

// Snapshot returns a copy of all the counts.
func (c *AccessCounter) Snapshot() map[Address]uint64 {
	counts := make(map[Address]uint64, len(c.counts))
	for addr, n := range c.counts {
		counts[addr] = n
	}

	return counts
}
