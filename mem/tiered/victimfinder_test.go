package tiered

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("VictimFinder", func() {
	var set *tierSet

	BeforeEach(func() {
		set = newTierSet(TierCache, 4, nil)
		set.add(&entry{addr: "X", count: 3, seq: 0})
		set.add(&entry{addr: "Y", count: 1, seq: 1})
		set.add(&entry{addr: "Z", count: 1, seq: 2})
	})

	It("should pick the least frequently used", func() {
		victim, ok := NewLFUVictimFinder().FindVictim(set)

		Expect(ok).To(BeTrue())
		Expect(victim).To(Equal(Address("Y")))
	})

	It("should follow count changes", func() {
		set.rekey("Y", 5)

		victim, _ := NewLFUVictimFinder().FindVictim(set)

		Expect(victim).To(Equal(Address("Z")))
	})

	It("should pick the oldest", func() {
		victim, ok := NewFIFOVictimFinder().FindVictim(set)

		Expect(ok).To(BeTrue())
		Expect(victim).To(Equal(Address("X")))
	})

	It("should find nothing in an empty set", func() {
		empty := newTierSet(TierDisk, 1, nil)

		_, ok := NewLFUVictimFinder().FindVictim(empty)
		Expect(ok).To(BeFalse())

		_, ok = NewFIFOVictimFinder().FindVictim(empty)
		Expect(ok).To(BeFalse())
	})

	It("should list members in insertion order after removal", func() {
		set.remove("Y")

		Expect(set.addresses()).To(Equal(addrs("X", "Z")))
		Expect(set.contains("Y")).To(BeFalse())
		Expect(set.remove("Y")).To(BeFalse())
	})
})
