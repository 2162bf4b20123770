package tiered

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Builder", func() {
	It("should use 20/40/80 by default", func() {
		s := MakeBuilder().Build("Tiers")

		Expect(s.Capacity(TierCache)).To(Equal(20))
		Expect(s.Capacity(TierPage)).To(Equal(40))
		Expect(s.Capacity(TierDisk)).To(Equal(80))
		Expect(s.Len(TierCache)).To(Equal(20))
		Expect(s.Len(TierPage)).To(Equal(40))
		Expect(s.Len(TierDisk)).To(Equal(20))
		Expect(s.Name()).To(Equal("Tiers"))
	})

	It("should seed in index order", func() {
		s := MakeBuilder().WithCapacities(2, 2, 6).Build("Tiers")

		Expect(s.Entries(TierCache)).To(Equal(addrs("A0", "A1")))
		Expect(s.Entries(TierPage)).To(Equal(addrs("A2", "A3")))
		Expect(s.Entries(TierDisk)).To(Equal(addrs("A4", "A5")))
	})

	It("should use the address prefix", func() {
		s := MakeBuilder().
			WithCapacities(1, 0, 1).
			WithAddressPrefix("page-").
			Build("Tiers")

		Expect(s.Entries(TierCache)).To(Equal(addrs("page-0")))
	})

	It("should seed nothing without disk capacity", func() {
		s := MakeBuilder().WithCapacities(3, 3, 0).Build("Tiers")

		for _, t := range Tiers {
			Expect(s.Len(t)).To(BeZero())
		}
	})

	It("should set capacities one by one", func() {
		s := MakeBuilder().
			WithCacheCapacity(1).
			WithPageCapacity(2).
			WithDiskCapacity(3).
			WithoutBootstrap().
			Build("Tiers")

		Expect(s.Capacity(TierCache)).To(Equal(1))
		Expect(s.Capacity(TierPage)).To(Equal(2))
		Expect(s.Capacity(TierDisk)).To(Equal(3))
	})

	It("should share a given counter", func() {
		counter := NewAccessCounter()
		s := MakeBuilder().
			WithCapacities(1, 1, 1).
			WithAccessCounter(counter).
			Build("Tiers")

		s.Access("A0")

		Expect(counter.Count("A0")).To(Equal(uint64(1)))
	})

	It("should panic on a negative capacity", func() {
		Expect(func() {
			MakeBuilder().WithCapacities(1, -1, 1).Build("Tiers")
		}).To(Panic())
	})
})

var _ = Describe("ValidateCapacities", func() {
	It("should accept zero", func() {
		Expect(ValidateCapacities(0, 0, 0)).To(Succeed())
	})

	It("should wrap ErrInvalidCapacity", func() {
		err := ValidateCapacities(1, 2, -3)

		Expect(errors.Is(err, ErrInvalidCapacity)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("disk capacity"))
		Expect(err.Error()).To(ContainSubstring("-3"))
	})
})
