package tiered

import (
	"bytes"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AccessLogger", func() {
	It("should log accesses and relocations", func() {
		buf := new(bytes.Buffer)
		s := MakeBuilder().
			WithCapacities(1, 0, 0).
			WithoutBootstrap().
			Build("Tiers")
		s.Access("A0")
		s.AcceptHook(NewAccessLogger(log.New(buf, "", 0)))

		s.Access("B")

		out := buf.String()
		Expect(out).To(ContainSubstring("evict A0: cache -> page"))
		Expect(out).To(ContainSubstring("drop A0"))
		Expect(out).To(ContainSubstring("access B: not found, 100 cycles, count 1"))
	})
})
