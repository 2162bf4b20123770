package sim

import (
	"bytes"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("EventLogger", func() {
	var (
		mockCtrl *gomock.Controller
		buf      *bytes.Buffer
		logger   *EventLogger
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		buf = new(bytes.Buffer)
		logger = NewEventLogger(log.New(buf, "", 0))
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should log events before they are handled", func() {
		handler := NewMockHandler(mockCtrl)
		evt := mockEventAt(mockCtrl, 42, handler, false)

		logger.Func(HookCtx{Pos: HookPosBeforeEvent, Item: evt})

		Expect(buf.String()).To(HavePrefix("42, *sim.MockEvent -> *sim.MockHandler"))
	})

	It("should ignore other positions", func() {
		handler := NewMockHandler(mockCtrl)
		evt := mockEventAt(mockCtrl, 42, handler, false)

		logger.Func(HookCtx{Pos: HookPosAfterEvent, Item: evt})

		Expect(buf.String()).To(BeEmpty())
	})
})
