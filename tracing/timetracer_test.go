package tracing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/tiersim/sim"
)

var _ = Describe("Time tracers", func() {
	var (
		mockCtrl   *gomock.Controller
		timeTeller *MockTimeTeller
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		timeTeller = NewMockTimeTeller(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	at := func(t sim.VTimeInCycle) {
		timeTeller.EXPECT().CurrentTime().Return(t)
	}

	Describe("TotalTimeTracer", func() {
		It("should sum the duration of the filtered tasks", func() {
			tracer := NewTotalTimeTracer(timeTeller, KindFilter("access"))

			at(0)
			tracer.StartTask(Task{ID: "1", Kind: "access"})
			at(0)
			tracer.StartTask(Task{ID: "2", Kind: "process"})
			at(10)
			tracer.EndTask(Task{ID: "1"})
			at(20)
			tracer.EndTask(Task{ID: "2"})

			Expect(tracer.TotalTime()).To(Equal(sim.VTimeInCycle(10)))
			Expect(tracer.TaskCount()).To(Equal(uint64(1)))
		})
	})

	Describe("AverageTimeTracer", func() {
		It("should report no average before any task ends", func() {
			tracer := NewAverageTimeTracer(timeTeller, AllTasks)

			_, ok := tracer.AverageTime()

			Expect(ok).To(BeFalse())
		})

		It("should average the durations", func() {
			tracer := NewAverageTimeTracer(timeTeller, AllTasks)

			at(0)
			tracer.StartTask(Task{ID: "1"})
			at(1)
			tracer.EndTask(Task{ID: "1"})
			at(1)
			tracer.StartTask(Task{ID: "2"})
			at(11)
			tracer.EndTask(Task{ID: "2"})

			avg, ok := tracer.AverageTime()

			Expect(ok).To(BeTrue())
			Expect(avg).To(BeNumerically("~", 5.5))
		})
	})

	Describe("BusyTimeTracer", func() {
		It("should count overlapping tasks once", func() {
			tracer := NewBusyTimeTracer(timeTeller, nil)

			at(0)
			tracer.StartTask(Task{ID: "1"})
			at(5)
			tracer.StartTask(Task{ID: "2"})
			at(10)
			tracer.EndTask(Task{ID: "1"})
			at(15)
			tracer.EndTask(Task{ID: "2"})
			at(20)
			tracer.StartTask(Task{ID: "3"})
			at(30)
			tracer.EndTask(Task{ID: "3"})

			Expect(tracer.BusyTime()).To(Equal(sim.VTimeInCycle(25)))
		})

		It("should ignore unfinished and filtered tasks", func() {
			tracer := NewBusyTimeTracer(timeTeller, KindFilter("access"))

			at(0)
			tracer.StartTask(Task{ID: "1", Kind: "access"})
			tracer.StartTask(Task{ID: "2", Kind: "process"})
			at(10)
			tracer.EndTask(Task{ID: "2"})

			Expect(tracer.BusyTime()).To(BeZero())
		})
	})
})

var _ = Describe("StepCountTracer", func() {
	It("should count steps and tasks with steps", func() {
		tracer := NewStepCountTracer(KindFilter("access"))

		tracer.StartTask(Task{ID: "1", Kind: "access"})
		tracer.StartTask(Task{ID: "2", Kind: "access"})
		tracer.StartTask(Task{ID: "3", Kind: "process"})

		tracer.StepTask(Task{ID: "1", Steps: []TaskStep{{What: "page"}}})
		tracer.StepTask(Task{ID: "1", Steps: []TaskStep{{What: "page"}}})
		tracer.StepTask(Task{ID: "2", Steps: []TaskStep{{What: "cache"}}})
		tracer.StepTask(Task{ID: "3", Steps: []TaskStep{{What: "cache"}}})
		tracer.EndTask(Task{ID: "1"})

		Expect(tracer.GetStepNames()).To(Equal([]string{"page", "cache"}))
		Expect(tracer.GetStepCount("page")).To(Equal(uint64(2)))
		Expect(tracer.GetTaskCount("page")).To(Equal(uint64(1)))
		Expect(tracer.GetStepCount("cache")).To(Equal(uint64(1)))
	})
})
