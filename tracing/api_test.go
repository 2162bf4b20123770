package tracing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/tiersim/sim"
)

var _ = Describe("Api", func() {
	var (
		mockCtrl *gomock.Controller
		domain   *MockNamedHookable
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		domain = NewMockNamedHookable(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	Context("when the domain has hooks", func() {
		BeforeEach(func() {
			domain.EXPECT().NumHooks().Return(1).AnyTimes()
		})

		It("should panic if ID is not given", func() {
			domain.EXPECT().Name().Return("domain").AnyTimes()
			Expect(func() {
				StartTask("", "123", domain, "kind", "what", nil)
			}).Should(Panic())
		})

		It("should panic if the domain's name is empty", func() {
			domain.EXPECT().Name().Return("").AnyTimes()
			Expect(func() {
				StartTask("id", "123", domain, "kind", "what", nil)
			}).Should(Panic())
		})

		It("should panic if kind is empty", func() {
			domain.EXPECT().Name().Return("domain").AnyTimes()
			Expect(func() {
				StartTask("id", "123", domain, "", "what", nil)
			}).Should(Panic())
		})

		It("should panic if what is empty", func() {
			domain.EXPECT().Name().Return("domain").AnyTimes()
			Expect(func() {
				StartTask("id", "123", domain, "kind", "", nil)
			}).Should(Panic())
		})

		It("should start a task located at the domain", func() {
			domain.EXPECT().Name().Return("Scheduler").AnyTimes()
			domain.EXPECT().InvokeHook(sim.HookCtx{
				Domain: domain,
				Pos:    HookPosTaskStart,
				Item: Task{
					ID:       "id",
					ParentID: "parent",
					Kind:     "access",
					What:     "A0",
					Where:    "Scheduler",
				},
			})

			StartTask("id", "parent", domain, "access", "A0", nil)
		})

		It("should add steps and end tasks", func() {
			domain.EXPECT().InvokeHook(sim.HookCtx{
				Domain: domain,
				Pos:    HookPosTaskStep,
				Item: Task{
					ID:    "id",
					Steps: []TaskStep{{What: "cache"}},
				},
			})
			domain.EXPECT().InvokeHook(sim.HookCtx{
				Domain: domain,
				Pos:    HookPosTaskEnd,
				Item:   Task{ID: "id"},
			})

			AddTaskStep("id", domain, "cache")
			EndTask("id", domain)
		})
	})

	It("should panic if domain is nil", func() {
		Expect(func() {
			StartTask("id", "123", nil, "kind", "what", nil)
		}).Should(Panic())
	})

	It("should do nothing if the domain has no hooks", func() {
		domain.EXPECT().NumHooks().Return(0).AnyTimes()

		StartTask("", "", domain, "", "", nil)
		AddTaskStep("id", domain, "cache")
		EndTask("id", domain)
	})
})

type recordingTracer struct {
	started, stepped, ended []Task
}

func (t *recordingTracer) StartTask(task Task) { t.started = append(t.started, task) }
func (t *recordingTracer) StepTask(task Task)  { t.stepped = append(t.stepped, task) }
func (t *recordingTracer) EndTask(task Task)   { t.ended = append(t.ended, task) }

type hookedDomain struct {
	sim.HookableBase
	sim.NamedBase
}

var _ = Describe("CollectTrace", func() {
	var (
		domain *hookedDomain
		tracer *recordingTracer
	)

	BeforeEach(func() {
		domain = &hookedDomain{NamedBase: sim.MakeNamedBase("Domain")}
		tracer = &recordingTracer{}
	})

	It("should forward tasks to the tracer", func() {
		CollectTrace(domain, tracer)

		StartTask("1", "", domain, "kind", "what", nil)
		AddTaskStep("1", domain, "step")
		EndTask("1", domain)

		Expect(tracer.started).To(HaveLen(1))
		Expect(tracer.started[0].Where).To(Equal("Domain"))
		Expect(tracer.stepped).To(HaveLen(1))
		Expect(tracer.ended).To(HaveLen(1))
	})

	It("should not attach the same tracer twice", func() {
		CollectTrace(domain, tracer)

		Expect(func() { CollectTrace(domain, tracer) }).To(Panic())
	})
})
