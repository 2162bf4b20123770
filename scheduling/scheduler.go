package scheduling

import (
	"fmt"
	"log"
	"sort"

	"github.com/sarchlab/tiersim/datarecording"
	"github.com/sarchlab/tiersim/mem/tiered"
	"github.com/sarchlab/tiersim/sim"
	"github.com/sarchlab/tiersim/tracing"
)

// An Accessor serves one address access and reports where the address was
// found and how long the access took.
type Accessor interface {
	Access(addr tiered.Address) (tiered.Tier, sim.VTimeInCycle)
}

// Kinds of the tasks the Scheduler traces. A process task is the parent of
// the access tasks of the process.
const (
	ProcessTaskKind = "process"
	AccessTaskKind  = "access"
)

// Hook positions the Scheduler invokes. The item is always the *Process.
var (
	HookPosProcessStart = &sim.HookPos{Name: "ProcessStart"}
	HookPosProcessEnd   = &sim.HookPos{Name: "ProcessEnd"}
)

// Scheduler runs processes first come, first served. Only one process runs
// at a time and a process runs to completion once it starts. The clock is
// the clock of the engine.
type Scheduler struct {
	sim.HookableBase
	sim.NamedBase

	engine   sim.Engine
	accessor Accessor
	recorder datarecording.DataRecorder

	processes []*Process
	order     []*Process
	hits      HitCounts
	started   bool
}

// RegisterProcess adds a process and returns its ID. IDs start from 1 and
// follow registration order.
func (s *Scheduler) RegisterProcess(
	arrival sim.VTimeInCycle,
	addrs []tiered.Address,
) int {
	if s.started {
		log.Panic("cannot register a process after the simulation has run")
	}

	p := &Process{
		ID:          len(s.processes) + 1,
		ArrivalTime: arrival,
		Addresses:   append([]tiered.Address(nil), addrs...),
	}
	s.processes = append(s.processes, p)

	return p.ID
}

// RunSimulation executes every registered process. It can only be called
// once.
func (s *Scheduler) RunSimulation() error {
	if s.started {
		log.Panic("the simulation can only run once")
	}

	s.started = true

	s.order = append([]*Process(nil), s.processes...)
	sort.SliceStable(s.order, func(i, j int) bool {
		return s.order[i].ArrivalTime < s.order[j].ArrivalTime
	})

	for i, p := range s.order {
		p.position = i
	}

	if len(s.order) > 0 {
		s.scheduleProcessStart(0)
	}

	err := s.engine.Run()
	if err != nil {
		return fmt.Errorf("simulation stopped: %w", err)
	}

	if s.recorder != nil {
		s.recorder.Flush()
	}

	s.engine.Finished()

	return nil
}

func (s *Scheduler) scheduleProcessStart(index int) {
	t := s.engine.CurrentTime()
	if arrival := s.order[index].ArrivalTime; arrival > t {
		t = arrival
	}

	s.engine.Schedule(newProcessStartEvent(t, s, index))
}

// Handle processes the events of the scheduling loop.
func (s *Scheduler) Handle(e sim.Event) error {
	switch e := e.(type) {
	case *processStartEvent:
		s.startProcess(e)
	case *accessEvent:
		s.access(e)
	case *accessDoneEvent:
		s.completeAccess(e)
	case *processEndEvent:
		s.endProcess(e)
	default:
		log.Panicf("cannot handle event of type %T", e)
	}

	return nil
}

func (s *Scheduler) startProcess(e *processStartEvent) {
	now := e.Time()
	p := s.order[e.index]

	p.StartTime = now
	p.taskID = sim.GetIDGenerator().Generate()

	tracing.StartTask(
		p.taskID, "", s, ProcessTaskKind, fmt.Sprintf("P%d", p.ID), p)

	s.InvokeHook(sim.HookCtx{
		Domain: s,
		Pos:    HookPosProcessStart,
		Item:   p,
	})

	if len(p.Addresses) == 0 {
		s.engine.Schedule(newProcessEndEvent(now, s, e.index))
		return
	}

	s.engine.Schedule(newAccessEvent(now, s, p, 0))
}

func (s *Scheduler) access(e *accessEvent) {
	now := e.Time()
	p := e.proc
	addr := p.Addresses[e.index]

	found, latency := s.accessor.Access(addr)

	p.Accesses = append(p.Accesses, MemoryAccessRecord{
		Address: addr,
		FoundIn: found,
		Latency: latency,
	})
	s.hits.Add(found)

	taskID := sim.GetIDGenerator().Generate()
	tracing.StartTask(taskID, p.taskID, s, AccessTaskKind, string(addr), nil)
	tracing.AddTaskStep(taskID, s, found.String())

	if s.recorder != nil {
		s.recorder.InsertData(AccessTableName, AccessEntry{
			Process: p.ID,
			Index:   e.index,
			Address: string(addr),
			FoundIn: found.String(),
			Start:   uint64(now),
			Latency: uint64(latency),
		})
	}

	s.engine.Schedule(
		newAccessDoneEvent(now+latency, s, p, e.index, taskID))
}

func (s *Scheduler) completeAccess(e *accessDoneEvent) {
	now := e.Time()
	p := e.proc

	p.ExecutionTime += p.Accesses[e.index].Latency
	tracing.EndTask(e.taskID, s)

	next := e.index + 1
	if next < len(p.Addresses) {
		s.engine.Schedule(newAccessEvent(now, s, p, next))
		return
	}

	s.engine.Schedule(newProcessEndEvent(now, s, p.position))
}

func (s *Scheduler) endProcess(e *processEndEvent) {
	p := s.order[e.index]
	p.EndTime = e.Time()

	tracing.EndTask(p.taskID, s)

	if s.recorder != nil {
		s.recorder.InsertData(ProcessTableName, ProcessEntry{
			ID:        p.ID,
			Arrival:   uint64(p.ArrivalTime),
			Start:     uint64(p.StartTime),
			End:       uint64(p.EndTime),
			Execution: uint64(p.ExecutionTime),
			Accesses:  len(p.Accesses),
		})
	}

	s.InvokeHook(sim.HookCtx{
		Domain: s,
		Pos:    HookPosProcessEnd,
		Item:   p,
	})

	if next := e.index + 1; next < len(s.order) {
		s.scheduleProcessStart(next)
	}
}

// Processes returns the processes in execution order once the simulation has
// run, and in registration order before that.
func (s *Scheduler) Processes() []*Process {
	if s.started {
		return append([]*Process(nil), s.order...)
	}

	return append([]*Process(nil), s.processes...)
}

// Process returns the process with the given ID.
func (s *Scheduler) Process(id int) (*Process, bool) {
	if id < 1 || id > len(s.processes) {
		return nil, false
	}

	return s.processes[id-1], true
}

// NumProcesses returns the number of registered processes.
func (s *Scheduler) NumProcesses() int {
	return len(s.processes)
}

// HitCounts returns the number of accesses served by each tier.
func (s *Scheduler) HitCounts() HitCounts {
	return s.hits
}

// Now returns the current time of the simulation. After the run, it is the
// time the last process finished.
func (s *Scheduler) Now() sim.VTimeInCycle {
	return s.engine.CurrentTime()
}
