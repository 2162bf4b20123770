package scheduling

import (
	"github.com/sarchlab/tiersim/sim"
)

// processStartEvent begins the process at position index of the execution
// order.
type processStartEvent struct {
	*sim.EventBase
	index int
}

func newProcessStartEvent(
	t sim.VTimeInCycle,
	handler sim.Handler,
	index int,
) *processStartEvent {
	return &processStartEvent{
		EventBase: sim.NewEventBase(t, handler),
		index:     index,
	}
}

// accessEvent issues the access to the address at position index of a
// process.
type accessEvent struct {
	*sim.EventBase
	proc  *Process
	index int
}

func newAccessEvent(
	t sim.VTimeInCycle,
	handler sim.Handler,
	proc *Process,
	index int,
) *accessEvent {
	return &accessEvent{
		EventBase: sim.NewEventBase(t, handler),
		proc:      proc,
		index:     index,
	}
}

// accessDoneEvent fires when the latency of an access has elapsed.
type accessDoneEvent struct {
	*sim.EventBase
	proc   *Process
	index  int
	taskID string
}

func newAccessDoneEvent(
	t sim.VTimeInCycle,
	handler sim.Handler,
	proc *Process,
	index int,
	taskID string,
) *accessDoneEvent {
	return &accessDoneEvent{
		EventBase: sim.NewEventBase(t, handler),
		proc:      proc,
		index:     index,
		taskID:    taskID,
	}
}

// processEndEvent completes the process at position index of the execution
// order.
type processEndEvent struct {
	*sim.EventBase
	index int
}

func newProcessEndEvent(
	t sim.VTimeInCycle,
	handler sim.Handler,
	index int,
) *processEndEvent {
	return &processEndEvent{
		EventBase: sim.NewEventBase(t, handler),
		index:     index,
	}
}
