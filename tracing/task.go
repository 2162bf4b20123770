// Package tracing turns the hooks invoked by simulation components into task
// traces.
package tracing

import "github.com/sarchlab/tiersim/sim"

// A TaskStep represents a milestone in the processing of task
type TaskStep struct {
	Time sim.VTimeInCycle `json:"time"`
	What string           `json:"what"`
}

// A Task is a piece of work that has a start and an end in simulated time.
type Task struct {
	ID        string           `json:"id"`
	ParentID  string           `json:"parent_id,omitempty"`
	Kind      string           `json:"kind"`
	What      string           `json:"what"`
	Where     string           `json:"where"`
	StartTime sim.VTimeInCycle `json:"start_time"`
	EndTime   sim.VTimeInCycle `json:"end_time"`
	Steps     []TaskStep       `json:"steps,omitempty"`
	Detail    interface{}      `json:"-"`
}

// Duration returns the time between the start and the end of the task.
func (t Task) Duration() sim.VTimeInCycle {
	return t.EndTime - t.StartTime
}

// TaskFilter is a function that can filter interesting tasks. If this function
// returns true, the task is considered useful.
type TaskFilter func(t Task) bool

// KindFilter returns a TaskFilter that accepts tasks of the given kind.
func KindFilter(kind string) TaskFilter {
	return func(t Task) bool {
		return t.Kind == kind
	}
}

// AllTasks is a TaskFilter that accepts every task.
func AllTasks(Task) bool {
	return true
}
