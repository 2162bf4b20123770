package tracing

import (
	"sort"
	"sync"

	"github.com/sarchlab/tiersim/sim"
)

type interval struct {
	start, end sim.VTimeInCycle
}

// BusyTimeTracer measures the time during which at least one task of a kind
// is running. Overlapping tasks are only counted once.
type BusyTimeTracer struct {
	timeTeller    sim.TimeTeller
	filter        TaskFilter
	lock          sync.Mutex
	inflightTasks map[string]sim.VTimeInCycle
	completed     []interval
}

// NewBusyTimeTracer creates a new BusyTimeTracer
func NewBusyTimeTracer(
	timeTeller sim.TimeTeller,
	filter TaskFilter,
) *BusyTimeTracer {
	return &BusyTimeTracer{
		timeTeller:    timeTeller,
		filter:        filter,
		inflightTasks: make(map[string]sim.VTimeInCycle),
	}
}

// StartTask records the task start time
func (t *BusyTimeTracer) StartTask(task Task) {
	if t.filter != nil && !t.filter(task) {
		return
	}

	now := t.timeTeller.CurrentTime()

	t.lock.Lock()
	t.inflightTasks[task.ID] = now
	t.lock.Unlock()
}

// StepTask does nothing
func (t *BusyTimeTracer) StepTask(_ Task) {
	// Do nothing
}

// EndTask records the end of the task
func (t *BusyTimeTracer) EndTask(task Task) {
	now := t.timeTeller.CurrentTime()

	t.lock.Lock()
	defer t.lock.Unlock()

	start, ok := t.inflightTasks[task.ID]
	if !ok {
		return
	}

	delete(t.inflightTasks, task.ID)
	t.completed = append(t.completed, interval{start: start, end: now})
}

// BusyTime returns the length of the union of the completed tasks.
func (t *BusyTimeTracer) BusyTime() sim.VTimeInCycle {
	t.lock.Lock()
	intervals := append([]interval(nil), t.completed...)
	t.lock.Unlock()

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].start < intervals[j].start
	})

	var (
		busy    sim.VTimeInCycle
		current interval
		open    bool
	)

	for _, iv := range intervals {
		if open && iv.start <= current.end {
			if iv.end > current.end {
				current.end = iv.end
			}

			continue
		}

		if open {
			busy += current.end - current.start
		}

		current = iv
		open = true
	}

	if open {
		busy += current.end - current.start
	}

	return busy
}
