package tracing

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/sarchlab/tiersim/sim"
)

// JSONTracer writes completed tasks into a JSON array.
type JSONTracer struct {
	timeTeller    sim.TimeTeller
	w             io.Writer
	lock          sync.Mutex
	firstTask     bool
	closed        bool
	inflightTasks map[string]*Task
}

// NewJSONTracer creates a JSONTracer that writes into w. The array is only
// complete after Close.
func NewJSONTracer(timeTeller sim.TimeTeller, w io.Writer) *JSONTracer {
	t := &JSONTracer{
		timeTeller:    timeTeller,
		w:             w,
		firstTask:     true,
		inflightTasks: make(map[string]*Task),
	}

	t.mustWrite([]byte("[\n"))

	return t
}

// StartTask records the start of a task
func (t *JSONTracer) StartTask(task Task) {
	task.StartTime = t.timeTeller.CurrentTime()

	t.lock.Lock()
	t.inflightTasks[task.ID] = &task
	t.lock.Unlock()
}

// StepTask records the moment that a task reaches a milestone
func (t *JSONTracer) StepTask(task Task) {
	t.lock.Lock()
	defer t.lock.Unlock()

	originalTask, ok := t.inflightTasks[task.ID]
	if !ok {
		return
	}

	for _, step := range task.Steps {
		step.Time = t.timeTeller.CurrentTime()
		originalTask.Steps = append(originalTask.Steps, step)
	}
}

// EndTask records the time that a task is completed.
func (t *JSONTracer) EndTask(task Task) {
	t.lock.Lock()
	defer t.lock.Unlock()

	originalTask, ok := t.inflightTasks[task.ID]
	if !ok {
		return
	}

	originalTask.EndTime = t.timeTeller.CurrentTime()
	delete(t.inflightTasks, task.ID)

	if t.firstTask {
		t.firstTask = false
	} else {
		t.mustWrite([]byte(",\n"))
	}

	b, err := json.Marshal(originalTask)
	if err != nil {
		panic(err)
	}

	t.mustWrite(b)
}

// Close terminates the JSON array. Tasks that have not ended are not written.
// It does not close the underlying writer.
func (t *JSONTracer) Close() {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.closed {
		return
	}

	t.closed = true
	t.mustWrite([]byte("\n]\n"))
}

func (t *JSONTracer) mustWrite(b []byte) {
	_, err := t.w.Write(b)
	if err != nil {
		panic(err)
	}
}
