package tracing

// A Tracer can collect task traces. Tracers stamp the times themselves,
// reading the clock when they are notified.
type Tracer interface {
	StartTask(task Task)
	StepTask(task Task)
	EndTask(task Task)
}
