package scheduling

import (
	"log"

	"github.com/sarchlab/tiersim/datarecording"
	"github.com/sarchlab/tiersim/sim"
)

// A Builder can build Schedulers.
type Builder struct {
	engine   sim.Engine
	accessor Accessor
	recorder datarecording.DataRecorder
}

// MakeBuilder returns a Builder without an engine or an accessor.
func MakeBuilder() Builder {
	return Builder{}
}

// WithEngine sets the engine that drives the clock.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithAccessor sets the memory hierarchy that serves the accesses.
func (b Builder) WithAccessor(accessor Accessor) Builder {
	b.accessor = accessor
	return b
}

// WithRecorder makes the Scheduler record every access and every process.
func (b Builder) WithRecorder(recorder datarecording.DataRecorder) Builder {
	b.recorder = recorder
	return b
}

// Build creates a Scheduler. The engine defaults to a new SerialEngine. An
// accessor is required.
func (b Builder) Build(name string) *Scheduler {
	if b.accessor == nil {
		log.Panic("a scheduler requires an accessor")
	}

	s := &Scheduler{
		NamedBase: sim.MakeNamedBase(name),
		engine:    b.engine,
		accessor:  b.accessor,
		recorder:  b.recorder,
	}

	if s.engine == nil {
		s.engine = sim.NewSerialEngine()
	}

	if s.recorder != nil {
		s.recorder.CreateTable(AccessTableName, AccessEntry{})
		s.recorder.CreateTable(ProcessTableName, ProcessEntry{})
	}

	return s
}
