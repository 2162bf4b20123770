package scheduling

// Table names used when a DataRecorder is attached to a Scheduler.
const (
	AccessTableName  = "tiersim_access"
	ProcessTableName = "tiersim_process"
)

// AccessEntry is the row recorded for every access.
type AccessEntry struct {
	Process int
	Index   int
	Address string
	FoundIn string
	Start   uint64
	Latency uint64
}

// ProcessEntry is the row recorded for every completed process.
type ProcessEntry struct {
	ID        int
	Arrival   uint64
	Start     uint64
	End       uint64
	Execution uint64
	Accesses  int
}
