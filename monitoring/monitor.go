// Package monitoring exposes a running simulation over HTTP.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/tiersim/mem/tiered"
	"github.com/sarchlab/tiersim/monitoring/web"
	"github.com/sarchlab/tiersim/scheduling"
	"github.com/sarchlab/tiersim/sim"
)

// ProcessBarName is the name of the bar that tracks process completion.
const ProcessBarName = "processes"

// Monitor turns a simulation into a server that can be watched from a
// browser. Hooks copy the simulation state on the simulation goroutine; HTTP
// handlers only read the copies.
type Monitor struct {
	portNumber int

	engine    sim.Engine
	store     *tiered.Store
	scheduler *scheduling.Scheduler

	// Written from hooks only.
	processStates map[int]string
	processBar    *ProgressBar

	stateLock sync.RWMutex
	state     State
	counts    map[string]uint64

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar

	server   *http.Server
	listener net.Listener
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{
		processStates: make(map[int]string),
		counts:        make(map[string]uint64),
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterEngine lets the monitor follow the clock of the engine.
func (m *Monitor) RegisterEngine(e sim.Engine) {
	m.engine = e
	e.AcceptHook(m)
}

// RegisterStore lets the monitor report the content of the tiers.
func (m *Monitor) RegisterStore(s *tiered.Store) {
	m.store = s
	s.AcceptHook(m)
	m.refresh()
}

// RegisterScheduler lets the monitor report the processes and the hit counts.
func (m *Monitor) RegisterScheduler(s *scheduling.Scheduler) {
	m.scheduler = s
	s.AcceptHook(m)
	m.refresh()
}

// Func updates the copy of the simulation state.
func (m *Monitor) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case sim.HookPosAfterEvent:
		m.refresh()
	case tiered.HookPosAccess:
		m.refreshTiers()
	case scheduling.HookPosProcessStart:
		m.processStarted(ctx.Item.(*scheduling.Process))
	case scheduling.HookPosProcessEnd:
		m.processEnded(ctx.Item.(*scheduling.Process))
	}
}

func (m *Monitor) processStarted(p *scheduling.Process) {
	if m.processBar == nil {
		m.processBar = m.CreateProgressBar(
			ProcessBarName, uint64(m.scheduler.NumProcesses()))
	}

	m.processStates[p.ID] = ProcessRunning
	m.processBar.IncrementInProgress(1)
	m.refresh()
}

func (m *Monitor) processEnded(p *scheduling.Process) {
	m.processStates[p.ID] = ProcessDone
	m.processBar.MoveInProgressToFinished(1)
	m.refresh()
}

func (m *Monitor) refresh() {
	m.refreshTiers()

	m.stateLock.Lock()
	defer m.stateLock.Unlock()

	if m.engine != nil {
		m.state.Now = uint64(m.engine.CurrentTime())
	}

	if m.scheduler != nil {
		m.state.Hits = m.scheduler.HitCounts()
		m.state.Processes = processStatuses(
			m.scheduler.Processes(), m.processStates)
	}
}

func (m *Monitor) refreshTiers() {
	if m.store == nil {
		return
	}

	snapshot := m.store.Snapshot()
	tiers := tierStatuses(snapshot)
	counts := countsOf(snapshot)

	m.stateLock.Lock()
	defer m.stateLock.Unlock()

	m.state.Tiers = tiers
	m.counts = counts
}

// State returns the latest copy of the simulation state.
func (m *Monitor) State() State {
	m.stateLock.RLock()
	defer m.stateLock.RUnlock()

	return m.state
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        sim.GetIDGenerator().Generate(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Handler returns the router that serves the API and the web page.
func (m *Monitor) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/tiers", m.tiers)
	r.HandleFunc("/api/counts", m.listCounts)
	r.HandleFunc("/api/hits", m.hits)
	r.HandleFunc("/api/processes", m.processes)
	r.HandleFunc("/api/process/{id:[0-9]+}", m.processDetail)
	r.HandleFunc("/api/state", m.listState)
	r.HandleFunc("/api/state/{field}", m.listStateField)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts the monitor as a web server in the background.
func (m *Monitor) StartServer() error {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	if err != nil {
		return fmt.Errorf("cannot start monitoring server: %w", err)
	}

	m.listener = listener
	m.server = &http.Server{
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", m.URL())

	go func() {
		err := m.server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("monitoring server stopped: %v", err)
		}
	}()

	return nil
}

// URL returns the address of the running server.
func (m *Monitor) URL() string {
	if m.listener == nil {
		return ""
	}

	port := m.listener.Addr().(*net.TCPAddr).Port

	return fmt.Sprintf("http://localhost:%d", port)
}

// OpenBrowser opens the web page of the running server.
func (m *Monitor) OpenBrowser() error {
	if m.listener == nil {
		return errors.New("monitoring server is not running")
	}

	return browser.OpenURL(m.URL())
}

// Stop shuts the server down.
func (m *Monitor) Stop(ctx context.Context) error {
	if m.server == nil {
		return nil
	}

	return m.server.Shutdown(ctx)
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, struct {
		Now uint64 `json:"now"`
	}{m.State().Now})
}

func (m *Monitor) tiers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, m.State().Tiers)
}

func (m *Monitor) listCounts(w http.ResponseWriter, _ *http.Request) {
	m.stateLock.RLock()
	defer m.stateLock.RUnlock()

	writeJSON(w, m.counts)
}

func (m *Monitor) hits(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, m.State().Hits)
}

func (m *Monitor) processes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, m.State().Processes)
}

func (m *Monitor) processDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	dieOnErr(err)

	for _, p := range m.State().Processes {
		if p.ID == id {
			writeJSON(w, p)
			return
		}
	}

	w.WriteHeader(http.StatusNotFound)
	_, err = w.Write([]byte("Process not found"))
	dieOnErr(err)
}

func (m *Monitor) listState(w http.ResponseWriter, _ *http.Request) {
	state := m.State()

	serializer := goseth.NewSerializer()
	serializer.SetRoot(&state)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) listStateField(w http.ResponseWriter, r *http.Request) {
	fields := strings.Split(mux.Vars(r)["field"], ".")
	state := m.State()

	serializer := goseth.NewSerializer()
	serializer.SetRoot(&state)
	serializer.SetMaxDepth(1)

	err := serializer.SetEntryPoint(fields)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)

		return
	}

	err = serializer.Serialize(w)
	dieOnErr(err)
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	statuses := make([]progressBarStatus, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		statuses = append(statuses, b.status())
	}
	m.progressBarsLock.Unlock()

	writeJSON(w, statuses)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, r *http.Request) {
	duration := time.Second
	if d := r.URL.Query().Get("duration"); d != "" {
		parsed, err := time.ParseDuration(d)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "Error: %s", err)

			return
		}

		duration = parsed
	}

	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprintf(w, "Error: %s", err)

		return
	}

	time.Sleep(duration)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
