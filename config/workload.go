// Package config loads workloads and environment defaults for tiersim.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/tiersim/mem/tiered"
	"github.com/sarchlab/tiersim/scheduling"
	"github.com/sarchlab/tiersim/sim"
)

type constError string

func (errStr constError) Error() string { return string(errStr) }

// ErrInvalidWorkload is wrapped by every validation error of a Workload.
const ErrInvalidWorkload = constError("invalid workload")

// Default capacities of the tiers.
const (
	DefaultCacheCapacity = 20
	DefaultPageCapacity  = 40
	DefaultDiskCapacity  = 80
)

// Process is a process as written in a workload file.
type Process struct {
	Arrival   uint64   `yaml:"arrival"`
	Addresses []string `yaml:"addresses"`
}

// Workload describes the hierarchy and the processes of one run.
type Workload struct {
	Cache     int       `yaml:"cache"`
	Page      int       `yaml:"page"`
	Disk      int       `yaml:"disk"`
	Processes []Process `yaml:"processes"`
}

// DefaultWorkload returns a workload with the default capacities and no
// process.
func DefaultWorkload() *Workload {
	return &Workload{
		Cache: DefaultCacheCapacity,
		Page:  DefaultPageCapacity,
		Disk:  DefaultDiskCapacity,
	}
}

// LoadWorkload reads a YAML workload file. Capacities missing from the file
// keep the values of base, or the defaults if base is nil.
func LoadWorkload(path string, base *Workload) (*Workload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workload file: %w", err)
	}
	defer f.Close()

	return ParseWorkload(f, base)
}

// ParseWorkload decodes a YAML workload and validates it.
func ParseWorkload(r io.Reader, base *Workload) (*Workload, error) {
	w := DefaultWorkload()
	if base != nil {
		*w = *base
		w.Processes = append([]Process(nil), base.Processes...)
	}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	err := dec.Decode(w)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse workload: %w", err)
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}

	return w, nil
}

// Validate reports negative capacities and empty addresses.
func (w *Workload) Validate() error {
	err := tiered.ValidateCapacities(w.Cache, w.Page, w.Disk)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidWorkload, err)
	}

	for i, p := range w.Processes {
		for j, a := range p.Addresses {
			if a == "" {
				return fmt.Errorf("%w: process %d address %d is empty",
					ErrInvalidWorkload, i+1, j)
			}
		}
	}

	return nil
}

// StoreBuilder returns a tiered.Builder with the capacities of the workload.
func (w *Workload) StoreBuilder() tiered.Builder {
	return tiered.MakeBuilder().WithCapacities(w.Cache, w.Page, w.Disk)
}

// Register adds every process of the workload to the scheduler, in file
// order.
func (w *Workload) Register(s *scheduling.Scheduler) {
	for _, p := range w.Processes {
		addrs := make([]tiered.Address, len(p.Addresses))
		for i, a := range p.Addresses {
			addrs[i] = tiered.Address(a)
		}

		s.RegisterProcess(sim.VTimeInCycle(p.Arrival), addrs)
	}
}

// DemoWorkload returns the demonstration run: the default capacities, a
// process at time 0 that touches A0 to A49, and five short processes
// arriving shortly after.
func DemoWorkload() *Workload {
	w := DefaultWorkload()

	preload := make([]string, 50)
	for i := range preload {
		preload[i] = fmt.Sprintf("A%d", i)
	}

	w.Processes = []Process{
		{Arrival: 0, Addresses: preload},
		{Arrival: 1, Addresses: []string{
			"A0", "A1", "A2", "A0", "A3", "A1", "A4", "A2", "A5", "A3"}},
		{Arrival: 2, Addresses: []string{
			"A6", "A7", "A0", "A8", "A1", "A9", "A2", "A10", "A3", "A11"}},
		{Arrival: 4, Addresses: []string{
			"A12", "A13", "A4", "A14", "A5", "A15", "A6", "A16", "A7", "A17"}},
		{Arrival: 6, Addresses: []string{
			"A18", "A19", "A0", "A20", "A1", "A21", "A12", "A22", "A13", "A23"}},
		{Arrival: 8, Addresses: []string{
			"A24", "A25", "A26", "A24", "A27", "A25", "A28", "A26", "A29", "A27"}},
	}

	return w
}
