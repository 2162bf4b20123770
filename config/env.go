package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadEnv.
const (
	EnvCacheCapacity = "TIERSIM_CACHE_CAPACITY"
	EnvPageCapacity  = "TIERSIM_PAGE_CAPACITY"
	EnvDiskCapacity  = "TIERSIM_DISK_CAPACITY"
	EnvDB            = "TIERSIM_DB"
	EnvMonitorPort   = "TIERSIM_MONITOR_PORT"
)

// Env holds the defaults taken from the environment. Zero values mean the
// variable was not set.
type Env struct {
	CacheCapacity *int
	PageCapacity  *int
	DiskCapacity  *int
	DB            string
	MonitorPort   int
}

// LoadEnv loads the given dotenv files, or .env if it exists, and reads the
// TIERSIM_ variables. Variables already set in the process environment win
// over the files.
func LoadEnv(files ...string) (Env, error) {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			files = []string{".env"}
		}
	}

	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return Env{}, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	var (
		env Env
		err error
	)

	if env.CacheCapacity, err = lookupInt(EnvCacheCapacity); err != nil {
		return Env{}, err
	}

	if env.PageCapacity, err = lookupInt(EnvPageCapacity); err != nil {
		return Env{}, err
	}

	if env.DiskCapacity, err = lookupInt(EnvDiskCapacity); err != nil {
		return Env{}, err
	}

	port, err := lookupInt(EnvMonitorPort)
	if err != nil {
		return Env{}, err
	}

	if port != nil {
		env.MonitorPort = *port
	}

	env.DB = os.Getenv(EnvDB)

	return env, nil
}

func lookupInt(name string) (*int, error) {
	val, ok := os.LookupEnv(name)
	if !ok || val == "" {
		return nil, nil
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer: %w", name, err)
	}

	return &n, nil
}

// Apply overrides the capacities of w with the ones set in the environment.
func (e Env) Apply(w *Workload) {
	if e.CacheCapacity != nil {
		w.Cache = *e.CacheCapacity
	}

	if e.PageCapacity != nil {
		w.Page = *e.PageCapacity
	}

	if e.DiskCapacity != nil {
		w.Disk = *e.DiskCapacity
	}
}
