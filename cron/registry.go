package cron

import (
	"context"
	"sort"
	"sync"

	"eyewear.GO/core/registry"
	catalogService "eyewear.GO/service/catalog"
	"eyewear.GO/service/search"
)

// Deps are handed to every job run. Indexer may be nil.
type Deps struct {
	Catalog *catalogService.Service
	Indexer *search.Indexer
}

// Job holds schedule and run function.
type Job struct {
	Schedule string
	Run      func(ctx context.Context, deps *Deps) error
}

var mu sync.Mutex

// Register adds a cron job. Call from init(). Panics if registry is locked.
func Register(name string, schedule string, run func(ctx context.Context, deps *Deps) error) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCron) {
		panic("cron/registry: locked (register only during init before StartCron)")
	}
	jobs := getJobs()
	if _, ok := jobs[name]; ok {
		panic("cron/registry: duplicate job " + name)
	}
	jobs[name] = Job{Schedule: schedule, Run: run}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCron, jobs)
}

// Unregister removes a job (for tests).
func Unregister(name string) {
	mu.Lock()
	defer mu.Unlock()
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCron)
	jobs := getJobs()
	delete(jobs, name)
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCron, jobs)
}

func getJobs() map[string]Job {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCron); ok && v != nil {
		return v.(map[string]Job)
	}
	return make(map[string]Job)
}

// Jobs returns a copy of all registered jobs.
// Locks the cron registry on first call (immutable after).
func Jobs() map[string]Job {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]Job)
	for k, v := range getJobs() {
		out[k] = v
	}
	if !registry.GlobalRegistry.IsLocked(registry.KeyRegistryCron) {
		registry.GlobalRegistry.Lock(registry.KeyRegistryCron)
	}
	return out
}

// Names returns the registered job names, sorted.
func Names() []string {
	jobs := Jobs()
	names := make([]string, 0, len(jobs))
	for n := range jobs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
