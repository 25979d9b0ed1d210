package cron

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	robfig "github.com/robfig/cron/v3"

	"chatshop.GO/core/registry"
)

// Job is a named background task. Schedule is a five-field cron spec or a
// descriptor such as "@every 1m".
type Job struct {
	Name     string
	Schedule string
	Run      func(ctx context.Context) error

	spec robfig.Schedule
}

// Next reports the first activation strictly after t.
func (j Job) Next(t time.Time) time.Time {
	return j.spec.Next(t)
}

var mu sync.Mutex

// ParseSchedule validates a schedule the way the scheduler will read it.
func ParseSchedule(schedule string) (robfig.Schedule, error) {
	spec, err := robfig.ParseStandard(schedule)
	if err != nil {
		return nil, errors.Wrapf(err, "cron schedule %q", schedule)
	}
	return spec, nil
}

// Register adds a job under a lower-case name. It panics when the registry is
// locked, the name is taken or the schedule does not parse, so mistakes
// surface at startup instead of on the first tick.
func Register(name, schedule string, run func(ctx context.Context) error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || run == nil {
		panic("cron/registry: job needs a name and a run function")
	}
	spec, err := ParseSchedule(schedule)
	if err != nil {
		panic("cron/registry: " + name + ": " + err.Error())
	}

	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCron) {
		panic("cron/registry: locked (register before StartCron)")
	}
	jobs := getJobs()
	if _, ok := jobs[name]; ok {
		panic("cron/registry: duplicate job " + name)
	}
	jobs[name] = Job{Name: name, Schedule: schedule, Run: run, spec: spec}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCron, jobs)
}

// Unregister removes a job and reopens the registry. Tests only.
func Unregister(name string) {
	mu.Lock()
	defer mu.Unlock()
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCron)
	jobs := getJobs()
	delete(jobs, strings.ToLower(name))
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCron, jobs)
}

func getJobs() map[string]Job {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCron); ok && v != nil {
		return v.(map[string]Job)
	}
	return make(map[string]Job)
}

// Jobs returns the registered jobs ordered by name and locks the registry.
func Jobs() []Job {
	mu.Lock()
	defer mu.Unlock()
	jobs := getJobs()
	out := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Name < out[k].Name })
	registry.GlobalRegistry.Lock(registry.KeyRegistryCron)
	return out
}

// Lookup finds a registered job by name, ignoring case.
func Lookup(name string) (Job, bool) {
	mu.Lock()
	defer mu.Unlock()
	j, ok := getJobs()[strings.ToLower(name)]
	return j, ok
}
