package cache

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Janitor periodically sweeps both cache namespaces so entries nobody reads
// again do not accumulate. It is advisory: Get performs lazy expiration on its
// own, so a delayed or stopped janitor never affects what readers observe.
type Janitor struct {
	scheduler *gocron.Scheduler
	manager   *Manager
	interval  time.Duration
}

// NewJanitor creates a stopped janitor that will sweep manager every interval.
func NewJanitor(manager *Manager, interval time.Duration) (*Janitor, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: non-positive cleanup interval %v", ErrInvalidConfig, interval)
	}
	return &Janitor{
		scheduler: gocron.NewScheduler(time.UTC),
		manager:   manager,
		interval:  interval,
	}, nil
}

// Start schedules the periodic sweep and starts the underlying scheduler.
func (j *Janitor) Start() error {
	_, err := j.scheduler.Every(j.interval).Do(func() {
		if removed := j.manager.SweepExpired(); removed > 0 {
			log.Printf("cache janitor: removed %d expired entries", removed)
		}
	})
	if err != nil {
		return err
	}

	j.scheduler.StartAsync()
	return nil
}

// Stop cancels future sweeps. An in-flight sweep runs to completion.
func (j *Janitor) Stop() {
	if j.scheduler != nil {
		j.scheduler.Stop()
	}
}
