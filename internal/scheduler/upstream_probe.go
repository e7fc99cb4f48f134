package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

const probeTimeout = 10 * time.Second

var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Pinger reports whether the books API answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProbeStatus is the outcome of the most recent probe run.
type ProbeStatus struct {
	Checked   bool
	CheckedAt time.Time
	Err       error
}

// Summary renders the status the way health checks are reported.
func (s ProbeStatus) Summary() string {
	switch {
	case !s.Checked:
		return "pending"
	case s.Err != nil:
		return "error: " + s.Err.Error()
	default:
		return "ok (checked " + s.CheckedAt.Format(time.RFC3339) + ")"
	}
}

// UpstreamProbe pings the books API on a cron schedule and remembers the
// last result.
type UpstreamProbe struct {
	pinger   Pinger
	schedule string

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
	status    ProbeStatus
	now       func() time.Time
}

func NewUpstreamProbe(pinger Pinger, schedule string) *UpstreamProbe {
	return &UpstreamProbe{
		pinger:   pinger,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(scheduleParser)),
		now:      time.Now,
	}
}

// Start schedules the probe and runs it once right away so health has a
// result before the first tick.
func (p *UpstreamProbe) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isRunning {
		return nil
	}

	if err := ValidateSchedule(p.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", p.schedule, err)
	}

	entryID, err := p.cron.AddFunc(p.schedule, func() {
		p.RunNow(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule upstream probe: %w", err)
	}
	p.entryID = entryID

	p.cron.Start()
	p.isRunning = true

	slog.Info("Upstream probe started",
		"schedule", p.schedule,
		"description", DescribeSchedule(p.schedule),
		"next_run", p.nextRunLocked())

	go p.RunNow(ctx)

	go func() {
		<-ctx.Done()
		p.Stop()
	}()

	return nil
}

// Stop waits for a running probe to finish.
func (p *UpstreamProbe) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.isRunning {
		return
	}

	<-p.cron.Stop().Done()
	p.isRunning = false

	slog.Info("Upstream probe stopped")
}

// RunNow pings the API and records the outcome.
func (p *UpstreamProbe) RunNow(ctx context.Context) ProbeStatus {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	err := p.pinger.Ping(ctx)
	status := ProbeStatus{Checked: true, CheckedAt: p.now(), Err: err}

	if err != nil {
		slog.Warn("Books API unreachable", "error", err)
	} else {
		slog.Debug("Books API reachable")
	}

	p.mu.Lock()
	p.status = status
	p.mu.Unlock()
	return status
}

func (p *UpstreamProbe) Status() ProbeStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

func (p *UpstreamProbe) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.isRunning
}

// NextRun returns when the probe fires next, or nil when stopped.
func (p *UpstreamProbe) NextRun() *time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.nextRunLocked()
}

func (p *UpstreamProbe) nextRunLocked() *time.Time {
	if !p.isRunning {
		return nil
	}
	for _, entry := range p.cron.Entries() {
		if entry.ID == p.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := scheduleParser.Parse(schedule)
	return err
}

// DescribeSchedule returns a human-readable description of common schedules.
func DescribeSchedule(schedule string) string {
	switch schedule {
	case "*/5 * * * *":
		return "Every 5 minutes"
	case "*/15 * * * *":
		return "Every 15 minutes"
	case "*/30 * * * *":
		return "Every 30 minutes"
	case "0 * * * *":
		return "Every hour at :00"
	case "0 0 * * *":
		return "Daily at midnight"
	default:
		return "Custom schedule: " + schedule
	}
}
