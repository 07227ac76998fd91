package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vnykmshr/rainbow/pkg/common/validation"
	"github.com/vnykmshr/rainbow/pkg/metrics"
	"github.com/vnykmshr/rainbow/pkg/scheduling/workerpool"
)

var (
	// ErrDuplicateTask is returned when scheduling an ID that is already scheduled.
	ErrDuplicateTask = errors.New("task already scheduled")

	// ErrAlreadyRunning is returned by Start on a running scheduler.
	ErrAlreadyRunning = errors.New("scheduler already running")

	// ErrStopped is returned by Start after Stop.
	ErrStopped = errors.New("scheduler stopped")
)

// Entry describes a scheduled task.
type Entry struct {
	ID       string
	Schedule string
	Next     time.Time
	Runs     int64
	Created  time.Time
}

// Scheduler runs tasks on cron or fixed-interval schedules.
type Scheduler interface {
	// ScheduleCron schedules task on a cron expression.
	// Examples:
	//   "*/5 * * * *"   - every 5 minutes
	//   "*/10 * * * * *" - every 10 seconds
	//   "@hourly"       - every hour
	//   "@every 30s"    - every 30 seconds
	ScheduleCron(id string, cronExpr string, task workerpool.Task) error

	// ScheduleRepeating schedules task every interval, starting one interval from now.
	ScheduleRepeating(id string, task workerpool.Task, interval time.Duration) error

	// Cancel removes a scheduled task. A run in progress is not interrupted.
	Cancel(id string) bool

	// List returns the scheduled tasks ordered by next activation.
	List() []Entry

	// Start begins dispatching due tasks.
	Start() error

	// Stop cancels running tasks' contexts and stops dispatching.
	// The returned channel closes once every in-flight run has finished.
	Stop() <-chan struct{}
}

// Config holds scheduler configuration.
type Config struct {
	// Workers is the number of tasks that may run at once. Default: 1
	Workers int

	// Location is used to evaluate cron expressions. Default: time.Local
	Location *time.Location

	// TickInterval is how often due tasks are checked. Default: 50ms
	TickInterval time.Duration

	// Metrics counts dispatched runs. Nil disables instrumentation.
	Metrics *metrics.Registry

	// Logger receives run failures and skipped activations. Default: slog.Default()
	Logger *slog.Logger

	// OnResult is called after each run with the task ID and its result.
	OnResult func(id string, result workerpool.Result)
}

type scheduledTask struct {
	id       string
	expr     string
	task     workerpool.Task
	schedule cron.Schedule
	next     time.Time
	created  time.Time
	runs     int64

	// running is set while a run is queued or executing; activations that
	// arrive meanwhile are skipped.
	running atomic.Bool
}

// run is what the pool executes for one activation.
type run struct {
	entry *scheduledTask
}

func (r run) Execute(ctx context.Context) error {
	return r.entry.task.Execute(ctx)
}

type scheduler struct {
	cfg  Config
	pool workerpool.Pool

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	tasks   map[string]*scheduledTask
	running bool
	stopped bool

	loopDone  chan struct{}
	drainDone chan struct{}
	stopDone  chan struct{}
	stopOnce  sync.Once
}

// New creates a scheduler with default configuration.
func New() (Scheduler, error) {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a scheduler with custom configuration.
func NewWithConfig(cfg Config) (Scheduler, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 50 * time.Millisecond
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	pool, err := workerpool.NewWithConfig(workerpool.Config{
		Name:        "scheduler",
		WorkerCount: cfg.Workers,
		QueueSize:   cfg.Workers,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &scheduler{
		cfg:       cfg,
		pool:      pool,
		ctx:       ctx,
		cancel:    cancel,
		tasks:     make(map[string]*scheduledTask),
		loopDone:  make(chan struct{}),
		drainDone: make(chan struct{}),
		stopDone:  make(chan struct{}),
	}
	go s.drain()

	return s, nil
}

func (s *scheduler) ScheduleCron(id string, cronExpr string, task workerpool.Task) error {
	schedule, err := ParseCron(cronExpr)
	if err != nil {
		return err
	}
	return s.add(id, cronExpr, task, schedule)
}

func (s *scheduler) ScheduleRepeating(id string, task workerpool.Task, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", interval)
	}
	return s.add(id, "@every "+interval.String(), task, everySchedule{interval: interval})
}

func (s *scheduler) add(id, expr string, task workerpool.Task, schedule cron.Schedule) error {
	if err := validation.ValidateNotEmpty("scheduler", "task ID", id); err != nil {
		return err
	}
	if task == nil {
		return workerpool.ErrNilTask
	}

	now := time.Now().In(s.cfg.Location)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateTask, id)
	}
	s.tasks[id] = &scheduledTask{
		id:       id,
		expr:     expr,
		task:     task,
		schedule: schedule,
		next:     schedule.Next(now),
		created:  now,
	}
	return nil
}

func (s *scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[id]; exists {
		delete(s.tasks, id)
		return true
	}
	return false
}

func (s *scheduler) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]Entry, 0, len(s.tasks))
	for _, t := range s.tasks {
		entries = append(entries, Entry{
			ID:       t.id,
			Schedule: t.expr,
			Next:     t.next,
			Runs:     t.runs,
			Created:  t.created,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Next.Equal(entries[j].Next) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].Next.Before(entries[j].Next)
	})

	return entries
}

func (s *scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrStopped
	}
	if s.running {
		return ErrAlreadyRunning
	}
	s.running = true

	go s.loop()
	return nil
}

func (s *scheduler) Stop() <-chan struct{} {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		wasRunning := s.running
		s.running = false
		s.stopped = true
		s.mu.Unlock()

		s.cancel()

		go func() {
			defer close(s.stopDone)
			if wasRunning {
				<-s.loopDone
			}
			<-s.pool.Shutdown()
			<-s.drainDone
		}()
	})

	return s.stopDone
}

func (s *scheduler) loop() {
	defer close(s.loopDone)

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.dispatchReady(time.Now().In(s.cfg.Location))
		}
	}
}

// dispatchReady submits every task whose activation time has passed and
// advances its schedule.
func (s *scheduler) dispatchReady(now time.Time) {
	s.mu.Lock()
	ready := make([]*scheduledTask, 0, len(s.tasks))
	for _, t := range s.tasks {
		if now.Before(t.next) {
			continue
		}
		t.next = t.schedule.Next(now)
		ready = append(ready, t)
	}
	s.mu.Unlock()

	for _, t := range ready {
		if !t.running.CompareAndSwap(false, true) {
			s.cfg.Logger.Warn("skipping activation, previous run still in progress", "task_id", t.id)
			continue
		}

		if err := s.pool.SubmitWithContext(s.ctx, run{entry: t}); err != nil {
			t.running.Store(false)
			if s.ctx.Err() == nil {
				s.cfg.Logger.Error("failed to dispatch scheduled task", "task_id", t.id, "error", err)
			}
			continue
		}

		s.mu.Lock()
		t.runs++
		s.mu.Unlock()

		if m := s.cfg.Metrics; m != nil {
			m.ScheduledRuns.WithLabelValues(t.id).Inc()
		}
	}
}

// drain consumes pool results until the pool shuts down.
func (s *scheduler) drain() {
	defer close(s.drainDone)

	for result := range s.pool.Results() {
		r := result.Task.(run)
		r.entry.running.Store(false)

		if result.Error != nil && !errors.Is(result.Error, context.Canceled) {
			s.cfg.Logger.Error("scheduled task failed",
				"task_id", r.entry.id,
				"duration", result.Duration,
				"error", result.Error,
			)
		}
		if s.cfg.OnResult != nil {
			s.cfg.OnResult(r.entry.id, result)
		}
	}
}
