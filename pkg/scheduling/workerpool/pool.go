package workerpool

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vnykmshr/rainbow/pkg/common/validation"
	"github.com/vnykmshr/rainbow/pkg/metrics"
)

var (
	// ErrPoolShutdown is returned when submitting to a pool that has been shut down.
	ErrPoolShutdown = errors.New("worker pool has been shut down")

	// ErrNilTask is returned when submitting a nil task.
	ErrNilTask = errors.New("task cannot be nil")
)

// Task represents a unit of work that can be executed by a worker.
type Task interface {
	// Execute runs the task with the given context.
	// It should respect context cancellation and return any error encountered.
	Execute(ctx context.Context) error
}

// TaskFunc is a function type that implements the Task interface.
type TaskFunc func(ctx context.Context) error

// Execute implements the Task interface for TaskFunc.
func (f TaskFunc) Execute(ctx context.Context) error {
	return f(ctx)
}

// Result represents the result of a task execution.
type Result struct {
	// Task is the original task that was executed
	Task Task

	// Error is any error that occurred during task execution
	Error error

	// Duration is how long the task took to execute
	Duration time.Duration

	// WorkerID identifies which worker executed the task
	WorkerID int
}

// Pool executes tasks concurrently on a fixed set of workers.
//
// Every accepted task produces exactly one Result. Callers must drain Results
// until it is closed, which happens once Shutdown has been called and every
// accepted task has finished.
type Pool interface {
	// Submit adds a task to the pool for execution.
	Submit(task Task) error

	// SubmitWithContext adds a task to the pool. ctx bounds the wait for queue
	// space and is passed to the task's Execute method.
	SubmitWithContext(ctx context.Context, task Task) error

	// Results returns a channel of task results.
	Results() <-chan Result

	// Shutdown stops accepting tasks. Queued tasks still run.
	// The returned channel closes when every worker has exited.
	Shutdown() <-chan struct{}

	// Size returns the number of workers in the pool.
	Size() int

	// QueueSize returns the current number of queued tasks waiting for execution.
	QueueSize() int
}

// Config holds configuration options for creating a worker pool.
type Config struct {
	// Name labels the pool's metrics.
	// Default: "default"
	Name string

	// WorkerCount is the number of workers in the pool. Must be greater than 0.
	WorkerCount int

	// QueueSize is the number of tasks that can wait for a free worker.
	// Zero means Submit blocks until a worker takes the task.
	QueueSize int

	// TaskTimeout bounds each task's execution. Zero means no timeout.
	TaskTimeout time.Duration

	// Metrics receives task counts and pool size. Nil disables instrumentation.
	Metrics *metrics.Registry

	// OnTaskComplete is called by the worker after each task, before the
	// result is delivered.
	OnTaskComplete func(workerID int, result Result)
}

type taskWithContext struct {
	task Task
	ctx  context.Context
}

// workerPool implements the Pool interface.
type workerPool struct {
	config Config

	taskQueue   chan taskWithContext
	resultQueue chan Result
	shutdownCh  chan struct{}
	done        chan struct{}

	mu           sync.RWMutex
	isShutdown   bool
	shutdownOnce sync.Once

	// submitWg tracks Submit calls in flight so the task queue is closed
	// only after the last sender has returned.
	submitWg sync.WaitGroup
	workerWg sync.WaitGroup
}

// New creates a new worker pool with the specified number of workers and queue size.
func New(workerCount, queueSize int) (Pool, error) {
	return NewWithConfig(Config{
		WorkerCount: workerCount,
		QueueSize:   queueSize,
	})
}

// NewWithConfig creates a new worker pool with the specified configuration.
func NewWithConfig(config Config) (Pool, error) {
	if err := validation.ValidatePositive("workerpool", "worker count", config.WorkerCount); err != nil {
		return nil, err
	}
	if err := validation.ValidateNonNegativeInt("workerpool", "queue size", config.QueueSize); err != nil {
		return nil, err
	}
	if config.Name == "" {
		config.Name = "default"
	}

	pool := &workerPool{
		config:      config,
		taskQueue:   make(chan taskWithContext, config.QueueSize),
		resultQueue: make(chan Result, config.WorkerCount),
		shutdownCh:  make(chan struct{}),
		done:        make(chan struct{}),
	}

	for i := 0; i < config.WorkerCount; i++ {
		pool.workerWg.Add(1)
		go pool.work(i)
	}

	if m := config.Metrics; m != nil {
		m.WorkerPoolSize.WithLabelValues(config.Name).Set(float64(config.WorkerCount))
	}

	return pool, nil
}
