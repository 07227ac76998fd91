package workerpool

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"
)

// Submit adds a task to the pool for execution.
// The task will be executed with context.Background().
// Use SubmitWithContext to provide a custom context.
func (p *workerPool) Submit(task Task) error {
	return p.SubmitWithContext(context.Background(), task)
}

// SubmitWithContext adds a task to the pool for execution with the given context.
// If the pool has a TaskTimeout configured, the effective timeout is the
// minimum of the context deadline and TaskTimeout.
func (p *workerPool) SubmitWithContext(ctx context.Context, task Task) error {
	if task == nil {
		return ErrNilTask
	}
	if ctx == nil {
		ctx = context.Background()
	}

	p.mu.RLock()
	if p.isShutdown {
		p.mu.RUnlock()
		return ErrPoolShutdown
	}
	p.submitWg.Add(1)
	p.mu.RUnlock()
	defer p.submitWg.Done()

	// A pre-canceled context is never queued.
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("cannot submit task: %w", err)
	}

	select {
	case p.taskQueue <- taskWithContext{task: task, ctx: ctx}:
		return nil
	case <-p.shutdownCh:
		return ErrPoolShutdown
	case <-ctx.Done():
		return fmt.Errorf("cannot submit task: %w", ctx.Err())
	}
}

// Results returns a channel of task results.
func (p *workerPool) Results() <-chan Result {
	return p.resultQueue
}

// Shutdown initiates a graceful shutdown of the pool.
func (p *workerPool) Shutdown() <-chan struct{} {
	p.shutdownOnce.Do(func() {
		p.mu.Lock()
		p.isShutdown = true
		p.mu.Unlock()

		close(p.shutdownCh)

		go func() {
			p.submitWg.Wait()
			close(p.taskQueue)
			p.workerWg.Wait()
			close(p.resultQueue)
			if m := p.config.Metrics; m != nil {
				m.WorkerPoolSize.WithLabelValues(p.config.Name).Set(0)
			}
			close(p.done)
		}()
	})

	return p.done
}

// Size returns the number of workers in the pool.
func (p *workerPool) Size() int {
	return p.config.WorkerCount
}

// QueueSize returns the current number of queued tasks waiting for execution.
func (p *workerPool) QueueSize() int {
	return len(p.taskQueue)
}

// work is the main loop for a worker. It exits once the task queue is closed
// and drained.
func (p *workerPool) work(id int) {
	defer p.workerWg.Done()

	for twc := range p.taskQueue {
		p.resultQueue <- p.execute(id, twc)
	}
}

// execute runs a single task, converting a panic into the result's error.
func (p *workerPool) execute(id int, twc taskWithContext) (result Result) {
	start := time.Now()
	result = Result{Task: twc.task, WorkerID: id}

	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Errorf("task panicked: %v\nStack trace:\n%s", r, debug.Stack())
		}
		result.Duration = time.Since(start)

		if m := p.config.Metrics; m != nil {
			m.TasksExecuted.WithLabelValues(p.config.Name).Inc()
			if result.Error != nil {
				m.TasksFailed.WithLabelValues(p.config.Name).Inc()
			}
		}
		if p.config.OnTaskComplete != nil {
			p.config.OnTaskComplete(id, result)
		}
	}()

	ctx := twc.ctx
	if p.config.TaskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.TaskTimeout)
		defer cancel()
	}

	result.Error = twc.task.Execute(ctx)
	return result
}
