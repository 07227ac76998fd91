/*
Package workerpool provides a fixed-size worker pool.

A worker pool manages a fixed number of worker goroutines that execute tasks
concurrently. rainbow uses it to run independent demonstrations side by side.

Basic usage:

	pool, err := workerpool.New(4, 100) // 4 workers, queue size 100
	if err != nil {
		return err
	}

	go func() {
		defer pool.Shutdown()
		for _, task := range tasks {
			if err := pool.Submit(task); err != nil {
				log.Printf("Failed to submit: %v", err)
			}
		}
	}()

	for result := range pool.Results() {
		if result.Error != nil {
			log.Printf("Task failed: %v", result.Error)
		}
	}

Every accepted task produces exactly one Result, and the Results channel is
closed after Shutdown once all accepted tasks have finished. Workers block
while delivering results, so the caller must keep draining Results.

Task Interface:

	type Task interface {
		Execute(ctx context.Context) error
	}

The TaskFunc type adapts plain functions. Tasks that carry their own output
can be recovered from Result.Task with a type assertion.

Configuration:

	pool, err := workerpool.NewWithConfig(workerpool.Config{
		Name:        "demos",
		WorkerCount: 8,
		QueueSize:   16,
		TaskTimeout: 30 * time.Second,
		Metrics:     metrics.DefaultRegistry,
	})

Panics inside a task are recovered and reported as the task's error,
including the stack trace.
*/
package workerpool
