/*
Package scheduling provides task execution primitives for rainbow.

  - workerpool: Fixed worker pool for concurrent task execution
  - scheduler: Cron and interval scheduling on top of a worker pool

Worker Pool:

	pool, err := workerpool.New(4, 100) // 4 workers, queue size 100
	if err != nil {
		return err
	}

	go func() {
		defer pool.Shutdown()
		_ = pool.Submit(workerpool.TaskFunc(func(ctx context.Context) error {
			return nil
		}))
	}()

	for result := range pool.Results() {
		// ...
	}

Task Scheduler:

	s, err := scheduler.New()
	if err != nil {
		return err
	}

	_ = s.ScheduleRepeating("heartbeat", task, time.Minute)
	_ = s.ScheduleCron("report", "0 9 * * MON-FRI", task) // Weekdays at 9 AM
	_ = s.Start()
	defer func() { <-s.Stop() }()

All scheduling components are safe for concurrent use and pass a context
to every task for cancellation and timeouts.
*/
package scheduling
