// Package scheduler runs tasks on cron or fixed-interval schedules.
//
// rainbow's watch mode uses it to re-run demonstrations periodically.
//
// Basic Usage:
//
//	s, err := scheduler.New()
//	if err != nil {
//		return err
//	}
//	defer func() { <-s.Stop() }()
//
//	task := workerpool.TaskFunc(func(ctx context.Context) error {
//		fmt.Println("Task executed!")
//		return nil
//	})
//
//	s.ScheduleCron("report", "*/5 * * * *", task)
//	s.ScheduleRepeating("heartbeat", task, 30*time.Second)
//	s.Start()
//
// Cron Expressions:
//
// Expressions are parsed with github.com/robfig/cron/v3. Five fields
// (minute hour day month weekday), an optional leading seconds field, and
// descriptors are accepted:
//
//	"0 */2 * * *"      every 2 hours
//	"30 14 * * 1-5"    2:30 PM on weekdays
//	"*/10 * * * * *"   every 10 seconds
//	"@hourly"          every hour
//	"@every 90s"       every 90 seconds
//
// ValidateCron and NextRuns check an expression without scheduling it.
//
// Execution:
//
// Due tasks are submitted to an internal worker pool sized by Config.Workers.
// An activation that arrives while the previous run of the same task is still
// queued or executing is skipped. Stop cancels the context passed to running
// tasks and waits for them to return.
package scheduler
