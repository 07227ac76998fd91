package scheduler_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/vnykmshr/rainbow/pkg/scheduling/scheduler"
	"github.com/vnykmshr/rainbow/pkg/scheduling/workerpool"
)

func Example() {
	s, err := scheduler.New()
	if err != nil {
		log.Fatal(err)
	}

	ran := make(chan struct{}, 1)
	task := workerpool.TaskFunc(func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	if err := s.ScheduleRepeating("heartbeat", task, 10*time.Millisecond); err != nil {
		log.Fatal(err)
	}
	if err := s.Start(); err != nil {
		log.Fatal(err)
	}

	<-ran
	<-s.Stop()
	fmt.Println("heartbeat ran")

	// Output: heartbeat ran
}

func ExampleNextRuns() {
	from := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	runs, err := scheduler.NextRuns("30 14 * * 1-5", from, 2)
	if err != nil {
		log.Fatal(err)
	}
	for _, r := range runs {
		fmt.Println(r.Format(time.RFC1123))
	}

	// Output:
	// Mon, 01 Jan 2024 14:30:00 UTC
	// Tue, 02 Jan 2024 14:30:00 UTC
}
