package workerpool_test

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/vnykmshr/rainbow/pkg/scheduling/workerpool"
)

// Example demonstrates basic usage of the worker pool.
func Example() {
	pool, err := workerpool.New(3, 10)
	if err != nil {
		log.Fatal(err)
	}

	task := workerpool.TaskFunc(func(ctx context.Context) error {
		fmt.Println("Task executed")
		return nil
	})

	if err := pool.Submit(task); err != nil {
		log.Printf("Failed to submit task: %v", err)
	}
	pool.Shutdown()

	for result := range pool.Results() {
		if result.Error != nil {
			log.Printf("Task failed: %v", result.Error)
		}
	}

	// Output: Task executed
}

// squareTask carries its own input and output.
type squareTask struct {
	n, square int
}

func (t *squareTask) Execute(context.Context) error {
	t.square = t.n * t.n
	return nil
}

// Example_fanOut submits from one goroutine while collecting results in another.
func Example_fanOut() {
	pool, err := workerpool.New(4, 0)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		defer pool.Shutdown()
		for i := 1; i <= 5; i++ {
			if err := pool.Submit(&squareTask{n: i}); err != nil {
				log.Printf("submit: %v", err)
			}
		}
	}()

	var squares []int
	for result := range pool.Results() {
		squares = append(squares, result.Task.(*squareTask).square)
	}
	sort.Ints(squares)
	fmt.Println(squares)

	// Output: [1 4 9 16 25]
}
