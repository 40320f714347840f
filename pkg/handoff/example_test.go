package handoff_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/vnykmshr/gosync/pkg/handoff"
)

// Example demonstrates a basic producer/consumer handoff
func Example() {
	h := handoff.New[string]()
	defer h.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		value, err := h.Take(context.Background())
		if err != nil {
			log.Printf("take failed: %v", err)
			return
		}
		fmt.Println("received:", value)
	}()

	if err := h.Put(context.Background(), "hello"); err != nil {
		log.Printf("put failed: %v", err)
		return
	}
	<-done

	// Output: received: hello
}

// Example_timeout demonstrates a bounded wait on an empty channel.
func Example_timeout() {
	h := handoff.New[int]()
	defer h.Close()

	_, err := h.TakeWithTimeout(20 * time.Millisecond)
	if errors.Is(err, handoff.ErrTimeout) {
		fmt.Println("no value arrived in time")
	}

	// The slot is untouched after a timed-out wait.
	fmt.Println("occupied:", h.Occupied())

	// Output:
	// no value arrived in time
	// occupied: false
}

// Example_pipeline demonstrates strict alternation between two goroutines.
func Example_pipeline() {
	h := handoff.New[int]()

	go func() {
		for i := 1; i <= 3; i++ {
			if err := h.Put(context.Background(), i*i); err != nil {
				log.Printf("put failed: %v", err)
				return
			}
		}
		h.Close()
	}()

	for {
		v, err := h.Take(context.Background())
		if errors.Is(err, handoff.ErrClosed) {
			break
		}
		if err != nil {
			log.Printf("take failed: %v", err)
			return
		}
		fmt.Println(v)
	}

	// Output:
	// 1
	// 4
	// 9
}

// Example_tryOperations demonstrates non-blocking access to the slot.
func Example_tryOperations() {
	h := handoff.New[string]()
	defer h.Close()

	if err := h.TryPut("first"); err != nil {
		log.Printf("try put failed: %v", err)
		return
	}

	// The slot holds one value at a time.
	if err := h.TryPut("second"); errors.Is(err, handoff.ErrOccupied) {
		fmt.Println("slot full")
	}

	v, ok, err := h.TryTake()
	if err != nil {
		log.Printf("try take failed: %v", err)
		return
	}
	fmt.Println(v, ok)

	// Output:
	// slot full
	// first true
}
