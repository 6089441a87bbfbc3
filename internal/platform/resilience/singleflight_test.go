package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_DeduplicatesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var flight SingleFlight
	var executions atomic.Int32
	release := make(chan struct{})

	const callers = 10
	var wg sync.WaitGroup
	var shared atomic.Int32
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			val, err, wasShared := flight.Do("key", func() (any, error) {
				executions.Add(1)
				<-release
				return 7, nil
			})
			if err != nil {
				t.Errorf("Do: %v", err)
				return
			}
			if val != 7 {
				t.Errorf("expected 7, got %v", val)
			}
			if wasShared {
				shared.Add(1)
			}
		}()
	}

	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Fatalf("expected one execution, got %d", got)
	}
	if got := shared.Load(); got != callers-1 {
		t.Fatalf("expected %d shared results, got %d", callers-1, got)
	}
}

func TestSingleFlight_SequentialCallsRunSeparately(t *testing.T) {
	t.Parallel()

	var flight SingleFlight
	calls := 0
	for i := 0; i < 3; i++ {
		_, _, shared := flight.Do("key", func() (any, error) {
			calls++
			return nil, nil
		})
		if shared {
			t.Fatalf("call %d should not share: nothing in flight", i)
		}
	}
	if calls != 3 {
		t.Fatalf("expected 3 executions, got %d", calls)
	}
}
