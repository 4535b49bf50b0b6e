package tile

import (
	"runtime"
	"sync/atomic"
	"testing"
)

func TestNewWorkerPoolUsesGivenWorkerCount(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
}

func TestNewWorkerPoolDefaultsToGOMAXPROCS(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	if want := runtime.GOMAXPROCS(0); pool.Workers() != want {
		t.Errorf("Workers() = %d, want GOMAXPROCS %d", pool.Workers(), want)
	}
}

func TestExecuteAllRunsEveryJobAndWaits(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var count atomic.Int64
	work := make([]func(), 50)
	for i := range work {
		work[i] = func() { count.Add(1) }
	}

	pool.ExecuteAll(work)

	if count.Load() != int64(len(work)) {
		t.Errorf("ExecuteAll ran %d jobs, want %d", count.Load(), len(work))
	}
}

func TestExecuteAllOnEmptyWorkIsNoop(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	pool.ExecuteAll(nil)
	pool.ExecuteAll([]func(){})
}

func TestExecuteAllWithSingleWorkerStillRunsEveryJob(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Close()

	var count atomic.Int64
	work := make([]func(), 10)
	for i := range work {
		work[i] = func() { count.Add(1) }
	}
	pool.ExecuteAll(work)

	if count.Load() != int64(len(work)) {
		t.Errorf("single-worker ExecuteAll ran %d jobs, want %d", count.Load(), len(work))
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()
	pool.Close()
}

func TestExecuteAllAfterCloseDropsWorkWithoutBlocking(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	var ran atomic.Bool
	done := make(chan struct{})
	go func() {
		pool.ExecuteAll([]func(){func() { ran.Store(true) }})
		close(done)
	}()
	<-done

	if ran.Load() {
		t.Error("job submitted to a closed pool should not run")
	}
}
