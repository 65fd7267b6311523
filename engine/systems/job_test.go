package systems

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestNewJobSystemArguments(t *testing.T) {
	if _, err := NewJobSystem(0, 1); !errors.Is(err, ErrNoWorkers) {
		t.Errorf("err = %v, want ErrNoWorkers", err)
	}
	if _, err := NewJobSystem(1, -1); !errors.Is(err, ErrNegativeChannelSize) {
		t.Errorf("err = %v, want ErrNegativeChannelSize", err)
	}
}

func TestRunAll(t *testing.T) {
	js, err := NewJobSystem(3, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer js.Shutdown()

	results := make([]int, 20)
	var failures, callbacks atomic.Int32
	tasks := make([]JobTask, len(results))
	for i := range tasks {
		i := i
		tasks[i] = JobTask{
			Name: "square",
			OnStart: func() (interface{}, error) {
				if i == 13 {
					return nil, errors.New("unlucky")
				}
				return i * i, nil
			},
			OnComplete:           func(r interface{}) { results[i] = r.(int) },
			OnFailure:            func(error) { failures.Add(1) },
			OnCompletionCallback: func() { callbacks.Add(1) },
		}
	}
	js.RunAll(tasks)

	if failures.Load() != 1 || callbacks.Load() != 20 {
		t.Errorf("failures = %d, callbacks = %d", failures.Load(), callbacks.Load())
	}
	for i, r := range results {
		want := i * i
		if i == 13 {
			want = 0
		}
		if r != want {
			t.Errorf("results[%d] = %d, want %d", i, r, want)
		}
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	js, err := NewJobSystem(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	var ran atomic.Bool
	js.Submit(JobTask{OnStart: func() (interface{}, error) { ran.Store(true); return nil, nil }})
	js.Shutdown()
	js.Shutdown()
	if !ran.Load() {
		t.Error("queued job did not run before shutdown returned")
	}
}
