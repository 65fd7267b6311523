// Package systems holds the engine's background workers.
package systems

import (
	"errors"
	"sync"

	"github.com/spaghettifunk/polymesh/engine/core"
)

/**
 * @brief Describes a job to be run on a worker.
 */
type JobTask struct {
	/** @brief Used in log messages. */
	Name string
	/** @brief Invoked on a worker when the job starts. Required. */
	OnStart func() (interface{}, error)
	/** @brief Invoked on the worker with the result when OnStart succeeds. Optional. */
	OnComplete func(result interface{})
	/** @brief Invoked on the worker with the error when OnStart fails. Optional. */
	OnFailure func(err error)
	/** @brief Invoked after OnComplete or OnFailure, whichever ran. Optional. */
	OnCompletionCallback func()
}

type JobSystem struct {
	numWorkers int
	jobQueue   chan JobTask
	wg         sync.WaitGroup
	closeOnce  sync.Once
}

var ErrNoWorkers = errors.New("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = errors.New("attempting to create worker pool with a negative channel size")

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   make(chan JobTask, channelSize),
	}

	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				result, err := job.OnStart()
				if err != nil {
					core.LogError("job %s: %s", job.Name, err.Error())
					if job.OnFailure != nil {
						job.OnFailure(err)
					}
				} else if job.OnComplete != nil {
					job.OnComplete(result)
				}

				// Call the completion callback if set
				if job.OnCompletionCallback != nil {
					job.OnCompletionCallback()
				}
			}
		}()
	}
}

/**
 * @brief Shuts the job system down after the queued jobs have run.
 */
func (js *JobSystem) Shutdown() error {
	js.closeOnce.Do(func() { close(js.jobQueue) })
	js.wg.Wait()
	return nil
}

/**
 * @brief Submits the provided job to be queued for execution. Blocks while the queue is full.
 */
func (js *JobSystem) Submit(jt JobTask) {
	js.jobQueue <- jt
}

// RunAll runs every task and waits until all of them finished.
func (js *JobSystem) RunAll(tasks []JobTask) {
	var done sync.WaitGroup
	done.Add(len(tasks))
	for _, t := range tasks {
		next := t.OnCompletionCallback
		t.OnCompletionCallback = func() {
			if next != nil {
				next()
			}
			done.Done()
		}
		go js.Submit(t)
	}
	done.Wait()
}
