package engine

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/planwise/planwise/internal/model"
)

// Scenario is one named profile variant for side-by-side comparison.
type Scenario struct {
	Name    string
	Profile model.Profile
}

// Result pairs a scenario with its projection, or the error that stopped it.
type Result struct {
	Name       string
	Projection *Projection
	Err        error
}

// ProgressFunc is called as scenarios finish. done is the number
// completed so far, total is the scenario count.
type ProgressFunc func(done, total int)

// RunScenarios projects every scenario across a bounded worker pool and
// returns results in input order. Runs are independent, so failures are
// carried per result rather than aborting the batch. progressFn may be
// nil.
func (e *Engine) RunScenarios(scenarios []Scenario, progressFn ProgressFunc) []Result {
	results := make([]Result, len(scenarios))
	if len(scenarios) == 0 {
		return results
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(scenarios) {
		numWorkers = len(scenarios)
	}

	work := make(chan int, len(scenarios))
	var wg sync.WaitGroup
	var completed atomic.Int64

	for i := range scenarios {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				proj, err := e.Project(scenarios[idx].Profile)
				results[idx] = Result{Name: scenarios[idx].Name, Projection: proj, Err: err}
				n := completed.Add(1)
				if progressFn != nil {
					progressFn(int(n), len(scenarios))
				}
			}
		}()
	}

	wg.Wait()
	return results
}
