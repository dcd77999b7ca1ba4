package engine

import (
	"errors"
	"sync"
	"testing"

	"github.com/planwise/planwise/internal/model"
)

func TestRunScenarios(t *testing.T) {
	e := testEngine()

	valid := amountProfile()
	valid.Contributions.Standard = 1000
	broken := amountProfile()
	broken.Salary = -1

	scenarios := []Scenario{
		{Name: "baseline", Profile: valid},
		{Name: "broken", Profile: broken},
		{Name: "again", Profile: valid},
	}

	var mu sync.Mutex
	var calls int
	var sawTotal bool
	results := e.RunScenarios(scenarios, func(done, total int) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if done == total {
			sawTotal = true
		}
	})

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, want := range []string{"baseline", "broken", "again"} {
		if results[i].Name != want {
			t.Errorf("result %d name = %q, want %q", i, results[i].Name, want)
		}
	}
	if results[0].Err != nil || results[0].Projection == nil {
		t.Errorf("baseline result: err = %v", results[0].Err)
	}
	if !errors.Is(results[1].Err, ErrInvalidPlan) {
		t.Errorf("broken result err = %v, want ErrInvalidPlan", results[1].Err)
	}
	if calls != 3 || !sawTotal {
		t.Errorf("progress calls = %d (saw total: %v), want 3 with final total", calls, sawTotal)
	}
}

func TestRunScenariosEmpty(t *testing.T) {
	e := testEngine()
	if results := e.RunScenarios(nil, nil); len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestRunScenariosDeterministic(t *testing.T) {
	e := testEngine()
	p := amountProfile()
	p.Contributions.Standard = 5000
	p.Returns.Growth = model.PerAccount{0, 0.05, 0, 0}

	scenarios := []Scenario{{Name: "a", Profile: p}, {Name: "b", Profile: p}}
	results := e.RunScenarios(scenarios, nil)

	a := results[0].Projection.Summary.RetirementTotal
	b := results[1].Projection.Summary.RetirementTotal
	if a != b {
		t.Errorf("identical profiles diverged: %v vs %v", a, b)
	}
	if a == 0 {
		t.Error("projection produced an empty pot")
	}
}
