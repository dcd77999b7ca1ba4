// Package engine runs the deterministic retirement projection: the
// yearly contribution split across the four accounts, the accumulation
// loop to retirement, and the drawdown waterfall after it.
package engine

import (
	"github.com/planwise/planwise/internal/model"
	"github.com/planwise/planwise/internal/tax"
)

// Engine projects profiles against one immutable set of rate tables. It
// carries no other state, so a single Engine is safe for concurrent use
// across independent runs.
type Engine struct {
	tables *tax.Tables
}

// New returns an Engine over the given tables.
func New(tables *tax.Tables) *Engine {
	return &Engine{tables: tables}
}

// Tables exposes the rate tables the engine was built with.
func (e *Engine) Tables() *tax.Tables {
	return e.tables
}

// Projection is a full run of one profile over both phases.
type Projection struct {
	Profile       model.Profile
	Contributions []model.ContributionYear
	Retirement    []model.RetirementYear
	Summary       Summary
}

// Project validates the profile, runs the saving phase up to retirement
// age, feeds the resulting balances into the drawdown phase up to the
// plan's end age, and summarises the outcome.
func (e *Engine) Project(p model.Profile) (*Projection, error) {
	if err := e.Validate(p); err != nil {
		return nil, err
	}
	contributions, err := e.accumulate(p)
	if err != nil {
		return nil, err
	}
	opening := p.Balances
	if n := len(contributions); n > 0 {
		opening = contributions[n-1].Balances
	}
	retirement, err := e.drawdown(p, opening)
	if err != nil {
		return nil, err
	}
	proj := &Projection{
		Profile:       p,
		Contributions: contributions,
		Retirement:    retirement,
	}
	proj.Summary = Summarize(p, contributions, retirement)
	return proj, nil
}

// Accumulate runs only the saving phase.
func (e *Engine) Accumulate(p model.Profile) ([]model.ContributionYear, error) {
	if err := e.Validate(p); err != nil {
		return nil, err
	}
	return e.accumulate(p)
}

// Drawdown runs only the retirement phase over the given opening balances.
func (e *Engine) Drawdown(p model.Profile, opening model.PerAccount) ([]model.RetirementYear, error) {
	if err := e.Validate(p); err != nil {
		return nil, err
	}
	return e.drawdown(p, opening)
}

// region maps the profile's Scotland flag onto a tax region.
func region(p model.Profile) tax.Region {
	if p.Scotland {
		return tax.RegionScotland
	}
	return tax.RegionUK
}
