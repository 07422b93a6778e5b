// Package disenchant turns a classified batch into craft requests.
package disenchant

import (
	"context"

	"lootsweep/internal/loot"

	"go.uber.org/zap"
)

// Crafter issues a single craft request.
type Crafter interface {
	Craft(ctx context.Context, recipe loot.Recipe, identity string, repeat int) error
}

// Status is the aggregate outcome of a batch.
type Status int

const (
	StatusAllSucceeded Status = iota
	StatusPartialFailure
)

func (s Status) String() string {
	if s == StatusPartialFailure {
		return "one or more items may not have been fully processed"
	}
	return "all succeeded"
}

// Outcome records what happened to one item.
type Outcome struct {
	Item      loot.Item
	Attempted bool
	Err       error
}

// Result collects every outcome of a batch.
type Result struct {
	Outcomes []Outcome
	Status   Status
}

// Failed returns the outcomes that did not succeed, including items never
// attempted because the run was canceled.
func (r Result) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

// Executor disenchants items one at a time. Requests are never issued
// concurrently: the local API mutates a single account session.
type Executor struct {
	crafter Crafter
	logger  *zap.Logger
}

// NewExecutor returns an executor bound to a crafter.
func NewExecutor(crafter Crafter, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{crafter: crafter, logger: logger}
}

// Execute sends one craft per distinct identity with repeat set to the stack
// count. A failing item is recorded and the loop moves on; there is no retry
// and no rollback.
func (e *Executor) Execute(ctx context.Context, batch loot.Batch) Result {
	items := batch.Sorted()
	res := Result{Outcomes: make([]Outcome, 0, len(items))}

	for i, it := range items {
		if err := ctx.Err(); err != nil {
			e.logger.Warn("Run canceled, skipping remaining items",
				zap.Int("remaining", len(items)-i), zap.Error(err))
			for _, rest := range items[i:] {
				res.Outcomes = append(res.Outcomes, Outcome{Item: rest, Err: err})
			}
			res.Status = StatusPartialFailure
			return res
		}

		e.logger.Debug("Disenchanting",
			zap.String("loot_id", it.Identity),
			zap.String("recipe", it.Recipe.Name()),
			zap.Int("count", it.Count))

		err := e.crafter.Craft(ctx, it.Recipe, it.Identity, it.Count)
		res.Outcomes = append(res.Outcomes, Outcome{Item: it, Attempted: true, Err: err})
		if err != nil {
			res.Status = StatusPartialFailure
			e.logger.Warn("Disenchant failed",
				zap.String("loot_id", it.Identity),
				zap.String("name", it.Name),
				zap.Error(err))
		}
	}
	return res
}
