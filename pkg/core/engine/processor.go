package engine

import (
	"fmt"
)

// stageFunc is one step of the pipeline. Stages take the context by value
// and hand an updated copy forward; the fixed ordering below is load-bearing
// (each stage consumes what the previous one produced).
type stageFunc func(Context) (Context, error)

type stage struct {
	name string
	run  stageFunc
}

// pipeline is the strict stage order every deal passes through.
var pipeline = []stage{
	{"fees", calcFees},
	{"debt", collectDebt},
	{"credit", applyCredit},
	{"subscription", applySubscription},
	{"commission", calcCommission},
	{"cost_cap", enforceCostCap},
	{"payout", assemblePayout},
}

// Processor runs deals through the pipeline. It holds no state; a single
// instance is safe for concurrent use because every call owns its context.
type Processor struct{}

// NewProcessor returns a ready-to-use processor.
func NewProcessor() *Processor {
	return &Processor{}
}

// Process validates the input and runs the full pipeline, returning the
// complete breakdown and the successor contract state. Identical inputs
// produce identical results.
func (p *Processor) Process(in DealInput) (*Result, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	ctx, err := newContext(in)
	if err != nil {
		return nil, err
	}

	for _, s := range pipeline {
		ctx, err = s.run(ctx)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", s.name, err)
		}
	}

	return buildResult(ctx), nil
}
