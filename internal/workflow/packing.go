package workflow

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"
)

// FulfilLimit caps concurrent fulfilment calls.
const FulfilLimit = 4

// Packing records which orders of a picklist have been boxed.
type Packing struct {
	PicklistID string
	completed  []string
}

func NewPacking(picklistID string) *Packing { return &Packing{PicklistID: picklistID} }

// Proceed marks an order packed. It reports false when it already was.
func (p *Packing) Proceed(orderID string) bool {
	if p.IsCompleted(orderID) {
		return false
	}
	p.completed = append(p.completed, orderID)
	return true
}

func (p *Packing) IsCompleted(orderID string) bool { return slices.Contains(p.completed, orderID) }

func (p *Packing) Completed() []string { return slices.Clone(p.completed) }

// Finalize fulfils every packed order and returns the first error.
func (p *Packing) Finalize(ctx context.Context, fulfil func(context.Context, string) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(FulfilLimit)
	for _, id := range p.completed {
		g.Go(func() error { return fulfil(ctx, id) })
	}
	return g.Wait()
}
