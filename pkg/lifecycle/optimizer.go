package lifecycle

import "context"

// Optimizer refreshes planner statistics after a bulk load.
type Optimizer interface {
	Optimize(ctx context.Context) error
}
