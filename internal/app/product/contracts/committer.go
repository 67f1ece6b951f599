package contracts

import (
	"context"

	"github.com/murkotick/product-catalog-manager/internal/pkg/committer"
)

// Committer applies a staged plan of catalog changes. Use cases build the plan
// and stay independent of how the steps are run.
type Committer interface {
	// Apply runs the plan in order and stops at the first failing step.
	Apply(ctx context.Context, plan *committer.Plan) error
}
