package committer

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Adapter runs plans step by step. The first failing step stops the plan and
// its error is returned with the step name attached.
type Adapter struct {
	logger *zap.Logger
}

func NewAdapter(logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{logger: logger}
}

func (a *Adapter) Apply(ctx context.Context, plan *Plan) error {
	if plan == nil || plan.IsEmpty() {
		return nil
	}

	for i, step := range plan.Steps() {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "committer: before step %q", step.Name)
		}
		if err := step.Run(ctx); err != nil {
			a.logger.Debug("plan step failed",
				zap.String("step", step.Name),
				zap.Int("index", i),
				zap.Error(err),
			)
			return errors.WithMessagef(err, "%s", step.Name)
		}
		a.logger.Debug("plan step applied", zap.String("step", step.Name), zap.Int("index", i))
	}
	return nil
}
