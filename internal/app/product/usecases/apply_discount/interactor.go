package apply_discount

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	contracts "github.com/murkotick/product-catalog-manager/internal/app/product/contracts"
	shared "github.com/murkotick/product-catalog-manager/internal/app/product/usecases/shared"
	"github.com/murkotick/product-catalog-manager/internal/pkg/clock"
	commitplan "github.com/murkotick/product-catalog-manager/internal/pkg/committer"
)

// ErrInvalidPercentage indicates a negative or non-numeric discount percentage.
var ErrInvalidPercentage = errors.New("discount percentage must be a non-negative number")

// Request to discount every food item in the catalog.
type Request struct {
	Percentage float64 // 0-100 scale; 100 or more drives prices to zero
}

type Interactor struct {
	ProductRepo contracts.ProductRepo
	Journal     contracts.EventJournal
	Committer   contracts.Committer
	Clock       clock.Clock
	Logger      *zap.Logger
}

func NewInteractor(repo contracts.ProductRepo, j contracts.EventJournal, committer contracts.Committer, clk clock.Clock, logger *zap.Logger) *Interactor {
	return &Interactor{
		ProductRepo: repo,
		Journal:     j,
		Committer:   committer,
		Clock:       clk,
		Logger:      logger,
	}
}

// Execute applies the discount and returns how many food items were repriced.
func (it *Interactor) Execute(ctx context.Context, req Request) (int, error) {
	if math.IsNaN(req.Percentage) || math.IsInf(req.Percentage, 0) || req.Percentage < 0 {
		return 0, errors.Wrapf(ErrInvalidPercentage, "got %v", req.Percentage)
	}

	var changed int
	plan := commitplan.NewPlan()
	plan.Add("catalog.discount_food", func(context.Context) error {
		changed = it.ProductRepo.ApplyDiscountToFood(it.ProductRepo.GetAll(), req.Percentage)
		return nil
	})
	plan.Add("journal.record", shared.JournalStep(it.ProductRepo, it.Journal, it.Clock, it.Logger))

	if err := it.Committer.Apply(ctx, plan); err != nil {
		return 0, err
	}

	it.Logger.Info("food discount applied",
		zap.Float64("percentage", req.Percentage),
		zap.Int("repriced", changed),
	)
	return changed, nil
}
