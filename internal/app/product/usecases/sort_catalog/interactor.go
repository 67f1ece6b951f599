package sort_catalog

import (
	"context"

	"go.uber.org/zap"

	contracts "github.com/murkotick/product-catalog-manager/internal/app/product/contracts"
	"github.com/murkotick/product-catalog-manager/internal/app/product/queries/list_products"
	shared "github.com/murkotick/product-catalog-manager/internal/app/product/usecases/shared"
	"github.com/murkotick/product-catalog-manager/internal/pkg/clock"
	commitplan "github.com/murkotick/product-catalog-manager/internal/pkg/committer"
)

// Request names the sort key: "id", "name" or "price".
type Request struct {
	By string
}

// Interactor reorders the stored catalog. The order is stable and persists
// through every codec.
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

func (it *Interactor) Execute(ctx context.Context, req Request) error {
	cmp, err := list_products.ComparatorFor(req.By)
	if err != nil {
		return err
	}
	if cmp == nil {
		return nil
	}

	plan := commitplan.NewPlan()
	plan.Add("catalog.sort", func(context.Context) error {
		it.ProductRepo.SortBy(cmp)
		return nil
	})
	plan.Add("journal.record", shared.JournalStep(it.ProductRepo, it.Journal, it.Clock, it.Logger))

	if err := it.Committer.Apply(ctx, plan); err != nil {
		return err
	}

	it.Logger.Info("catalog sorted", zap.String("by", req.By))
	return nil
}
