package delete_product

import (
	"context"

	"go.uber.org/zap"

	contracts "github.com/murkotick/product-catalog-manager/internal/app/product/contracts"
	shared "github.com/murkotick/product-catalog-manager/internal/app/product/usecases/shared"
	"github.com/murkotick/product-catalog-manager/internal/pkg/clock"
	commitplan "github.com/murkotick/product-catalog-manager/internal/pkg/committer"
)

type Request struct {
	ProductID int
}

// Interactor removes a product. Its id is never handed out again.
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
	plan := commitplan.NewPlan()
	plan.Add("catalog.delete", func(context.Context) error {
		return it.ProductRepo.Delete(req.ProductID)
	})
	plan.Add("journal.record", shared.JournalStep(it.ProductRepo, it.Journal, it.Clock, it.Logger))

	if err := it.Committer.Apply(ctx, plan); err != nil {
		return err
	}

	it.Logger.Info("product deleted", zap.Int("product_id", req.ProductID))
	return nil
}
