package create_product

import (
	"context"

	"go.uber.org/zap"

	contracts "github.com/murkotick/product-catalog-manager/internal/app/product/contracts"
	"github.com/murkotick/product-catalog-manager/internal/app/product/domain"
	shared "github.com/murkotick/product-catalog-manager/internal/app/product/usecases/shared"
	"github.com/murkotick/product-catalog-manager/internal/pkg/clock"
	commitplan "github.com/murkotick/product-catalog-manager/internal/pkg/committer"
)

// Request is the application-level create-product request.
type Request struct {
	Kind  string
	Name  string
	Price string // decimal, e.g. "19.99"

	// Attributes override the variant defaults.
	Attributes shared.Attributes
}

// Interactor adds a new product to the catalog and journals the change.
type Interactor struct {
	ProductRepo contracts.ProductRepo
	Journal     contracts.EventJournal
	Committer   contracts.Committer
	Clock       clock.Clock
	Logger      *zap.Logger
}

// NewInteractor constructs the interactor.
func NewInteractor(prodRepo contracts.ProductRepo, j contracts.EventJournal, committer contracts.Committer, clk clock.Clock, logger *zap.Logger) *Interactor {
	return &Interactor{
		ProductRepo: prodRepo,
		Journal:     j,
		Committer:   committer,
		Clock:       clk,
		Logger:      logger,
	}
}

// Execute validates the request, adds the product and returns the assigned id.
// Nothing is added when validation fails.
func (it *Interactor) Execute(ctx context.Context, req Request) (int, error) {
	// 1. Build the record
	kind, err := domain.ParseKind(req.Kind)
	if err != nil {
		return 0, err
	}
	price, err := domain.NewMoneyFromDecimal(req.Price)
	if err != nil {
		return 0, err
	}
	product, err := req.Attributes.Build(kind, 0, req.Name, price)
	if err != nil {
		return 0, err
	}

	// 2. Stage the insert and the journal entry
	var id int
	plan := commitplan.NewPlan()
	plan.Add("catalog.add", func(context.Context) error {
		id = it.ProductRepo.Add(product)
		return nil
	})
	plan.Add("journal.record", shared.JournalStep(it.ProductRepo, it.Journal, it.Clock, it.Logger))

	// 3. Apply
	if err := it.Committer.Apply(ctx, plan); err != nil {
		return 0, err
	}

	it.Logger.Info("product created",
		zap.Int("product_id", id),
		zap.String("kind", kind.String()),
		zap.String("price", price.String()),
	)
	return id, nil
}
