package update_product

import (
	"context"

	"go.uber.org/zap"

	contracts "github.com/murkotick/product-catalog-manager/internal/app/product/contracts"
	"github.com/murkotick/product-catalog-manager/internal/app/product/domain"
	shared "github.com/murkotick/product-catalog-manager/internal/app/product/usecases/shared"
	"github.com/murkotick/product-catalog-manager/internal/pkg/clock"
	commitplan "github.com/murkotick/product-catalog-manager/internal/pkg/committer"
)

// Request represents the update product request (partial updates allowed).
//
// A nil Kind, or the product's current kind, keeps the variant and its current
// attributes. A different Kind replaces the record with a fresh variant that
// starts from the defaults. The id never changes.
type Request struct {
	ProductID  int
	Kind       *string
	Name       *string
	Price      *string
	Attributes shared.Attributes
}

// Interactor replaces a stored product with an edited copy.
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
	// 1. Load the current record
	current, err := it.ProductRepo.GetByID(req.ProductID)
	if err != nil {
		return err
	}

	// 2. Build the replacement off to the side; the stored record is untouched on failure
	name := current.Name()
	if req.Name != nil {
		name = *req.Name
	}
	price := current.Price()
	if req.Price != nil {
		if price, err = domain.NewMoneyFromDecimal(*req.Price); err != nil {
			return err
		}
	}

	var next domain.Product
	kind := current.Kind()
	if req.Kind != nil {
		if kind, err = domain.ParseKind(*req.Kind); err != nil {
			return err
		}
	}
	if kind == current.Kind() {
		next = current.Clone()
		next.SetName(name)
		if err := next.SetPrice(price); err != nil {
			return err
		}
		if err := req.Attributes.ApplyTo(next); err != nil {
			return err
		}
	} else {
		if next, err = req.Attributes.Build(kind, current.ID(), name, price); err != nil {
			return err
		}
	}

	// 3. Stage and apply
	plan := commitplan.NewPlan()
	plan.Add("catalog.update", func(context.Context) error {
		return it.ProductRepo.Update(next)
	})
	plan.Add("journal.record", shared.JournalStep(it.ProductRepo, it.Journal, it.Clock, it.Logger))

	if err := it.Committer.Apply(ctx, plan); err != nil {
		return err
	}

	it.Logger.Info("product updated",
		zap.Int("product_id", req.ProductID),
		zap.String("kind", kind.String()),
	)
	return nil
}
