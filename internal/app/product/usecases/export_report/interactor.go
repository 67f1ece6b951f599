package export_report

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"github.com/murkotick/product-catalog-manager/internal/app/product/codec"
	contracts "github.com/murkotick/product-catalog-manager/internal/app/product/contracts"
	"github.com/murkotick/product-catalog-manager/internal/app/product/dto"
	"github.com/murkotick/product-catalog-manager/internal/app/product/queries/list_products"
	commitplan "github.com/murkotick/product-catalog-manager/internal/pkg/committer"
)

// Request selects the products to report and the output file.
type Request struct {
	Path   string
	Filter dto.ListFilter
}

// Interactor writes the plain-text report of the selected products.
type Interactor struct {
	ProductRepo contracts.ProductRepo
	Committer   contracts.Committer
	Logger      *zap.Logger
}

func NewInteractor(repo contracts.ProductRepo, committer contracts.Committer, logger *zap.Logger) *Interactor {
	return &Interactor{
		ProductRepo: repo,
		Committer:   committer,
		Logger:      logger,
	}
}

// Execute returns the number of products written to the report.
func (it *Interactor) Execute(ctx context.Context, req Request) (int, error) {
	pred, err := list_products.PredicateFor(req.Filter)
	if err != nil {
		return 0, err
	}
	cmp, err := list_products.ComparatorFor(req.Filter.SortBy)
	if err != nil {
		return 0, err
	}

	items := it.ProductRepo.Filter(pred)
	if cmp != nil {
		slices.SortStableFunc(items, cmp)
	}

	plan := commitplan.NewPlan()
	plan.Add("codec.report", func(context.Context) error {
		return codec.SaveFile(req.Path, codec.Report{}, items)
	})
	if err := it.Committer.Apply(ctx, plan); err != nil {
		return 0, err
	}

	it.Logger.Info("report exported", zap.String("path", req.Path), zap.Int("products", len(items)))
	return len(items), nil
}
