package load_catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/murkotick/product-catalog-manager/internal/app/product/codec"
	contracts "github.com/murkotick/product-catalog-manager/internal/app/product/contracts"
	"github.com/murkotick/product-catalog-manager/internal/app/product/domain"
	shared "github.com/murkotick/product-catalog-manager/internal/app/product/usecases/shared"
	"github.com/murkotick/product-catalog-manager/internal/pkg/clock"
	commitplan "github.com/murkotick/product-catalog-manager/internal/pkg/committer"
)

// Request names the source file. An empty Format is taken from the extension.
type Request struct {
	Path   string
	Format string
}

// Interactor replaces the whole catalog with the contents of one file.
// A file that fails to decode leaves the catalog as it was.
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

// Execute returns the number of products loaded.
func (it *Interactor) Execute(ctx context.Context, req Request) (int, error) {
	format, err := codec.Resolve(req.Format, req.Path)
	if err != nil {
		return 0, err
	}
	dec, err := codec.DecoderFor(format)
	if err != nil {
		return 0, err
	}

	var items []domain.Product
	plan := commitplan.NewPlan()
	plan.Add("codec.load", func(context.Context) error {
		items, err = codec.LoadFile(req.Path, dec)
		return err
	})
	plan.Add("catalog.replace", func(context.Context) error {
		return it.ProductRepo.Replace(items)
	})
	plan.Add("journal.record", shared.JournalStep(it.ProductRepo, it.Journal, it.Clock, it.Logger))

	if err := it.Committer.Apply(ctx, plan); err != nil {
		return 0, err
	}

	it.Logger.Info("catalog loaded",
		zap.String("path", req.Path),
		zap.String("format", string(format)),
		zap.Int("products", len(items)),
	)
	return len(items), nil
}
