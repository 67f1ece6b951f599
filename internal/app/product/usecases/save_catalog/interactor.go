package save_catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/murkotick/product-catalog-manager/internal/app/product/codec"
	contracts "github.com/murkotick/product-catalog-manager/internal/app/product/contracts"
	commitplan "github.com/murkotick/product-catalog-manager/internal/pkg/committer"
)

// Request names the target file. An empty Format is taken from the extension.
type Request struct {
	Path   string
	Format string
}

// Interactor writes the whole catalog, in storage order, to one file.
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

// Execute returns the format that was written.
func (it *Interactor) Execute(ctx context.Context, req Request) (codec.Format, error) {
	format, err := codec.Resolve(req.Format, req.Path)
	if err != nil {
		return "", err
	}
	enc, err := codec.EncoderFor(format)
	if err != nil {
		return "", err
	}

	items := it.ProductRepo.GetAll()
	plan := commitplan.NewPlan()
	plan.Add("codec.save", func(context.Context) error {
		return codec.SaveFile(req.Path, enc, items)
	})
	if err := it.Committer.Apply(ctx, plan); err != nil {
		return "", err
	}

	it.Logger.Info("catalog saved",
		zap.String("path", req.Path),
		zap.String("format", string(format)),
		zap.Int("products", len(items)),
	)
	return format, nil
}
