package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/murkotick/product-catalog-manager/internal/app/product/journal"
	"github.com/murkotick/product-catalog-manager/internal/app/product/queries"
	"github.com/murkotick/product-catalog-manager/internal/app/product/queries/get_product"
	"github.com/murkotick/product-catalog-manager/internal/app/product/queries/list_history"
	"github.com/murkotick/product-catalog-manager/internal/app/product/queries/list_products"
	"github.com/murkotick/product-catalog-manager/internal/app/product/repo"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/apply_discount"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/create_product"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/delete_product"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/export_report"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/load_catalog"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/save_catalog"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/sort_catalog"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/update_product"
	"github.com/murkotick/product-catalog-manager/internal/config"
	"github.com/murkotick/product-catalog-manager/internal/pkg/clock"
	committer "github.com/murkotick/product-catalog-manager/internal/pkg/committer"
	"github.com/murkotick/product-catalog-manager/internal/pkg/logx"
	"github.com/murkotick/product-catalog-manager/internal/transport/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return cli.ExitFailure
	}

	logger, closeLog, err := logx.New(logx.Options{Mode: cfg.LoggerMode(), Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return cli.ExitFailure
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM.
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		logger.Info("shutdown signal received")
		cancel()
	}()

	clk := clock.RealClock{}
	catalog := repo.NewCatalog(clk)
	events := journal.New()
	if cfg.JournalFile != "" {
		events = journal.Open(cfg.JournalFile)
	}
	cm := committer.NewAdapter(logger.Named("committer"))
	readModel := queries.NewCatalogReadModel(catalog)

	// CQRS wiring
	cmds := cli.Commands{
		Create:   create_product.NewInteractor(catalog, events, cm, clk, logger),
		Update:   update_product.NewInteractor(catalog, events, cm, clk, logger),
		Delete:   delete_product.NewInteractor(catalog, events, cm, clk, logger),
		Discount: apply_discount.NewInteractor(catalog, events, cm, clk, logger),
		Sort:     sort_catalog.NewInteractor(catalog, events, cm, clk, logger),
		Load:     load_catalog.NewInteractor(catalog, events, cm, clk, logger),
		Save:     save_catalog.NewInteractor(catalog, cm, logger),
		Report:   export_report.NewInteractor(catalog, cm, logger),
	}
	qrys := cli.Queries{
		Get:     get_product.NewHandler(readModel),
		List:    list_products.NewHandler(readModel),
		History: list_history.NewHandler(list_history.NewJournalHistoryQuery(events)),
	}
	h := cli.NewHandler(cmds, qrys, logger, cfg.DefaultFormat)

	code := h.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	logger.Debug("command finished",
		zap.String("env", cfg.Env),
		zap.Int("exit_code", code),
		zap.Int("journal_entries", events.Len()),
	)
	return code
}
