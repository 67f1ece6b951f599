package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/murkotick/product-catalog-manager/internal/app/product/codec"
	"github.com/murkotick/product-catalog-manager/internal/app/product/queries/get_product"
	"github.com/murkotick/product-catalog-manager/internal/app/product/queries/list_history"
	"github.com/murkotick/product-catalog-manager/internal/app/product/queries/list_products"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/apply_discount"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/create_product"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/delete_product"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/export_report"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/load_catalog"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/save_catalog"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/sort_catalog"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/update_product"
)

// Commands groups write interactors.
// Keep transport layer depending on application layer only.
type Commands struct {
	Create   *create_product.Interactor
	Update   *update_product.Interactor
	Delete   *delete_product.Interactor
	Discount *apply_discount.Interactor
	Sort     *sort_catalog.Interactor
	Load     *load_catalog.Interactor
	Save     *save_catalog.Interactor
	Report   *export_report.Interactor
}

// Queries groups read handlers.
type Queries struct {
	Get     *get_product.Handler
	List    *list_products.Handler
	History *list_history.Handler
}

// annotation marking commands whose result is written back to --file.
const mutatesKey = "catalog/mutates"

var mutates = map[string]string{mutatesKey: "true"}

// Handler is a thin command-line adapter.
// It parses flags, maps them to application requests and delegates to CQRS handlers.
type Handler struct {
	commands      Commands
	queries       Queries
	logger        *zap.Logger
	defaultFormat string

	file   string
	format string
}

// NewHandler builds the adapter. defaultFormat is used for catalog files
// whose extension names no format.
func NewHandler(cmd Commands, qry Queries, logger *zap.Logger, defaultFormat string) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{commands: cmd, queries: qry, logger: logger, defaultFormat: defaultFormat}
}

// Execute runs one command line and returns the process exit code.
// Command output goes to stdout, failures to stderr.
func (h *Handler) Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := h.Root()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
	}
	return ExitCode(err)
}

// Root builds a fresh command tree bound to h.
func (h *Handler) Root() *cobra.Command {
	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Manage a product catalog stored in a csv, json or binary file",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return h.run(cmd.Context(), h.load)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[mutatesKey] == "" {
				return nil
			}
			return h.run(cmd.Context(), h.save)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&h.file, "file", "f", "", "catalog file to load and save back (created when missing)")
	pf.StringVar(&h.format, "format", "", "format of --file (csv, json, bin); defaults to its extension")

	root.AddCommand(
		h.listCmd(),
		h.showCmd(),
		h.addCmd(),
		h.updateCmd(),
		h.deleteCmd(),
		h.discountCmd(),
		h.sortCmd(),
		h.convertCmd(),
		h.reportCmd(),
		h.historyCmd(),
	)
	return root
}

// run maps the error of fn so it carries an exit code.
func (h *Handler) run(ctx context.Context, fn func(context.Context) error) error {
	return mapError(fn(ctx))
}

func (h *Handler) load(ctx context.Context) error {
	if h.file == "" {
		return nil
	}
	n, err := h.commands.Load.Execute(ctx, load_catalog.Request{Path: h.file, Format: h.formatOf(h.file, h.format)})
	if errors.Is(err, os.ErrNotExist) {
		h.logger.Debug("catalog file missing, starting empty", zap.String("path", h.file))
		return nil
	}
	if err != nil {
		return err
	}
	h.logger.Debug("catalog loaded", zap.String("path", h.file), zap.Int("products", n))
	return nil
}

func (h *Handler) save(ctx context.Context) error {
	if h.file == "" {
		return nil
	}
	_, err := h.commands.Save.Execute(ctx, save_catalog.Request{Path: h.file, Format: h.formatOf(h.file, h.format)})
	return err
}

// formatOf returns the explicit format, or "" when the extension of path
// resolves one, or the configured default.
func (h *Handler) formatOf(path, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := codec.FormatFromPath(path); err == nil {
		return ""
	}
	return h.defaultFormat
}

func (h *Handler) listCmd() *cobra.Command {
	var f filterFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return h.run(cmd.Context(), func(ctx context.Context) error {
				items, err := h.queries.List.Execute(ctx, f.toDTO())
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tTYPE\tNAME\tPRICE\tEFFECTIVE")
				for _, it := range items {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", it.ProductID, it.Kind, it.Name, it.Price, it.EffectivePrice)
				}
				totals, err := h.queries.List.Totals(ctx, f.toDTO())
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "TOTAL\t\t%d products\t%s\t%s\n", totals.Count, totals.ListPrice, totals.EffectivePrice)
				return tw.Flush()
			})
		},
	}
	f.register(cmd)
	return cmd
}

func (h *Handler) showCmd() *cobra.Command {
	var id int
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one product with its variant attributes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return h.run(cmd.Context(), func(ctx context.Context) error {
				p, err := h.queries.Get.Execute(ctx, id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "id:          %d\n", p.ProductID)
				fmt.Fprintf(out, "type:        %s\n", p.Kind)
				fmt.Fprintf(out, "name:        %s\n", p.Name)
				fmt.Fprintf(out, "description: %s\n", p.Description)
				fmt.Fprintf(out, "price:       %s\n", p.Price)
				if p.SpecialDiscount != nil {
					fmt.Fprintf(out, "discount:    %s\n", *p.SpecialDiscount)
				}
				fmt.Fprintf(out, "effective:   %s\n", p.EffectivePrice)
				fmt.Fprintf(out, "attributes:  %s\n", strings.Join(get_product.Attributes(p), " "))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&id, "id", 0, "product id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func (h *Handler) addCmd() *cobra.Command {
	var f productFlags
	cmd := &cobra.Command{
		Use:         "add",
		Short:       "Add a product",
		Args:        cobra.NoArgs,
		Annotations: mutates,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return h.run(cmd.Context(), func(ctx context.Context) error {
				id, err := h.commands.Create.Execute(ctx, mapCreateRequest(cmd, &f))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added product %d\n", id)
				return nil
			})
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&f.kind, "kind", "", "product type (Alimento, Electronico, Ropa)")
	fs.StringVar(&f.name, "name", "", "product name")
	fs.StringVar(&f.price, "price", "", "price as a decimal, e.g. 19.99")
	f.variant.register(cmd)
	for _, name := range []string{"kind", "name", "price"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (h *Handler) updateCmd() *cobra.Command {
	var f productFlags
	cmd := &cobra.Command{
		Use:         "update",
		Short:       "Change a product; a new --kind rebuilds it with that type's defaults",
		Args:        cobra.NoArgs,
		Annotations: mutates,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return h.run(cmd.Context(), func(ctx context.Context) error {
				if err := h.commands.Update.Execute(ctx, mapUpdateRequest(cmd, &f)); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "updated product %d\n", f.id)
				return nil
			})
		},
	}
	fs := cmd.Flags()
	fs.IntVar(&f.id, "id", 0, "product id")
	fs.StringVar(&f.kind, "kind", "", "new product type")
	fs.StringVar(&f.name, "name", "", "new name")
	fs.StringVar(&f.price, "price", "", "new price")
	f.variant.register(cmd)
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func (h *Handler) deleteCmd() *cobra.Command {
	var id int
	cmd := &cobra.Command{
		Use:         "delete",
		Short:       "Delete a product",
		Args:        cobra.NoArgs,
		Annotations: mutates,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return h.run(cmd.Context(), func(ctx context.Context) error {
				if err := h.commands.Delete.Execute(ctx, delete_product.Request{ProductID: id}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted product %d\n", id)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&id, "id", 0, "product id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func (h *Handler) discountCmd() *cobra.Command {
	var pct float64
	cmd := &cobra.Command{
		Use:         "discount-food",
		Short:       "Lower the price of every food product by a percentage",
		Args:        cobra.NoArgs,
		Annotations: mutates,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return h.run(cmd.Context(), func(ctx context.Context) error {
				n, err := h.commands.Discount.Execute(ctx, apply_discount.Request{Percentage: pct})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "repriced %d food products\n", n)
				return nil
			})
		},
	}
	cmd.Flags().Float64Var(&pct, "pct", 0, "discount percentage; 100 or more makes food free")
	_ = cmd.MarkFlagRequired("pct")
	return cmd
}

func (h *Handler) sortCmd() *cobra.Command {
	var by string
	cmd := &cobra.Command{
		Use:         "sort",
		Short:       "Reorder the stored catalog",
		Args:        cobra.NoArgs,
		Annotations: mutates,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return h.run(cmd.Context(), func(ctx context.Context) error {
				if err := h.commands.Sort.Execute(ctx, sort_catalog.Request{By: by}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "sorted by %s\n", by)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&by, "by", "", "id, name or price")
	_ = cmd.MarkFlagRequired("by")
	return cmd
}

func (h *Handler) convertCmd() *cobra.Command {
	var to, toFormat string
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Write the catalog to another file, possibly in another format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return h.run(cmd.Context(), func(ctx context.Context) error {
				format, err := h.commands.Save.Execute(ctx, save_catalog.Request{Path: to, Format: h.formatOf(to, toFormat)})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", to, format)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "target file")
	cmd.Flags().StringVar(&toFormat, "to-format", "", "target format (csv, json, bin, txt); defaults to the extension")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func (h *Handler) reportCmd() *cobra.Command {
	var (
		out string
		f   filterFlags
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a human-readable report of the matching products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return h.run(cmd.Context(), func(ctx context.Context) error {
				n, err := h.commands.Report.Execute(ctx, export_report.Request{Path: out, Filter: f.toDTO()})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "reported %d products to %s\n", n, out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "report file")
	f.register(cmd)
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func (h *Handler) historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the journaled catalog changes, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return h.run(cmd.Context(), func(ctx context.Context) error {
				entries, err := h.queries.History.Execute(ctx, limit)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "RECORDED\tEVENT\tPRODUCT\tPAYLOAD")
				for _, e := range entries {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.RecordedAt, e.EventType, e.AggregateID, e.Payload)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "show only the last n entries; 0 shows all")
	return cmd
}
