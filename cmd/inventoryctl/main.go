// Command inventoryctl searches the catalog and adjusts stock against a
// running inventory server.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/rogerio-castellano/warehouse-inventory/internal/client"
	"github.com/rogerio-castellano/warehouse-inventory/internal/config"
	"github.com/rogerio-castellano/warehouse-inventory/internal/inventory"
	"github.com/rogerio-castellano/warehouse-inventory/internal/logger"
	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
)

const usage = `usage: inventoryctl [flags] <command> [args]

commands:
  search [text]       search the catalog (--category, --status, --min-stock, --max-stock)
  show <id|sku>       show one product
  adjust <id|sku>     set the stock of a product (--stock, --type, --reason, --notes)
  history <id|sku>    list the stock adjustments of a product
  dashboard           show catalog metrics
`

type app struct {
	out      io.Writer
	c        *client.Client
	json     bool
	debounce time.Duration

	category string
	status   string
	minStock int
	maxStock int

	stock    int
	stockSet bool
	adjType string
	reason  string
	notes   string

	email    string
	password string

	limit  int
	offset int
}

func main() {
	a := &app{out: os.Stdout}

	flags := pflag.NewFlagSet("inventoryctl", pflag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage+"\nflags:\n")
		flags.PrintDefaults()
	}
	configFile := flags.StringP("config", "c", "", "path to the server config file")
	server := flags.StringP("server", "s", os.Getenv("INVENTORY_SERVER"), "server base URL (default: localhost on the configured port)")
	token := flags.String("token", os.Getenv("INVENTORY_TOKEN"), "bearer token")
	verbose := flags.BoolP("verbose", "v", false, "log requests and state changes")
	flags.BoolVar(&a.json, "json", false, "print JSON")
	flags.StringVar(&a.category, "category", "", "category filter")
	flags.StringVar(&a.status, "status", "", "status filter")
	flags.IntVar(&a.minStock, "min-stock", -1, "minimum stock filter")
	flags.IntVar(&a.maxStock, "max-stock", -1, "maximum stock filter")
	flags.IntVar(&a.stock, "stock", 0, "new stock level")
	flags.StringVar(&a.adjType, "type", "", "adjustment type ("+joinTypes()+")")
	flags.StringVar(&a.reason, "reason", "", "adjustment reason ("+joinReasons()+")")
	flags.StringVar(&a.notes, "notes", "", "adjustment notes")
	flags.StringVarP(&a.email, "email", "e", os.Getenv("INVENTORY_EMAIL"), "login email")
	flags.StringVarP(&a.password, "password", "p", os.Getenv("INVENTORY_PASSWORD"), "login password")
	flags.IntVar(&a.limit, "limit", 20, "history page size")
	flags.IntVar(&a.offset, "offset", 0, "history offset")

	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	if *verbose {
		logger.Init("inventoryctl", true)
		logger.SetLevel("debug")
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if *server == "" {
		*server = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}

	a.debounce = cfg.Inventory.Debounce
	a.stockSet = flags.Changed("stock")
	a.c = client.New(*server, client.WithToken(*token))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := a.run(ctx, flags.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("missing command\n" + usage)
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "search":
		return a.search(ctx, strings.Join(args, " "))
	case "show":
		if len(args) != 1 {
			return errors.New("show needs a product id or sku")
		}
		p, err := a.lookup(ctx, args[0])
		if err != nil {
			return err
		}
		return a.printProduct(p)
	case "adjust":
		if len(args) != 1 {
			return errors.New("adjust needs a product id or sku")
		}
		return a.adjust(ctx, args[0])
	case "history":
		if len(args) != 1 {
			return errors.New("history needs a product id or sku")
		}
		return a.history(ctx, args[0])
	case "dashboard":
		return a.dashboard(ctx)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func (a *app) filter(text string) (repo.ProductFilter, error) {
	pf := repo.ProductFilter{Query: strings.TrimSpace(text)}
	if a.category != "" {
		c, err := models.ParseCategory(a.category)
		if err != nil {
			return pf, err
		}
		pf.Category = c
	}
	if a.status != "" {
		s, err := models.ParseStatus(a.status)
		if err != nil {
			return pf, err
		}
		pf.Status = s
	}
	if a.minStock >= 0 {
		pf.MinStock = &a.minStock
	}
	if a.maxStock >= 0 {
		pf.MaxStock = &a.maxStock
	}
	return pf, nil
}

func (a *app) newStore() *inventory.Store {
	return inventory.NewStore(a.c, inventory.WithDebounce(a.debounce))
}

func (a *app) search(ctx context.Context, text string) error {
	pf, err := a.filter(text)
	if err != nil {
		return err
	}

	store := a.newStore()
	defer store.Close()

	store.LoadProducts(pf)
	state, err := store.WaitFor(ctx, func(s inventory.State) bool {
		return s.ProductsLoading == models.LoadingSuccess || s.ProductsLoading == models.LoadingError
	})
	if err != nil {
		return err
	}
	if state.ProductsLoading == models.LoadingError {
		return errors.New(state.Error)
	}

	if a.json {
		return a.printJSON(state.Products)
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSKU\tNAME\tSTOCK\tMIN\tMAX\tSTATUS\tLOCATION")
	for _, p := range state.Products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%s\t%s\n", p.ID, p.SKU, p.Name, p.CurrentStock, p.MinStock, p.MaxStock, p.Status, p.Location)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	v := state.Views
	fmt.Fprintf(a.out, "\n%d products, %d low stock, %d out of stock, %d critical\n",
		v.ProductsCount, len(v.LowStockProducts), len(v.OutOfStockProducts), v.CriticalStockCount)
	return nil
}

// lookup resolves a numeric id or a SKU.
func (a *app) lookup(ctx context.Context, ref string) (models.Product, error) {
	if _, err := strconv.Atoi(ref); err == nil {
		return a.c.GetByID(ctx, ref)
	}
	return a.c.GetBySKU(ctx, ref)
}

func (a *app) printProduct(p models.Product) error {
	if a.json {
		return a.printJSON(p)
	}
	fmt.Fprintf(a.out, "%s  %s (id %s)\n", p.SKU, p.Name, p.ID)
	fmt.Fprintf(a.out, "  %s\n", p.Description)
	fmt.Fprintf(a.out, "  category: %s  price: %.2f\n", p.Category, p.Price)
	fmt.Fprintf(a.out, "  stock:    %d %s (min %d, max %d) %s\n", p.CurrentStock, p.Unit, p.MinStock, p.MaxStock, p.Status)
	fmt.Fprintf(a.out, "  location: %s\n", p.Location)
	return nil
}

func (a *app) adjust(ctx context.Context, ref string) error {
	if !a.stockSet {
		return errors.New("--stock is required")
	}

	if a.c.Token() == "" {
		if a.email == "" || a.password == "" {
			return errors.New("adjust needs --token or --email and --password")
		}
		if _, err := a.c.Login(ctx, a.email, a.password); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
	}

	product, err := a.lookup(ctx, ref)
	if err != nil {
		return err
	}

	form := models.AdjustmentForm{
		NewStock:       a.stock,
		AdjustmentType: models.AdjustmentType(strings.ToLower(a.adjType)),
		Reason:         models.Reason(strings.ToLower(a.reason)),
		Notes:          a.notes,
	}
	if check := inventory.ValidateForm(&product, form); !check.Valid {
		msgs := make([]string, 0, len(check.Errors))
		for _, e := range check.Errors {
			msgs = append(msgs, e.Field+": "+e.Description)
		}
		return errors.New(strings.Join(msgs, "; "))
	}

	store := a.newStore()
	defer store.Close()

	store.SetSelectedProduct(product)
	store.AdjustStock(ctx, form)

	state := store.Snapshot()
	if state.AdjustmentLoading != models.LoadingSuccess {
		return errors.New(state.Error)
	}

	if a.json {
		return a.printJSON(state.LastAdjustment)
	}
	adj := state.LastAdjustment
	fmt.Fprintf(a.out, "%s: %d -> %d (%+d) %s, %s\n",
		adj.ProductSKU, adj.PreviousStock, adj.NewStock, adj.Delta(), adj.AdjustmentType.Label(), adj.Reason.Label())
	if state.SelectedProduct.IsCritical() {
		fmt.Fprintf(a.out, "warning: %s is at or below its minimum stock (%d)\n", state.SelectedProduct.SKU, state.SelectedProduct.MinStock)
	}
	return nil
}

func (a *app) history(ctx context.Context, ref string) error {
	product, err := a.lookup(ctx, ref)
	if err != nil {
		return err
	}

	adjustments, total, err := a.c.History(ctx, product.ID, a.offset, a.limit)
	if err != nil {
		return err
	}
	if a.json {
		return a.printJSON(adjustments)
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tFROM\tTO\tDELTA\tTYPE\tREASON\tBY\tNOTES")
	for _, adj := range adjustments {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%+d\t%s\t%s\t%s\t%s\n",
			adj.AdjustedAt.Local().Format(time.DateTime), adj.PreviousStock, adj.NewStock, adj.Delta(),
			adj.AdjustmentType.Label(), adj.Reason.Label(), adj.AdjustedBy, adj.Notes)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\nshowing %d of %d adjustments for %s\n", len(adjustments), total, product.SKU)
	return nil
}

func (a *app) dashboard(ctx context.Context) error {
	m, err := a.c.Dashboard(ctx)
	if err != nil {
		return err
	}
	if a.json {
		return a.printJSON(m)
	}

	fmt.Fprintf(a.out, "products:      %d\n", m.TotalProducts)
	fmt.Fprintf(a.out, "adjustments:   %d\n", m.TotalAdjustments)
	fmt.Fprintf(a.out, "low stock:     %d\n", m.LowStockCount)
	fmt.Fprintf(a.out, "out of stock:  %d\n", m.OutOfStockCount)
	fmt.Fprintf(a.out, "critical:      %d\n", m.CriticalStockCount)
	if m.MostAdjustedProduct.AdjustmentCount > 0 {
		fmt.Fprintf(a.out, "most adjusted: %s (%d)\n", m.MostAdjustedProduct.Name, m.MostAdjustedProduct.AdjustmentCount)
	}
	return nil
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func joinTypes() string {
	s := make([]string, len(models.AdjustmentTypes))
	for i, t := range models.AdjustmentTypes {
		s[i] = string(t)
	}
	return strings.Join(s, ", ")
}

func joinReasons() string {
	s := make([]string, len(models.Reasons))
	for i, r := range models.Reasons {
		s[i] = string(r)
	}
	return strings.Join(s, ", ")
}
