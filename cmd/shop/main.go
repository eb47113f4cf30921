package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/peakgear/storefront/config"
	"github.com/peakgear/storefront/internal/app"
	"github.com/peakgear/storefront/internal/core/domain"
	"github.com/peakgear/storefront/pkg/debounce"
	"github.com/peakgear/storefront/pkg/sigctx"
	"github.com/spf13/pflag"
)

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	if cfg.LogLevel == slog.LevelDebug {
		cfg.Print()
	}

	a, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to init application", "err", err)
		fallDown()
	}

	if len(os.Args) < 2 {
		printUsage()
		fallDown()
	}

	switch os.Args[1] {
	case "browse":
		browse(sigCtx, a, os.Args[2:])
	case "search":
		liveSearch(sigCtx, a, cfg)
	case "show":
		show(sigCtx, a, os.Args[2:])
	case "login":
		login(sigCtx, a, os.Args[2:])
	case "logout":
		logout(sigCtx, a)
	case "register":
		register(sigCtx, a, os.Args[2:])
	case "favorites":
		favorites(sigCtx, a, os.Args[2:])
	case "addresses":
		addresses(sigCtx, a, os.Args[2:])
	case "categories":
		categories(sigCtx, a)
	case "random":
		random(sigCtx, a, os.Args[2:])
	case "reset-password":
		resetPassword(sigCtx, a, os.Args[2:])
	case "verify":
		verifyEmail(sigCtx, a, os.Args[2:])
	default:
		printUsage()
		fallDown()
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, strings.TrimSpace(`
usage: shop <command> [flags]

commands:
  browse     list products for a filter (or the popular feed)
  search     interactive search, debounced
  show       product detail with variants and image slots
  login      sign in
  logout     sign out
  register   create an account and sign in
  favorites  list, add or remove favorites
  addresses  manage shipping addresses
  categories list categories with subcategories
  random     show a few random products
  reset-password  request or confirm a password reset
  verify     request or confirm email verification
`))
}

func fallDown() {
	os.Exit(2)
}

func browse(ctx context.Context, a app.App, args []string) {
	fs := pflag.NewFlagSet("browse", pflag.ExitOnError)
	query := fs.String("query", "", "raw filter query string, e.g. category=snowboard&sort=asc")
	search := fs.String("search", "", "search text")
	category := fs.String("category", "", "category key")
	subcategory := fs.String("subcategory", "", "subcategory key")
	brand := fs.String("brand", "", "brand")
	gender := fs.String("gender", "", "gender")
	size := fs.String("size", "", "size")
	sortMode := fs.String("sort", "", "asc|desc|popular|discount")
	pages := fs.Int("pages", 1, "pages to load")
	facets := fs.Bool("facets", false, "print facet options")
	_ = fs.Parse(args)

	var f domain.Filter
	if *query != "" {
		var err error
		f, err = domain.DecodeFilterQuery(*query)
		if err != nil {
			slog.Error("invalid query string", "err", err)
			fallDown()
		}
	} else {
		f = domain.Filter{
			Search:      *search,
			Category:    *category,
			Subcategory: *subcategory,
			Brand:       *brand,
			Gender:      *gender,
			Size:        *size,
			Sort:        domain.SortMode(*sortMode),
		}
	}

	if !f.IsHome() {
		if n, err := a.Client.CountProducts(ctx, f); err == nil {
			fmt.Printf("%d products match\n", n)
		}
	}

	feed := a.Catalog.NewFeed(f)
	for i := 0; i < *pages && !feed.Exhausted(); i++ {
		if _, err := feed.LoadMore(ctx); err != nil {
			slog.Error("failed to load page", "err", err)
			fallDown()
		}
	}

	for _, p := range feed.Products() {
		printProduct(p)
	}

	if q, err := f.EncodeQuery(); err == nil && q != "" {
		fmt.Printf("\nshare link query: ?%s\n", q)
	}

	if *facets {
		opts := a.Catalog.FacetOptions(ctx, f)
		fmt.Printf(
			"\nbrands: %s\nsizes: %s\ngenders: %s\n",
			strings.Join(opts.Brands, ", "),
			strings.Join(opts.Sizes, ", "),
			strings.Join(opts.Genders, ", "),
		)
	}
}

// liveSearch reads keystroke lines from stdin and issues debounced
// catalog queries, discarding stale responses.
func liveSearch(ctx context.Context, a app.App, cfg config.Config) {
	feedFor := func(ctx context.Context, text string) ([]domain.Product, error) {
		feed := a.Catalog.NewFeed(domain.Filter{Search: text})
		if _, err := feed.LoadMore(ctx); err != nil {
			return nil, err
		}
		return feed.Products(), nil
	}

	d := debounce.New(
		cfg.Catalog.SearchDebounce,
		feedFor,
		func(text string, ps []domain.Product, err error) {
			if err != nil {
				slog.Error("search failed", "text", text, "err", err)
				return
			}
			fmt.Printf("-- %q: %d results\n", text, len(ps))
			for _, p := range ps {
				printProduct(p)
			}
		},
	)

	fmt.Println("type to search, ^D to quit")
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		d.Search(ctx, strings.TrimSpace(sc.Text()))
	}
}

func show(ctx context.Context, a app.App, args []string) {
	if len(args) < 1 {
		slog.Error("show: product id required")
		fallDown()
	}

	d, err := a.Catalog.ProductDetail(ctx, args[0])
	if err != nil {
		slog.Error("failed to fetch product", "err", err)
		fallDown()
	}

	printProduct(d.Product)
	fmt.Printf("sizes: %s\n", strings.Join(d.Product.Sizes, ", "))
	fmt.Printf("main: %s\npreview: %s\n", d.Images.Main, d.Images.Preview)
	for _, g := range d.Images.Gallery {
		fmt.Printf("gallery %d: %s\n", g.Index, g.URL)
	}
	for _, v := range d.Variants {
		fmt.Printf("variant: %s (%s)\n", v.ProductID, v.Color)
	}
}

func login(ctx context.Context, a app.App, args []string) {
	cr := credentialsFlags("login", args)
	if err := a.Session.Login(ctx, cr); err != nil {
		slog.Error("login failed", "err", err)
		fallDown()
	}
	u, _ := a.Session.User()
	fmt.Printf("signed in as %s\n", u.Email)
}

func logout(ctx context.Context, a app.App) {
	if err := a.Session.Logout(ctx); err != nil {
		slog.Warn("server logout failed, local session cleared", "err", err)
		return
	}
	fmt.Println("signed out")
}

func register(ctx context.Context, a app.App, args []string) {
	cr := credentialsFlags("register", args)
	if err := a.Session.Register(ctx, cr); err != nil {
		slog.Error("registration failed", "err", err)
		fallDown()
	}
	fmt.Println("account created and signed in")
}

func credentialsFlags(name string, args []string) domain.Credentials {
	fs := pflag.NewFlagSet(name, pflag.ExitOnError)
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	_ = fs.Parse(args)

	if *email == "" || *password == "" {
		slog.Error(name + ": --email and --password are required")
		fallDown()
	}
	return domain.Credentials{Email: *email, Password: *password}
}

func favorites(ctx context.Context, a app.App, args []string) {
	if err := a.Session.Refresh(ctx); err != nil {
		slog.Error("not signed in", "err", err)
		fallDown()
	}

	if len(args) == 0 || args[0] == "list" {
		for _, f := range a.Session.Favorites() {
			if f.Removed {
				continue
			}
			printProduct(f.Product)
		}
		return
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			slog.Error("favorites add: product id required")
			fallDown()
		}
		d, err := a.Catalog.ProductDetail(ctx, args[1])
		if err != nil {
			slog.Error("failed to fetch product", "err", err)
			fallDown()
		}
		if err := a.Session.AddFavorite(ctx, d.Product); err != nil {
			slog.Error("failed to add favorite", "err", err)
			fallDown()
		}
	case "remove":
		if len(args) < 3 {
			slog.Error("favorites remove: name and color required")
			fallDown()
		}
		if err := a.Session.RemoveFavorite(ctx, args[1], args[2]); err != nil {
			slog.Error("failed to remove favorite", "err", err)
			fallDown()
		}
	default:
		slog.Error("favorites: unknown action", "action", args[0])
		fallDown()
	}
}

func addresses(ctx context.Context, a app.App, args []string) {
	if len(args) == 0 || args[0] == "list" {
		if err := a.Addresses.Refresh(ctx); err != nil {
			slog.Error("failed to fetch addresses", "err", err)
			fallDown()
		}
		for _, ad := range a.Addresses.Addresses() {
			mark := " "
			if ad.Default {
				mark = "*"
			}
			fmt.Printf(
				"%s %s: %s, %s, %s %s\n",
				mark, ad.Label, ad.Line1, ad.City, ad.PostalCode, ad.Country,
			)
		}
		return
	}

	fs := pflag.NewFlagSet("addresses", pflag.ExitOnError)
	id := fs.String("id", "", "address id (update/delete)")
	label := fs.String("label", "", "label")
	line1 := fs.String("line1", "", "address line 1")
	line2 := fs.String("line2", "", "address line 2")
	city := fs.String("city", "", "city")
	region := fs.String("region", "", "region")
	postal := fs.String("postal", "", "postal code")
	country := fs.String("country", "", "country")
	isDefault := fs.Bool("default", false, "set as default")
	_ = fs.Parse(args[1:])

	ad := domain.Address{
		AddressID:  *id,
		Label:      *label,
		Line1:      *line1,
		Line2:      *line2,
		City:       *city,
		Region:     *region,
		PostalCode: *postal,
		Country:    *country,
		Default:    *isDefault,
	}

	var err error
	switch args[0] {
	case "create":
		_, err = a.Addresses.Create(ctx, ad)
	case "update":
		_, err = a.Addresses.Update(ctx, ad)
	case "delete":
		err = a.Addresses.Delete(ctx, *id)
	default:
		slog.Error("addresses: unknown action", "action", args[0])
		fallDown()
	}
	if err != nil {
		slog.Error("address operation failed", "err", err)
		fallDown()
	}
}

func categories(ctx context.Context, a app.App) {
	cs, err := a.Catalog.Categories(ctx)
	if err != nil {
		slog.Error("failed to fetch categories", "err", err)
		fallDown()
	}
	for _, c := range cs {
		fmt.Printf("%s (%s)\n", c.Title, c.Key)
		for _, sub := range c.Subcategories {
			fmt.Printf("  %s (%s)\n", sub.Title, sub.Key)
		}
	}
}

func random(ctx context.Context, a app.App, args []string) {
	fs := pflag.NewFlagSet("random", pflag.ExitOnError)
	limit := fs.Int("limit", 6, "products to show")
	_ = fs.Parse(args)

	ps, err := a.Client.FetchRandom(ctx, *limit)
	if err != nil {
		slog.Error("failed to fetch random products", "err", err)
		fallDown()
	}
	for _, p := range ps {
		printProduct(p)
	}
}

func resetPassword(ctx context.Context, a app.App, args []string) {
	fs := pflag.NewFlagSet("reset-password", pflag.ExitOnError)
	email := fs.String("email", "", "account email (request)")
	token := fs.String("token", "", "reset token (confirm)")
	password := fs.String("password", "", "new password (confirm)")
	_ = fs.Parse(args)

	var err error
	switch {
	case *token != "":
		err = a.Client.ConfirmPasswordReset(ctx, *token, *password)
	case *email != "":
		err = a.Client.RequestPasswordReset(ctx, *email)
	default:
		slog.Error("reset-password: --email or --token required")
		fallDown()
	}
	if err != nil {
		slog.Error("password reset failed", "err", err)
		fallDown()
	}
	fmt.Println("ok")
}

func verifyEmail(ctx context.Context, a app.App, args []string) {
	fs := pflag.NewFlagSet("verify", pflag.ExitOnError)
	token := fs.String("token", "", "verification token (confirm)")
	_ = fs.Parse(args)

	var err error
	if *token != "" {
		err = a.Client.ConfirmEmailVerification(ctx, *token)
	} else {
		err = a.Client.RequestEmailVerification(ctx)
	}
	if err != nil {
		slog.Error("email verification failed", "err", err)
		fallDown()
	}
	fmt.Println("ok")
}

func printProduct(p domain.Product) {
	price := p.Price
	if p.DiscountPrice != "" && p.Discount > 0 {
		price = fmt.Sprintf("%s (-%d%% -> %s)", p.Price, p.Discount, p.DiscountPrice)
	}
	fmt.Printf("%s  %s [%s]  %s  views=%d\n",
		p.ProductID, p.DisplayName, p.Color, price, p.Views)
}
