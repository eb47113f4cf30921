package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/peakgear/storefront/config"
	"github.com/peakgear/storefront/internal/app"
	"github.com/peakgear/storefront/internal/core/domain"
	"github.com/peakgear/storefront/internal/core/service"
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
	case "login":
		adminLogin(sigCtx, a, os.Args[2:])
	case "token":
		tokenInfo(a)
	case "import":
		bulkImport(sigCtx, a, os.Args[2:])
	case "images":
		images(sigCtx, a, os.Args[2:])
	case "banners":
		banners(sigCtx, a, os.Args[2:])
	case "brands":
		brands(sigCtx, a, os.Args[2:])
	case "collections":
		collections(sigCtx, a, os.Args[2:])
	case "movements":
		movements(sigCtx, a, os.Args[2:])
	default:
		printUsage()
		fallDown()
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, strings.TrimSpace(`
usage: shopadm <command> [flags]

commands:
  login        obtain and store the admin bearer token
  token        show stored token expiry
  import       upload a catalog spreadsheet
  images       edit a product's image slots
  banners      manage banners
  brands       edit brand metadata
  collections  manage collections
  movements    review inventory movement history
`))
}

func fallDown() {
	os.Exit(2)
}

func adminLogin(ctx context.Context, a app.App, args []string) {
	fs := pflag.NewFlagSet("login", pflag.ExitOnError)
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	_ = fs.Parse(args)

	_, err := a.Client.AdminLogin(
		ctx, domain.Credentials{Email: *email, Password: *password},
	)
	if err != nil {
		slog.Error("admin login failed", "err", err)
		fallDown()
	}
	fmt.Println("token stored")
}

func tokenInfo(a app.App) {
	exp, ok := a.Client.TokenExpiry()
	if !ok {
		fmt.Println("no token stored or no expiry claim")
		return
	}
	fmt.Printf("token expires at %s\n", exp.Format(time.RFC3339))
}

func bulkImport(ctx context.Context, a app.App, args []string) {
	if len(args) < 1 {
		slog.Error("import: spreadsheet path required")
		fallDown()
	}

	f, err := os.Open(args[0])
	if err != nil {
		slog.Error("failed to open spreadsheet", "err", err)
		fallDown()
	}
	defer f.Close()

	sum, err := a.Admin.Import(ctx, filepath.Base(args[0]), f)
	if err != nil {
		slog.Error("import failed", "err", err)
		fallDown()
	}

	fmt.Printf(
		"created=%d updated=%d deleted=%d\n",
		sum.Created, sum.Updated, sum.Deleted,
	)
	printDetails("created", sum.CreatedDetails)
	printDetails("updated", sum.UpdatedDetails)
	printDetails("deleted", sum.DeletedDetails)

	if t := a.Admin.LastImport(); !t.IsZero() {
		fmt.Printf("last import: %s\n", t.Format(time.RFC3339))
	}
}

func printDetails(kind string, rows []string) {
	for _, r := range rows {
		fmt.Printf("  %s: %s\n", kind, r)
	}
}

func images(ctx context.Context, a app.App, args []string) {
	if len(args) < 2 {
		slog.Error("images: usage: images <product-id> <show|set-main|set-prev|add|delete-main|delete-prev|delete> [files|index]")
		fallDown()
	}

	sess, err := a.Images.Open(ctx, args[0])
	if err != nil {
		slog.Error("failed to open image editor", "err", err)
		fallDown()
	}
	defer sess.Close()

	action, rest := args[1], args[2:]
	switch action {
	case "show":
	case "set-main":
		err = withFile(rest, func(f *os.File) error {
			return sess.ReplaceMain(ctx, f)
		})
	case "set-prev":
		err = withFile(rest, func(f *os.File) error {
			return sess.ReplacePreview(ctx, f)
		})
	case "delete-main":
		err = sess.DeleteMain(ctx)
	case "delete-prev":
		err = sess.DeletePreview(ctx)
	case "add":
		err = addGallery(ctx, sess, rest)
	case "delete":
		err = deleteGallery(ctx, sess, rest)
	default:
		slog.Error("images: unknown action", "action", action)
		fallDown()
	}
	if err != nil {
		slog.Error("image operation failed", "err", err)
		fallDown()
	}

	set := sess.Images()
	fmt.Printf("main: %s\npreview: %s\n", set.Main, set.Preview)
	for _, g := range set.Gallery {
		fmt.Printf("gallery %d: %s\n", g.Index, g.URL)
	}
}

func withFile(args []string, fn func(*os.File) error) error {
	if len(args) < 1 {
		return fmt.Errorf("image file path required")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	return fn(f)
}

func addGallery(ctx context.Context, sess *service.EditorSession, paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("at least one image file required")
	}

	files := make([]*os.File, 0, len(paths))
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()

	readers := make([]io.Reader, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return err
		}
		files = append(files, f)
		readers = append(readers, f)
	}
	return sess.AddGallery(ctx, readers)
}

func deleteGallery(ctx context.Context, sess *service.EditorSession, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("gallery index required")
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("gallery index must be a number: %w", err)
	}
	return sess.DeleteGalleryImage(ctx, idx)
}

func banners(ctx context.Context, a app.App, args []string) {
	if len(args) == 0 || args[0] == "list" {
		bs, err := a.Admin.Banners(ctx)
		if err != nil {
			slog.Error("failed to fetch banners", "err", err)
			fallDown()
		}
		for _, b := range bs {
			fmt.Printf("%s  %s -> %s (%s)\n", b.BannerID, b.ImageURL, b.Link, b.Alt)
		}
		return
	}

	fs := pflag.NewFlagSet("banners", pflag.ExitOnError)
	id := fs.String("id", "", "banner id")
	image := fs.String("image", "", "image file (add)")
	link := fs.String("link", "", "target link")
	alt := fs.String("alt", "", "alt text")
	_ = fs.Parse(args[1:])

	switch args[0] {
	case "add":
		f, err := os.Open(*image)
		if err != nil {
			slog.Error("failed to open banner image", "err", err)
			fallDown()
		}
		defer f.Close()
		b, err := a.Admin.UploadBanner(ctx, filepath.Base(*image), f, *link, *alt)
		if err != nil {
			slog.Error("failed to upload banner", "err", err)
			fallDown()
		}
		fmt.Printf("banner %s created\n", b.BannerID)
	case "update":
		err := a.Admin.UpdateBanner(ctx, domain.Banner{
			BannerID: *id, Link: *link, Alt: *alt,
		})
		if err != nil {
			slog.Error("failed to update banner", "err", err)
			fallDown()
		}
	case "delete":
		if err := a.Admin.DeleteBanner(ctx, *id); err != nil {
			slog.Error("failed to delete banner", "err", err)
			fallDown()
		}
	default:
		slog.Error("banners: unknown action", "action", args[0])
		fallDown()
	}
}

func brands(ctx context.Context, a app.App, args []string) {
	if len(args) == 0 || args[0] == "list" {
		bs, err := a.Admin.Brands(ctx)
		if err != nil {
			slog.Error("failed to fetch brands", "err", err)
			fallDown()
		}
		for _, b := range bs {
			fmt.Printf("%s  %s  %s\n", b.BrandID, b.Name, b.LogoURL)
		}
		return
	}

	fs := pflag.NewFlagSet("brands", pflag.ExitOnError)
	id := fs.String("id", "", "brand id")
	description := fs.String("description", "", "brand description")
	logo := fs.String("logo", "", "logo image file")
	_ = fs.Parse(args[1:])

	switch args[0] {
	case "update":
		err := a.Admin.UpdateBrand(ctx, domain.Brand{
			BrandID: *id, Description: *description,
		})
		if err != nil {
			slog.Error("failed to update brand", "err", err)
			fallDown()
		}
	case "logo":
		f, err := os.Open(*logo)
		if err != nil {
			slog.Error("failed to open logo file", "err", err)
			fallDown()
		}
		defer f.Close()
		url, err := a.Admin.UploadBrandLogo(ctx, *id, filepath.Base(*logo), f)
		if err != nil {
			slog.Error("failed to upload logo", "err", err)
			fallDown()
		}
		fmt.Printf("logo: %s\n", url)
	default:
		slog.Error("brands: unknown action", "action", args[0])
		fallDown()
	}
}

func collections(ctx context.Context, a app.App, args []string) {
	if len(args) == 0 || args[0] == "list" {
		cs, err := a.Admin.Collections(ctx)
		if err != nil {
			slog.Error("failed to fetch collections", "err", err)
			fallDown()
		}
		for _, c := range cs {
			mark := " "
			if c.Featured {
				mark = "*"
			}
			fmt.Printf("%s %s  %s (%d products)\n",
				mark, c.CollectionID, c.Title, len(c.ProductIDs))
		}
		return
	}

	fs := pflag.NewFlagSet("collections", pflag.ExitOnError)
	id := fs.String("id", "", "collection id")
	title := fs.String("title", "", "title")
	description := fs.String("description", "", "description")
	slug := fs.String("slug", "", "slug (generated when empty)")
	featured := fs.Bool("featured", false, "featured flag")
	products := fs.StringSlice("products", nil, "ordered product ids")
	_ = fs.Parse(args[1:])

	col := domain.Collection{
		CollectionID: *id,
		Title:        *title,
		Description:  *description,
		Slug:         *slug,
		Featured:     *featured,
		ProductIDs:   *products,
	}

	var err error
	switch args[0] {
	case "create":
		var created domain.Collection
		created, err = a.Admin.CreateCollection(ctx, col)
		if err == nil {
			fmt.Printf("collection %s created, slug %s\n",
				created.CollectionID, created.Slug)
		}
	case "update":
		err = a.Admin.UpdateCollection(ctx, col)
	case "delete":
		err = a.Admin.DeleteCollection(ctx, *id)
	default:
		slog.Error("collections: unknown action", "action", args[0])
		fallDown()
	}
	if err != nil {
		slog.Error("collection operation failed", "err", err)
		fallDown()
	}
}

func movements(ctx context.Context, a app.App, args []string) {
	fs := pflag.NewFlagSet("movements", pflag.ExitOnError)
	search := fs.String("search", "", "product name, color or barcode")
	limit := fs.Int("limit", 50, "max rows")
	offset := fs.Int("offset", 0, "offset")
	_ = fs.Parse(args)

	ms, err := a.Admin.Movements(ctx, domain.MovementQuery{
		Search: *search, Limit: *limit, Offset: *offset,
	})
	if err != nil {
		slog.Error("failed to fetch movements", "err", err)
		fallDown()
	}

	for _, m := range ms {
		void := ""
		if m.Voided {
			void = " VOID"
		}
		fmt.Printf("%s %s #%s  %s [%s] %+d%s\n",
			m.DocDate.Format("2006-01-02"), m.DocType, m.DocNumber,
			m.ProductName, m.Color, m.Delta, void)
	}
}
