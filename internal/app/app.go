package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/peakgear/storefront/config"
	"github.com/peakgear/storefront/internal/adapter/apiclient"
	"github.com/peakgear/storefront/internal/adapter/statestore"
	"github.com/peakgear/storefront/internal/core/service"
)

// App wires the adapters and core services together: the shared
// application context injected into the CLI front-ends instead of
// module-scoped state.
type App struct {
	cfg config.Config

	State     *statestore.FileStore
	Client    *apiclient.Client
	Catalog   service.CatalogService
	Session   *service.SessionService
	Addresses *service.AddressBook
	Admin     service.AdminService
	Images    service.ImageEditor
}

func New(cfg config.Config) (App, error) {
	const op = "app.New"

	app := App{cfg: cfg}
	app.initLogger()

	state, err := statestore.New(cfg.StateFile)
	if err != nil {
		return App{}, fmt.Errorf("%s: %w", op, err)
	}
	app.State = state

	client, err := apiclient.New(cfg.APIBaseURL, state)
	if err != nil {
		return App{}, fmt.Errorf("%s: %w", op, err)
	}
	app.Client = client

	app.Catalog = service.NewCatalog(client, client, cfg.Catalog.PageSize)
	app.Session = service.NewSession(client, client)
	app.Addresses = service.NewAddressBook(client)
	app.Admin = service.NewAdmin(
		client, client, client, client, client, state,
	)
	app.Images = service.NewImageEditor(
		client, client, cfg.Catalog.GalleryLimit,
	)

	client.OnSessionExpired(app.Session.HandleSessionExpired)

	return app, nil
}

func (app App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}
