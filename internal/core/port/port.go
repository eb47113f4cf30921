package port

import (
	"context"
	"io"
	"time"

	"github.com/peakgear/storefront/internal/core/domain"
)

type CatalogGateway interface {
	FetchProducts(context.Context, domain.Filter, int, int) ([]domain.Product, error)
	FetchPopular(context.Context, int, int) ([]domain.Product, error)
	FetchProduct(context.Context, string) (domain.Product, error)
	FetchVariants(context.Context, string, string) ([]domain.ProductVariant, error)
	IncrementViews(context.Context, string) error
	FetchCategories(context.Context) ([]domain.Category, error)
}

type FacetsGateway interface {
	FetchBrandFacet(context.Context, domain.Filter) ([]string, error)
	FetchSizeFacet(context.Context, domain.Filter) ([]string, error)
	FetchGenderFacet(context.Context, domain.Filter) ([]string, error)
}

type AuthGateway interface {
	Login(context.Context, domain.Credentials) error
	Logout(context.Context) error
	Register(context.Context, domain.Credentials) error
	Me(context.Context) (domain.User, error)
	AdminLogin(context.Context, domain.Credentials) (string, error)
	RequestPasswordReset(context.Context, string) error
	ConfirmPasswordReset(context.Context, string, string) error
	RequestEmailVerification(context.Context) error
	ConfirmEmailVerification(context.Context, string) error
}

type FavoritesGateway interface {
	FetchFavorites(context.Context) ([]domain.Favorite, error)
	AddFavorite(context.Context, domain.Product) error
	RemoveFavorite(context.Context, string, string) error
}

type AddressGateway interface {
	FetchAddresses(context.Context) ([]domain.Address, error)
	CreateAddress(context.Context, domain.Address) (domain.Address, error)
	UpdateAddress(context.Context, domain.Address) (domain.Address, error)
	DeleteAddress(context.Context, string) error
}

type BannersGateway interface {
	FetchBanners(context.Context) ([]domain.Banner, error)
	UploadBanner(context.Context, string, io.Reader, string, string) (domain.Banner, error)
	UpdateBanner(context.Context, domain.Banner) error
	DeleteBanner(context.Context, string) error
}

type BrandsGateway interface {
	FetchBrands(context.Context) ([]domain.Brand, error)
	UpdateBrand(context.Context, domain.Brand) error
	UploadBrandLogo(context.Context, string, string, io.Reader) (string, error)
}

type CollectionsGateway interface {
	FetchCollections(context.Context) ([]domain.Collection, error)
	FetchCollection(context.Context, string) (domain.Collection, error)
	CreateCollection(context.Context, domain.Collection) (domain.Collection, error)
	UpdateCollection(context.Context, domain.Collection) error
	DeleteCollection(context.Context, string) error
}

type ImagesGateway interface {
	UploadProductImage(context.Context, string, string, io.Reader) (string, error)
	DeleteProductImage(context.Context, string, string) error
	SetProductImageURLs(context.Context, string, string) error
	SyncGroupImages(context.Context, string, string) error
}

type ImportGateway interface {
	ImportSpreadsheet(context.Context, string, io.Reader) (domain.ImportSummary, error)
}

type MovementsGateway interface {
	SearchMovements(context.Context, domain.MovementQuery) ([]domain.InventoryMovement, error)
}

// StateStore is the persistent local state shared between runs:
// the admin bearer token and the last bulk-import timestamp.
// Writes are idempotent last-write-wins.
type StateStore interface {
	Token() string
	SetToken(string) error
	ClearToken() error
	LastImport() time.Time
	SetLastImport(time.Time) error
}
