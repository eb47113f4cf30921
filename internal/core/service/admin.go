package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/peakgear/storefront/internal/core/domain"
	"github.com/peakgear/storefront/internal/core/port"
)

// AdminService groups the back-office screens: banners, brand
// metadata, collections, inventory movements and the spreadsheet
// bulk import. Each is an isolated CRUD surface over its gateway.
type AdminService struct {
	banners     port.BannersGateway
	brands      port.BrandsGateway
	collections port.CollectionsGateway
	movements   port.MovementsGateway
	importer    port.ImportGateway
	state       port.StateStore
}

func NewAdmin(
	banners port.BannersGateway,
	brands port.BrandsGateway,
	collections port.CollectionsGateway,
	movements port.MovementsGateway,
	importer port.ImportGateway,
	state port.StateStore,
) AdminService {
	return AdminService{banners, brands, collections, movements, importer, state}
}

func (s AdminService) Banners(ctx context.Context) ([]domain.Banner, error) {
	const op = "AdminService.Banners"

	bs, err := s.banners.FetchBanners(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return bs, nil
}

func (s AdminService) UploadBanner(
	ctx context.Context, filename string, file io.Reader, link, alt string,
) (domain.Banner, error) {
	const op = "AdminService.UploadBanner"

	b, err := s.banners.UploadBanner(ctx, filename, file, link, alt)
	if err != nil {
		return domain.Banner{}, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

func (s AdminService) UpdateBanner(ctx context.Context, b domain.Banner) error {
	const op = "AdminService.UpdateBanner"

	if err := s.banners.UpdateBanner(ctx, b); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s AdminService) DeleteBanner(ctx context.Context, bannerID string) error {
	const op = "AdminService.DeleteBanner"

	if err := s.banners.DeleteBanner(ctx, bannerID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s AdminService) Brands(ctx context.Context) ([]domain.Brand, error) {
	const op = "AdminService.Brands"

	bs, err := s.brands.FetchBrands(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return bs, nil
}

func (s AdminService) UpdateBrand(ctx context.Context, b domain.Brand) error {
	const op = "AdminService.UpdateBrand"

	if err := s.brands.UpdateBrand(ctx, b); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s AdminService) UploadBrandLogo(
	ctx context.Context, brandID, filename string, file io.Reader,
) (string, error) {
	const op = "AdminService.UploadBrandLogo"

	logo, err := s.brands.UploadBrandLogo(ctx, brandID, filename, file)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return logo, nil
}

func (s AdminService) Collections(ctx context.Context) ([]domain.Collection, error) {
	const op = "AdminService.Collections"

	cs, err := s.collections.FetchCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cs, nil
}

func (s AdminService) Collection(
	ctx context.Context, collectionID string,
) (domain.Collection, error) {
	const op = "AdminService.Collection"

	c, err := s.collections.FetchCollection(ctx, collectionID)
	if err != nil {
		return domain.Collection{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// CreateCollection fills a blank slug from the title, suffixed to
// stay unique.
func (s AdminService) CreateCollection(
	ctx context.Context, c domain.Collection,
) (domain.Collection, error) {
	const op = "AdminService.CreateCollection"

	if strings.TrimSpace(c.Slug) == "" {
		c.Slug = slugify(c.Title)
	}

	created, err := s.collections.CreateCollection(ctx, c)
	if err != nil {
		return domain.Collection{}, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

func (s AdminService) UpdateCollection(ctx context.Context, c domain.Collection) error {
	const op = "AdminService.UpdateCollection"

	if err := s.collections.UpdateCollection(ctx, c); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s AdminService) DeleteCollection(ctx context.Context, collectionID string) error {
	const op = "AdminService.DeleteCollection"

	if err := s.collections.DeleteCollection(ctx, collectionID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s AdminService) Movements(
	ctx context.Context, q domain.MovementQuery,
) ([]domain.InventoryMovement, error) {
	const op = "AdminService.Movements"

	ms, err := s.movements.SearchMovements(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ms, nil
}

// Import uploads the spreadsheet and surfaces the server summary
// as-is; the file contents are not validated locally. The import
// timestamp is persisted for display only.
func (s AdminService) Import(
	ctx context.Context, filename string, file io.Reader,
) (domain.ImportSummary, error) {
	const op = "AdminService.Import"

	sum, err := s.importer.ImportSpreadsheet(ctx, filename, file)
	if err != nil {
		return domain.ImportSummary{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.state.SetLastImport(time.Now()); err != nil {
		slog.With("op", op).Warn("failed to persist import timestamp", "err", err)
	}
	return sum, nil
}

func (s AdminService) LastImport() time.Time {
	return s.state.LastImport()
}

func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Join(strings.Fields(slug), "-")
	if slug == "" {
		return uuid.NewString()
	}
	return slug + "-" + uuid.NewString()[:8]
}
