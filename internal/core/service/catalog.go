package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/peakgear/storefront/internal/core/domain"
	"github.com/peakgear/storefront/internal/core/port"
)

// CatalogService owns the browse side of the storefront: filtered
// feeds, facet option lists and product detail.
type CatalogService struct {
	catalog  port.CatalogGateway
	facets   port.FacetsGateway
	pageSize int
}

func NewCatalog(
	catalog port.CatalogGateway, facets port.FacetsGateway, pageSize int,
) CatalogService {
	return CatalogService{catalog, facets, pageSize}
}

// NewFeed starts a fresh paginated feed for the filter. Each
// distinct filter tuple gets its own feed; changing any dimension
// means building a new one.
func (s CatalogService) NewFeed(f domain.Filter) *Feed {
	return &Feed{
		catalog:  s.catalog,
		filter:   f,
		pageSize: s.pageSize,
	}
}

// Feed is an infinite-scroll product list: an incrementing offset
// cursor over either the filtered listing or, when no filter is
// active, the popular products endpoint.
type Feed struct {
	mu       sync.Mutex
	catalog  port.CatalogGateway
	filter   domain.Filter
	pageSize int
	products []domain.Product
	offset   int
	loading  bool
	done     bool
}

func (f *Feed) Filter() domain.Filter { return f.filter }

// Exhausted reports whether the last page was reached: the server
// returned fewer items than the page size.
func (f *Feed) Exhausted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.done
}

// LoadMore fetches the next page and merges it in. It reports
// whether new items arrived. A call while another load is in
// flight, or after the feed is exhausted, is a no-op.
func (f *Feed) LoadMore(ctx context.Context) (bool, error) {
	const op = "Feed.LoadMore"

	f.mu.Lock()
	if f.loading || f.done {
		f.mu.Unlock()
		return false, nil
	}
	f.loading = true
	filter, offset, size := f.filter, f.offset, f.pageSize
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.loading = false
		f.mu.Unlock()
	}()

	var (
		page []domain.Product
		err  error
	)
	if filter.IsHome() {
		page, err = f.catalog.FetchPopular(ctx, size, offset)
	} else {
		page, err = f.catalog.FetchProducts(ctx, filter, size, offset)
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	f.mu.Lock()
	f.products = append(f.products, page...)
	f.offset += len(page)
	if len(page) < size {
		f.done = true
	}
	f.mu.Unlock()

	return len(page) > 0, nil
}

// Products returns the merged pages, stably re-sorted by the
// feed's sort mode. The order is only final once the feed is
// exhausted; partial lists are best effort.
func (f *Feed) Products() []domain.Product {
	f.mu.Lock()
	merged := make([]domain.Product, len(f.products))
	copy(merged, f.products)
	sortMode := f.filter.Sort
	f.mu.Unlock()

	domain.SortProducts(merged, sortMode)
	return merged
}

// FacetOptions are the brand/size/gender choices available under
// the current partial filter.
type FacetOptions struct {
	Brands  []string
	Sizes   []string
	Genders []string
}

// FacetOptions fetches the three option lists in parallel. A
// failed facet degrades to an empty list instead of blocking the
// page.
func (s CatalogService) FacetOptions(
	ctx context.Context, f domain.Filter,
) FacetOptions {
	const op = "CatalogService.FacetOptions"
	log := slog.With("op", op)

	var opts FacetOptions
	var wg sync.WaitGroup

	fetch := func(name string, dst *[]string,
		fn func(context.Context, domain.Filter) ([]string, error),
	) {
		defer wg.Done()
		vs, err := fn(ctx, f)
		if err != nil {
			log.Warn("facet query failed", "facet", name, "err", err)
			return
		}
		*dst = vs
	}

	wg.Add(3)
	go fetch("brands", &opts.Brands, s.facets.FetchBrandFacet)
	go fetch("sizes", &opts.Sizes, s.facets.FetchSizeFacet)
	go fetch("genders", &opts.Genders, s.facets.FetchGenderFacet)
	wg.Wait()

	return opts
}

func (s CatalogService) Categories(
	ctx context.Context,
) ([]domain.Category, error) {
	const op = "CatalogService.Categories"

	cs, err := s.catalog.FetchCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cs, nil
}

// ProductDetail is one product with its resolved color-variant
// siblings and structured image slots.
type ProductDetail struct {
	Product  domain.Product
	Variants []domain.ProductVariant
	Images   domain.ImageSet
}

// ProductDetail fetches one product and resolves its siblings.
// The view-count increment is a side effect: failures are logged,
// never surfaced. A variants failure degrades to an empty list.
func (s CatalogService) ProductDetail(
	ctx context.Context, productID string,
) (ProductDetail, error) {
	const op = "CatalogService.ProductDetail"
	log := slog.With("op", op, "productID", productID)

	p, err := s.catalog.FetchProduct(ctx, productID)
	if err != nil {
		return ProductDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	d := ProductDetail{
		Product: p,
		Images:  domain.ParseImageSet(p.ImageURLs),
	}

	vs, err := s.catalog.FetchVariants(ctx, p.Name, p.Color)
	if err != nil {
		log.Warn("failed to resolve variants", "err", err)
	} else {
		d.Variants = vs
	}

	if err := s.catalog.IncrementViews(ctx, productID); err != nil {
		log.Warn("failed to increment view count", "err", err)
	}

	return d, nil
}
