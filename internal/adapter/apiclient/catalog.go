package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/peakgear/storefront/internal/core/domain"
	"github.com/peakgear/storefront/internal/core/port"
)

var _ port.CatalogGateway = (*Client)(nil)
var _ port.FacetsGateway = (*Client)(nil)

type (
	productJSON struct {
		ID            string               `json:"id"`
		Name          string               `json:"name"`
		DisplayName   string               `json:"display_name"`
		Color         string               `json:"color"`
		Sizes         []string             `json:"sizes"`
		Price         string               `json:"price"`
		Discount      int                  `json:"discount"`
		DiscountPrice string               `json:"discount_price"`
		Images        string               `json:"images"`
		Quantity      int                  `json:"quantity"`
		Reserved      bool                 `json:"reserved"`
		Barcode       string               `json:"barcode"`
		Views         int                  `json:"views"`
		Brand         string               `json:"brand"`
		Gender        string               `json:"gender"`
		CategoryKey   string               `json:"category_key"`
		Variants      []productVariantJSON `json:"variants"`
	}

	productVariantJSON struct {
		ID    string `json:"id"`
		Color string `json:"color"`
		Image string `json:"image"`
	}

	categoryJSON struct {
		Key           string `json:"key"`
		Title         string `json:"title"`
		Subcategories []struct {
			Key   string `json:"key"`
			Title string `json:"title"`
		} `json:"subcategories"`
	}
)

func (p productJSON) toDomain() domain.Product {
	dp := domain.Product{
		ProductID:     p.ID,
		Name:          p.Name,
		DisplayName:   p.DisplayName,
		Color:         p.Color,
		Sizes:         p.Sizes,
		Price:         p.Price,
		Discount:      p.Discount,
		DiscountPrice: p.DiscountPrice,
		ImageURLs:     p.Images,
		Quantity:      p.Quantity,
		Reserved:      p.Reserved,
		Barcode:       p.Barcode,
		Views:         p.Views,
		Brand:         p.Brand,
		Gender:        p.Gender,
		CategoryKey:   p.CategoryKey,
	}
	for _, v := range p.Variants {
		dp.Variants = append(dp.Variants, domain.ProductVariant{
			ProductID: v.ID,
			Color:     v.Color,
			ImageURL:  v.Image,
		})
	}
	return dp
}

func toDomainProducts(ps []productJSON) []domain.Product {
	ds := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		ds = append(ds, p.toDomain())
	}
	return ds
}

// listingQuery maps the filter to the listing endpoints' parameter
// names. Category keys travel as category_key/subcategory_key.
func listingQuery(f domain.Filter) url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("search", f.Search)
	set("category_key", f.Category)
	set("subcategory_key", f.Subcategory)
	set("brand", f.Brand)
	set("gender", f.Gender)
	set("size", f.Size)
	set("sort", string(f.Sort))
	return q
}

func pageQuery(q url.Values, limit, offset int) url.Values {
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	return q
}

func (c *Client) FetchProducts(
	ctx context.Context, f domain.Filter, limit, offset int,
) ([]domain.Product, error) {
	var ps []productJSON
	q := pageQuery(listingQuery(f), limit, offset)
	err := c.do(ctx, http.MethodGet, "/api/products", q, nil, &ps, false)
	if err != nil {
		return nil, err
	}
	return toDomainProducts(ps), nil
}

// FetchProductsRaw is the unfiltered admin listing used by the
// product editor search. Requires the admin token.
func (c *Client) FetchProductsRaw(
	ctx context.Context, search string, limit, offset int,
) ([]domain.Product, error) {
	var ps []productJSON
	q := pageQuery(url.Values{}, limit, offset)
	if search != "" {
		q.Set("search", search)
	}
	err := c.do(ctx, http.MethodGet, "/api/products/raw", q, nil, &ps, true)
	if err != nil {
		return nil, err
	}
	return toDomainProducts(ps), nil
}

func (c *Client) CountProducts(
	ctx context.Context, f domain.Filter,
) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	err := c.do(
		ctx, http.MethodGet, "/api/products/count",
		listingQuery(f), nil, &out, false,
	)
	if err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (c *Client) FetchPopular(
	ctx context.Context, limit, offset int,
) ([]domain.Product, error) {
	var ps []productJSON
	q := pageQuery(url.Values{}, limit, offset)
	err := c.do(ctx, http.MethodGet, "/api/products/popular", q, nil, &ps, false)
	if err != nil {
		return nil, err
	}
	return toDomainProducts(ps), nil
}

func (c *Client) FetchRandom(
	ctx context.Context, limit int,
) ([]domain.Product, error) {
	var ps []productJSON
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	err := c.do(ctx, http.MethodGet, "/api/products/random", q, nil, &ps, false)
	if err != nil {
		return nil, err
	}
	return toDomainProducts(ps), nil
}

func (c *Client) FetchProduct(
	ctx context.Context, productID string,
) (domain.Product, error) {
	var p productJSON
	err := c.do(
		ctx, http.MethodGet, "/api/products/"+url.PathEscape(productID),
		nil, nil, &p, false,
	)
	if err != nil {
		return domain.Product{}, err
	}
	return p.toDomain(), nil
}

// FetchVariants lists the color-variant siblings of a product:
// same name, excluding the given color.
func (c *Client) FetchVariants(
	ctx context.Context, name, excludeColor string,
) ([]domain.ProductVariant, error) {
	var vs []productVariantJSON
	q := url.Values{"search": {name}}
	if excludeColor != "" {
		q.Set("exclude", excludeColor)
	}
	err := c.do(ctx, http.MethodGet, "/api/products/variants", q, nil, &vs, false)
	if err != nil {
		return nil, err
	}
	ds := make([]domain.ProductVariant, 0, len(vs))
	for _, v := range vs {
		ds = append(ds, domain.ProductVariant{
			ProductID: v.ID, Color: v.Color, ImageURL: v.Image,
		})
	}
	return ds, nil
}

func (c *Client) IncrementViews(ctx context.Context, productID string) error {
	return c.do(
		ctx, http.MethodPost,
		"/api/products/"+url.PathEscape(productID)+"/view",
		nil, nil, nil, false,
	)
}

func (c *Client) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	var cs []categoryJSON
	err := c.do(ctx, http.MethodGet, "/api/categories", nil, nil, &cs, false)
	if err != nil {
		return nil, err
	}
	ds := make([]domain.Category, 0, len(cs))
	for _, cat := range cs {
		d := domain.Category{Key: cat.Key, Title: cat.Title}
		for _, sub := range cat.Subcategories {
			d.Subcategories = append(d.Subcategories, domain.Subcategory{
				Key: sub.Key, Title: sub.Title,
			})
		}
		ds = append(ds, d)
	}
	return ds, nil
}

func (c *Client) fetchFacet(
	ctx context.Context, path string, f domain.Filter,
) ([]string, error) {
	var vs []string
	err := c.do(ctx, http.MethodGet, path, listingQuery(f), nil, &vs, false)
	if err != nil {
		return nil, err
	}
	return vs, nil
}

func (c *Client) FetchBrandFacet(
	ctx context.Context, f domain.Filter,
) ([]string, error) {
	return c.fetchFacet(ctx, "/api/facets/brands", f)
}

func (c *Client) FetchSizeFacet(
	ctx context.Context, f domain.Filter,
) ([]string, error) {
	return c.fetchFacet(ctx, "/api/facets/sizes", f)
}

func (c *Client) FetchGenderFacet(
	ctx context.Context, f domain.Filter,
) ([]string, error) {
	return c.fetchFacet(ctx, "/api/facets/genders", f)
}
