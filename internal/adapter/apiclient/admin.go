package apiclient

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/peakgear/storefront/internal/core/domain"
	"github.com/peakgear/storefront/internal/core/port"
)

var _ port.BannersGateway = (*Client)(nil)
var _ port.BrandsGateway = (*Client)(nil)
var _ port.CollectionsGateway = (*Client)(nil)
var _ port.ImagesGateway = (*Client)(nil)
var _ port.ImportGateway = (*Client)(nil)
var _ port.MovementsGateway = (*Client)(nil)

type (
	bannerJSON struct {
		ID    string `json:"id"`
		Image string `json:"image"`
		Link  string `json:"link"`
		Alt   string `json:"alt"`
	}

	brandJSON struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Logo        string `json:"logo"`
		Description string `json:"description"`
	}

	collectionJSON struct {
		ID          string   `json:"id"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Slug        string   `json:"slug"`
		Featured    bool     `json:"featured"`
		ProductIDs  []string `json:"product_ids"`
	}

	importSummaryJSON struct {
		Created        int      `json:"created"`
		Updated        int      `json:"updated"`
		Deleted        int      `json:"deleted"`
		CreatedDetails []string `json:"created_details"`
		UpdatedDetails []string `json:"updated_details"`
		DeletedDetails []string `json:"deleted_details"`
	}

	movementJSON struct {
		DocType     string `json:"doc_type"`
		DocDate     string `json:"doc_date"`
		DocNumber   string `json:"doc_number"`
		ProductID   string `json:"product_id"`
		ProductName string `json:"product_name"`
		Color       string `json:"color"`
		Barcode     string `json:"barcode"`
		Delta       int    `json:"delta"`
		SyncedAt    string `json:"synced_at"`
		Voided      bool   `json:"voided"`
	}
)

func (b bannerJSON) toDomain() domain.Banner {
	return domain.Banner{
		BannerID: b.ID, ImageURL: b.Image, Link: b.Link, Alt: b.Alt,
	}
}

func (c collectionJSON) toDomain() domain.Collection {
	return domain.Collection{
		CollectionID: c.ID,
		Title:        c.Title,
		Description:  c.Description,
		Slug:         c.Slug,
		Featured:     c.Featured,
		ProductIDs:   c.ProductIDs,
	}
}

func toCollectionJSON(c domain.Collection) collectionJSON {
	return collectionJSON{
		ID:          c.CollectionID,
		Title:       c.Title,
		Description: c.Description,
		Slug:        c.Slug,
		Featured:    c.Featured,
		ProductIDs:  c.ProductIDs,
	}
}

func (c *Client) FetchBanners(ctx context.Context) ([]domain.Banner, error) {
	var bs []bannerJSON
	err := c.do(ctx, http.MethodGet, "/api/banners", nil, nil, &bs, false)
	if err != nil {
		return nil, err
	}
	ds := make([]domain.Banner, 0, len(bs))
	for _, b := range bs {
		ds = append(ds, b.toDomain())
	}
	return ds, nil
}

func (c *Client) UploadBanner(
	ctx context.Context, filename string, file io.Reader, link, alt string,
) (domain.Banner, error) {
	var out bannerJSON
	fields := map[string]string{"link": link, "alt": alt}
	err := c.doMultipart(
		ctx, "/api/banners", fields, "image", filename, file, &out, true,
	)
	if err != nil {
		return domain.Banner{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) UpdateBanner(ctx context.Context, b domain.Banner) error {
	body := bannerJSON{ID: b.BannerID, Image: b.ImageURL, Link: b.Link, Alt: b.Alt}
	return c.do(
		ctx, http.MethodPut, "/api/banners/"+url.PathEscape(b.BannerID),
		nil, body, nil, true,
	)
}

func (c *Client) DeleteBanner(ctx context.Context, bannerID string) error {
	return c.do(
		ctx, http.MethodDelete, "/api/banners/"+url.PathEscape(bannerID),
		nil, nil, nil, true,
	)
}

func (c *Client) FetchBrands(ctx context.Context) ([]domain.Brand, error) {
	var bs []brandJSON
	err := c.do(ctx, http.MethodGet, "/api/brands", nil, nil, &bs, false)
	if err != nil {
		return nil, err
	}
	ds := make([]domain.Brand, 0, len(bs))
	for _, b := range bs {
		ds = append(ds, domain.Brand{
			BrandID: b.ID, Name: b.Name, LogoURL: b.Logo, Description: b.Description,
		})
	}
	return ds, nil
}

// UpdateBrand edits the description only; name and logo travel
// through their own endpoints.
func (c *Client) UpdateBrand(ctx context.Context, b domain.Brand) error {
	body := map[string]string{"description": b.Description}
	return c.do(
		ctx, http.MethodPut, "/api/brands/"+url.PathEscape(b.BrandID),
		nil, body, nil, true,
	)
}

func (c *Client) UploadBrandLogo(
	ctx context.Context, brandID, filename string, file io.Reader,
) (string, error) {
	var out struct {
		Logo string `json:"logo"`
	}
	err := c.doMultipart(
		ctx, "/api/brands/"+url.PathEscape(brandID)+"/logo",
		nil, "logo", filename, file, &out, true,
	)
	if err != nil {
		return "", err
	}
	return out.Logo, nil
}

func (c *Client) FetchCollections(ctx context.Context) ([]domain.Collection, error) {
	var cs []collectionJSON
	err := c.do(ctx, http.MethodGet, "/api/collections", nil, nil, &cs, false)
	if err != nil {
		return nil, err
	}
	ds := make([]domain.Collection, 0, len(cs))
	for _, col := range cs {
		ds = append(ds, col.toDomain())
	}
	return ds, nil
}

func (c *Client) FetchCollection(
	ctx context.Context, collectionID string,
) (domain.Collection, error) {
	var col collectionJSON
	err := c.do(
		ctx, http.MethodGet, "/api/collections/"+url.PathEscape(collectionID),
		nil, nil, &col, false,
	)
	if err != nil {
		return domain.Collection{}, err
	}
	return col.toDomain(), nil
}

func (c *Client) CreateCollection(
	ctx context.Context, col domain.Collection,
) (domain.Collection, error) {
	var out collectionJSON
	err := c.do(
		ctx, http.MethodPost, "/api/collections",
		nil, toCollectionJSON(col), &out, true,
	)
	if err != nil {
		return domain.Collection{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) UpdateCollection(ctx context.Context, col domain.Collection) error {
	return c.do(
		ctx, http.MethodPut,
		"/api/collections/"+url.PathEscape(col.CollectionID),
		nil, toCollectionJSON(col), nil, true,
	)
}

func (c *Client) DeleteCollection(ctx context.Context, collectionID string) error {
	return c.do(
		ctx, http.MethodDelete,
		"/api/collections/"+url.PathEscape(collectionID),
		nil, nil, nil, true,
	)
}

// UploadProductImage uploads one image under the given target
// filename and returns the URL the server assigned.
func (c *Client) UploadProductImage(
	ctx context.Context, productID, filename string, file io.Reader,
) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	err := c.doMultipart(
		ctx, "/api/products/"+url.PathEscape(productID)+"/images",
		nil, "image", filename, file, &out, true,
	)
	if err != nil {
		return "", err
	}
	return out.URL, nil
}

func (c *Client) DeleteProductImage(
	ctx context.Context, productID, imageURL string,
) error {
	body := map[string]string{"url": imageURL}
	return c.do(
		ctx, http.MethodDelete,
		"/api/products/"+url.PathEscape(productID)+"/images",
		nil, body, nil, true,
	)
}

func (c *Client) SetProductImageURLs(
	ctx context.Context, productID, joined string,
) error {
	body := map[string]string{"images": joined}
	return c.do(
		ctx, http.MethodPut,
		"/api/products/"+url.PathEscape(productID)+"/images/urls",
		nil, body, nil, true,
	)
}

// SyncGroupImages propagates the product's image list to all
// same-name, same-color siblings.
func (c *Client) SyncGroupImages(ctx context.Context, name, color string) error {
	body := map[string]string{"name": name, "color": color}
	return c.do(
		ctx, http.MethodPost, "/api/products/images/sync",
		nil, body, nil, true,
	)
}

func (c *Client) ImportSpreadsheet(
	ctx context.Context, filename string, file io.Reader,
) (domain.ImportSummary, error) {
	var out importSummaryJSON
	err := c.doMultipart(
		ctx, "/api/admin/import", nil, "file", filename, file, &out, true,
	)
	if err != nil {
		return domain.ImportSummary{}, err
	}
	return domain.ImportSummary{
		Created:        out.Created,
		Updated:        out.Updated,
		Deleted:        out.Deleted,
		CreatedDetails: out.CreatedDetails,
		UpdatedDetails: out.UpdatedDetails,
		DeletedDetails: out.DeletedDetails,
	}, nil
}

func (c *Client) SearchMovements(
	ctx context.Context, mq domain.MovementQuery,
) ([]domain.InventoryMovement, error) {
	q := url.Values{}
	if mq.Search != "" {
		q.Set("search", mq.Search)
	}
	if !mq.From.IsZero() {
		q.Set("from", mq.From.Format(time.RFC3339))
	}
	if !mq.To.IsZero() {
		q.Set("to", mq.To.Format(time.RFC3339))
	}
	if mq.Limit > 0 {
		q.Set("limit", strconv.Itoa(mq.Limit))
	}
	if mq.Offset > 0 {
		q.Set("offset", strconv.Itoa(mq.Offset))
	}

	var ms []movementJSON
	err := c.do(ctx, http.MethodGet, "/api/admin/movements", q, nil, &ms, true)
	if err != nil {
		return nil, err
	}

	ds := make([]domain.InventoryMovement, 0, len(ms))
	for _, m := range ms {
		d := domain.InventoryMovement{
			DocType:     m.DocType,
			DocNumber:   m.DocNumber,
			ProductID:   m.ProductID,
			ProductName: m.ProductName,
			Color:       m.Color,
			Barcode:     m.Barcode,
			Delta:       m.Delta,
			Voided:      m.Voided,
		}
		if t, err := time.Parse(time.RFC3339, m.DocDate); err == nil {
			d.DocDate = t
		}
		if t, err := time.Parse(time.RFC3339, m.SyncedAt); err == nil {
			d.SyncedAt = t
		}
		ds = append(ds, d)
	}
	return ds, nil
}
