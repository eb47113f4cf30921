package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/peakgear/storefront/internal/core/domain"
	"github.com/peakgear/storefront/internal/core/port"
)

var (
	// ErrEditorBusy means another upload or delete is in flight;
	// the caller must wait, not queue.
	ErrEditorBusy = errors.New("image editor is busy")

	ErrEditorClosed = errors.New("image editor session is closed")

	ErrGalleryFull = errors.New("gallery is full")
)

// ImageEditor opens per-product image editing sessions.
type ImageEditor struct {
	images       port.ImagesGateway
	catalog      port.CatalogGateway
	galleryLimit int
}

func NewImageEditor(
	images port.ImagesGateway, catalog port.CatalogGateway, galleryLimit int,
) ImageEditor {
	return ImageEditor{images, catalog, galleryLimit}
}

// Open fetches the product and starts an editing session:
// closed -> open. The session ends closed, always.
func (e ImageEditor) Open(
	ctx context.Context, productID string,
) (*EditorSession, error) {
	const op = "ImageEditor.Open"

	p, err := e.catalog.FetchProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &EditorSession{
		editor:  e,
		product: p,
		images:  domain.ParseImageSet(p.ImageURLs),
	}, nil
}

// EditorSession edits one product's image slots. A busy flag
// rejects concurrent mutations; every mutation ends with a group
// image sync and a product re-fetch so siblings stay aligned.
type EditorSession struct {
	mu      sync.Mutex
	editor  ImageEditor
	product domain.Product
	images  domain.ImageSet
	busy    bool
	closed  bool
}

func (s *EditorSession) Product() domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.product
}

func (s *EditorSession) Images() domain.ImageSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.images
}

func (s *EditorSession) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// mutation works on a snapshot of the session state taken under
// the lock; the shared fields are only rewritten by the final
// refresh, also under the lock.
type mutation func(ctx context.Context, p domain.Product, set *domain.ImageSet) error

// ReplaceMain uploads a new main image named <barcode>_main.
func (s *EditorSession) ReplaceMain(ctx context.Context, file io.Reader) error {
	const op = "EditorSession.ReplaceMain"
	return s.mutate(ctx, op, func(
		ctx context.Context, p domain.Product, set *domain.ImageSet,
	) error {
		url, err := s.upload(ctx, p.ProductID, p.Barcode+"_main", file)
		if err != nil {
			return err
		}
		set.Main = url
		return s.setURLs(ctx, p.ProductID, *set)
	})
}

// ReplacePreview uploads a new preview image named <barcode>_prev.
func (s *EditorSession) ReplacePreview(ctx context.Context, file io.Reader) error {
	const op = "EditorSession.ReplacePreview"
	return s.mutate(ctx, op, func(
		ctx context.Context, p domain.Product, set *domain.ImageSet,
	) error {
		url, err := s.upload(ctx, p.ProductID, p.Barcode+"_prev", file)
		if err != nil {
			return err
		}
		set.Preview = url
		return s.setURLs(ctx, p.ProductID, *set)
	})
}

func (s *EditorSession) DeleteMain(ctx context.Context) error {
	const op = "EditorSession.DeleteMain"
	return s.mutate(ctx, op, func(
		ctx context.Context, p domain.Product, set *domain.ImageSet,
	) error {
		if err := s.deleteURL(ctx, p.ProductID, set.Main); err != nil {
			return err
		}
		set.Main = ""
		return s.setURLs(ctx, p.ProductID, *set)
	})
}

func (s *EditorSession) DeletePreview(ctx context.Context) error {
	const op = "EditorSession.DeletePreview"
	return s.mutate(ctx, op, func(
		ctx context.Context, p domain.Product, set *domain.ImageSet,
	) error {
		if err := s.deleteURL(ctx, p.ProductID, set.Preview); err != nil {
			return err
		}
		set.Preview = ""
		return s.setURLs(ctx, p.ProductID, *set)
	})
}

func (s *EditorSession) DeleteGalleryImage(ctx context.Context, index int) error {
	const op = "EditorSession.DeleteGalleryImage"
	return s.mutate(ctx, op, func(
		ctx context.Context, p domain.Product, set *domain.ImageSet,
	) error {
		kept := set.Gallery[:0]
		for _, g := range set.Gallery {
			if g.Index != index {
				kept = append(kept, g)
				continue
			}
			if err := s.deleteURL(ctx, p.ProductID, g.URL); err != nil {
				return err
			}
		}
		set.Gallery = kept
		return s.setURLs(ctx, p.ProductID, *set)
	})
}

// AddGallery uploads the files one by one, never in parallel, so
// the <barcode>_<n> numbering stays deterministic. The gallery is
// capped; files past the limit are rejected up front.
func (s *EditorSession) AddGallery(ctx context.Context, files []io.Reader) error {
	const op = "EditorSession.AddGallery"
	return s.mutate(ctx, op, func(
		ctx context.Context, p domain.Product, set *domain.ImageSet,
	) error {
		limit := s.editor.galleryLimit
		if len(set.Gallery)+len(files) > limit {
			return fmt.Errorf("%w: limit is %d images", ErrGalleryFull, limit)
		}

		next := 1
		if n := len(set.Gallery); n > 0 {
			next = set.Gallery[n-1].Index + 1
		}

		for i, file := range files {
			idx := next + i
			name := p.Barcode + "_" + strconv.Itoa(idx)
			url, err := s.upload(ctx, p.ProductID, name, file)
			if err != nil {
				return err
			}
			set.Gallery = append(
				set.Gallery, domain.GalleryImage{URL: url, Index: idx},
			)
		}
		return s.setURLs(ctx, p.ProductID, *set)
	})
}

// mutate runs one guarded state transition:
// open -> uploading/deleting -> open(refreshed). The closure gets a
// snapshot, so readers concurrent with an in-flight mutation keep
// seeing the last committed state until refresh swaps it in.
func (s *EditorSession) mutate(ctx context.Context, op string, fn mutation) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("%s: %w", op, ErrEditorClosed)
	}
	if s.busy {
		s.mu.Unlock()
		return fmt.Errorf("%s: %w", op, ErrEditorBusy)
	}
	s.busy = true
	p := s.product
	set := s.images
	set.Gallery = append([]domain.GalleryImage(nil), s.images.Gallery...)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	if err := fn(ctx, p, &set); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.sync(ctx, p); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.refresh(ctx, p.ProductID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *EditorSession) upload(
	ctx context.Context, productID, name string, file io.Reader,
) (string, error) {
	return s.editor.images.UploadProductImage(ctx, productID, name, file)
}

func (s *EditorSession) deleteURL(ctx context.Context, productID, url string) error {
	if url == "" {
		return nil
	}
	return s.editor.images.DeleteProductImage(ctx, productID, url)
}

func (s *EditorSession) setURLs(
	ctx context.Context, productID string, set domain.ImageSet,
) error {
	return s.editor.images.SetProductImageURLs(ctx, productID, set.Join())
}

func (s *EditorSession) sync(ctx context.Context, p domain.Product) error {
	return s.editor.images.SyncGroupImages(ctx, p.Name, p.Color)
}

func (s *EditorSession) refresh(ctx context.Context, productID string) error {
	p, err := s.editor.catalog.FetchProduct(ctx, productID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.product = p
	s.images = domain.ParseImageSet(p.ImageURLs)
	s.mu.Unlock()
	return nil
}
