package domain

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

type (
	Product struct {
		ProductID     string
		Name          string
		DisplayName   string
		Color         string
		Sizes         []string
		Price         string
		Discount      int
		DiscountPrice string
		ImageURLs     string
		Quantity      int
		Reserved      bool
		Barcode       string
		Views         int
		Brand         string
		Gender        string
		CategoryKey   string
		Variants      []ProductVariant
	}

	ProductVariant struct {
		ProductID string
		Color     string
		ImageURL  string
	}
)

// EffectivePrice is the price the product actually sells for:
// the discount price when present and positive, the list price
// otherwise. Absent or non-numeric values map to +Inf so such
// products land at the end of ascending price order.
func (p Product) EffectivePrice() float64 {
	if v, err := strconv.ParseFloat(strings.TrimSpace(p.DiscountPrice), 64); err == nil && v > 0 {
		return v
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(p.Price), 64)
	if err != nil {
		return math.Inf(1)
	}
	return v
}

type SortMode string

const (
	SortDefault   SortMode = ""
	SortPriceAsc  SortMode = "asc"
	SortPriceDesc SortMode = "desc"
	SortPopular   SortMode = "popular"
	SortDiscount  SortMode = "discount"
)

// SortProducts stably reorders ps in place according to mode.
// SortDefault keeps the server order.
func SortProducts(ps []Product, mode SortMode) {
	switch mode {
	case SortPriceAsc:
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].EffectivePrice() < ps[j].EffectivePrice()
		})
	case SortPriceDesc:
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].EffectivePrice() > ps[j].EffectivePrice()
		})
	case SortPopular:
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].Views > ps[j].Views
		})
	case SortDiscount:
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].Discount > ps[j].Discount
		})
	}
}

type (
	// ImageSet is the structured view over a product's comma-joined
	// image URL list. URLs not matching the naming convention are
	// excluded from every slot.
	ImageSet struct {
		Main    string
		Preview string
		Gallery []GalleryImage
	}

	GalleryImage struct {
		URL   string
		Index int
	}
)

var (
	mainImageRe    = regexp.MustCompile(`_main\.[^./]+$`)
	previewImageRe = regexp.MustCompile(`_prev\.[^./]+$`)
	galleryImageRe = regexp.MustCompile(`_(\d+)\.[^./]+$`)
)

// ParseImageSet splits a comma-joined URL list into the main,
// preview and gallery slots by the filename suffix convention
// ("_main", "_prev", "_<n>"). Gallery images are ordered by
// their numeric suffix.
func ParseImageSet(joined string) ImageSet {
	var s ImageSet
	for _, raw := range strings.Split(joined, ",") {
		u := strings.TrimSpace(raw)
		if u == "" {
			continue
		}
		switch {
		case mainImageRe.MatchString(u):
			s.Main = u
		case previewImageRe.MatchString(u):
			s.Preview = u
		default:
			m := galleryImageRe.FindStringSubmatch(u)
			if m == nil {
				continue
			}
			idx, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			s.Gallery = append(s.Gallery, GalleryImage{URL: u, Index: idx})
		}
	}
	sort.SliceStable(s.Gallery, func(i, j int) bool {
		return s.Gallery[i].Index < s.Gallery[j].Index
	})
	return s
}

// Join rebuilds the comma-joined URL list in slot order.
func (s ImageSet) Join() string {
	var urls []string
	if s.Main != "" {
		urls = append(urls, s.Main)
	}
	if s.Preview != "" {
		urls = append(urls, s.Preview)
	}
	for _, g := range s.Gallery {
		urls = append(urls, g.URL)
	}
	return strings.Join(urls, ",")
}
