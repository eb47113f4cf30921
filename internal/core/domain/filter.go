package domain

import (
	"net/url"

	"github.com/gorilla/schema"
)

// Filter is the canonical catalog view state. It round-trips
// through a URL query string so any view is shareable and
// reproducible from a link.
type Filter struct {
	Search      string   `schema:"search,omitempty"`
	Category    string   `schema:"category,omitempty"`
	Subcategory string   `schema:"subcategory,omitempty"`
	Brand       string   `schema:"brand,omitempty"`
	Gender      string   `schema:"gender,omitempty"`
	Size        string   `schema:"size,omitempty"`
	Sort        SortMode `schema:"sort,omitempty"`
}

// IsHome reports whether no filter dimension is active. The home
// state feeds from the popular products endpoint instead of the
// filtered listing.
func (f Filter) IsHome() bool {
	return f.Search == "" && f.Category == "" && f.Subcategory == "" &&
		f.Brand == "" && f.Gender == "" && f.Size == ""
}

var (
	filterEncoder = schema.NewEncoder()
	filterDecoder = newFilterDecoder()
)

func newFilterDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// EncodeQuery renders the filter as a URL query string.
func (f Filter) EncodeQuery() (string, error) {
	vs := url.Values{}
	if err := filterEncoder.Encode(&f, vs); err != nil {
		return "", err
	}
	return vs.Encode(), nil
}

// DecodeFilterQuery restores a filter from a raw query string.
// Unknown keys are ignored.
func DecodeFilterQuery(rawQuery string) (Filter, error) {
	vs, err := url.ParseQuery(rawQuery)
	if err != nil {
		return Filter{}, err
	}
	var f Filter
	if err := filterDecoder.Decode(&f, vs); err != nil {
		return Filter{}, err
	}
	return f, nil
}
