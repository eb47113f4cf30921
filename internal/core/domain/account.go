package domain

import (
	"strings"
	"time"
)

type (
	User struct {
		UserID    string
		Email     string
		Verified  bool
		Superuser bool
		Name      string
		Surname   string
		Phone     string
	}

	Credentials struct {
		Email    string
		Password string
	}

	Address struct {
		AddressID  string
		Label      string
		Line1      string
		Line2      string
		City       string
		Region     string
		PostalCode string
		Country    string
		Default    bool
	}

	// Favorite associates the user with a (name, color) pair and
	// carries a product snapshot so lists render without a refetch.
	// Removed marks a local soft delete: the entry is on its way out
	// but still distinguishable from one that was never there.
	Favorite struct {
		Name    string
		Color   string
		Product Product
		Removed bool
	}
)

// Key returns the normalized identity of the favorite.
func (f Favorite) Key() string {
	return FavoriteKey(f.Name, f.Color)
}

// FavoriteKey builds the case-insensitive, trimmed "name|color"
// key favorites are de-duplicated by.
func FavoriteKey(name, color string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "|" +
		strings.ToLower(strings.TrimSpace(color))
}

type (
	Banner struct {
		BannerID string
		ImageURL string
		Link     string
		Alt      string
	}

	Brand struct {
		BrandID     string
		Name        string
		LogoURL     string
		Description string
	}

	Collection struct {
		CollectionID string
		Title        string
		Description  string
		Slug         string
		Featured     bool
		ProductIDs   []string
	}

	Category struct {
		Key           string
		Title         string
		Subcategories []Subcategory
	}

	Subcategory struct {
		Key   string
		Title string
	}
)

type (
	// InventoryMovement is a read-only audit record, display only.
	InventoryMovement struct {
		DocType     string
		DocDate     time.Time
		DocNumber   string
		ProductID   string
		ProductName string
		Color       string
		Barcode     string
		Delta       int
		SyncedAt    time.Time
		Voided      bool
	}

	MovementQuery struct {
		Search string
		From   time.Time
		To     time.Time
		Limit  int
		Offset int
	}
)

type (
	// ImportSummary is the server's report for a spreadsheet bulk
	// import, rendered as-is.
	ImportSummary struct {
		Created        int
		Updated        int
		Deleted        int
		CreatedDetails []string
		UpdatedDetails []string
		DeletedDetails []string
	}
)
