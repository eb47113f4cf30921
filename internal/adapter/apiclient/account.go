package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/peakgear/storefront/internal/core/domain"
	"github.com/peakgear/storefront/internal/core/port"
)

var _ port.AuthGateway = (*Client)(nil)
var _ port.FavoritesGateway = (*Client)(nil)
var _ port.AddressGateway = (*Client)(nil)

type (
	credentialsJSON struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	userJSON struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		Verified  bool   `json:"verified"`
		Superuser bool   `json:"superuser"`
		Name      string `json:"name"`
		Surname   string `json:"surname"`
		Phone     string `json:"phone"`
	}

	addressJSON struct {
		ID         string `json:"id"`
		Label      string `json:"label"`
		Line1      string `json:"line1"`
		Line2      string `json:"line2"`
		City       string `json:"city"`
		Region     string `json:"region"`
		PostalCode string `json:"postal_code"`
		Country    string `json:"country"`
		IsDefault  bool   `json:"is_default"`
	}

	favoriteJSON struct {
		Name    string      `json:"name"`
		Color   string      `json:"color"`
		Product productJSON `json:"product"`
	}
)

func (a addressJSON) toDomain() domain.Address {
	return domain.Address{
		AddressID:  a.ID,
		Label:      a.Label,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		Region:     a.Region,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		Default:    a.IsDefault,
	}
}

func toAddressJSON(a domain.Address) addressJSON {
	return addressJSON{
		ID:         a.AddressID,
		Label:      a.Label,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		Region:     a.Region,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		IsDefault:  a.Default,
	}
}

// Login authenticates the cookie-based user session.
func (c *Client) Login(ctx context.Context, cr domain.Credentials) error {
	body := credentialsJSON{Email: cr.Email, Password: cr.Password}
	return c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, nil, false)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil, false)
}

func (c *Client) Register(ctx context.Context, cr domain.Credentials) error {
	body := credentialsJSON{Email: cr.Email, Password: cr.Password}
	return c.do(ctx, http.MethodPost, "/api/auth/register", nil, body, nil, false)
}

func (c *Client) Me(ctx context.Context) (domain.User, error) {
	var u userJSON
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &u, false)
	if err != nil {
		return domain.User{}, err
	}
	return domain.User{
		UserID:    u.ID,
		Email:     u.Email,
		Verified:  u.Verified,
		Superuser: u.Superuser,
		Name:      u.Name,
		Surname:   u.Surname,
		Phone:     u.Phone,
	}, nil
}

// AdminLogin exchanges credentials for a bearer token and stores it.
func (c *Client) AdminLogin(
	ctx context.Context, cr domain.Credentials,
) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	body := credentialsJSON{Email: cr.Email, Password: cr.Password}
	err := c.do(ctx, http.MethodPost, "/api/auth/token", nil, body, &out, false)
	if err != nil {
		return "", err
	}
	if err := c.state.SetToken(out.Token); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/api/auth/password-reset", nil, body, nil, false)
}

func (c *Client) ConfirmPasswordReset(
	ctx context.Context, token, newPassword string,
) error {
	body := map[string]string{"token": token, "password": newPassword}
	return c.do(
		ctx, http.MethodPost, "/api/auth/password-reset/confirm",
		nil, body, nil, false,
	)
}

func (c *Client) RequestEmailVerification(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/verify", nil, nil, nil, false)
}

func (c *Client) ConfirmEmailVerification(ctx context.Context, token string) error {
	body := map[string]string{"token": token}
	return c.do(ctx, http.MethodPost, "/api/auth/verify/confirm", nil, body, nil, false)
}

func (c *Client) FetchFavorites(ctx context.Context) ([]domain.Favorite, error) {
	var fs []favoriteJSON
	err := c.do(ctx, http.MethodGet, "/api/favorites", nil, nil, &fs, false)
	if err != nil {
		return nil, err
	}
	ds := make([]domain.Favorite, 0, len(fs))
	for _, f := range fs {
		ds = append(ds, domain.Favorite{
			Name:    f.Name,
			Color:   f.Color,
			Product: f.Product.toDomain(),
		})
	}
	return ds, nil
}

func (c *Client) AddFavorite(ctx context.Context, p domain.Product) error {
	body := map[string]string{
		"name":       p.Name,
		"color":      p.Color,
		"product_id": p.ProductID,
	}
	return c.do(ctx, http.MethodPost, "/api/favorites", nil, body, nil, false)
}

func (c *Client) RemoveFavorite(ctx context.Context, name, color string) error {
	body := map[string]string{"name": name, "color": color}
	return c.do(ctx, http.MethodDelete, "/api/favorites", nil, body, nil, false)
}

func (c *Client) FetchAddresses(ctx context.Context) ([]domain.Address, error) {
	var as []addressJSON
	err := c.do(ctx, http.MethodGet, "/api/addresses", nil, nil, &as, false)
	if err != nil {
		return nil, err
	}
	ds := make([]domain.Address, 0, len(as))
	for _, a := range as {
		ds = append(ds, a.toDomain())
	}
	return ds, nil
}

func (c *Client) CreateAddress(
	ctx context.Context, a domain.Address,
) (domain.Address, error) {
	var out addressJSON
	err := c.do(
		ctx, http.MethodPost, "/api/addresses",
		nil, toAddressJSON(a), &out, false,
	)
	if err != nil {
		return domain.Address{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) UpdateAddress(
	ctx context.Context, a domain.Address,
) (domain.Address, error) {
	var out addressJSON
	err := c.do(
		ctx, http.MethodPut, "/api/addresses/"+url.PathEscape(a.AddressID),
		nil, toAddressJSON(a), &out, false,
	)
	if err != nil {
		return domain.Address{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) DeleteAddress(ctx context.Context, addressID string) error {
	return c.do(
		ctx, http.MethodDelete, "/api/addresses/"+url.PathEscape(addressID),
		nil, nil, nil, false,
	)
}
