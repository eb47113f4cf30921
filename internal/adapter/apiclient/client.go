package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/peakgear/storefront/internal/core/port"
)

// ErrSessionExpired is returned when an authenticated call gets a 401.
// The stored token is already erased by the time the caller sees it.
var ErrSessionExpired = errors.New("session expired")

// APIError carries the response body text of a non-2xx response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api: request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Body, e.StatusCode)
}

// Client talks to the storefront HTTP API. One method per server
// operation, single attempt, fail-fast: no retries, no backoff.
// User-session endpoints rely on cookies, admin endpoints on a
// bearer token read from the state store.
type Client struct {
	baseURL          string
	httpClient       *http.Client
	state            port.StateStore
	onSessionExpired func()
}

func New(baseURL string, state port.StateStore) (*Client, error) {
	const op = "apiclient.New"

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Jar: jar},
		state:      state,
	}, nil
}

// OnSessionExpired registers the hook fired after a 401 erased the
// stored token. The shell subscribes to reset its session caches.
func (c *Client) OnSessionExpired(fn func()) {
	c.onSessionExpired = fn
}

// TokenExpiry inspects the stored bearer token locally and reports
// its expiry. The second result is false when no token is stored or
// the token carries no parsable expiry claim.
func (c *Client) TokenExpiry() (time.Time, bool) {
	raw := c.state.Token()
	if raw == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(raw, claims)
	if err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (c *Client) do(
	ctx context.Context, method, path string,
	query url.Values, body, out any, authed bool,
) error {
	var reqBody io.Reader
	contentType := ""
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.send(ctx, method, path, query, reqBody, contentType, out, authed)
}

func (c *Client) doMultipart(
	ctx context.Context, path string,
	fields map[string]string, fileField, filename string, file io.Reader,
	out any, authed bool,
) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}
	if file != nil {
		fw, err := mw.CreateFormFile(fileField, filename)
		if err != nil {
			return err
		}
		if _, err := io.Copy(fw, file); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}
	return c.send(
		ctx, http.MethodPost, path, nil,
		&buf, mw.FormDataContentType(), out, authed,
	)
}

func (c *Client) send(
	ctx context.Context, method, path string, query url.Values,
	body io.Reader, contentType string, out any, authed bool,
) error {
	const op = "Client.send"
	log := slog.With("op", op, "method", method, "path", path)

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authed {
		if t := c.state.Token(); t != "" {
			req.Header.Set("Authorization", "Bearer "+t)
		}
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized && authed {
		if err := c.state.ClearToken(); err != nil {
			log.Error("failed to clear stored token", "err", err)
		}
		if c.onSessionExpired != nil {
			c.onSessionExpired()
		}
		return fmt.Errorf("%s: %w", op, ErrSessionExpired)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("%s: %w", op, readAPIError(res))
	}

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return fmt.Errorf("%s: failed to decode response: %w", op, err)
		}
	}
	return nil
}

func readAPIError(res *http.Response) *APIError {
	b, err := io.ReadAll(io.LimitReader(res.Body, 4<<10))
	apiErr := &APIError{StatusCode: res.StatusCode}
	if err == nil {
		apiErr.Body = strings.TrimSpace(string(b))
	}
	return apiErr
}
