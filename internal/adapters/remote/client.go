package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// maxErrorBody bounds how much of a failed response body is kept in a StatusError.
const maxErrorBody = 512

// Client performs single-attempt JSON GETs. There is no retry here: a
// failure is reported to the caller, which owns the fallback policy.
type Client struct {
	session   *http.Client
	userAgent string
}

func NewClient(session *http.Client) *Client {
	if session == nil {
		session = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		session:   session,
		userAgent: "sfc-bus-schedule (+https://github.com/sugijotaro/sfc-bus-schedule)",
	}
}

func (c *Client) newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	// Always hit the origin; never serve from an intermediate HTTP cache.
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		return nil, &StatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// FetchJSON issues one GET for url and decodes the body as T.
func FetchJSON[T any](ctx context.Context, c *Client, url string) (T, error) {
	var out T

	req, err := c.newRequest(ctx, url)
	if err != nil {
		return out, &FetchError{Kind: ErrInvalidRequest, URL: url, Err: err}
	}

	resp, err := c.do(req)
	if err != nil {
		return out, &FetchError{Kind: ErrTransport, URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, &FetchError{Kind: ErrTransport, URL: url, Err: fmt.Errorf("read body: %w", err)}
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return out, &FetchError{Kind: ErrDecoding, URL: url, Err: err}
	}

	return out, nil
}

// IsFetchError reports whether err came from a remote fetch, and its kind.
func IsFetchError(err error) (kind error, ok bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return nil, false
}
