package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/saleslens-dev/saleslens/internal/model"
)

// fetchLimit is the page size requested from the product API. The upstream
// API caps a single request at 100 products.
const fetchLimit = 100

var errUnexpectedStatusCode = errors.New("unexpected http status code")

// Client fetches the product catalog from an HTTP API serving the
// DummyJSON products shape: {"products": [{id, title, category, brand,
// rating}, ...]}.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
}

// NewClient creates a catalog Client. A nil httpClient falls back to a
// default client.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{HTTPClient: httpClient, BaseURL: baseURL}
}

type productPayload struct {
	ID       *int    `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Rating   float64 `json:"rating"`
}

type productsResponse struct {
	Products []productPayload `json:"products"`
}

// Fetch performs the single catalog request. Any failure — transport
// error, non-200 status, malformed body — returns an error; the caller
// proceeds with Unavailable() and degraded enrichment.
func (c *Client) Fetch(ctx context.Context) (Catalog, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return Catalog{}, fmt.Errorf("parsing catalog URL %q: %w", c.BaseURL, err)
	}
	u = u.JoinPath("products")
	q := u.Query()
	q.Set("limit", strconv.Itoa(fetchLimit))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Catalog{}, fmt.Errorf("building catalog request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Catalog{}, fmt.Errorf("fetching catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Catalog{}, fmt.Errorf("%w: %d", errUnexpectedStatusCode, resp.StatusCode)
	}

	var body productsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Catalog{}, fmt.Errorf("decoding catalog response: %w", err)
	}

	entries := make([]model.CatalogEntry, 0, len(body.Products))
	for _, p := range body.Products {
		if p.ID == nil {
			continue
		}
		entries = append(entries, model.CatalogEntry{
			ProductID: strconv.Itoa(*p.ID),
			Title:     p.Title,
			Category:  p.Category,
			Brand:     p.Brand,
			Rating:    decimal.NewFromFloat(p.Rating),
		})
	}
	return FromEntries(entries), nil
}
