package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"NewsRadar/internal/ports"
)

const defaultEndpoint = "https://query1.finance.yahoo.com/v1/finance/search"

// Client resolves a ticker symbol to its company display name through a
// quote search endpoint. Implements ports.NameLookup.
type Client struct {
	endpoint string
	http     *http.Client
}

var _ ports.NameLookup = (*Client)(nil)

// NewClient builds a lookup client; an empty endpoint selects the default.
func NewClient(endpoint string, client *http.Client) *Client {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{endpoint: endpoint, http: client}
}

// DisplayName returns the short (or long) company name for the symbol, or
// an empty string when the search yields nothing usable.
func (c *Client) DisplayName(ctx context.Context, subjectID string) (string, error) {
	query := url.Values{}
	query.Set("q", subjectID)
	query.Set("quotesCount", "5")
	query.Set("newsCount", "0")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "NewsRadar/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request name lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("name lookup returned %s", resp.Status)
	}

	var payload struct {
		Quotes []struct {
			Symbol    string `json:"symbol"`
			ShortName string `json:"shortname"`
			LongName  string `json:"longname"`
		} `json:"quotes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode name lookup: %w", err)
	}

	want := strings.ToUpper(strings.TrimSpace(subjectID))
	for _, q := range payload.Quotes {
		if strings.ToUpper(q.Symbol) != want {
			continue
		}
		if q.ShortName != "" {
			return q.ShortName, nil
		}
		return q.LongName, nil
	}
	return "", nil
}
