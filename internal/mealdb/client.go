package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxErrorBody caps how much of a failed response is kept in a StatusError.
const maxErrorBody = 512

// Client implements MealSource against TheMealDB JSON API.
type Client struct {
	apiURL     string
	siteURL    string
	httpClient *http.Client
}

// NewClient creates a client. apiURL is the JSON API base
// (e.g. https://www.themealdb.com/api/json/v1/1) and siteURL the public
// site used for detail links.
func NewClient(apiURL, siteURL string, timeout time.Duration) *Client {
	return &Client{
		apiURL:  strings.TrimRight(apiURL, "/"),
		siteURL: strings.TrimRight(siteURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type filterResponse struct {
	Meals []Meal `json:"meals"`
}

// FilterByIngredient issues GET <api>/filter.php?i=<ingredient>.
func (c *Client) FilterByIngredient(ctx context.Context, ingredient string) ([]Meal, error) {
	reqURL := fmt.Sprintf("%s/filter.php?i=%s", c.apiURL, escapeQueryComponent(ingredient))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mealdb request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mealdb request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read mealdb response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	// "meals": null decodes to a nil slice.
	var fResp filterResponse
	if err := json.Unmarshal(body, &fResp); err != nil {
		return nil, fmt.Errorf("failed to parse mealdb response: %w", err)
	}

	return fResp.Meals, nil
}

// escapeQueryComponent percent-encodes s for a query value, using %20 for
// spaces rather than the "+" form produced by url.QueryEscape.
func escapeQueryComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// DetailURL returns the public page for a meal.
func (c *Client) DetailURL(id string) string {
	return fmt.Sprintf("%s/meal/%s", c.siteURL, url.PathEscape(id))
}
