package oddsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/value-scout/internal/config"
)

// TheOddsAPIClient fetches match odds from the-odds-api.com v4.
type TheOddsAPIClient struct {
	baseURL string
	apiKey  string
	regions string
	markets string
	client  *RateLimitedHTTPClient
	logger  *logrus.Logger
}

// NewTheOddsAPIClient creates a new the-odds-api client from configuration
func NewTheOddsAPIClient(cfg *config.OddsFeedConfig, logger *logrus.Logger) *TheOddsAPIClient {
	httpCfg := DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	httpCfg.MaxRetries = cfg.MaxRetries
	httpCfg.RateLimit = cfg.RateLimitPerSec

	return &TheOddsAPIClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		regions: cfg.Regions,
		markets: cfg.Markets,
		client:  NewRateLimitedHTTPClient(httpCfg, logger),
		logger:  logger,
	}
}

// Name returns the provider name
func (c *TheOddsAPIClient) Name() string {
	return "the_odds_api"
}

// FetchOdds retrieves upcoming matches with bookmaker odds for a sport
func (c *TheOddsAPIClient) FetchOdds(ctx context.Context, sportKey string) ([]MatchPayload, error) {
	endpoint := fmt.Sprintf("%s/sports/%s/odds", c.baseURL, url.PathEscape(sportKey))

	query := url.Values{}
	query.Set("apiKey", c.apiKey)
	query.Set("regions", c.regions)
	query.Set("markets", c.markets)
	query.Set("oddsFormat", "decimal")

	var payloads []MatchPayload
	if err := c.getJSON(ctx, endpoint+"?"+query.Encode(), &payloads); err != nil {
		return nil, fmt.Errorf("failed to fetch odds for %s: %w", sportKey, err)
	}

	c.logger.WithFields(logrus.Fields{
		"provider":  c.Name(),
		"sport_key": sportKey,
		"matches":   len(payloads),
	}).Debug("Fetched odds payloads")

	return payloads, nil
}

// FetchSports retrieves the provider's sport catalog
func (c *TheOddsAPIClient) FetchSports(ctx context.Context) ([]Sport, error) {
	query := url.Values{}
	query.Set("apiKey", c.apiKey)

	var sports []Sport
	if err := c.getJSON(ctx, c.baseURL+"/sports?"+query.Encode(), &sports); err != nil {
		return nil, fmt.Errorf("failed to fetch sports: %w", err)
	}

	return sports, nil
}

func (c *TheOddsAPIClient) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("provider returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
