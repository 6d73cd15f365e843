package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/runmacros/backend/config"
	"github.com/runmacros/backend/internal/nutrition"
)

// FoodResult is one hit from the food database, with macros extracted from
// the description text when it parses.
type FoodResult struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Brand       string              `json:"brand,omitempty"`
	Description string              `json:"description"`
	Macros      *nutrition.MacroSet `json:"macros,omitempty"`
}

// FoodSearchService talks to the FatSecret platform API using the OAuth
// client-credentials flow. The access token is cached until shortly before
// it expires; outbound calls go through a rate limiter so a burst of user
// searches cannot exhaust the API quota.
type FoodSearchService struct {
	cfg    config.FatSecretConfig
	client *http.Client
	limit  *rate.Limiter

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewFoodSearchService(cfg config.FatSecretConfig) *FoodSearchService {
	rps := cfg.RateLimit
	if rps <= 0 {
		rps = 5
	}
	return &FoodSearchService{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
		limit:  rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// foodList tolerates the API returning a single object instead of an array
// when there is exactly one hit.
type foodList []fatSecretFood

func (l *foodList) UnmarshalJSON(data []byte) error {
	var many []fatSecretFood
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}

	var one fatSecretFood
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = foodList{one}
	return nil
}

type fatSecretFood struct {
	FoodID      string `json:"food_id"`
	FoodName    string `json:"food_name"`
	BrandName   string `json:"brand_name"`
	Description string `json:"food_description"`
}

type searchResponse struct {
	Foods struct {
		Food foodList `json:"food"`
	} `json:"foods"`
}

// Search runs a foods.search query and returns the hits with parsed macros.
func (s *FoodSearchService) Search(ctx context.Context, query string) ([]FoodResult, error) {
	if err := s.limit.Wait(ctx); err != nil {
		return nil, err
	}

	token, err := s.token(ctx)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("method", "foods.search")
	form.Set("search_expression", query)
	form.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("food search failed with status %d: %s", resp.StatusCode, string(body))
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := make([]FoodResult, 0, len(parsed.Foods.Food))
	for _, f := range parsed.Foods.Food {
		r := FoodResult{
			ID:          f.FoodID,
			Name:        f.FoodName,
			Brand:       f.BrandName,
			Description: f.Description,
		}
		if m, ok := nutrition.ParseDescription(f.Description); ok {
			r.Macros = &m
		}
		results = append(results, r)
	}
	return results, nil
}

// token returns a valid access token, fetching a fresh one when the cached
// token is within a minute of expiring.
func (s *FoodSearchService) token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accessToken != "" && time.Now().Before(s.tokenExpiry) {
		return s.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", "basic")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.cfg.ClientID, s.cfg.ClientSecret)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("token response missing access token")
	}

	s.accessToken = tokenResp.AccessToken
	s.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn-60) * time.Second)
	return s.accessToken, nil
}
