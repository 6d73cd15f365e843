package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/runmacros/backend/config"
)

// LLMService handles interactions with the DeepSeek API
type LLMService struct {
	cfg    config.DeepSeekConfig
	client *http.Client
	redis  *redis.Client
}

// NewLLMService creates a new LLMService instance. The Redis client is
// optional; without it responses are simply not cached.
func NewLLMService(cfg config.DeepSeekConfig, redisClient *redis.Client) *LLMService {
	return &LLMService{
		cfg:    cfg,
		client: &http.Client{Timeout: 60 * time.Second},
		redis:  redisClient,
	}
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a request to the DeepSeek API
type Request struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

const systemPrompt = "You are a nutrition assistant for a macro tracking app. " +
	"Answer questions about food, calories and macronutrients concisely."

// Chat sends a user prompt to the chat API and returns the model's reply.
// Identical prompts within the cache TTL are served from Redis.
func (s *LLMService) Chat(ctx context.Context, prompt string) (string, error) {
	cacheKey := "ai:chat:" + hashPrompt(prompt)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			return cached, nil
		}
	}

	reqBody := Request{
		Model: s.cfg.Model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("[LLM] API request failed with status %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	text := result.Choices[0].Message.Content
	if s.redis != nil && text != "" {
		ttl := s.cfg.CacheTTL
		if ttl <= 0 {
			ttl = time.Hour
		}
		if err := s.redis.Set(ctx, cacheKey, text, ttl).Err(); err != nil {
			log.Printf("[LLM] failed to cache response: %v", err)
		}
	}
	return text, nil
}

func hashPrompt(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
