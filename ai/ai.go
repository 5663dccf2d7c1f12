package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"storepulse/cache"
	"storepulse/models"
)

const maxInsights = 3

type AIService struct {
	apiKey             string
	modelName          string
	maxRows            int
	cache              *cache.Cache
	httpClient         *http.Client
	apiURL             string
	lastRequestTime    time.Time
	requestMutex       sync.Mutex
	minRequestInterval time.Duration
}

type DashScopeRequest struct {
	Model string `json:"model"`
	Input struct {
		Messages []DashScopeMessage `json:"messages"`
	} `json:"input"`
	Parameters struct {
		Temperature float64 `json:"temperature"`
	} `json:"parameters"`
}

type DashScopeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type DashScopeResponse struct {
	Output struct {
		Choices []struct {
			Message struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	} `json:"output"`
	RequestID string `json:"request_id,omitempty"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message,omitempty"`
}

func New(apiKey string, modelName string, maxRows int, cache *cache.Cache) (*AIService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("DashScope API key is not configured")
	}

	return &AIService{
		apiKey:    apiKey,
		modelName: modelName,
		maxRows:   maxRows,
		cache:     cache,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		apiURL:             "https://dashscope.aliyuncs.com/api/v1/services/aigc/text-generation/generation",
		minRequestInterval: 500 * time.Millisecond,
	}, nil
}

func (a *AIService) Close() error {
	return nil
}

// rateLimit ensures minimum time between requests to prevent burst rate errors
func (a *AIService) rateLimit() {
	a.requestMutex.Lock()
	defer a.requestMutex.Unlock()

	now := time.Now()
	if since := now.Sub(a.lastRequestTime); since < a.minRequestInterval {
		time.Sleep(a.minRequestInterval - since)
	}
	a.lastRequestTime = time.Now()
}

func (a *AIService) callDashScopeAPI(ctx context.Context, messages []DashScopeMessage, temperature float64) (string, error) {
	a.rateLimit()

	reqBody := DashScopeRequest{Model: a.modelName}
	reqBody.Input.Messages = messages
	reqBody.Parameters.Temperature = temperature

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	// Retry with exponential backoff for rate limit and transport errors
	maxRetries := 3
	baseDelay := 2 * time.Second

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := baseDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			a.rateLimit()
		}

		req, err := http.NewRequestWithContext(ctx, "POST", a.apiURL, bytes.NewBuffer(jsonData))
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", a.apiKey))
		req.Header.Set("Content-Type", "application/json")

		resp, err := a.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			if attempt < maxRetries {
				continue
			}
			return "", fmt.Errorf("failed to send request: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			if attempt < maxRetries {
				continue
			}
			return "", fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests && attempt < maxRetries {
			continue
		}

		if resp.StatusCode != http.StatusOK {
			var errorResp struct {
				Code      string `json:"code"`
				Message   string `json:"message"`
				RequestID string `json:"request_id"`
			}
			if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Code != "" {
				return "", fmt.Errorf("API error (status %d): %s - %s (request_id: %s)",
					resp.StatusCode, errorResp.Code, errorResp.Message, errorResp.RequestID)
			}
			return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}

		var dashScopeResp DashScopeResponse
		if err := json.Unmarshal(body, &dashScopeResp); err != nil {
			return "", fmt.Errorf("failed to unmarshal response: %w", err)
		}

		if dashScopeResp.Code != "" && dashScopeResp.Code != "Success" {
			return "", fmt.Errorf("API error: %s - %s", dashScopeResp.Code, dashScopeResp.Message)
		}

		if len(dashScopeResp.Output.Choices) == 0 {
			return "", fmt.Errorf("no response from AI model")
		}

		return dashScopeResp.Output.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("max retries exceeded")
}

// TranslateToSQL turns a business question plus recent conversation turns
// into a candidate SQL statement. The output is untrusted text; the caller
// must run it through the validator before anything touches the database.
func (a *AIService) TranslateToSQL(ctx context.Context, question string, turns []models.ConversationTurn) (models.GeneratedStatement, error) {
	cacheKey := translateCacheKey(question, turns)
	if cached, found := a.cache.Get(cacheKey); found {
		return models.GeneratedStatement{Text: cached.(string)}, nil
	}

	system, user := BuildTranslatePrompt(question, turns, a.maxRows)
	messages := []DashScopeMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}

	// Low temperature keeps the SQL shape reproducible across identical questions.
	response, err := a.callDashScopeAPI(ctx, messages, 0.1)
	if err != nil {
		return models.GeneratedStatement{}, fmt.Errorf("failed to generate SQL: %w", err)
	}

	sql := stripCodeFences(response)
	a.cache.SetDefault(cacheKey, sql)

	return models.GeneratedStatement{Text: sql}, nil
}

// GenerateInsights produces up to three short numeric observations about the
// result set. Callers treat any error as degradation, never as request failure.
func (a *AIService) GenerateInsights(ctx context.Context, question string, result *models.ResultSet) ([]string, error) {
	if result.RowCount() == 0 {
		return nil, nil
	}

	prompt := BuildInsightPrompt(question, result)
	messages := []DashScopeMessage{
		{Role: "user", Content: prompt},
	}

	response, err := a.callDashScopeAPI(ctx, messages, 0.5)
	if err != nil {
		return nil, fmt.Errorf("failed to generate insights: %w", err)
	}

	return parseInsights(response), nil
}

func translateCacheKey(question string, turns []models.ConversationTurn) string {
	var b strings.Builder
	b.WriteString("translate:")
	b.WriteString(question)
	for _, t := range turns {
		b.WriteString("|")
		b.WriteString(t.Role)
		b.WriteString(":")
		b.WriteString(t.Content)
	}
	return b.String()
}

func stripCodeFences(response string) string {
	s := strings.TrimSpace(response)
	s = strings.TrimPrefix(s, "```sql")
	s = strings.TrimPrefix(s, "```SQL")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
