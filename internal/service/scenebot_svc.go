package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/PrintSaud/scene-backend/internal/repository"
	"github.com/PrintSaud/scene-backend/pkg/clock"
)

// SceneBotDailyLimit caps chat messages per user per day.
const SceneBotDailyLimit = 30

const sceneBotSystemPrompt = `You are SceneBot, a smart, casual, and fun film expert on a movie social platform.
Always respond in fluent %s. Do NOT mention your training data, capabilities, or limitations.
Only respond to movie-related questions, suggestions, trivia, or ideas. Keep the tone creative, friendly, and conversational.`

var sceneBotIntros = map[string]string{
	"english": "Sure! Let's dive into the world of movies",
	"arabic":  "أكيد! لنغوص في عالم الأفلام",
	"french":  "Bien sûr ! Plongeons dans le monde du cinéma",
}

// SceneBotService runs the film-expert chat on an OpenAI-compatible
// chat completions endpoint. Language preference is remembered
// in-process per user; it is a convenience, not durable state.
type SceneBotService struct {
	usage  *repository.UsageRepo
	clock  clock.Clock
	apiKey string
	base   string
	model  string
	client *http.Client

	mu        sync.Mutex
	langPrefs map[uuid.UUID]string

	upstream prometheus.Observer
}

// InstrumentWith records completion round-trip latency on the given
// observer.
func (s *SceneBotService) InstrumentWith(upstream prometheus.Observer) {
	s.upstream = upstream
}

func NewSceneBotService(usage *repository.UsageRepo, clk clock.Clock, apiKey, baseURL string) *SceneBotService {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &SceneBotService{
		usage:     usage,
		clock:     clk,
		apiKey:    apiKey,
		base:      strings.TrimSuffix(baseURL, "/"),
		model:     "gpt-4o",
		client:    &http.Client{Timeout: 30 * time.Second},
		langPrefs: make(map[uuid.UUID]string),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Chat answers one user message, honoring in-message language
// switches ("reply in french", "reset language") and the daily cap.
func (s *SceneBotService) Chat(ctx context.Context, userID uuid.UUID, message, lang string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("%w: message is empty", ErrInvalidInput)
	}

	count, err := s.usage.Count(ctx, userID, s.clock.Now())
	if err != nil {
		return "", err
	}
	if count >= SceneBotDailyLimit {
		return "", fmt.Errorf("%w: daily message limit reached", ErrForbidden)
	}

	langPref := s.updateLangPref(userID, message, lang)
	intro, ok := sceneBotIntros[langPref]
	if !ok {
		intro = sceneBotIntros["english"]
	}

	reply, err := s.complete(ctx, chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: fmt.Sprintf(sceneBotSystemPrompt, langPref)},
			{Role: "assistant", Content: intro},
			{Role: "user", Content: message},
		},
		Temperature: 0.8,
		MaxTokens:   700,
	})
	if err != nil {
		return "", err
	}

	if _, err := s.usage.Increment(ctx, userID, s.clock.Now()); err != nil {
		return "", err
	}
	return reply, nil
}

// Translate renders a short text into the target language.
func (s *SceneBotService) Translate(ctx context.Context, text, target string) (string, error) {
	if text == "" || target == "" {
		return "", fmt.Errorf("%w: missing text or target language", ErrInvalidInput)
	}

	return s.complete(ctx, chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: fmt.Sprintf("Translate this sentence to %s.", target)},
			{Role: "user", Content: text},
		},
		Temperature: 0.2,
		MaxTokens:   100,
	})
}

// updateLangPref applies in-message overrides and returns the
// effective language for this turn.
func (s *SceneBotService) updateLangPref(userID uuid.UUID, message, lang string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "reply in english"):
		s.langPrefs[userID] = "english"
	case strings.Contains(lower, "reply in arabic"):
		s.langPrefs[userID] = "arabic"
	case strings.Contains(lower, "reply in french"):
		s.langPrefs[userID] = "french"
	case strings.Contains(lower, "reset language"):
		delete(s.langPrefs, userID)
	}

	if pref, ok := s.langPrefs[userID]; ok {
		return pref
	}
	if lang != "" {
		return strings.ToLower(lang)
	}
	return "english"
}

func (s *SceneBotService) complete(ctx context.Context, reqBody chatRequest) (string, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.base+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	start := time.Now()
	resp, err := s.client.Do(req)
	if s.upstream != nil {
		s.upstream.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completion returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode chat completion: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
