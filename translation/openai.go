package translation

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
)

const openAISystemPrompt = `You are a translation engine. Translate the user's text into the language identified by the ISO 639-1 code given in the instruction.
Reply with the translated text only: no quotes, no notes, no transliteration.`

// OpenAITranslator translates with a chat completion model.
type OpenAITranslator struct {
	client *openai.Client
	model  string
}

func NewOpenAITranslator(apiKey, baseURL, model string, timeout time.Duration) *OpenAITranslator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAITranslator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (t *OpenAITranslator) Name() string {
	return "openai"
}

func (t *OpenAITranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: openAISystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Target language: %s\n\n%s", targetLang, text),
			},
		},
		Temperature: 0.2,
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	zerolog.Ctx(ctx).Debug().
		Str("provider", t.Name()).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Msg("translation received")

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
