package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DeepgramProvider calls Deepgram's pre-recorded /v1/listen endpoint.
type DeepgramProvider struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewDeepgramProvider builds a provider; timeout 0 leaves the client without a deadline.
func NewDeepgramProvider(apiKey, baseURL, model string, timeout time.Duration) *DeepgramProvider {
	return &DeepgramProvider{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (p *DeepgramProvider) Name() string {
	return "deepgram"
}

type deepgramResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string  `json:"transcript"`
				Confidence float64 `json:"confidence"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

type deepgramError struct {
	ErrCode string `json:"err_code"`
	ErrMsg  string `json:"err_msg"`
}

func (p *DeepgramProvider) Transcribe(ctx context.Context, audio []byte, language string) (Result, error) {
	start := time.Now()

	query := url.Values{}
	query.Set("model", p.model)
	query.Set("smart_format", "true")
	query.Set("language", language)
	endpoint := p.baseURL + "/v1/listen?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(audio))
	if err != nil {
		return Result{}, fmt.Errorf("failed to create deepgram request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+p.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("failed to send request to deepgram: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read deepgram response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr deepgramError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.ErrMsg != "" {
			return Result{}, fmt.Errorf("deepgram returned status %d: %s", resp.StatusCode, apiErr.ErrMsg)
		}
		return Result{}, fmt.Errorf("deepgram returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed deepgramResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Result{}, fmt.Errorf("failed to parse deepgram response: %w", err)
	}

	channels := parsed.Results.Channels
	if len(channels) == 0 || len(channels[0].Alternatives) == 0 {
		zerolog.Ctx(ctx).Info().Str("provider", p.Name()).Msg("no alternatives returned")
		return Result{NoSpeech: true}, nil
	}

	best := channels[0].Alternatives[0]
	transcript := strings.TrimSpace(best.Transcript)
	if transcript == "" {
		zerolog.Ctx(ctx).Info().Str("provider", p.Name()).Msg("empty transcript returned")
		return Result{NoSpeech: true}, nil
	}

	zerolog.Ctx(ctx).Debug().
		Str("provider", p.Name()).
		Float64("confidence", best.Confidence).
		Int("length", len(transcript)).
		Dur("duration", time.Since(start)).
		Msg("transcription received")

	return Result{Transcript: transcript, Confidence: best.Confidence}, nil
}
