package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleTranslationScope = "https://www.googleapis.com/auth/cloud-translation"

// GoogleTranslator calls the Cloud Translation v2 REST API.
type GoogleTranslator struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewGoogleTranslator authenticates with apiKey when given, otherwise with the
// service account in credentials (a file path or inline JSON), otherwise with the
// application default credentials.
func NewGoogleTranslator(ctx context.Context, baseURL, apiKey, credentials string, timeout time.Duration) (*GoogleTranslator, error) {
	t := &GoogleTranslator{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(apiKey),
	}

	if t.apiKey != "" {
		t.httpClient = &http.Client{Timeout: timeout}
		return t, nil
	}

	creds, err := googleCredentials(ctx, strings.TrimSpace(credentials))
	if err != nil {
		return nil, err
	}
	client := oauth2.NewClient(ctx, creds.TokenSource)
	client.Timeout = timeout
	t.httpClient = client

	return t, nil
}

func googleCredentials(ctx context.Context, credentials string) (*google.Credentials, error) {
	if credentials == "" {
		creds, err := google.FindDefaultCredentials(ctx, googleTranslationScope)
		if err != nil {
			return nil, fmt.Errorf("failed to find default google credentials: %w", err)
		}
		return creds, nil
	}

	jsonData := []byte(credentials)
	if !strings.HasPrefix(credentials, "{") {
		data, err := os.ReadFile(credentials)
		if err != nil {
			return nil, fmt.Errorf("failed to read google credentials file %q: %w", credentials, err)
		}
		jsonData = data
	}

	creds, err := google.CredentialsFromJSON(ctx, jsonData, googleTranslationScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse google credentials: %w", err)
	}
	return creds, nil
}

func (t *GoogleTranslator) Name() string {
	return "google"
}

type googleTranslateRequest struct {
	Q      []string `json:"q"`
	Target string   `json:"target"`
	Format string   `json:"format"`
}

type googleTranslateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText         string `json:"translatedText"`
			DetectedSourceLanguage string `json:"detectedSourceLanguage"`
		} `json:"translations"`
	} `json:"data"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (t *GoogleTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	payload, err := json.Marshal(googleTranslateRequest{Q: []string{text}, Target: targetLang, Format: "text"})
	if err != nil {
		return "", fmt.Errorf("failed to marshal translate request: %w", err)
	}

	endpoint := t.baseURL + "/language/translate/v2"
	if t.apiKey != "" {
		endpoint += "?" + url.Values{"key": {t.apiKey}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create translate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request to google translate: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read google translate response: %w", err)
	}

	var parsed googleTranslateResponse
	parseErr := json.Unmarshal(body, &parsed)

	if resp.StatusCode != http.StatusOK {
		if parseErr == nil && parsed.Error != nil {
			return "", fmt.Errorf("google translate error %d: %s", parsed.Error.Code, parsed.Error.Message)
		}
		return "", fmt.Errorf("google translate returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if parseErr != nil {
		return "", fmt.Errorf("failed to parse google translate response: %w", parseErr)
	}
	if len(parsed.Data.Translations) == 0 {
		return "", fmt.Errorf("google translate returned no translations")
	}

	translated := parsed.Data.Translations[0]
	zerolog.Ctx(ctx).Debug().
		Str("provider", t.Name()).
		Str("detected_source", translated.DetectedSourceLanguage).
		Str("target", targetLang).
		Msg("translation received")

	return translated.TranslatedText, nil
}
