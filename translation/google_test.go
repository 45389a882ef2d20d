package translation

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGoogleTranslator_APIKey(t *testing.T) {
	var got googleTranslateRequest
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/language/translate/v2" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotKey = r.URL.Query().Get("key")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = w.Write([]byte(`{"data":{"translations":[{"translatedText":"नमस्ते दुनिया","detectedSourceLanguage":"en"}]}}`))
	}))
	defer srv.Close()

	tr, err := NewGoogleTranslator(context.Background(), srv.URL+"/", "g-key", "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := tr.Translate(context.Background(), "hello world", "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "नमस्ते दुनिया" {
		t.Fatalf("unexpected translation: %q", out)
	}
	if gotKey != "g-key" {
		t.Fatalf("expected api key in query, got %q", gotKey)
	}
	if len(got.Q) != 1 || got.Q[0] != "hello world" || got.Target != "hi" || got.Format != "text" {
		t.Fatalf("unexpected request body: %+v", got)
	}
}

func TestGoogleTranslator_ErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"Invalid Value"}}`))
	}))
	defer srv.Close()

	tr, _ := NewGoogleTranslator(context.Background(), srv.URL, "g-key", "", 0)
	_, err := tr.Translate(context.Background(), "hello", "zz")
	if err == nil || !strings.Contains(err.Error(), "Invalid Value") {
		t.Fatalf("expected provider message, got %v", err)
	}
}

func TestGoogleTranslator_NoTranslations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"translations":[]}}`))
	}))
	defer srv.Close()

	tr, _ := NewGoogleTranslator(context.Background(), srv.URL, "g-key", "", 0)
	if _, err := tr.Translate(context.Background(), "hello", "hi"); err == nil {
		t.Fatal("expected error for empty translations")
	}
}

func TestGoogleTranslator_ServiceAccount(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"sa-token","token_type":"Bearer","expires_in":3600}`))
	}))
	defer tokenSrv.Close()

	var gotAuth, gotKey string
	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.URL.Query().Get("key")
		_, _ = w.Write([]byte(`{"data":{"translations":[{"translatedText":"hola"}]}}`))
	}))
	defer apiSrv.Close()

	credsPath := writeServiceAccount(t, tokenSrv.URL)

	tr, err := NewGoogleTranslator(context.Background(), apiSrv.URL, "", credsPath, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := tr.Translate(context.Background(), "hello", "es")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "hola" {
		t.Fatalf("unexpected translation: %q", out)
	}
	if gotAuth != "Bearer sa-token" {
		t.Fatalf("expected bearer token, got %q", gotAuth)
	}
	if gotKey != "" {
		t.Fatalf("expected no api key, got %q", gotKey)
	}
}

func TestNewGoogleTranslator_BadCredentialsFile(t *testing.T) {
	_, err := NewGoogleTranslator(context.Background(), "http://unused", "", filepath.Join(t.TempDir(), "missing.json"), 0)
	if err == nil {
		t.Fatal("expected error for missing credentials file")
	}
}

func writeServiceAccount(t *testing.T, tokenURL string) string {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})

	data, err := json.Marshal(map[string]string{
		"type":           "service_account",
		"project_id":     "speech-translate-test",
		"private_key_id": "key-1",
		"private_key":    string(keyPEM),
		"client_email":   "translator@speech-translate-test.iam.gserviceaccount.com",
		"client_id":      "1234567890",
		"token_uri":      tokenURL,
	})
	if err != nil {
		t.Fatalf("marshal credentials: %v", err)
	}

	path := filepath.Join(t.TempDir(), "sa.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write credentials: %v", err)
	}
	return path
}
