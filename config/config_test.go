package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.HttpPort != "5000" {
		t.Fatalf("expected default port 5000, got %s", cfg.Server.HttpPort)
	}
	if cfg.Store.Driver != "postgres" {
		t.Fatalf("expected postgres driver, got %s", cfg.Store.Driver)
	}
	if cfg.Deepgram.Model != "nova-2" {
		t.Fatalf("expected nova-2, got %s", cfg.Deepgram.Model)
	}
	if cfg.Translation.Provider != "google" {
		t.Fatalf("expected google translation, got %s", cfg.Translation.Provider)
	}
	if cfg.Queue.Enabled() {
		t.Fatal("expected rabbitmq to be disabled without a host")
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Fatalf("unexpected allowed origins: %v", cfg.Server.AllowedOrigins)
	}
}

func TestLoadReadsYAML(t *testing.T) {
	dir := t.TempDir()
	yaml := `
app:
  environment: develop
server:
  port: "9000"
  workers: 4
store:
  driver: mongo
mongo:
  uri: mongodb://localhost:27017
deepgram:
  api_key: dg-key
providers:
  timeout: 30s
rabbitmq_host: localhost
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.App.Environment != "develop" {
		t.Fatalf("unexpected environment: %s", cfg.App.Environment)
	}
	if cfg.Server.HttpPort != "9000" || cfg.Server.Workers != 4 {
		t.Fatalf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Store.Driver != "mongo" || cfg.Store.MongoURI != "mongodb://localhost:27017" {
		t.Fatalf("unexpected store config: %+v", cfg.Store)
	}
	if cfg.Store.MongoDatabase != "speech_to_text" {
		t.Fatalf("expected default mongo database, got %s", cfg.Store.MongoDatabase)
	}
	if cfg.Deepgram.APIKey != "dg-key" {
		t.Fatalf("unexpected deepgram key: %s", cfg.Deepgram.APIKey)
	}
	if cfg.Deepgram.Timeout != 30*time.Second || cfg.Translation.Timeout != 30*time.Second {
		t.Fatalf("unexpected provider timeouts: %v %v", cfg.Deepgram.Timeout, cfg.Translation.Timeout)
	}
	if !cfg.Queue.Enabled() || cfg.Queue.Port != 5672 || cfg.Queue.Kind != "topic" {
		t.Fatalf("unexpected rabbitmq config: %+v", cfg.Queue)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("DEEPGRAM_API_KEY", "from-env")
	t.Setenv("TRANSLATION_PROVIDER", "openai")
	t.Setenv("AUTH_JWT_SECRET", "s3cret")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Deepgram.APIKey != "from-env" {
		t.Fatalf("expected env deepgram key, got %s", cfg.Deepgram.APIKey)
	}
	if cfg.Translation.Provider != "openai" {
		t.Fatalf("expected openai provider, got %s", cfg.Translation.Provider)
	}
	if cfg.Auth.JWTSecret != "s3cret" {
		t.Fatalf("expected jwt secret from env, got %s", cfg.Auth.JWTSecret)
	}
}

func TestNewMinIOClientDisabled(t *testing.T) {
	client, err := NewMinIOClient(MinIO{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client != nil {
		t.Fatal("expected nil client without url")
	}
}

func TestNewPostgresDBRequiresDSN(t *testing.T) {
	if _, err := NewPostgresDB(Store{}); err == nil {
		t.Fatal("expected error without dsn")
	}
}

func TestLoadAllowedOriginsFromEnv(t *testing.T) {
	t.Setenv("SERVER_ALLOWED_ORIGINS", "https://a.app, https://b.app,,")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"https://a.app", "https://b.app"}
	if len(cfg.Server.AllowedOrigins) != len(want) {
		t.Fatalf("expected %v, got %v", want, cfg.Server.AllowedOrigins)
	}
	for i, o := range want {
		if cfg.Server.AllowedOrigins[i] != o {
			t.Fatalf("expected %v, got %v", want, cfg.Server.AllowedOrigins)
		}
	}
}

func TestLoadAllowedOriginsFromYAMLList(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  allowed_origins:
    - https://a.app
    - https://b.app
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "https://b.app" {
		t.Fatalf("unexpected origins: %v", cfg.Server.AllowedOrigins)
	}
}

func TestLoadPortFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.HttpPort != "8080" {
		t.Fatalf("expected PORT to be honored, got %s", cfg.Server.HttpPort)
	}

	t.Setenv("SERVER_PORT", "9090")
	cfg, err = Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.HttpPort != "9090" {
		t.Fatalf("expected SERVER_PORT to win, got %s", cfg.Server.HttpPort)
	}
}

func TestLoadRabbitMQExchange(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Queue.ExchangeName != "transcription_exchange" {
		t.Fatalf("unexpected default exchange: %s", cfg.Queue.ExchangeName)
	}

	t.Setenv("RABBITMQ_EXCHANGE", "speech_events")
	cfg, err = Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Queue.ExchangeName != "speech_events" {
		t.Fatalf("expected exchange from env, got %s", cfg.Queue.ExchangeName)
	}
}
