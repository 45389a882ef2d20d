package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
	"speech-translate/constant"
)

type Config struct {
	App         App         `yaml:"app"`
	Server      Server      `yaml:"server"`
	Store       Store       `yaml:"store"`
	Deepgram    Deepgram    `yaml:"deepgram"`
	Translation Translation `yaml:"translation"`
	Google      Google      `yaml:"google"`
	OpenAI      OpenAI      `yaml:"openai"`
	MinIO       MinIO       `yaml:"minio"`
	Queue       *RabbitMQ   `yaml:"rabbitmq"`
	Auth        Auth        `yaml:"auth"`
}

type App struct {
	Environment string `yaml:"environment"`
}

type Server struct {
	HttpPort       string   `yaml:"http_port"`
	Workers        int      `yaml:"workers"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Store struct {
	Driver        string `yaml:"driver"`
	PostgresDSN   string `yaml:"postgresql_host"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`
}

type Deepgram struct {
	APIKey  string        `yaml:"api_key"`
	URL     string        `yaml:"url"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

type Translation struct {
	Provider string        `yaml:"provider"`
	Timeout  time.Duration `yaml:"timeout"`
}

type Google struct {
	APIKey          string `yaml:"api_key"`
	CredentialsFile string `yaml:"credentials_file"`
	URL             string `yaml:"url"`
}

type OpenAI struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type MinIO struct {
	URL             string `yaml:"url"`
	AccessID        string `yaml:"access_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Bucket          string `yaml:"bucket"`
	Secure          bool   `yaml:"secure"`
}

type RabbitMQ struct {
	Host         string `yaml:"rabbitmq_host"`
	Port         int    `yaml:"rabbitmq_port"`
	User         string `yaml:"rabbitmq_user"`
	Pass         string `yaml:"rabbitmq_pass"`
	ExchangeName string `yaml:"rabbitmq_exchange"`
	Kind         string `yaml:"rabbitmq_kind"`
}

type Auth struct {
	JWTSecret string `yaml:"jwt_secret"`
}

// Load reads config.yaml from path when present and overlays environment variables,
// so deepgram.api_key can also be given as DEEPGRAM_API_KEY.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	if err := v.BindEnv("server.port", "SERVER_PORT", "PORT"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	providersTimeout := v.GetDuration("providers.timeout")

	return &Config{
		App: App{
			Environment: v.GetString("app.environment"),
		},
		Server: Server{
			HttpPort:       v.GetString("server.port"),
			Workers:        v.GetInt("server.workers"),
			AllowedOrigins: stringList(v, "server.allowed_origins"),
		},
		Store: Store{
			Driver:        v.GetString("store.driver"),
			PostgresDSN:   v.GetString("postgresql_host"),
			MongoURI:      v.GetString("mongo.uri"),
			MongoDatabase: v.GetString("mongo.database"),
		},
		Deepgram: Deepgram{
			APIKey:  v.GetString("deepgram.api_key"),
			URL:     v.GetString("deepgram.url"),
			Model:   v.GetString("deepgram.model"),
			Timeout: providersTimeout,
		},
		Translation: Translation{
			Provider: v.GetString("translation.provider"),
			Timeout:  providersTimeout,
		},
		Google: Google{
			APIKey:          v.GetString("google.api_key"),
			CredentialsFile: v.GetString("google.credentials_file"),
			URL:             v.GetString("google.url"),
		},
		OpenAI: OpenAI{
			APIKey:  v.GetString("openai.api_key"),
			Model:   v.GetString("openai.model"),
			BaseURL: v.GetString("openai.base_url"),
		},
		MinIO: MinIO{
			URL:             v.GetString("minio.url"),
			AccessID:        v.GetString("minio.access_id"),
			SecretAccessKey: v.GetString("minio.secret_access_key"),
			Bucket:          v.GetString("minio.bucket"),
			Secure:          v.GetBool("minio.secure"),
		},
		Queue: &RabbitMQ{
			Host:         v.GetString("rabbitmq_host"),
			Port:         v.GetInt("rabbitmq_port"),
			User:         v.GetString("rabbitmq_user"),
			Pass:         v.GetString("rabbitmq_pass"),
			ExchangeName: v.GetString("rabbitmq_exchange"),
			Kind:         v.GetString("rabbitmq_kind"),
		},
		Auth: Auth{
			JWTSecret: v.GetString("auth.jwt_secret"),
		},
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.environment", "production")
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.workers", 1)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("store.driver", "postgres")
	v.SetDefault("mongo.database", "speech_to_text")
	v.SetDefault("deepgram.url", "https://api.deepgram.com")
	v.SetDefault("deepgram.model", "nova-2")
	v.SetDefault("translation.provider", "google")
	v.SetDefault("google.url", "https://translation.googleapis.com")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("providers.timeout", time.Duration(0))
	v.SetDefault("minio.bucket", "speech-audio")
	v.SetDefault("rabbitmq_port", 5672)
	v.SetDefault("rabbitmq_kind", "topic")
	v.SetDefault("rabbitmq_exchange", constant.TranscriptionExchange)
}

// stringList reads a list that may come from YAML or from a comma separated env value.
func stringList(v *viper.Viper, key string) []string {
	var out []string
	for _, item := range v.GetStringSlice(key) {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
