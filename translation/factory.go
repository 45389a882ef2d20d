package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"speech-translate/config"
	"speech-translate/constant"
)

// NewFromConfig builds the translator named by translation.provider.
func NewFromConfig(ctx context.Context, cfg *config.Config) (Translator, error) {
	provider := constant.TranslationProvider(strings.ToLower(cfg.Translation.Provider))

	switch provider {
	case constant.TranslationProviderGoogle, "":
		zerolog.Ctx(ctx).Info().Str("provider", string(constant.TranslationProviderGoogle)).Msg("creating translator")
		return NewGoogleTranslator(ctx, cfg.Google.URL, cfg.Google.APIKey, cfg.Google.CredentialsFile, cfg.Translation.Timeout)
	case constant.TranslationProviderOpenAI:
		if cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("openai.api_key is required for the openai translator")
		}
		zerolog.Ctx(ctx).Info().Str("provider", string(provider)).Str("model", cfg.OpenAI.Model).Msg("creating translator")
		return NewOpenAITranslator(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, cfg.Translation.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported translation provider: %s. Supported: google, openai", provider)
	}
}
