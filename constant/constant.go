package constant

type Environment string

const (
	EnvironmentProduction Environment = "production"
	EnvironmentDevelop    Environment = "develop"
)

func (e Environment) String() string {
	return string(e)
}

type StoreDriver string

const (
	StoreDriverPostgres StoreDriver = "postgres"
	StoreDriverMongo    StoreDriver = "mongo"
	StoreDriverMemory   StoreDriver = "memory"
)

type TranslationProvider string

const (
	TranslationProviderGoogle TranslationProvider = "google"
	TranslationProviderOpenAI TranslationProvider = "openai"
)

const (
	DefaultTargetLanguage = "hi"
	DefaultSourceLanguage = "en"

	// NoSpeechTranscript is returned in place of a transcript when the provider hears nothing.
	NoSpeechTranscript = "No speech detected"
)

// Event routing shared by the publisher and the events worker.
const (
	TranscriptionExchange   = "transcription_exchange"
	TranscriptionQueue      = "transcription_events_queue"
	TranscriptionCreatedKey = "transcription.created"
)
