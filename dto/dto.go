package dto

import "time"

type UploadResponse struct {
	Transcript     string `json:"transcript"`
	TranslatedText string `json:"translatedText"`
	TargetLanguage string `json:"targetLanguage,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type TranscriptionCreatedMessage struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"userId"`
	TargetLanguage string    `json:"targetLang"`
	AudioKey       string    `json:"audioKey,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
