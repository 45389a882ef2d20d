package entities

import (
	"time"
)

// TranscriptionRecord is one persisted transcript/translation pair. Records are append-only.
// JSON names follow the documents the web client has always read from /api/history.
type TranscriptionRecord struct {
	ID             string    `json:"_id" gorm:"type:varchar(64);primary_key"`
	OwnerID        string    `json:"userId" gorm:"type:varchar(255);not null;index:idx_transcriptions_owner_id"`
	SourceText     string    `json:"transcript" gorm:"type:text;not null"`
	TranslatedText string    `json:"transcriptHindi" gorm:"type:text"`
	TargetLanguage string    `json:"targetLang" gorm:"type:varchar(16)"`
	AudioKey       string    `json:"audioKey,omitempty" gorm:"type:varchar(500)"`
	CreatedAt      time.Time `json:"createdAt" gorm:"type:timestamptz;not null;index:idx_transcriptions_created_at"`
}

func (TranscriptionRecord) TableName() string {
	return "transcriptions"
}
