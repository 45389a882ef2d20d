package service

import (
	"context"
	"errors"
	"sync"

	"speech-translate/dto"
	"speech-translate/entities"
	"speech-translate/stt"
)

type fakeTranscriber struct {
	mu       sync.Mutex
	result   stt.Result
	err      error
	calls    int
	language string
	// byAudio answers per audio payload when set
	byAudio  map[string]string
}

func (f *fakeTranscriber) Name() string { return "fake-stt" }

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio []byte, language string) (stt.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.language = language
	if f.err != nil {
		return stt.Result{}, f.err
	}
	if f.byAudio != nil {
		return stt.Result{Transcript: f.byAudio[string(audio)]}, nil
	}
	return f.result, nil
}

type fakeTranslator struct {
	mu     sync.Mutex
	out    string
	err    error
	calls  int
	text   string
	target string
	echo   bool
}

func (f *fakeTranslator) Name() string { return "fake-translate" }

func (f *fakeTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.text = text
	f.target = targetLang
	if f.err != nil {
		return "", f.err
	}
	if f.echo {
		return text + "@" + targetLang, nil
	}
	return f.out, nil
}

type fakeRepo struct {
	mu      sync.Mutex
	records []entities.TranscriptionRecord
	err     error
	findErr error
}

func (f *fakeRepo) Insert(ctx context.Context, record *entities.TranscriptionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	record.ID = "rec-" + record.OwnerID
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeRepo) FindByOwner(ctx context.Context, ownerID string) ([]entities.TranscriptionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []entities.TranscriptionRecord
	for _, r := range f.records {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeArchive struct {
	key      string
	err      error
	calls    int
	owner    string
	filename string
}

func (f *fakeArchive) Put(ctx context.Context, ownerID, filename, contentType string, data []byte) (string, error) {
	f.calls++
	f.owner = ownerID
	f.filename = filename
	if f.err != nil {
		return "", f.err
	}
	return f.key, nil
}

type fakePublisher struct {
	msgs []dto.TranscriptionCreatedMessage
	err  error
}

func (f *fakePublisher) Publish(ctx context.Context, msg dto.TranscriptionCreatedMessage) error {
	f.msgs = append(f.msgs, msg)
	return f.err
}

var errBoom = errors.New("boom")

func sttResult(transcript string) stt.Result {
	return stt.Result{Transcript: transcript}
}
