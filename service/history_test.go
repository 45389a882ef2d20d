package service

import (
	"context"
	"errors"
	"testing"

	"speech-translate/entities"
	"speech-translate/repository"
)

func TestHistory_MissingOwner(t *testing.T) {
	if _, err := NewHistoryService(&fakeRepo{}).History(context.Background(), ""); !errors.Is(err, ErrMissingOwner) {
		t.Fatalf("expected missing owner, got %v", err)
	}
}

func TestHistory_StoreError(t *testing.T) {
	_, err := NewHistoryService(&fakeRepo{findErr: errBoom}).History(context.Background(), "u1")
	if !errors.Is(err, ErrHistoryQuery) || !errors.Is(err, errBoom) {
		t.Fatalf("expected wrapped history error, got %v", err)
	}
}

func TestHistory_EmptyIsNonNil(t *testing.T) {
	records, err := NewHistoryService(&fakeRepo{}).History(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Fatalf("expected empty slice, got %#v", records)
	}
}

func TestHistory_RoundTripThroughUpload(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepo()

	upload := NewUploadService(Deps{
		Transcriber: &fakeTranscriber{result: sttResult("hello")},
		Translator:  &fakeTranslator{out: "नमस्ते"},
		Repository:  repo,
	})
	if _, err := upload.Upload(ctx, UploadRequest{Audio: []byte("a"), OwnerID: "u1", TargetLanguage: "hi"}); err != nil {
		t.Fatalf("upload: %v", err)
	}

	history := NewHistoryService(repo)
	got, err := history.History(ctx, "u1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one record, got %d", len(got))
	}
	want := entities.TranscriptionRecord{OwnerID: "u1", SourceText: "hello", TranslatedText: "नमस्ते", TargetLanguage: "hi"}
	if got[0].OwnerID != want.OwnerID || got[0].SourceText != want.SourceText || got[0].TranslatedText != want.TranslatedText || got[0].TargetLanguage != want.TargetLanguage {
		t.Fatalf("expected %+v, got %+v", want, got[0])
	}

	other, err := history.History(ctx, "u2")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("record leaked to another owner: %+v", other)
	}
}
