package stt

import (
	"context"
	"fmt"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/callsight-ai/callsight/pkg/config"
)

// Utterance is one diarized utterance from the STT provider.
type Utterance struct {
	Speaker    string
	Text       string
	StartMS    int
	EndMS      int
	Confidence float64
}

// Result is a completed transcription.
type Result struct {
	ExternalID string
	Language   string
	DurationMS int
	Utterances []Utterance
}

// Client wraps the AssemblyAI SDK for diarized call transcription.
type Client struct {
	client   *aai.Client
	language string
	logger   *zap.Logger
}

// NewClient creates a transcription client from config.
func NewClient(cfg *config.AssemblyConfig, logger *zap.Logger) *Client {
	return &Client{
		client:   aai.NewClient(cfg.APIKey),
		language: cfg.LanguageCode,
		logger:   logger,
	}
}

// Transcribe submits an audio URL with speaker labels on and waits for the
// transcript to complete. Submission is retried with exponential backoff;
// the SDK polls the job itself.
func (c *Client) Transcribe(ctx context.Context, audioURL string) (*Result, error) {
	params := &aai.TranscriptOptionalParams{
		LanguageCode:  aai.TranscriptLanguageCode(c.language),
		SpeakerLabels: aai.Bool(true),
	}

	var transcript aai.Transcript
	submitFn := func() error {
		var err error
		transcript, err = c.client.Transcripts.TranscribeFromURL(ctx, audioURL, params)
		if err != nil {
			c.logger.Warn("transcription attempt failed",
				zap.String("audio_url", audioURL),
				zap.Error(err))
			return err
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(submitFn, backoff.WithContext(bo, ctx)); err != nil {
		return nil, fmt.Errorf("failed to transcribe audio: %w", err)
	}

	if transcript.Status == aai.TranscriptStatusError {
		msg := "transcription failed"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return nil, fmt.Errorf("assemblyai: %s", msg)
	}

	result := &Result{
		ExternalID: deref(transcript.ID),
		Language:   string(transcript.LanguageCode),
	}
	if transcript.AudioDuration != nil {
		result.DurationMS = int(*transcript.AudioDuration * 1000)
	}
	for _, u := range transcript.Utterances {
		result.Utterances = append(result.Utterances, Utterance{
			Speaker:    deref(u.Speaker),
			Text:       deref(u.Text),
			StartMS:    int(derefInt64(u.Start)),
			EndMS:      int(derefInt64(u.End)),
			Confidence: derefFloat(u.Confidence),
		})
	}

	c.logger.Info("transcription completed",
		zap.String("external_id", result.ExternalID),
		zap.Int("utterances", len(result.Utterances)),
		zap.Int("duration_ms", result.DurationMS))

	return result, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt64(i *int64) int64 {
	if i == nil {
		return 0
	}
	return *i
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
