package transcript

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/callsight-ai/callsight/internal/domain/entities"
	"github.com/callsight-ai/callsight/internal/domain/repositories"
	"github.com/callsight-ai/callsight/pkg/stt"
)

// ErrNotFound is returned when no transcript exists for the requested ID.
var ErrNotFound = errors.New("transcript not found")

// Transcriber turns an audio URL into a diarized transcript.
type Transcriber interface {
	Transcribe(ctx context.Context, audioURL string) (*stt.Result, error)
}

// Service manages transcript ingestion: submission, background
// transcription and retrieval.
type Service struct {
	transcripts repositories.TranscriptRepository
	transcriber Transcriber
	logger      *zap.Logger

	// Bounds concurrent transcription jobs against the STT provider.
	sem chan struct{}
}

// NewService creates the transcript service.
func NewService(
	transcripts repositories.TranscriptRepository,
	transcriber Transcriber,
	maxConcurrency int,
	logger *zap.Logger,
) *Service {
	if maxConcurrency <= 0 {
		maxConcurrency = 3
	}
	return &Service{
		transcripts: transcripts,
		transcriber: transcriber,
		logger:      logger,
		sem:         make(chan struct{}, maxConcurrency),
	}
}

// Submit registers an audio URL for transcription and processes it in the
// background. The returned transcript starts in the queued status.
func (s *Service) Submit(ctx context.Context, audioURL string) (*entities.Transcript, error) {
	transcript := entities.NewTranscript(audioURL)
	if err := s.transcripts.Create(ctx, transcript); err != nil {
		return nil, err
	}

	go s.process(transcript.ID, audioURL)

	return transcript, nil
}

// process runs one transcription job. It detaches from the request context:
// the job outlives the submitting request.
func (s *Service) process(id uuid.UUID, audioURL string) {
	s.sem <- struct{}{}
	defer func() { <-s.sem }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if err := s.transcripts.UpdateStatus(ctx, id, entities.TranscriptStatusProcessing, ""); err != nil {
		s.logger.Error("failed to mark transcript processing",
			zap.String("transcript_id", id.String()),
			zap.Error(err))
		return
	}

	result, err := s.transcriber.Transcribe(ctx, audioURL)
	if err != nil {
		s.logger.Error("transcription failed",
			zap.String("transcript_id", id.String()),
			zap.Error(err))
		if updateErr := s.transcripts.UpdateStatus(ctx, id, entities.TranscriptStatusError, err.Error()); updateErr != nil {
			s.logger.Error("failed to mark transcript errored",
				zap.String("transcript_id", id.String()),
				zap.Error(updateErr))
		}
		return
	}

	transcript, err := s.transcripts.GetByID(ctx, id)
	if err != nil || transcript == nil {
		s.logger.Error("failed to reload transcript after transcription",
			zap.String("transcript_id", id.String()),
			zap.Error(err))
		return
	}

	transcript.ExternalID = result.ExternalID
	transcript.Language = result.Language
	transcript.DurationMS = result.DurationMS

	utterances := make([]entities.Utterance, 0, len(result.Utterances))
	for i, u := range result.Utterances {
		utterances = append(utterances, entities.Utterance{
			ID:           uuid.New(),
			TranscriptID: id,
			Position:     i,
			Speaker:      u.Speaker,
			Text:         u.Text,
			StartMS:      u.StartMS,
			EndMS:        u.EndMS,
			Confidence:   u.Confidence,
		})
	}

	if err := s.transcripts.MarkCompleted(ctx, transcript, utterances); err != nil {
		s.logger.Error("failed to store completed transcript",
			zap.String("transcript_id", id.String()),
			zap.Error(err))
		return
	}

	s.logger.Info("transcript stored",
		zap.String("transcript_id", id.String()),
		zap.Int("utterances", len(utterances)))
}

// Get returns a transcript with its utterances.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*entities.Transcript, error) {
	transcript, err := s.transcripts.GetWithUtterances(ctx, id)
	if err != nil {
		return nil, err
	}
	if transcript == nil {
		return nil, ErrNotFound
	}
	return transcript, nil
}
