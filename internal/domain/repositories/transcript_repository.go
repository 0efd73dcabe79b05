package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/callsight-ai/callsight/internal/domain/entities"
)

// TranscriptRepository defines persistence operations for transcripts and
// their utterances
type TranscriptRepository interface {
	Create(ctx context.Context, transcript *entities.Transcript) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error)
	GetWithUtterances(ctx context.Context, id uuid.UUID) (*entities.Transcript, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.TranscriptStatus, errMsg string) error
	MarkCompleted(ctx context.Context, transcript *entities.Transcript, utterances []entities.Utterance) error
}

// AnalysisRepository defines persistence operations for analysis records
type AnalysisRepository interface {
	Save(ctx context.Context, record *entities.AnalysisRecord) error
	GetByTranscriptID(ctx context.Context, transcriptID uuid.UUID) (*entities.AnalysisRecord, error)
}
