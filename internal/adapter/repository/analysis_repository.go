package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/callsight-ai/callsight/internal/domain/entities"
)

// AnalysisRepository handles analysis record data operations
type AnalysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save upserts the analysis for a transcript. Results are immutable per
// transcript, so a re-run under a different plan replaces the payload.
func (r *AnalysisRepository) Save(ctx context.Context, record *entities.AnalysisRecord) error {
	if record == nil {
		return errors.New("analysis record cannot be nil")
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "transcript_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"plan", "payload", "updated_at"}),
		}).
		Create(record).Error
}

// GetByTranscriptID retrieves the stored analysis for a transcript
func (r *AnalysisRepository) GetByTranscriptID(ctx context.Context, transcriptID uuid.UUID) (*entities.AnalysisRecord, error) {
	var record entities.AnalysisRecord
	if err := r.db.WithContext(ctx).Where("transcript_id = ?", transcriptID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}
