package entities

import (
	"time"

	"github.com/google/uuid"
)

// TranscriptStatus is the transcription lifecycle status
type TranscriptStatus string

const (
	TranscriptStatusQueued     TranscriptStatus = "queued"
	TranscriptStatusProcessing TranscriptStatus = "processing"
	TranscriptStatusCompleted  TranscriptStatus = "completed"
	TranscriptStatusError      TranscriptStatus = "error"
)

// Transcript is a stored diarized call transcript
type Transcript struct {
	ID         uuid.UUID        `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AudioURL   string           `json:"audio_url" gorm:"type:text;not null"`
	Status     TranscriptStatus `json:"status" gorm:"type:varchar(20);not null;index"`
	ExternalID string           `json:"external_id,omitempty" gorm:"type:varchar(255)"`
	Language   string           `json:"language,omitempty" gorm:"type:varchar(20)"`
	DurationMS int              `json:"duration_ms,omitempty"`
	Error      string           `json:"error,omitempty" gorm:"type:text"`
	Utterances []Utterance      `json:"utterances,omitempty" gorm:"foreignKey:TranscriptID"`
	CreatedAt  time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Transcript) TableName() string {
	return "transcripts"
}

// NewTranscript creates a new queued transcript for an audio URL
func NewTranscript(audioURL string) *Transcript {
	return &Transcript{
		ID:        uuid.New(),
		AudioURL:  audioURL,
		Status:    TranscriptStatusQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// Utterance is one diarized utterance within a transcript
type Utterance struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TranscriptID uuid.UUID `json:"transcript_id" gorm:"type:uuid;not null;index"`
	Position     int       `json:"position" gorm:"not null"`
	Speaker      string    `json:"speaker" gorm:"type:varchar(50);not null"`
	Text         string    `json:"text" gorm:"type:text;not null"`
	StartMS      int       `json:"start_ms"`
	EndMS        int       `json:"end_ms"`
	Confidence   float64   `json:"confidence,omitempty"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Utterance) TableName() string {
	return "utterances"
}

// SpeakerSegment is the full concatenated text of one speaker. Derived per
// analysis request, never persisted.
type SpeakerSegment struct {
	Speaker  string `json:"speaker"`
	FullText string `json:"full_text"`
}

// BuildSpeakerSegments concatenates utterance text per speaker, ordered by
// each speaker's first appearance.
func BuildSpeakerSegments(utterances []Utterance) []SpeakerSegment {
	texts := make(map[string][]byte)
	order := make([]string, 0, 2)

	for _, u := range utterances {
		if _, seen := texts[u.Speaker]; !seen {
			order = append(order, u.Speaker)
		}
		if len(texts[u.Speaker]) > 0 {
			texts[u.Speaker] = append(texts[u.Speaker], ' ')
		}
		texts[u.Speaker] = append(texts[u.Speaker], u.Text...)
	}

	segments := make([]SpeakerSegment, 0, len(order))
	for _, speaker := range order {
		segments = append(segments, SpeakerSegment{
			Speaker:  speaker,
			FullText: string(texts[speaker]),
		})
	}
	return segments
}
