package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SentimentType keeps the Korean wire values the analysis prompts produce.
type SentimentType string

const (
	SentimentPositive  SentimentType = "긍정"
	SentimentNegative  SentimentType = "부정"
	SentimentNeutral   SentimentType = "중립"
	SentimentExcited   SentimentType = "흥분/기대"
	SentimentWorried   SentimentType = "걱정/우려"
	SentimentAngry     SentimentType = "화남"
	SentimentSatisfied SentimentType = "만족"
)

// CustomerState is the customer's purchase-journey state.
type CustomerState string

const (
	CustomerStateInterested    CustomerState = "관심 있음"
	CustomerStateConsidering   CustomerState = "고민 중"
	CustomerStateHesitant      CustomerState = "망설임"
	CustomerStateSatisfied     CustomerState = "만족"
	CustomerStateDissatisfied  CustomerState = "불만족"
	CustomerStateReadyToBuy    CustomerState = "구매 준비됨"
	CustomerStateNotInterested CustomerState = "관심 없음"
)

// SpeakerSentiment is the per-speaker emotional read of the call
type SpeakerSentiment struct {
	Speaker           string        `json:"speaker"`
	SentimentCategory SentimentType `json:"sentiment_category"`
	Score             float64       `json:"score"`
	ToneDescription   string        `json:"tone_description"`
	EngagementLevel   string        `json:"engagement_level"`
	KeyEmotions       []string      `json:"key_emotions"`
}

// ConversationSummary is the quick-summary sub-task output
type ConversationSummary struct {
	Overview string   `json:"overview"`
	Topics   []string `json:"topics"`
	Outcome  string   `json:"outcome"`
}

// CustomerNeed is the customer-needs sub-task output
type CustomerNeed struct {
	PrimaryReason string   `json:"primary_reason"`
	Needs         []string `json:"needs"`
	PainPoints    []string `json:"pain_points"`
	Urgency       string   `json:"urgency"`
}

// ConversationTurn is one exchange in the reconstructed call flow
type ConversationTurn struct {
	TurnNumber int    `json:"turn_number"`
	Speaker    string `json:"speaker"`
	Message    string `json:"message"`
	Reaction   string `json:"reaction,omitempty"`
	KeyPoint   string `json:"key_point,omitempty"`
}

// CallFlow is the call-flow sub-task output
type CallFlow struct {
	Turns           []ConversationTurn `json:"turns"`
	Journey         []string           `json:"journey"`
	CriticalMoments []string           `json:"critical_moments"`
}

// ModelUsage records which model actually served a sub-task, post-fallback
type ModelUsage struct {
	Task             string `json:"task"`
	ModelDisplayName string `json:"model_display_name"`
}

// ComprehensiveAnalysis is the complete multi-model analysis of one call.
// It is immutable once produced: the analysis either has every section or
// does not exist.
type ComprehensiveAnalysis struct {
	TranscriptID        string              `json:"transcript_id"`
	SpeakerSentiments   []SpeakerSentiment  `json:"speaker_sentiments"`
	CustomerState       CustomerState       `json:"customer_state"`
	ConversationSummary ConversationSummary `json:"conversation_summary"`
	CustomerNeed        CustomerNeed        `json:"customer_need"`
	CallFlow            CallFlow            `json:"call_flow"`
	NextAction          string              `json:"next_action"`
	RecommendedReplies  []string            `json:"recommended_replies"`
	ModelsUsed          []ModelUsage        `json:"models_used"`
	ConfidenceScore     float64             `json:"confidence_score"`
	Timestamp           time.Time           `json:"timestamp"`
}

// AnalysisRecord is the persisted form of a comprehensive analysis
type AnalysisRecord struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TranscriptID uuid.UUID      `json:"transcript_id" gorm:"type:uuid;not null;uniqueIndex"`
	Plan         string         `json:"plan" gorm:"type:varchar(20);not null"`
	Payload      datatypes.JSON `json:"payload" gorm:"type:jsonb;not null"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (AnalysisRecord) TableName() string {
	return "analysis_records"
}

// NewAnalysisRecord creates a persisted analysis record
func NewAnalysisRecord(transcriptID uuid.UUID, plan string, payload datatypes.JSON) *AnalysisRecord {
	return &AnalysisRecord{
		ID:           uuid.New(),
		TranscriptID: transcriptID,
		Plan:         plan,
		Payload:      payload,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}
