package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/callsight-ai/callsight/internal/domain/entities"
	"github.com/callsight-ai/callsight/internal/domain/repositories"
	"github.com/callsight-ai/callsight/pkg/llm"
)

// Analysis confidence is fixed until per-model confidence propagation lands.
const analysisConfidence = 0.85

const defaultNextAction = "후속 연락 필요"

// Generator dispatches one JSON-mode generation through the model router.
type Generator interface {
	GenerateJSON(ctx context.Context, plan llm.Plan, task llm.Task, systemPrompt, prompt string) (*llm.JSONResult, error)
}

// ContextProvider resolves the script context spliced into the replies
// prompt.
type ContextProvider interface {
	GetContext(ctx context.Context, companyID, industry string) string
}

// ResultCache caches immutable comprehensive analyses by transcript ID.
type ResultCache interface {
	Get(ctx context.Context, transcriptID string) (*entities.ComprehensiveAnalysis, bool)
	Set(ctx context.Context, analysis *entities.ComprehensiveAnalysis)
}

// Service runs the multi-model comprehensive analysis pipeline.
type Service struct {
	generator   Generator
	scripts     ContextProvider
	transcripts repositories.TranscriptRepository
	analyses    repositories.AnalysisRepository
	cache       ResultCache
	logger      *zap.Logger
}

// NewService creates the analysis service.
func NewService(
	generator Generator,
	scripts ContextProvider,
	transcripts repositories.TranscriptRepository,
	analyses repositories.AnalysisRepository,
	cache ResultCache,
	logger *zap.Logger,
) *Service {
	return &Service{
		generator:   generator,
		scripts:     scripts,
		transcripts: transcripts,
		analyses:    analyses,
		cache:       cache,
		logger:      logger,
	}
}

// AnalyzeInput is one analysis request over an already-loaded transcript.
type AnalyzeInput struct {
	TranscriptID string
	Utterances   []entities.Utterance
	Plan         llm.Plan
	CompanyID    string
	Industry     string
}

// subTaskResult is one slot of the concurrent tier.
type subTaskResult struct {
	task llm.Task
	res  *llm.JSONResult
	err  error
}

// Analyze runs all five sub-tasks and assembles the comprehensive analysis.
// Summary, sentiment, needs and flow run concurrently; replies runs last
// because it consumes the sentiment and needs outputs. Any sub-task that
// exhausts its fallback chain fails the whole analysis: results are complete
// or absent, never partial.
func (s *Service) Analyze(ctx context.Context, in AnalyzeInput) (*entities.ComprehensiveAnalysis, error) {
	if len(in.Utterances) == 0 {
		return nil, fmt.Errorf("transcript %s has no utterances", in.TranscriptID)
	}

	started := time.Now()
	segments := entities.BuildSpeakerSegments(in.Utterances)
	customerSpeaker := DetectCustomerSpeaker(in.Utterances, segments)
	agentSpeaker := customerSpeaker
	for _, seg := range segments {
		if seg.Speaker != customerSpeaker {
			agentSpeaker = seg.Speaker
			break
		}
	}

	var customerText, agentText string
	for _, seg := range segments {
		if seg.Speaker == customerSpeaker {
			customerText = seg.FullText
		} else if seg.Speaker == agentSpeaker {
			agentText = seg.FullText
		}
	}

	conversation := buildConversation(in.Utterances, customerSpeaker)
	utteranceList := buildUtteranceList(in.Utterances, customerSpeaker)
	scriptContext := s.scripts.GetContext(ctx, in.CompanyID, in.Industry)

	s.logger.Info("starting comprehensive analysis",
		zap.String("transcript_id", in.TranscriptID),
		zap.String("plan", string(in.Plan)),
		zap.String("customer_speaker", customerSpeaker),
		zap.Int("utterances", len(in.Utterances)))

	// Independent tier: summary, sentiment, needs, flow.
	slots := [4]subTaskResult{
		{task: llm.TaskQuickSummary},
		{task: llm.TaskSentimentAnalysis},
		{task: llm.TaskCustomerNeeds},
		{task: llm.TaskCallFlow},
	}
	prompts := [4]string{
		buildSummaryPrompt(conversation),
		buildSentimentPrompt(customerText, agentText),
		buildNeedsPrompt(customerText, conversation),
		buildFlowPrompt(utteranceList),
	}

	var wg sync.WaitGroup
	for i := range slots {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			slots[i].res, slots[i].err = s.generator.GenerateJSON(ctx, in.Plan, slots[i].task, analysisSystemPrompt, prompts[i])
		}(i)
	}
	wg.Wait()

	for _, slot := range slots {
		if slot.err != nil {
			s.logger.Error("analysis sub-task failed",
				zap.String("transcript_id", in.TranscriptID),
				zap.String("task", string(slot.task)),
				zap.Error(slot.err))
			return nil, fmt.Errorf("sub-task %s failed: %w", slot.task, slot.err)
		}
	}

	summaryRes, sentimentRes, needsRes, flowRes := slots[0].res, slots[1].res, slots[2].res, slots[3].res

	customerState := NormalizeCustomerState(getString(sentimentRes.Parsed, "customer_state"))
	need := parseCustomerNeed(needsRes.Parsed)

	// Dependent tier: replies consume the sentiment and needs outputs.
	repliesRes, err := s.generator.GenerateJSON(ctx, in.Plan, llm.TaskRecommendedReplies,
		analysisSystemPrompt, buildRepliesPrompt(conversation, customerState, need, scriptContext))
	if err != nil {
		s.logger.Error("analysis sub-task failed",
			zap.String("transcript_id", in.TranscriptID),
			zap.String("task", string(llm.TaskRecommendedReplies)),
			zap.Error(err))
		return nil, fmt.Errorf("sub-task %s failed: %w", llm.TaskRecommendedReplies, err)
	}

	nextAction := getString(repliesRes.Parsed, "next_action")
	if nextAction == "" {
		nextAction = defaultNextAction
	}

	result := &entities.ComprehensiveAnalysis{
		TranscriptID: in.TranscriptID,
		SpeakerSentiments: []entities.SpeakerSentiment{
			parseSpeakerSentiment(sentimentRes.Parsed, "customer", customerSpeaker),
			parseSpeakerSentiment(sentimentRes.Parsed, "agent", agentSpeaker),
		},
		CustomerState:       customerState,
		ConversationSummary: parseSummary(summaryRes.Parsed),
		CustomerNeed:        need,
		CallFlow:            parseCallFlow(flowRes.Parsed),
		NextAction:          nextAction,
		RecommendedReplies:  getStringSlice(repliesRes.Parsed, "recommended_replies"),
		ModelsUsed: []entities.ModelUsage{
			{Task: string(llm.TaskQuickSummary), ModelDisplayName: summaryRes.DisplayName},
			{Task: string(llm.TaskSentimentAnalysis), ModelDisplayName: sentimentRes.DisplayName},
			{Task: string(llm.TaskCustomerNeeds), ModelDisplayName: needsRes.DisplayName},
			{Task: string(llm.TaskCallFlow), ModelDisplayName: flowRes.DisplayName},
			{Task: string(llm.TaskRecommendedReplies), ModelDisplayName: repliesRes.DisplayName},
		},
		ConfidenceScore: analysisConfidence,
		Timestamp:       time.Now().UTC(),
	}

	s.logger.Info("comprehensive analysis completed",
		zap.String("transcript_id", in.TranscriptID),
		zap.String("plan", string(in.Plan)),
		zap.Duration("duration", time.Since(started)))

	return result, nil
}

// RunComprehensive loads the transcript, runs the analysis and stores the
// result. A cached or persisted analysis for the transcript is returned
// as-is: results are immutable.
func (s *Service) RunComprehensive(ctx context.Context, transcriptID uuid.UUID, plan llm.Plan, companyID, industry string) (*entities.ComprehensiveAnalysis, error) {
	if cached, ok := s.cache.Get(ctx, transcriptID.String()); ok {
		s.logger.Debug("analysis served from cache", zap.String("transcript_id", transcriptID.String()))
		return cached, nil
	}

	if stored, err := s.GetStored(ctx, transcriptID); err == nil && stored != nil {
		s.cache.Set(ctx, stored)
		return stored, nil
	}

	transcript, err := s.transcripts.GetWithUtterances(ctx, transcriptID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}
	if transcript == nil {
		return nil, ErrTranscriptMissing
	}
	if transcript.Status != entities.TranscriptStatusCompleted {
		return nil, fmt.Errorf("%w: status %s", ErrTranscriptIncomplete, transcript.Status)
	}

	result, err := s.Analyze(ctx, AnalyzeInput{
		TranscriptID: transcriptID.String(),
		Utterances:   transcript.Utterances,
		Plan:         plan,
		CompanyID:    companyID,
		Industry:     industry,
	})
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis: %w", err)
	}
	record := entities.NewAnalysisRecord(transcriptID, string(plan), datatypes.JSON(payload))
	if err := s.analyses.Save(ctx, record); err != nil {
		// The analysis itself succeeded; losing persistence is logged, not fatal.
		s.logger.Error("failed to persist analysis",
			zap.String("transcript_id", transcriptID.String()),
			zap.Error(err))
	}
	s.cache.Set(ctx, result)

	return result, nil
}

// GetStored returns the persisted analysis for a transcript, or nil.
func (s *Service) GetStored(ctx context.Context, transcriptID uuid.UUID) (*entities.ComprehensiveAnalysis, error) {
	record, err := s.analyses.GetByTranscriptID(ctx, transcriptID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	var result entities.ComprehensiveAnalysis
	if err := json.Unmarshal(record.Payload, &result); err != nil {
		return nil, fmt.Errorf("failed to decode stored analysis: %w", err)
	}
	return &result, nil
}

// Parsing helpers over the loosely-typed model output.

func parseSummary(m map[string]interface{}) entities.ConversationSummary {
	return entities.ConversationSummary{
		Overview: getString(m, "overview"),
		Topics:   getStringSlice(m, "topics"),
		Outcome:  getString(m, "outcome"),
	}
}

func parseCustomerNeed(m map[string]interface{}) entities.CustomerNeed {
	return entities.CustomerNeed{
		PrimaryReason: getString(m, "primary_reason"),
		Needs:         getStringSlice(m, "needs"),
		PainPoints:    getStringSlice(m, "pain_points"),
		Urgency:       getString(m, "urgency"),
	}
}

func parseSpeakerSentiment(m map[string]interface{}, key, speaker string) entities.SpeakerSentiment {
	section, _ := m[key].(map[string]interface{})
	return entities.SpeakerSentiment{
		Speaker:           speaker,
		SentimentCategory: NormalizeSentiment(getString(section, "sentiment")),
		Score:             getFloat(section, "score"),
		ToneDescription:   getString(section, "tone"),
		EngagementLevel:   getString(section, "engagement_level"),
		KeyEmotions:       getStringSlice(section, "key_emotions"),
	}
}

func parseCallFlow(m map[string]interface{}) entities.CallFlow {
	flow := entities.CallFlow{
		Journey:         getStringSlice(m, "journey"),
		CriticalMoments: getStringSlice(m, "critical_moments"),
	}
	rawTurns, _ := m["turns"].([]interface{})
	for i, raw := range rawTurns {
		turn, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		number := int(getFloat(turn, "turn_number"))
		if number == 0 {
			number = i + 1
		}
		flow.Turns = append(flow.Turns, entities.ConversationTurn{
			TurnNumber: number,
			Speaker:    getString(turn, "speaker"),
			Message:    getString(turn, "message"),
			Reaction:   getString(turn, "reaction"),
			KeyPoint:   getString(turn, "key_point"),
		})
	}
	return flow
}

func getString(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func getFloat(m map[string]interface{}, key string) float64 {
	if m == nil {
		return 0
	}
	f, _ := m[key].(float64)
	return f
}

func getStringSlice(m map[string]interface{}, key string) []string {
	if m == nil {
		return nil
	}
	raw, _ := m[key].([]interface{})
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
