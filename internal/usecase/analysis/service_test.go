package analysis

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/callsight-ai/callsight/internal/domain/entities"
	"github.com/callsight-ai/callsight/pkg/llm"
)

type stubGenerator struct {
	mu      sync.Mutex
	results map[llm.Task]*llm.JSONResult
	errs    map[llm.Task]error
	prompts map[llm.Task]string
	plans   map[llm.Task]llm.Plan
}

func (g *stubGenerator) GenerateJSON(_ context.Context, plan llm.Plan, task llm.Task, _, prompt string) (*llm.JSONResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.prompts == nil {
		g.prompts = make(map[llm.Task]string)
		g.plans = make(map[llm.Task]llm.Plan)
	}
	g.prompts[task] = prompt
	g.plans[task] = plan
	if err := g.errs[task]; err != nil {
		return nil, err
	}
	return g.results[task], nil
}

type stubContext struct {
	context string
}

func (s *stubContext) GetContext(_ context.Context, _, _ string) string {
	return s.context
}

func happyResults() map[llm.Task]*llm.JSONResult {
	return map[llm.Task]*llm.JSONResult{
		llm.TaskQuickSummary: {
			Result: llm.Result{DisplayName: "Gemini 2.0 Flash"},
			Parsed: map[string]interface{}{
				"overview": "요금제 문의 상담",
				"topics":   []interface{}{"요금제", "할인"},
				"outcome":  "추가 안내 예정",
			},
		},
		llm.TaskSentimentAnalysis: {
			Result: llm.Result{DisplayName: "GPT-4o Mini"},
			Parsed: map[string]interface{}{
				"customer": map[string]interface{}{
					"sentiment":        "긍정적",
					"score":            0.7,
					"tone":             "밝고 적극적",
					"engagement_level": "높음",
					"key_emotions":     []interface{}{"기대"},
				},
				"agent": map[string]interface{}{
					"sentiment":        "중립",
					"score":            0.1,
					"tone":             "차분함",
					"engagement_level": "보통",
					"key_emotions":     []interface{}{},
				},
				"customer_state": "구매를 고민 중인 모습",
			},
		},
		llm.TaskCustomerNeeds: {
			Result: llm.Result{DisplayName: "GPT-4o Mini"},
			Parsed: map[string]interface{}{
				"primary_reason": "요금제 변경",
				"needs":          []interface{}{"저렴한 요금제"},
				"pain_points":    []interface{}{"현재 요금이 비쌈"},
				"urgency":        "보통",
			},
		},
		llm.TaskCallFlow: {
			Result: llm.Result{DisplayName: "Gemini 2.0 Flash"},
			Parsed: map[string]interface{}{
				"turns": []interface{}{
					map[string]interface{}{
						"turn_number": float64(1),
						"speaker":     "고객",
						"message":     "요금제 문의",
						"reaction":    "안내 시작",
						"key_point":   "문의 접수",
					},
				},
				"journey":          []interface{}{"문의", "상담"},
				"critical_moments": []interface{}{"할인 언급"},
			},
		},
		llm.TaskRecommendedReplies: {
			Result: llm.Result{DisplayName: "Claude Sonnet 4", WasFallback: true},
			Parsed: map[string]interface{}{
				"next_action": "할인 견적 발송",
				"recommended_replies": []interface{}{
					"할인 견적을 보내드리겠습니다.",
					"가족 결합 조건을 확인해 주세요.",
					"추가 문의는 언제든 연락 주세요.",
				},
			},
		},
	}
}

func testInput() AnalyzeInput {
	return AnalyzeInput{
		TranscriptID: "t-1",
		Plan:         llm.PlanPro,
		Utterances: []entities.Utterance{
			{Position: 0, Speaker: "A", Text: "안녕하세요 콜사이트입니다. 무엇을 도와드리겠습니다"},
			{Position: 1, Speaker: "B", Text: "요금제 문의 때문에 전화했어요. 얼마인가요?"},
			{Position: 2, Speaker: "A", Text: "네 고객님, 바로 안내해 드리겠습니다"},
		},
	}
}

func TestAnalyzeAssemblesAllSections(t *testing.T) {
	gen := &stubGenerator{results: happyResults()}
	svc := NewService(gen, &stubContext{context: "보험 상담 스크립트"}, nil, nil, nil, zap.NewNop())

	got, err := svc.Analyze(context.Background(), testInput())
	if err != nil {
		t.Fatal(err)
	}

	if got.ConversationSummary.Overview != "요금제 문의 상담" {
		t.Errorf("overview = %q", got.ConversationSummary.Overview)
	}
	if got.CustomerState != entities.CustomerStateConsidering {
		t.Errorf("customer_state = %s, want normalized 고민 중", got.CustomerState)
	}
	if len(got.SpeakerSentiments) != 2 {
		t.Fatalf("speaker sentiments = %d, want 2", len(got.SpeakerSentiments))
	}
	if got.SpeakerSentiments[0].Speaker != "B" {
		t.Errorf("customer sentiment speaker = %s, want B", got.SpeakerSentiments[0].Speaker)
	}
	if got.SpeakerSentiments[0].SentimentCategory != entities.SentimentPositive {
		t.Errorf("customer sentiment = %s, want normalized 긍정", got.SpeakerSentiments[0].SentimentCategory)
	}
	if got.CustomerNeed.PrimaryReason != "요금제 변경" {
		t.Errorf("primary_reason = %q", got.CustomerNeed.PrimaryReason)
	}
	if len(got.CallFlow.Turns) != 1 || got.CallFlow.Turns[0].TurnNumber != 1 {
		t.Errorf("call flow turns = %+v", got.CallFlow.Turns)
	}
	if got.NextAction != "할인 견적 발송" {
		t.Errorf("next_action = %q", got.NextAction)
	}
	if len(got.RecommendedReplies) != 3 {
		t.Errorf("recommended replies = %d, want 3", len(got.RecommendedReplies))
	}
	if got.ConfidenceScore != analysisConfidence {
		t.Errorf("confidence = %f", got.ConfidenceScore)
	}
	if got.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestAnalyzeModelsUsedOrderAndDisplayNames(t *testing.T) {
	gen := &stubGenerator{results: happyResults()}
	svc := NewService(gen, &stubContext{}, nil, nil, nil, zap.NewNop())

	got, err := svc.Analyze(context.Background(), testInput())
	if err != nil {
		t.Fatal(err)
	}

	want := []entities.ModelUsage{
		{Task: "quick_summary", ModelDisplayName: "Gemini 2.0 Flash"},
		{Task: "sentiment_analysis", ModelDisplayName: "GPT-4o Mini"},
		{Task: "customer_needs", ModelDisplayName: "GPT-4o Mini"},
		{Task: "call_flow", ModelDisplayName: "Gemini 2.0 Flash"},
		{Task: "recommended_replies", ModelDisplayName: "Claude Sonnet 4"},
	}
	if len(got.ModelsUsed) != len(want) {
		t.Fatalf("models_used = %d entries, want %d", len(got.ModelsUsed), len(want))
	}
	for i := range want {
		if got.ModelsUsed[i] != want[i] {
			t.Errorf("models_used[%d] = %+v, want %+v", i, got.ModelsUsed[i], want[i])
		}
	}
}

// The replies prompt must carry the sentiment-derived customer state, the
// needs output and the script context.
func TestAnalyzeRepliesPromptReceivesDependencies(t *testing.T) {
	gen := &stubGenerator{results: happyResults()}
	svc := NewService(gen, &stubContext{context: "업종 스크립트: 보험 안내 지침"}, nil, nil, nil, zap.NewNop())

	if _, err := svc.Analyze(context.Background(), testInput()); err != nil {
		t.Fatal(err)
	}

	prompt := gen.prompts[llm.TaskRecommendedReplies]
	for _, fragment := range []string{
		string(entities.CustomerStateConsidering),
		"요금제 변경",
		"현재 요금이 비쌈",
		"업종 스크립트: 보험 안내 지침",
	} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("replies prompt missing %q", fragment)
		}
	}
}

func TestAnalyzeDefaultsWhenRepliesSparse(t *testing.T) {
	results := happyResults()
	results[llm.TaskRecommendedReplies] = &llm.JSONResult{
		Result: llm.Result{DisplayName: "Claude Sonnet 4"},
		Parsed: map[string]interface{}{},
	}
	gen := &stubGenerator{results: results}
	svc := NewService(gen, &stubContext{}, nil, nil, nil, zap.NewNop())

	got, err := svc.Analyze(context.Background(), testInput())
	if err != nil {
		t.Fatal(err)
	}
	if got.NextAction != defaultNextAction {
		t.Errorf("next_action = %q, want default", got.NextAction)
	}
}

func TestAnalyzeSubTaskFailureFailsAnalysis(t *testing.T) {
	gen := &stubGenerator{
		results: happyResults(),
		errs: map[llm.Task]error{
			llm.TaskCustomerNeeds: &llm.DispatchExhaustedError{
				Task:       llm.TaskCustomerNeeds,
				Candidates: []string{"gpt-4o-mini", "claude-haiku", "gemini-flash"},
				LastErr:    errors.New("all down"),
			},
		},
	}
	svc := NewService(gen, &stubContext{}, nil, nil, nil, zap.NewNop())

	_, err := svc.Analyze(context.Background(), testInput())
	if err == nil {
		t.Fatal("expected analysis to fail when a sub-task exhausts its chain")
	}
	var exhausted *llm.DispatchExhaustedError
	if !errors.As(err, &exhausted) {
		t.Errorf("error %v does not wrap DispatchExhaustedError", err)
	}
}

func TestAnalyzeEmptyTranscriptFails(t *testing.T) {
	gen := &stubGenerator{results: happyResults()}
	svc := NewService(gen, &stubContext{}, nil, nil, nil, zap.NewNop())

	if _, err := svc.Analyze(context.Background(), AnalyzeInput{TranscriptID: "t-2", Plan: llm.PlanFree}); err == nil {
		t.Fatal("expected error for transcript with no utterances")
	}
}

func TestAnalyzePassesPlanToEveryTask(t *testing.T) {
	gen := &stubGenerator{results: happyResults()}
	svc := NewService(gen, &stubContext{}, nil, nil, nil, zap.NewNop())

	in := testInput()
	in.Plan = llm.PlanEnterprise
	if _, err := svc.Analyze(context.Background(), in); err != nil {
		t.Fatal(err)
	}
	for task, plan := range gen.plans {
		if plan != llm.PlanEnterprise {
			t.Errorf("task %s dispatched under plan %s, want enterprise", task, plan)
		}
	}
}
