package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"
)

type stubClient struct {
	content string
	err     error
	calls   int
}

func (s *stubClient) Generate(_ context.Context, _ GenerateRequest) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.content, nil
}

func testRegistry() *Registry {
	models := map[string]ModelConfig{
		"alpha": {Provider: ProviderOpenAI, ModelID: "alpha-1", DisplayName: "Alpha", MaxTokens: 1024, Temperature: 0.3, SupportsJSONMode: true},
		"beta":  {Provider: ProviderAnthropic, ModelID: "beta-1", DisplayName: "Beta", MaxTokens: 1024, Temperature: 0.3, SupportsJSONMode: true},
		"gamma": {Provider: ProviderGoogle, ModelID: "gamma-1", DisplayName: "Gamma", MaxTokens: 1024, Temperature: 0.3, SupportsJSONMode: true},
	}
	routes := map[Plan]map[Task]string{
		PlanFree: {TaskQuickSummary: "alpha"},
	}
	fallbacks := map[string][]string{
		"alpha": {"beta", "gamma"},
	}
	return NewRegistry(models, routes, fallbacks)
}

func stubFactory(clients map[string]*stubClient) ClientFactory {
	return func(cfg ModelConfig) (Client, error) {
		c, ok := clients[cfg.ModelID]
		if !ok {
			return nil, fmt.Errorf("no stub for %s", cfg.ModelID)
		}
		return c, nil
	}
}

func TestGeneratePrimaryServes(t *testing.T) {
	clients := map[string]*stubClient{
		"alpha-1": {content: "ok"},
		"beta-1":  {content: "unused"},
	}
	d := NewDispatcher(testRegistry(), stubFactory(clients), zap.NewNop())

	res, err := d.Generate(context.Background(), PlanFree, TaskQuickSummary, GenerateRequest{Prompt: "hi"})
	if err != nil {
		t.Fatal(err)
	}
	if res.ModelKey != "alpha" || res.WasFallback {
		t.Errorf("got model %s (fallback=%v), want alpha without fallback", res.ModelKey, res.WasFallback)
	}
	if clients["beta-1"].calls != 0 {
		t.Errorf("fallback model was called %d times, want 0", clients["beta-1"].calls)
	}
}

func TestGenerateFallsBackInOrder(t *testing.T) {
	clients := map[string]*stubClient{
		"alpha-1": {err: errors.New("rate limited")},
		"beta-1":  {content: "served by beta"},
		"gamma-1": {content: "unused"},
	}
	d := NewDispatcher(testRegistry(), stubFactory(clients), zap.NewNop())

	res, err := d.Generate(context.Background(), PlanFree, TaskQuickSummary, GenerateRequest{Prompt: "hi"})
	if err != nil {
		t.Fatal(err)
	}
	if res.ModelKey != "beta" {
		t.Errorf("got model %s, want beta", res.ModelKey)
	}
	if !res.WasFallback {
		t.Error("result not tagged as fallback")
	}
	if res.DisplayName != "Beta" {
		t.Errorf("display name %s, want Beta", res.DisplayName)
	}
	if clients["gamma-1"].calls != 0 {
		t.Errorf("second fallback was called %d times, want 0", clients["gamma-1"].calls)
	}
}

func TestGenerateExhaustsChain(t *testing.T) {
	clients := map[string]*stubClient{
		"alpha-1": {err: errors.New("down")},
		"beta-1":  {err: errors.New("down")},
		"gamma-1": {err: errors.New("last failure")},
	}
	d := NewDispatcher(testRegistry(), stubFactory(clients), zap.NewNop())

	_, err := d.Generate(context.Background(), PlanFree, TaskQuickSummary, GenerateRequest{Prompt: "hi"})
	var exhausted *DispatchExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("got %v, want DispatchExhaustedError", err)
	}
	if len(exhausted.Candidates) != 3 {
		t.Errorf("candidates = %v, want 3 entries", exhausted.Candidates)
	}
	if exhausted.LastErr == nil || exhausted.LastErr.Error() != "last failure" {
		t.Errorf("last error = %v, want the final model's error", exhausted.LastErr)
	}
}

func TestGenerateJSONParsesResponse(t *testing.T) {
	clients := map[string]*stubClient{
		"alpha-1": {content: `분석: {"overview": "상담 요약"} 끝`},
	}
	d := NewDispatcher(testRegistry(), stubFactory(clients), zap.NewNop())

	res, err := d.GenerateJSON(context.Background(), PlanFree, TaskQuickSummary, "", "분석해줘")
	if err != nil {
		t.Fatal(err)
	}
	if res.Parsed["overview"] != "상담 요약" {
		t.Errorf("parsed = %v", res.Parsed)
	}
}

// A response that cannot be parsed as JSON counts as a model failure and the
// chain advances.
func TestGenerateJSONParseFailureAdvancesChain(t *testing.T) {
	clients := map[string]*stubClient{
		"alpha-1": {content: "죄송합니다, JSON이 아닙니다."},
		"beta-1":  {content: `{"overview": "ok"}`},
	}
	d := NewDispatcher(testRegistry(), stubFactory(clients), zap.NewNop())

	res, err := d.GenerateJSON(context.Background(), PlanFree, TaskQuickSummary, "", "분석해줘")
	if err != nil {
		t.Fatal(err)
	}
	if res.ModelKey != "beta" || !res.WasFallback {
		t.Errorf("got model %s (fallback=%v), want beta via fallback", res.ModelKey, res.WasFallback)
	}
}

func TestGenerateJSONExhaustionCarriesParseError(t *testing.T) {
	clients := map[string]*stubClient{
		"alpha-1": {content: "not json"},
		"beta-1":  {content: "also not json"},
		"gamma-1": {content: "still not json"},
	}
	d := NewDispatcher(testRegistry(), stubFactory(clients), zap.NewNop())

	_, err := d.GenerateJSON(context.Background(), PlanFree, TaskQuickSummary, "", "분석해줘")
	var exhausted *DispatchExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("got %v, want DispatchExhaustedError", err)
	}
	var parseErr *JSONParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("last error %v, want JSONParseError", exhausted.LastErr)
	}
	if parseErr.ModelKey != "gamma" {
		t.Errorf("parse error from %s, want gamma", parseErr.ModelKey)
	}
}

func TestGenerateUnknownFallbackKeyAborts(t *testing.T) {
	registry := NewRegistry(
		map[string]ModelConfig{
			"alpha": {Provider: ProviderOpenAI, ModelID: "alpha-1", DisplayName: "Alpha", SupportsJSONMode: true},
		},
		map[Plan]map[Task]string{PlanFree: {TaskQuickSummary: "alpha"}},
		map[string][]string{"alpha": {"ghost"}},
	)
	clients := map[string]*stubClient{
		"alpha-1": {err: errors.New("down")},
	}
	d := NewDispatcher(registry, stubFactory(clients), zap.NewNop())

	_, err := d.Generate(context.Background(), PlanFree, TaskQuickSummary, GenerateRequest{Prompt: "hi"})
	var unknown *UnknownModelError
	if !errors.As(err, &unknown) {
		t.Fatalf("got %v, want UnknownModelError", err)
	}
	if unknown.Key != "ghost" {
		t.Errorf("unknown key = %s, want ghost", unknown.Key)
	}
}

func TestDispatcherCachesClients(t *testing.T) {
	built := 0
	factory := func(cfg ModelConfig) (Client, error) {
		built++
		return &stubClient{content: "ok"}, nil
	}
	d := NewDispatcher(testRegistry(), factory, zap.NewNop())

	for i := 0; i < 3; i++ {
		if _, err := d.Generate(context.Background(), PlanFree, TaskQuickSummary, GenerateRequest{Prompt: "hi"}); err != nil {
			t.Fatal(err)
		}
	}
	if built != 1 {
		t.Errorf("factory built %d clients, want 1", built)
	}
}
