package llm

// Provider identifies which wire protocol a model speaks.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGoogle    Provider = "google"
)

// Plan is a billing plan that selects a cost tier for routing.
type Plan string

const (
	PlanFree       Plan = "free"
	PlanBasic      Plan = "basic"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

// Task is an analysis sub-task with its own routing entry per plan.
type Task string

const (
	TaskQuickSummary       Task = "quick_summary"
	TaskSentimentAnalysis  Task = "sentiment_analysis"
	TaskCustomerNeeds      Task = "customer_needs"
	TaskCallFlow           Task = "call_flow"
	TaskRecommendedReplies Task = "recommended_replies"
	TaskComprehensive      Task = "comprehensive"
)

// ModelConfig describes one entry in the model catalog.
type ModelConfig struct {
	Provider         Provider
	ModelID          string
	DisplayName      string
	InputCostPer1M   float64
	OutputCostPer1M  float64
	MaxTokens        int
	Temperature      float64
	SupportsJSONMode bool
}

// defaultModelKey absorbs unknown tasks so routing never fails.
const defaultModelKey = "gemini-flash"

// DefaultModels returns the model catalog keyed by internal model key.
func DefaultModels() map[string]ModelConfig {
	return map[string]ModelConfig{
		"gemini-flash": {
			Provider:         ProviderGoogle,
			ModelID:          "gemini-2.0-flash",
			DisplayName:      "Gemini 2.0 Flash",
			InputCostPer1M:   0.15,
			OutputCostPer1M:  0.60,
			MaxTokens:        8192,
			Temperature:      0.3,
			SupportsJSONMode: true,
		},
		"gemini-pro": {
			Provider:         ProviderGoogle,
			ModelID:          "gemini-2.5-pro",
			DisplayName:      "Gemini 2.5 Pro",
			InputCostPer1M:   1.25,
			OutputCostPer1M:  10.00,
			MaxTokens:        8192,
			Temperature:      0.3,
			SupportsJSONMode: true,
		},
		"gpt-4o-mini": {
			Provider:         ProviderOpenAI,
			ModelID:          "gpt-4o-mini",
			DisplayName:      "GPT-4o Mini",
			InputCostPer1M:   0.15,
			OutputCostPer1M:  0.60,
			MaxTokens:        4096,
			Temperature:      0.3,
			SupportsJSONMode: true,
		},
		"gpt-4o": {
			Provider:         ProviderOpenAI,
			ModelID:          "gpt-4o",
			DisplayName:      "GPT-4o",
			InputCostPer1M:   5.00,
			OutputCostPer1M:  15.00,
			MaxTokens:        4096,
			Temperature:      0.3,
			SupportsJSONMode: true,
		},
		"claude-haiku": {
			Provider:         ProviderAnthropic,
			ModelID:          "claude-3-5-haiku-latest",
			DisplayName:      "Claude 3.5 Haiku",
			InputCostPer1M:   1.00,
			OutputCostPer1M:  5.00,
			MaxTokens:        4096,
			Temperature:      0.3,
			SupportsJSONMode: true,
		},
		"claude-sonnet": {
			Provider:         ProviderAnthropic,
			ModelID:          "claude-sonnet-4-20250514",
			DisplayName:      "Claude Sonnet 4",
			InputCostPer1M:   3.00,
			OutputCostPer1M:  15.00,
			MaxTokens:        4096,
			Temperature:      0.3,
			SupportsJSONMode: true,
		},
	}
}

// DefaultRouting returns the plan x task routing table. Recommended replies
// are the one customer-visible output, so even the cheap plans route them to
// a premium-quality model.
func DefaultRouting() map[Plan]map[Task]string {
	return map[Plan]map[Task]string{
		PlanFree: {
			TaskQuickSummary:       "gemini-flash",
			TaskSentimentAnalysis:  "gemini-flash",
			TaskCustomerNeeds:      "gemini-flash",
			TaskCallFlow:           "gemini-flash",
			TaskRecommendedReplies: "claude-haiku",
			TaskComprehensive:      "gemini-flash",
		},
		PlanBasic: {
			TaskQuickSummary:       "gemini-flash",
			TaskSentimentAnalysis:  "gemini-flash",
			TaskCustomerNeeds:      "gpt-4o-mini",
			TaskCallFlow:           "gemini-flash",
			TaskRecommendedReplies: "claude-haiku",
			TaskComprehensive:      "gpt-4o-mini",
		},
		PlanPro: {
			TaskQuickSummary:       "gemini-flash",
			TaskSentimentAnalysis:  "gpt-4o-mini",
			TaskCustomerNeeds:      "gpt-4o-mini",
			TaskCallFlow:           "gpt-4o-mini",
			TaskRecommendedReplies: "claude-sonnet",
			TaskComprehensive:      "claude-haiku",
		},
		PlanEnterprise: {
			TaskQuickSummary:       "gpt-4o-mini",
			TaskSentimentAnalysis:  "claude-haiku",
			TaskCustomerNeeds:      "claude-haiku",
			TaskCallFlow:           "claude-haiku",
			TaskRecommendedReplies: "claude-sonnet",
			TaskComprehensive:      "claude-sonnet",
		},
	}
}

// DefaultFallbacks returns the ordered fallback chain per model key. Trying
// the next model in the chain is the retry strategy; the same model is never
// retried.
func DefaultFallbacks() map[string][]string {
	return map[string][]string{
		"claude-sonnet": {"gpt-4o", "gemini-pro"},
		"claude-haiku":  {"gpt-4o-mini", "gemini-pro"},
		"gpt-4o":        {"claude-sonnet", "gemini-pro"},
		"gpt-4o-mini":   {"claude-haiku", "gemini-flash"},
		"gemini-pro":    {"gpt-4o-mini", "claude-haiku"},
		"gemini-flash":  {"gpt-4o-mini"},
	}
}
