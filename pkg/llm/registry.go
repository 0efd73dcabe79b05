package llm

// Registry holds the model catalog, the plan x task routing table and the
// per-model fallback chains. It is built once at startup and read-only after
// that, so concurrent lookups need no locking.
type Registry struct {
	models    map[string]ModelConfig
	routes    map[Plan]map[Task]string
	fallbacks map[string][]string
}

// NewRegistry builds a registry from explicit tables. Tests use this to
// inject small catalogs.
func NewRegistry(models map[string]ModelConfig, routes map[Plan]map[Task]string, fallbacks map[string][]string) *Registry {
	return &Registry{
		models:    models,
		routes:    routes,
		fallbacks: fallbacks,
	}
}

// DefaultRegistry builds the registry from the built-in tables.
func DefaultRegistry() *Registry {
	return NewRegistry(DefaultModels(), DefaultRouting(), DefaultFallbacks())
}

// Model returns the catalog entry for a model key.
func (r *Registry) Model(key string) (ModelConfig, error) {
	cfg, ok := r.models[key]
	if !ok {
		return ModelConfig{}, &UnknownModelError{Key: key}
	}
	return cfg, nil
}

// Resolve maps a plan and task to a model key. It never fails: an unknown
// plan falls back to the free tier and an unknown task to the cheapest model,
// so new plans or tasks degrade to cheap service instead of erroring.
func (r *Registry) Resolve(plan Plan, task Task) string {
	routes, ok := r.routes[plan]
	if !ok {
		routes = r.routes[PlanFree]
	}
	if key, ok := routes[task]; ok {
		return key
	}
	return defaultModelKey
}

// Fallbacks returns the ordered fallback chain for a model key, excluding the
// key itself. Unknown keys have an empty chain.
func (r *Registry) Fallbacks(key string) []string {
	return r.fallbacks[key]
}

// Candidates returns the full dispatch order for a plan and task: the routed
// model first, then its fallbacks.
func (r *Registry) Candidates(plan Plan, task Task) []string {
	primary := r.Resolve(plan, task)
	chain := r.Fallbacks(primary)
	out := make([]string, 0, 1+len(chain))
	out = append(out, primary)
	out = append(out, chain...)
	return out
}

// EstimateCost returns the USD cost of a call given token counts.
func (r *Registry) EstimateCost(key string, inputTokens, outputTokens int) (float64, error) {
	cfg, err := r.Model(key)
	if err != nil {
		return 0, err
	}
	cost := float64(inputTokens)/1_000_000*cfg.InputCostPer1M +
		float64(outputTokens)/1_000_000*cfg.OutputCostPer1M
	return cost, nil
}
