package llm

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// Result is the outcome of a dispatched generation.
type Result struct {
	Content     string
	ModelKey    string
	DisplayName string
	Provider    Provider
	WasFallback bool
}

// JSONResult is a dispatched generation whose content parsed as a JSON object.
type JSONResult struct {
	Result
	Parsed map[string]interface{}
}

// Dispatcher routes generation requests through the registry and walks the
// fallback chain on failure. Clients are built lazily and cached per model
// key.
type Dispatcher struct {
	registry *Registry
	factory  ClientFactory
	logger   *zap.Logger

	mu      sync.Mutex
	clients map[string]Client
}

// NewDispatcher creates a dispatcher over a registry and client factory.
func NewDispatcher(registry *Registry, factory ClientFactory, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
		logger:   logger,
		clients:  make(map[string]Client),
	}
}

// Registry exposes the routing tables for callers that need to inspect them.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

func (d *Dispatcher) client(key string, cfg ModelConfig) (Client, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if c, ok := d.clients[key]; ok {
		return c, nil
	}
	c, err := d.factory(cfg)
	if err != nil {
		return nil, err
	}
	d.clients[key] = c
	return c, nil
}

// attempt runs one generation against one model key.
func (d *Dispatcher) attempt(ctx context.Context, key string, req GenerateRequest) (string, ModelConfig, error) {
	cfg, err := d.registry.Model(key)
	if err != nil {
		return "", ModelConfig{}, err
	}

	// Token and temperature limits come from the catalog, not the caller.
	req.MaxTokens = cfg.MaxTokens
	req.Temperature = cfg.Temperature
	req.JSONMode = req.JSONMode && cfg.SupportsJSONMode

	client, err := d.client(key, cfg)
	if err != nil {
		return "", cfg, err
	}

	content, err := client.Generate(ctx, req)
	return content, cfg, err
}

// Generate resolves the model for plan and task and walks the fallback chain
// until one model serves the request. An unknown model key in the chain is a
// configuration bug and aborts immediately; every other failure advances to
// the next candidate.
func (d *Dispatcher) Generate(ctx context.Context, plan Plan, task Task, req GenerateRequest) (*Result, error) {
	candidates := d.registry.Candidates(plan, task)
	primary := candidates[0]

	var lastErr error
	for _, key := range candidates {
		content, cfg, err := d.attempt(ctx, key, req)
		if err != nil {
			var unknown *UnknownModelError
			if errors.As(err, &unknown) {
				return nil, err
			}
			lastErr = err
			d.logger.Warn("model call failed, trying next candidate",
				zap.String("task", string(task)),
				zap.String("model", key),
				zap.Error(err))
			continue
		}

		if key != primary {
			d.logger.Info("request served by fallback model",
				zap.String("task", string(task)),
				zap.String("primary", primary),
				zap.String("model", key))
		}
		return &Result{
			Content:     content,
			ModelKey:    key,
			DisplayName: cfg.DisplayName,
			Provider:    cfg.Provider,
			WasFallback: key != primary,
		}, nil
	}

	return nil, &DispatchExhaustedError{Task: task, Candidates: candidates, LastErr: lastErr}
}

// GenerateJSON is Generate with JSON mode on and a parsed object in the
// result. A response that fails both the direct parse and the brace-span
// recovery counts as a model failure and advances the chain.
func (d *Dispatcher) GenerateJSON(ctx context.Context, plan Plan, task Task, systemPrompt, prompt string) (*JSONResult, error) {
	candidates := d.registry.Candidates(plan, task)
	primary := candidates[0]
	req := GenerateRequest{
		SystemPrompt: systemPrompt,
		Prompt:       prompt,
		JSONMode:     true,
	}

	var lastErr error
	for _, key := range candidates {
		content, cfg, err := d.attempt(ctx, key, req)
		if err != nil {
			var unknown *UnknownModelError
			if errors.As(err, &unknown) {
				return nil, err
			}
			lastErr = err
			d.logger.Warn("model call failed, trying next candidate",
				zap.String("task", string(task)),
				zap.String("model", key),
				zap.Error(err))
			continue
		}

		parsed, err := ParseJSONObject(content)
		if err != nil {
			lastErr = &JSONParseError{ModelKey: key, Raw: content, Err: err}
			d.logger.Warn("model returned unparseable JSON, trying next candidate",
				zap.String("task", string(task)),
				zap.String("model", key),
				zap.Error(err))
			continue
		}

		if key != primary {
			d.logger.Info("request served by fallback model",
				zap.String("task", string(task)),
				zap.String("primary", primary),
				zap.String("model", key))
		}
		return &JSONResult{
			Result: Result{
				Content:     content,
				ModelKey:    key,
				DisplayName: cfg.DisplayName,
				Provider:    cfg.Provider,
				WasFallback: key != primary,
			},
			Parsed: parsed,
		}, nil
	}

	return nil, &DispatchExhaustedError{Task: task, Candidates: candidates, LastErr: lastErr}
}
