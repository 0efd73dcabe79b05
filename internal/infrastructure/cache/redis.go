package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/callsight-ai/callsight/internal/domain/entities"
	"github.com/callsight-ai/callsight/pkg/config"
)

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

const analysisKeyPrefix = "analysis:comprehensive:"

// AnalysisCache caches immutable comprehensive analyses in Redis keyed by
// transcript ID. Cache problems are logged and absorbed; the database copy
// is the source of truth.
type AnalysisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewAnalysisCache creates an analysis result cache.
func NewAnalysisCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *AnalysisCache {
	return &AnalysisCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the cached analysis for a transcript, if present.
func (c *AnalysisCache) Get(ctx context.Context, transcriptID string) (*entities.ComprehensiveAnalysis, bool) {
	raw, err := c.client.Get(ctx, analysisKeyPrefix+transcriptID).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("analysis cache read failed",
				zap.String("transcript_id", transcriptID),
				zap.Error(err))
		}
		return nil, false
	}

	var analysis entities.ComprehensiveAnalysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		c.logger.Warn("analysis cache entry corrupt, dropping",
			zap.String("transcript_id", transcriptID),
			zap.Error(err))
		c.client.Del(ctx, analysisKeyPrefix+transcriptID)
		return nil, false
	}
	return &analysis, true
}

// Set caches an analysis under its transcript ID.
func (c *AnalysisCache) Set(ctx context.Context, analysis *entities.ComprehensiveAnalysis) {
	raw, err := json.Marshal(analysis)
	if err != nil {
		c.logger.Warn("failed to encode analysis for cache",
			zap.String("transcript_id", analysis.TranscriptID),
			zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, analysisKeyPrefix+analysis.TranscriptID, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("analysis cache write failed",
			zap.String("transcript_id", analysis.TranscriptID),
			zap.Error(err))
	}
}
