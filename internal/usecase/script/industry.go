package script

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/callsight-ai/callsight/internal/infrastructure/cache"
)

// industryFiles maps an industry code to its template file. Industries
// without a dedicated template share the general one.
var industryFiles = map[string]string{
	"insurance":   "insurance.md",
	"real_estate": "real_estate.md",
	"b2b":         "b2b.md",
	"telecom":     "telecom.md",
	"finance":     "finance.md",
	"healthcare":  "general.md",
	"retail":      "general.md",
	"other":       "general.md",
}

const generalScriptFile = "general.md"

// IndustryScripts loads per-industry sales script templates from disk, with
// a small TTL cache so edits show up without a restart.
type IndustryScripts struct {
	baseDir string
	cache   *cache.MemoryStore
	ttl     time.Duration
	logger  *zap.Logger
}

// NewIndustryScripts creates an industry template loader.
func NewIndustryScripts(baseDir string, ttl time.Duration, logger *zap.Logger) *IndustryScripts {
	return &IndustryScripts{
		baseDir: baseDir,
		cache:   cache.NewMemoryStore(),
		ttl:     ttl,
		logger:  logger,
	}
}

// Context returns the script context block for an industry. Unknown or empty
// industries fall back to the general template; a missing template directory
// degrades to an empty context rather than an error.
func (s *IndustryScripts) Context(industry string) string {
	if industry == "" {
		industry = "other"
	}

	content := s.load(industry)
	if content == "" {
		return ""
	}
	return fmt.Sprintf("## 업종별 영업 스크립트 참고 정보\n업종: %s\n\n%s", industry, content)
}

func (s *IndustryScripts) load(industry string) string {
	filename, ok := industryFiles[industry]
	if !ok {
		filename = generalScriptFile
	}

	if cached, ok := s.cache.Get(filename); ok {
		return cached
	}

	content, err := os.ReadFile(filepath.Join(s.baseDir, filename))
	if err != nil && filename != generalScriptFile {
		// Dedicated template missing: fall back to the general one.
		filename = generalScriptFile
		content, err = os.ReadFile(filepath.Join(s.baseDir, filename))
	}
	if err != nil {
		s.logger.Warn("industry script template not found",
			zap.String("industry", industry),
			zap.String("dir", s.baseDir),
			zap.Error(err))
		return ""
	}

	s.cache.Set(filename, string(content), s.ttl)
	return string(content)
}
