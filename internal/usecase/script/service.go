package script

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/callsight-ai/callsight/internal/domain/repositories"
)

// Service resolves the script context for the replies prompt. Precedence:
// company-uploaded scripts, then the company's industry template, then the
// request's industry template, then the general template.
type Service struct {
	companies repositories.CompanyRepository
	scripts   repositories.ScriptRepository
	industry  *IndustryScripts
	logger    *zap.Logger
}

// NewService creates the script context service.
func NewService(
	companies repositories.CompanyRepository,
	scripts repositories.ScriptRepository,
	industry *IndustryScripts,
	logger *zap.Logger,
) *Service {
	return &Service{
		companies: companies,
		scripts:   scripts,
		industry:  industry,
		logger:    logger,
	}
}

// GetContext resolves the script context for an analysis request. It never
// fails: any lookup problem degrades down the precedence chain and worst
// case returns an empty context.
func (s *Service) GetContext(ctx context.Context, companyID, industry string) string {
	if companyID != "" {
		if resolved, companyIndustry := s.companyContext(ctx, companyID); resolved != "" {
			return resolved
		} else if companyIndustry != "" {
			industry = companyIndustry
		}
	}
	return s.industry.Context(industry)
}

// companyContext returns the company's uploaded script block, or its industry
// for template fallback.
func (s *Service) companyContext(ctx context.Context, companyID string) (string, string) {
	id, err := uuid.Parse(companyID)
	if err != nil {
		s.logger.Warn("invalid company id in analysis request", zap.String("company_id", companyID))
		return "", ""
	}

	company, err := s.companies.GetByID(ctx, id)
	if err != nil || company == nil {
		if err != nil {
			s.logger.Warn("failed to load company for script context",
				zap.String("company_id", companyID),
				zap.Error(err))
		}
		return "", ""
	}

	scripts, err := s.scripts.ListByCompany(ctx, id)
	if err != nil {
		s.logger.Warn("failed to load company scripts",
			zap.String("company_id", companyID),
			zap.Error(err))
		return "", company.Industry
	}
	if len(scripts) == 0 {
		return "", company.Industry
	}

	var b strings.Builder
	b.WriteString("## 회사 영업 스크립트\n")
	for _, sc := range scripts {
		b.WriteString("\n### ")
		b.WriteString(sc.Name)
		b.WriteString("\n")
		b.WriteString(sc.Content)
		b.WriteString("\n")
	}
	return b.String(), company.Industry
}
