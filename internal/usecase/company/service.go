package company

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/callsight-ai/callsight/internal/domain/entities"
	"github.com/callsight-ai/callsight/internal/domain/repositories"
)

// ErrNotFound is returned when no company exists for the requested ID.
var ErrNotFound = errors.New("company not found")

// ObjectStore archives uploaded script content.
type ObjectStore interface {
	UploadText(ctx context.Context, objectName, content string) error
}

// Service manages companies and their uploaded scripts.
type Service struct {
	companies repositories.CompanyRepository
	scripts   repositories.ScriptRepository
	store     ObjectStore
	logger    *zap.Logger
}

// NewService creates the company service.
func NewService(
	companies repositories.CompanyRepository,
	scripts repositories.ScriptRepository,
	store ObjectStore,
	logger *zap.Logger,
) *Service {
	return &Service{
		companies: companies,
		scripts:   scripts,
		store:     store,
		logger:    logger,
	}
}

// Register creates a new company.
func (s *Service) Register(ctx context.Context, name, industry, plan string) (*entities.Company, error) {
	company := entities.NewCompany(name, industry, plan)
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, err
	}
	s.logger.Info("company registered",
		zap.String("company_id", company.ID.String()),
		zap.String("industry", company.Industry),
		zap.String("plan", company.Plan))
	return company, nil
}

// Get returns a company by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*entities.Company, error) {
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrNotFound
	}
	return company, nil
}

// List returns a page of companies, newest first.
func (s *Service) List(ctx context.Context, page, pageSize int) ([]entities.Company, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.companies.List(ctx, pageSize, (page-1)*pageSize)
}

// AddScript stores script content for a company and archives a copy in
// object storage. The archive copy is best effort; the database row is the
// source of truth for prompts.
func (s *Service) AddScript(ctx context.Context, companyID uuid.UUID, name, scriptType, content, description string) (*entities.Script, error) {
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrNotFound
	}

	script := entities.NewScript(companyID, name, scriptType, content)
	script.Description = description

	objectKey := fmt.Sprintf("scripts/%s/%s.md", companyID, script.ID)
	if err := s.store.UploadText(ctx, objectKey, content); err != nil {
		s.logger.Warn("failed to archive script to object storage",
			zap.String("company_id", companyID.String()),
			zap.String("object_key", objectKey),
			zap.Error(err))
	} else {
		script.ObjectKey = objectKey
	}

	if err := s.scripts.Create(ctx, script); err != nil {
		return nil, err
	}
	return script, nil
}

// ListScripts returns all scripts for a company.
func (s *Service) ListScripts(ctx context.Context, companyID uuid.UUID) ([]entities.Script, error) {
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrNotFound
	}
	return s.scripts.ListByCompany(ctx, companyID)
}
