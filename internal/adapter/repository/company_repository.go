package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/callsight-ai/callsight/internal/domain/entities"
)

// CompanyRepository handles company data operations
type CompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Create persists a new company
func (r *CompanyRepository) Create(ctx context.Context, company *entities.Company) error {
	if company == nil {
		return errors.New("company cannot be nil")
	}
	return r.db.WithContext(ctx).Create(company).Error
}

// GetByID retrieves a company by ID
func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Company, error) {
	var company entities.Company
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

// List retrieves companies with pagination
func (r *CompanyRepository) List(ctx context.Context, limit, offset int) ([]entities.Company, error) {
	var companies []entities.Company
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&companies).Error
	return companies, err
}

// ScriptRepository handles company script data operations
type ScriptRepository struct {
	db *gorm.DB
}

// NewScriptRepository creates a new script repository
func NewScriptRepository(db *gorm.DB) *ScriptRepository {
	return &ScriptRepository{db: db}
}

// Create persists a new script
func (r *ScriptRepository) Create(ctx context.Context, script *entities.Script) error {
	if script == nil {
		return errors.New("script cannot be nil")
	}
	return r.db.WithContext(ctx).Create(script).Error
}

// ListByCompany retrieves all scripts for a company, oldest first
func (r *ScriptRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]entities.Script, error) {
	var scripts []entities.Script
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at ASC").
		Find(&scripts).Error
	return scripts, err
}
