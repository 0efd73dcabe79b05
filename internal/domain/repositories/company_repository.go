package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/callsight-ai/callsight/internal/domain/entities"
)

// CompanyRepository defines persistence operations for companies and their
// scripts
type CompanyRepository interface {
	Create(ctx context.Context, company *entities.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Company, error)
	List(ctx context.Context, limit, offset int) ([]entities.Company, error)
}

// ScriptRepository defines persistence operations for company scripts
type ScriptRepository interface {
	Create(ctx context.Context, script *entities.Script) error
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]entities.Script, error)
}
