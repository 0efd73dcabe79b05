package entities

import (
	"time"

	"github.com/google/uuid"
)

// Company is a tenant whose calls are analyzed under its billing plan
type Company struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Industry  string    `json:"industry" gorm:"type:varchar(100)"`
	Plan      string    `json:"plan" gorm:"type:varchar(20);not null;default:'free'"`
	Scripts   []Script  `json:"scripts,omitempty" gorm:"foreignKey:CompanyID"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Company) TableName() string {
	return "companies"
}

// NewCompany creates a new company
func NewCompany(name, industry, plan string) *Company {
	if plan == "" {
		plan = "free"
	}
	return &Company{
		ID:        uuid.New(),
		Name:      name,
		Industry:  industry,
		Plan:      plan,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// Script is sales/support script content uploaded by a company. Its content
// is spliced into the recommended-replies prompt.
type Script struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CompanyID   uuid.UUID `json:"company_id" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	ScriptType  string    `json:"script_type,omitempty" gorm:"type:varchar(50)"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	ObjectKey   string    `json:"object_key,omitempty" gorm:"type:varchar(512)"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Script) TableName() string {
	return "scripts"
}

// NewScript creates a new company script
func NewScript(companyID uuid.UUID, name, scriptType, content string) *Script {
	return &Script{
		ID:         uuid.New(),
		CompanyID:  companyID,
		Name:       name,
		ScriptType: scriptType,
		Content:    content,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}
