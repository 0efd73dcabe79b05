package company

// CreateCompanyRequest registers a new tenant
type CreateCompanyRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Industry string `json:"industry" validate:"omitempty,max=100"`
	Plan     string `json:"plan" validate:"omitempty,plan"`
}

// UploadScriptRequest uploads sales script content for a company
type UploadScriptRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	ScriptType  string `json:"script_type" validate:"omitempty,max=50"`
	Content     string `json:"content" validate:"required,min=1"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}
