package analysis

// AnalyzeRequest runs a comprehensive analysis over a completed transcript
type AnalyzeRequest struct {
	Plan      string `json:"plan" validate:"required,plan"`
	CompanyID string `json:"company_id" validate:"omitempty,uuid"`
	Industry  string `json:"industry" validate:"omitempty,max=100"`
}
