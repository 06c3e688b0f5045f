package promoteur

// CreatePromoteurRequest opens a profile on the starter tier. Plan changes go
// through the admin endpoint.
type CreatePromoteurRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
}

type FinancialProofRequest struct {
	Level FinancialProofLevel `json:"level" binding:"required"`
}

type RestrictionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ComplianceRequest struct {
	Status ComplianceStatus `json:"status" binding:"required"`
}

type PlanRequest struct {
	Plan string `json:"plan" binding:"required"`
}

// OnboardingResponse is the dashboard checklist view.
type OnboardingResponse struct {
	Checklist []ChecklistItem `json:"checklist"`
	Progress  int             `json:"progress"`
	Completed bool            `json:"completed"`
}
