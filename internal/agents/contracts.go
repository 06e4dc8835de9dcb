package agents

import (
	"context"

	"github.com/damiloju/startup-analyst/internal/entity"
)

// AnalysisRequest carries the company context sent to the qualitative
// analysis service.
type AnalysisRequest struct {
	CompanyName string                         `json:"company_name"`
	Industry    string                         `json:"industry,omitempty"`
	Description string                         `json:"description,omitempty"`
	Financials  *entity.ExtractedFinancialData `json:"financials,omitempty"`
}

// Collaborator is the interface the pipeline depends on. The response is an
// opaque JSON object: its keys are attached to the analysis result as
// metadata and never interpreted or merged into the feature vector.
type Collaborator interface {
	Analyze(ctx context.Context, req AnalysisRequest) (map[string]any, error)
}
