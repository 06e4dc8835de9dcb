package entity

import "time"

// AnalysisInput is the caller-supplied request for one analysis run.
// CompanyName is the only required field.
type AnalysisInput struct {
	CompanyName string `json:"company_name"`
	Industry    string `json:"industry,omitempty"`
	Description string `json:"description,omitempty"`

	PDFPath string `json:"pdf_path,omitempty"`

	// ManualData is an open numeric map; keys follow the feature schema
	// (aliases accepted). Manual values win over extracted ones.
	ManualData map[string]float64 `json:"manual_data,omitempty"`

	UsePDFExtraction bool `json:"use_pdf_extraction"`
	UseAIAgents      bool `json:"use_ai_agents"`
	UseMLPrediction  bool `json:"use_ml_prediction"`
}

// AnalysisResult bundles the prediction with extraction output, agent
// metadata, and provenance. This is the externally visible shape.
type AnalysisResult struct {
	AnalysisID  string    `json:"analysis_id"`
	CompanyName string    `json:"company_name"`
	Timestamp   time.Time `json:"timestamp"`

	Prediction PredictionResult        `json:"ml_prediction"`
	PDFData    *ExtractedFinancialData `json:"pdf_data,omitempty"`

	// AgentAnalysis is stored verbatim from the qualitative collaborator.
	// It never feeds the numeric feature set.
	AgentAnalysis map[string]any `json:"agent_analysis,omitempty"`

	ProcessingTimeSeconds float64  `json:"processing_time_seconds"`
	PipelineVersion       string   `json:"pipeline_version"`
	ComponentsUsed        []string `json:"components_used"`

	OverallConfidence float64 `json:"overall_confidence"`
	DataCompleteness  float64 `json:"data_completeness"`
}
