// Package pipeline coordinates the extraction, qualitative analysis, and
// prediction steps of one analysis run. Component failures degrade the
// result instead of aborting it; the only hard error is invalid input.
package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/damiloju/startup-analyst/constants"
	"github.com/damiloju/startup-analyst/internal/agents"
	"github.com/damiloju/startup-analyst/internal/common"
	"github.com/damiloju/startup-analyst/internal/entity"
	"github.com/damiloju/startup-analyst/internal/extract"
	"github.com/damiloju/startup-analyst/internal/features"
	"github.com/damiloju/startup-analyst/internal/ml"
)

const (
	defaultVersion    = "2.0-go"
	maxCompanyNameLen = 200
)

// Capabilities reports which optional components are wired. Probed once at
// construction; a request can switch a component off but never on.
type Capabilities struct {
	PDFExtraction bool `json:"pdf_extraction"`
	AIAgents      bool `json:"ai_agents"`
	MLPrediction  bool `json:"ml_prediction"`
}

// Stats are cumulative orchestrator counters since process start.
type Stats struct {
	TotalAnalyses    int     `json:"total_analyses"`
	AverageSeconds   float64 `json:"average_seconds"`
	ExtractionsRun   int     `json:"extractions_run"`
	AgentRunsOK      int     `json:"agent_runs_ok"`
	PredictionsRun   int     `json:"predictions_run"`
	DegradedVerdicts int     `json:"degraded_verdicts"`
}

// Options wires the orchestrator. Extractor and Agents may be nil; the
// matching capability is then reported as unavailable.
type Options struct {
	Logger         *slog.Logger
	Extractor      extract.DocumentExtractor
	Agents         agents.Collaborator
	Predictor      *ml.Predictor
	ExtractTimeout time.Duration
	Version        string
}

// Orchestrator runs the four-step analysis pipeline. Safe for concurrent
// use; per-request state lives on the stack.
type Orchestrator struct {
	logger    *slog.Logger
	extractor extract.DocumentExtractor
	agents    agents.Collaborator
	predictor *ml.Predictor
	timeout   time.Duration
	version   string
	caps      Capabilities

	mu           sync.Mutex
	totalSeconds float64
	stats        Stats
}

func New(opts Options) *Orchestrator {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ExtractTimeout <= 0 {
		opts.ExtractTimeout = 30 * time.Second
	}
	if opts.Version == "" {
		opts.Version = defaultVersion
	}
	return &Orchestrator{
		logger:    opts.Logger,
		extractor: opts.Extractor,
		agents:    opts.Agents,
		predictor: opts.Predictor,
		timeout:   opts.ExtractTimeout,
		version:   opts.Version,
		caps: Capabilities{
			PDFExtraction: opts.Extractor != nil,
			AIAgents:      opts.Agents != nil,
			MLPrediction:  opts.Predictor != nil,
		},
	}
}

// Capabilities returns the components available to this orchestrator.
func (o *Orchestrator) Capabilities() Capabilities { return o.caps }

// Statistics returns a snapshot of the cumulative run counters.
func (o *Orchestrator) Statistics() Stats {
	o.mu.Lock()
	defer o.mu.Unlock()
	s := o.stats
	if s.TotalAnalyses > 0 {
		s.AverageSeconds = o.totalSeconds / float64(s.TotalAnalyses)
	}
	return s
}

// Analyze runs one end-to-end analysis. Extraction and agent failures are
// logged and absorbed; a prediction failure yields the degraded verdict.
func (o *Orchestrator) Analyze(ctx context.Context, input entity.AnalysisInput) (*entity.AnalysisResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	start := time.Now()
	res := &entity.AnalysisResult{
		AnalysisID:      uuid.New().String(),
		CompanyName:     input.CompanyName,
		Timestamp:       start.UTC(),
		PipelineVersion: o.version,
		ComponentsUsed:  []string{},
	}
	ctx = common.WithAnalysisID(ctx, res.AnalysisID)

	extractionOK := o.runExtraction(ctx, input, res)
	o.runAgents(ctx, input, res)

	vector, dropped := features.Synthesize(input.ManualData, features.FromExtraction(res.PDFData))
	if len(dropped) > 0 {
		o.logger.Warn("pipeline.features.dropped_keys",
			"analysis_id", res.AnalysisID, "keys", dropped)
	}

	degraded := o.runPrediction(ctx, input, vector, res)

	res.OverallConfidence = overallConfidence(res, extractionOK)
	res.DataCompleteness = 0.5
	if extractionOK {
		res.DataCompleteness = res.PDFData.CompletenessScore
	}
	res.ProcessingTimeSeconds = time.Since(start).Seconds()

	o.record(res, extractionOK, degraded)
	o.logger.Info("pipeline.analyze.ok",
		"analysis_id", res.AnalysisID,
		"company", res.CompanyName,
		"components", res.ComponentsUsed,
		"probability", res.Prediction.SuccessProbability,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

// validateInput enforces the request contract: a non-empty, bounded company
// name and finite manual values. A NaN or infinite manual value would
// otherwise flow into the feature vector and poison every downstream score.
func validateInput(input entity.AnalysisInput) error {
	nameLen := func(field string, value interface{}) *common.ValidationError {
		return common.MaxLength(field, value, maxCompanyNameLen)
	}
	v := common.NewValidator()
	v.Field("company_name", input.CompanyName, common.Required, nameLen)
	for key, val := range input.ManualData {
		v.Field("manual_data."+key, val, common.Finite)
	}
	if v.HasErrors() {
		return common.NewAppError("INVALID_INPUT", v.ErrorMessage(), common.ErrInvalidInput)
	}
	return nil
}

// runExtraction fills res.PDFData. Reports true only when extraction ran
// and produced usable data; a failed run leaves an empty default so the
// result shape stays stable.
func (o *Orchestrator) runExtraction(ctx context.Context, input entity.AnalysisInput, res *entity.AnalysisResult) bool {
	if !input.UsePDFExtraction || !o.caps.PDFExtraction || input.PDFPath == "" {
		return false
	}

	ctx, cancel := common.WithTimeout(ctx, o.timeout)
	defer cancel()

	data, err := o.extractor.ExtractFinancialData(ctx, input.PDFPath)
	if err != nil {
		o.logger.Warn("pipeline.extract.failed",
			"analysis_id", res.AnalysisID, "path", input.PDFPath, "err", err)
		res.PDFData = &entity.ExtractedFinancialData{}
		return false
	}
	res.PDFData = data
	res.ComponentsUsed = append(res.ComponentsUsed, constants.ComponentPDFExtraction)
	return true
}

// runAgents attaches qualitative metadata. Failures are absorbed.
func (o *Orchestrator) runAgents(ctx context.Context, input entity.AnalysisInput, res *entity.AnalysisResult) {
	if !input.UseAIAgents || !o.caps.AIAgents {
		return
	}
	out, err := o.agents.Analyze(ctx, agents.AnalysisRequest{
		CompanyName: input.CompanyName,
		Industry:    input.Industry,
		Description: input.Description,
		Financials:  res.PDFData,
	})
	if err != nil {
		o.logger.Warn("pipeline.agents.failed",
			"analysis_id", res.AnalysisID, "err", err)
		return
	}
	res.AgentAnalysis = out
	res.ComponentsUsed = append(res.ComponentsUsed, constants.ComponentAIAgents)
}

// runPrediction fills res.Prediction, reporting whether the degraded
// default was used in place of a real model output.
func (o *Orchestrator) runPrediction(ctx context.Context, input entity.AnalysisInput, vector features.Vector, res *entity.AnalysisResult) bool {
	if !input.UseMLPrediction || !o.caps.MLPrediction {
		res.Prediction = skippedPrediction(o.version)
		return false
	}
	pred, err := o.predictor.Predict(ctx, vector)
	if err != nil {
		o.logger.Error("pipeline.predict.failed",
			"analysis_id", res.AnalysisID, "err", err)
		res.Prediction = degradedPrediction(o.version)
		return true
	}
	res.Prediction = pred
	res.ComponentsUsed = append(res.ComponentsUsed, constants.ComponentMLPrediction)
	return false
}

// overallConfidence averages the model confidence with the extraction
// confidence when extraction contributed data.
func overallConfidence(res *entity.AnalysisResult, extractionOK bool) float64 {
	conf := res.Prediction.ModelConfidence
	if extractionOK {
		conf = (conf + res.PDFData.ExtractionConfidence) / 2
	}
	return conf
}

func (o *Orchestrator) record(res *entity.AnalysisResult, extractionOK, degraded bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stats.TotalAnalyses++
	o.totalSeconds += res.ProcessingTimeSeconds
	if extractionOK {
		o.stats.ExtractionsRun++
	}
	if res.AgentAnalysis != nil {
		o.stats.AgentRunsOK++
	}
	if degraded {
		o.stats.DegradedVerdicts++
	} else if res.Prediction.SuccessCategory != constants.CategorySkipped {
		o.stats.PredictionsRun++
	}
}

// skippedPrediction is the neutral verdict when the caller disables the
// prediction step: probability dead center, every sub-score at the midpoint.
func skippedPrediction(version string) entity.PredictionResult {
	p := neutralPrediction(version)
	p.SuccessCategory = constants.CategorySkipped
	p.ConfidenceInterval = entity.ConfidenceInterval{Lower: 0.4, Upper: 0.6}
	p.ModelConfidence = 0.5
	return p
}

// degradedPrediction is the wide-interval fallback when the model errors.
func degradedPrediction(version string) entity.PredictionResult {
	p := neutralPrediction(version)
	p.SuccessCategory = constants.CategoryUnknown
	p.ConfidenceInterval = entity.ConfidenceInterval{Lower: 0.3, Upper: 0.7}
	p.ModelConfidence = 0.3
	p.ImprovementAreas = []string{"Unable to complete analysis"}
	return p
}

func neutralPrediction(version string) entity.PredictionResult {
	return entity.PredictionResult{
		SuccessProbability:       0.5,
		InvestmentRecommendation: constants.RecommendWatch,
		MarketScore:              50,
		TeamScore:                50,
		ProductScore:             50,
		BusinessModelScore:       50,
		FinancialScore:           50,
		RiskScore:                50,
		KeyStrengths:             []entity.Factor{},
		KeyRisks:                 []entity.Factor{},
		ImprovementAreas:         []string{},
		PredictionTimestamp:      time.Now().UTC(),
		ModelVersion:             version,
		FeatureCount:             features.NumFeatures,
	}
}
