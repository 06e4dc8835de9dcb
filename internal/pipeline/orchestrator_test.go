package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/damiloju/startup-analyst/constants"
	"github.com/damiloju/startup-analyst/internal/agents"
	"github.com/damiloju/startup-analyst/internal/common"
	"github.com/damiloju/startup-analyst/internal/entity"
	"github.com/damiloju/startup-analyst/internal/ml"
)

type failingExtractor struct{}

func (failingExtractor) ExtractFinancialData(context.Context, string) (*entity.ExtractedFinancialData, error) {
	return nil, errors.New("pdftotext: no such file")
}

type stubExtractor struct {
	data *entity.ExtractedFinancialData
}

func (s stubExtractor) ExtractFinancialData(context.Context, string) (*entity.ExtractedFinancialData, error) {
	return s.data, nil
}

type stubAgents struct {
	out map[string]any
	err error
}

func (s stubAgents) Analyze(context.Context, agents.AnalysisRequest) (map[string]any, error) {
	return s.out, s.err
}

func testPredictor() *ml.Predictor {
	return ml.NewPredictor(ml.Config{Samples: 300, Seed: 42, CVFolds: 2}, nil)
}

func TestAnalyzeRequiresCompanyName(t *testing.T) {
	o := New(Options{Predictor: testPredictor()})
	_, err := o.Analyze(context.Background(), entity.AnalysisInput{UseMLPrediction: true})
	if err == nil {
		t.Fatal("expected error for empty company name")
	}
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestAnalyzeRejectsNonFiniteManualData(t *testing.T) {
	o := New(Options{Predictor: testPredictor()})
	for name, val := range map[string]float64{
		"nan":      math.NaN(),
		"pos_inf":  math.Inf(1),
		"neg_inf":  math.Inf(-1),
		"overflow": math.MaxFloat64,
	} {
		_, err := o.Analyze(context.Background(), entity.AnalysisInput{
			CompanyName:     "Acme",
			ManualData:      map[string]float64{"market_size_billions": val},
			UseMLPrediction: true,
		})
		if err == nil {
			t.Errorf("%s: expected error for non-finite manual value", name)
			continue
		}
		if !errors.Is(err, common.ErrInvalidInput) {
			t.Errorf("%s: err = %v, want ErrInvalidInput", name, err)
		}
	}

	// a finite value on the same key still passes and serializes cleanly
	res, err := o.Analyze(context.Background(), entity.AnalysisInput{
		CompanyName:     "Acme",
		ManualData:      map[string]float64{"market_size_billions": 8},
		UseMLPrediction: true,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if _, err := json.Marshal(res); err != nil {
		t.Errorf("result not serializable: %v", err)
	}
}

func TestAnalyzeRejectsOverlongCompanyName(t *testing.T) {
	o := New(Options{Predictor: testPredictor()})
	_, err := o.Analyze(context.Background(), entity.AnalysisInput{
		CompanyName:     strings.Repeat("x", maxCompanyNameLen+1),
		UseMLPrediction: true,
	})
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestAnalyzeSurvivesMissingPDF(t *testing.T) {
	o := New(Options{
		Extractor: failingExtractor{},
		Predictor: testPredictor(),
	})
	res, err := o.Analyze(context.Background(), entity.AnalysisInput{
		CompanyName:      "Acme",
		PDFPath:          "/does/not/exist.pdf",
		UsePDFExtraction: true,
		UseMLPrediction:  true,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.PDFData == nil || !res.PDFData.Empty() {
		t.Errorf("pdf data = %+v, want empty default", res.PDFData)
	}
	for _, c := range res.ComponentsUsed {
		if c == constants.ComponentPDFExtraction {
			t.Error("failed extraction must not be recorded as used")
		}
	}
	if !contains(res.ComponentsUsed, constants.ComponentMLPrediction) {
		t.Errorf("components = %v, prediction missing", res.ComponentsUsed)
	}
	// confidence comes from the model alone when extraction contributed nothing
	if res.OverallConfidence != res.Prediction.ModelConfidence {
		t.Errorf("overall confidence %v != model confidence %v",
			res.OverallConfidence, res.Prediction.ModelConfidence)
	}
	if res.DataCompleteness != 0.5 {
		t.Errorf("completeness = %v, want neutral 0.5", res.DataCompleteness)
	}
}

func TestAnalyzeWithExtraction(t *testing.T) {
	rev := 1_000_000.0
	o := New(Options{
		Extractor: stubExtractor{data: &entity.ExtractedFinancialData{
			CurrentRevenue:       &rev,
			ExtractionConfidence: 0.9,
			CompletenessScore:    1.0 / 6,
		}},
		Predictor: testPredictor(),
	})
	res, err := o.Analyze(context.Background(), entity.AnalysisInput{
		CompanyName:      "Acme",
		PDFPath:          "deck.pdf",
		UsePDFExtraction: true,
		UseMLPrediction:  true,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !contains(res.ComponentsUsed, constants.ComponentPDFExtraction) {
		t.Errorf("components = %v", res.ComponentsUsed)
	}
	want := (res.Prediction.ModelConfidence + 0.9) / 2
	if res.OverallConfidence != want {
		t.Errorf("overall confidence = %v, want %v", res.OverallConfidence, want)
	}
	if res.DataCompleteness != 1.0/6 {
		t.Errorf("completeness = %v", res.DataCompleteness)
	}
}

func TestAnalyzeSkippedPrediction(t *testing.T) {
	o := New(Options{Predictor: testPredictor()})
	res, err := o.Analyze(context.Background(), entity.AnalysisInput{
		CompanyName: "Acme",
		// UseMLPrediction false
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	p := res.Prediction
	if p.SuccessCategory != constants.CategorySkipped {
		t.Errorf("category = %v", p.SuccessCategory)
	}
	if p.SuccessProbability != 0.5 || p.InvestmentRecommendation != constants.RecommendWatch {
		t.Errorf("prediction = %+v", p)
	}
	if p.ConfidenceInterval.Lower != 0.4 || p.ConfidenceInterval.Upper != 0.6 {
		t.Errorf("interval = %+v", p.ConfidenceInterval)
	}
	if p.MarketScore != 50 || p.RiskScore != 50 {
		t.Errorf("sub-scores not neutral: %+v", p)
	}
	if len(res.ComponentsUsed) != 0 {
		t.Errorf("components = %v, want none", res.ComponentsUsed)
	}
}

func TestAnalyzeAgentFailureAbsorbed(t *testing.T) {
	o := New(Options{
		Agents:    stubAgents{err: errors.New("upstream down")},
		Predictor: testPredictor(),
	})
	res, err := o.Analyze(context.Background(), entity.AnalysisInput{
		CompanyName:     "Acme",
		UseAIAgents:     true,
		UseMLPrediction: true,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.AgentAnalysis != nil {
		t.Errorf("agent analysis = %v, want nil after failure", res.AgentAnalysis)
	}
	if contains(res.ComponentsUsed, constants.ComponentAIAgents) {
		t.Error("failed agent run must not be recorded as used")
	}
}

func TestAnalyzeAgentMetadataAttached(t *testing.T) {
	o := New(Options{
		Agents:    stubAgents{out: map[string]any{"sentiment": "positive"}},
		Predictor: testPredictor(),
	})
	res, err := o.Analyze(context.Background(), entity.AnalysisInput{
		CompanyName:     "Acme",
		UseAIAgents:     true,
		UseMLPrediction: true,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.AgentAnalysis["sentiment"] != "positive" {
		t.Errorf("agent analysis = %v", res.AgentAnalysis)
	}
	if !contains(res.ComponentsUsed, constants.ComponentAIAgents) {
		t.Errorf("components = %v", res.ComponentsUsed)
	}
}

func TestCapabilitiesProbe(t *testing.T) {
	o := New(Options{Predictor: testPredictor()})
	caps := o.Capabilities()
	if caps.PDFExtraction || caps.AIAgents || !caps.MLPrediction {
		t.Errorf("caps = %+v", caps)
	}

	// request flags cannot turn an absent component on
	res, err := o.Analyze(context.Background(), entity.AnalysisInput{
		CompanyName:      "Acme",
		PDFPath:          "deck.pdf",
		UsePDFExtraction: true,
		UseAIAgents:      true,
		UseMLPrediction:  true,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.PDFData != nil || res.AgentAnalysis != nil {
		t.Errorf("absent components produced output: %+v", res)
	}
}

func TestStatistics(t *testing.T) {
	o := New(Options{Predictor: testPredictor()})
	for i := 0; i < 3; i++ {
		if _, err := o.Analyze(context.Background(), entity.AnalysisInput{
			CompanyName:     "Acme",
			UseMLPrediction: true,
		}); err != nil {
			t.Fatal(err)
		}
	}
	s := o.Statistics()
	if s.TotalAnalyses != 3 || s.PredictionsRun != 3 {
		t.Errorf("stats = %+v", s)
	}
	if s.AverageSeconds < 0 {
		t.Errorf("average seconds = %v", s.AverageSeconds)
	}
}

func contains(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}
