package ml

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"github.com/damiloju/startup-analyst/constants"
	"github.com/damiloju/startup-analyst/internal/entity"
	"github.com/damiloju/startup-analyst/internal/features"
)

// Config controls training of the ensemble.
type Config struct {
	ModelVersion string
	Samples      int
	Seed         uint64
	TestFraction float64
	CVFolds      int
}

func (c Config) withDefaults() Config {
	if c.ModelVersion == "" {
		c.ModelVersion = "2.0-go"
	}
	if c.Samples <= 0 {
		c.Samples = defaultSamples
	}
	if c.Seed == 0 {
		c.Seed = defaultSeed
	}
	if c.TestFraction <= 0 || c.TestFraction >= 1 {
		c.TestFraction = 0.2
	}
	if c.CVFolds <= 0 {
		c.CVFolds = 5
	}
	return c
}

// Artifact is one immutable trained model set. The predictor swaps whole
// artifacts under its lock, so readers never observe a half-trained state.
type Artifact struct {
	Version     string
	Columns     []string
	Scaler      *RobustScaler
	Forest      *RandomForest
	Boosting    *GradientBoosting
	Ada         *AdaBoost
	Performance map[string]ModelMetrics
	TrainedAt   time.Time
}

// Predictor serves success-likelihood predictions from a soft-vote ensemble
// of a random forest, gradient boosting, and AdaBoost. Training is lazy:
// the first Predict call trains on synthetic data unless Train or Load ran
// first. Safe for concurrent use.
type Predictor struct {
	mu     sync.RWMutex
	cfg    Config
	logger *slog.Logger
	art    *Artifact
}

// NewPredictor creates an untrained predictor. A nil logger falls back to
// slog.Default().
func NewPredictor(cfg Config, logger *slog.Logger) *Predictor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Predictor{cfg: cfg.withDefaults(), logger: logger}
}

// Trained reports whether a model artifact is loaded.
func (p *Predictor) Trained() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.art != nil
}

// Performance returns holdout and cross-validation metrics per model.
// The map is nil before training.
func (p *Predictor) Performance() map[string]ModelMetrics {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.art == nil {
		return nil
	}
	out := make(map[string]ModelMetrics, len(p.art.Performance))
	for k, v := range p.art.Performance {
		out[k] = v
	}
	return out
}

// FeatureImportance returns the forest's normalized impurity-decrease
// importance keyed by column name, or nil before training.
func (p *Predictor) FeatureImportance() map[string]float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.art == nil {
		return nil
	}
	return p.art.Forest.ImportanceByName()
}

// Train fits a fresh artifact on synthetic data and swaps it in atomically.
// Concurrent Predict calls keep serving the previous artifact until the
// swap.
func (p *Predictor) Train(ctx context.Context) (map[string]ModelMetrics, error) {
	art, err := p.train(ctx)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	p.art = art
	p.mu.Unlock()
	return art.Performance, nil
}

// ensure returns the current artifact, training one on first use.
// Double-checked so concurrent first calls train exactly once.
func (p *Predictor) ensure(ctx context.Context) (*Artifact, error) {
	p.mu.RLock()
	art := p.art
	p.mu.RUnlock()
	if art != nil {
		return art, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.art != nil {
		return p.art, nil
	}
	art, err := p.train(ctx)
	if err != nil {
		return nil, err
	}
	p.art = art
	return art, nil
}

func (p *Predictor) train(ctx context.Context) (*Artifact, error) {
	start := time.Now()
	ds := GenerateTrainingData(GeneratorConfig{Samples: p.cfg.Samples, Seed: p.cfg.Seed}, p.logger)

	trainX, trainY, testX, testY := split(ds, p.cfg.TestFraction, p.cfg.Seed)

	scaler := &RobustScaler{}
	scaler.Fit(trainX)
	trainX = scaler.TransformAll(trainX)
	testX = scaler.TransformAll(testX)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	forest := fitForest(trainX, trainY, defaultForestConfig(p.cfg.Seed+1))
	boost := fitBoosting(trainX, trainY, defaultBoostConfig(p.cfg.Seed+2))
	ada := fitAdaBoost(trainX, trainY, defaultAdaConfig())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	perf := map[string]ModelMetrics{
		"random_forest": evaluate(forest, testX, testY, trainX, trainY, p.cfg, func(X [][]float64, y []int) probaModel {
			return fitForest(X, y, defaultForestConfig(p.cfg.Seed+1))
		}),
		"gradient_boosting": evaluate(boost, testX, testY, trainX, trainY, p.cfg, func(X [][]float64, y []int) probaModel {
			return fitBoosting(X, y, defaultBoostConfig(p.cfg.Seed+2))
		}),
		"adaboost": evaluate(ada, testX, testY, trainX, trainY, p.cfg, func(X [][]float64, y []int) probaModel {
			return fitAdaBoost(X, y, defaultAdaConfig())
		}),
	}

	vote := softVote{forest, boost, ada}
	voteProbs := scoreAll(vote, testX)
	perf["ensemble"] = ModelMetrics{
		Accuracy: accuracy(voteProbs, testY),
		AUC:      rocAUC(voteProbs, testY),
	}

	art := &Artifact{
		Version:     p.cfg.ModelVersion,
		Columns:     features.Columns(),
		Scaler:      scaler,
		Forest:      forest,
		Boosting:    boost,
		Ada:         ada,
		Performance: perf,
		TrainedAt:   time.Now().UTC(),
	}
	p.logger.Info("ml.train.ok",
		"samples", p.cfg.Samples,
		"ensemble_accuracy", perf["ensemble"].Accuracy,
		"ensemble_auc", perf["ensemble"].AUC,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return art, nil
}

// Predict scores one feature vector. The probability is the soft-vote mean
// of the three base models; the interval is +-1.96 base-model standard
// deviations, clipped to [0,1]; model confidence shrinks as the base
// models disagree.
func (p *Predictor) Predict(ctx context.Context, v features.Vector) (entity.PredictionResult, error) {
	art, err := p.ensure(ctx)
	if err != nil {
		return entity.PredictionResult{}, err
	}

	x := art.Scaler.Transform(v[:])
	probs := []float64{
		art.Forest.PredictProba(x),
		art.Boosting.PredictProba(x),
		art.Ada.PredictProba(x),
	}
	prob := meanOf(probs)
	sigma := popStd(probs)
	category, recommendation := constants.Verdict(prob)
	sub := computeSubScores(v)

	res := entity.PredictionResult{
		SuccessProbability: prob,
		ConfidenceInterval: entity.ConfidenceInterval{
			Lower: ratio(prob - 1.96*sigma),
			Upper: ratio(prob + 1.96*sigma),
		},
		SuccessCategory:          category,
		InvestmentRecommendation: recommendation,

		MarketScore:        sub.Market,
		TeamScore:          sub.Team,
		ProductScore:       sub.Product,
		BusinessModelScore: sub.Business,
		FinancialScore:     sub.Financial,
		RiskScore:          sub.Risk,

		KeyStrengths:     keyStrengths(v),
		KeyRisks:         keyRisks(v),
		ImprovementAreas: improvementAreas(v),

		ModelConfidence:     ratio(1 - sigma),
		PredictionTimestamp: time.Now().UTC(),
		ModelVersion:        art.Version,
		FeatureCount:        len(art.Columns),
	}
	p.logger.Debug("ml.predict.ok",
		"probability", prob,
		"sigma", sigma,
		"recommendation", string(recommendation),
	)
	return res, nil
}

// softVote averages the base-model probabilities.
type softVote []probaModel

func (s softVote) PredictProba(x []float64) float64 {
	sum := 0.0
	for _, m := range s {
		sum += m.PredictProba(x)
	}
	return sum / float64(len(s))
}

func evaluate(m probaModel, testX [][]float64, testY []int, trainX [][]float64, trainY []int, cfg Config, fit func([][]float64, []int) probaModel) ModelMetrics {
	probs := scoreAll(m, testX)
	cvMean, cvStd := crossValidate(trainX, trainY, cfg.CVFolds, cfg.Seed+7, fit)
	return ModelMetrics{
		Accuracy: accuracy(probs, testY),
		AUC:      rocAUC(probs, testY),
		CVMean:   cvMean,
		CVStd:    cvStd,
	}
}

// split shuffles and partitions the dataset into train and holdout rows.
func split(ds Dataset, testFraction float64, seed uint64) (trainX [][]float64, trainY []int, testX [][]float64, testY []int) {
	n := len(ds.X)
	perm := rand.New(rand.NewSource(seed + 3)).Perm(n)
	nTest := int(testFraction * float64(n))

	for pos, i := range perm {
		if pos < nTest {
			testX = append(testX, ds.X[i])
			testY = append(testY, ds.Y[i])
		} else {
			trainX = append(trainX, ds.X[i])
			trainY = append(trainY, ds.Y[i])
		}
	}
	return trainX, trainY, testX, testY
}
