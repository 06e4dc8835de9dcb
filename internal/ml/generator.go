package ml

import (
	"log/slog"
	"math"
	"strings"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/damiloju/startup-analyst/internal/features"
)

// Dataset is a labeled feature matrix. Row order is meaningless; column
// order is the feature schema order.
type Dataset struct {
	X [][]float64
	Y []int
}

// GeneratorConfig controls synthetic dataset generation.
type GeneratorConfig struct {
	Samples int
	Seed    uint64
}

// Success-score weights for the synthetic labels. These are hand-picked
// placeholders that exist only to bootstrap the pipeline when no historical
// outcome data is available; predictions trained on them are plumbing tests,
// not validated forecasts.
const (
	wTeamQuality     = 0.25
	wMarketSize      = 0.20
	wAdvantage       = 0.15
	wReadiness       = 0.15
	wIndustryTrend   = 0.10
	wRevenue         = 0.15
	labelThreshold   = 0.6
	labelNoiseSigma  = 0.1
	defaultSamples   = 2000
	defaultSeed      = 42
)

// GenerateTrainingData synthesizes a correlated labeled dataset. Latent
// team-quality and industry-trend draws drive the dependent features so the
// data has realistic internal structure instead of independent noise.
func GenerateTrainingData(cfg GeneratorConfig, logger *slog.Logger) Dataset {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Samples <= 0 {
		cfg.Samples = defaultSamples
	}
	src := rand.NewSource(cfg.Seed)

	beta22 := distuv.Beta{Alpha: 2, Beta: 2, Src: src}
	beta11 := distuv.Beta{Alpha: 1, Beta: 1, Src: src}
	beta13 := distuv.Beta{Alpha: 1, Beta: 3, Src: src}
	logNorm01 := distuv.LogNormal{Mu: 0, Sigma: 1, Src: src}
	logNormFund := distuv.LogNormal{Mu: 12, Sigma: 2, Src: src}
	logNormBurn := distuv.LogNormal{Mu: 0, Sigma: 0.5, Src: src}
	noise := distuv.Normal{Mu: 0, Sigma: labelNoiseSigma, Src: src}
	expNoise := distuv.Normal{Mu: 0, Sigma: 2, Src: src}
	riskNoise := distuv.Normal{Mu: 0, Sigma: 0.1, Src: src}
	poisRounds := distuv.Poisson{Lambda: 2, Src: src}
	poisTeam := distuv.Poisson{Lambda: 8, Src: src}
	uni := func(lo, hi float64) float64 {
		return distuv.Uniform{Min: lo, Max: hi, Src: src}.Rand()
	}

	ds := Dataset{
		X: make([][]float64, 0, cfg.Samples),
		Y: make([]int, 0, cfg.Samples),
	}
	successes := 0

	for i := 0; i < cfg.Samples; i++ {
		industryTrend := beta22.Rand()
		marketSize := logNorm01.Rand() * industryTrend * 2

		teamQuality := beta22.Rand()
		founderExperience := teamQuality*10 + expNoise.Rand()

		competitiveAdvantage := beta22.Rand()
		productReadiness := teamQuality*0.7 + beta11.Rand()*0.3

		fundingTotal := logNormFund.Rand()
		revenue := fundingTotal * beta13.Rand() * 0.1
		burnRate := fundingTotal * 0.05 * logNormBurn.Rand()

		successScore := teamQuality*wTeamQuality +
			(marketSize/10)*wMarketSize +
			competitiveAdvantage*wAdvantage +
			productReadiness*wReadiness +
			industryTrend*wIndustryTrend +
			math.Min(revenue/100_000, 1)*wRevenue
		successProb := math.Min(successScore+noise.Rand(), 1)
		label := 0
		if successProb > labelThreshold {
			label = 1
			successes++
		}

		runway := 24.0
		if burnRate > 0 {
			runway = fundingTotal / (burnRate * 12)
		}

		var v features.Vector
		v[features.FundingTotalUSD] = fundingTotal
		v[features.FundingRounds] = math.Max(1, poisRounds.Rand())
		v[features.TeamSize] = math.Max(1, poisTeam.Rand())
		v[features.FoundedYear] = math.Floor(uni(2015, 2023))
		v[features.CurrentRevenueUSD] = revenue
		v[features.ProjectedRevenueY1] = revenue * uni(1.5, 3)
		v[features.ProjectedRevenueY3] = revenue * uni(3, 8)
		v[features.BurnRateMonthly] = burnRate
		v[features.RunwayMonths] = runway
		v[features.GrossMarginPercent] = uni(20, 80)

		v[features.MarketSizeBillions] = marketSize
		v[features.AddressableMarketBillions] = marketSize * uni(0.05, 0.2)
		v[features.MarketGrowthRate] = uni(-5, 25)
		v[features.CompetitionLevel] = math.Floor(uni(1, 6))
		v[features.CompetitiveAdvantageScore] = competitiveAdvantage

		v[features.FounderExperienceYears] = math.Max(0, founderExperience)
		v[features.TeamTechnicalScore] = teamQuality*0.8 + uni(0, 0.2)
		v[features.TeamBusinessScore] = teamQuality*0.7 + uni(0, 0.3)
		v[features.AdvisorQualityScore] = beta22.Rand()

		v[features.ProductReadinessScore] = productReadiness
		v[features.TechDifferentiationScore] = competitiveAdvantage*0.8 + uni(0, 0.2)
		v[features.UserTractionScore] = beta13.Rand()
		v[features.ProductMarketFitScore] = successProb*0.7 + uni(0, 0.3)

		v[features.BusinessModelClarity] = teamQuality*0.6 + uni(0, 0.4)
		v[features.RevenueModelStrength] = beta22.Rand()
		v[features.ScalabilityScore] = industryTrend*0.7 + uni(0, 0.3)
		v[features.GoToMarketScore] = teamQuality*0.5 + uni(0, 0.5)

		v[features.MarketRiskScore] = 1 - industryTrend + riskNoise.Rand()
		v[features.TechnicalRiskScore] = 1 - productReadiness + riskNoise.Rand()
		v[features.TeamRiskScore] = 1 - teamQuality + riskNoise.Rand()
		v[features.FinancialRiskScore] = beta22.Rand()
		v[features.RegulatoryRiskScore] = beta13.Rand()

		v[features.IndustryTrendScore] = industryTrend
		v[features.EconomicEnvironmentScore] = beta22.Rand()
		v[features.VCFundingClimateScore] = beta22.Rand()

		v[features.PitchClarityScore] = teamQuality*0.6 + uni(0, 0.4)
		v[features.FinancialProjectionsRealism] = beta22.Rand()
		v[features.PresentationQualityScore] = beta22.Rand()

		clipScores(&v)

		row := make([]float64, features.NumFeatures)
		copy(row, v[:])
		ds.X = append(ds.X, row)
		ds.Y = append(ds.Y, label)
	}

	logger.Info("ml.generate.ok",
		"samples", len(ds.X),
		"success_rate", float64(successes)/float64(len(ds.X)),
		"seed", cfg.Seed,
	)
	return ds
}

// clipScores clamps every probability-like column (name contains "score")
// to [0,1] after the noisy derivations above.
func clipScores(v *features.Vector) {
	for i := 0; i < features.NumFeatures; i++ {
		if !strings.Contains(features.Name(i), "score") {
			continue
		}
		if v[i] < 0 {
			v[i] = 0
		} else if v[i] > 1 {
			v[i] = 1
		}
	}
}
