// Package store persists completed analyses in SQLite. The queryable
// verdict fields are broken out as columns; the full result rides along as
// JSON so nothing is lost between runs.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/damiloju/startup-analyst/internal/common"
	"github.com/damiloju/startup-analyst/internal/entity"
)

// AnalysisRecord is one stored analysis run.
type AnalysisRecord struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	CompanyName string    `json:"company_name" gorm:"index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`

	SuccessProbability float64 `json:"success_probability"`
	SuccessCategory    string  `json:"success_category"`
	Recommendation     string  `json:"recommendation"`

	OverallConfidence     float64 `json:"overall_confidence"`
	DataCompleteness      float64 `json:"data_completeness"`
	ProcessingTimeSeconds float64 `json:"processing_time_seconds"`
	PipelineVersion       string  `json:"pipeline_version"`
	ComponentsUsed        string  `json:"components_used"` // comma separated

	ResultJSON []byte `json:"-"`
}

// Store wraps the history database.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

// Open connects to the SQLite file at path and migrates the schema.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, common.NewAppError("STORE_OPEN", err.Error(), common.ErrDatabase)
	}
	if err := db.AutoMigrate(&AnalysisRecord{}); err != nil {
		return nil, common.NewAppError("STORE_MIGRATE", err.Error(), common.ErrDatabase)
	}
	logger.Info("store.open.ok", "path", path)
	return &Store{db: db, logger: logger}, nil
}

// Save records one completed analysis.
func (s *Store) Save(ctx context.Context, res *entity.AnalysisResult) error {
	raw, err := json.Marshal(res)
	if err != nil {
		return common.NewAppError("STORE_ENCODE", "encoding result", err)
	}
	rec := AnalysisRecord{
		ID:                    res.AnalysisID,
		CompanyName:           res.CompanyName,
		CreatedAt:             res.Timestamp,
		SuccessProbability:    res.Prediction.SuccessProbability,
		SuccessCategory:       string(res.Prediction.SuccessCategory),
		Recommendation:        string(res.Prediction.InvestmentRecommendation),
		OverallConfidence:     res.OverallConfidence,
		DataCompleteness:      res.DataCompleteness,
		ProcessingTimeSeconds: res.ProcessingTimeSeconds,
		PipelineVersion:       res.PipelineVersion,
		ComponentsUsed:        strings.Join(res.ComponentsUsed, ","),
		ResultJSON:            raw,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return common.NewAppError("STORE_SAVE", err.Error(), common.ErrDatabase)
	}
	s.logger.Debug("store.save.ok", "analysis_id", rec.ID, "company", rec.CompanyName)
	return nil
}

// Get returns the full stored result for one analysis ID.
func (s *Store) Get(ctx context.Context, id string) (*entity.AnalysisResult, error) {
	var rec AnalysisRecord
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.NewAppError("STORE_NOT_FOUND", "analysis "+id, common.ErrNotFound)
	}
	if err != nil {
		return nil, common.NewAppError("STORE_QUERY", err.Error(), common.ErrDatabase)
	}

	var res entity.AnalysisResult
	if err := json.Unmarshal(rec.ResultJSON, &res); err != nil {
		return nil, common.NewAppError("STORE_DECODE", "decoding stored result", err)
	}
	return &res, nil
}

// List returns history records, newest first. company filters exact matches
// when non-empty; limit <= 0 means no limit.
func (s *Store) List(ctx context.Context, company string, limit int) ([]AnalysisRecord, error) {
	q := s.db.WithContext(ctx).Order("created_at desc")
	if company != "" {
		q = q.Where("company_name = ?", company)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var recs []AnalysisRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, common.NewAppError("STORE_QUERY", err.Error(), common.ErrDatabase)
	}
	return recs, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
