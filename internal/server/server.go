// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/damiloju/startup-analyst/internal/common"
	"github.com/damiloju/startup-analyst/internal/entity"
	"github.com/damiloju/startup-analyst/internal/export"
	"github.com/damiloju/startup-analyst/internal/ml"
	"github.com/damiloju/startup-analyst/internal/pipeline"
	"github.com/damiloju/startup-analyst/internal/store"
)

// Server wires the HTTP handlers to the pipeline and its surroundings.
type Server struct {
	orchestrator *pipeline.Orchestrator
	predictor    *ml.Predictor
	history      *store.Store
	exporter     *export.Service
	logger       *slog.Logger
}

func New(orc *pipeline.Orchestrator, predictor *ml.Predictor, history *store.Store, exporter *export.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		orchestrator: orc,
		predictor:    predictor,
		history:      history,
		exporter:     exporter,
		logger:       logger,
	}
}

// requestID tags every request with a fresh ID, carried on the request
// context for log correlation and echoed back in the X-Request-ID header.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()
		c.Request = c.Request.WithContext(common.WithRequestID(c.Request.Context(), id))
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID())

	r.GET("/healthz", s.health)

	api := r.Group("/api")
	{
		api.POST("/analyze", s.analyze)
		api.GET("/analyses", s.listAnalyses)
		api.GET("/analyses/export", s.exportAnalyses)
		api.GET("/analyses/:id", s.getAnalysis)
		api.POST("/model/train", s.trainModel)
		api.GET("/model/metrics", s.modelMetrics)
	}
	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"capabilities": s.orchestrator.Capabilities(),
		"stats":        s.orchestrator.Statistics(),
	})
}

func (s *Server) analyze(c *gin.Context) {
	var input entity.AnalysisInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := s.orchestrator.Analyze(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.logger.Error("server.analyze.failed",
			"request_id", common.RequestIDFromContext(c.Request.Context()), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}

	// history is best effort; the analysis already succeeded
	if s.history != nil {
		if err := s.history.Save(c.Request.Context(), res); err != nil {
			s.logger.Warn("server.analyze.save_failed", "analysis_id", res.AnalysisID, "err", err)
		}
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) listAnalyses(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history store not configured"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	recs, err := s.history.List(c.Request.Context(), c.Query("company"), limit)
	if err != nil {
		s.logger.Error("server.list.failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"analyses": recs, "count": len(recs)})
}

func (s *Server) getAnalysis(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history store not configured"})
		return
	}
	id := c.Param("id")
	if verr := common.UUID("id", id); verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
		return
	}
	res, err := s.history.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found"})
			return
		}
		s.logger.Error("server.get.failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) exportAnalyses(c *gin.Context) {
	if s.exporter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "export not configured"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	raw, err := s.exporter.ExportHistoryXLSX(c.Request.Context(), c.Query("company"), limit)
	if err != nil {
		s.logger.Error("server.export.failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="analyses.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", raw)
}

func (s *Server) trainModel(c *gin.Context) {
	if s.predictor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "predictor not configured"})
		return
	}
	perf, err := s.predictor.Train(c.Request.Context())
	if err != nil {
		s.logger.Error("server.train.failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "training failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"performance": perf})
}

func (s *Server) modelMetrics(c *gin.Context) {
	if s.predictor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "predictor not configured"})
		return
	}
	perf := s.predictor.Performance()
	if perf == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "model not trained"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"performance":        perf,
		"feature_importance": s.predictor.FeatureImportance(),
	})
}
