package app

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"finpulse/database"
	"finpulse/database/insights"
	"finpulse/database/metrics"
	"finpulse/database/models"
	"finpulse/database/transactions"
	"finpulse/database/uploads"
	"finpulse/engine"
	"finpulse/insight"
)

// Broadcaster fans an event out to connected dashboard clients. Both
// the SSE broker and the websocket hub satisfy it.
type Broadcaster interface {
	Broadcast(event string, payload interface{})
}

// IngestService runs the replace-then-recompute pipeline: normalize the
// batch, aggregate it into metrics, and commit transactions + metrics +
// rule-based insights in a single database transaction so readers see
// either the fully-previous or the fully-new state.
type IngestService struct {
	db          *database.Database
	uploadRepo  *uploads.Repository
	demoSeed    int64
	insightSvc  *InsightService
	broadcaster Broadcaster
}

// NewIngestService creates the pipeline orchestrator.
func NewIngestService(db *database.Database, insightSvc *InsightService, broadcaster Broadcaster, demoSeed int64) *IngestService {
	return &IngestService{
		db:          db,
		uploadRepo:  uploads.NewRepository(db.DB()),
		demoSeed:    demoSeed,
		insightSvc:  insightSvc,
		broadcaster: broadcaster,
	}
}

// Ingest processes one upload (or demo connect) for a business. Any
// persistence failure rolls the whole batch back and surfaces a single
// error; the previous metrics stay visible untouched.
func (s *IngestService) Ingest(businessID string, rows []map[string]interface{}, isDemo bool, fileType, filename string) (*models.IngestResult, error) {
	now := time.Now()

	upload := &models.Upload{
		ID:               uuid.NewString(),
		BusinessID:       businessID,
		FileType:         fileType,
		OriginalFilename: filename,
		ProcessingStatus: models.UploadProcessing,
	}
	if isDemo {
		upload.FileType = "demo"
		upload.OriginalFilename = "demo-data.json"
	}
	if err := s.uploadRepo.Create(upload); err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}

	var batch []models.Transaction
	if isDemo {
		seed := s.demoSeed
		if seed == 0 {
			seed = now.UnixNano()
		}
		batch = engine.NewDemoGenerator(seed, now).Generate(businessID)
	} else {
		batch = engine.Normalize(rows, businessID, now)
	}

	aggregated := engine.Aggregate(batch, businessID, now)
	ruleInsights := insight.Generate(aggregated, batch)

	err := s.db.DB().Transaction(func(tx *gorm.DB) error {
		if err := transactions.NewRepository(tx).Replace(businessID, batch); err != nil {
			return err
		}
		if err := metrics.NewRepository(tx).Upsert(&aggregated); err != nil {
			return err
		}
		return insights.NewRepository(tx).Replace(businessID, ruleInsights)
	})
	if err != nil {
		if markErr := s.uploadRepo.MarkFailed(upload.ID, err.Error()); markErr != nil {
			log.Printf("⚠️  Failed to mark upload %s failed: %v", upload.ID, markErr)
		}
		return nil, fmt.Errorf("ingest commit: %w", err)
	}

	if err := s.uploadRepo.MarkCompleted(upload.ID, len(batch)); err != nil {
		log.Printf("⚠️  Failed to mark upload %s completed: %v", upload.ID, err)
	}

	log.Printf("📊 Ingested %d transactions for %s: %s | %s",
		len(batch), businessID,
		engine.EvaluateHealth(aggregated.ProfitMargin, aggregated.Receivables, aggregated.TotalRevenue, aggregated.TotalExpenses),
		engine.EvaluateCredit(aggregated.NetProfit, aggregated.TotalRevenue, aggregated.LoanObligations, aggregated.Receivables))

	if s.broadcaster != nil {
		s.broadcaster.Broadcast("metrics_updated", aggregated)
	}

	// LLM enrichment is best-effort and must never delay or fail the
	// deterministic pipeline; the rule-based insights above are already
	// committed as the fallback.
	if s.insightSvc != nil {
		go s.insightSvc.EnrichInsights(businessID, aggregated, batch)
	}

	return &models.IngestResult{
		UploadID:         upload.ID,
		TransactionCount: len(batch),
		Metrics:          aggregated,
	}, nil
}
