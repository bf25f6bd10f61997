package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"finpulse/database/analytics"
	"finpulse/database/insights"
	"finpulse/database/metrics"
	"finpulse/database/models"
	"finpulse/database/transactions"
	"finpulse/database/uploads"
	"finpulse/realtime"
	"finpulse/websocket"
)

// Ingestor runs the upload-to-metrics pipeline for a business.
type Ingestor interface {
	Ingest(businessID string, rows []map[string]interface{}, isDemo bool, fileType, filename string) (*models.IngestResult, error)
}

// Explainer produces a natural-language explanation for a dashboard
// section.
type Explainer interface {
	ExplainSection(ctx context.Context, businessID, section, status string, m models.FinancialMetrics) (string, error)
}

// Server handles HTTP API requests
type Server struct {
	transactionRepo *transactions.Repository
	metricsRepo     *metrics.Repository
	insightRepo     *insights.Repository
	uploadRepo      *uploads.Repository
	analyticsRepo   *analytics.Repository
	ingestor        Ingestor
	explainer       Explainer
	broker          *realtime.Broker
	hub             *websocket.Hub
}

// NewServer creates a new API server instance
func NewServer(db *gorm.DB, analyticsRepo *analytics.Repository, ingestor Ingestor, explainer Explainer, broker *realtime.Broker, hub *websocket.Hub) *Server {
	return &Server{
		transactionRepo: transactions.NewRepository(db),
		metricsRepo:     metrics.NewRepository(db),
		insightRepo:     insights.NewRepository(db),
		uploadRepo:      uploads.NewRepository(db),
		analyticsRepo:   analyticsRepo,
		ingestor:        ingestor,
		explainer:       explainer,
		broker:          broker,
		hub:             hub,
	}
}

// Start starts the HTTP server on the specified port
func (s *Server) Start(port int) error {
	mux := http.NewServeMux()

	// Ingestion
	mux.HandleFunc("POST /api/uploads/process", s.handleProcessUpload)
	mux.HandleFunc("GET /api/uploads/history", s.handleUploadHistory)

	// Metrics & transactions
	mux.HandleFunc("GET /api/metrics", s.handleGetMetrics)
	mux.HandleFunc("GET /api/metrics/scores", s.handleGetScoreBreakdown)
	mux.HandleFunc("GET /api/transactions", s.handleGetTransactions)

	// Insights
	mux.HandleFunc("GET /api/insights", s.handleGetInsights)
	mux.HandleFunc("POST /api/insights/explain", s.handleExplainSection)

	// Dashboard analytics
	mux.HandleFunc("GET /api/dashboard/expense-breakdown", s.handleExpenseBreakdown)
	mux.HandleFunc("GET /api/dashboard/cashflow", s.handleMonthlyCashflow)

	// Realtime channels
	mux.Handle("GET /api/events", s.broker) // SSE endpoint
	mux.Handle("GET /ws", s.hub)

	mux.HandleFunc("GET /health", s.handleHealth)

	// Serve Static Files (Public UI)
	fs := http.FileServer(http.Dir("./public"))
	mux.Handle("GET /", fs)

	// Add middleware
	handler := s.corsMiddleware(s.loggingMiddleware(mux))

	serverAddr := fmt.Sprintf("0.0.0.0:%d", port)
	log.Printf("🚀 API Server starting on %s", serverAddr)
	return http.ListenAndServe(serverAddr, handler)
}

// Middleware
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// Handlers are distributed across multiple files:
// - handlers_uploads.go: Ingestion pipeline and upload history
// - handlers_metrics.go: Metrics, scores, transactions, insights
// - handlers_dashboard.go: Aggregate analytics for charts
