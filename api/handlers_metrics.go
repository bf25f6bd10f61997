package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"finpulse/database"
	"finpulse/engine"
)

func (s *Server) handleGetMetrics(w http.ResponseWriter, r *http.Request) {
	businessID, ok := getBusinessID(w, r)
	if !ok {
		return
	}

	m, err := s.metricsRepo.Get(businessID)
	if err != nil {
		var notFound *database.NotFoundError
		if errors.As(err, &notFound) {
			respondWithError(w, http.StatusNotFound, "No metrics found for business", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch metrics", err)
		return
	}

	writeJSON(w, m)
}

// handleGetScoreBreakdown re-derives the health and credit scorecards
// from the stored metrics so the dashboard can show per-component
// contributions, not just the totals.
func (s *Server) handleGetScoreBreakdown(w http.ResponseWriter, r *http.Request) {
	businessID, ok := getBusinessID(w, r)
	if !ok {
		return
	}

	m, err := s.metricsRepo.Get(businessID)
	if err != nil {
		var notFound *database.NotFoundError
		if errors.As(err, &notFound) {
			respondWithError(w, http.StatusNotFound, "No metrics found for business", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch metrics", err)
		return
	}

	health := engine.EvaluateHealth(m.ProfitMargin, m.Receivables, m.TotalRevenue, m.TotalExpenses)
	credit := engine.EvaluateCredit(m.NetProfit, m.TotalRevenue, m.LoanObligations, m.Receivables)

	writeJSON(w, map[string]interface{}{
		"business_id":      businessID,
		"health_score":     health.Total(),
		"health_breakdown": health.Breakdown,
		"credit_score":     credit.Total(),
		"credit_breakdown": credit.Breakdown,
	})
}

func (s *Server) handleGetTransactions(w http.ResponseWriter, r *http.Request) {
	businessID, ok := getBusinessID(w, r)
	if !ok {
		return
	}

	minLimit, maxLimit := 1, 1000
	limit := getIntParam(r, "limit", 100, &minLimit, &maxLimit)

	txns, err := s.transactionRepo.List(businessID, limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch transactions", err)
		return
	}

	total, err := s.transactionRepo.Count(businessID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to count transactions", err)
		return
	}

	writeJSON(w, map[string]interface{}{
		"transactions": txns,
		"count":        len(txns),
		"total":        total,
	})
}

func (s *Server) handleGetInsights(w http.ResponseWriter, r *http.Request) {
	businessID, ok := getBusinessID(w, r)
	if !ok {
		return
	}

	items, err := s.insightRepo.List(businessID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch insights", err)
		return
	}

	writeJSON(w, map[string]interface{}{
		"insights": items,
		"count":    len(items),
	})
}

type explainRequest struct {
	BusinessID string `json:"business_id"`
	Section    string `json:"section"`
	Status     string `json:"status"`
}

func (s *Server) handleExplainSection(w http.ResponseWriter, r *http.Request) {
	var req explainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.BusinessID == "" || req.Section == "" {
		respondWithError(w, http.StatusBadRequest, "business_id and section are required", nil)
		return
	}

	m, err := s.metricsRepo.Get(req.BusinessID)
	if err != nil {
		var notFound *database.NotFoundError
		if errors.As(err, &notFound) {
			respondWithError(w, http.StatusNotFound, "No metrics found for business", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch metrics", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 35*time.Second)
	defer cancel()

	explanation, err := s.explainer.ExplainSection(ctx, req.BusinessID, req.Section, req.Status, *m)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to generate explanation", err)
		return
	}

	writeJSON(w, map[string]string{
		"section":     req.Section,
		"explanation": explanation,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}
