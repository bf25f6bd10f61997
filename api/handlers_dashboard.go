package api

import (
	"net/http"
)

func (s *Server) handleExpenseBreakdown(w http.ResponseWriter, r *http.Request) {
	businessID, ok := getBusinessID(w, r)
	if !ok {
		return
	}

	breakdown, err := s.analyticsRepo.ExpenseBreakdown(businessID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch expense breakdown", err)
		return
	}

	writeJSON(w, map[string]interface{}{
		"categories": breakdown,
		"count":      len(breakdown),
	})
}

func (s *Server) handleMonthlyCashflow(w http.ResponseWriter, r *http.Request) {
	businessID, ok := getBusinessID(w, r)
	if !ok {
		return
	}

	minMonths, maxMonths := 1, 24
	months := getIntParam(r, "months", 6, &minMonths, &maxMonths)

	points, err := s.analyticsRepo.MonthlyCashflow(businessID, months)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch cashflow series", err)
		return
	}

	writeJSON(w, map[string]interface{}{
		"months": points,
		"count":  len(points),
	})
}
