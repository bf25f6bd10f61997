package api

import (
	"encoding/json"
	"net/http"
)

type processUploadRequest struct {
	BusinessID string                   `json:"business_id"`
	Rows       []map[string]interface{} `json:"rows"`
	IsDemo     bool                     `json:"is_demo"`
	FileType   string                   `json:"file_type"`
	Filename   string                   `json:"filename"`
}

// handleProcessUpload runs the full ingestion pipeline: normalize the
// uploaded rows (or generate demo data), recompute metrics and scores,
// and persist everything in one transaction.
func (s *Server) handleProcessUpload(w http.ResponseWriter, r *http.Request) {
	var req processUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.BusinessID == "" {
		respondWithError(w, http.StatusBadRequest, "business_id is required", nil)
		return
	}
	if !req.IsDemo && len(req.Rows) == 0 {
		respondWithError(w, http.StatusBadRequest, "rows are required for non-demo uploads", nil)
		return
	}

	result, err := s.ingestor.Ingest(req.BusinessID, req.Rows, req.IsDemo, req.FileType, req.Filename)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to process upload", err)
		return
	}

	writeJSON(w, result)
}

func (s *Server) handleUploadHistory(w http.ResponseWriter, r *http.Request) {
	businessID, ok := getBusinessID(w, r)
	if !ok {
		return
	}

	minLimit, maxLimit := 1, 100
	limit := getIntParam(r, "limit", 20, &minLimit, &maxLimit)

	history, err := s.uploadRepo.History(businessID, limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch upload history", err)
		return
	}

	writeJSON(w, map[string]interface{}{
		"uploads": history,
		"count":   len(history),
	})
}
