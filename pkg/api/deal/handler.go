// Package deal exposes the deal-processing engine over HTTP. The transport
// decodes the request, invokes the engine, and serializes the result; all
// business rules live in pkg/core/engine.
package deal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"finalis_engine/pkg/core/engine"
	"finalis_engine/pkg/core/store"
)

// Handler routes deal-processing requests into the engine. The repository
// is optional; when present, every processed deal is persisted as an audit
// record after the response is sent.
type Handler struct {
	processor   *engine.Processor
	repo        store.DealRepository
	environment string
}

// NewHandler creates a handler. repo may be nil to disable persistence.
func NewHandler(repo store.DealRepository, environment string) *Handler {
	return &Handler{
		processor:   engine.NewProcessor(),
		repo:        repo,
		environment: environment,
	}
}

type errorResponse struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

// HandleInfo serves the API info payload on GET /.
func (h *Handler) HandleInfo(w http.ResponseWriter, r *http.Request) {
	if handlePreflight(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"message":     "Finalis Commission Calculator API",
		"version":     "3.0",
		"environment": h.environment,
		"endpoints": map[string]string{
			"process_deal": "/process_deal [POST]",
			"health":       "/health [GET]",
		},
	})
}

// HandleHealth serves the health check on GET /health.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if handlePreflight(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":      "healthy",
		"environment": h.environment,
	})
}

// HandleProcessDeal serves POST /process_deal (and the legacy /process
// alias). Validation failures map to 400, everything else to 500.
func (h *Handler) HandleProcessDeal(w http.ResponseWriter, r *http.Request) {
	if handlePreflight(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{
			Error:  "method not allowed",
			Status: "failed",
		})
		return
	}

	requestID := uuid.NewString()

	var input engine.DealInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		fmt.Printf("[DEAL] %s decode error: %v\n", requestID, err)
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  fmt.Sprintf("invalid JSON: %v", err),
			Status: "validation_failed",
		})
		return
	}

	// Amounts are never logged; deal name and request id only.
	fmt.Printf("[DEAL] %s processing deal: %s\n", requestID, input.Deal.Name)

	result, err := h.processor.Process(input)
	if err != nil {
		if engine.IsValidationError(err) {
			fmt.Printf("[DEAL] %s validation error: %v\n", requestID, err)
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error:  err.Error(),
				Status: "validation_failed",
			})
			return
		}
		fmt.Printf("[DEAL] %s processing error: %v\n", requestID, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:  "an unexpected error occurred during processing",
			Status: "failed",
		})
		return
	}

	fmt.Printf("[DEAL] %s deal processed successfully: %s\n", requestID, input.Deal.Name)
	writeJSON(w, http.StatusOK, result)

	h.persist(requestID, input, result)
}

// persist writes the audit record when a repository is configured. Failures
// are logged and swallowed; persistence never affects the response.
func (h *Handler) persist(requestID string, input engine.DealInput, result *engine.Result) {
	if h.repo == nil {
		return
	}
	reqJSON, err := json.Marshal(input)
	if err != nil {
		fmt.Printf("[DEAL] %s failed to marshal request for audit: %v\n", requestID, err)
		return
	}
	resJSON, err := json.Marshal(result)
	if err != nil {
		fmt.Printf("[DEAL] %s failed to marshal result for audit: %v\n", requestID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.repo.SaveProcessedDeal(ctx, requestID, input.Deal.Name, reqJSON, resJSON); err != nil {
		fmt.Printf("[DEAL] %s failed to persist audit record: %v\n", requestID, err)
	}
}

// handlePreflight sets CORS headers and answers OPTIONS. Returns true when
// the request was a preflight and has been fully handled.
func handlePreflight(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
