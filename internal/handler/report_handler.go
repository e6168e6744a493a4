package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/moneywise/backend/internal/repository"
	"github.com/moneywise/backend/internal/service"
)

// ReportHandler handles HTTP requests for financial reports.
type ReportHandler struct {
	service ReportServiceInterface
}

// NewReportHandler creates a new ReportHandler with the given service.
func NewReportHandler(service ReportServiceInterface) *ReportHandler {
	return &ReportHandler{service: service}
}

// Generate godoc
// @Summary Generate a financial report
// @Description Assemble and persist a financial report for a date range
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body service.GenerateReportInput true "Report parameters"
// @Success 201 {object} model.Report
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports [post]
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	var input service.GenerateReportInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		respondError(w, http.StatusBadRequest, "startDate and endDate are required")
		return
	}

	report, err := h.service.Generate(r.Context(), userID, input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRange) {
			respondError(w, http.StatusBadRequest, "endDate must not be before startDate")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to generate report")
		return
	}

	respondJSON(w, http.StatusCreated, report)
}

// List godoc
// @Summary List reports
// @Description Get all saved reports for the current user
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Report
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports [get]
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	reports, err := h.service.List(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list reports")
		return
	}

	respondJSON(w, http.StatusOK, reports)
}

// Get godoc
// @Summary Get a report
// @Description Get a saved report by ID, including its computed data
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} model.Report
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /reports/{id} [get]
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	report, err := h.service.Get(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			respondError(w, http.StatusNotFound, "report not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to get report")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// Delete godoc
// @Summary Delete a report
// @Description Delete a saved report by ID
// @Tags reports
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /reports/{id} [delete]
func (h *ReportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			respondError(w, http.StatusNotFound, "report not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete report")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
