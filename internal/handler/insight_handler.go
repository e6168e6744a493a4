package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type InsightHandler struct {
	service InsightServiceInterface
}

func NewInsightHandler(service InsightServiceInterface) *InsightHandler {
	return &InsightHandler{service: service}
}

// GetInsights godoc
// @Summary Get financial insights
// @Description Get generated insights for the current user, refreshing stale ones
// @Tags insights
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.AIInsight
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /insights [get]
func (h *InsightHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	insights, err := h.service.GetInsights(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get insights")
		return
	}

	respondJSON(w, http.StatusOK, insights)
}

// Refresh godoc
// @Summary Regenerate financial insights
// @Description Force regeneration of insights for the current user
// @Tags insights
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /insights/refresh [post]
func (h *InsightHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	if err := h.service.Refresh(r.Context(), userID); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to refresh insights")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MarkRead godoc
// @Summary Mark an insight as read
// @Description Mark a single insight as read
// @Tags insights
// @Security BearerAuth
// @Param id path string true "Insight ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /insights/{id}/read [post]
func (h *InsightHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.service.MarkRead(r.Context(), id, userID); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to mark insight as read")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
