package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/moneywise/backend/internal/model"
)

// DashboardServiceInterface for handler testing
type DashboardServiceInterface interface {
	GetDashboard(ctx context.Context, userID uuid.UUID) (*model.DashboardData, error)
}

type DashboardHandler struct {
	service DashboardServiceInterface
}

func NewDashboardHandler(service DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetDashboard godoc
// @Summary Get dashboard data
// @Description Get aggregated financial data for the current month with trends
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.DashboardData
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	data, err := h.service.GetDashboard(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get dashboard")
		return
	}

	respondJSON(w, http.StatusOK, data)
}
