package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/moneywise/backend/internal/repository"
	"github.com/moneywise/backend/internal/service"
)

// ExportHandler handles data export endpoints.
type ExportHandler struct {
	exportService *service.ExportService
	reportService ReportServiceInterface
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService *service.ExportService, reportService ReportServiceInterface) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		reportService: reportService,
	}
}

// ExportTransactionsCSV godoc
// @Summary Export transactions to CSV
// @Description Export transactions to CSV format with optional filters
// @Tags export
// @Produce text/csv
// @Security BearerAuth
// @Param type query string false "Transaction type (income or expense)"
// @Param categoryId query string false "Filter by category ID"
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Success 200 {file} file "CSV file"
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions/export/csv [get]
func (h *ExportHandler) ExportTransactionsCSV(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	filters := repository.TransactionFilters{}

	if t := r.URL.Query().Get("type"); t != "" {
		filters.Type = parseTransactionType(t)
	}
	if c := r.URL.Query().Get("categoryId"); c != "" {
		if id, err := uuid.Parse(c); err == nil {
			filters.CategoryID = &id
		}
	}
	if sd := r.URL.Query().Get("startDate"); sd != "" {
		if t, err := time.Parse("2006-01-02", sd); err == nil {
			filters.StartDate = &t
		}
	}
	if ed := r.URL.Query().Get("endDate"); ed != "" {
		if t, err := time.Parse("2006-01-02", ed); err == nil {
			filters.EndDate = &t
		}
	}

	csvData, err := h.exportService.ExportTransactionsCSV(r.Context(), userID, filters)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to export transactions")
		return
	}

	filename := fmt.Sprintf("transactions_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(csvData)))
	w.Write(csvData)
}

// ExportReportPDF godoc
// @Summary Export a report to PDF
// @Description Render a saved report as a downloadable PDF document
// @Tags export
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {file} file "PDF file"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports/{id}/export/pdf [get]
func (h *ExportHandler) ExportReportPDF(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	report, err := h.reportService.Get(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			respondError(w, http.StatusNotFound, "report not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to get report")
		return
	}

	data, err := h.reportService.Data(report)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to read report data")
		return
	}

	pdfData, err := h.exportService.ExportReportPDF(report, data)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate PDF")
		return
	}

	filename := fmt.Sprintf("moneywise_report_%s.pdf", report.PeriodStart.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfData)))
	w.Write(pdfData)
}
