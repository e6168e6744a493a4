package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"github.com/moneywise/backend/internal/model"
	"github.com/moneywise/backend/internal/repository"
	"github.com/moneywise/backend/pkg/datetime"
)

const exportLimit = 10000

// ExportService renders transactions and reports into downloadable
// formats.
type ExportService struct {
	transactionRepo TransactionRepositoryInterface
	now             func() time.Time
}

// NewExportService creates a new ExportService with the given repository.
func NewExportService(transactionRepo TransactionRepositoryInterface) *ExportService {
	return &ExportService{transactionRepo: transactionRepo, now: time.Now}
}

// ExportTransactionsCSV exports transactions to CSV format.
// Applies the given filters and returns a CSV byte buffer.
func (s *ExportService) ExportTransactionsCSV(ctx context.Context, userID uuid.UUID, filters repository.TransactionFilters) ([]byte, error) {
	filters.Limit = exportLimit
	filters.Offset = 0

	transactions, err := s.transactionRepo.List(ctx, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("fetching transactions for export: %w", err)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"Date", "Type", "Category", "Amount", "Description"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}

	for _, tx := range transactions {
		row := []string{
			tx.Date.Format(datetime.DateFormat),
			string(tx.Type),
			tx.CategoryName,
			tx.Amount.String(),
			tx.Description,
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("writing CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV writer: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportReportPDF renders a persisted report as a PDF document.
func (s *ExportService) ExportReportPDF(report *model.Report, data *model.ReportData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 24)
	pdf.SetTextColor(33, 37, 41)
	pdf.CellFormat(0, 12, "MoneyWise", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 14)
	pdf.SetTextColor(108, 117, 125)
	pdf.CellFormat(0, 8, report.Title, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("%s to %s",
		report.PeriodStart.Format(datetime.DateFormat),
		report.PeriodEnd.Format(datetime.DateFormat)), "", 1, "C", false, 0, "")

	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(33, 37, 41)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.Ln(5)

	colWidth := float64(85)
	summaryRow := func(label, value string, r, g, b int) {
		pdf.SetFont("Arial", "", 11)
		pdf.SetTextColor(108, 117, 125)
		pdf.CellFormat(colWidth, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(r, g, b)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(colWidth, 7, value, "", 1, "R", false, 0, "")
	}

	summaryRow("Total Income", data.Summary.TotalIncome.StringFixed(2), 40, 167, 69)
	summaryRow("Total Expenses", data.Summary.TotalExpense.StringFixed(2), 220, 53, 69)
	summaryRow("Net Balance", data.Summary.NetBalance.StringFixed(2), 33, 37, 41)
	summaryRow("Savings Rate", fmt.Sprintf("%.1f%%", data.Insights.SavingsRate), 33, 37, 41)
	summaryRow("Transactions", fmt.Sprintf("%d", data.Summary.TransactionCount), 33, 37, 41)

	pdf.Ln(10)

	if len(data.CategoryBreakdown) > 0 {
		pdf.SetFont("Arial", "B", 14)
		pdf.SetTextColor(33, 37, 41)
		pdf.CellFormat(0, 8, "Spending by Category", "", 1, "L", false, 0, "")

		pdf.SetDrawColor(200, 200, 200)
		pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
		pdf.Ln(5)

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(248, 249, 250)
		pdf.SetTextColor(33, 37, 41)
		pdf.CellFormat(80, 8, "Category", "1", 0, "L", true, 0, "")
		pdf.CellFormat(45, 8, "Amount", "1", 0, "R", true, 0, "")
		pdf.CellFormat(45, 8, "Transactions", "1", 1, "R", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, cat := range data.CategoryBreakdown {
			pdf.SetTextColor(33, 37, 41)
			pdf.CellFormat(80, 7, cat.Category, "1", 0, "L", false, 0, "")
			pdf.CellFormat(45, 7, cat.Amount.StringFixed(2), "1", 0, "R", false, 0, "")
			pdf.CellFormat(45, 7, fmt.Sprintf("%d", cat.Count), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(10)
	}

	if len(data.SavingsAnalysis) > 0 {
		pdf.SetFont("Arial", "B", 14)
		pdf.SetTextColor(33, 37, 41)
		pdf.CellFormat(0, 8, "Savings Goals", "", 1, "L", false, 0, "")

		pdf.SetDrawColor(200, 200, 200)
		pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
		pdf.Ln(5)

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(248, 249, 250)
		pdf.CellFormat(70, 8, "Goal", "1", 0, "L", true, 0, "")
		pdf.CellFormat(35, 8, "Progress", "1", 0, "R", true, 0, "")
		pdf.CellFormat(40, 8, "Monthly Needed", "1", 0, "R", true, 0, "")
		pdf.CellFormat(25, 8, "On Track", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, goal := range data.SavingsAnalysis {
			onTrack := "No"
			if goal.IsOnTrack {
				onTrack = "Yes"
			}
			pdf.SetTextColor(33, 37, 41)
			pdf.CellFormat(70, 7, goal.GoalName, "1", 0, "L", false, 0, "")
			pdf.CellFormat(35, 7, fmt.Sprintf("%.1f%%", goal.ProgressPercentage), "1", 0, "R", false, 0, "")
			pdf.CellFormat(40, 7, goal.RequiredMonthlySavings.StringFixed(2), "1", 0, "R", false, 0, "")
			pdf.CellFormat(25, 7, onTrack, "1", 1, "C", false, 0, "")
		}
	}

	pdf.SetY(-25)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(108, 117, 125)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated by MoneyWise on %s", s.now().Format("January 2, 2006")), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("generating PDF: %w", err)
	}

	return buf.Bytes(), nil
}
