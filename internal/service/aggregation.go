package service

import (
	"sort"
	"time"

	"github.com/moneywise/backend/internal/model"
	"github.com/moneywise/backend/pkg/datetime"
	"github.com/shopspring/decimal"
)

// BucketBy selects the time granularity for BucketTransactions.
type BucketBy string

const (
	BucketByMonth BucketBy = "month"
	BucketByWeek  BucketBy = "week"
)

// otherCategoryColor is used for transactions whose category is
// missing or unnamed.
const otherCategoryColor = "#8884d8"

// BucketTransactions groups transactions into time buckets and sums
// income, expense and net per bucket. Month keys are "YYYY-MM"; week
// keys are the Sunday-aligned start of the week as "YYYY-MM-DD".
// Buckets come back sorted by key ascending, which is chronological
// because the keys are zero-padded.
func BucketTransactions(transactions []model.TransactionWithCategory, by BucketBy) []model.PeriodBucket {
	buckets := make(map[string]*model.PeriodBucket)

	for _, tx := range transactions {
		key := bucketKey(tx.Date, by)
		b, ok := buckets[key]
		if !ok {
			b = &model.PeriodBucket{Period: key}
			buckets[key] = b
		}
		switch tx.Type {
		case model.TransactionTypeIncome:
			b.Income = b.Income.Add(tx.Amount)
		case model.TransactionTypeExpense:
			b.Expense = b.Expense.Add(tx.Amount)
		}
		b.Net = b.Income.Sub(b.Expense)
	}

	result := make([]model.PeriodBucket, 0, len(buckets))
	for _, b := range buckets {
		result = append(result, *b)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Period < result[j].Period
	})
	return result
}

func bucketKey(date time.Time, by BucketBy) string {
	if by == BucketByWeek {
		return datetime.StartOfWeek(date).Format(datetime.DateFormat)
	}
	return date.Format("2006-01")
}

// BucketByCategory sums expense transactions per category, sorted by
// amount descending. Transactions without a category name fall into an
// "Other" bucket. A positive limit truncates the result to the top N
// categories; zero or negative means unbounded.
func BucketByCategory(transactions []model.TransactionWithCategory, limit int) []model.CategoryBucket {
	buckets := make(map[string]*model.CategoryBucket)

	for _, tx := range transactions {
		if tx.Type != model.TransactionTypeExpense {
			continue
		}
		name := tx.CategoryName
		color := tx.CategoryColor
		if name == "" {
			name = "Other"
			color = otherCategoryColor
		}
		b, ok := buckets[name]
		if !ok {
			b = &model.CategoryBucket{Category: name, Color: color}
			buckets[name] = b
		}
		b.Amount = b.Amount.Add(tx.Amount)
		b.Count++
	}

	result := make([]model.CategoryBucket, 0, len(buckets))
	for _, b := range buckets {
		result = append(result, *b)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Amount.Equal(result[j].Amount) {
			return result[i].Amount.GreaterThan(result[j].Amount)
		}
		return result[i].Category < result[j].Category
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// Summarize totals the transactions that fall inside the inclusive
// calendar-date range.
func Summarize(transactions []model.TransactionWithCategory, startDate, endDate time.Time) model.Summary {
	start := datetime.StartOfDay(startDate)
	end := datetime.EndOfDay(endDate)

	var summary model.Summary
	for _, tx := range transactions {
		if tx.Date.Before(start) || tx.Date.After(end) {
			continue
		}
		switch tx.Type {
		case model.TransactionTypeIncome:
			summary.TotalIncome = summary.TotalIncome.Add(tx.Amount)
		case model.TransactionTypeExpense:
			summary.TotalExpense = summary.TotalExpense.Add(tx.Amount)
		}
		summary.TransactionCount++
	}
	summary.NetBalance = summary.TotalIncome.Sub(summary.TotalExpense)
	return summary
}

// SavingsRate returns net balance as a percentage of income. Zero
// income yields 0 rather than a division error.
func SavingsRate(totalIncome, netBalance decimal.Decimal) float64 {
	if totalIncome.IsZero() {
		return 0
	}
	rate, _ := netBalance.Div(totalIncome).Mul(decimal.NewFromInt(100)).Float64()
	return rate
}
