package service

import (
	"errors"
	"math"
	"time"

	"github.com/moneywise/backend/internal/model"
	"github.com/moneywise/backend/pkg/datetime"
	"github.com/shopspring/decimal"
)

var ErrInvalidGoalDate = errors.New("target date must be in the future")

// Feasibility score bands, keyed on the required daily contribution.
// Business constants carried over from the product's scoring table.
var feasibilityBands = []struct {
	maxDaily decimal.Decimal
	score    int
}{
	{decimal.NewFromInt(10000), 90},
	{decimal.NewFromInt(25000), 75},
	{decimal.NewFromInt(50000), 60},
	{decimal.NewFromInt(100000), 40},
}

const minFeasibilityScore = 20

var monthlyIncomeAdviceThreshold = decimal.NewFromInt(500000)

// ProjectGoal computes the contribution plan for reaching targetAmount
// from currentAmount by targetDate. totalMonths uses the calendar-month
// difference rather than exact day counts, so projections near month
// boundaries are approximate.
func ProjectGoal(targetAmount, currentAmount decimal.Decimal, targetDate, now time.Time) (*model.GoalProjection, error) {
	if !targetDate.After(now) {
		return nil, ErrInvalidGoalDate
	}

	remaining := targetAmount.Sub(currentAmount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	totalDays := int(math.Ceil(targetDate.Sub(now).Hours() / 24))
	if totalDays < 1 {
		totalDays = 1
	}
	totalWeeks := (totalDays + 6) / 7
	totalMonths := datetime.MonthsBetween(now, targetDate)
	if totalMonths < 1 {
		totalMonths = 1
	}

	daily := remaining.Div(decimal.NewFromInt(int64(totalDays)))
	weekly := remaining.Div(decimal.NewFromInt(int64(totalWeeks)))
	monthly := remaining.Div(decimal.NewFromInt(int64(totalMonths)))

	return &model.GoalProjection{
		RemainingAmount:  remaining,
		TotalDays:        totalDays,
		TotalWeeks:       totalWeeks,
		TotalMonths:      totalMonths,
		DailyAmount:      daily,
		WeeklyAmount:     weekly,
		MonthlyAmount:    monthly,
		FeasibilityScore: feasibilityScore(daily),
		Recommendations:  savingsRecommendations(daily, monthly),
	}, nil
}

func feasibilityScore(dailyAmount decimal.Decimal) int {
	for _, band := range feasibilityBands {
		if dailyAmount.LessThanOrEqual(band.maxDaily) {
			return band.score
		}
	}
	return minFeasibilityScore
}

func savingsRecommendations(dailyAmount, monthlyAmount decimal.Decimal) []string {
	var recommendations []string

	switch {
	case dailyAmount.LessThanOrEqual(feasibilityBands[0].maxDaily):
		recommendations = append(recommendations, "Your target is very realistic. Saving consistently is the key to success.")
	case dailyAmount.LessThanOrEqual(feasibilityBands[1].maxDaily):
		recommendations = append(recommendations, "Your target is fairly challenging. Consider cutting back on non-essential spending.")
	default:
		recommendations = append(recommendations, "Your target is very ambitious. Consider extending the deadline or lowering the target amount.")
	}

	if monthlyAmount.GreaterThan(monthlyIncomeAdviceThreshold) {
		recommendations = append(recommendations, "Consider finding an additional source of income.")
	}

	recommendations = append(recommendations,
		"Use the app to track your saving progress daily.",
		"Set up an automatic transfer to your savings account.",
	)
	return recommendations
}

// GoalProgress derives the display fields for a savings goal. A goal
// that has ever reached 100% stays completed even if its current
// amount is later edited down.
func GoalProgress(goal model.SavingsGoal, now time.Time) model.SavingsGoalWithProgress {
	progress := 0.0
	if goal.TargetAmount.IsPositive() {
		progress, _ = goal.CurrentAmount.Div(goal.TargetAmount).Mul(decimal.NewFromInt(100)).Float64()
	}

	remaining := goal.TargetAmount.Sub(goal.CurrentAmount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	daysRemaining := int(math.Ceil(goal.TargetDate.Sub(now).Hours() / 24))
	isCompleted := goal.IsCompleted || progress >= 100
	goal.IsCompleted = isCompleted

	return model.SavingsGoalWithProgress{
		SavingsGoal:        goal,
		ProgressPercentage: progress,
		RemainingAmount:    remaining,
		DaysRemaining:      daysRemaining,
		IsOverdue:          now.After(goal.TargetDate) && !isCompleted,
		IsNearDeadline:     daysRemaining > 0 && daysRemaining <= 30,
	}
}

// AnalyzeGoalPacing reports whether a goal's saving pace matches the
// time left. The on-track rule compares progress against the share of
// total time already consumed, assuming a twelve-month horizon; it is
// a heuristic carried over from the product, not exact amortization.
func AnalyzeGoalPacing(goal model.SavingsGoal, now time.Time) model.GoalSavingsAnalysis {
	progress := 0.0
	if goal.TargetAmount.IsPositive() {
		progress, _ = goal.CurrentAmount.Div(goal.TargetAmount).Mul(decimal.NewFromInt(100)).Float64()
	}

	remaining := goal.TargetAmount.Sub(goal.CurrentAmount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	monthsRemaining := datetime.MonthsBetween(now, goal.TargetDate)
	if monthsRemaining < 1 {
		monthsRemaining = 1
	}

	return model.GoalSavingsAnalysis{
		GoalID:                 goal.ID,
		GoalName:               goal.Name,
		ProgressPercentage:     progress,
		MonthsRemaining:        monthsRemaining,
		RequiredMonthlySavings: remaining.Div(decimal.NewFromInt(int64(monthsRemaining))),
		IsOnTrack:              progress >= 100-(float64(monthsRemaining)/12)*100,
	}
}
