package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/moneywise/backend/internal/model"
	"github.com/moneywise/backend/pkg/datetime"
)

// insightMaxAge is how long generated insights stay fresh. Requests
// inside this window return the stored set instead of regenerating.
const insightMaxAge = 4 * time.Hour

// InsightRepositoryInterface defines the contract for insight persistence.
type InsightRepositoryInterface interface {
	Create(ctx context.Context, insight *model.AIInsight) error
	List(ctx context.Context, userID uuid.UUID) ([]model.AIInsight, error)
	LatestCreatedAt(ctx context.Context, userID uuid.UUID) (time.Time, error)
	MarkRead(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	DeleteForUser(ctx context.Context, userID uuid.UUID) error
	ListUserIDsWithTransactions(ctx context.Context) ([]uuid.UUID, error)
}

// InsightGenerator produces insight texts from a financial snapshot.
type InsightGenerator interface {
	Generate(ctx context.Context, data *model.ReportData) ([]model.AIInsight, error)
}

// InsightService generates and serves short financial insights derived
// from a user's recent activity.
type InsightService struct {
	repo            InsightRepositoryInterface
	transactionRepo TransactionRepositoryInterface
	budgets         DashboardBudgetService
	savingsRepo     ReportSavingsRepo
	generator       InsightGenerator
	now             func() time.Time
}

// NewInsightService creates a new InsightService with the given dependencies.
func NewInsightService(
	repo InsightRepositoryInterface,
	transactionRepo TransactionRepositoryInterface,
	budgets DashboardBudgetService,
	savingsRepo ReportSavingsRepo,
	generator InsightGenerator,
) *InsightService {
	return &InsightService{
		repo:            repo,
		transactionRepo: transactionRepo,
		budgets:         budgets,
		savingsRepo:     savingsRepo,
		generator:       generator,
		now:             time.Now,
	}
}

// GetInsights returns the user's current insights, regenerating them
// when the stored set is older than insightMaxAge.
func (s *InsightService) GetInsights(ctx context.Context, userID uuid.UUID) ([]model.AIInsight, error) {
	latest, err := s.repo.LatestCreatedAt(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("checking insight freshness for user %s: %w", userID, err)
	}

	if !latest.IsZero() && s.now().Sub(latest) < insightMaxAge {
		return s.list(ctx, userID)
	}

	if err := s.Refresh(ctx, userID); err != nil {
		return nil, err
	}
	return s.list(ctx, userID)
}

func (s *InsightService) list(ctx context.Context, userID uuid.UUID) ([]model.AIInsight, error) {
	insights, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing insights for user %s: %w", userID, err)
	}
	if insights == nil {
		insights = []model.AIInsight{}
	}
	return insights, nil
}

// Refresh discards the user's stored insights and generates a new set
// from the last 30 days of activity.
func (s *InsightService) Refresh(ctx context.Context, userID uuid.UUID) error {
	now := s.now()
	start := datetime.StartOfDay(now.AddDate(0, 0, -30))

	transactions, err := s.transactionRepo.ListForPeriod(ctx, userID, start, datetime.EndOfDay(now))
	if err != nil {
		return fmt.Errorf("listing transactions for insights: %w", err)
	}

	budgetUsage, err := s.budgets.ListWithUsage(ctx, userID)
	if err != nil {
		return fmt.Errorf("getting budget usage for insights: %w", err)
	}

	goals, err := s.savingsRepo.List(ctx, userID)
	if err != nil {
		return fmt.Errorf("listing savings goals for insights: %w", err)
	}

	summary := Summarize(transactions, start, now)
	categories := BucketByCategory(transactions, 0)
	analysis := make([]model.GoalSavingsAnalysis, len(goals))
	for i, goal := range goals {
		analysis[i] = AnalyzeGoalPacing(goal, now)
	}

	data := &model.ReportData{
		Summary:           summary,
		MonthlyBreakdown:  BucketTransactions(transactions, BucketByMonth),
		CategoryBreakdown: categories,
		BudgetUsage:       budgetUsage,
		SavingsAnalysis:   analysis,
		Insights:          buildInsights(summary, categories, budgetUsage, analysis),
	}

	insights, err := s.generator.Generate(ctx, data)
	if err != nil {
		return fmt.Errorf("generating insights for user %s: %w", userID, err)
	}

	if err := s.repo.DeleteForUser(ctx, userID); err != nil {
		return fmt.Errorf("clearing stale insights for user %s: %w", userID, err)
	}

	for i := range insights {
		insights[i].UserID = userID
		if err := s.repo.Create(ctx, &insights[i]); err != nil {
			return fmt.Errorf("storing insight for user %s: %w", userID, err)
		}
	}
	return nil
}

// RefreshAll regenerates insights for every user with transactions.
// It is invoked by the scheduler.
func (s *InsightService) RefreshAll(ctx context.Context) error {
	userIDs, err := s.repo.ListUserIDsWithTransactions(ctx)
	if err != nil {
		return fmt.Errorf("listing users for insight refresh: %w", err)
	}

	for _, userID := range userIDs {
		if err := s.Refresh(ctx, userID); err != nil {
			return fmt.Errorf("refreshing insights for user %s: %w", userID, err)
		}
	}
	return nil
}

// MarkRead flags an insight as read.
func (s *InsightService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.repo.MarkRead(ctx, id, userID); err != nil {
		return fmt.Errorf("marking insight %s read: %w", id, err)
	}
	return nil
}

const openAIEndpoint = "https://api.openai.com/v1/chat/completions"

// openAIGenerator produces insights through the OpenAI chat completions
// API.
type openAIGenerator struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewOpenAIGenerator creates an InsightGenerator backed by OpenAI.
func NewOpenAIGenerator(apiKey string, timeout time.Duration) InsightGenerator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &openAIGenerator{
		apiKey:   apiKey,
		endpoint: openAIEndpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type openAIRequest struct {
	Model    string          `json:"model"`
	Messages []openAIMessage `json:"messages"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const insightPrompt = `You are a personal finance assistant. Given a JSON snapshot of a user's
last 30 days (income, expenses, category breakdown, budget usage and savings goal pacing),
produce 2 to 4 short insights.

ALWAYS respond with a valid JSON array in this exact format:
[{"type": "spending" | "saving" | "budget" | "general", "title": "short title", "content": "one or two sentences", "priority": "high" | "medium" | "low", "actionable": true | false}]`

// Generate asks the model for insights over the snapshot. Falls back to
// an error when the key is missing so callers can decide how to degrade.
func (g *openAIGenerator) Generate(ctx context.Context, data *model.ReportData) ([]model.AIInsight, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("insight generation requires an OpenAI API key")
	}

	snapshot, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding financial snapshot: %w", err)
	}

	reqBody := openAIRequest{
		Model: "gpt-4o-mini",
		Messages: []openAIMessage{
			{Role: "system", Content: insightPrompt},
			{Role: "user", Content: string(snapshot)},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling OpenAI request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("creating OpenAI request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling OpenAI API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading OpenAI response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("OpenAI API returned status %d: %s", resp.StatusCode, body)
	}

	var apiResp openAIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parsing OpenAI response: %w", err)
	}
	if len(apiResp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	var parsed []struct {
		Type       string                `json:"type"`
		Title      string                `json:"title"`
		Content    string                `json:"content"`
		Priority   model.InsightPriority `json:"priority"`
		Actionable bool                  `json:"actionable"`
	}
	if err := json.Unmarshal([]byte(apiResp.Choices[0].Message.Content), &parsed); err != nil {
		return nil, fmt.Errorf("parsing insights from model output: %w", err)
	}

	insights := make([]model.AIInsight, len(parsed))
	for i, p := range parsed {
		priority := p.Priority
		if !priority.Valid() {
			priority = model.InsightPriorityMedium
		}
		insights[i] = model.AIInsight{
			Type:       p.Type,
			Title:      p.Title,
			Content:    p.Content,
			Priority:   priority,
			Actionable: p.Actionable,
		}
	}
	return insights, nil
}
