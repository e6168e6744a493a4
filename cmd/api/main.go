package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/moneywise/backend/internal/config"
	"github.com/moneywise/backend/internal/handler"
	"github.com/moneywise/backend/internal/logger"
	"github.com/moneywise/backend/internal/repository"
	"github.com/moneywise/backend/internal/scheduler"
	"github.com/moneywise/backend/internal/service"
)

// @title MoneyWise API
// @version 1.0
// @description Personal finance API for tracking transactions, budgets, savings goals and reports.

// @contact.name API Support
// @contact.email support@moneywise.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load .env if present; real env vars win.
	_ = godotenv.Load()

	cfg := config.Load()
	slogger := logger.Logger()

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := repository.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)
	savingsRepo := repository.NewSavingsGoalRepository(db)
	reportRepo := repository.NewReportRepository(db)
	insightRepo := repository.NewInsightRepository(db)

	// Initialize services
	categoryService := service.NewCategoryService(categoryRepo)
	userService := service.NewUserService(userRepo, categoryService)
	transactionService := service.NewTransactionService(transactionRepo, categoryRepo)
	budgetService := service.NewBudgetService(budgetRepo, transactionRepo, categoryRepo)
	savingsService := service.NewSavingsGoalService(savingsRepo)
	dashboardService := service.NewDashboardService(transactionRepo, budgetService, savingsService)
	reportService := service.NewReportService(reportRepo, transactionRepo, budgetService, savingsRepo)
	insightGenerator := service.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.InsightsTimeout)
	insightService := service.NewInsightService(insightRepo, transactionRepo, budgetService, savingsRepo, insightGenerator)
	exportService := service.NewExportService(transactionRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	savingsHandler := handler.NewSavingsGoalHandler(savingsService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	reportHandler := handler.NewReportHandler(reportService)
	insightHandler := handler.NewInsightHandler(insightService)
	exportHandler := handler.NewExportHandler(exportService, reportService)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	// CORS - allow frontend origin from env or default
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Public routes
	r.Post("/api/auth/register", authHandler.Register)
	r.Post("/api/auth/login", authHandler.Login)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(handler.AuthMiddleware)

		// Current user
		r.Get("/api/auth/me", authHandler.Me)
		r.Put("/api/auth/settings", authHandler.UpdateSettings)

		// Categories
		r.Get("/api/categories", categoryHandler.List)
		r.Post("/api/categories", categoryHandler.Create)
		r.Put("/api/categories/{id}", categoryHandler.Update)
		r.Delete("/api/categories/{id}", categoryHandler.Delete)

		// Transactions
		r.Get("/api/transactions", transactionHandler.List)
		r.Post("/api/transactions", transactionHandler.Create)
		r.Get("/api/transactions/summary", transactionHandler.Summary)
		r.Get("/api/transactions/export/csv", exportHandler.ExportTransactionsCSV)
		r.Get("/api/transactions/{id}", transactionHandler.Get)
		r.Put("/api/transactions/{id}", transactionHandler.Update)
		r.Delete("/api/transactions/{id}", transactionHandler.Delete)

		// Budgets
		r.Get("/api/budgets", budgetHandler.List)
		r.Post("/api/budgets", budgetHandler.Create)
		r.Get("/api/budgets/{id}", budgetHandler.Get)
		r.Put("/api/budgets/{id}", budgetHandler.Update)
		r.Delete("/api/budgets/{id}", budgetHandler.Delete)

		// Savings Goals
		r.Get("/api/savings-goals", savingsHandler.List)
		r.Post("/api/savings-goals", savingsHandler.Create)
		r.Post("/api/savings-goals/simulate", savingsHandler.Simulate)
		r.Get("/api/savings-goals/{id}", savingsHandler.Get)
		r.Put("/api/savings-goals/{id}", savingsHandler.Update)
		r.Delete("/api/savings-goals/{id}", savingsHandler.Delete)
		r.Get("/api/savings-goals/{id}/projection", savingsHandler.Project)
		r.Post("/api/savings-goals/{id}/contribute", savingsHandler.Contribute)

		// Dashboard
		r.Get("/api/dashboard", dashboardHandler.GetDashboard)

		// Reports
		r.Get("/api/reports", reportHandler.List)
		r.Post("/api/reports", reportHandler.Generate)
		r.Get("/api/reports/{id}", reportHandler.Get)
		r.Delete("/api/reports/{id}", reportHandler.Delete)
		r.Get("/api/reports/{id}/export/pdf", exportHandler.ExportReportPDF)

		// Insights
		r.Get("/api/insights", insightHandler.GetInsights)
		r.Post("/api/insights/refresh", insightHandler.Refresh)
		r.Post("/api/insights/{id}/read", insightHandler.MarkRead)
	})

	// Periodic insight refresh
	var insightScheduler *scheduler.Scheduler
	if cfg.InsightsEnabled {
		schedCfg := scheduler.Config{
			Schedule: cfg.InsightsSchedule,
			Timeout:  cfg.InsightsTimeout,
			Enabled:  cfg.InsightsEnabled,
		}
		insightScheduler = scheduler.New(schedCfg, insightService, slogger)
		if err := insightScheduler.Start(); err != nil {
			slogger.Error("Failed to start insight scheduler", slog.String("error", err.Error()))
		} else {
			slogger.Info("Insight scheduler started",
				slog.String("schedule", cfg.InsightsSchedule),
				slog.Duration("timeout", cfg.InsightsTimeout),
			)
		}
	}

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		slogger.Info("Shutting down server...")

		// Stop scheduler first
		if insightScheduler != nil {
			ctx := insightScheduler.Stop()
			<-ctx.Done()
			slogger.Info("Scheduler stopped")
		}

		// Shutdown HTTP server
		if err := server.Shutdown(context.Background()); err != nil {
			slogger.Error("Server shutdown error", slog.String("error", err.Error()))
		}
	}()

	log.Printf("Server starting on port %s", port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("Server failed: %v", err)
	}
}
