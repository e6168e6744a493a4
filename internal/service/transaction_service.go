// Package service implements the business logic layer for the MoneyWise application.
// It contains use cases that orchestrate domain operations and enforce business rules.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moneywise/backend/internal/model"
	"github.com/moneywise/backend/internal/repository"
	"github.com/moneywise/backend/pkg/datetime"
)

var (
	// ErrNotOwner is returned when a user attempts to access a resource
	// owned by another user.
	ErrNotOwner = errors.New("resource does not belong to user")
	// ErrCategoryTypeMismatch is returned when a transaction's type does not
	// match the type of its category.
	ErrCategoryTypeMismatch = errors.New("transaction type does not match category type")
	// ErrInvalidRange is returned when a date range ends before it starts.
	ErrInvalidRange = errors.New("end date must not be before start date")
	// ErrInvalidAmount is returned for zero or negative amounts.
	ErrInvalidAmount = errors.New("amount must be positive")
)

// TransactionRepositoryInterface defines the contract for transaction data access.
// Implementations must be safe for concurrent use.
type TransactionRepositoryInterface interface {
	Create(ctx context.Context, tx *model.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.TransactionWithCategory, error)
	List(ctx context.Context, userID uuid.UUID, filters repository.TransactionFilters) ([]model.TransactionWithCategory, error)
	ListForPeriod(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]model.TransactionWithCategory, error)
	Update(ctx context.Context, tx *model.Transaction) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// TransactionService handles business logic for financial transactions.
// It enforces validation rules and coordinates repository operations.
type TransactionService struct {
	repo       TransactionRepositoryInterface
	categories CategoryRepositoryInterface
}

// NewTransactionService creates a new TransactionService with the given repositories.
func NewTransactionService(repo TransactionRepositoryInterface, categories CategoryRepositoryInterface) *TransactionService {
	return &TransactionService{repo: repo, categories: categories}
}

type CreateTransactionInput struct {
	Type        model.TransactionType `json:"type"`
	Amount      decimal.Decimal       `json:"amount"`
	CategoryID  uuid.UUID             `json:"categoryId"`
	Description string                `json:"description"`
	Date        datetime.Date         `json:"date"`
}

type UpdateTransactionInput struct {
	Type        model.TransactionType `json:"type"`
	Amount      decimal.Decimal       `json:"amount"`
	CategoryID  uuid.UUID             `json:"categoryId"`
	Description string                `json:"description"`
	Date        datetime.Date         `json:"date"`
}

type ListTransactionsInput struct {
	Type       *string    `json:"type"`
	CategoryID *uuid.UUID `json:"categoryId"`
	StartDate  *time.Time `json:"startDate"`
	EndDate    *time.Time `json:"endDate"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
}

// validateCategory checks that the category exists, belongs to the user and
// matches the transaction type.
func (s *TransactionService) validateCategory(ctx context.Context, userID, categoryID uuid.UUID, txType model.TransactionType) error {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("fetching category %s: %w", categoryID, err)
	}
	if category.UserID != userID {
		return ErrNotOwner
	}
	if category.Type != txType {
		return ErrCategoryTypeMismatch
	}
	return nil
}

// Create validates and persists a new transaction for the given user.
func (s *TransactionService) Create(ctx context.Context, userID uuid.UUID, input CreateTransactionInput) (*model.Transaction, error) {
	if !input.Type.Valid() {
		return nil, fmt.Errorf("invalid transaction type: %s", input.Type)
	}
	if !input.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if err := s.validateCategory(ctx, userID, input.CategoryID, input.Type); err != nil {
		return nil, err
	}

	tx := &model.Transaction{
		UserID:      userID,
		Type:        input.Type,
		Amount:      input.Amount,
		CategoryID:  input.CategoryID,
		Description: input.Description,
		Date:        input.Date.Time,
	}

	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("creating transaction: %w", err)
	}

	return tx, nil
}

// Get retrieves a transaction by its ID.
// Returns ErrTransactionNotFound if the transaction does not exist.
func (s *TransactionService) Get(ctx context.Context, id, userID uuid.UUID) (*model.TransactionWithCategory, error) {
	tx, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting transaction %s: %w", id, err)
	}
	if tx.UserID != userID {
		return nil, repository.ErrTransactionNotFound
	}
	return tx, nil
}

// List retrieves transactions for a user with optional filters and pagination.
// PageSize is capped at 100 and defaults to 20.
func (s *TransactionService) List(ctx context.Context, userID uuid.UUID, input ListTransactionsInput) ([]model.TransactionWithCategory, error) {
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, ErrInvalidRange
	}
	if input.PageSize <= 0 {
		input.PageSize = 20
	}
	if input.PageSize > 100 {
		input.PageSize = 100
	}

	filters := repository.TransactionFilters{
		Type:       input.Type,
		CategoryID: input.CategoryID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Limit:      input.PageSize,
		Offset:     input.Page * input.PageSize,
	}

	txs, err := s.repo.List(ctx, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("listing transactions for user %s: %w", userID, err)
	}
	return txs, nil
}

// Update modifies an existing transaction.
// Returns ErrTransactionNotFound if the transaction does not exist or belongs to another user.
func (s *TransactionService) Update(ctx context.Context, id uuid.UUID, userID uuid.UUID, input UpdateTransactionInput) (*model.Transaction, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching transaction %s for update: %w", id, err)
	}

	if existing.UserID != userID {
		return nil, repository.ErrTransactionNotFound
	}

	if !input.Type.Valid() {
		return nil, fmt.Errorf("invalid transaction type: %s", input.Type)
	}
	if !input.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if err := s.validateCategory(ctx, userID, input.CategoryID, input.Type); err != nil {
		return nil, err
	}

	tx := existing.Transaction
	tx.Type = input.Type
	tx.Amount = input.Amount
	tx.CategoryID = input.CategoryID
	tx.Description = input.Description
	tx.Date = input.Date.Time

	if err := s.repo.Update(ctx, &tx); err != nil {
		return nil, fmt.Errorf("updating transaction %s: %w", id, err)
	}

	return &tx, nil
}

// Delete removes a transaction by ID for the given user.
// Returns ErrTransactionNotFound if the transaction does not exist or belongs to another user.
func (s *TransactionService) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("deleting transaction %s: %w", id, err)
	}
	return nil
}

// Summary computes income, expense and net totals over an inclusive date range.
func (s *TransactionService) Summary(ctx context.Context, userID uuid.UUID, start, end time.Time) (*model.Summary, error) {
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	txs, err := s.repo.ListForPeriod(ctx, userID, datetime.StartOfDay(start), datetime.EndOfDay(end))
	if err != nil {
		return nil, fmt.Errorf("listing transactions for summary: %w", err)
	}

	summary := Summarize(txs, start, end)
	return &summary, nil
}
