package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/moneywise/backend/internal/model"
)

var ErrInvalidCategoryType = errors.New("category type must be income or expense")

type CategoryRepositoryInterface interface {
	Create(ctx context.Context, category *model.Category) error
	CreateBatch(ctx context.Context, categories []model.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Category, error)
	CountForUser(ctx context.Context, userID uuid.UUID) (int, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type CategoryService struct {
	repo CategoryRepositoryInterface
}

func NewCategoryService(repo CategoryRepositoryInterface) *CategoryService {
	return &CategoryService{repo: repo}
}

// EnsureDefaultCategories seeds the default category set for a user.
// It is idempotent: a user that already has categories is left alone.
func (s *CategoryService) EnsureDefaultCategories(ctx context.Context, userID uuid.UUID) error {
	count, err := s.repo.CountForUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("counting categories for user %s: %w", userID, err)
	}
	if count > 0 {
		return nil
	}

	categories := make([]model.Category, 0, len(model.DefaultCategories))
	for _, d := range model.DefaultCategories {
		categories = append(categories, model.Category{
			UserID:    userID,
			Name:      d.Name,
			Type:      d.Type,
			Icon:      d.Icon,
			Color:     d.Color,
			IsDefault: true,
		})
	}

	if err := s.repo.CreateBatch(ctx, categories); err != nil {
		return fmt.Errorf("seeding default categories for user %s: %w", userID, err)
	}
	return nil
}

type CategoryInput struct {
	Name  string                `json:"name"`
	Type  model.TransactionType `json:"type"`
	Icon  string                `json:"icon"`
	Color string                `json:"color"`
}

func (s *CategoryService) Create(ctx context.Context, userID uuid.UUID, input CategoryInput) (*model.Category, error) {
	if !input.Type.Valid() {
		return nil, ErrInvalidCategoryType
	}

	category := &model.Category{
		UserID: userID,
		Name:   input.Name,
		Type:   input.Type,
		Icon:   input.Icon,
		Color:  input.Color,
	}
	if category.Color == "" {
		category.Color = "#3B82F6"
	}
	if category.Icon == "" {
		category.Icon = "fa-tag"
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context, userID uuid.UUID) ([]model.Category, error) {
	categories, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return categories, nil
}

func (s *CategoryService) Update(ctx context.Context, userID, id uuid.UUID, input CategoryInput) (*model.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching category %s: %w", id, err)
	}
	if category.UserID != userID {
		return nil, ErrNotOwner
	}

	if input.Name != "" {
		category.Name = input.Name
	}
	if input.Icon != "" {
		category.Icon = input.Icon
	}
	if input.Color != "" {
		category.Color = input.Color
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("updating category %s: %w", id, err)
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("deleting category %s: %w", id, err)
	}
	return nil
}
