package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/metalbaza/finledger/internal/domain"
)

// CategoryUseCase handles the category registry.
type CategoryUseCase struct {
	categoryRepo CategoryRepository
	idGen        IDGenerator
	logger       zerolog.Logger
}

// NewCategoryUseCase creates a new CategoryUseCase.
func NewCategoryUseCase(categoryRepo CategoryRepository, idGen IDGenerator, logger zerolog.Logger) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		idGen:        idGen,
		logger:       logger,
	}
}

// CreateCategoryInput represents input for creating a category.
type CreateCategoryInput struct {
	Name        string
	Type        domain.TransactionType
	Color       string
	Icon        string
	Description string
	SortOrder   int
}

// CreateCategory creates a new category.
func (uc *CategoryUseCase) CreateCategory(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	if !domain.ValidTransactionType(input.Type) {
		return nil, domain.ErrInvalidTransactionType
	}

	color := input.Color
	if color == "" {
		color = domain.DefaultCategoryColor
	}

	category := &domain.Category{
		ID:          uc.idGen.Generate(),
		Name:        strings.TrimSpace(input.Name),
		Type:        input.Type,
		Color:       color,
		Icon:        input.Icon,
		Description: input.Description,
		IsActive:    true,
		SortOrder:   input.SortOrder,
		CreatedAt:   time.Now().UTC(),
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// GetCategory retrieves a category by ID.
func (uc *CategoryUseCase) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return uc.categoryRepo.GetByID(ctx, id)
}

// ListCategories lists categories, optionally narrowed to one type.
func (uc *CategoryUseCase) ListCategories(ctx context.Context, typeFilter *domain.TransactionType, activeOnly bool) ([]*domain.Category, error) {
	if typeFilter != nil && !domain.ValidTransactionType(*typeFilter) {
		return nil, domain.ErrInvalidTransactionType
	}
	return uc.categoryRepo.List(ctx, typeFilter, activeOnly)
}

// UpdateCategoryInput represents a partial category update. Type and IsSystem
// are fixed at creation.
type UpdateCategoryInput struct {
	Name        *string
	Color       *string
	Icon        *string
	Description *string
	IsActive    *bool
	SortOrder   *int
}

// UpdateCategory applies a partial update to a category.
func (uc *CategoryUseCase) UpdateCategory(ctx context.Context, id string, input UpdateCategoryInput) (*domain.Category, error) {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := domain.ValidateName(*input.Name); err != nil {
			return nil, err
		}
		category.Name = strings.TrimSpace(*input.Name)
	}

	if input.Color != nil {
		category.Color = *input.Color
	}

	if input.Icon != nil {
		category.Icon = *input.Icon
	}

	if input.Description != nil {
		category.Description = *input.Description
	}

	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory removes a category. System categories are protected; existing
// transactions keep a null category reference after deletion.
func (uc *CategoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if category.IsSystem {
		return domain.ErrProtectedCategory
	}

	return uc.categoryRepo.Delete(ctx, id)
}

// InitDefaults seeds the default category set, keyed by (name, type). Safe to
// call on every process start.
func (uc *CategoryUseCase) InitDefaults(ctx context.Context) error {
	now := time.Now().UTC()

	for _, seed := range domain.DefaultCategories() {
		_, err := uc.categoryRepo.GetByNameAndType(ctx, seed.Name, seed.Type)
		if err == nil {
			continue
		}
		if err != domain.ErrCategoryNotFound {
			return err
		}

		category := seed
		category.ID = uc.idGen.Generate()
		category.IsActive = true
		category.CreatedAt = now

		if err := uc.categoryRepo.Create(ctx, &category); err != nil {
			return err
		}

		uc.logger.Info().Str("name", category.Name).Str("type", string(category.Type)).
			Msg("seeded default category")
	}

	return nil
}
