package service

import (
	"context"
	"errors"
	"time"

	"spendio/internal/dto"
	"spendio/internal/models"
	"spendio/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultCategories are the shared rows every tenant sees.
var DefaultCategories = []struct {
	Name, Color, Icon string
}{
	{"Food", "#FF9800", "🍔"},
	{"Transport", "#2196F3", "🚗"},
	{"Entertainment", "#9C27B0", "🎬"},
	{"Shopping", "#E91E63", "🛍️"},
	{"Health", "#4CAF50", "💊"},
	{"Bills", "#F44336", "🧾"},
	{"Education", "#3F51B5", "📚"},
	{"Other", models.DefaultCategoryColor, models.DefaultCategoryIcon},
}

type CategoryService struct {
	categories             CategoryStore
	allowDefaultCollisions bool
	logger                 *zap.Logger
	now                    func() time.Time
}

// NewCategoryService builds the service. With allowDefaultCollisions false a
// tenant may not create a category named like a shared default.
func NewCategoryService(categories CategoryStore, allowDefaultCollisions bool, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categories:             categories,
		allowDefaultCollisions: allowDefaultCollisions,
		logger:                 logger,
		now:                    time.Now,
	}
}

func (s *CategoryService) List(ctx context.Context, userID uuid.UUID, includeDefault bool) ([]dto.CategoryResponse, error) {
	categories, err := s.categories.List(ctx, userID, includeDefault)
	if err != nil {
		return nil, storeError("list categories", err)
	}

	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.NewCategoryResponse(c))
	}
	return out, nil
}

func (s *CategoryService) Create(ctx context.Context, userID uuid.UUID, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	category := s.fromRequest(req)
	category.ID = uuid.New()
	category.Ownership = models.OwnedBy(userID)
	category.CreatedAt = s.now().UTC()

	if err := s.checkName(ctx, userID, category.Name, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, duplicateCategory()
		}
		return nil, storeError("create category", err)
	}

	resp := dto.NewCategoryResponse(category)
	return &resp, nil
}

func (s *CategoryService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	category := s.fromRequest(req)
	category.ID = id

	if err := s.checkName(ctx, userID, category.Name, id); err != nil {
		return nil, err
	}

	updated, err := s.categories.Update(ctx, userID, category)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, duplicateCategory()
		}
		return nil, storeError("update category", err)
	}

	resp := dto.NewCategoryResponse(updated)
	return &resp, nil
}

func (s *CategoryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.categories.Delete(ctx, userID, id); err != nil {
		return storeError("delete category", err)
	}
	return nil
}

// SeedDefaults inserts any missing shared categories and reports how many
// were added.
func (s *CategoryService) SeedDefaults(ctx context.Context) (int, error) {
	added := 0
	for _, d := range DefaultCategories {
		inserted, err := s.categories.EnsureDefault(ctx, &models.Category{
			ID:        uuid.New(),
			Ownership: models.Shared(),
			Name:      d.Name,
			Color:     d.Color,
			Icon:      d.Icon,
			CreatedAt: s.now().UTC(),
		})
		if err != nil {
			return added, storeError("seed category "+d.Name, err)
		}
		if inserted {
			added++
		}
	}
	s.logger.Info("Default categories seeded", zap.Int("added", added))
	return added, nil
}

func (s *CategoryService) checkName(ctx context.Context, userID uuid.UUID, name string, exclude uuid.UUID) error {
	if name == "" {
		return NewValidationError("name", "is required")
	}

	exists, err := s.categories.OwnedNameExists(ctx, userID, name, exclude)
	if err != nil {
		return storeError("check category name", err)
	}
	if exists {
		return duplicateCategory()
	}

	if !s.allowDefaultCollisions {
		exists, err := s.categories.DefaultNameExists(ctx, name)
		if err != nil {
			return storeError("check category name", err)
		}
		if exists {
			return &ConflictError{Message: "a default category with this name already exists"}
		}
	}
	return nil
}

func (s *CategoryService) fromRequest(req *dto.CategoryRequest) *models.Category {
	c := &models.Category{
		Name:  cleanText(req.Name),
		Color: models.DefaultCategoryColor,
		Icon:  models.DefaultCategoryIcon,
	}
	c.Description = cleanTextPtr(req.Description)
	if req.Color != nil && *req.Color != "" {
		c.Color = *req.Color
	}
	if req.Icon != nil && *req.Icon != "" {
		c.Icon = *req.Icon
	}
	return c
}

func duplicateCategory() error {
	return &ConflictError{Message: "a category with this name already exists"}
}
