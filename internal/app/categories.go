package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/NoobYoup/amis-nextjs-sub001/pkg/domain"
)

// CreateCategory adds a category with a unique (case-insensitive) name.
func (a *App) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, required("name")
	}
	taken, err := a.store.CategoryNameTaken(ctx, name, "")
	if err != nil {
		return domain.Category{}, fmt.Errorf("check category name: %w", err)
	}
	if taken {
		return domain.Category{}, ErrDuplicateName
	}
	now := time.Now().UTC()
	c := domain.Category{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.store.CreateCategory(ctx, c); err != nil {
		return domain.Category{}, fmt.Errorf("save category: %w", err)
	}
	return c, nil
}

// UpdateCategory renames a category, keeping the uniqueness rule.
func (a *App) UpdateCategory(ctx context.Context, id, name string) (domain.Category, error) {
	c, ok, err := a.store.GetCategory(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("load category: %w", err)
	}
	if !ok {
		return domain.Category{}, ErrNotFound
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, required("name")
	}
	taken, err := a.store.CategoryNameTaken(ctx, name, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("check category name: %w", err)
	}
	if taken {
		return domain.Category{}, ErrDuplicateName
	}
	c.Name = name
	c.UpdatedAt = time.Now().UTC()
	if err := a.store.UpdateCategory(ctx, c); err != nil {
		return domain.Category{}, fmt.Errorf("save category: %w", err)
	}
	return c, nil
}

// DeleteCategory soft-deletes a category. Rejected with InUseError while any
// activity still references it; the row is kept for audit either way.
func (a *App) DeleteCategory(ctx context.Context, id string) error {
	_, ok, err := a.store.GetCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("load category: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	count, err := a.store.CountActivitiesByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("count category activities: %w", err)
	}
	if count > 0 {
		return &InUseError{Count: count}
	}
	if err := a.store.SoftDeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// GetCategory returns an active category.
func (a *App) GetCategory(ctx context.Context, id string) (domain.Category, error) {
	c, ok, err := a.store.GetCategory(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("load category: %w", err)
	}
	if !ok {
		return domain.Category{}, ErrNotFound
	}
	return c, nil
}

// ListCategories returns every active category for selection menus.
func (a *App) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return a.store.ListCategories(ctx)
}
