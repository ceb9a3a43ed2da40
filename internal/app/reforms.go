package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/NoobYoup/amis-nextjs-sub001/pkg/domain"
	"github.com/NoobYoup/amis-nextjs-sub001/pkg/store"
)

// ReformFields carries scalar reform input; nil means "unchanged" on update.
type ReformFields struct {
	Title       *string
	Description *string
	Year        *int
}

// CreateReform persists a reform item with its image gallery.
func (a *App) CreateReform(ctx context.Context, f ReformFields, uploads []Upload) (domain.Reform, error) {
	title, err := requiredString(f.Title, "title")
	if err != nil {
		return domain.Reform{}, err
	}
	description, err := requiredString(f.Description, "description")
	if err != nil {
		return domain.Reform{}, err
	}
	images, err := a.uploadAll(ctx, "reforms", domain.MediaImage, uploads)
	if err != nil {
		return domain.Reform{}, err
	}
	now := time.Now().UTC()
	reform := domain.Reform{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Thumbnail:   firstURL(images),
		Images:      images,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if f.Year != nil && *f.Year > 0 {
		reform.Year = *f.Year
	}
	if err := a.store.CreateReform(ctx, reform); err != nil {
		a.destroyFiles(context.WithoutCancel(ctx), images)
		return domain.Reform{}, fmt.Errorf("save reform: %w", err)
	}
	return reform, nil
}

// UpdateReform applies partial field updates. Any new image replaces the whole
// gallery, destroying the prior remote objects after persistence.
func (a *App) UpdateReform(ctx context.Context, id string, f ReformFields, uploads []Upload) (domain.Reform, error) {
	reform, ok, err := a.store.GetReform(ctx, id)
	if err != nil {
		return domain.Reform{}, fmt.Errorf("load reform: %w", err)
	}
	if !ok {
		return domain.Reform{}, ErrNotFound
	}
	if f == (ReformFields{}) && len(uploads) == 0 {
		return reform, nil
	}
	if f.Title != nil {
		if reform.Title, err = requiredString(f.Title, "title"); err != nil {
			return domain.Reform{}, err
		}
	}
	if f.Description != nil {
		if reform.Description, err = requiredString(f.Description, "description"); err != nil {
			return domain.Reform{}, err
		}
	}
	if f.Year != nil && *f.Year > 0 {
		reform.Year = *f.Year
	}

	var replaced []domain.MediaFile
	if len(uploads) > 0 {
		images, err := a.uploadAll(ctx, "reforms", domain.MediaImage, uploads)
		if err != nil {
			return domain.Reform{}, err
		}
		replaced = reform.Images
		reform.Images = images
		reform.Thumbnail = firstURL(images)
	}
	reform.UpdatedAt = time.Now().UTC()
	if err := a.store.UpdateReform(ctx, reform); err != nil {
		if len(uploads) > 0 {
			a.destroyFiles(context.WithoutCancel(ctx), reform.Images)
		}
		return domain.Reform{}, fmt.Errorf("save reform: %w", err)
	}
	a.destroyFiles(context.WithoutCancel(ctx), replaced)
	return reform, nil
}

// DeleteReform removes the record and destroys its remote images.
func (a *App) DeleteReform(ctx context.Context, id string) error {
	reform, ok, err := a.store.GetReform(ctx, id)
	if err != nil {
		return fmt.Errorf("load reform: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	if err := a.store.DeleteReform(ctx, id); err != nil {
		return fmt.Errorf("delete reform: %w", err)
	}
	a.destroyFiles(context.WithoutCancel(ctx), reform.Images)
	return nil
}

// GetReform returns one reform item.
func (a *App) GetReform(ctx context.Context, id string) (domain.Reform, error) {
	reform, ok, err := a.store.GetReform(ctx, id)
	if err != nil {
		return domain.Reform{}, fmt.Errorf("load reform: %w", err)
	}
	if !ok {
		return domain.Reform{}, ErrNotFound
	}
	return reform, nil
}

// ListReforms pages through reform items.
func (a *App) ListReforms(ctx context.Context, f store.ReformFilter) (domain.Page[domain.Reform], error) {
	return a.store.ListReforms(ctx, f)
}
