package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/NoobYoup/amis-nextjs-sub001/pkg/domain"
	"github.com/NoobYoup/amis-nextjs-sub001/pkg/store"
)

// ActivityFields carries scalar activity input. Nil pointers mean "unchanged"
// on update; create requires every field except Content.
type ActivityFields struct {
	Title       *string
	Description *string
	Content     *string
	CategoryID  *string
	Author      *string
	Date        *time.Time
}

// CreateActivity validates, uploads the gallery, and persists the record.
// If persistence fails the uploaded objects are destroyed.
func (a *App) CreateActivity(ctx context.Context, f ActivityFields, uploads []Upload) (domain.Activity, error) {
	title, err := requiredString(f.Title, "title")
	if err != nil {
		return domain.Activity{}, err
	}
	description, err := requiredString(f.Description, "description")
	if err != nil {
		return domain.Activity{}, err
	}
	categoryID, err := requiredString(f.CategoryID, "category")
	if err != nil {
		return domain.Activity{}, err
	}
	author, err := requiredString(f.Author, "author")
	if err != nil {
		return domain.Activity{}, err
	}
	if f.Date == nil || f.Date.IsZero() {
		return domain.Activity{}, required("date")
	}
	if err := a.checkCategory(ctx, categoryID); err != nil {
		return domain.Activity{}, err
	}

	images, err := a.uploadAll(ctx, "activities", domain.MediaImage, uploads)
	if err != nil {
		return domain.Activity{}, err
	}
	now := time.Now().UTC()
	act := domain.Activity{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Content:     derefString(f.Content),
		CategoryID:  categoryID,
		Author:      author,
		Date:        f.Date.UTC(),
		Thumbnail:   firstURL(images),
		Images:      images,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := a.store.CreateActivity(ctx, act); err != nil {
		a.destroyFiles(context.WithoutCancel(ctx), images)
		return domain.Activity{}, fmt.Errorf("save activity: %w", err)
	}
	return act, nil
}

// UpdateActivity applies partial field updates. Newly uploaded images are
// appended to the existing gallery; prior images are never replaced here.
// An update carrying no fields and no uploads does not touch the stored
// record, UpdatedAt included.
func (a *App) UpdateActivity(ctx context.Context, id string, f ActivityFields, uploads []Upload) (domain.Activity, error) {
	act, ok, err := a.store.GetActivity(ctx, id)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("load activity: %w", err)
	}
	if !ok {
		return domain.Activity{}, ErrNotFound
	}
	if f == (ActivityFields{}) && len(uploads) == 0 {
		return act, nil
	}
	if f.Title != nil {
		if act.Title, err = requiredString(f.Title, "title"); err != nil {
			return domain.Activity{}, err
		}
	}
	if f.Description != nil {
		if act.Description, err = requiredString(f.Description, "description"); err != nil {
			return domain.Activity{}, err
		}
	}
	if f.Content != nil {
		act.Content = strings.TrimSpace(*f.Content)
	}
	if f.CategoryID != nil {
		categoryID, err := requiredString(f.CategoryID, "category")
		if err != nil {
			return domain.Activity{}, err
		}
		if err := a.checkCategory(ctx, categoryID); err != nil {
			return domain.Activity{}, err
		}
		act.CategoryID = categoryID
	}
	if f.Author != nil {
		if act.Author, err = requiredString(f.Author, "author"); err != nil {
			return domain.Activity{}, err
		}
	}
	if f.Date != nil && !f.Date.IsZero() {
		act.Date = f.Date.UTC()
	}

	var added []domain.MediaFile
	if len(uploads) > 0 {
		added, err = a.uploadAll(ctx, "activities", domain.MediaImage, uploads)
		if err != nil {
			return domain.Activity{}, err
		}
		act.Images = reposition(append(act.Images, added...))
	}
	if act.Thumbnail == "" {
		act.Thumbnail = firstURL(act.Images)
	}
	act.UpdatedAt = time.Now().UTC()
	if err := a.store.UpdateActivity(ctx, act); err != nil {
		a.destroyFiles(context.WithoutCancel(ctx), added)
		return domain.Activity{}, fmt.Errorf("save activity: %w", err)
	}
	return act, nil
}

// DeleteActivity removes the record, then destroys its remote images
// best-effort.
func (a *App) DeleteActivity(ctx context.Context, id string) error {
	act, ok, err := a.store.GetActivity(ctx, id)
	if err != nil {
		return fmt.Errorf("load activity: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	if err := a.store.DeleteActivity(ctx, id); err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	a.destroyFiles(context.WithoutCancel(ctx), act.Images)
	return nil
}

// GetActivity returns one activity.
func (a *App) GetActivity(ctx context.Context, id string) (domain.Activity, error) {
	act, ok, err := a.store.GetActivity(ctx, id)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("load activity: %w", err)
	}
	if !ok {
		return domain.Activity{}, ErrNotFound
	}
	return act, nil
}

// ListActivities pages through active activities.
func (a *App) ListActivities(ctx context.Context, f store.ActivityFilter) (domain.Page[domain.Activity], error) {
	return a.store.ListActivities(ctx, f)
}

func (a *App) checkCategory(ctx context.Context, id string) error {
	_, ok, err := a.store.GetCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("load category: %w", err)
	}
	if !ok {
		return invalid("category", "does not exist")
	}
	return nil
}

func requiredString(v *string, field string) (string, error) {
	if v == nil {
		return "", required(field)
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return "", required(field)
	}
	return trimmed, nil
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}
