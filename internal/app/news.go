package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/NoobYoup/amis-nextjs-sub001/pkg/domain"
	"github.com/NoobYoup/amis-nextjs-sub001/pkg/store"
)

// NewsFields carries scalar news input; nil means "unchanged" on update. Tags
// replace the stored set when non-nil.
type NewsFields struct {
	Title       *string
	Summary     *string
	Content     *string
	Author      *string
	Tags        []string
	PublishedAt *time.Time
}

func (f NewsFields) empty() bool {
	return f.Title == nil && f.Summary == nil && f.Content == nil &&
		f.Author == nil && f.Tags == nil && f.PublishedAt == nil
}

// CreateNewsArticle persists an article with its image gallery.
func (a *App) CreateNewsArticle(ctx context.Context, f NewsFields, uploads []Upload) (domain.NewsArticle, error) {
	title, err := requiredString(f.Title, "title")
	if err != nil {
		return domain.NewsArticle{}, err
	}
	summary, err := requiredString(f.Summary, "summary")
	if err != nil {
		return domain.NewsArticle{}, err
	}
	content, err := requiredString(f.Content, "content")
	if err != nil {
		return domain.NewsArticle{}, err
	}
	author, err := requiredString(f.Author, "author")
	if err != nil {
		return domain.NewsArticle{}, err
	}
	images, err := a.uploadAll(ctx, "news", domain.MediaImage, uploads)
	if err != nil {
		return domain.NewsArticle{}, err
	}
	now := time.Now().UTC()
	publishedAt := now
	if f.PublishedAt != nil && !f.PublishedAt.IsZero() {
		publishedAt = f.PublishedAt.UTC()
	}
	article := domain.NewsArticle{
		ID:          uuid.NewString(),
		Title:       title,
		Summary:     summary,
		Content:     content,
		Author:      author,
		Tags:        f.Tags,
		PublishedAt: publishedAt,
		Thumbnail:   firstURL(images),
		Images:      images,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := a.store.CreateNewsArticle(ctx, article); err != nil {
		a.destroyFiles(context.WithoutCancel(ctx), images)
		return domain.NewsArticle{}, fmt.Errorf("save news article: %w", err)
	}
	return article, nil
}

// UpdateNewsArticle applies partial field updates. Supplying any new image
// replaces the whole gallery; the prior remote objects are destroyed after
// the record is persisted. With no new images the gallery and thumbnail stay
// untouched.
func (a *App) UpdateNewsArticle(ctx context.Context, id string, f NewsFields, uploads []Upload) (domain.NewsArticle, error) {
	article, ok, err := a.store.GetNewsArticle(ctx, id)
	if err != nil {
		return domain.NewsArticle{}, fmt.Errorf("load news article: %w", err)
	}
	if !ok {
		return domain.NewsArticle{}, ErrNotFound
	}
	if f.empty() && len(uploads) == 0 {
		return article, nil
	}
	if f.Title != nil {
		if article.Title, err = requiredString(f.Title, "title"); err != nil {
			return domain.NewsArticle{}, err
		}
	}
	if f.Summary != nil {
		if article.Summary, err = requiredString(f.Summary, "summary"); err != nil {
			return domain.NewsArticle{}, err
		}
	}
	if f.Content != nil {
		if article.Content, err = requiredString(f.Content, "content"); err != nil {
			return domain.NewsArticle{}, err
		}
	}
	if f.Author != nil {
		if article.Author, err = requiredString(f.Author, "author"); err != nil {
			return domain.NewsArticle{}, err
		}
	}
	if f.Tags != nil {
		article.Tags = f.Tags
	}
	if f.PublishedAt != nil && !f.PublishedAt.IsZero() {
		article.PublishedAt = f.PublishedAt.UTC()
	}

	var replaced []domain.MediaFile
	if len(uploads) > 0 {
		images, err := a.uploadAll(ctx, "news", domain.MediaImage, uploads)
		if err != nil {
			return domain.NewsArticle{}, err
		}
		replaced = article.Images
		article.Images = images
		article.Thumbnail = firstURL(images)
	}
	article.UpdatedAt = time.Now().UTC()
	if err := a.store.UpdateNewsArticle(ctx, article); err != nil {
		if len(uploads) > 0 {
			a.destroyFiles(context.WithoutCancel(ctx), article.Images)
		}
		return domain.NewsArticle{}, fmt.Errorf("save news article: %w", err)
	}
	a.destroyFiles(context.WithoutCancel(ctx), replaced)
	return article, nil
}

// DeleteNewsArticle removes the record and destroys its remote images.
func (a *App) DeleteNewsArticle(ctx context.Context, id string) error {
	article, ok, err := a.store.GetNewsArticle(ctx, id)
	if err != nil {
		return fmt.Errorf("load news article: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	if err := a.store.DeleteNewsArticle(ctx, id); err != nil {
		return fmt.Errorf("delete news article: %w", err)
	}
	a.destroyFiles(context.WithoutCancel(ctx), article.Images)
	return nil
}

// GetNewsArticle returns one article.
func (a *App) GetNewsArticle(ctx context.Context, id string) (domain.NewsArticle, error) {
	article, ok, err := a.store.GetNewsArticle(ctx, id)
	if err != nil {
		return domain.NewsArticle{}, fmt.Errorf("load news article: %w", err)
	}
	if !ok {
		return domain.NewsArticle{}, ErrNotFound
	}
	return article, nil
}

// ListNewsArticles pages through articles, newest first.
func (a *App) ListNewsArticles(ctx context.Context, f store.NewsFilter) (domain.Page[domain.NewsArticle], error) {
	return a.store.ListNewsArticles(ctx, f)
}
