package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/NoobYoup/amis-nextjs-sub001/pkg/domain"
	"github.com/NoobYoup/amis-nextjs-sub001/pkg/store"
)

// DocumentFields carries scalar document input; nil means "unchanged" on
// update.
type DocumentFields struct {
	Title      *string
	Number     *string
	DocType    *string
	IssuedDate *time.Time
	IsNew      *bool
}

// CreateDocument persists a document with its single optional file.
func (a *App) CreateDocument(ctx context.Context, f DocumentFields, file *Upload) (domain.Document, error) {
	title, err := requiredString(f.Title, "title")
	if err != nil {
		return domain.Document{}, err
	}
	docType, err := requiredString(f.DocType, "docType")
	if err != nil {
		return domain.Document{}, err
	}
	var uploads []Upload
	if file != nil {
		uploads = []Upload{*file}
	}
	files, err := a.uploadAll(ctx, "documents", domain.MediaDocument, uploads)
	if err != nil {
		return domain.Document{}, err
	}
	now := time.Now().UTC()
	doc := domain.Document{
		ID:        uuid.NewString(),
		Title:     title,
		Number:    derefString(f.Number),
		DocType:   docType,
		IsNew:     f.IsNew != nil && *f.IsNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if f.IssuedDate != nil && !f.IssuedDate.IsZero() {
		issued := f.IssuedDate.UTC()
		doc.IssuedDate = &issued
	}
	if len(files) > 0 {
		doc.File = &files[0]
	}
	if err := a.store.CreateDocument(ctx, doc); err != nil {
		a.destroyFiles(context.WithoutCancel(ctx), files)
		return domain.Document{}, fmt.Errorf("save document: %w", err)
	}
	return doc, nil
}

// UpdateDocument applies partial field updates. A newly supplied file replaces
// the stored one; the prior remote object is destroyed after the record is
// persisted.
func (a *App) UpdateDocument(ctx context.Context, id string, f DocumentFields, file *Upload) (domain.Document, error) {
	doc, ok, err := a.store.GetDocument(ctx, id)
	if err != nil {
		return domain.Document{}, fmt.Errorf("load document: %w", err)
	}
	if !ok {
		return domain.Document{}, ErrNotFound
	}
	if f == (DocumentFields{}) && file == nil {
		return doc, nil
	}
	if f.Title != nil {
		if doc.Title, err = requiredString(f.Title, "title"); err != nil {
			return domain.Document{}, err
		}
	}
	if f.Number != nil {
		doc.Number = derefString(f.Number)
	}
	if f.DocType != nil {
		if doc.DocType, err = requiredString(f.DocType, "docType"); err != nil {
			return domain.Document{}, err
		}
	}
	if f.IssuedDate != nil && !f.IssuedDate.IsZero() {
		issued := f.IssuedDate.UTC()
		doc.IssuedDate = &issued
	}
	if f.IsNew != nil {
		doc.IsNew = *f.IsNew
	}

	var replaced *domain.MediaFile
	if file != nil {
		files, err := a.uploadAll(ctx, "documents", domain.MediaDocument, []Upload{*file})
		if err != nil {
			return domain.Document{}, err
		}
		replaced = doc.File
		doc.File = &files[0]
	}
	doc.UpdatedAt = time.Now().UTC()
	if err := a.store.UpdateDocument(ctx, doc); err != nil {
		if file != nil && doc.File != nil {
			a.destroyFiles(context.WithoutCancel(ctx), []domain.MediaFile{*doc.File})
		}
		return domain.Document{}, fmt.Errorf("save document: %w", err)
	}
	if replaced != nil {
		a.destroyFiles(context.WithoutCancel(ctx), []domain.MediaFile{*replaced})
	}
	return doc, nil
}

// DeleteDocument removes the record and destroys its remote file.
func (a *App) DeleteDocument(ctx context.Context, id string) error {
	doc, ok, err := a.store.GetDocument(ctx, id)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	if err := a.store.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if doc.File != nil {
		a.destroyFiles(context.WithoutCancel(ctx), []domain.MediaFile{*doc.File})
	}
	return nil
}

// GetDocument returns one document.
func (a *App) GetDocument(ctx context.Context, id string) (domain.Document, error) {
	doc, ok, err := a.store.GetDocument(ctx, id)
	if err != nil {
		return domain.Document{}, fmt.Errorf("load document: %w", err)
	}
	if !ok {
		return domain.Document{}, ErrNotFound
	}
	return doc, nil
}

// ListDocuments pages through documents, new ones first.
func (a *App) ListDocuments(ctx context.Context, f store.DocumentFilter) (domain.Page[domain.Document], error) {
	return a.store.ListDocuments(ctx, f)
}
