package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/NoobYoup/amis-nextjs-sub001/pkg/domain"
	"github.com/NoobYoup/amis-nextjs-sub001/pkg/store"
)

// ProcedureFields carries scalar procedure input; nil means "unchanged" on
// update.
type ProcedureFields struct {
	Title       *string
	Description *string
	Field       *string
	Agency      *string
}

// CreateProcedure persists a procedure with its attached files.
func (a *App) CreateProcedure(ctx context.Context, f ProcedureFields, uploads []Upload) (domain.Procedure, error) {
	title, err := requiredString(f.Title, "title")
	if err != nil {
		return domain.Procedure{}, err
	}
	description, err := requiredString(f.Description, "description")
	if err != nil {
		return domain.Procedure{}, err
	}
	files, err := a.uploadAll(ctx, "procedures", domain.MediaDocument, uploads)
	if err != nil {
		return domain.Procedure{}, err
	}
	now := time.Now().UTC()
	proc := domain.Procedure{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Field:       derefString(f.Field),
		Agency:      derefString(f.Agency),
		Files:       files,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := a.store.CreateProcedure(ctx, proc); err != nil {
		a.destroyFiles(context.WithoutCancel(ctx), files)
		return domain.Procedure{}, fmt.Errorf("save procedure: %w", err)
	}
	return proc, nil
}

// UpdateProcedure applies partial field updates with selective file
// retention: when keepProvided is true, existing files whose IDs are absent
// from keepFileIDs are removed (store row and remote object) and new uploads
// are appended after the kept ones. When keepProvided is false and no uploads
// are supplied, the file list stays untouched.
func (a *App) UpdateProcedure(ctx context.Context, id string, f ProcedureFields, uploads []Upload, keepFileIDs []string, keepProvided bool) (domain.Procedure, error) {
	proc, ok, err := a.store.GetProcedure(ctx, id)
	if err != nil {
		return domain.Procedure{}, fmt.Errorf("load procedure: %w", err)
	}
	if !ok {
		return domain.Procedure{}, ErrNotFound
	}
	if f == (ProcedureFields{}) && len(uploads) == 0 && !keepProvided {
		return proc, nil
	}
	if f.Title != nil {
		if proc.Title, err = requiredString(f.Title, "title"); err != nil {
			return domain.Procedure{}, err
		}
	}
	if f.Description != nil {
		if proc.Description, err = requiredString(f.Description, "description"); err != nil {
			return domain.Procedure{}, err
		}
	}
	if f.Field != nil {
		proc.Field = derefString(f.Field)
	}
	if f.Agency != nil {
		proc.Agency = derefString(f.Agency)
	}

	var removed []domain.MediaFile
	if keepProvided {
		keep := make(map[string]bool, len(keepFileIDs))
		for _, fileID := range keepFileIDs {
			keep[fileID] = true
		}
		kept := proc.Files[:0:0]
		for _, file := range proc.Files {
			if keep[file.ID] {
				kept = append(kept, file)
			} else {
				removed = append(removed, file)
			}
		}
		proc.Files = kept
	}
	var added []domain.MediaFile
	if len(uploads) > 0 {
		added, err = a.uploadAll(ctx, "procedures", domain.MediaDocument, uploads)
		if err != nil {
			return domain.Procedure{}, err
		}
		proc.Files = append(proc.Files, added...)
	}
	proc.Files = reposition(proc.Files)
	proc.UpdatedAt = time.Now().UTC()
	if err := a.store.UpdateProcedure(ctx, proc); err != nil {
		a.destroyFiles(context.WithoutCancel(ctx), added)
		return domain.Procedure{}, fmt.Errorf("save procedure: %w", err)
	}
	a.destroyFiles(context.WithoutCancel(ctx), removed)
	return proc, nil
}

// DeleteProcedure removes the record and destroys its remote files.
func (a *App) DeleteProcedure(ctx context.Context, id string) error {
	proc, ok, err := a.store.GetProcedure(ctx, id)
	if err != nil {
		return fmt.Errorf("load procedure: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	if err := a.store.DeleteProcedure(ctx, id); err != nil {
		return fmt.Errorf("delete procedure: %w", err)
	}
	a.destroyFiles(context.WithoutCancel(ctx), proc.Files)
	return nil
}

// GetProcedure returns one procedure.
func (a *App) GetProcedure(ctx context.Context, id string) (domain.Procedure, error) {
	proc, ok, err := a.store.GetProcedure(ctx, id)
	if err != nil {
		return domain.Procedure{}, fmt.Errorf("load procedure: %w", err)
	}
	if !ok {
		return domain.Procedure{}, ErrNotFound
	}
	return proc, nil
}

// ListProcedures pages through procedures.
func (a *App) ListProcedures(ctx context.Context, f store.ProcedureFilter) (domain.Page[domain.Procedure], error) {
	return a.store.ListProcedures(ctx, f)
}
