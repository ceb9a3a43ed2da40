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

// TuitionFields carries tuition input; nil means "unchanged" on update.
type TuitionFields struct {
	Type    *string
	Grade   *string
	Level   *string
	Tuition *string
	Note    *string
}

// CreateTuitionEntry persists one tuition table row.
func (a *App) CreateTuitionEntry(ctx context.Context, f TuitionFields) (domain.TuitionEntry, error) {
	entryType, err := parseTuitionType(f.Type)
	if err != nil {
		return domain.TuitionEntry{}, err
	}
	grade, err := requiredString(f.Grade, "grade")
	if err != nil {
		return domain.TuitionEntry{}, err
	}
	level, err := requiredString(f.Level, "level")
	if err != nil {
		return domain.TuitionEntry{}, err
	}
	tuition, err := requiredString(f.Tuition, "tuition")
	if err != nil {
		return domain.TuitionEntry{}, err
	}
	now := time.Now().UTC()
	entry := domain.TuitionEntry{
		ID:        uuid.NewString(),
		Type:      entryType,
		Grade:     grade,
		Level:     level,
		Tuition:   tuition,
		Note:      derefString(f.Note),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.store.CreateTuitionEntry(ctx, entry); err != nil {
		return domain.TuitionEntry{}, fmt.Errorf("save tuition entry: %w", err)
	}
	return entry, nil
}

// UpdateTuitionEntry applies partial field updates.
func (a *App) UpdateTuitionEntry(ctx context.Context, id string, f TuitionFields) (domain.TuitionEntry, error) {
	entry, ok, err := a.store.GetTuitionEntry(ctx, id)
	if err != nil {
		return domain.TuitionEntry{}, fmt.Errorf("load tuition entry: %w", err)
	}
	if !ok {
		return domain.TuitionEntry{}, ErrNotFound
	}
	if f == (TuitionFields{}) {
		return entry, nil
	}
	if f.Type != nil {
		if entry.Type, err = parseTuitionType(f.Type); err != nil {
			return domain.TuitionEntry{}, err
		}
	}
	if f.Grade != nil {
		if entry.Grade, err = requiredString(f.Grade, "grade"); err != nil {
			return domain.TuitionEntry{}, err
		}
	}
	if f.Level != nil {
		if entry.Level, err = requiredString(f.Level, "level"); err != nil {
			return domain.TuitionEntry{}, err
		}
	}
	if f.Tuition != nil {
		if entry.Tuition, err = requiredString(f.Tuition, "tuition"); err != nil {
			return domain.TuitionEntry{}, err
		}
	}
	if f.Note != nil {
		entry.Note = derefString(f.Note)
	}
	entry.UpdatedAt = time.Now().UTC()
	if err := a.store.UpdateTuitionEntry(ctx, entry); err != nil {
		return domain.TuitionEntry{}, fmt.Errorf("save tuition entry: %w", err)
	}
	return entry, nil
}

// DeleteTuitionEntry removes one row.
func (a *App) DeleteTuitionEntry(ctx context.Context, id string) error {
	_, ok, err := a.store.GetTuitionEntry(ctx, id)
	if err != nil {
		return fmt.Errorf("load tuition entry: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	if err := a.store.DeleteTuitionEntry(ctx, id); err != nil {
		return fmt.Errorf("delete tuition entry: %w", err)
	}
	return nil
}

// GetTuitionEntry returns one row.
func (a *App) GetTuitionEntry(ctx context.Context, id string) (domain.TuitionEntry, error) {
	entry, ok, err := a.store.GetTuitionEntry(ctx, id)
	if err != nil {
		return domain.TuitionEntry{}, fmt.Errorf("load tuition entry: %w", err)
	}
	if !ok {
		return domain.TuitionEntry{}, ErrNotFound
	}
	return entry, nil
}

// ListTuitionEntries pages through tuition rows.
func (a *App) ListTuitionEntries(ctx context.Context, f store.TuitionFilter) (domain.Page[domain.TuitionEntry], error) {
	return a.store.ListTuitionEntries(ctx, f)
}

func parseTuitionType(v *string) (domain.TuitionType, error) {
	raw, err := requiredString(v, "type")
	if err != nil {
		return "", err
	}
	switch domain.TuitionType(strings.ToLower(raw)) {
	case domain.TuitionGrade:
		return domain.TuitionGrade, nil
	case domain.TuitionService:
		return domain.TuitionService, nil
	default:
		return "", invalid("type", "must be grade or service")
	}
}
