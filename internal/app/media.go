package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/NoobYoup/amis-nextjs-sub001/pkg/domain"
	"github.com/NoobYoup/amis-nextjs-sub001/pkg/media"
)

const uploadConcurrency = 4

// Upload is one incoming multipart file.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// uploadAll sends every file to the media host, up to uploadConcurrency at a
// time, and returns the references in input order. On any failure the objects
// that did make it are destroyed so no orphans remain on the host.
func (a *App) uploadAll(ctx context.Context, prefix string, kind domain.MediaKind, uploads []Upload) ([]domain.MediaFile, error) {
	if len(uploads) == 0 {
		return nil, nil
	}
	now := time.Now().UTC()
	files := make([]domain.MediaFile, len(uploads))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)
	for i, up := range uploads {
		i, up := i, up
		g.Go(func() error {
			id := uuid.NewString()
			key := buildObjectKey(prefix, id, up.Filename)
			obj, err := a.media.Upload(gctx, key, up.Reader, up.Size, contentTypeFor(up))
			if err != nil {
				return fmt.Errorf("upload %q: %w", up.Filename, err)
			}
			files[i] = domain.MediaFile{
				ID:        id,
				URL:       obj.URL,
				Key:       obj.Key,
				Kind:      kind,
				Position:  i,
				CreatedAt: now,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		a.destroyFiles(context.WithoutCancel(ctx), files)
		return nil, err
	}
	return files, nil
}

// destroyFiles removes remote objects best-effort: individual failures are
// logged and skipped so one stuck object never blocks the rest.
func (a *App) destroyFiles(ctx context.Context, files []domain.MediaFile) {
	for _, f := range files {
		key := f.Key
		if key == "" {
			key = media.KeyFromURL(f.URL)
		}
		if key == "" {
			continue
		}
		if err := a.media.Destroy(ctx, key); err != nil {
			slog.Warn("destroy media object failed", "key", key, "err", err)
		}
	}
}

// reposition renumbers a reconciled file list so position 0 is again the
// thumbnail slot.
func reposition(files []domain.MediaFile) []domain.MediaFile {
	for i := range files {
		files[i].Position = i
	}
	return files
}

func firstURL(files []domain.MediaFile) string {
	if len(files) == 0 {
		return ""
	}
	return files[0].URL
}

func buildObjectKey(prefix, id, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(prefix, id+ext)
}

func contentTypeFor(up Upload) string {
	if ct := strings.TrimSpace(up.ContentType); ct != "" {
		return ct
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(up.Filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
