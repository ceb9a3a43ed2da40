package app

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"

	"github.com/NoobYoup/amis-nextjs-sub001/pkg/domain"
	"github.com/NoobYoup/amis-nextjs-sub001/pkg/media"
	"github.com/NoobYoup/amis-nextjs-sub001/pkg/store"
)

// fakeHost is an in-memory media host recording uploads and destroys.
type fakeHost struct {
	mu        sync.Mutex
	objects   map[string]string
	destroyed []string
	failName  string
}

func newFakeHost() *fakeHost {
	return &fakeHost{objects: map[string]string{}}
}

func (h *fakeHost) Upload(_ context.Context, key string, r io.Reader, _ int64, _ string) (media.Object, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return media.Object{}, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.failName != "" && strings.Contains(key, h.failName) {
		return media.Object{}, errors.New("upload rejected")
	}
	h.objects[key] = string(body)
	return media.Object{Key: key, URL: "https://media.test/" + key}, nil
}

func (h *fakeHost) Destroy(_ context.Context, key string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.objects[key]; !ok {
		return errors.New("object missing")
	}
	delete(h.objects, key)
	h.destroyed = append(h.destroyed, key)
	return nil
}

func (h *fakeHost) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.objects)
}

func (h *fakeHost) content(key string) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.objects[key]
}

// failingStore wraps a real store and fails chosen writes.
type failingStore struct {
	store.Store
	failActivityCreate bool
	failDocumentUpdate bool
}

func (f *failingStore) CreateActivity(ctx context.Context, a domain.Activity) error {
	if f.failActivityCreate {
		return errors.New("write refused")
	}
	return f.Store.CreateActivity(ctx, a)
}

func (f *failingStore) UpdateDocument(ctx context.Context, d domain.Document) error {
	if f.failDocumentUpdate {
		return errors.New("write refused")
	}
	return f.Store.UpdateDocument(ctx, d)
}

func newTestStore(t *testing.T) *store.GormStore {
	t.Helper()
	s, err := store.New(sqlite.Open(filepath.Join(t.TempDir(), "app.db")))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTestApp(t *testing.T) (*App, *fakeHost, *store.GormStore) {
	t.Helper()
	st := newTestStore(t)
	host := newFakeHost()
	a, err := New(Config{Store: st, Media: host})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a, host, st
}

func upload(name, body string) Upload {
	return Upload{
		Filename:    name,
		ContentType: "image/jpeg",
		Size:        int64(len(body)),
		Reader:      strings.NewReader(body),
	}
}

func str(v string) *string { return &v }

func date(t *testing.T, v string) *time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", v)
	if err != nil {
		t.Fatalf("parse date %q: %v", v, err)
	}
	return &parsed
}

func seedCategory(t *testing.T, a *App) domain.Category {
	t.Helper()
	c, err := a.CreateCategory(context.Background(), "Hoạt động ngoại khóa")
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return c
}

func activityInput(t *testing.T, categoryID string) ActivityFields {
	return ActivityFields{
		Title:       str("Hội thao"),
		Description: str("Giải thể thao toàn trường"),
		CategoryID:  str(categoryID),
		Author:      str("admin"),
		Date:        date(t, "2025-03-10"),
	}
}

func TestCreateCategoryRejectsDuplicateName(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx := context.Background()

	if _, err := a.CreateCategory(ctx, "Tin tức"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := a.CreateCategory(ctx, "  TIN TỨC "); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestDeleteCategoryInUse(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx := context.Background()

	c := seedCategory(t, a)
	act, err := a.CreateActivity(ctx, activityInput(t, c.ID), nil)
	if err != nil {
		t.Fatalf("create activity: %v", err)
	}

	err = a.DeleteCategory(ctx, c.ID)
	var inUse *InUseError
	if !errors.As(err, &inUse) {
		t.Fatalf("expected InUseError, got %v", err)
	}
	if inUse.Count != 1 {
		t.Fatalf("expected count 1, got %d", inUse.Count)
	}

	if err := a.DeleteActivity(ctx, act.ID); err != nil {
		t.Fatalf("delete activity: %v", err)
	}
	if err := a.DeleteCategory(ctx, c.ID); err != nil {
		t.Fatalf("delete category after freeing: %v", err)
	}
	if _, err := a.GetCategory(ctx, c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted category to be hidden, got %v", err)
	}
}

func TestCreateActivityUploadsGalleryInOrder(t *testing.T) {
	a, host, _ := newTestApp(t)
	ctx := context.Background()
	c := seedCategory(t, a)

	act, err := a.CreateActivity(ctx, activityInput(t, c.ID), []Upload{
		upload("one.jpg", "first"),
		upload("two.jpg", "second"),
		upload("three.jpg", "third"),
	})
	if err != nil {
		t.Fatalf("create activity: %v", err)
	}
	if len(act.Images) != 3 {
		t.Fatalf("expected 3 images, got %d", len(act.Images))
	}
	// Concurrent uploads must still land in input order.
	for i, want := range []string{"first", "second", "third"} {
		img := act.Images[i]
		if img.Position != i {
			t.Fatalf("image %d has position %d", i, img.Position)
		}
		if got := host.content(img.Key); got != want {
			t.Fatalf("image %d: expected content %q, got %q", i, want, got)
		}
	}
	if act.Thumbnail != act.Images[0].URL {
		t.Fatalf("expected thumbnail %q, got %q", act.Images[0].URL, act.Thumbnail)
	}
}

func TestCreateActivityRequiresCategory(t *testing.T) {
	a, _, _ := newTestApp(t)

	fields := activityInput(t, "missing-category")
	_, err := a.CreateActivity(context.Background(), fields, nil)
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "category" {
		t.Fatalf("expected category validation error, got %v", err)
	}
}

func TestUpdateActivityAppendsImages(t *testing.T) {
	a, host, _ := newTestApp(t)
	ctx := context.Background()
	c := seedCategory(t, a)

	act, err := a.CreateActivity(ctx, activityInput(t, c.ID), []Upload{upload("one.jpg", "first")})
	if err != nil {
		t.Fatalf("create activity: %v", err)
	}

	// A field-only update leaves the gallery alone.
	act2, err := a.UpdateActivity(ctx, act.ID, ActivityFields{Title: str("Hội thao 2025")}, nil)
	if err != nil {
		t.Fatalf("update fields: %v", err)
	}
	if len(act2.Images) != 1 || act2.Title != "Hội thao 2025" {
		t.Fatalf("expected untouched gallery, got %+v", act2)
	}

	act3, err := a.UpdateActivity(ctx, act.ID, ActivityFields{}, []Upload{upload("two.jpg", "second")})
	if err != nil {
		t.Fatalf("update with upload: %v", err)
	}
	if len(act3.Images) != 2 {
		t.Fatalf("expected appended gallery of 2, got %d", len(act3.Images))
	}
	if host.content(act3.Images[0].Key) != "first" || host.content(act3.Images[1].Key) != "second" {
		t.Fatalf("expected original image kept and new one appended")
	}
	if act3.Images[1].Position != 1 {
		t.Fatalf("expected appended image at position 1, got %d", act3.Images[1].Position)
	}
	if act3.Thumbnail != act.Thumbnail {
		t.Fatalf("expected thumbnail to stay %q, got %q", act.Thumbnail, act3.Thumbnail)
	}
}

func TestUpdateActivityWithNothingIsNoOp(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx := context.Background()
	c := seedCategory(t, a)

	created, err := a.CreateActivity(ctx, activityInput(t, c.ID), []Upload{upload("one.jpg", "first"), upload("two.jpg", "second")})
	if err != nil {
		t.Fatalf("create activity: %v", err)
	}
	before, err := a.GetActivity(ctx, created.ID)
	if err != nil {
		t.Fatalf("load activity: %v", err)
	}

	updated, err := a.UpdateActivity(ctx, created.ID, ActivityFields{}, nil)
	if err != nil {
		t.Fatalf("empty update: %v", err)
	}
	if !reflect.DeepEqual(updated, before) {
		t.Fatalf("empty update changed the record:\nbefore %+v\nafter  %+v", before, updated)
	}
	if !updated.UpdatedAt.Equal(before.UpdatedAt) {
		t.Fatalf("empty update bumped UpdatedAt from %v to %v", before.UpdatedAt, updated.UpdatedAt)
	}

	after, err := a.GetActivity(ctx, created.ID)
	if err != nil {
		t.Fatalf("reload activity: %v", err)
	}
	if !reflect.DeepEqual(after, before) {
		t.Fatalf("stored record changed after empty update:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestUpdateTuitionEntryWithNothingIsNoOp(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx := context.Background()

	created, err := a.CreateTuitionEntry(ctx, TuitionFields{
		Type:    str("grade"),
		Grade:   str("Lớp 1"),
		Level:   str("Tiểu học"),
		Tuition: str("1.200.000đ/tháng"),
	})
	if err != nil {
		t.Fatalf("create tuition entry: %v", err)
	}

	before, err := a.GetTuitionEntry(ctx, created.ID)
	if err != nil {
		t.Fatalf("load tuition entry: %v", err)
	}
	updated, err := a.UpdateTuitionEntry(ctx, created.ID, TuitionFields{})
	if err != nil {
		t.Fatalf("empty update: %v", err)
	}
	if !reflect.DeepEqual(updated, before) {
		t.Fatalf("empty update changed the record:\nbefore %+v\nafter  %+v", before, updated)
	}
}

func TestCreateActivityCompensatesWhenStoreFails(t *testing.T) {
	st := newTestStore(t)
	host := newFakeHost()
	a, err := New(Config{Store: &failingStore{Store: st, failActivityCreate: true}, Media: host})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	ctx := context.Background()
	c, err := a.CreateCategory(ctx, "Sự kiện")
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}

	_, err = a.CreateActivity(ctx, activityInput(t, c.ID), []Upload{
		upload("one.jpg", "first"),
		upload("two.jpg", "second"),
	})
	if err == nil {
		t.Fatalf("expected store failure to surface")
	}
	if host.count() != 0 {
		t.Fatalf("expected uploaded objects destroyed after store failure, %d left", host.count())
	}
}

func TestUploadFailureDestroysCompletedObjects(t *testing.T) {
	a, host, _ := newTestApp(t)
	ctx := context.Background()
	c := seedCategory(t, a)

	host.failName = ".png"
	_, err := a.CreateActivity(ctx, activityInput(t, c.ID), []Upload{
		upload("one.jpg", "first"),
		upload("bad.png", "second"),
	})
	if err == nil {
		t.Fatalf("expected upload failure to surface")
	}
	if host.count() != 0 {
		t.Fatalf("expected completed uploads destroyed, %d left", host.count())
	}
}

func TestUpdateDocumentReplacesFile(t *testing.T) {
	a, host, _ := newTestApp(t)
	ctx := context.Background()

	first := upload("decision.pdf", "v1")
	doc, err := a.CreateDocument(ctx, DocumentFields{
		Title:      str("Quyết định 01"),
		DocType:    str("quyết định"),
		IssuedDate: date(t, "2025-01-15"),
	}, &first)
	if err != nil {
		t.Fatalf("create document: %v", err)
	}
	if doc.File == nil {
		t.Fatalf("expected stored file")
	}
	oldKey := doc.File.Key

	second := upload("decision-v2.pdf", "v2")
	updated, err := a.UpdateDocument(ctx, doc.ID, DocumentFields{}, &second)
	if err != nil {
		t.Fatalf("update document: %v", err)
	}
	if updated.File == nil || updated.File.Key == oldKey {
		t.Fatalf("expected a new stored file")
	}
	if host.content(updated.File.Key) != "v2" {
		t.Fatalf("expected new object content v2")
	}
	if host.content(oldKey) != "" {
		t.Fatalf("expected replaced object destroyed")
	}
}

func TestUpdateDocumentKeepsOldFileWhenStoreFails(t *testing.T) {
	st := newTestStore(t)
	host := newFakeHost()
	fs := &failingStore{Store: st}
	a, err := New(Config{Store: fs, Media: host})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	ctx := context.Background()

	first := upload("decision.pdf", "v1")
	doc, err := a.CreateDocument(ctx, DocumentFields{Title: str("Quyết định 01"), DocType: str("quyết định")}, &first)
	if err != nil {
		t.Fatalf("create document: %v", err)
	}
	oldKey := doc.File.Key

	fs.failDocumentUpdate = true
	second := upload("decision-v2.pdf", "v2")
	if _, err := a.UpdateDocument(ctx, doc.ID, DocumentFields{}, &second); err == nil {
		t.Fatalf("expected store failure to surface")
	}
	// The new upload is rolled back, the original object survives.
	if host.content(oldKey) != "v1" {
		t.Fatalf("expected original object kept")
	}
	if host.count() != 1 {
		t.Fatalf("expected only the original object on the host, got %d", host.count())
	}
}

func TestUpdateNewsReplacesGallery(t *testing.T) {
	a, host, _ := newTestApp(t)
	ctx := context.Background()

	article, err := a.CreateNewsArticle(ctx, NewsFields{
		Title:   str("Khai giảng"),
		Summary: str("Lễ khai giảng năm học"),
		Content: str("..."),
		Author:  str("admin"),
	}, []Upload{upload("a.jpg", "old-1"), upload("b.jpg", "old-2")})
	if err != nil {
		t.Fatalf("create news: %v", err)
	}

	updated, err := a.UpdateNewsArticle(ctx, article.ID, NewsFields{}, []Upload{upload("c.jpg", "new-1")})
	if err != nil {
		t.Fatalf("update news: %v", err)
	}
	if len(updated.Images) != 1 || host.content(updated.Images[0].Key) != "new-1" {
		t.Fatalf("expected gallery replaced, got %+v", updated.Images)
	}
	if updated.Thumbnail != updated.Images[0].URL {
		t.Fatalf("expected thumbnail to follow the new gallery")
	}
	if host.count() != 1 {
		t.Fatalf("expected old objects destroyed, %d left", host.count())
	}
}

func TestUpdateProcedureSelectiveKeep(t *testing.T) {
	a, host, _ := newTestApp(t)
	ctx := context.Background()

	proc, err := a.CreateProcedure(ctx, ProcedureFields{
		Title:       str("Chuyển trường"),
		Description: str("Hồ sơ chuyển trường"),
	}, []Upload{upload("f1.pdf", "one"), upload("f2.pdf", "two"), upload("f3.pdf", "three")})
	if err != nil {
		t.Fatalf("create procedure: %v", err)
	}

	// Omitting the keep list leaves attachments untouched.
	same, err := a.UpdateProcedure(ctx, proc.ID, ProcedureFields{Field: str("Giáo dục")}, nil, nil, false)
	if err != nil {
		t.Fatalf("update without keep list: %v", err)
	}
	if len(same.Files) != 3 {
		t.Fatalf("expected untouched attachments, got %d", len(same.Files))
	}

	// Keeping only the first file removes the rest and appends the upload.
	kept, err := a.UpdateProcedure(ctx, proc.ID, ProcedureFields{}, []Upload{upload("f4.pdf", "four")},
		[]string{proc.Files[0].ID}, true)
	if err != nil {
		t.Fatalf("update with keep list: %v", err)
	}
	if len(kept.Files) != 2 {
		t.Fatalf("expected 2 attachments, got %d", len(kept.Files))
	}
	if kept.Files[0].ID != proc.Files[0].ID || kept.Files[0].Position != 0 {
		t.Fatalf("expected kept file first, got %+v", kept.Files[0])
	}
	if host.content(kept.Files[1].Key) != "four" || kept.Files[1].Position != 1 {
		t.Fatalf("expected new upload appended, got %+v", kept.Files[1])
	}
	if host.count() != 2 {
		t.Fatalf("expected removed objects destroyed, %d left", host.count())
	}

	// An empty keep list clears every attachment.
	cleared, err := a.UpdateProcedure(ctx, proc.ID, ProcedureFields{}, nil, nil, true)
	if err != nil {
		t.Fatalf("update clearing attachments: %v", err)
	}
	if len(cleared.Files) != 0 {
		t.Fatalf("expected cleared attachments, got %d", len(cleared.Files))
	}
	if host.count() != 0 {
		t.Fatalf("expected all objects destroyed, %d left", host.count())
	}
}

func TestTuitionTypeValidation(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx := context.Background()

	_, err := a.CreateTuitionEntry(ctx, TuitionFields{
		Type:    str("monthly"),
		Grade:   str("Lớp 1"),
		Level:   str("Tiểu học"),
		Tuition: str("2.500.000"),
	})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "type" {
		t.Fatalf("expected type validation error, got %v", err)
	}

	entry, err := a.CreateTuitionEntry(ctx, TuitionFields{
		Type:    str("grade"),
		Grade:   str("Lớp 1"),
		Level:   str("Tiểu học"),
		Tuition: str("2.500.000"),
		Note:    str("đã gồm ăn trưa"),
	})
	if err != nil {
		t.Fatalf("create tuition entry: %v", err)
	}
	if entry.Type != domain.TuitionGrade {
		t.Fatalf("expected grade type, got %s", entry.Type)
	}
}

func TestDeleteActivityDestroysObjects(t *testing.T) {
	a, host, _ := newTestApp(t)
	ctx := context.Background()
	c := seedCategory(t, a)

	act, err := a.CreateActivity(ctx, activityInput(t, c.ID), []Upload{
		upload("one.jpg", "first"),
		upload("two.jpg", "second"),
	})
	if err != nil {
		t.Fatalf("create activity: %v", err)
	}
	if err := a.DeleteActivity(ctx, act.ID); err != nil {
		t.Fatalf("delete activity: %v", err)
	}
	if host.count() != 0 {
		t.Fatalf("expected remote objects destroyed, %d left", host.count())
	}
	if _, err := a.GetActivity(ctx, act.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected activity gone, got %v", err)
	}
}
