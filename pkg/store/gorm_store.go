package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/NoobYoup/amis-nextjs-sub001/pkg/domain"
)

// Media owner discriminators for media_file_models rows.
const (
	ownerActivity  = "activity"
	ownerDocument  = "document"
	ownerNews      = "news"
	ownerReform    = "reform"
	ownerProcedure = "procedure"
)

// GormStore implements Store on GORM. Postgres in production, SQLite in tests.
type GormStore struct {
	db *gorm.DB
}

// New opens the database through the given dialector and runs auto-migrations.
func New(dialector gorm.Dialector) (*GormStore, error) {
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLog,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(
		&CategoryModel{},
		&ActivityModel{},
		&DocumentModel{},
		&NewsArticleModel{},
		&ReformModel{},
		&ProcedureModel{},
		&TuitionEntryModel{},
		&MediaFileModel{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Open connects to Postgres by URL.
func Open(databaseURL string) (*GormStore, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("database URL required")
	}
	return New(postgres.Open(databaseURL))
}

// Close releases the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.Close()
}

// categories

func (s *GormStore) CreateCategory(ctx context.Context, c domain.Category) error {
	model := CategoryModel{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	return s.db.WithContext(ctx).Create(&model).Error
}

func (s *GormStore) UpdateCategory(ctx context.Context, c domain.Category) error {
	return s.db.WithContext(ctx).Model(&CategoryModel{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"name":       c.Name,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (s *GormStore) GetCategory(ctx context.Context, id string) (domain.Category, bool, error) {
	var model CategoryModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Category{}, false, nil
		}
		return domain.Category{}, false, err
	}
	return categoryFromModel(model), true, nil
}

func (s *GormStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var models []CategoryModel
	if err := s.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Category, 0, len(models))
	for _, m := range models {
		res = append(res, categoryFromModel(m))
	}
	return res, nil
}

// SoftDeleteCategory marks the row deleted; it stays in the table for audit
// but disappears from every query.
func (s *GormStore) SoftDeleteCategory(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&CategoryModel{}, "id = ?", id).Error
}

// CategoryNameTaken checks the name against non-deleted categories,
// case-insensitively, excluding excludeID when non-empty.
func (s *GormStore) CategoryNameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	query := s.db.WithContext(ctx).Model(&CategoryModel{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) CountActivitiesByCategory(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&ActivityModel{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

// activities

func (s *GormStore) CreateActivity(ctx context.Context, a domain.Activity) error {
	model := activityToModel(a)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		return insertFiles(tx, ownerActivity, a.ID, a.Images)
	})
}

func (s *GormStore) UpdateActivity(ctx context.Context, a domain.Activity) error {
	model := activityToModel(a)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&model).Error; err != nil {
			return err
		}
		return replaceFiles(tx, ownerActivity, a.ID, a.Images)
	})
}

func (s *GormStore) GetActivity(ctx context.Context, id string) (domain.Activity, bool, error) {
	var model ActivityModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Activity{}, false, nil
		}
		return domain.Activity{}, false, err
	}
	files, err := s.loadFiles(ctx, ownerActivity, []string{id})
	if err != nil {
		return domain.Activity{}, false, err
	}
	return activityFromModel(model, files[id]), true, nil
}

func (s *GormStore) ListActivities(ctx context.Context, f ActivityFilter) (domain.Page[domain.Activity], error) {
	query := s.db.WithContext(ctx).Model(&ActivityModel{})
	query = applySearch(query, f.Search, "title", "description")
	query = applyEquals(query, "category_id", f.CategoryID)
	query = applyYear(query, "date", f.Year)
	models, total, err := paginate[ActivityModel](query, "date DESC, id DESC", f.Paging, DefaultPublicPageSize)
	if err != nil {
		return domain.Page[domain.Activity]{}, err
	}
	files, err := s.loadFiles(ctx, ownerActivity, modelIDs(models, func(m ActivityModel) string { return m.ID }))
	if err != nil {
		return domain.Page[domain.Activity]{}, err
	}
	items := make([]domain.Activity, 0, len(models))
	for _, m := range models {
		items = append(items, activityFromModel(m, files[m.ID]))
	}
	return domain.Page[domain.Activity]{Items: items, Total: total}, nil
}

func (s *GormStore) DeleteActivity(ctx context.Context, id string) error {
	return s.deleteWithFiles(ctx, ownerActivity, id, &ActivityModel{})
}

// documents

func (s *GormStore) CreateDocument(ctx context.Context, d domain.Document) error {
	model := documentToModel(d)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		return insertFiles(tx, ownerDocument, d.ID, documentFiles(d))
	})
}

func (s *GormStore) UpdateDocument(ctx context.Context, d domain.Document) error {
	model := documentToModel(d)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&model).Error; err != nil {
			return err
		}
		return replaceFiles(tx, ownerDocument, d.ID, documentFiles(d))
	})
}

func (s *GormStore) GetDocument(ctx context.Context, id string) (domain.Document, bool, error) {
	var model DocumentModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Document{}, false, nil
		}
		return domain.Document{}, false, err
	}
	files, err := s.loadFiles(ctx, ownerDocument, []string{id})
	if err != nil {
		return domain.Document{}, false, err
	}
	return documentFromModel(model, files[id]), true, nil
}

func (s *GormStore) ListDocuments(ctx context.Context, f DocumentFilter) (domain.Page[domain.Document], error) {
	query := s.db.WithContext(ctx).Model(&DocumentModel{})
	query = applySearch(query, f.Search, "title", "number")
	query = applyEquals(query, "doc_type", f.DocType)
	query = applyYear(query, "issued_date", f.Year)
	models, total, err := paginate[DocumentModel](query, "is_new DESC, issued_date DESC, id DESC", f.Paging, DefaultAdminPageSize)
	if err != nil {
		return domain.Page[domain.Document]{}, err
	}
	files, err := s.loadFiles(ctx, ownerDocument, modelIDs(models, func(m DocumentModel) string { return m.ID }))
	if err != nil {
		return domain.Page[domain.Document]{}, err
	}
	items := make([]domain.Document, 0, len(models))
	for _, m := range models {
		items = append(items, documentFromModel(m, files[m.ID]))
	}
	return domain.Page[domain.Document]{Items: items, Total: total}, nil
}

func (s *GormStore) DeleteDocument(ctx context.Context, id string) error {
	return s.deleteWithFiles(ctx, ownerDocument, id, &DocumentModel{})
}

// news

func (s *GormStore) CreateNewsArticle(ctx context.Context, n domain.NewsArticle) error {
	model, err := newsToModel(n)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		return insertFiles(tx, ownerNews, n.ID, n.Images)
	})
}

func (s *GormStore) UpdateNewsArticle(ctx context.Context, n domain.NewsArticle) error {
	model, err := newsToModel(n)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&model).Error; err != nil {
			return err
		}
		return replaceFiles(tx, ownerNews, n.ID, n.Images)
	})
}

func (s *GormStore) GetNewsArticle(ctx context.Context, id string) (domain.NewsArticle, bool, error) {
	var model NewsArticleModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.NewsArticle{}, false, nil
		}
		return domain.NewsArticle{}, false, err
	}
	files, err := s.loadFiles(ctx, ownerNews, []string{id})
	if err != nil {
		return domain.NewsArticle{}, false, err
	}
	return newsFromModel(model, files[id]), true, nil
}

func (s *GormStore) ListNewsArticles(ctx context.Context, f NewsFilter) (domain.Page[domain.NewsArticle], error) {
	query := s.db.WithContext(ctx).Model(&NewsArticleModel{})
	query = applySearch(query, f.Search, "title", "summary")
	query = applyYear(query, "published_at", f.Year)
	models, total, err := paginate[NewsArticleModel](query, "published_at DESC, id DESC", f.Paging, DefaultPublicPageSize)
	if err != nil {
		return domain.Page[domain.NewsArticle]{}, err
	}
	files, err := s.loadFiles(ctx, ownerNews, modelIDs(models, func(m NewsArticleModel) string { return m.ID }))
	if err != nil {
		return domain.Page[domain.NewsArticle]{}, err
	}
	items := make([]domain.NewsArticle, 0, len(models))
	for _, m := range models {
		items = append(items, newsFromModel(m, files[m.ID]))
	}
	return domain.Page[domain.NewsArticle]{Items: items, Total: total}, nil
}

func (s *GormStore) DeleteNewsArticle(ctx context.Context, id string) error {
	return s.deleteWithFiles(ctx, ownerNews, id, &NewsArticleModel{})
}

// reforms

func (s *GormStore) CreateReform(ctx context.Context, r domain.Reform) error {
	model := reformToModel(r)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		return insertFiles(tx, ownerReform, r.ID, r.Images)
	})
}

func (s *GormStore) UpdateReform(ctx context.Context, r domain.Reform) error {
	model := reformToModel(r)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&model).Error; err != nil {
			return err
		}
		return replaceFiles(tx, ownerReform, r.ID, r.Images)
	})
}

func (s *GormStore) GetReform(ctx context.Context, id string) (domain.Reform, bool, error) {
	var model ReformModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Reform{}, false, nil
		}
		return domain.Reform{}, false, err
	}
	files, err := s.loadFiles(ctx, ownerReform, []string{id})
	if err != nil {
		return domain.Reform{}, false, err
	}
	return reformFromModel(model, files[id]), true, nil
}

func (s *GormStore) ListReforms(ctx context.Context, f ReformFilter) (domain.Page[domain.Reform], error) {
	query := s.db.WithContext(ctx).Model(&ReformModel{})
	query = applySearch(query, f.Search, "title", "description")
	if f.Year > 0 {
		query = query.Where("year = ?", f.Year)
	}
	models, total, err := paginate[ReformModel](query, "year DESC, created_at DESC, id DESC", f.Paging, DefaultAdminPageSize)
	if err != nil {
		return domain.Page[domain.Reform]{}, err
	}
	files, err := s.loadFiles(ctx, ownerReform, modelIDs(models, func(m ReformModel) string { return m.ID }))
	if err != nil {
		return domain.Page[domain.Reform]{}, err
	}
	items := make([]domain.Reform, 0, len(models))
	for _, m := range models {
		items = append(items, reformFromModel(m, files[m.ID]))
	}
	return domain.Page[domain.Reform]{Items: items, Total: total}, nil
}

func (s *GormStore) DeleteReform(ctx context.Context, id string) error {
	return s.deleteWithFiles(ctx, ownerReform, id, &ReformModel{})
}

// procedures

func (s *GormStore) CreateProcedure(ctx context.Context, p domain.Procedure) error {
	model := procedureToModel(p)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		return insertFiles(tx, ownerProcedure, p.ID, p.Files)
	})
}

func (s *GormStore) UpdateProcedure(ctx context.Context, p domain.Procedure) error {
	model := procedureToModel(p)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&model).Error; err != nil {
			return err
		}
		return replaceFiles(tx, ownerProcedure, p.ID, p.Files)
	})
}

func (s *GormStore) GetProcedure(ctx context.Context, id string) (domain.Procedure, bool, error) {
	var model ProcedureModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Procedure{}, false, nil
		}
		return domain.Procedure{}, false, err
	}
	files, err := s.loadFiles(ctx, ownerProcedure, []string{id})
	if err != nil {
		return domain.Procedure{}, false, err
	}
	return procedureFromModel(model, files[id]), true, nil
}

func (s *GormStore) ListProcedures(ctx context.Context, f ProcedureFilter) (domain.Page[domain.Procedure], error) {
	query := s.db.WithContext(ctx).Model(&ProcedureModel{})
	query = applySearch(query, f.Search, "title", "description")
	query = applyEquals(query, "field", f.Field)
	query = applyEquals(query, "agency", f.Agency)
	models, total, err := paginate[ProcedureModel](query, "created_at DESC, id DESC", f.Paging, DefaultAdminPageSize)
	if err != nil {
		return domain.Page[domain.Procedure]{}, err
	}
	files, err := s.loadFiles(ctx, ownerProcedure, modelIDs(models, func(m ProcedureModel) string { return m.ID }))
	if err != nil {
		return domain.Page[domain.Procedure]{}, err
	}
	items := make([]domain.Procedure, 0, len(models))
	for _, m := range models {
		items = append(items, procedureFromModel(m, files[m.ID]))
	}
	return domain.Page[domain.Procedure]{Items: items, Total: total}, nil
}

func (s *GormStore) DeleteProcedure(ctx context.Context, id string) error {
	return s.deleteWithFiles(ctx, ownerProcedure, id, &ProcedureModel{})
}

// tuition

func (s *GormStore) CreateTuitionEntry(ctx context.Context, t domain.TuitionEntry) error {
	model := tuitionToModel(t)
	return s.db.WithContext(ctx).Create(&model).Error
}

func (s *GormStore) UpdateTuitionEntry(ctx context.Context, t domain.TuitionEntry) error {
	model := tuitionToModel(t)
	return s.db.WithContext(ctx).Save(&model).Error
}

func (s *GormStore) GetTuitionEntry(ctx context.Context, id string) (domain.TuitionEntry, bool, error) {
	var model TuitionEntryModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.TuitionEntry{}, false, nil
		}
		return domain.TuitionEntry{}, false, err
	}
	return tuitionFromModel(model), true, nil
}

func (s *GormStore) ListTuitionEntries(ctx context.Context, f TuitionFilter) (domain.Page[domain.TuitionEntry], error) {
	query := s.db.WithContext(ctx).Model(&TuitionEntryModel{})
	query = applySearch(query, f.Search, "grade")
	query = applyEquals(query, "type", f.Type)
	query = applyEquals(query, "level", f.Level)
	models, total, err := paginate[TuitionEntryModel](query, "type ASC, level ASC, grade ASC, id ASC", f.Paging, DefaultAdminPageSize)
	if err != nil {
		return domain.Page[domain.TuitionEntry]{}, err
	}
	items := make([]domain.TuitionEntry, 0, len(models))
	for _, m := range models {
		items = append(items, tuitionFromModel(m))
	}
	return domain.Page[domain.TuitionEntry]{Items: items, Total: total}, nil
}

func (s *GormStore) DeleteTuitionEntry(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&TuitionEntryModel{}, "id = ?", id).Error
}

// media rows

func insertFiles(tx *gorm.DB, ownerType, ownerID string, files []domain.MediaFile) error {
	if len(files) == 0 {
		return nil
	}
	models := make([]MediaFileModel, 0, len(files))
	for i, f := range files {
		createdAt := f.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		models = append(models, MediaFileModel{
			ID:        f.ID,
			OwnerType: ownerType,
			OwnerID:   ownerID,
			URL:       f.URL,
			ObjectKey: f.Key,
			Kind:      string(f.Kind),
			Position:  i,
			CreatedAt: createdAt,
		})
	}
	return tx.Create(&models).Error
}

func replaceFiles(tx *gorm.DB, ownerType, ownerID string, files []domain.MediaFile) error {
	if err := tx.Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Delete(&MediaFileModel{}).Error; err != nil {
		return err
	}
	return insertFiles(tx, ownerType, ownerID, files)
}

func (s *GormStore) loadFiles(ctx context.Context, ownerType string, ownerIDs []string) (map[string][]domain.MediaFile, error) {
	out := make(map[string][]domain.MediaFile, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return out, nil
	}
	var models []MediaFileModel
	if err := s.db.WithContext(ctx).
		Where("owner_type = ? AND owner_id IN ?", ownerType, ownerIDs).
		Order("position ASC, created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	for _, m := range models {
		out[m.OwnerID] = append(out[m.OwnerID], domain.MediaFile{
			ID:        m.ID,
			URL:       m.URL,
			Key:       m.ObjectKey,
			Kind:      domain.MediaKind(m.Kind),
			Position:  m.Position,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

// deleteWithFiles removes a content row together with its media rows in one
// transaction so a crash cannot leave orphan file rows behind.
func (s *GormStore) deleteWithFiles(ctx context.Context, ownerType, id string, model any) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_type = ? AND owner_id = ?", ownerType, id).
			Delete(&MediaFileModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(model, "id = ?", id).Error
	})
}

func modelIDs[M any](models []M, id func(M) string) []string {
	ids := make([]string, 0, len(models))
	for _, m := range models {
		ids = append(ids, id(m))
	}
	return ids
}

// converters

func categoryFromModel(m CategoryModel) domain.Category {
	return domain.Category{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func activityToModel(a domain.Activity) ActivityModel {
	return ActivityModel{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Content:     a.Content,
		CategoryID:  a.CategoryID,
		Author:      a.Author,
		Date:        a.Date,
		Thumbnail:   a.Thumbnail,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func activityFromModel(m ActivityModel, files []domain.MediaFile) domain.Activity {
	return domain.Activity{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Content:     m.Content,
		CategoryID:  m.CategoryID,
		Author:      m.Author,
		Date:        m.Date,
		Thumbnail:   m.Thumbnail,
		Images:      files,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func documentToModel(d domain.Document) DocumentModel {
	return DocumentModel{
		ID:         d.ID,
		Title:      d.Title,
		Number:     d.Number,
		DocType:    d.DocType,
		IssuedDate: d.IssuedDate,
		IsNew:      d.IsNew,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func documentFiles(d domain.Document) []domain.MediaFile {
	if d.File == nil {
		return nil
	}
	return []domain.MediaFile{*d.File}
}

func documentFromModel(m DocumentModel, files []domain.MediaFile) domain.Document {
	var file *domain.MediaFile
	if len(files) > 0 {
		f := files[0]
		file = &f
	}
	return domain.Document{
		ID:         m.ID,
		Title:      m.Title,
		Number:     m.Number,
		DocType:    m.DocType,
		IssuedDate: m.IssuedDate,
		IsNew:      m.IsNew,
		File:       file,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func newsToModel(n domain.NewsArticle) (NewsArticleModel, error) {
	var tags []byte
	if len(n.Tags) > 0 {
		raw, err := json.Marshal(n.Tags)
		if err != nil {
			return NewsArticleModel{}, fmt.Errorf("marshal tags: %w", err)
		}
		tags = raw
	}
	return NewsArticleModel{
		ID:          n.ID,
		Title:       n.Title,
		Summary:     n.Summary,
		Content:     n.Content,
		Author:      n.Author,
		Tags:        tags,
		PublishedAt: n.PublishedAt,
		Thumbnail:   n.Thumbnail,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}, nil
}

func newsFromModel(m NewsArticleModel, files []domain.MediaFile) domain.NewsArticle {
	var tags []string
	if len(m.Tags) > 0 {
		_ = json.Unmarshal(m.Tags, &tags)
	}
	return domain.NewsArticle{
		ID:          m.ID,
		Title:       m.Title,
		Summary:     m.Summary,
		Content:     m.Content,
		Author:      m.Author,
		Tags:        tags,
		PublishedAt: m.PublishedAt,
		Thumbnail:   m.Thumbnail,
		Images:      files,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func reformToModel(r domain.Reform) ReformModel {
	return ReformModel{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Year:        r.Year,
		Thumbnail:   r.Thumbnail,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func reformFromModel(m ReformModel, files []domain.MediaFile) domain.Reform {
	return domain.Reform{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Year:        m.Year,
		Thumbnail:   m.Thumbnail,
		Images:      files,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func procedureToModel(p domain.Procedure) ProcedureModel {
	return ProcedureModel{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Field:       p.Field,
		Agency:      p.Agency,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func procedureFromModel(m ProcedureModel, files []domain.MediaFile) domain.Procedure {
	return domain.Procedure{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Field:       m.Field,
		Agency:      m.Agency,
		Files:       files,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func tuitionToModel(t domain.TuitionEntry) TuitionEntryModel {
	return TuitionEntryModel{
		ID:        t.ID,
		Type:      string(t.Type),
		Grade:     t.Grade,
		Level:     t.Level,
		Tuition:   t.Tuition,
		Note:      t.Note,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func tuitionFromModel(m TuitionEntryModel) domain.TuitionEntry {
	return domain.TuitionEntry{
		ID:        m.ID,
		Type:      domain.TuitionType(m.Type),
		Grade:     m.Grade,
		Level:     m.Level,
		Tuition:   m.Tuition,
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
