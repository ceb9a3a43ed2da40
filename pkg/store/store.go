package store

import (
	"context"

	"github.com/NoobYoup/amis-nextjs-sub001/pkg/domain"
)

// Paging is the shared page/pageSize pair carried by every filter. Zero
// values fall back to page 1 and the resource default size.
type Paging struct {
	Page     int
	PageSize int
}

// Filters. A zero/"all" field leaves that dimension unconstrained.
type ActivityFilter struct {
	Search     string
	CategoryID string
	Year       int
	Paging
}

type DocumentFilter struct {
	Search  string
	DocType string
	Year    int
	Paging
}

type NewsFilter struct {
	Search string
	Year   int
	Paging
}

type ReformFilter struct {
	Search string
	Year   int
	Paging
}

type ProcedureFilter struct {
	Search string
	Field  string
	Agency string
	Paging
}

type TuitionFilter struct {
	Search string
	Type   string
	Level  string
	Paging
}

// Store defines persistence operations for the content site. Create/Update of
// media-backed resources persist the record and its file rows in one
// transaction; the file list supplied on update fully replaces the stored one.
type Store interface {
	// categories
	CreateCategory(ctx context.Context, c domain.Category) error
	UpdateCategory(ctx context.Context, c domain.Category) error
	GetCategory(ctx context.Context, id string) (domain.Category, bool, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	SoftDeleteCategory(ctx context.Context, id string) error
	CategoryNameTaken(ctx context.Context, name, excludeID string) (bool, error)
	CountActivitiesByCategory(ctx context.Context, categoryID string) (int64, error)

	// activities
	CreateActivity(ctx context.Context, a domain.Activity) error
	UpdateActivity(ctx context.Context, a domain.Activity) error
	GetActivity(ctx context.Context, id string) (domain.Activity, bool, error)
	ListActivities(ctx context.Context, f ActivityFilter) (domain.Page[domain.Activity], error)
	DeleteActivity(ctx context.Context, id string) error

	// documents
	CreateDocument(ctx context.Context, d domain.Document) error
	UpdateDocument(ctx context.Context, d domain.Document) error
	GetDocument(ctx context.Context, id string) (domain.Document, bool, error)
	ListDocuments(ctx context.Context, f DocumentFilter) (domain.Page[domain.Document], error)
	DeleteDocument(ctx context.Context, id string) error

	// news
	CreateNewsArticle(ctx context.Context, n domain.NewsArticle) error
	UpdateNewsArticle(ctx context.Context, n domain.NewsArticle) error
	GetNewsArticle(ctx context.Context, id string) (domain.NewsArticle, bool, error)
	ListNewsArticles(ctx context.Context, f NewsFilter) (domain.Page[domain.NewsArticle], error)
	DeleteNewsArticle(ctx context.Context, id string) error

	// reforms
	CreateReform(ctx context.Context, r domain.Reform) error
	UpdateReform(ctx context.Context, r domain.Reform) error
	GetReform(ctx context.Context, id string) (domain.Reform, bool, error)
	ListReforms(ctx context.Context, f ReformFilter) (domain.Page[domain.Reform], error)
	DeleteReform(ctx context.Context, id string) error

	// procedures
	CreateProcedure(ctx context.Context, p domain.Procedure) error
	UpdateProcedure(ctx context.Context, p domain.Procedure) error
	GetProcedure(ctx context.Context, id string) (domain.Procedure, bool, error)
	ListProcedures(ctx context.Context, f ProcedureFilter) (domain.Page[domain.Procedure], error)
	DeleteProcedure(ctx context.Context, id string) error

	// tuition
	CreateTuitionEntry(ctx context.Context, t domain.TuitionEntry) error
	UpdateTuitionEntry(ctx context.Context, t domain.TuitionEntry) error
	GetTuitionEntry(ctx context.Context, id string) (domain.TuitionEntry, bool, error)
	ListTuitionEntries(ctx context.Context, f TuitionFilter) (domain.Page[domain.TuitionEntry], error)
	DeleteTuitionEntry(ctx context.Context, id string) error
}
