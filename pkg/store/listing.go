package store

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Default page sizes. Public content grids show 9 cards per page, admin
// tables show 10 rows.
const (
	DefaultPublicPageSize = 9
	DefaultAdminPageSize  = 10
)

// Unconstrained reports whether a filter value leaves its dimension open.
// The admin UI sends "all" for cleared select boxes.
func Unconstrained(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, "all")
}

// applySearch adds a case-insensitive substring match over the given columns.
// Both sides are lowered explicitly so the behavior does not depend on the
// store's collation.
func applySearch(tx *gorm.DB, term string, cols ...string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(cols) == 0 {
		return tx
	}
	pattern := "%" + strings.ToLower(term) + "%"
	var sb strings.Builder
	args := make([]any, 0, len(cols))
	for i, col := range cols {
		if i > 0 {
			sb.WriteString(" OR ")
		}
		sb.WriteString("LOWER(" + col + ") LIKE ?")
		args = append(args, pattern)
	}
	return tx.Where(sb.String(), args...)
}

// applyEquals adds an equality constraint unless the value is unconstrained.
func applyEquals(tx *gorm.DB, col, value string) *gorm.DB {
	if Unconstrained(value) {
		return tx
	}
	return tx.Where(col+" = ?", strings.TrimSpace(value))
}

// applyYear constrains a timestamp column to one calendar year using a range
// comparison, which works identically on Postgres and SQLite.
func applyYear(tx *gorm.DB, col string, year int) *gorm.DB {
	if year <= 0 {
		return tx
	}
	from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	return tx.Where(col+" >= ? AND "+col+" < ?", from, from.AddDate(1, 0, 0))
}

// paginate runs the shared count + offset/limit tail of every listing. The
// caller passes a query with all filters applied; order must end in a unique
// column so pagination stays deterministic.
func paginate[M any](query *gorm.DB, order string, p Paging, defaultSize int) ([]M, int64, error) {
	page := p.Page
	if page < 1 {
		page = 1
	}
	size := p.PageSize
	if size < 1 {
		size = defaultSize
	}
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []M
	if err := query.Session(&gorm.Session{}).
		Order(order).
		Offset((page - 1) * size).
		Limit(size).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
