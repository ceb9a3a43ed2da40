package domain

import "time"

// MediaKind distinguishes images from raw document files on the media host.
type MediaKind string

const (
	MediaImage    MediaKind = "image"
	MediaDocument MediaKind = "document"
)

// MediaFile is one externally hosted file referenced by a resource record.
// Key is the media host's object key, stored at upload time so deletion never
// has to be re-derived from the URL.
type MediaFile struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Key       string    `json:"-"`
	Kind      MediaKind `json:"kind"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}

// Category groups activities. Categories are soft-deleted so referential
// integrity messages can still name them.
type Category struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ActivityCount int64     `json:"activityCount,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Activity is a school activity post with an accumulating image gallery.
type Activity struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Content     string      `json:"content,omitempty"`
	CategoryID  string      `json:"categoryId"`
	Author      string      `json:"author"`
	Date        time.Time   `json:"date"`
	Thumbnail   string      `json:"thumbnail,omitempty"`
	Images      []MediaFile `json:"images"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Document is an official document with a single downloadable file.
// New documents are listed ahead of the rest.
type Document struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Number     string     `json:"number,omitempty"`
	DocType    string     `json:"docType"`
	IssuedDate *time.Time `json:"issuedDate,omitempty"`
	IsNew      bool       `json:"isNew"`
	File       *MediaFile `json:"file,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// NewsArticle is a dated news post. Supplying any new image on update replaces
// the whole gallery.
type NewsArticle struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Summary     string      `json:"summary"`
	Content     string      `json:"content"`
	Author      string      `json:"author"`
	Tags        []string    `json:"tags,omitempty"`
	PublishedAt time.Time   `json:"publishedAt"`
	Thumbnail   string      `json:"thumbnail,omitempty"`
	Images      []MediaFile `json:"images"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Reform is an education-reform announcement.
type Reform struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Year        int         `json:"year,omitempty"`
	Thumbnail   string      `json:"thumbnail,omitempty"`
	Images      []MediaFile `json:"images"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Procedure is an administrative procedure with attached files. Updates carry
// an explicit keep-list: existing files not named are removed.
type Procedure struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Field       string      `json:"field,omitempty"`
	Agency      string      `json:"agency,omitempty"`
	Files       []MediaFile `json:"files"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// TuitionType distinguishes per-grade tuition rows from service fees.
type TuitionType string

const (
	TuitionGrade   TuitionType = "grade"
	TuitionService TuitionType = "service"
)

// TuitionEntry is one row of the tuition table. No media.
type TuitionEntry struct {
	ID        string      `json:"id"`
	Type      TuitionType `json:"type"`
	Grade     string      `json:"grade"`
	Level     string      `json:"level"`
	Tuition   string      `json:"tuition"`
	Note      string      `json:"note,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Page is one page of a filtered listing. Total counts every matching
// non-deleted row, not just the rows on this page.
type Page[T any] struct {
	Items []T
	Total int64
}

// Pages returns the page-control count for a page size.
func (p Page[T]) Pages(pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((p.Total + int64(pageSize) - 1) / int64(pageSize))
}
