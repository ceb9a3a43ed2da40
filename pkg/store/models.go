package store

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GORM models used for persistence. Categories are the only soft-deleted
// table; content rows are hard-deleted together with their media rows.
type CategoryModel struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type ActivityModel struct {
	ID          string `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text;not null"`
	Content     string `gorm:"type:text"`
	CategoryID  string `gorm:"not null;index"`
	Author      string `gorm:"not null"`
	Date        time.Time `gorm:"not null;index"`
	Thumbnail   string
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

type DocumentModel struct {
	ID         string `gorm:"primaryKey"`
	Title      string `gorm:"not null"`
	Number     string
	DocType    string `gorm:"not null;index"`
	IssuedDate *time.Time `gorm:"index"`
	IsNew      bool       `gorm:"not null;index"`
	CreatedAt  time.Time  `gorm:"not null"`
	UpdatedAt  time.Time  `gorm:"not null"`
}

type NewsArticleModel struct {
	ID          string `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Summary     string `gorm:"type:text;not null"`
	Content     string `gorm:"type:text;not null"`
	Author      string `gorm:"not null"`
	Tags        datatypes.JSON
	PublishedAt time.Time `gorm:"not null;index"`
	Thumbnail   string
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

type ReformModel struct {
	ID          string `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text;not null"`
	Year        int    `gorm:"index"`
	Thumbnail   string
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

type ProcedureModel struct {
	ID          string `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text;not null"`
	Field       string `gorm:"index"`
	Agency      string
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

type TuitionEntryModel struct {
	ID        string `gorm:"primaryKey"`
	Type      string `gorm:"not null;index"`
	Grade     string `gorm:"not null"`
	Level     string `gorm:"not null;index"`
	Tuition   string `gorm:"not null"`
	Note      string
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// MediaFileModel ties a hosted object to its owning record. Position 0 is the
// owner's thumbnail/primary file.
type MediaFileModel struct {
	ID        string `gorm:"primaryKey"`
	OwnerType string `gorm:"not null;index:idx_media_owner"`
	OwnerID   string `gorm:"not null;index:idx_media_owner"`
	URL       string `gorm:"not null"`
	ObjectKey string
	Kind      string    `gorm:"not null"`
	Position  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}
