package domain

import (
	"crypto/md5"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// Category classifies an article into one of the site's sections
type Category string

const (
	CategoryPolitical Category = "Political"
	CategoryGeneral   Category = "General"
)

// IsValid checks if a category is valid
func (c Category) IsValid() bool {
	switch c {
	case CategoryPolitical, CategoryGeneral:
		return true
	}
	return false
}

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// Article is a published story. ArticleID is the externally visible
// sequential identifier; the uuid primary key is storage-internal and
// never leaves the API.
type Article struct {
	ID          uuid.UUID `json:"-" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ArticleID   int       `json:"articleId" gorm:"uniqueIndex:idx_articles_article_id;not null"`
	Fingerprint string    `json:"hash" gorm:"uniqueIndex:idx_articles_fingerprint;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Summary     string    `json:"summary" gorm:"not null"`
	Body        string    `json:"article_text" gorm:"not null"`
	Date        time.Time `json:"date" gorm:"index;not null"`
	Image       string    `json:"image" gorm:"not null"`
	Category    Category  `json:"category" gorm:"not null"`
	Featured    bool      `json:"featured" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ArticleFingerprint derives the dedup key for an article from its title and
// publish time. Two submissions with the same title and date collide on
// purpose; this is a uniqueness key, not a security digest.
func ArticleFingerprint(title string, date time.Time) string {
	sum := md5.Sum([]byte(title + date.UTC().Format(time.RFC3339Nano)))
	return hex.EncodeToString(sum[:])
}
