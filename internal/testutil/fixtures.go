package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/amehta/pressroom/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	password string
	role     domain.Role
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		password: "testpassword123",
		role:     domain.RoleEditor,
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithRole sets the role
func (b *UserBuilder) WithRole(role domain.Role) *UserBuilder {
	b.role = role
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     b.username,
		PasswordHash: string(hashedPassword),
		Role:         b.role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API login response
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Role     string `json:"role"`
	} `json:"user"`
}

// ArticleBuilder creates test articles with a builder pattern
type ArticleBuilder struct {
	articleID int
	title     string
	summary   string
	body      string
	date      time.Time
	image     string
	category  domain.Category
	featured  bool
}

// NewArticleBuilder creates a new ArticleBuilder with default values
func NewArticleBuilder() *ArticleBuilder {
	return &ArticleBuilder{
		articleID: 1,
		title:     fmt.Sprintf("Test Article %s", uuid.New().String()[:8]),
		summary:   "A short summary",
		body:      "The full article text.",
		date:      time.Now(),
		image:     "https://example.com/image.jpg",
		category:  domain.CategoryGeneral,
	}
}

// WithArticleID sets the sequential article id
func (b *ArticleBuilder) WithArticleID(id int) *ArticleBuilder {
	b.articleID = id
	return b
}

// WithTitle sets the title
func (b *ArticleBuilder) WithTitle(title string) *ArticleBuilder {
	b.title = title
	return b
}

// WithDate sets the publish date
func (b *ArticleBuilder) WithDate(date time.Time) *ArticleBuilder {
	b.date = date
	return b
}

// WithCategory sets the category
func (b *ArticleBuilder) WithCategory(category domain.Category) *ArticleBuilder {
	b.category = category
	return b
}

// WithFeatured marks the article as featured
func (b *ArticleBuilder) WithFeatured(featured bool) *ArticleBuilder {
	b.featured = featured
	return b
}

// Build creates the article in the database
func (b *ArticleBuilder) Build(t *testing.T, db *gorm.DB) *domain.Article {
	t.Helper()

	article := &domain.Article{
		ID:          uuid.New(),
		ArticleID:   b.articleID,
		Fingerprint: domain.ArticleFingerprint(b.title, b.date),
		Title:       b.title,
		Summary:     b.summary,
		Body:        b.body,
		Date:        b.date,
		Image:       b.image,
		Category:    b.category,
		Featured:    b.featured,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := db.Create(article).Error; err != nil {
		t.Fatalf("failed to create article: %v", err)
	}

	return article
}
