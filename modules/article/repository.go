package article

import (
	"errors"
	"fmt"

	domain "github.com/MilorES/ComandesJSDR-Back/domain/article"
	"gorm.io/gorm"
)

// ErrNotFound is returned when an article is not found.
var ErrNotFound = errors.New("article not found")

// Filter narrows article listings. Zero values mean "no filter".
type Filter struct {
	Category string
	Active   *bool
}

// Repository provides access to article storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new article repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create saves a new article.
func (r *Repository) Create(article *domain.Article) error {
	if err := r.db.Create(article).Error; err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}
	return nil
}

// FindByID retrieves an article by its ID.
func (r *Repository) FindByID(id uint) (*domain.Article, error) {
	var article domain.Article
	if err := r.db.First(&article, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find article: %w", err)
	}
	return &article, nil
}

// FindAll retrieves articles matching the filter, ordered by name.
func (r *Repository) FindAll(filter Filter) ([]*domain.Article, error) {
	query := r.db.Model(&domain.Article{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	var articles []*domain.Article
	if err := query.Order("name").Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	return articles, nil
}

// Update persists all mutable fields of an existing article.
func (r *Repository) Update(article *domain.Article) error {
	result := r.db.Model(&domain.Article{}).Where("id = ?", article.ID).
		Select("Name", "Description", "Price", "Stock", "Category", "Active", "UpdatedAt").
		Updates(article)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an article by ID.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&domain.Article{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// NameExists checks whether an article other than excludeID already uses
// the name, comparing case-insensitively.
func (r *Repository) NameExists(name string, excludeID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&domain.Article{}).
		Where("LOWER(name) = LOWER(?) AND id <> ?", name, excludeID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check article name: %w", err)
	}
	return count > 0, nil
}

// Categories returns the distinct non-empty categories, sorted.
func (r *Repository) Categories() ([]string, error) {
	var categories []string
	if err := r.db.Model(&domain.Article{}).
		Where("category <> ''").
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Count returns the number of article rows.
func (r *Repository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Article{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return count, nil
}
